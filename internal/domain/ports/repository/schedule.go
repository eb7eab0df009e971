package repository

import "telegram-tarot-bot/internal/domain/model"

// ScheduleTable is the read port over the static broadcast schedule.
type ScheduleTable interface {
	// DueOn returns entries whose date equals the given YYYY-MM-DD key,
	// in table order. Multiple entries may share a date.
	DueOn(date string) []*model.ScheduledMessage
	Len() int
}
