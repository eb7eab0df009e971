package model

import (
	"time"

	"telegram-tarot-bot/internal/domain"
)

// DateLayout is the calendar granularity used by the schedule table.
const DateLayout = "2006-01-02"

// ScheduledMessage is one entry of the broadcast schedule.
// Matching is exact string equality on Date, never a range.
type ScheduledMessage struct {
	Date string // YYYY-MM-DD
	Text string
}

// NewScheduledMessage validates and constructs a schedule entry.
func NewScheduledMessage(date, text string) (*ScheduledMessage, error) {
	if text == "" {
		return nil, domain.ErrInvalidArgument
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, domain.ErrInvalidArgument
	}
	return &ScheduledMessage{Date: date, Text: text}, nil
}

// DateKey formats t at schedule granularity using t's own location.
func DateKey(t time.Time) string { return t.Format(DateLayout) }
