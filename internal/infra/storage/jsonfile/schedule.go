// File: internal/infra/storage/jsonfile/schedule.go
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"

	"telegram-tarot-bot/internal/domain/model"
	"telegram-tarot-bot/internal/domain/ports/repository"
)

type scheduleEntry struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

type scheduleFile struct {
	Messages []scheduleEntry `json:"messages"`
}

// ScheduleTable is the in-memory broadcast schedule bulk-loaded at startup.
// Entries keep file order; lookups are exact-date matches.
type ScheduleTable struct {
	entries []*model.ScheduledMessage
}

var _ repository.ScheduleTable = (*ScheduleTable)(nil)

// LoadScheduleTable reads and validates the schedule file. A malformed date in
// any entry fails the load.
func LoadScheduleTable(path string) (*ScheduleTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	var raw scheduleFile
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse schedule %s: %w", path, err)
	}
	entries := make([]*model.ScheduledMessage, 0, len(raw.Messages))
	for i, e := range raw.Messages {
		msg, err := model.NewScheduledMessage(e.Date, e.Text)
		if err != nil {
			return nil, fmt.Errorf("schedule entry %d (date %q): %w", i, e.Date, err)
		}
		entries = append(entries, msg)
	}
	return &ScheduleTable{entries: entries}, nil
}

func (s *ScheduleTable) DueOn(date string) []*model.ScheduledMessage {
	var due []*model.ScheduledMessage
	for _, e := range s.entries {
		if e.Date == date {
			due = append(due, e)
		}
	}
	return due
}

func (s *ScheduleTable) Len() int { return len(s.entries) }
