//go:build !integration

package usecase_test

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"telegram-tarot-bot/internal/domain"
	"telegram-tarot-bot/internal/domain/model"
	"telegram-tarot-bot/internal/domain/ports/adapter"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	return &logger
}

// --- Mock Telegram bot adapter ---

type sentMessage struct {
	ChatID int64
	Text   string
}

type MockTelegramBot struct {
	mu         sync.Mutex
	Messages   []sentMessage
	Photos     []adapter.SendPhotoParams
	Answered   []string
	MemberStat string

	SendMessageFunc      func(ctx context.Context, params adapter.SendMessageParams) error
	SendPhotoFunc        func(ctx context.Context, params adapter.SendPhotoParams) error
	ChatMemberStatusFunc func(ctx context.Context, channel string, userID int64) (string, error)
}

func (m *MockTelegramBot) SendMessage(ctx context.Context, params adapter.SendMessageParams) error {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, params)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, sentMessage{ChatID: params.ChatID, Text: params.Text})
	return nil
}

func (m *MockTelegramBot) SendPhoto(ctx context.Context, params adapter.SendPhotoParams) error {
	if m.SendPhotoFunc != nil {
		return m.SendPhotoFunc(ctx, params)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Photos = append(m.Photos, params)
	return nil
}

func (m *MockTelegramBot) AnswerCallback(ctx context.Context, callbackID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Answered = append(m.Answered, callbackID)
	return nil
}

func (m *MockTelegramBot) ChatMemberStatus(ctx context.Context, channel string, userID int64) (string, error) {
	if m.ChatMemberStatusFunc != nil {
		return m.ChatMemberStatusFunc(ctx, channel, userID)
	}
	return m.MemberStat, nil
}

// --- Mock repositories ---

type MockCardCatalog struct {
	Cards []*model.Card
}

func (m *MockCardCatalog) Get(id string) (*model.Card, error) {
	for _, c := range m.Cards {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrCardNotFound
}

func (m *MockCardCatalog) List() []*model.Card {
	out := make([]*model.Card, len(m.Cards))
	copy(out, m.Cards)
	return out
}

func (m *MockCardCatalog) Len() int { return len(m.Cards) }

type MockScheduleTable struct {
	Entries []*model.ScheduledMessage
}

func (m *MockScheduleTable) DueOn(date string) []*model.ScheduledMessage {
	var due []*model.ScheduledMessage
	for _, e := range m.Entries {
		if e.Date == date {
			due = append(due, e)
		}
	}
	return due
}

func (m *MockScheduleTable) Len() int { return len(m.Entries) }
