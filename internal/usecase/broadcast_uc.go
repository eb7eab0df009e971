// File: internal/usecase/broadcast_uc.go
package usecase

import (
	"context"
	"time"

	"telegram-tarot-bot/internal/domain"
	"telegram-tarot-bot/internal/domain/model"
	"telegram-tarot-bot/internal/domain/ports/adapter"
	"telegram-tarot-bot/internal/domain/ports/repository"
	"telegram-tarot-bot/internal/infra/logging"
	"telegram-tarot-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// BroadcastUseCase sends every schedule entry matching the current date to the
// configured destination. Delivery is at-most-once and best-effort: a failed
// send is logged and skipped, never retried on a later day.
type BroadcastUseCase interface {
	// SendDue scans the schedule for entries dated now's calendar day and
	// sends them in table order. It returns how many were delivered.
	SendDue(ctx context.Context, now time.Time) (int, error)
}

type broadcastUC struct {
	schedule repository.ScheduleTable
	bot      adapter.TelegramBotAdapter
	chatID   int64
	log      *zerolog.Logger
}

func NewBroadcastUseCase(
	schedule repository.ScheduleTable,
	bot adapter.TelegramBotAdapter,
	chatID int64,
	logger *zerolog.Logger,
) BroadcastUseCase {
	return &broadcastUC{
		schedule: schedule,
		bot:      bot,
		chatID:   chatID,
		log:      logging.Component(logger, "BroadcastUC"),
	}
}

func (uc *broadcastUC) SendDue(ctx context.Context, now time.Time) (int, error) {
	if uc.chatID == 0 {
		return 0, domain.ErrNotConfigured
	}

	date := model.DateKey(now)
	due := uc.schedule.DueOn(date)
	if len(due) == 0 {
		uc.log.Debug().Str("date", date).Msg("no scheduled messages due")
		return 0, nil
	}

	sent := 0
	for i, msg := range due {
		err := uc.bot.SendMessage(ctx, adapter.SendMessageParams{
			ChatID: uc.chatID,
			Text:   msg.Text,
		})
		if err != nil {
			// Failures do not abort the remaining scan.
			uc.log.Warn().Err(err).Str("date", date).Int("entry", i).Msg("scheduled send failed")
			metrics.IncBroadcastSend("error")
			continue
		}
		metrics.IncBroadcastSend("ok")
		sent++
	}
	uc.log.Info().Str("date", date).Int("due", len(due)).Int("sent", sent).Msg("daily broadcast completed")
	return sent, nil
}
