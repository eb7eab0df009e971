// File: internal/usecase/subscription_uc.go
package usecase

import (
	"context"

	"telegram-tarot-bot/internal/domain/model"
	"telegram-tarot-bot/internal/domain/ports/adapter"
	"telegram-tarot-bot/internal/infra/logging"
	"telegram-tarot-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// SubscriptionUseCase is the gate: a live membership check against the
// configured channel, performed on every call. Results are never cached so a
// user who just subscribed passes the very next check.
type SubscriptionUseCase interface {
	// Check returns the full tagged outcome, including the failure reason
	// when the platform call itself failed.
	Check(ctx context.Context, userID int64) model.SubscriptionCheck
	// IsSubscribed collapses the outcome for access control. A failed check
	// counts as not subscribed (fail closed).
	IsSubscribed(ctx context.Context, userID int64) bool
}

type subscriptionUC struct {
	channel string
	bot     adapter.TelegramBotAdapter
	log     *zerolog.Logger
}

func NewSubscriptionUseCase(channel string, bot adapter.TelegramBotAdapter, logger *zerolog.Logger) SubscriptionUseCase {
	return &subscriptionUC{channel: channel, bot: bot, log: logging.Component(logger, "SubscriptionUC")}
}

func (uc *subscriptionUC) Check(ctx context.Context, userID int64) model.SubscriptionCheck {
	status, err := uc.bot.ChatMemberStatus(ctx, uc.channel, userID)
	if err != nil {
		// The reason is kept for diagnostics; access control sees a plain
		// not-subscribed via Allowed().
		uc.log.Warn().Err(err).Int64("tg_id", userID).Msg("membership check failed; treating as not subscribed")
		check := model.FailedCheck(err.Error())
		metrics.IncGateCheck(string(check.State))
		return check
	}
	check := model.ClassifyMemberStatus(status)
	metrics.IncGateCheck(string(check.State))
	uc.log.Debug().Int64("tg_id", userID).Str("status", status).Bool("subscribed", check.Allowed()).Msg("membership check")
	return check
}

func (uc *subscriptionUC) IsSubscribed(ctx context.Context, userID int64) bool {
	return uc.Check(ctx, userID).Allowed()
}
