package sched

import (
	"context"
	"time"

	"telegram-tarot-bot/internal/infra/logging"
	"telegram-tarot-bot/internal/usecase"

	"github.com/rs/zerolog"
)

// BroadcastWorker fires the daily broadcast once per calendar day at a fixed
// local hour. It is independent of live command handling: both only read the
// immutable schedule table, so no coordination is needed.
type BroadcastWorker struct {
	hour        int
	broadcastUC usecase.BroadcastUseCase
	log         *zerolog.Logger

	// now is swappable for tests
	now func() time.Time
}

func NewBroadcastWorker(hour int, broadcastUC usecase.BroadcastUseCase, logger *zerolog.Logger) *BroadcastWorker {
	return &BroadcastWorker{
		hour:        hour,
		broadcastUC: broadcastUC,
		log:         logging.Component(logger, "BroadcastWorker"),
		now:         time.Now,
	}
}

// Run blocks until ctx is canceled, firing once per day at the configured hour.
func (w *BroadcastWorker) Run(ctx context.Context) error {
	w.log.Info().Int("hour", w.hour).Msg("starting broadcast worker")
	for {
		next := nextFireAfter(w.now(), w.hour)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			w.log.Info().Msg("stopping broadcast worker")
			return ctx.Err()
		case <-timer.C:
			w.runScan(ctx)
		}
	}
}

func (w *BroadcastWorker) runScan(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	sent, err := w.broadcastUC.SendDue(runCtx, w.now())
	if err != nil {
		w.log.Error().Err(err).Msg("broadcast scan failed")
		return
	}
	if sent > 0 {
		w.log.Info().Int("count", sent).Msg("scheduled messages sent")
	}
}

// nextFireAfter returns the next occurrence of hour:00 strictly after now,
// in now's location.
func nextFireAfter(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
