// File: internal/usecase/card_uc.go
package usecase

import (
	"context"
	"math/rand"

	"telegram-tarot-bot/internal/domain/model"
	"telegram-tarot-bot/internal/domain/ports/repository"
	"telegram-tarot-bot/internal/infra/logging"

	"github.com/rs/zerolog"
)

// CardUseCase exposes the read-only card catalog to the bot and the web
// surface: direct lookup, ordered listing, and random sampling.
type CardUseCase interface {
	Get(ctx context.Context, id string) (*model.Card, error)
	List(ctx context.Context) []*model.Card
	// Sample returns n distinct cards drawn uniformly without replacement.
	// When the catalog holds fewer than n cards, every card is returned.
	Sample(ctx context.Context, n int) []*model.Card
}

type cardUC struct {
	catalog repository.CardCatalog
	log     *zerolog.Logger
}

func NewCardUseCase(catalog repository.CardCatalog, logger *zerolog.Logger) CardUseCase {
	return &cardUC{catalog: catalog, log: logging.Component(logger, "CardUC")}
}

func (uc *cardUC) Get(ctx context.Context, id string) (*model.Card, error) {
	return uc.catalog.Get(id)
}

func (uc *cardUC) List(ctx context.Context) []*model.Card {
	return uc.catalog.List()
}

func (uc *cardUC) Sample(ctx context.Context, n int) []*model.Card {
	all := uc.catalog.List()
	if n >= len(all) {
		return all
	}
	out := make([]*model.Card, 0, n)
	for _, idx := range rand.Perm(len(all))[:n] {
		out = append(out, all[idx])
	}
	return out
}
