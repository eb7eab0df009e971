package repository

import "telegram-tarot-bot/internal/domain/model"

// CardCatalog is the read port over the static card table.
// Implementations are immutable after construction and safe for concurrent use.
type CardCatalog interface {
	// Get returns the card for id, or domain.ErrCardNotFound.
	Get(id string) (*model.Card, error)
	// List returns every card in deterministic order (numeric-aware id sort).
	List() []*model.Card
	Len() int
}
