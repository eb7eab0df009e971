// File: internal/infra/storage/jsonfile/catalog.go
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"telegram-tarot-bot/internal/domain"
	"telegram-tarot-bot/internal/domain/model"
	"telegram-tarot-bot/internal/domain/ports/repository"
)

// cardRecord mirrors one value of the catalog file's top-level object.
type cardRecord struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// CardCatalog is the in-memory catalog bulk-loaded at startup.
// It is never mutated after construction and is safe for concurrent reads.
type CardCatalog struct {
	byID    map[string]*model.Card
	ordered []*model.Card
}

var _ repository.CardCatalog = (*CardCatalog)(nil)

// LoadCardCatalog reads and validates the catalog file. Any malformed entry
// fails the load: the process must not start with an incomplete catalog.
func LoadCardCatalog(path string) (*CardCatalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card catalog: %w", err)
	}
	var raw map[string]cardRecord
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse card catalog %s: %w", path, err)
	}
	return NewCardCatalog(raw)
}

// NewCardCatalog validates records and builds the immutable catalog.
func NewCardCatalog(raw map[string]cardRecord) (*CardCatalog, error) {
	if len(raw) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	byID := make(map[string]*model.Card, len(raw))
	ordered := make([]*model.Card, 0, len(raw))
	for id, rec := range raw {
		card, err := model.NewCard(id, rec.Name, rec.Description, rec.Image)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", id, err)
		}
		byID[id] = card
		ordered = append(ordered, card)
	}
	sort.Slice(ordered, func(i, j int) bool { return idLess(ordered[i].ID, ordered[j].ID) })
	return &CardCatalog{byID: byID, ordered: ordered}, nil
}

// idLess orders numeric identifiers numerically so "2" precedes "10";
// non-numeric identifiers fall back to lexicographic order after numeric ones.
func idLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return ai < bi
	case aerr == nil:
		return true
	case berr == nil:
		return false
	default:
		return a < b
	}
}

func (c *CardCatalog) Get(id string) (*model.Card, error) {
	card, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	return card, nil
}

func (c *CardCatalog) List() []*model.Card {
	// Copy so callers cannot reorder the shared backing slice.
	out := make([]*model.Card, len(c.ordered))
	copy(out, c.ordered)
	return out
}

func (c *CardCatalog) Len() int { return len(c.ordered) }
