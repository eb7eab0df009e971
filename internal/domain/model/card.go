package model

import "telegram-tarot-bot/internal/domain"

// Card is a single tarot card entry from the catalog file.
// Immutable after load; the catalog never changes during the process lifetime.
type Card struct {
	ID          string
	Name        string
	Description string
	// Image is a file path or URL understood by the Telegram send-photo
	// primitive and by the web page as-is.
	Image string
}

func (c *Card) IsZero() bool { return c == nil || c.ID == "" }

// NewCard validates and constructs a card.
func NewCard(id, name, description, image string) (*Card, error) {
	if id == "" || name == "" || image == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Card{
		ID:          id,
		Name:        name,
		Description: description,
		Image:       image,
	}, nil
}
