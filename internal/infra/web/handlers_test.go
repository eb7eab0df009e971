//go:build !integration

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"telegram-tarot-bot/internal/domain"
	"telegram-tarot-bot/internal/domain/model"
)

// --- Mock CardUseCase ---

type mockCardUC struct {
	cards []*model.Card
}

func (m *mockCardUC) Get(ctx context.Context, id string) (*model.Card, error) {
	for _, c := range m.cards {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrCardNotFound
}

func (m *mockCardUC) List(ctx context.Context) []*model.Card { return m.cards }

func (m *mockCardUC) Sample(ctx context.Context, n int) []*model.Card {
	if n >= len(m.cards) {
		return m.cards
	}
	return m.cards[:n]
}

func newTestServer() *Server {
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	uc := &mockCardUC{cards: []*model.Card{
		{ID: "1", Name: "The Fool", Description: "New beginnings.", Image: "images/1.jpg"},
		{ID: "2", Name: "The Magician", Description: "Willpower.", Image: "images/2.jpg"},
		{ID: "3", Name: "The High Priestess", Description: "Intuition.", Image: "images/3.jpg"},
		{ID: "4", Name: "The Empress", Description: "Abundance.", Image: "images/4.jpg"},
		{ID: "5", Name: "The Emperor", Description: "Structure.", Image: "images/5.jpg"},
	}}
	return NewServer(uc, &logger)
}

func TestCardDescriptionHandler(t *testing.T) {
	router := newTestServer().Router()

	t.Run("known id returns the card fields", func(t *testing.T) {
		body := bytes.NewBufferString(`{"card_id": "2"}`)
		req := httptest.NewRequest(http.MethodPost, "/get_card_description", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Image       string `json:"image"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Name != "The Magician" || resp.Description != "Willpower." || resp.Image != "images/2.jpg" {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("unknown id returns 404 with an error field", func(t *testing.T) {
		body := bytes.NewBufferString(`{"card_id": "99"}`)
		req := httptest.NewRequest(http.MethodPost, "/get_card_description", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		var resp struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Error != "Card not found" {
			t.Errorf("unexpected error message %q", resp.Error)
		}
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		body := bytes.NewBufferString(`{"card_id": `)
		req := httptest.NewRequest(http.MethodPost, "/get_card_description", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestIndexHandler(t *testing.T) {
	router := newTestServer().Router()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type %q", ct)
	}
	page := rec.Body.String()
	for _, name := range []string{"The Fool", "The Magician", "The High Priestess", "The Empress"} {
		if !strings.Contains(page, name) {
			t.Errorf("page is missing sampled card %q", name)
		}
	}
	if strings.Count(page, "data-card-id=") != 4 {
		t.Errorf("expected exactly 4 rendered cards")
	}
}

func TestHealthz(t *testing.T) {
	router := newTestServer().Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
