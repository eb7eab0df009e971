//go:build !integration

package model

import (
	"errors"
	"testing"
	"time"

	"telegram-tarot-bot/internal/domain"
)

// --- Card Model Tests ---

func TestNewCard(t *testing.T) {
	t.Run("should create a new card successfully", func(t *testing.T) {
		card, err := NewCard("1", "The Fool", "New beginnings.", "images/fool.jpg")
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if card == nil {
			t.Fatal("expected card to be non-nil, but got nil")
		}
		if card.ID != "1" || card.Name != "The Fool" {
			t.Errorf("unexpected card fields: %+v", card)
		}
		if card.IsZero() {
			t.Error("expected a constructed card to not be zero")
		}
	})

	t.Run("should fail without an id", func(t *testing.T) {
		card, err := NewCard("", "The Fool", "New beginnings.", "images/fool.jpg")
		if err == nil {
			t.Fatal("expected an error for empty id, but got nil")
		}
		if card != nil {
			t.Error("expected card to be nil on error")
		}
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("should fail without an image reference", func(t *testing.T) {
		if _, err := NewCard("1", "The Fool", "desc", ""); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("empty description is allowed", func(t *testing.T) {
		if _, err := NewCard("1", "The Fool", "", "images/fool.jpg"); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

// --- ScheduledMessage Tests ---

func TestNewScheduledMessage(t *testing.T) {
	t.Run("should accept a valid date", func(t *testing.T) {
		msg, err := NewScheduledMessage("2025-03-09", "Full moon spread")
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if msg.Date != "2025-03-09" {
			t.Errorf("unexpected date %q", msg.Date)
		}
	})

	t.Run("should reject malformed dates", func(t *testing.T) {
		for _, date := range []string{"", "09-03-2025", "2025/03/09", "2025-13-01", "today"} {
			if _, err := NewScheduledMessage(date, "text"); !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("date %q: expected ErrInvalidArgument, got %v", date, err)
			}
		}
	})

	t.Run("should reject empty text", func(t *testing.T) {
		if _, err := NewScheduledMessage("2025-03-09", ""); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	at := time.Date(2025, 3, 9, 23, 30, 0, 0, loc)
	if got := DateKey(at); got != "2025-03-09" {
		t.Errorf("expected 2025-03-09, got %q", got)
	}
}

// --- SubscriptionCheck Tests ---

func TestClassifyMemberStatus(t *testing.T) {
	for _, status := range []string{"member", "administrator", "creator"} {
		if !ClassifyMemberStatus(status).Allowed() {
			t.Errorf("status %q should classify as subscribed", status)
		}
	}
	for _, status := range []string{"left", "kicked", "restricted", "unknown", ""} {
		check := ClassifyMemberStatus(status)
		if check.Allowed() {
			t.Errorf("status %q should not classify as subscribed", status)
		}
		if check.State != SubscriptionStateNotSubscribed {
			t.Errorf("status %q: expected not_subscribed, got %s", status, check.State)
		}
	}
}

func TestFailedCheck(t *testing.T) {
	check := FailedCheck("telegram: bad request")
	if check.Allowed() {
		t.Error("a failed check must not grant access")
	}
	if check.State != SubscriptionStateCheckFailed {
		t.Errorf("expected check_failed, got %s", check.State)
	}
	if check.Reason != "telegram: bad request" {
		t.Errorf("reason not preserved: %q", check.Reason)
	}
}
