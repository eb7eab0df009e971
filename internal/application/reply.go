package application

import "telegram-tarot-bot/internal/domain/ports/adapter"

// Callback payloads routed by the Telegram adapter.
const (
	CallbackCardPrefix        = "card_"
	CallbackCheckSubscription = "check_subscription"
)

// PhotoReply asks the adapter to send an image with a caption.
type PhotoReply struct {
	Image   string
	Caption string
}

// Reply is what a facade handler produces for one interaction. A zero Reply
// means "nothing to show": the adapter only acknowledges the event.
type Reply struct {
	Text    string
	Buttons [][]adapter.InlineButton
	Photo   *PhotoReply
}

func (r Reply) IsZero() bool {
	return r.Text == "" && r.Photo == nil && len(r.Buttons) == 0
}
