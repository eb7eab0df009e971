package adapter

import "context"

type InlineButton struct {
	Text string
	Data string
	URL  string
}

type SendMessageParams struct {
	ChatID  int64
	Text    string
	Buttons [][]InlineButton
}

type SendPhotoParams struct {
	ChatID  int64
	Image   string // local file path or URL
	Caption string
}

// TelegramBotAdapter is the outbound port to the chat platform.
// Every method performs a live network call; errors are surfaced to the caller
// which decides whether to degrade or propagate.
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, params SendMessageParams) error
	SendPhoto(ctx context.Context, params SendPhotoParams) error
	AnswerCallback(ctx context.Context, callbackID string) error
	// ChatMemberStatus returns the raw membership status string of userID in
	// the given channel (e.g. "member", "left", "administrator").
	ChatMemberStatus(ctx context.Context, channel string, userID int64) (string, error)
}
