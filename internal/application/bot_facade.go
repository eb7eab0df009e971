package application

import (
	"context"
	"fmt"
	"strings"

	"telegram-tarot-bot/internal/domain/ports/adapter"
	"telegram-tarot-bot/internal/infra/logging"
	"telegram-tarot-bot/internal/usecase"

	"github.com/rs/zerolog"
)

// BotFacade composes usecases into the bot's command handlers. Every handler
// runs the subscription gate before its payload; denied users always get the
// same actionable prompt (subscribe link + recheck button), never a raw error.
type BotFacade struct {
	SubUC  usecase.SubscriptionUseCase
	CardUC usecase.CardUseCase

	channel   string
	webAppURL string
	log       *zerolog.Logger
}

func NewBotFacade(
	subUC usecase.SubscriptionUseCase,
	cardUC usecase.CardUseCase,
	channel string,
	webAppURL string,
	logger *zerolog.Logger,
) *BotFacade {
	return &BotFacade{
		SubUC:     subUC,
		CardUC:    cardUC,
		channel:   channel,
		webAppURL: webAppURL,
		log:       logging.Component(logger, "BotFacade"),
	}
}

// deniedReply is the Denied-state prompt: it names the required channel and
// offers a subscribe link plus a recheck action.
func (b *BotFacade) deniedReply(text string) Reply {
	return Reply{
		Text: text,
		Buttons: [][]adapter.InlineButton{
			{{Text: "Subscribe", URL: "https://t.me/" + b.channel}},
			{{Text: "Check subscription", Data: CallbackCheckSubscription}},
		},
	}
}

func (b *BotFacade) subscribePrompt() Reply {
	return b.deniedReply(fmt.Sprintf("To use this bot, subscribe to the channel: @%s", b.channel))
}

// HandleStart greets a subscribed user and offers the companion web surface.
func (b *BotFacade) HandleStart(ctx context.Context, userID int64) Reply {
	if !b.SubUC.IsSubscribed(ctx, userID) {
		return b.subscribePrompt()
	}
	return Reply{
		Text: "Hi! I'm a tarot spread bot. Pick an action from the menu.",
		Buttons: [][]adapter.InlineButton{
			{{Text: "Open the web app", URL: b.webAppURL}},
		},
	}
}

// HandleTarot offers one button per catalog card, two per row.
func (b *BotFacade) HandleTarot(ctx context.Context, userID int64) Reply {
	if !b.SubUC.IsSubscribed(ctx, userID) {
		return b.subscribePrompt()
	}
	cards := b.CardUC.List(ctx)
	var rows [][]adapter.InlineButton
	var row []adapter.InlineButton
	for _, card := range cards {
		row = append(row, adapter.InlineButton{
			Text: card.Name,
			Data: CallbackCardPrefix + card.ID,
		})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return Reply{Text: "Pick a card:", Buttons: rows}
}

// HandleCardSelect resolves a card_<id> callback payload. An unknown or
// malformed identifier is a normal "nothing to show" outcome, not an error:
// the adapter still acknowledges the event.
func (b *BotFacade) HandleCardSelect(ctx context.Context, userID int64, data string) Reply {
	if !b.SubUC.IsSubscribed(ctx, userID) {
		return b.subscribePrompt()
	}
	id := strings.TrimPrefix(data, CallbackCardPrefix)
	if id == data || id == "" {
		b.log.Debug().Str("data", data).Msg("malformed card callback payload")
		return Reply{}
	}
	card, err := b.CardUC.Get(ctx, id)
	if err != nil {
		b.log.Debug().Str("card_id", id).Msg("card callback for unknown id")
		return Reply{}
	}
	return Reply{
		Photo: &PhotoReply{
			Image:   card.Image,
			Caption: fmt.Sprintf("*%s*\n\n%s", card.Name, card.Description),
		},
	}
}

// HandleSubscriptionRecheck re-runs the gate for the recheck button. Invoking
// it twice with no membership change yields the same reply both times.
func (b *BotFacade) HandleSubscriptionRecheck(ctx context.Context, userID int64) Reply {
	if b.SubUC.IsSubscribed(ctx, userID) {
		return Reply{Text: "You are already subscribed to the channel!"}
	}
	return b.deniedReply(fmt.Sprintf("You are not subscribed to @%s. Subscribe to continue.", b.channel))
}
