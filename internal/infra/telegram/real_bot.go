package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-tarot-bot/internal/application"
	"telegram-tarot-bot/internal/config"
	"telegram-tarot-bot/internal/domain/ports/adapter"
	"telegram-tarot-bot/internal/infra/logging"
	"telegram-tarot-bot/internal/infra/metrics"
	red "telegram-tarot-bot/internal/infra/redis"
	"telegram-tarot-bot/internal/infra/worker"
)

// botAPI is the slice of *tgbotapi.BotAPI the adapter actually calls, split
// out so handler tests can drive the update flow without a live client.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

var _ botAPI = (*tgbotapi.BotAPI)(nil)

// RealBotAdapter implements adapter.TelegramBotAdapter over tgbotapi and runs
// the long-polling loop, dispatching updates through the worker pool so one
// slow handler does not stall the rest.
type RealBotAdapter struct {
	bot         botAPI
	cfg         *config.Config
	facade      *application.BotFacade
	rateLimiter *red.RateLimiter // nil when redis is not configured
	pool        *worker.Pool
	log         *zerolog.Logger

	routes       map[string]cbHandler
	prefixRoutes []prefixRoute

	cancelPolling context.CancelFunc
}

var _ adapter.TelegramBotAdapter = (*RealBotAdapter)(nil)

func NewRealBotAdapter(
	cfg *config.Config,
	rateLimiter *red.RateLimiter,
	pool *worker.Pool,
	logger *zerolog.Logger,
) (*RealBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if pool == nil {
		return nil, errors.New("worker pool is nil")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, err
	}
	return newAdapter(bot, cfg, rateLimiter, pool, logger), nil
}

func newAdapter(
	bot botAPI,
	cfg *config.Config,
	rateLimiter *red.RateLimiter,
	pool *worker.Pool,
	logger *zerolog.Logger,
) *RealBotAdapter {
	r := &RealBotAdapter{
		bot:         bot,
		cfg:         cfg,
		rateLimiter: rateLimiter,
		pool:        pool,
		log:         logging.Component(logger, "TelegramBot"),
	}
	// Route tables are built once; the closures read r.facade at call time,
	// so SetFacade can still run after construction.
	r.routes = map[string]cbHandler{
		application.CallbackCheckSubscription: func(ctx context.Context, id int64, _ string) application.Reply {
			return r.facade.HandleSubscriptionRecheck(ctx, id)
		},
	}
	r.prefixRoutes = []prefixRoute{
		{
			Prefix: application.CallbackCardPrefix,
			Fn: func(ctx context.Context, id int64, data string) application.Reply {
				return r.facade.HandleCardSelect(ctx, id, data)
			},
		},
	}
	return r
}

// SetFacade wires the facade after construction. The facade needs the adapter
// (for the gate's membership checks), so wiring happens in two steps.
func (r *RealBotAdapter) SetFacade(f *application.BotFacade) { r.facade = f }

// StartPolling registers the command menu and polls Telegram for updates
// until ctx is canceled. Each update is handled on the worker pool.
func (r *RealBotAdapter) StartPolling(ctx context.Context) error {
	if r.facade == nil {
		return errors.New("bot facade is not set")
	}

	if err := r.registerCommands(); err != nil {
		// The menu is cosmetic; commands still work without it.
		r.log.Warn().Err(err).Msg("setMyCommands failed")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	r.log.Info().Str("channel", r.cfg.Bot.Channel).Msg("polling started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case up := <-updates:
			if err := r.pool.Submit(func(taskCtx context.Context) error {
				return r.handleUpdate(taskCtx, up)
			}); err != nil {
				r.log.Warn().Err(err).Int("update_id", up.UpdateID).Msg("update dropped")
			}
		}
	}
}

func (r *RealBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

func (r *RealBotAdapter) registerCommands() error {
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Greeting and the web app link"},
		tgbotapi.BotCommand{Command: "tarot", Description: "Pick a tarot card"},
	)
	_, err := r.bot.Request(cmds)
	return err
}

func (r *RealBotAdapter) handleUpdate(ctx context.Context, up tgbotapi.Update) error {
	ctx = logging.WithTraceID(ctx, uuid.NewString())

	if up.CallbackQuery != nil {
		metrics.IncUpdate("callback")
		return r.handleCallback(ctx, up.CallbackQuery)
	}
	if up.Message != nil && up.Message.From != nil {
		return r.handleMessage(ctx, up.Message)
	}
	metrics.IncUpdate("other")
	return nil
}

// commandOf extracts the leading /command from a message text, or "".
func commandOf(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	// strip an @BotName suffix used in group mentions
	return strings.SplitN(fields[0], "@", 2)[0]
}

func (r *RealBotAdapter) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	userID := msg.From.ID
	ctx = logging.WithTgID(ctx, userID)
	log := logging.With(ctx, r.log)

	command := commandOf(msg.Text)
	if command == "" {
		metrics.IncUpdate("other")
		return nil
	}
	metrics.IncUpdate("command")

	if !r.allowRate(ctx, userID, command) {
		metrics.IncRateLimited()
		return r.SendMessage(ctx, adapter.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "Too many requests. Please slow down and try again in a minute.",
		})
	}

	var reply application.Reply
	switch command {
	case "/start":
		reply = r.facade.HandleStart(ctx, userID)
	case "/tarot":
		reply = r.facade.HandleTarot(ctx, userID)
	default:
		log.Debug().Str("command", command).Msg("unknown command ignored")
		return nil
	}
	return r.deliver(ctx, msg.Chat.ID, reply)
}

type cbHandler func(ctx context.Context, userID int64, data string) application.Reply

type prefixRoute struct {
	Prefix string
	Fn     cbHandler
}

// handleCallback routes a callback event and acknowledges it exactly once,
// whatever branch was taken: an unacknowledged callback leaves the client
// spinner hanging.
func (r *RealBotAdapter) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	userID := cb.From.ID
	ctx = logging.WithTgID(ctx, userID)
	log := logging.With(ctx, r.log)

	defer func() {
		if err := r.AnswerCallback(ctx, cb.ID); err != nil {
			log.Warn().Err(err).Msg("answerCallback failed")
		}
	}()

	var reply application.Reply
	if h, ok := r.routes[cb.Data]; ok {
		reply = h(ctx, userID, cb.Data)
	} else {
		matched := false
		for _, route := range r.prefixRoutes {
			if strings.HasPrefix(cb.Data, route.Prefix) {
				reply = route.Fn(ctx, userID, cb.Data)
				matched = true
				break
			}
		}
		if !matched {
			log.Debug().Str("data", cb.Data).Msg("unknown callback payload ignored")
			return nil
		}
	}

	isCardSelect := strings.HasPrefix(cb.Data, application.CallbackCardPrefix)
	if reply.IsZero() {
		if isCardSelect {
			metrics.IncCardSend("miss")
		}
		return nil
	}

	if err := r.deliver(ctx, cb.From.ID, reply); err != nil {
		if isCardSelect && reply.Photo != nil {
			metrics.IncCardSend("error")
		}
		// The callback is still acknowledged by the deferred call, so the
		// client does not hang; the failure stays server-side.
		log.Warn().Err(err).Str("data", cb.Data).Msg("callback reply delivery failed")
		return nil
	}
	if isCardSelect && reply.Photo != nil {
		metrics.IncCardSend("ok")
	}
	return nil
}

// deliver sends a facade reply through the appropriate primitive.
func (r *RealBotAdapter) deliver(ctx context.Context, chatID int64, reply application.Reply) error {
	if reply.IsZero() {
		return nil
	}
	if reply.Photo != nil {
		return r.SendPhoto(ctx, adapter.SendPhotoParams{
			ChatID:  chatID,
			Image:   reply.Photo.Image,
			Caption: reply.Photo.Caption,
		})
	}
	return r.SendMessage(ctx, adapter.SendMessageParams{
		ChatID:  chatID,
		Text:    reply.Text,
		Buttons: reply.Buttons,
	})
}

// allowRate applies the per-user per-command limiter. Limiter errors fail
// open: redis being down must not lock users out.
func (r *RealBotAdapter) allowRate(ctx context.Context, userID int64, command string) bool {
	if r.rateLimiter == nil {
		return true
	}
	window := time.Duration(r.cfg.RateLimit.WindowSeconds) * time.Second
	allowed, err := r.rateLimiter.Allow(ctx, red.UserCommandKey(userID, command), r.cfg.RateLimit.PerCommand, window)
	if err != nil {
		logging.With(ctx, r.log).Warn().Err(err).Msg("rate limiter unavailable; allowing")
		return true
	}
	return allowed
}

// ---- adapter.TelegramBotAdapter ----

func (r *RealBotAdapter) SendMessage(ctx context.Context, params adapter.SendMessageParams) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg := tgbotapi.NewMessage(params.ChatID, params.Text)
	if len(params.Buttons) > 0 {
		msg.ReplyMarkup = buildInlineKeyboard(params.Buttons)
	}
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealBotAdapter) SendPhoto(ctx context.Context, params adapter.SendPhotoParams) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg := tgbotapi.NewPhoto(params.ChatID, photoFile(params.Image))
	msg.Caption = params.Caption
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealBotAdapter) AnswerCallback(ctx context.Context, callbackID string) error {
	_, err := r.bot.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}

func (r *RealBotAdapter) ChatMemberStatus(ctx context.Context, channel string, userID int64) (string, error) {
	member, err := r.bot.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			SuperGroupUsername: "@" + channel,
			UserID:             userID,
		},
	})
	if err != nil {
		return "", err
	}
	return member.Status, nil
}

// photoFile picks the tgbotapi file source for a catalog image reference.
func photoFile(image string) tgbotapi.RequestFileData {
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return tgbotapi.FileURL(image)
	}
	return tgbotapi.FilePath(image)
}

// buildInlineKeyboard converts port-level button rows into tgbotapi markup.
func buildInlineKeyboard(rows [][]adapter.InlineButton) tgbotapi.InlineKeyboardMarkup {
	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		r := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			var kb tgbotapi.InlineKeyboardButton
			switch {
			case btn.URL != "":
				kb = tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL)
			case btn.Data != "":
				kb = tgbotapi.NewInlineKeyboardButtonData(label, btn.Data)
			default:
				// safe fallback: use text as callback data
				kb = tgbotapi.NewInlineKeyboardButtonData(label, label)
			}
			r = append(r, kb)
		}
		kbRows = append(kbRows, r)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kbRows...)
}
