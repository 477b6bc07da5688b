package telegram

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/tuskvoice/internal/config"
	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/pkg/log"
)

const baseContextKey = "base_context"

type Conversation interface {
	Context(sessionID, userID string) core.DialogueContext
	SubmitUserTurn(ctx context.Context, text string, dc core.DialogueContext) string
}

type Router interface {
	Execute(ctx context.Context, ref core.SessionRef, input string) (string, bool)
}

type Bot struct {
	bot     *tele.Bot
	sender  *sender
	conv    Conversation
	router  Router
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	conv Conversation,
	router Router,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		sender:  newSender(b),
		conv:    conv,
		router:  router,
		ownerID: cfg.OwnerID,
	}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || !bot.allowed(c.Sender().ID) {
				return nil
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) allowed(senderID int64) bool {
	return b.ownerID == 0 || senderID == b.ownerID
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	ref := refFor(c.Chat().ID, c.Sender().ID)

	_ = c.Notify(tele.Typing)

	return b.sender.sendMarkdown(ctx, c.Chat(), b.respond(ctx, ref, c.Text()), false)
}

// respond answers slash commands through the router and everything else
// through the pipeline. It always returns something to send.
func (b *Bot) respond(ctx context.Context, ref core.SessionRef, text string) string {
	if out, ok := b.router.Execute(ctx, ref, text); ok {
		return out
	}
	return b.conv.SubmitUserTurn(ctx, text, b.conv.Context(ref.SessionID, ref.UserID))
}

// refFor maps a chat to a session and a sender to a tone owner, so group
// members share memory but keep their own tone.
func refFor(chatID, senderID int64) core.SessionRef {
	return core.SessionRef{
		SessionID: "telegram-" + strconv.FormatInt(chatID, 10),
		UserID:    "telegram-" + strconv.FormatInt(senderID, 10),
	}
}
