package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/suspectuso/send-approval-bot/internal/workflow"
)

// UpdateHandler consumes raw updates received while polling
type UpdateHandler func(ctx context.Context, update *models.Update)

// Bot is the messaging gateway: it sends and edits chat messages
type Bot struct {
	bot *bot.Bot
	log *slog.Logger
}

// New creates a new telegram bot. handler receives updates in polling mode
// and may be nil when updates arrive through the webhook server.
func New(token string, handler UpdateHandler, log *slog.Logger, opts ...bot.Option) (*Bot, error) {
	b := &Bot{log: log}

	if handler != nil {
		opts = append(opts, bot.WithDefaultHandler(func(ctx context.Context, _ *bot.Bot, update *models.Update) {
			handler(ctx, update)
		}))
	}

	tgBot, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	b.bot = tgBot
	return b, nil
}

// Start starts long polling and blocks until ctx is done
func (b *Bot) Start(ctx context.Context) {
	b.bot.Start(ctx)
}

// GetBot returns the underlying bot instance
func (b *Bot) GetBot() *bot.Bot {
	return b.bot
}

// Deliver sends or edits one outbound message
func (b *Bot) Deliver(ctx context.Context, out workflow.Outbound) error {
	var parseMode models.ParseMode
	if out.HTML {
		parseMode = models.ParseModeHTML
	}

	if out.Edit {
		params := &bot.EditMessageTextParams{
			ChatID:    out.ChatID,
			MessageID: out.MessageID,
			Text:      out.Text,
			ParseMode: parseMode,
		}
		if kb := inlineMarkup(out.Inline); kb != nil {
			params.ReplyMarkup = kb
		}
		if _, err := b.bot.EditMessageText(ctx, params); err != nil {
			return fmt.Errorf("edit message %d in %d: %w", out.MessageID, out.ChatID, err)
		}
		return nil
	}

	params := &bot.SendMessageParams{
		ChatID:    out.ChatID,
		Text:      out.Text,
		ParseMode: parseMode,
	}
	if kb := replyMarkup(out.Reply); kb != nil {
		params.ReplyMarkup = kb
	} else if kb := inlineMarkup(out.Inline); kb != nil {
		params.ReplyMarkup = kb
	}
	if _, err := b.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("send message to %d: %w", out.ChatID, err)
	}
	return nil
}

// AnswerCallback removes the loading state from a pressed button
func (b *Bot) AnswerCallback(ctx context.Context, callbackID string) error {
	_, err := b.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
	})
	return err
}
