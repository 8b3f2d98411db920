// Package telegram implements an optional Telegram frontend for the relay.
// When a bot token is configured, incoming messages are answered through the
// same chat service as the HTTP API: canned answers first, then the
// generation backend.
package telegram

import (
	"context"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/nichirin/internal/chat"
)

const errorReply = "Sorry, something went wrong while answering. Please try again."

// NewBot creates a Telegram bot whose default handler relays every text
// message through the chat service.
func NewBot(token string, log *slog.Logger, svc *chat.Service) (*tgbot.Bot, error) {
	logger := log.With("component", "telegram_bot")

	opts := []tgbot.Option{
		tgbot.WithDefaultHandler(newMessageHandler(logger, svc)),
	}

	b, err := tgbot.New(token, opts...)
	if err != nil {
		return nil, err
	}

	logger.Info("Telegram bot initialized")
	return b, nil
}

func newMessageHandler(log *slog.Logger, svc *chat.Service) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		if update.Message == nil || update.Message.Text == "" {
			return
		}

		chatID := update.Message.Chat.ID
		log.InfoContext(ctx, "Processing Telegram message", "chat_id", chatID)

		reply, err := svc.Reply(ctx, update.Message.Text)
		if err != nil {
			log.ErrorContext(ctx, "Failed to answer Telegram message", "chat_id", chatID, "error", err)
			reply = errorReply
		}

		if _, err := b.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: reply}); err != nil {
			log.ErrorContext(ctx, "Failed to send Telegram reply", "chat_id", chatID, "error", err)
		}
	}
}
