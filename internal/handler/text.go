package handler

import (
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const startText = "Привет! Напиши название игры или её часть, и я пришлю ссылку на сайт с этой игрой.\nА если не знаешь, во что поиграть — напиши «совет»."

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	if err := h.users.EnsureUserExists(userID, c.Sender().Username); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return c.Send(errorText)
	}

	return c.Send(startText)
}

// handleText routes every plain text message through the dialogue engine.
// A failed turn is logged and abandoned; it never takes the process down
// or affects other users.
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	username := c.Sender().Username
	text := c.Text()

	// Commands are registered separately.
	if strings.HasPrefix(text, "/") {
		return nil
	}

	if err := h.users.EnsureUserExists(userID, username); err != nil {
		h.logger.Error("Failed to ensure user exists",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	if err := h.users.LogQuery(userID, username, text); err != nil {
		// The query log is best-effort; the turn goes on.
		h.logger.Error("Failed to log query",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	// Operators first pass through the order exchange: a forwarded order
	// or pending account data consumes the message.
	if h.cfg.IsAdmin(userID) {
		if reply, handled := h.orders.Process(userID, text); handled {
			return c.Send(reply)
		}
	}

	replies, err := h.dialog.Respond(userID, text)
	if err != nil {
		h.logger.Error("Dialog turn failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return c.Send(errorText)
	}

	for _, reply := range replies {
		var err error
		if len(reply.Buttons) > 0 {
			err = c.Send(reply.Text, replyMarkup(reply.Buttons))
		} else {
			err = c.Send(reply.Text)
		}
		if err != nil {
			h.logger.Error("Failed to send reply",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return nil
		}
	}

	return nil
}
