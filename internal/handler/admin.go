package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// parseSayArgs splits "/say <id> <text>" arguments.
func parseSayArgs(args []string) (int64, string, error) {
	if len(args) < 2 {
		return 0, "", fmt.Errorf("нужно: /say <id> <текст>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("некорректный id %q", args[0])
	}
	return id, strings.Join(args[1:], " "), nil
}

// parseScheduleArgs splits "/schedule <DD.MM.YYYY> <HH:MM> <id> <text>".
func parseScheduleArgs(args []string) (when string, id int64, text string, err error) {
	if len(args) < 4 {
		return "", 0, "", fmt.Errorf("нужно: /schedule <ДД.ММ.ГГГГ> <ЧЧ:ММ> <id> <текст>")
	}
	id, err = strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return "", 0, "", fmt.Errorf("некорректный id %q", args[2])
	}
	return args[0] + " " + args[1], id, strings.Join(args[3:], " "), nil
}

// handleSay injects a direct message to an arbitrary user.
func (h *Handler) handleSay(c tele.Context) error {
	id, text, err := parseSayArgs(c.Args())
	if err != nil {
		return c.Send(err.Error())
	}

	if _, err := h.bot.Send(&tele.User{ID: id}, text); err != nil {
		h.logger.Error("Failed to send direct message",
			zap.Int64("target_user_id", id),
			zap.Error(err),
		)
		return c.Send("Не удалось отправить сообщение.")
	}

	return c.Send("Отправлено.")
}

// handleBroadcast sends the payload to every known user.
func (h *Handler) handleBroadcast(c tele.Context) error {
	text := strings.TrimSpace(c.Message().Payload)
	if text == "" {
		return c.Send("Нужно: /broadcast <текст>")
	}

	ids, err := h.users.AllUserIDs()
	if err != nil {
		h.logger.Error("Failed to list users for broadcast", zap.Error(err))
		return c.Send(errorText)
	}

	sent := 0
	for _, id := range ids {
		if _, err := h.bot.Send(&tele.User{ID: id}, text); err != nil {
			h.logger.Error("Broadcast delivery failed",
				zap.Int64("target_user_id", id),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	return c.Send(fmt.Sprintf("Разослано %d из %d.", sent, len(ids)))
}

// handleSchedule enqueues a deferred message.
func (h *Handler) handleSchedule(c tele.Context) error {
	when, id, text, err := parseScheduleArgs(c.Args())
	if err != nil {
		return c.Send(err.Error())
	}

	dueAt, err := h.schedule.Schedule(id, text, when)
	if err != nil {
		return c.Send(err.Error())
	}

	return c.Send(fmt.Sprintf("Запланировано на %s.", dueAt.Format("02.01.2006 15:04")))
}

// handleRefresh reloads the catalog. On failure the old snapshot stays.
func (h *Handler) handleRefresh(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	entries, err := h.loader.Fetch(ctx)
	if err != nil {
		h.logger.Error("Catalog refresh failed", zap.Error(err))
		return c.Send("Не удалось обновить каталог, работает прежняя версия.")
	}

	h.catalog.Replace(entries)
	h.logger.Info("Catalog refreshed", zap.Int("entries", len(entries)))
	return c.Send(fmt.Sprintf("Каталог обновлён: %d игр.", len(entries)))
}

// handleCancel discards the operator's pending order.
func (h *Handler) handleCancel(c tele.Context) error {
	return c.Send(h.orders.Cancel(c.Sender().ID))
}
