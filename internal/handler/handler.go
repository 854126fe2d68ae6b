package handler

import (
	"gamebot/internal/catalog"
	"gamebot/internal/config"
	"gamebot/internal/middleware"
	"gamebot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const errorText = "Произошла ошибка. Попробуйте позже."

// Handler manages all bot interactions
type Handler struct {
	bot      *tele.Bot
	cfg      *config.Config
	dialog   *service.DialogService
	users    *service.UserService
	orders   *service.OrderService
	schedule *service.ScheduleService
	catalog  *catalog.Index
	loader   *catalog.Loader
	logger   *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	cfg *config.Config,
	dialog *service.DialogService,
	users *service.UserService,
	orders *service.OrderService,
	schedule *service.ScheduleService,
	catalogIndex *catalog.Index,
	loader *catalog.Loader,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:      bot,
		cfg:      cfg,
		dialog:   dialog,
		users:    users,
		orders:   orders,
		schedule: schedule,
		catalog:  catalogIndex,
		loader:   loader,
		logger:   logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle(tele.OnText, h.handleText)

	adminOnly := middleware.AdminOnly(h.cfg.IsAdmin, h.logger)
	h.bot.Handle("/say", h.handleSay, adminOnly)
	h.bot.Handle("/broadcast", h.handleBroadcast, adminOnly)
	h.bot.Handle("/schedule", h.handleSchedule, adminOnly)
	h.bot.Handle("/refresh", h.handleRefresh, adminOnly)
	h.bot.Handle("/cancel", h.handleCancel, adminOnly)
}

// replyMarkup renders a small fixed set of labeled choices as a reply
// keyboard; pressing one sends its label back as a plain text intent.
func replyMarkup(labels []string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}

	var rows []tele.Row
	for _, label := range labels {
		rows = append(rows, menu.Row(menu.Text(label)))
	}
	menu.Reply(rows...)
	return menu
}
