package handler

import (
	tele "gopkg.in/telebot.v3"
)

// TelebotSender adapts the bot to the scheduler's Sender interface.
type TelebotSender struct {
	bot *tele.Bot
}

// NewTelebotSender creates a sender over the bot.
func NewTelebotSender(bot *tele.Bot) *TelebotSender {
	return &TelebotSender{bot: bot}
}

// Send delivers one text message to a user.
func (s *TelebotSender) Send(userID int64, text string) error {
	_, err := s.bot.Send(&tele.User{ID: userID}, text)
	return err
}
