package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// AdminOnly gates privileged handlers behind the static operator
// allow-list. There is no password flow: an id is either on the list or
// the command is refused.
func AdminOnly(isAdmin func(userID int64) bool, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			if !isAdmin(userID) {
				logger.Warn("Privileged command from non-operator",
					zap.Int64("user_id", userID),
					zap.String("text", c.Text()),
				)
				return c.Send("Эта команда доступна только операторам.")
			}

			return next(c)
		}
	}
}
