package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"gamebot/internal/domain"
)

// Extraction patterns. Each field is anchored independently; a miss
// leaves the field empty instead of failing the whole pass.
var (
	orderNumberRe  = regexp.MustCompile(`(?i)заказ\s*№\s*(\d+)`)
	numberedLineRe = regexp.MustCompile(`^\s*\d+[.)]\s`)
	// Price-split forms of the numbered catalog line: "1. <title>: <price> <rest>"
	// and, without a colon, a price of at least three digits.
	itemColonRe = regexp.MustCompile(`^\s*\d+[.)]\s*(.+?)\s*[::]\s*(\d+)\s*(?:руб\.?|р\.?|₽)?\s*(.*)$`)
	itemBareRe  = regexp.MustCompile(`^\s*\d+[.)]\s*(.+?)\s+(\d{3,})\s*(?:руб\.?|р\.?|₽)?\s*(.*)$`)

	customerRe  = regexp.MustCompile(`(?im)^\s*(?:имя|name|покупатель|клиент)\s*[::]\s*(.+)$`)
	orderDateRe = regexp.MustCompile(`(?im)^\s*дата[^::\n]*[::]\s*(.+)$`)
	bareDateRe  = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)
	promoRe     = regexp.MustCompile(`(?i)промокод\s*[::]?\s*(\S+)`)
	discountRe  = regexp.MustCompile(`(?i)скидка\s*[::]?\s*(\d+)\s*%`)
	contactRe   = regexp.MustCompile(`(?:^|\s)(@[A-Za-z0-9_]{3,})`)

	rentalTypeRe = regexp.MustCompile(`(?i)(п\d+)`)
	daysRe       = regexp.MustCompile(`(?i)(\d+)\s*дн`)

	accountIDRe = regexp.MustCompile(`(?i)(?:аккаунт|акк|лот)\s*(?:№|#)?\s*(\d+)`)
	lotNumberRe = regexp.MustCompile(`№\s*(\d+)`)
	emailRe     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

// displayNames substitutes known customer first names with the nickname
// used in confirmations. Applied to the name field only.
var displayNames = map[string]string{
	"алексей":   "Лёша",
	"александр": "Саша",
	"дмитрий":   "Дима",
	"евгений":   "Женя",
	"екатерина": "Катя",
}

const rentalDateLayout = "02.01.2006"

// ParseOrder runs the order-info extraction pass over forwarded text.
// The second return is false when the text carries no order number, i.e.
// it is not an order message at all. Missing optional fields are empty,
// never errors.
func ParseOrder(text string) (domain.PendingOrder, bool) {
	var order domain.PendingOrder

	m := orderNumberRe.FindStringSubmatch(text)
	if m == nil {
		return order, false
	}
	order.OrderNumber = m[1]

	if line := firstNumberedLine(text); line != "" {
		title, rest := splitItemLine(line)
		order.GameName = title
		order.Platform = detectPlatform(rest)
		if rm := rentalTypeRe.FindStringSubmatch(rest); rm != nil {
			order.RentalType = strings.ToUpper(rm[1])
		}
		if dm := daysRe.FindStringSubmatch(rest); dm != nil {
			order.Days, _ = strconv.Atoi(dm[1])
		}
	}

	if cm := customerRe.FindStringSubmatch(text); cm != nil {
		order.CustomerName = strings.TrimSpace(cm[1])
	}
	if dm := orderDateRe.FindStringSubmatch(text); dm != nil {
		order.OrderDate = strings.TrimSpace(dm[1])
	} else if bare := bareDateRe.FindString(text); bare != "" {
		order.OrderDate = bare
	}
	if pm := promoRe.FindStringSubmatch(text); pm != nil {
		order.PromoCode = pm[1]
	}
	if dm := discountRe.FindStringSubmatch(text); dm != nil {
		order.Discount = dm[1] + "%"
	}
	if tm := contactRe.FindStringSubmatch(text); tm != nil {
		order.Contact = tm[1]
	}

	return order, true
}

// firstNumberedLine returns the first catalog-style numbered line.
func firstNumberedLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if numberedLineRe.MatchString(line) {
			return line
		}
	}
	return ""
}

// splitItemLine splits a numbered catalog line into the title and the
// trailing platform/rental/day-count portion, using the price token as
// the split point.
func splitItemLine(line string) (title, rest string) {
	if m := itemColonRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), m[3]
	}
	if m := itemBareRe.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), m[3]
	}
	// No price token: the whole remainder is the title.
	trimmed := numberedLineRe.ReplaceAllString(line, "")
	return strings.TrimSpace(trimmed), ""
}

func detectPlatform(text string) string {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "PS5"):
		return "PS5"
	case strings.Contains(upper, "PS4"):
		return "PS4"
	default:
		return ""
	}
}

// ParseAccount runs the account-info extraction pass over forwarded text.
// The password is the first line after the email with no embedded
// whitespace, no "@" and at least four characters; when no email matched,
// the scan falls back to walking the text from the end.
func ParseAccount(text string) domain.AccountInfo {
	var acc domain.AccountInfo

	if m := accountIDRe.FindStringSubmatch(text); m != nil {
		acc.Identifier = m[1]
	} else if m := lotNumberRe.FindStringSubmatch(text); m != nil {
		acc.Identifier = m[1]
	}

	acc.Platform = detectPlatform(text)
	acc.Email = emailRe.FindString(text)

	lines := strings.Split(text, "\n")
	if acc.Email != "" {
		for i, line := range lines {
			if !strings.Contains(line, acc.Email) {
				continue
			}
			for _, candidate := range lines[i+1:] {
				if pw := passwordCandidate(candidate); pw != "" {
					acc.Password = pw
					break
				}
			}
			break
		}
	} else {
		for i := len(lines) - 1; i >= 0; i-- {
			if pw := passwordCandidate(lines[i]); pw != "" {
				acc.Password = pw
				break
			}
		}
	}

	return acc
}

func passwordCandidate(line string) string {
	trimmed := strings.TrimSpace(line)
	if len([]rune(trimmed)) < 4 {
		return ""
	}
	if strings.ContainsAny(trimmed, " \t") || strings.Contains(trimmed, "@") {
		return ""
	}
	return trimmed
}

// FormatSummary renders the combined confirmation. The rental end date is
// always today plus the day count, not whatever date the source text
// carried.
func FormatSummary(order domain.PendingOrder, acc domain.AccountInfo, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Заказ №%s\n\n", order.OrderNumber)
	fmt.Fprintf(&b, "Игра: %s\n", order.GameName)
	if platform := firstNonEmpty(order.Platform, acc.Platform); platform != "" {
		fmt.Fprintf(&b, "Платформа: %s\n", platform)
	}
	if order.RentalType != "" {
		fmt.Fprintf(&b, "Тип аренды: %s\n", order.RentalType)
	}
	if order.Days > 0 {
		until := now.AddDate(0, 0, order.Days).Format(rentalDateLayout)
		fmt.Fprintf(&b, "Срок: %d дн. (до %s)\n", order.Days, until)
	}
	if order.CustomerName != "" {
		fmt.Fprintf(&b, "Покупатель: %s\n", displayName(order.CustomerName))
	}
	if order.OrderDate != "" {
		fmt.Fprintf(&b, "Дата заказа: %s\n", order.OrderDate)
	}
	if order.PromoCode != "" {
		fmt.Fprintf(&b, "Промокод: %s\n", order.PromoCode)
	}
	if order.Discount != "" {
		fmt.Fprintf(&b, "Скидка: %s\n", order.Discount)
	}
	if order.Contact != "" {
		fmt.Fprintf(&b, "Телеграм: %s\n", order.Contact)
	}

	fmt.Fprintf(&b, "\nАккаунт: %s\nПочта: %s\nПароль: %s", acc.Identifier, acc.Email, acc.Password)
	return b.String()
}

func displayName(name string) string {
	if nick, ok := displayNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return nick
	}
	return name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Operator-facing replies of the two-step order exchange.
const (
	orderAcceptedPrompt = "Принял заказ №%s. Пришли данные аккаунта: номер, почта и пароль."
	accountRePrompt     = "Не хватает данных аккаунта: нужны номер, почта и пароль. Пришли ещё раз одним сообщением."
	orderCancelledText  = "Ок, заказ отменён."
	nothingToCancelText = "Сейчас нет заказа в работе."
)

// OrderService drives the privileged two-step order exchange: a forwarded
// order message opens a pending order, the next message is parsed as
// account data. A summary is emitted only when the account extraction is
// complete; partial data re-prompts.
type OrderService struct {
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	pending map[int64]*domain.PendingOrder
}

// NewOrderService creates a new order service
func NewOrderService(logger *zap.Logger) *OrderService {
	return &OrderService{
		logger:  logger,
		now:     time.Now,
		pending: make(map[int64]*domain.PendingOrder),
	}
}

// Process handles one operator message. The second return is false when
// the message belongs to the normal dialogue, not the order flow.
func (s *OrderService) Process(operatorID int64, text string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order, ok := s.pending[operatorID]; ok {
		acc := ParseAccount(text)
		if !acc.Complete() {
			return accountRePrompt, true
		}

		delete(s.pending, operatorID)
		s.logger.Info("Order assembled",
			zap.Int64("operator_id", operatorID),
			zap.String("order_number", order.OrderNumber),
		)
		return FormatSummary(*order, acc, s.now()), true
	}

	order, ok := ParseOrder(text)
	if !ok {
		return "", false
	}

	s.pending[operatorID] = &order
	return fmt.Sprintf(orderAcceptedPrompt, order.OrderNumber), true
}

// Cancel discards the operator's pending order, if any.
func (s *OrderService) Cancel(operatorID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[operatorID]; !ok {
		return nothingToCancelText
	}
	delete(s.pending, operatorID)
	return orderCancelledText
}
