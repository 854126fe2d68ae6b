package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gamebot/internal/domain"
	"gamebot/internal/testutil"
)

const sampleOrderText = `Заказ №123
1. Dying Light: 500 (П3 14дн) PS4
Имя: Алексей
Дата: 15.08.2026
Промокод: SUMMER
Скидка: 10%
Телеграм: @dying_fan`

func TestParseOrder(t *testing.T) {
	order, ok := ParseOrder(sampleOrderText)

	assert.True(t, ok)
	assert.Equal(t, "123", order.OrderNumber)
	assert.Equal(t, "Dying Light", order.GameName)
	assert.Equal(t, "П3", order.RentalType)
	assert.Equal(t, 14, order.Days)
	assert.Equal(t, "PS4", order.Platform)
	assert.Equal(t, "Алексей", order.CustomerName)
	assert.Equal(t, "15.08.2026", order.OrderDate)
	assert.Equal(t, "SUMMER", order.PromoCode)
	assert.Equal(t, "10%", order.Discount)
	assert.Equal(t, "@dying_fan", order.Contact)
}

func TestParseOrder_MinimalFields(t *testing.T) {
	order, ok := ParseOrder("Заказ №77\n1. Bloodborne: 300 (П2 7дн)")

	assert.True(t, ok)
	assert.Equal(t, "77", order.OrderNumber)
	assert.Equal(t, "Bloodborne", order.GameName)
	assert.Equal(t, "П2", order.RentalType)
	assert.Equal(t, 7, order.Days)
	// Absence of a field is not an error, it is recorded as missing.
	assert.Empty(t, order.CustomerName)
	assert.Empty(t, order.PromoCode)
	assert.Empty(t, order.Contact)
}

func TestParseOrder_NameVariants(t *testing.T) {
	order, ok := ParseOrder("Заказ №5\nName: Алексей")

	assert.True(t, ok)
	assert.Equal(t, "Алексей", order.CustomerName)
}

func TestParseOrder_TitleWithDigits(t *testing.T) {
	order, ok := ParseOrder("Заказ №9\n1. Dying Light 2: 700 (П3 7дн)")

	assert.True(t, ok)
	assert.Equal(t, "Dying Light 2", order.GameName)
}

func TestParseOrder_NotAnOrder(t *testing.T) {
	_, ok := ParseOrder("привет, когда будет Gran Turismo?")

	assert.False(t, ok)
}

func TestParseAccount(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected domain.AccountInfo
	}{
		{
			name: "full account",
			text: "Аккаунт №451 PS4\nПочта: rent451@mail.ru\nqwerty123",
			expected: domain.AccountInfo{
				Identifier: "451",
				Platform:   "PS4",
				Email:      "rent451@mail.ru",
				Password:   "qwerty123",
			},
		},
		{
			name: "password found scanning from the end when no email",
			text: "Лот №77\nPS5\npassword1",
			expected: domain.AccountInfo{
				Identifier: "77",
				Platform:   "PS5",
				Password:   "password1",
			},
		},
		{
			name: "short and spaced lines are not passwords",
			text: "Аккаунт №12\nПочта: a@b.ru\nab\nдва слова",
			expected: domain.AccountInfo{
				Identifier: "12",
				Email:      "a@b.ru",
			},
		},
		{
			name:     "nothing recognized",
			text:     "просто текст",
			expected: domain.AccountInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAccount(tt.text))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	order, ok := ParseOrder(sampleOrderText)
	assert.True(t, ok)

	acc := domain.AccountInfo{Identifier: "451", Platform: "PS4", Email: "rent451@mail.ru", Password: "qwerty123"}
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	summary := FormatSummary(order, acc, now)

	assert.Contains(t, summary, "Заказ №123")
	assert.Contains(t, summary, "Игра: Dying Light")
	// Known first names are shown by their nickname.
	assert.Contains(t, summary, "Покупатель: Лёша")
	assert.NotContains(t, summary, "Алексей")
	// Rental end is today plus the day count, not the date from the text.
	assert.Contains(t, summary, "до 12.09.2026")
	assert.Contains(t, summary, "Пароль: qwerty123")
}

func TestOrderService_TwoStepExchange(t *testing.T) {
	svc := NewOrderService(testutil.NewTestLogger())
	svc.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }

	// Step 1: forwarded order opens a pending order.
	reply, handled := svc.Process(10, sampleOrderText)
	assert.True(t, handled)
	assert.Contains(t, reply, "№123")

	// Partial account data re-prompts; no summary is ever emitted.
	reply, handled = svc.Process(10, "Почта: rent451@mail.ru")
	assert.True(t, handled)
	assert.Equal(t, accountRePrompt, reply)

	// Step 2: complete account data yields the combined summary once.
	reply, handled = svc.Process(10, "Аккаунт №451\nПочта: rent451@mail.ru\nqwerty123")
	assert.True(t, handled)
	assert.Contains(t, reply, "Заказ №123")
	assert.Contains(t, reply, "Аккаунт: 451")

	// The pending order is consumed.
	_, handled = svc.Process(10, "Аккаунт №451\nПочта: rent451@mail.ru\nqwerty123")
	assert.False(t, handled)
}

func TestOrderService_NonOrderTextPassesThrough(t *testing.T) {
	svc := NewOrderService(testutil.NewTestLogger())

	reply, handled := svc.Process(10, "god of war")

	assert.False(t, handled)
	assert.Empty(t, reply)
}

func TestOrderService_Cancel(t *testing.T) {
	svc := NewOrderService(testutil.NewTestLogger())

	assert.Equal(t, nothingToCancelText, svc.Cancel(10))

	_, handled := svc.Process(10, sampleOrderText)
	assert.True(t, handled)

	assert.Equal(t, orderCancelledText, svc.Cancel(10))

	// Cancelled: the next message is not treated as account data.
	_, handled = svc.Process(10, "Аккаунт №451\nПочта: rent451@mail.ru\nqwerty123")
	assert.False(t, handled)
}

func TestOrderService_PendingIsPerOperator(t *testing.T) {
	svc := NewOrderService(testutil.NewTestLogger())

	_, handled := svc.Process(10, sampleOrderText)
	assert.True(t, handled)

	// A different operator's message does not feed operator 10's order.
	_, handled = svc.Process(20, "Аккаунт №451\nПочта: rent451@mail.ru\nqwerty123")
	assert.False(t, handled)
}
