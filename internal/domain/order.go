package domain

// PendingOrder holds the fields recovered from a forwarded order message.
// It lives in memory per operator session until the matching account data
// arrives or the operator cancels.
type PendingOrder struct {
	OrderNumber  string
	GameName     string
	Platform     string
	RentalType   string
	Days         int
	CustomerName string
	OrderDate    string
	PromoCode    string
	Discount     string
	Contact      string
}

// AccountInfo holds the fields recovered from a forwarded account message.
type AccountInfo struct {
	Identifier string
	Platform   string
	Email      string
	Password   string
}

// Complete reports whether the extraction recovered everything required
// to hand the account over. Partial data must trigger a re-prompt, never
// a partial summary.
func (a AccountInfo) Complete() bool {
	return a.Identifier != "" && a.Email != "" && a.Password != ""
}
