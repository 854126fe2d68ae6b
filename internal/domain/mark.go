package domain

// MarkKind is one of the three per-user game lists.
// The sets are independent: a title may be marked under several kinds at once.
type MarkKind string

const (
	MarkCompleted     MarkKind = "completed"
	MarkPlayed        MarkKind = "played"
	MarkNotInterested MarkKind = "not_interested"
)

// DisplayName returns the Russian list heading for the kind.
func (k MarkKind) DisplayName() string {
	switch k {
	case MarkCompleted:
		return "Пройденные игры"
	case MarkPlayed:
		return "Игранные игры"
	case MarkNotInterested:
		return "Неинтересные игры"
	default:
		return string(k)
	}
}
