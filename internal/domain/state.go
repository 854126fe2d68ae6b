package domain

// StateData holds a user's in-memory conversation state. It lives only
// for the duration of an exchange and is lost on restart, which is fine:
// recommendations are ephemeral.
type StateData struct {
	// LastRecommended is the title offered by the most recent
	// recommendation, empty when there is no active one.
	LastRecommended string

	// PendingKind and PendingTitles hold an unresolved "mark as <kind>
	// <fragment>" command that matched several titles; the user picks
	// one by number.
	PendingKind   MarkKind
	PendingTitles []CatalogEntry
}

// AwaitingFeedback reports whether a recommendation is waiting for the
// user's reaction.
func (s *StateData) AwaitingFeedback() bool {
	return s != nil && s.LastRecommended != ""
}

// Reply is one outbound message produced by the dialogue engine.
// Buttons, when present, are a small fixed set of labeled choices that
// map back to text intents.
type Reply struct {
	Text    string
	Buttons []string
}
