package service

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"gamebot/internal/catalog"
	"gamebot/internal/domain"
)

// maxSearchResults caps how many catalog matches a single reply batch may
// carry. The index itself never caps; the cap belongs to the dialogue.
const maxSearchResults = 25

// Reply texts. User-facing, fixed.
const (
	greetingText   = "Привет! Напиши название игры или её часть, и я пришлю ссылку на сайт с этой игрой.\nА если не знаешь, во что поиграть — напиши «совет»."
	notFoundText   = "Игра не найдена, попробуй другое название."
	farewellText   = "Пока! Заглядывай ещё — каталог пополняется каждую неделю."
	thanksText     = "Всегда пожалуйста! Захочешь новую игру — пиши, подберём."
	closingText    = "Хорошо! Если передумаешь — напиши «совет»."
	helpText       = "Если аккаунт не заходит или слетел — напиши в поддержку, поможем: опиши проблему и пришли номер заказа."
	exhaustedText  = "Похоже, ты прошёл все игры из каталога! Загляни позже — новинки уже в пути."
	feedbackPrompt = "Ну как, нравится? Если не зашло — напиши «неинтересно», «уже играл» или «уже прошел», и я подберу другую."
)

// flavorLines is the pool of recommendation openers; one is picked at random.
var flavorLines = []string{
	"Попробуй вот эту:",
	"Как насчёт этой?",
	"Держи, отличный вариант:",
	"Может, зайдёт:",
	"Вот эту многие хвалят:",
}

// feedbackButtons map back to the same text intents the router matches.
var feedbackButtons = []string{"Ещё", "Уже прошёл", "Уже играл", "Неинтересно"}

// Trigger vocabularies. Matching is literal: exact, substring or prefix,
// never anything smarter. The advice set keeps the pre-strip "?" form so a
// lone question mark still asks for advice.
var (
	moreTriggers          = stringSet("еще", "ещё")
	greetingTriggers      = stringSet("привет", "здравствуй", "здравствуйте", "добрый день", "хай")
	adviceTriggers        = stringSet("совет", "посоветуй", "посоветуй игру", "что поиграть", "во что поиграть", "?")
	completedTriggers     = stringSet("пройденные", "пройденные игры", "мои пройденные")
	playedTriggers        = stringSet("игранные", "игранные игры", "мои игранные")
	notInterestedTriggers = stringSet("неинтересные", "неинтересное", "неинтересные игры")
	agreeTriggers         = stringSet("да", "конечно", "давай")

	accountHelpPhrases = []string{
		"не заходит",
		"не могу зайти",
		"слетел акк",
		"не работает аккаунт",
		"проблема с акк",
	}
)

// markKeywordList keeps a fixed evaluation order for the mark vocabulary;
// both ё-spellings of "прошёл" record a Completed mark.
var markKeywordList = []struct {
	keyword string
	kind    domain.MarkKind
}{
	{"неинтересно", domain.MarkNotInterested},
	{"уже играл", domain.MarkPlayed},
	{"уже прошел", domain.MarkCompleted},
	{"уже прошёл", domain.MarkCompleted},
}

func stringSet(items ...string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// DialogService classifies inbound text into intents and drives replies.
// It owns the per-user conversation state; the transport layer only
// delivers text in and sends replies out.
type DialogService struct {
	catalog *catalog.Index
	library *LibraryService
	logger  *zap.Logger

	// mu guards the session map only. Turns are serialized per user by
	// the session lock, so a slow storage call in one user's turn never
	// stalls anyone else; telebot runs each update on its own goroutine.
	mu     sync.Mutex
	states map[int64]*userSession
}

// userSession is one user's conversation state plus the lock that
// serializes that user's turns.
type userSession struct {
	mu sync.Mutex
	domain.StateData
}

// NewDialogService creates a new dialog service
func NewDialogService(catalogIndex *catalog.Index, library *LibraryService, logger *zap.Logger) *DialogService {
	return &DialogService{
		catalog: catalogIndex,
		library: library,
		logger:  logger,
		states:  make(map[int64]*userSession),
	}
}

// turn is the working context of one inbound message.
type turn struct {
	userID  int64
	norm    string
	pre     string // lowercased+trimmed but before question-mark stripping
	state   *domain.StateData
	replies []domain.Reply
}

func (t *turn) say(text string, buttons ...string) {
	t.replies = append(t.replies, domain.Reply{Text: text, Buttons: buttons})
}

// dialogRule is one row of the priority table: first match wins.
type dialogRule struct {
	name  string
	match func(s *DialogService, t *turn) bool
	apply func(s *DialogService, t *turn) error
}

var dialogRules = []dialogRule{
	{
		name:  "farewell",
		match: func(s *DialogService, t *turn) bool { return t.norm == "пока" },
		apply: func(s *DialogService, t *turn) error {
			t.state.LastRecommended = ""
			t.say(farewellText)
			return nil
		},
	},
	{
		name:  "more",
		match: func(s *DialogService, t *turn) bool { return moreTriggers[t.norm] },
		apply: func(s *DialogService, t *turn) error { return s.recommend(t) },
	},
	{
		name: "account_help",
		match: func(s *DialogService, t *turn) bool {
			for _, phrase := range accountHelpPhrases {
				if strings.Contains(t.norm, phrase) {
					return true
				}
			}
			return false
		},
		apply: func(s *DialogService, t *turn) error {
			t.state.LastRecommended = ""
			t.say(helpText)
			return nil
		},
	},
	{
		name:  "greeting",
		match: func(s *DialogService, t *turn) bool { return greetingTriggers[t.norm] },
		apply: func(s *DialogService, t *turn) error {
			t.state.LastRecommended = ""
			t.say(greetingText)
			return nil
		},
	},
	{
		name: "advice",
		// Normalization strips question marks, so "?" and "???" reach
		// here as the empty string; the pre-strip form tells them apart
		// from a genuinely empty message.
		match: func(s *DialogService, t *turn) bool {
			if adviceTriggers[t.norm] || adviceTriggers[t.pre] {
				return true
			}
			return t.norm == "" && strings.ContainsRune(t.pre, '?')
		},
		apply: func(s *DialogService, t *turn) error { return s.recommend(t) },
	},
	{
		name:  "list_completed",
		match: func(s *DialogService, t *turn) bool { return completedTriggers[t.norm] },
		apply: func(s *DialogService, t *turn) error { return s.listMarks(t, domain.MarkCompleted) },
	},
	{
		name:  "list_played",
		match: func(s *DialogService, t *turn) bool { return playedTriggers[t.norm] },
		apply: func(s *DialogService, t *turn) error { return s.listMarks(t, domain.MarkPlayed) },
	},
	{
		name: "list_not_interested",
		// Suppressed while a recommendation is pending so the list
		// trigger cannot shadow the "неинтересно" feedback keyword.
		match: func(s *DialogService, t *turn) bool {
			return notInterestedTriggers[t.norm] && !t.state.AwaitingFeedback()
		},
		apply: func(s *DialogService, t *turn) error { return s.listMarks(t, domain.MarkNotInterested) },
	},
	{
		name:  "new_releases",
		match: func(s *DialogService, t *turn) bool { return t.norm == "новинки" },
		apply: func(s *DialogService, t *turn) error {
			t.state.LastRecommended = ""
			entries := s.catalog.Tail(maxSearchResults)
			if len(entries) == 0 {
				t.say(notFoundText)
				return nil
			}
			lines := []string{"Новинки каталога:"}
			// Newest first.
			for i := len(entries) - 1; i >= 0; i-- {
				lines = append(lines, entries[i].Title+"\n"+entries[i].Url)
			}
			t.say(strings.Join(lines, "\n\n"))
			return nil
		},
	},
	{
		name: "feedback_mark",
		match: func(s *DialogService, t *turn) bool {
			if !t.state.AwaitingFeedback() {
				return false
			}
			_, ok := markKind(t.norm)
			return ok
		},
		apply: func(s *DialogService, t *turn) error {
			kind, _ := markKind(t.norm)
			title := t.state.LastRecommended
			if err := s.library.AddMark(t.userID, kind, title); err != nil {
				return fmt.Errorf("failed to record mark: %w", err)
			}
			t.say(fmt.Sprintf("Записал «%s» в список «%s».", title, kind.DisplayName()))
			return s.recommend(t)
		},
	},
	{
		name: "mark_by_title",
		match: func(s *DialogService, t *turn) bool {
			_, _, ok := markCommand(t.norm)
			return ok
		},
		apply: func(s *DialogService, t *turn) error { return s.markByFragment(t) },
	},
	{
		name:  "agree",
		match: func(s *DialogService, t *turn) bool { return agreeTriggers[t.norm] },
		apply: func(s *DialogService, t *turn) error {
			t.state.LastRecommended = ""
			return s.recommend(t)
		},
	},
	{
		name:  "thanks",
		match: func(s *DialogService, t *turn) bool { return t.norm == "спасибо" },
		apply: func(s *DialogService, t *turn) error {
			t.state.LastRecommended = ""
			t.say(thanksText)
			return nil
		},
	},
	{
		name:  "no",
		match: func(s *DialogService, t *turn) bool { return t.norm == "нет" },
		apply: func(s *DialogService, t *turn) error {
			t.state.LastRecommended = ""
			t.say(closingText)
			return nil
		},
	},
	{
		name:  "search",
		match: func(s *DialogService, t *turn) bool { return true },
		apply: func(s *DialogService, t *turn) error {
			t.state.LastRecommended = ""
			if t.norm == "" {
				t.say(notFoundText)
				return nil
			}
			results := s.catalog.Search(t.norm)
			if len(results) == 0 {
				t.say(notFoundText)
				return nil
			}
			if len(results) > maxSearchResults {
				results = results[:maxSearchResults]
			}
			for _, e := range results {
				t.say(e.Title + "\n" + e.Url)
			}
			return nil
		},
	},
}

// markKind resolves an exact mark keyword.
func markKind(text string) (domain.MarkKind, bool) {
	for _, mk := range markKeywordList {
		if text == mk.keyword {
			return mk.kind, true
		}
	}
	return "", false
}

// markCommand splits "уже прошел <fragment>" style commands.
func markCommand(text string) (domain.MarkKind, string, bool) {
	for _, mk := range markKeywordList {
		if strings.HasPrefix(text, mk.keyword+" ") {
			fragment := strings.TrimSpace(strings.TrimPrefix(text, mk.keyword))
			if fragment != "" {
				return mk.kind, fragment, true
			}
		}
	}
	return "", "", false
}

// Respond handles one inbound message and returns the outbound replies.
// An error means an external dependency failed; the caller logs it and
// abandons the turn.
func (s *DialogService) Respond(userID int64, raw string) ([]domain.Reply, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	t := &turn{
		userID: userID,
		norm:   domain.Normalize(raw),
		pre:    strings.ToLower(strings.TrimSpace(raw)),
		state:  &sess.StateData,
	}

	// A pending numbered disambiguation intercepts the turn: a number
	// picks the title, anything else cancels and is routed normally.
	if len(t.state.PendingTitles) > 0 {
		if done, err := s.resolveDisambiguation(t); err != nil {
			return nil, err
		} else if done {
			return t.replies, nil
		}
	}

	for _, rule := range dialogRules {
		if !rule.match(s, t) {
			continue
		}
		if err := rule.apply(s, t); err != nil {
			return nil, fmt.Errorf("intent %s: %w", rule.name, err)
		}
		s.logger.Debug("intent matched",
			zap.Int64("user_id", userID),
			zap.String("intent", rule.name),
		)
		break
	}

	return t.replies, nil
}

// session returns the user's session, creating it on first contact.
func (s *DialogService) session(userID int64) *userSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.states[userID]
	if !ok {
		sess = &userSession{}
		s.states[userID] = sess
	}
	return sess
}

// resolveDisambiguation applies a pending "mark as <kind>" choice. Returns
// true when the turn was consumed.
func (s *DialogService) resolveDisambiguation(t *turn) (bool, error) {
	candidates := t.state.PendingTitles
	kind := t.state.PendingKind
	t.state.PendingTitles = nil
	t.state.PendingKind = ""

	n, err := strconv.Atoi(t.norm)
	if err != nil || n < 1 || n > len(candidates) {
		// Not a pick: cancel silently and route the text as usual.
		return false, nil
	}

	title := candidates[n-1].Title
	if err := s.library.AddMark(t.userID, kind, title); err != nil {
		return false, fmt.Errorf("failed to record mark: %w", err)
	}
	t.say(fmt.Sprintf("Записал «%s» в список «%s».", title, kind.DisplayName()))
	return true, nil
}

// markByFragment resolves "mark as <kind> <fragment>" via prefix search.
// Several matches never auto-pick: the user chooses by number.
func (s *DialogService) markByFragment(t *turn) error {
	kind, fragment, _ := markCommand(t.norm)
	t.state.LastRecommended = ""

	matches := s.catalog.SearchPrefix(fragment)
	switch {
	case len(matches) == 0:
		t.say(notFoundText)
	case len(matches) == 1:
		title := matches[0].Title
		if err := s.library.AddMark(t.userID, kind, title); err != nil {
			return fmt.Errorf("failed to record mark: %w", err)
		}
		t.say(fmt.Sprintf("Записал «%s» в список «%s».", title, kind.DisplayName()))
	default:
		if len(matches) > maxSearchResults {
			matches = matches[:maxSearchResults]
		}
		t.state.PendingKind = kind
		t.state.PendingTitles = matches
		lines := []string{"Нашлось несколько игр, выбери номер:"}
		for i, e := range matches {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, e.Title))
		}
		t.say(strings.Join(lines, "\n"))
	}
	return nil
}

// recommend runs the recommendation flow: sample outside the Completed
// set, remember the offer, ask for feedback. Only Completed excludes a
// title; Played and NotInterested games may legitimately come up again.
func (s *DialogService) recommend(t *turn) error {
	excluded, err := s.library.MarkSet(t.userID, domain.MarkCompleted)
	if err != nil {
		return fmt.Errorf("failed to load completed marks: %w", err)
	}

	entry, ok := s.catalog.SampleExcluding(excluded)
	if !ok {
		t.state.LastRecommended = ""
		t.say(exhaustedText)
		return nil
	}

	t.state.LastRecommended = entry.Title
	flavor := flavorLines[rand.Intn(len(flavorLines))]
	t.say(flavor + "\n\n" + entry.Title + "\n" + entry.Url)
	t.say(feedbackPrompt, feedbackButtons...)
	return nil
}

// listMarks replies with the user's list of one mark kind.
func (s *DialogService) listMarks(t *turn, kind domain.MarkKind) error {
	t.state.LastRecommended = ""

	titles, err := s.library.Marks(t.userID, kind)
	if err != nil {
		return fmt.Errorf("failed to load marks: %w", err)
	}
	if len(titles) == 0 {
		t.say(fmt.Sprintf("Список «%s» пока пуст.", kind.DisplayName()))
		return nil
	}

	lines := []string{kind.DisplayName() + ":"}
	lines = append(lines, titles...)
	t.say(strings.Join(lines, "\n"))
	return nil
}
