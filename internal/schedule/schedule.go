// Package schedule selects and orders due cards for a session and
// drives the card-by-card review loop over an interactive prompter.
package schedule

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"

	"vocab/internal/card"
)

// Response is the reviewer's verdict on one card.
type Response int

const (
	Correct Response = iota
	Incorrect
	Skipped
)

var responseNames = [...]string{
	Correct:   "correct",
	Incorrect: "incorrect",
	Skipped:   "skip",
}

func (r Response) String() string {
	if r >= Correct && r <= Skipped {
		return responseNames[r]
	}

	return "unknown"
}

// ParseResponse maps console input to a response. Accepted, after
// trimming and case folding: "y", "n", "skip". Anything else returns
// ok=false and the caller re-prompts.
func ParseResponse(input string) (Response, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y":
		return Correct, true
	case "n":
		return Incorrect, true
	case "skip":
		return Skipped, true
	default:
		return 0, false
	}
}

// Prompter is the interactive surface of the review loop. Present and
// Ask block on human input; an error from either (end of input, abort)
// stops the loop, keeping transitions already applied.
type Prompter interface {
	// Begin announces the session and how many cards are due.
	Begin(session, due int)

	// Present shows the card front and blocks until the reviewer
	// reveals the back.
	Present(c card.Card, pos, total int) error

	// Ask obtains exactly one response for the revealed card,
	// re-prompting internally on invalid input.
	Ask(c card.Card) (Response, error)

	// Applied reports the card as it stands after the response took
	// effect.
	Applied(c card.Card, r Response)
}

// DueCards selects the cards due at the given session and orders them
// for review: lowest state first (material furthest from mastery), and
// within a state the oldest session stamp first (most overdue). The
// sort is stable, so ties keep source order. Returned pointers alias
// the input slice; transitions apply directly to the live set.
func DueCards(cards []card.Card, session int) []*card.Card {
	var due []*card.Card

	for idx := range cards {
		if cards[idx].Due(session) {
			due = append(due, &cards[idx])
		}
	}

	slices.SortStableFunc(due, func(a, b *card.Card) int {
		if c := cmp.Compare(a.State, b.State); c != 0 {
			return c
		}

		return cmp.Compare(a.LastReviewedSession, b.LastReviewedSession)
	})

	return due
}

// Session runs review passes. One card's transition is fully applied
// before the next card is presented; there is no batching.
type Session struct {
	prompter Prompter
	log      *slog.Logger
}

// NewSession creates a Session over the given prompter.
func NewSession(p Prompter, log *slog.Logger) *Session {
	return &Session{prompter: p, log: log}
}

// Review runs the loop for one session. An empty due set ends the
// session immediately with no card mutated.
func (s *Session) Review(cards []card.Card, session int) error {
	due := DueCards(cards, session)

	s.prompter.Begin(session, len(due))

	if len(due) == 0 {
		s.log.Info("no cards due", "session", session)

		return nil
	}

	s.log.Info("reviewing cards", "session", session, "due", len(due))

	for idx, c := range due {
		presentErr := s.prompter.Present(*c, idx+1, len(due))
		if presentErr != nil {
			return presentErr
		}

		resp, askErr := s.prompter.Ask(*c)
		if askErr != nil {
			return askErr
		}

		s.apply(c, resp, session)
		s.prompter.Applied(*c, resp)
	}

	return nil
}

func (s *Session) apply(c *card.Card, resp Response, session int) {
	switch resp {
	case Correct:
		if c.Advance(session) {
			s.log.Warn("invalid card state reset to New", "front", c.Front)
		}
	case Incorrect:
		if c.Regress(session) {
			s.log.Warn("invalid card state reset to New", "front", c.Front)
		}
	case Skipped:
		c.Skip()
	}

	s.log.Info("card reviewed",
		"front", c.Front, "response", resp.String(),
		"state", c.State.String(), "last_reviewed_session", c.LastReviewedSession)
}
