package deck

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"vocab/internal/card"
	"vocab/internal/state"
	"vocab/internal/vocab"
)

// Source supplies the ordered vocabulary sequence.
type Source interface {
	Load() ([]vocab.Record, error)
}

// Store persists and recovers snapshots.
type Store interface {
	Load() (state.Snapshot, error)
	Save(state.Snapshot) error
}

// Reviewer runs one review pass over the live card set, mutating cards
// in place through the state machine.
type Reviewer interface {
	Review(cards []card.Card, session int) error
}

// Program owns the live card set and the session counter. It is the
// single mutator: cards are rebuilt by reconciliation at startup,
// mutated only during a review, and snapshotted after every mutating
// action.
type Program struct {
	cards   []card.Card
	session int
	store   Store
	log     *slog.Logger
}

// Load reconciles the vocabulary source with the persisted snapshot
// into a ready Program. A failing store degrades to an empty snapshot;
// a failing source is a real error.
func Load(src Source, store Store, log *slog.Logger) (*Program, error) {
	records, err := src.Load()
	if err != nil {
		return nil, fmt.Errorf("loading vocabulary: %w", err)
	}

	snap, err := store.Load()
	if err != nil {
		log.Warn("loading saved state failed, starting fresh", "error", err)

		snap = state.Snapshot{}
	}

	prog := &Program{
		cards:   Reconcile(records, SavedProgress(snap)),
		session: max(snap.CurrentSession, 0),
		store:   store,
		log:     log,
	}

	log.Info("program loaded", "cards", len(prog.cards), "session", prog.session)

	return prog, nil
}

// CurrentSession returns the session counter.
func (p *Program) CurrentSession() int {
	return p.session
}

// Cards returns a copy of the live card set in vocabulary-source order.
func (p *Program) Cards() []card.Card {
	return slices.Clone(p.cards)
}

// StartReview increments the session counter, runs the reviewer over
// the full card set at the new session number, and persists. The
// snapshot is written even when the review was aborted partway, so
// transitions applied before the abort survive.
func (p *Program) StartReview(r Reviewer) error {
	p.session++
	p.log.Info("review session started", "session", p.session)

	reviewErr := r.Review(p.cards, p.session)
	persistErr := p.Persist()

	return errors.Join(reviewErr, persistErr)
}

// AdvanceSession increments the session counter without reviewing any
// card, then persists. Fast-forwards scheduling: cards come due sooner.
func (p *Program) AdvanceSession() error {
	p.session++
	p.log.Info("session advanced without review", "session", p.session)

	return p.Persist()
}

// ListAll returns the cards ordered by front text, case-insensitively,
// for display. The underlying stored sequence keeps source order.
func (p *Program) ListAll() []card.Card {
	out := slices.Clone(p.cards)

	coll := collate.New(language.Und, collate.IgnoreCase)
	slices.SortStableFunc(out, func(a, b card.Card) int {
		return coll.CompareString(a.Front, b.Front)
	})

	return out
}

// Persist writes a full snapshot. Failure is reported to the caller and
// logged; the in-memory state is neither rolled back nor re-saved.
func (p *Program) Persist() error {
	snap := state.Snapshot{Cards: p.cards, CurrentSession: p.session}

	saveErr := p.store.Save(snap)
	if saveErr != nil {
		p.log.Error("saving program state failed", "error", saveErr)

		return fmt.Errorf("saving state: %w", saveErr)
	}

	p.log.Info("program state saved", "cards", len(p.cards), "session", p.session)

	return nil
}
