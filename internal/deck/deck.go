// Package deck owns the live card set: it reconciles the vocabulary
// source with the persisted learning-state snapshot at startup, and
// drives sessions and persistence from then on.
package deck

import (
	"vocab/internal/card"
	"vocab/internal/state"
	"vocab/internal/vocab"
)

// Key matches a vocabulary record to a persisted progress entry. It is
// the full content tuple: editing any field of a vocabulary row changes
// its key, so the edited row comes back as a brand-new card and its old
// progress is pruned. A known limitation, kept because the source has
// no stable surrogate id.
type Key struct {
	ID         string
	Front      string
	Back       string
	Annotation string
}

// Valid reports whether every key component is non-empty. An invalid
// key never matches a persisted entry.
func (k Key) Valid() bool {
	return k.ID != "" && k.Front != "" && k.Back != "" && k.Annotation != ""
}

// RecordKey builds the reconciliation key for a vocabulary record.
func RecordKey(r vocab.Record) Key {
	return Key{ID: r.ID, Front: r.Front, Back: r.Back, Annotation: r.Annotation}
}

// CardKey builds the reconciliation key for a card.
func CardKey(c card.Card) Key {
	return Key{ID: c.ID, Front: c.Front, Back: c.Back, Annotation: c.Annotation}
}

// Progress is the persisted learning state of one card.
type Progress struct {
	State               card.State
	LastReviewedSession int
}

// SavedProgress indexes a snapshot's cards by reconciliation key.
// Entries with an invalid key are dropped; duplicate keys collapse,
// last write wins.
func SavedProgress(snap state.Snapshot) map[Key]Progress {
	saved := make(map[Key]Progress, len(snap.Cards))

	for _, c := range snap.Cards {
		key := CardKey(c)
		if !key.Valid() {
			continue
		}

		saved[key] = Progress{State: c.State, LastReviewedSession: c.LastReviewedSession}
	}

	return saved
}

// Reconcile merges the vocabulary sequence with the saved progress map
// into the live card set. Pure: no I/O, and the same inputs always
// produce the same output.
//
// One card per record, in source order. A record whose key is valid and
// present in saved adopts the saved progress; every other record starts
// at New with session stamp 0. Saved entries matching no current record
// are silently pruned - removing a row from the source discards its
// progress for good.
func Reconcile(records []vocab.Record, saved map[Key]Progress) []card.Card {
	cards := make([]card.Card, 0, len(records))

	for _, rec := range records {
		c := card.Card{
			ID:         rec.ID,
			Front:      rec.Front,
			Back:       rec.Back,
			Annotation: rec.Annotation,
			State:      card.New,
		}

		key := RecordKey(rec)
		if key.Valid() {
			if p, ok := saved[key]; ok {
				c.State = p.State
				c.LastReviewedSession = p.LastReviewedSession
			}
		}

		cards = append(cards, c)
	}

	return cards
}
