// Package state persists the learning-state snapshot: every card's
// progress plus the global session counter, as a single JSON document
// replaced atomically on each save.
package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"

	"vocab/internal/card"
)

// Snapshot is the full persisted program state.
type Snapshot struct {
	Cards          []card.Card
	CurrentSession int
}

// FileStore reads and writes snapshots at a fixed path.
type FileStore struct {
	path string
	log  *slog.Logger
}

// NewFileStore creates a FileStore for the given path.
func NewFileStore(path string, log *slog.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// document is the wire form of a snapshot.
type document struct {
	Cards          []cardRow `json:"cards"`
	CurrentSession int       `json:"current_session"`
}

// cardRow tolerates absent fields on load: a missing state defaults to
// New, a missing session stamp to 0.
type cardRow struct {
	ID                  string  `json:"id"`
	Front               string  `json:"front"`
	Back                string  `json:"back"`
	Annotation          string  `json:"annotation"`
	State               *string `json:"state"`
	LastReviewedSession *int    `json:"last_reviewed_session"`
}

// Load reads the snapshot. Any failure - missing file, unreadable file,
// malformed JSON - degrades to an empty snapshot with a logged warning,
// never an error: the program then starts with an all-New card set and
// session 0. Hand-edited files with comments or trailing commas are
// accepted (JWCC).
func (s *FileStore) Load() (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info("no saved state, starting fresh", "path", s.path)
		} else {
			s.log.Warn("cannot read saved state, starting fresh", "path", s.path, "error", err)
		}

		return Snapshot{}, nil
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		s.log.Warn("saved state is malformed, starting fresh", "path", s.path, "error", err)

		return Snapshot{}, nil
	}

	var doc document

	unmarshalErr := json.Unmarshal(standardized, &doc)
	if unmarshalErr != nil {
		s.log.Warn("saved state is malformed, starting fresh", "path", s.path, "error", unmarshalErr)

		return Snapshot{}, nil
	}

	snap := Snapshot{
		Cards:          make([]card.Card, 0, len(doc.Cards)),
		CurrentSession: doc.CurrentSession,
	}

	if snap.CurrentSession < 0 {
		s.log.Warn("saved session counter is negative, resetting to 0", "session", snap.CurrentSession)

		snap.CurrentSession = 0
	}

	for _, row := range doc.Cards {
		snap.Cards = append(snap.Cards, s.decodeRow(row))
	}

	s.log.Info("saved state loaded",
		"path", s.path, "cards", len(snap.Cards), "session", snap.CurrentSession)

	return snap, nil
}

func (s *FileStore) decodeRow(row cardRow) card.Card {
	c := card.Card{
		ID:         row.ID,
		Front:      row.Front,
		Back:       row.Back,
		Annotation: row.Annotation,
	}

	if row.State != nil {
		parsed, ok := card.ParseState(*row.State)
		if !ok {
			s.log.Warn("unknown card state in saved snapshot, resetting to New",
				"front", row.Front, "state", *row.State)
		}

		c.State = parsed // ParseState returns New when !ok
	}

	if row.LastReviewedSession != nil {
		if *row.LastReviewedSession < 0 {
			s.log.Warn("negative session stamp in saved snapshot, resetting to 0",
				"front", row.Front, "last_reviewed_session", *row.LastReviewedSession)
		} else {
			c.LastReviewedSession = *row.LastReviewedSession
		}
	}

	return c
}

// Save writes the snapshot atomically. Write failures are returned to
// the caller; there is no retry and the in-memory state is not rolled
// back.
func (s *FileStore) Save(snap Snapshot) error {
	doc := document{
		Cards:          make([]cardRow, 0, len(snap.Cards)),
		CurrentSession: snap.CurrentSession,
	}

	for _, c := range snap.Cards {
		name := c.State.String()
		last := c.LastReviewedSession
		doc.Cards = append(doc.Cards, cardRow{
			ID:                  c.ID,
			Front:               c.Front,
			Back:                c.Back,
			Annotation:          c.Annotation,
			State:               &name,
			LastReviewedSession: &last,
		})
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	encodeErr := enc.Encode(doc)
	if encodeErr != nil {
		return fmt.Errorf("encoding snapshot: %w", encodeErr)
	}

	writeErr := atomic.WriteFile(s.path, &buf)
	if writeErr != nil {
		return fmt.Errorf("writing snapshot: %w", writeErr)
	}

	return nil
}
