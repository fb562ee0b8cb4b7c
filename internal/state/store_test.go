package state_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vocab/internal/card"
	"vocab/internal/logging"
	"vocab/internal/state"
)

func storeAt(t *testing.T, name string) (*state.FileStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)

	return state.NewFileStore(path, logging.Discard()), path
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store, _ := storeAt(t, "state.json")

	snap := state.Snapshot{
		CurrentSession: 7,
		Cards: []card.Card{
			{ID: "1", Front: "apple", Back: "苹果", Annotation: "píngguǒ", State: card.Known, LastReviewedSession: 4},
			{ID: "2", Front: "pear", Back: "梨", Annotation: "lí", State: card.New},
		},
	}

	if err := store.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if diff := cmp.Diff(snap, got); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestSaveDoesNotEscapeNonASCII(t *testing.T) {
	t.Parallel()

	store, path := storeAt(t, "state.json")

	snap := state.Snapshot{Cards: []card.Card{
		{ID: "1", Front: "apple", Back: "苹果", Annotation: "píngguǒ", State: card.New},
	}}

	if err := store.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if !strings.Contains(string(data), "苹果") {
		t.Errorf("snapshot does not contain raw UTF-8 text:\n%s", data)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	store, _ := storeAt(t, "absent.json")

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(snap.Cards) != 0 || snap.CurrentSession != 0 {
		t.Errorf("missing file should yield empty snapshot, got %+v", snap)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	t.Parallel()

	store, path := storeAt(t, "state.json")

	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load should degrade, not fail: %v", err)
	}

	if len(snap.Cards) != 0 || snap.CurrentSession != 0 {
		t.Errorf("corrupt file should yield empty snapshot, got %+v", snap)
	}
}

func TestLoadAbsentFieldsDefault(t *testing.T) {
	t.Parallel()

	store, path := storeAt(t, "state.json")

	doc := `{
  "cards": [
    {"id": "1", "front": "apple", "back": "苹果", "annotation": "píngguǒ"}
  ],
  "current_session": 3
}`

	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(snap.Cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(snap.Cards))
	}

	c := snap.Cards[0]
	if c.State != card.New || c.LastReviewedSession != 0 {
		t.Errorf("absent fields did not default: %+v", c)
	}
}

func TestLoadUnknownStateResetsToNew(t *testing.T) {
	t.Parallel()

	store, path := storeAt(t, "state.json")

	doc := `{
  "cards": [
    {"id": "1", "front": "apple", "back": "苹果", "annotation": "píngguǒ",
     "state": "Forgotten", "last_reviewed_session": 6}
  ],
  "current_session": 6
}`

	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	c := snap.Cards[0]
	if c.State != card.New {
		t.Errorf("unknown state not reset: %+v", c)
	}

	// Only the state is repaired; the rest of the row survives.
	if c.LastReviewedSession != 6 || c.Front != "apple" {
		t.Errorf("repair clobbered other fields: %+v", c)
	}
}

func TestLoadNegativeValuesClamped(t *testing.T) {
	t.Parallel()

	store, path := storeAt(t, "state.json")

	doc := `{
  "cards": [
    {"id": "1", "front": "apple", "back": "苹果", "annotation": "píngguǒ",
     "state": "Known", "last_reviewed_session": -4}
  ],
  "current_session": -2
}`

	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if snap.CurrentSession != 0 {
		t.Errorf("session = %d, want 0", snap.CurrentSession)
	}

	if snap.Cards[0].LastReviewedSession != 0 {
		t.Errorf("session stamp = %d, want 0", snap.Cards[0].LastReviewedSession)
	}
}

func TestLoadAcceptsCommentsAndTrailingCommas(t *testing.T) {
	t.Parallel()

	store, path := storeAt(t, "state.json")

	doc := `{
  // hand-edited while debugging
  "cards": [
    {
      "id": "1",
      "front": "apple",
      "back": "苹果",
      "annotation": "píngguǒ",
      "state": "Learning2",
      "last_reviewed_session": 2,
    },
  ],
  "current_session": 2,
}`

	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(snap.Cards) != 1 || snap.Cards[0].State != card.Learning2 {
		t.Errorf("hand-edited snapshot not accepted: %+v", snap)
	}
}

func TestSaveReplacesExistingFile(t *testing.T) {
	t.Parallel()

	store, _ := storeAt(t, "state.json")

	first := state.Snapshot{CurrentSession: 1, Cards: []card.Card{
		{ID: "1", Front: "a", Back: "b", Annotation: "c", State: card.Learning1, LastReviewedSession: 1},
	}}
	second := state.Snapshot{CurrentSession: 2, Cards: []card.Card{
		{ID: "1", Front: "a", Back: "b", Annotation: "c", State: card.Learning2, LastReviewedSession: 2},
	}}

	if err := store.Save(first); err != nil {
		t.Fatalf("Save first: %v", err)
	}

	if err := store.Save(second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if diff := cmp.Diff(second, got); diff != "" {
		t.Errorf("latest snapshot not loaded (-want +got):\n%s", diff)
	}
}
