// Package card implements the per-card learning state machine: a closed,
// ordered set of progression states, the fixed per-state review intervals,
// and the advance/regress/due arithmetic driven by review responses.
package card

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// State is the learning stage of a card. States are totally ordered;
// a correct response moves one step forward, an incorrect response one
// step back.
type State int

const (
	New State = iota
	Learning1
	Learning2
	Known
	Mastered
)

var (
	stateNames = [...]string{
		New:       "New",
		Learning1: "Learning1",
		Learning2: "Learning2",
		Known:     "Known",
		Mastered:  "Mastered",
	}
	stateByName = map[string]State{
		"New":       New,
		"Learning1": Learning1,
		"Learning2": Learning2,
		"Known":     Known,
		"Mastered":  Mastered,
	}
)

// sessionIntervals maps each state to the number of sessions that must
// pass after the last successful review before the card is due again.
var sessionIntervals = [...]int{
	New:       0,
	Learning1: 1,
	Learning2: 3,
	Known:     5,
	Mastered:  10,
}

// Compile-time interface checks.
var (
	_ fmt.Stringer             = State(0)
	_ json.Marshaler           = State(0)
	_ json.Unmarshaler         = (*State)(nil)
	_ encoding.TextMarshaler   = State(0)
	_ encoding.TextUnmarshaler = (*State)(nil)
)

// Valid reports whether s is a member of the closed state set.
func (s State) Valid() bool {
	return s >= New && s <= Mastered
}

// Interval returns the number of sessions until a card in this state is
// due again. Invalid states get interval 0, making the card immediately
// due so the corruption surfaces on the next review.
func (s State) Interval() int {
	if !s.Valid() {
		return 0
	}

	return sessionIntervals[s]
}

// String returns the state name ("New", "Learning1", ...).
// For invalid values it returns "State(n)".
func (s State) String() string {
	if s.Valid() {
		return stateNames[s]
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// ParseState maps a state name to its State. ok is false for any string
// outside the closed set.
func ParseState(name string) (State, bool) {
	s, ok := stateByName[name]

	return s, ok
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("card: invalid state: %d", int(s))
	}

	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	v, ok := stateByName[string(text)]
	if !ok {
		return fmt.Errorf("card: invalid state: %q", text)
	}

	*s = v

	return nil
}

// MarshalJSON implements json.Marshaler. State serializes as its name.
func (s State) MarshalJSON() ([]byte, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}

	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (s *State) UnmarshalJSON(data []byte) error {
	var str string

	unmarshalErr := json.Unmarshal(data, &str)
	if unmarshalErr != nil {
		return fmt.Errorf("card: invalid state: %s", data)
	}

	return s.UnmarshalText([]byte(str))
}
