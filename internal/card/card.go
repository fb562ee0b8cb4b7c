package card

// Card combines vocabulary content with mutable learning progress.
// Content fields are copied from the matching vocabulary record at
// reconciliation time; ID may be empty when the source has no identity
// column. Cards live in memory only - the snapshot store persists their
// progress between runs.
type Card struct {
	ID         string `json:"id"`
	Front      string `json:"front"`
	Back       string `json:"back"`
	Annotation string `json:"annotation"`

	State State `json:"state"`
	// LastReviewedSession is the session of the last state-forward
	// transition, 0 for cards never answered correctly.
	LastReviewedSession int `json:"last_reviewed_session"`
}

// NextReviewSession returns the session in which the card next becomes
// due. Always derived, never stored.
func (c *Card) NextReviewSession() int {
	return c.LastReviewedSession + c.State.Interval()
}

// Due reports whether the card should be reviewed in the given session.
// Monotonic in session: once due, a card stays due until reviewed.
func (c *Card) Due(session int) bool {
	return c.NextReviewSession() <= session
}

// Advance moves the card one state forward after a correct response and
// stamps the session. Mastered stays Mastered but is stamped anyway.
// An invalid stored state is reset to New with the session stamp;
// Advance returns true in that case so the caller can log the repair.
func (c *Card) Advance(session int) (repaired bool) {
	if !c.State.Valid() {
		c.State = New
		c.LastReviewedSession = session

		return true
	}

	if c.State < Mastered {
		c.State++
	}

	c.LastReviewedSession = session

	return false
}

// Regress moves the card one state back after an incorrect response.
// The session stamp is left unchanged, so the regressed card recomputes
// as due immediately under its new, shorter interval. New stays New.
// An invalid stored state is reset to New with the session stamp;
// Regress returns true in that case.
func (c *Card) Regress(session int) (repaired bool) {
	if !c.State.Valid() {
		c.State = New
		c.LastReviewedSession = session

		return true
	}

	if c.State > New {
		c.State--
	}

	return false
}

// Skip leaves both state and schedule untouched; the card remains due
// under its prior schedule.
func (c *Card) Skip() {}
