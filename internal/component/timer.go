package component

// Timer tracks progress through a timed phase in simulated seconds. The timer
// system advances Elapsed every tick; the rule that created a timer removes it.
type Timer struct {
	Elapsed  float64
	Deadline float64
}

// Expired is the single expiry test used by every rule.
func (t *Timer) Expired() bool {
	return t.Elapsed >= t.Deadline
}

// Remaining returns the seconds left before expiry, never negative.
func (t *Timer) Remaining() float64 {
	if r := t.Deadline - t.Elapsed; r > 0 {
		return r
	}
	return 0
}
