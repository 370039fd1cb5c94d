package sim

// timer is a callback due after a number of ticks
type timer struct {
	due int
	fn  func()
}

// timerQueue runs callbacks on tick boundaries.
// Callbacks due on the same tick run in scheduling order.
type timerQueue struct {
	now     int
	pending []timer
}

// After schedules fn n ticks from now
func (q *timerQueue) After(n int, fn func()) {
	if n < 1 {
		n = 1
	}
	q.pending = append(q.pending, timer{due: q.now + n, fn: fn})
}

// advance moves one tick forward and runs what became due
func (q *timerQueue) advance() {
	q.now++

	var due []timer
	kept := q.pending[:0]
	for _, t := range q.pending {
		if t.due <= q.now {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	q.pending = kept

	for _, t := range due {
		t.fn()
	}
}

// Len returns the number of pending callbacks
func (q *timerQueue) Len() int { return len(q.pending) }

// clear cancels every pending callback
func (q *timerQueue) clear() {
	q.pending = nil
}
