package reservation

import (
	"sync"
	"time"
)

// Table is a single bookable table inside a restaurant. It holds at most one
// booking per calendar date.
type Table struct {
	number int

	mu     sync.Mutex
	booked map[time.Time]struct{}
}

func newTable(number int) *Table {
	return &Table{
		number: number,
		booked: make(map[time.Time]struct{}),
	}
}

// Number returns the 1-based table number.
func (t *Table) Number() int {
	return t.number
}

// Book reserves the table on date. It returns false without changing anything
// when the table is already booked on that date.
func (t *Table) Book(date time.Time) bool {
	day := DateOf(date)

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.booked[day]; ok {
		return false
	}
	t.booked[day] = struct{}{}
	return true
}

// IsBooked reports whether the table is booked on date.
func (t *Table) IsBooked(date time.Time) bool {
	day := DateOf(date)

	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.booked[day]
	return ok
}

// DateOf truncates t to its calendar date. Time of day and zone are dropped so
// that 2023-12-25 09:00 +02:00 and 2023-12-25 23:00 UTC name the same day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
