package reservation

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var christmas = time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)

func TestTableBookRejectsRepeat(t *testing.T) {
	tbl := newTable(1)

	assert.False(t, tbl.IsBooked(christmas))
	assert.True(t, tbl.Book(christmas))
	assert.True(t, tbl.IsBooked(christmas))

	assert.False(t, tbl.Book(christmas))
	assert.True(t, tbl.IsBooked(christmas))
}

func TestTableDatesAreCalendarDays(t *testing.T) {
	tbl := newTable(1)
	evening := time.Date(2023, 12, 25, 21, 30, 0, 0, time.FixedZone("EET", 2*60*60))

	assert.True(t, tbl.Book(evening))
	assert.True(t, tbl.IsBooked(christmas))
	assert.False(t, tbl.Book(christmas.Add(3*time.Hour)))
	assert.False(t, tbl.IsBooked(christmas.AddDate(0, 0, 1)))
}

func TestTableConcurrentBookSingleWinner(t *testing.T) {
	tbl := newTable(7)

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tbl.Book(christmas) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestDateOf(t *testing.T) {
	in := time.Date(2024, 2, 29, 23, 59, 59, 999, time.FixedZone("X", -5*60*60))
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), DateOf(in))
}
