package reservation

import (
	"fmt"
	"iter"
	"time"
)

// Restaurant owns a fixed, gap-free sequence of tables numbered 1..N.
type Restaurant struct {
	id     string
	name   string
	tables []*Table
}

func newRestaurant(id, name string, tableCount int) (*Restaurant, error) {
	if tableCount < 0 {
		return nil, fmt.Errorf("restaurant %q: negative table count %d", name, tableCount)
	}
	tables := make([]*Table, tableCount)
	for i := range tables {
		tables[i] = newTable(i + 1)
	}
	return &Restaurant{id: id, name: name, tables: tables}, nil
}

// ID is the key the manager assigned when the restaurant was added. Unlike
// names, IDs are unique.
func (r *Restaurant) ID() string {
	return r.id
}

func (r *Restaurant) Name() string {
	return r.name
}

func (r *Restaurant) TableCount() int {
	return len(r.tables)
}

// FindAllFreeTables yields "<name> - Table <n>" for every table free on date,
// in ascending table order. Availability is read as the sequence advances.
func (r *Restaurant) FindAllFreeTables(date time.Time) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, t := range r.tables {
			if t.IsBooked(date) {
				continue
			}
			if !yield(Label(r.name, t.Number())) {
				return
			}
		}
	}
}

// CountAvailableTables returns how many tables are free on date.
func (r *Restaurant) CountAvailableTables(date time.Time) int {
	n := 0
	for _, t := range r.tables {
		if !t.IsBooked(date) {
			n++
		}
	}
	return n
}

// bookTable does no range checking: tableNumber must be in 1..TableCount.
// Manager.BookTable is the only caller and validates first.
func (r *Restaurant) bookTable(date time.Time, tableNumber int) bool {
	return r.tables[tableNumber-1].Book(date)
}

// Label formats a free-table entry.
func Label(restaurant string, tableNumber int) string {
	return fmt.Sprintf("%s - Table %d", restaurant, tableNumber)
}
