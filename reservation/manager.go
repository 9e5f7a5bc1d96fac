// Package reservation is the in-memory table reservation engine: restaurants
// with fixed, numbered tables and at most one booking per table per date.
package reservation

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Manager routes booking and availability requests to restaurants. Restaurants
// keep insertion order until SortRestaurantsByAvailability reorders them.
type Manager struct {
	mu          sync.RWMutex
	restaurants []*Restaurant

	lmu       sync.RWMutex
	listeners []BookingListener

	log   logrus.FieldLogger
	clock func() time.Time
}

type Option func(*Manager)

// WithLogger sets the logger used for rejected requests and load warnings.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithBookingListener registers l at construction time.
func WithBookingListener(l BookingListener) Option {
	return func(m *Manager) {
		if l != nil {
			m.listeners = append(m.listeners, l)
		}
	}
}

// WithClock overrides the clock used to stamp Booking.BookedAt.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.clock = now
		}
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		log:   logrus.StandardLogger(),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddBookingListener registers l for every booking made from now on.
func (m *Manager) AddBookingListener(l BookingListener) {
	if l == nil {
		return
	}
	m.lmu.Lock()
	defer m.lmu.Unlock()
	m.listeners = append(m.listeners, l)
}

// AddRestaurant appends a restaurant with tables 1..tableCount. Empty names and
// zero tables are accepted. A restaurant that cannot be built is logged and
// left out; the manager is unaffected.
func (m *Manager) AddRestaurant(name string, tableCount int) {
	if err := m.AddRestaurantWithID(uuid.NewString(), name, tableCount); err != nil {
		m.log.WithError(err).WithField("restaurant", name).Error("add restaurant")
	}
}

// AddRestaurantWithID is AddRestaurant with a caller-chosen ID, used to bring
// back stored restaurants. The ID must be non-empty and not already in use.
func (m *Manager) AddRestaurantWithID(id, name string, tableCount int) error {
	if id == "" {
		return fmt.Errorf("restaurant %q: empty id", name)
	}
	r, err := newRestaurant(id, name, tableCount)
	if err != nil {
		return err
	}

	m.mu.Lock()
	for _, other := range m.restaurants {
		if other.ID() == id {
			m.mu.Unlock()
			return fmt.Errorf("restaurant %q: duplicate id %s", name, id)
		}
	}
	m.restaurants = append(m.restaurants, r)
	m.mu.Unlock()

	m.log.WithFields(logrus.Fields{"restaurant": name, "id": id, "tables": tableCount}).Debug("restaurant added")
	return nil
}

// Len returns the number of restaurants.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.restaurants)
}

// FindAllFreeTables yields the free-table labels of every restaurant in the
// current manager order, tables ascending within a restaurant. The order is
// captured when iteration starts, so a concurrent sort never interleaves.
func (m *Manager) FindAllFreeTables(date time.Time) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, r := range m.snapshot() {
			for label := range r.FindAllFreeTables(date) {
				if !yield(label) {
					return
				}
			}
		}
	}
}

// BookTable books tableNumber at the first restaurant called restaurantName.
// It returns false, touching nothing, when the restaurant is unknown, the
// table number is outside 1..TableCount, or the table is already booked.
func (m *Manager) BookTable(restaurantName string, date time.Time, tableNumber int) bool {
	fields := logrus.Fields{
		"restaurant": restaurantName,
		"table":      tableNumber,
		"date":       DateOf(date).Format(time.DateOnly),
	}
	return m.book(m.find(func(r *Restaurant) bool { return r.Name() == restaurantName }), date, tableNumber, fields)
}

// BookTableByID is BookTable addressing the restaurant by ID, which stays
// correct when several restaurants share a name.
func (m *Manager) BookTableByID(restaurantID string, date time.Time, tableNumber int) bool {
	fields := logrus.Fields{
		"restaurant_id": restaurantID,
		"table":         tableNumber,
		"date":          DateOf(date).Format(time.DateOnly),
	}
	return m.book(m.find(func(r *Restaurant) bool { return r.ID() == restaurantID }), date, tableNumber, fields)
}

func (m *Manager) book(r *Restaurant, date time.Time, tableNumber int, fields logrus.Fields) bool {
	if r == nil {
		m.log.WithFields(fields).Warn("invalid reservation request: unknown restaurant")
		return false
	}
	if tableNumber < 1 || tableNumber > r.TableCount() {
		m.log.WithFields(fields).Warn("invalid reservation request: table number out of range")
		return false
	}
	if !r.bookTable(date, tableNumber) {
		m.log.WithFields(fields).Info("table already booked")
		return false
	}

	m.notify(Booking{
		ID:           uuid.NewString(),
		RestaurantID: r.ID(),
		Restaurant:   r.Name(),
		TableNumber:  tableNumber,
		Date:         DateOf(date),
		BookedAt:     m.clock(),
	})
	return true
}

// SortRestaurantsByAvailability reorders restaurants by free tables on date,
// most first. Ties keep their previous relative order. The new order sticks.
func (m *Manager) SortRestaurantsByAvailability(date time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	free := make(map[*Restaurant]int, len(m.restaurants))
	for _, r := range m.restaurants {
		free[r] = r.CountAvailableTables(date)
	}
	slices.SortStableFunc(m.restaurants, func(a, b *Restaurant) int {
		return cmp.Compare(free[b], free[a])
	})
}

// CountAvailableTables sums free tables on date across all restaurants.
func (m *Manager) CountAvailableTables(date time.Time) int {
	n := 0
	for _, r := range m.snapshot() {
		n += r.CountAvailableTables(date)
	}
	return n
}

// RestaurantStatus is a point-in-time view of one restaurant.
type RestaurantStatus struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TableCount int    `json:"table_count"`
	Available  int    `json:"available"`
}

// Restaurants lists every restaurant in manager order with its availability
// on date.
func (m *Manager) Restaurants(date time.Time) []RestaurantStatus {
	rs := m.snapshot()
	out := make([]RestaurantStatus, 0, len(rs))
	for _, r := range rs {
		out = append(out, RestaurantStatus{
			ID:         r.ID(),
			Name:       r.Name(),
			TableCount: r.TableCount(),
			Available:  r.CountAvailableTables(date),
		})
	}
	return out
}

func (m *Manager) snapshot() []*Restaurant {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.restaurants)
}

func (m *Manager) find(match func(*Restaurant) bool) *Restaurant {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.restaurants {
		if match(r) {
			return r
		}
	}
	return nil
}

func (m *Manager) notify(b Booking) {
	m.lmu.RLock()
	ls := slices.Clone(m.listeners)
	m.lmu.RUnlock()

	for _, l := range ls {
		l.OnBooked(b)
	}
}
