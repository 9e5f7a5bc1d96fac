package reservation

import "time"

// Booking describes a successful table reservation.
type Booking struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Restaurant   string    `json:"restaurant"`
	TableNumber  int       `json:"table_number"`
	Date         time.Time `json:"date"`
	BookedAt     time.Time `json:"booked_at"`
}

// BookingListener is notified after every successful Manager.BookTable call.
// OnBooked runs on the booking goroutine with no manager locks held.
type BookingListener interface {
	OnBooked(b Booking)
}

type BookingListenerFunc func(b Booking)

func (f BookingListenerFunc) OnBooked(b Booking) { f(b) }
