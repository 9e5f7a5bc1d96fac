package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/table-reservation/database"
	"github.com/yeremiapane/table-reservation/feed"
	"github.com/yeremiapane/table-reservation/reservation"
	"github.com/yeremiapane/table-reservation/utils"
)

// BookingRecorder persists and broadcasts every booking the manager accepts.
// Failures are logged; the booking itself already succeeded in memory.
type BookingRecorder struct {
	Store   *database.Store
	Hub     *feed.Hub
	Timeout time.Duration
}

func NewBookingRecorder(store *database.Store, hub *feed.Hub) *BookingRecorder {
	return &BookingRecorder{
		Store:   store,
		Hub:     hub,
		Timeout: 5 * time.Second,
	}
}

func (r *BookingRecorder) OnBooked(b reservation.Booking) {
	fields := logrus.Fields{
		"booking":    b.ID,
		"restaurant": b.Restaurant,
		"table":      b.TableNumber,
		"date":       b.Date.Format(utils.DateLayout),
	}

	if r.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
		defer cancel()
		if err := r.Store.SaveBooking(ctx, b); err != nil {
			utils.ErrorLogger.WithFields(fields).WithError(err).Error("persist booking")
		}
	}
	if r.Hub != nil {
		r.Hub.BroadcastBooking(b)
	}

	utils.InfoLogger.WithFields(fields).Info("table booked")
}
