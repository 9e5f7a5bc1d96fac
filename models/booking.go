package models

import "time"

// Booking is a persisted table reservation. RestaurantID is the manager's
// restaurant ID and, with the table and date, identifies the slot.
// RestaurantName is kept for display and for rows without an ID.
type Booking struct {
	ID             string    `gorm:"type:varchar(36);primaryKey"`
	RestaurantID   string    `gorm:"type:varchar(36);not null;default:'';uniqueIndex:idx_booking_slot"`
	RestaurantName string    `gorm:"type:varchar(255);not null"`
	TableNumber    int       `gorm:"not null;uniqueIndex:idx_booking_slot"`
	Date           time.Time `gorm:"type:date;not null;uniqueIndex:idx_booking_slot"`
	BookedAt       time.Time `gorm:"not null"`
}
