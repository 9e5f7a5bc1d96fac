package models

import "time"

// Restaurant is the stored shape of a reservation.Restaurant. Position keeps
// the manager order, including any availability sort. UID is the manager's
// restaurant ID; rows written before it existed have it empty.
type Restaurant struct {
	ID         uint      `gorm:"primaryKey"`
	UID        string    `gorm:"type:varchar(36);not null;default:'';index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	TableCount int       `gorm:"not null"`
	Position   int       `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"not null"`
}
