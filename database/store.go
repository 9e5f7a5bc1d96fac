package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/reservation"
	"github.com/yeremiapane/table-reservation/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("not found")

// Store keeps a best-effort copy of the manager's restaurants, their order and
// the bookings made against them, so state survives a restart.
type Store struct {
	DB *gorm.DB

	syncMu sync.Mutex
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// SyncManager replaces the stored restaurant list with m's current one. The
// snapshot is taken under the store's sync lock, so concurrent callers write
// in snapshot order and the last write is always the newest state.
func (s *Store) SyncManager(ctx context.Context, m *reservation.Manager) error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()
	return s.syncRestaurants(ctx, m.Restaurants(time.Now()))
}

// SyncRestaurants replaces the stored restaurant list with statuses, keeping
// their order.
func (s *Store) SyncRestaurants(ctx context.Context, statuses []reservation.RestaurantStatus) error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()
	return s.syncRestaurants(ctx, statuses)
}

func (s *Store) syncRestaurants(ctx context.Context, statuses []reservation.RestaurantStatus) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Restaurant{}).Error; err != nil {
			return err
		}
		if len(statuses) == 0 {
			return nil
		}
		rows := make([]models.Restaurant, 0, len(statuses))
		for i, st := range statuses {
			rows = append(rows, models.Restaurant{
				UID:        st.ID,
				Name:       st.Name,
				TableCount: st.TableCount,
				Position:   i,
			})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("sync restaurants: %w", err)
	}
	return nil
}

// SaveBooking stores b. Saving the same table/date twice is a no-op.
func (s *Store) SaveBooking(ctx context.Context, b reservation.Booking) error {
	row := models.Booking{
		ID:             b.ID,
		RestaurantID:   b.RestaurantID,
		RestaurantName: b.Restaurant,
		TableNumber:    b.TableNumber,
		Date:           reservation.DateOf(b.Date),
		BookedAt:       b.BookedAt,
	}
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save booking %s: %w", b.ID, err)
	}
	return nil
}

// Bookings lists stored bookings for date, oldest first.
func (s *Store) Bookings(ctx context.Context, date time.Time) ([]models.Booking, error) {
	var rows []models.Booking
	err := s.DB.WithContext(ctx).
		Where("date = ?", reservation.DateOf(date)).
		Order("booked_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return rows, nil
}

// RestoreStats reports what Restore replayed.
type RestoreStats struct {
	Restaurants int
	Bookings    int
	Rejected    int
}

// Restore replays stored restaurants, in stored order and under their stored
// IDs, and then bookings into m. A booking goes back to the restaurant with its
// RestaurantID; rows without one fall back to the name. Bookings the manager refuses are counted and logged, not returned as
// errors. Call it before attaching listeners that write back to the store.
func (s *Store) Restore(ctx context.Context, m *reservation.Manager) (RestoreStats, error) {
	var stats RestoreStats

	var restaurants []models.Restaurant
	if err := s.DB.WithContext(ctx).Order("position ASC").Find(&restaurants).Error; err != nil {
		return stats, fmt.Errorf("restore restaurants: %w", err)
	}
	for _, r := range restaurants {
		if r.UID == "" {
			m.AddRestaurant(r.Name, r.TableCount)
		} else if err := m.AddRestaurantWithID(r.UID, r.Name, r.TableCount); err != nil {
			utils.ErrorLogger.WithError(err).WithField("restaurant", r.Name).Error("stored restaurant not restored")
			continue
		}
		stats.Restaurants++
	}

	var bookings []models.Booking
	if err := s.DB.WithContext(ctx).Order("booked_at ASC").Find(&bookings).Error; err != nil {
		return stats, fmt.Errorf("restore bookings: %w", err)
	}
	for _, b := range bookings {
		var ok bool
		if b.RestaurantID != "" {
			ok = m.BookTableByID(b.RestaurantID, b.Date, b.TableNumber)
		} else {
			ok = m.BookTable(b.RestaurantName, b.Date, b.TableNumber)
		}
		if ok {
			stats.Bookings++
			continue
		}
		stats.Rejected++
		utils.ErrorLogger.WithFields(logrus.Fields{
			"booking":    b.ID,
			"restaurant": b.RestaurantName,
			"table":      b.TableNumber,
		}).Error("stored booking no longer applies")
	}
	return stats, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user %q: %w", user.Username, err)
	}
	return nil
}

func (s *Store) FindUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("find user %q: %w", username, err)
	}
	return user, nil
}
