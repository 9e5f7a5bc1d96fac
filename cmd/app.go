package cmd

import (
	"context"
	"fmt"

	"github.com/yeremiapane/table-reservation/config"
	"github.com/yeremiapane/table-reservation/database"
	"github.com/yeremiapane/table-reservation/reservation"
	"github.com/yeremiapane/table-reservation/utils"
)

// app is the state shared by every command: configuration, the store and a
// manager restored from it.
type app struct {
	cfg     config.Config
	store   *database.Store
	manager *reservation.Manager
	close   func()
}

// openApp loads config, opens and migrates the database and restores the
// manager. Callers must call close.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		sqlDB.Close()
		return nil, err
	}

	store := database.NewStore(db)
	m := reservation.NewManager(reservation.WithLogger(utils.InfoLogger))
	stats, err := store.Restore(ctx, m)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	utils.InfoLogger.Printf("Restored %d restaurants and %d bookings (%d rejected)",
		stats.Restaurants, stats.Bookings, stats.Rejected)

	return &app{
		cfg:     cfg,
		store:   store,
		manager: m,
		close:   func() { _ = sqlDB.Close() },
	}, nil
}

// persist writes the current restaurant order back to the store.
func (a *app) persist(ctx context.Context) error {
	return a.store.SyncManager(ctx, a.manager)
}
