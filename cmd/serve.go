package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/table-reservation/feed"
	"github.com/yeremiapane/table-reservation/reservation"
	"github.com/yeremiapane/table-reservation/router"
	"github.com/yeremiapane/table-reservation/services"
	"github.com/yeremiapane/table-reservation/utils"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the live feed and the load directory watcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			utils.ConfigureJWT(a.cfg.JWTSecret, a.cfg.TokenTTL)
			if a.cfg.GinMode != "" {
				gin.SetMode(a.cfg.GinMode)
			}

			hub := feed.NewHub()
			// Restore has already replayed stored bookings, so only new ones are recorded.
			a.manager.AddBookingListener(services.NewBookingRecorder(a.store, hub))

			if a.cfg.LoadDir != "" {
				watcher := services.NewLoadWatcher(a.cfg.LoadDir, a.manager)
				watcher.Interval = a.cfg.LoadInterval
				watcher.OnLoad = func(ev services.FileEvent, report reservation.LoadReport) {
					if err := a.persist(ctx); err != nil {
						utils.ErrorLogger.Errorf("Error syncing restaurants: %v", err)
					}
					hub.Broadcast(feed.Message{Event: feed.EventRestaurantsLoaded, Data: report})
				}
				watcher.Start()
				defer watcher.Stop()
			}

			r := router.SetupRouter(router.Deps{
				Manager:    a.manager,
				Store:      a.store,
				Hub:        hub,
				RateLimit:  a.cfg.RateLimit,
				CORSOrigin: a.cfg.CORSOrigin,
			})

			srv := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				utils.InfoLogger.Printf("Listening on port %s", a.cfg.Port)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			utils.InfoLogger.Println("Shutting down")
			shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
			defer stop()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
