package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-reservation/controllers"
	"github.com/yeremiapane/table-reservation/database"
	"github.com/yeremiapane/table-reservation/feed"
	"github.com/yeremiapane/table-reservation/middlewares"
	"github.com/yeremiapane/table-reservation/reservation"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Manager *reservation.Manager
	Store   *database.Store
	Hub     *feed.Hub

	RateLimit  int // requests per second per IP; 0 disables
	CORSOrigin string
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	origin := d.CORSOrigin
	if origin == "" {
		origin = "*"
	}
	r.Use(middlewares.CORSMiddlewares(origin))
	r.Use(middlewares.LoggerMiddleware())
	if d.RateLimit > 0 {
		r.Use(middlewares.NewRateLimiter(d.RateLimit).RateLimit())
	}

	userCtrl := controllers.NewUserController(d.Store)
	reservationCtrl := controllers.NewReservationController(d.Manager, d.Store, d.Hub)
	feedCtrl := controllers.NewFeedController(d.Hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.POST("/login", middlewares.NewStrictRateLimiter().RateLimit(), userCtrl.Login)

	r.GET("/restaurants", reservationCtrl.ListRestaurants)
	r.GET("/tables/free", reservationCtrl.FreeTables)
	r.POST("/bookings", reservationCtrl.BookTable)

	r.GET("/ws/feed", feedCtrl.Subscribe)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RoleCheck(middlewares.RoleOperator))
	{
		admin.POST("/restaurants", reservationCtrl.AddRestaurant)
		admin.POST("/restaurants/load", reservationCtrl.LoadRestaurants)
		admin.POST("/restaurants/sort", reservationCtrl.SortRestaurants)
	}

	return r
}
