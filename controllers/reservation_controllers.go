package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeremiapane/table-reservation/database"
	"github.com/yeremiapane/table-reservation/feed"
	"github.com/yeremiapane/table-reservation/reservation"
	"github.com/yeremiapane/table-reservation/utils"
)

type ReservationController struct {
	Manager *reservation.Manager
	Store   *database.Store
	Hub     *feed.Hub
}

func NewReservationController(m *reservation.Manager, store *database.Store, hub *feed.Hub) *ReservationController {
	return &ReservationController{Manager: m, Store: store, Hub: hub}
}

// ListRestaurants -> restaurants in current order with availability on ?date
func (rc *ReservationController) ListRestaurants(c *gin.Context) {
	date, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of restaurants", gin.H{
		"date":        date.Format(utils.DateLayout),
		"available":   rc.Manager.CountAvailableTables(date),
		"restaurants": rc.Manager.Restaurants(date),
	})
}

// FreeTables -> labels of every free table on ?date, optionally capped by ?limit
func (rc *ReservationController) FreeTables(c *gin.Context) {
	date, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	limit := -1
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("limit must be a non-negative integer"))
			return
		}
	}

	labels := []string{}
	if limit != 0 {
		for label := range rc.Manager.FindAllFreeTables(date) {
			labels = append(labels, label)
			if len(labels) == limit {
				break
			}
		}
	}

	utils.RespondJSON(c, http.StatusOK, "List of free tables", gin.H{
		"date":   date.Format(utils.DateLayout),
		"tables": labels,
	})
}

// BookTable -> reserve one table for one date
func (rc *ReservationController) BookTable(c *gin.Context) {
	var req struct {
		Restaurant  string `json:"restaurant" binding:"required"`
		Date        string `json:"date" binding:"required"`
		TableNumber int    `json:"table_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !rc.Manager.BookTable(req.Restaurant, date, req.TableNumber) {
		utils.RespondError(c, http.StatusConflict, errors.New("table is not available"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Table booked", gin.H{
		"restaurant":   req.Restaurant,
		"date":         date.Format(utils.DateLayout),
		"table_number": req.TableNumber,
		"label":        reservation.Label(req.Restaurant, req.TableNumber),
	})
}

// AddRestaurant -> append one restaurant (admin)
func (rc *ReservationController) AddRestaurant(c *gin.Context) {
	var req struct {
		Name       string `json:"name" binding:"required"`
		TableCount *int   `json:"table_count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if *req.TableCount < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("table_count must not be negative"))
		return
	}

	id := uuid.NewString()
	if err := rc.Manager.AddRestaurantWithID(id, req.Name, *req.TableCount); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	rc.sync(c.Request.Context())

	status := reservation.RestaurantStatus{ID: id, Name: req.Name, TableCount: *req.TableCount, Available: *req.TableCount}
	rc.broadcast(feed.EventRestaurantAdded, status)

	utils.InfoLogger.Printf("New restaurant added: %s (%d tables)", req.Name, *req.TableCount)
	utils.RespondJSON(c, http.StatusCreated, "Restaurant added", status)
}

// LoadRestaurants -> bulk load "name,count" lines from a multipart "file"
// field or from the raw request body (admin)
func (rc *ReservationController) LoadRestaurants(c *gin.Context) {
	var (
		src    io.Reader
		source string
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		f, err := fh.Open()
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		defer f.Close()
		src, source = f, fh.Filename
	} else {
		src, source = c.Request.Body, "request body"
	}

	report, err := rc.Manager.LoadRestaurants(src, source)
	if report.Added > 0 {
		rc.sync(c.Request.Context())
		rc.broadcast(feed.EventRestaurantsLoaded, report)
	}
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Restaurants loaded", report)
}

// SortRestaurants -> reorder restaurants by free tables on ?date (admin)
func (rc *ReservationController) SortRestaurants(c *gin.Context) {
	date, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rc.Manager.SortRestaurantsByAvailability(date)
	rc.sync(c.Request.Context())

	statuses := rc.Manager.Restaurants(date)
	rc.broadcast(feed.EventRestaurantsSorted, statuses)

	utils.RespondJSON(c, http.StatusOK, "Restaurants sorted", gin.H{
		"date":        date.Format(utils.DateLayout),
		"restaurants": statuses,
	})
}

// sync writes the current restaurant order to the store. The in-memory state
// is authoritative, so failures are only logged.
func (rc *ReservationController) sync(ctx context.Context) {
	if rc.Store == nil {
		return
	}
	if err := rc.Store.SyncManager(ctx, rc.Manager); err != nil {
		utils.ErrorLogger.Errorf("Error syncing restaurants: %v", err)
	}
}

func (rc *ReservationController) broadcast(event string, data interface{}) {
	if rc.Hub == nil {
		return
	}
	rc.Hub.Broadcast(feed.Message{Event: event, Data: data})
}
