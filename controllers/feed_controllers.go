package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/table-reservation/feed"
	"github.com/yeremiapane/table-reservation/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type FeedController struct {
	Hub *feed.Hub
}

func NewFeedController(hub *feed.Hub) *FeedController {
	return &FeedController{Hub: hub}
}

// Subscribe -> websocket stream of reservation events
func (fc *FeedController) Subscribe(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Errorf("Error upgrading feed connection: %v", err)
		return
	}

	fc.Hub.Register(ws)

	// Clients only listen; reading detects the disconnect.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	fc.Hub.Unregister(ws)
}
