package controllers_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-reservation/controllers"
	"github.com/yeremiapane/table-reservation/feed"
)

func TestFeedSubscribe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := feed.NewHub()

	r := gin.New()
	r.GET("/ws/feed", controllers.NewFeedController(hub).Subscribe)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/feed"
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast(feed.Message{Event: feed.EventRestaurantAdded, Data: map[string]int{"table_count": 2}})
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg feed.Message
	require.NoError(t, client.ReadJSON(&msg))
	assert.Equal(t, feed.EventRestaurantAdded, msg.Event)

	client.Close()
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 10*time.Millisecond)
}
