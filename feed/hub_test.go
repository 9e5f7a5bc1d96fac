package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-reservation/reservation"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		hub.Unregister(conn)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastBooking(reservation.Booking{ID: "b-1", Restaurant: "A", TableNumber: 3})

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Event string              `json:"event"`
		Data  reservation.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, EventBookingCreated, msg.Event)
	assert.Equal(t, "A", msg.Data.Restaurant)
	assert.Equal(t, 3, msg.Data.TableNumber)

	client.Close()
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubBroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	assert.NotPanics(t, func() {
		hub.Broadcast(Message{Event: EventRestaurantsSorted, Data: nil})
	})
}

func TestHubDropsClientThatStopsReading(t *testing.T) {
	hub := NewHub()
	hub.WriteTimeout = 50 * time.Millisecond
	upgrader := websocket.Upgrader{}

	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(conn)
		<-done
	}))
	defer srv.Close()
	defer close(done)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	// The client never reads, so socket buffers fill and a send times out.
	payload := strings.Repeat("x", 1<<20)
	start := time.Now()
	for i := 0; i < 512 && hub.Count() > 0; i++ {
		hub.Broadcast(Message{Event: EventRestaurantsLoaded, Data: payload})
	}
	assert.Zero(t, hub.Count())
	assert.Less(t, time.Since(start), 30*time.Second)
}
