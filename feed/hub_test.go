package feed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/XTHN9RF/Foodify-API/models"
	"github.com/gorilla/websocket"
)

func dial(t *testing.T, h *Hub) (*websocket.Conn, func()) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("Dial failed: %v", err)
	}
	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients, have %d", n, h.Clients())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastReachesClient(t *testing.T) {
	h := NewHub()
	conn, cleanup := dial(t, h)
	defer cleanup()
	waitForClients(t, h, 1)

	h.OrderPlaced(models.Order{ID: 7, OrderRef: "ref-7", TotalPrice: models.MustMoney("6")})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if ev.Type != EventOrderPlaced || ev.Order.ID != 7 || ev.Order.TotalPrice.String() != "6.00" {
		t.Errorf("Unexpected event %+v", ev)
	}
}

func TestClosedClientIsRemoved(t *testing.T) {
	h := NewHub()
	conn, cleanup := dial(t, h)
	defer cleanup()
	waitForClients(t, h, 1)

	conn.Close()
	waitForClients(t, h, 0)

	// Broadcasting with nobody listening must not block or panic.
	h.OrderStatusChanged(models.Order{ID: 1, Status: models.OrderStatusShipped})
}

func TestStalledClientDoesNotBlockBroadcast(t *testing.T) {
	h := NewHub()
	conn, cleanup := dial(t, h)
	defer cleanup()
	waitForClients(t, h, 1)

	// A dashboard that never drains its queue.
	stalled := &client{send: make(chan []byte)}
	h.add(stalled)

	done := make(chan struct{})
	go func() {
		h.OrderPlaced(models.Order{ID: 9})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a stalled client")
	}

	if h.Clients() != 1 {
		t.Errorf("Expected the stalled client to be dropped, have %d clients", h.Clients())
	}
	if _, open := <-stalled.send; open {
		t.Error("Expected the stalled client's queue to be closed")
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if ev.Order.ID != 9 {
		t.Errorf("Healthy client should still get the event, got %+v", ev)
	}
}
