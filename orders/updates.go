package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"patakha/db"
	"patakha/middleware"
	"patakha/models"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// adminFeedTopic collects every order event for the back-office stream;
// per-order topics feed the customer tracking socket.
const adminFeedTopic = "admin"

var orderUpdateChannels = struct {
	sync.RWMutex
	channels map[string]chan map[string]any
}{
	channels: make(map[string]chan map[string]any),
}

func getUpdatesChannel(topic string) chan map[string]any {
	orderUpdateChannels.RLock()
	if ch, exists := orderUpdateChannels.channels[topic]; exists {
		orderUpdateChannels.RUnlock()
		return ch
	}
	orderUpdateChannels.RUnlock()

	orderUpdateChannels.Lock()
	defer orderUpdateChannels.Unlock()
	if ch, exists := orderUpdateChannels.channels[topic]; exists {
		return ch
	}
	newCh := make(chan map[string]any, 10)
	orderUpdateChannels.channels[topic] = newCh
	return newCh
}

// broadcastOrderUpdate fans an event out to the admin feed and the
// order's own tracking topic. Full channels drop rather than block.
func broadcastOrderUpdate(orderID string, update map[string]any) {
	for _, topic := range []string{adminFeedTopic, orderID} {
		select {
		case getUpdatesChannel(topic) <- update:
		default:
			log.Printf("Warning: updates channel %s is full. Dropping update.", topic)
		}
	}
}

// GET /api/orders/updates (admin, SSE)
func AdminOrderUpdates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	updatesChannel := getUpdatesChannel(adminFeedTopic)
	for {
		select {
		case update := <-updatesChannel:
			jsonUpdate, _ := json.Marshal(update)
			fmt.Fprintf(w, "data: %s\n\n", jsonUpdate)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // tighten in production
	},
}

// GET /api/orders/:orderid/track — websocket pushing status changes for
// one order. Token arrives as ?token= because browsers cannot set
// headers on websocket upgrades.
func TrackOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, err := middleware.ValidateRawToken(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(ps.ByName("orderid"))
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	var order models.Order
	err = db.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	cancel()
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if order.UserID != claims.UserID && claims.Role != models.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Current state first, then live updates.
	conn.WriteJSON(map[string]any{
		"type":        "status_update",
		"orderId":     order.ID.Hex(),
		"orderNumber": order.OrderNumber,
		"orderStatus": order.OrderStatus,
	})

	// Drain client frames so pings and closes are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	updatesChannel := getUpdatesChannel(order.ID.Hex())
	for {
		select {
		case update := <-updatesChannel:
			if err := conn.WriteJSON(update); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
