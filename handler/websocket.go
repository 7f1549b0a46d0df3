package handler

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"nyn_restaurant/config"
	"nyn_restaurant/constants"
	"nyn_restaurant/database"
	"nyn_restaurant/model"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient = redis.NewClient(&redis.Options{Addr: config.ConfigOr("REDIS_ADDR", "localhost:6379")})

	kitchenClients  = make(map[chan []byte]bool)
	kitchenMu       sync.Mutex
	kitchenFeedOnce sync.Once
)

// KitchenEvent is what flows over the dashboard feed.
type KitchenEvent struct {
	Type  string       `json:"type"` // order_created, status_changed, urgency_tick
	Order *model.Order `json:"order,omitempty"`
	IDs   []uint       `json:"ids,omitempty"`
	At    time.Time    `json:"at"`
}

// PublishKitchenEvent pushes an order event onto the Redis channel feeding
// every connected dashboard. Best effort: a down Redis loses the push, the
// dashboard catches up from its initial snapshot on reconnect.
func PublishKitchenEvent(eventType string, order *model.Order) {
	payload, err := json.Marshal(KitchenEvent{Type: eventType, Order: order, At: time.Now()})
	if err != nil {
		log.Printf("failed to marshal kitchen event: %v", err)
		return
	}
	if err := redisClient.Publish(context.Background(), constants.KITCHEN_CHANNEL, payload).Err(); err != nil {
		log.Printf("failed to publish kitchen event: %v", err)
	}
}

// registerKitchenClient adds an outbound channel to the feed registry.
func registerKitchenClient() chan []byte {
	ch := make(chan []byte, 16)
	kitchenMu.Lock()
	kitchenClients[ch] = true
	kitchenMu.Unlock()
	return ch
}

func unregisterKitchenClient(ch chan []byte) {
	kitchenMu.Lock()
	if kitchenClients[ch] {
		delete(kitchenClients, ch)
		close(ch)
	}
	kitchenMu.Unlock()
}

// fanOutKitchenPayload hands one event to every registered connection. A
// client whose buffer is full misses the event rather than stalling the feed;
// the urgency tick and the next snapshot catch it up.
func fanOutKitchenPayload(payload []byte) {
	kitchenMu.Lock()
	for ch := range kitchenClients {
		select {
		case ch <- payload:
		default:
		}
	}
	kitchenMu.Unlock()
}

// startKitchenFeed opens the single Redis subscription shared by all
// dashboard connections and pumps it into the registry.
func startKitchenFeed() {
	go func() {
		pubsub := redisClient.Subscribe(context.Background(), constants.KITCHEN_CHANNEL)
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			fanOutKitchenPayload([]byte(msg.Payload))
		}
	}()
}

// KitchenWebsocket attaches a dashboard to the live order feed. Each
// connection gets the current open orders once, then receives every event
// published on the Redis channel until it disconnects.
func KitchenWebsocket(c *websocket.Conn) {
	kitchenFeedOnce.Do(startKitchenFeed)

	ch := registerKitchenClient()
	defer func() {
		unregisterKitchenClient(ch)
		c.Close()
	}()

	// initial snapshot of open orders
	var orders []model.Order
	if err := database.DB.Preload("Items").
		Where("status NOT IN ?", []string{constants.ORDER_PICKED_UP, constants.ORDER_CANCELLED}).
		Order("created_at desc").
		Find(&orders).Error; err == nil {
		c.WriteJSON(map[string]interface{}{"type": "snapshot", "orders": orders})
	}

	// the read loop only exists to notice the peer going away
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case payload, ok := <-ch:
			if !ok {
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-disconnected:
			return
		}
	}
}

var urgencyScheduler gocron.Scheduler

// StartUrgencyBroadcaster re-announces which open orders have crossed the
// urgency threshold every 30 seconds, so idle dashboards repaint their timers
// without any order changing.
func StartUrgencyBroadcaster() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	urgencyScheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(30*time.Second),
		gocron.NewTask(broadcastUrgentOrders),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Urgency broadcaster started (every 30s)")
}

func broadcastUrgentOrders() {
	cutoff := time.Now().Add(-constants.URGENT_AFTER_MINUTES * time.Minute)

	var ids []uint
	if err := database.DB.Model(&model.Order{}).
		Where("status NOT IN ? AND created_at < ?",
			[]string{constants.ORDER_PICKED_UP, constants.ORDER_CANCELLED}, cutoff).
		Pluck("id", &ids).Error; err != nil {
		log.Printf("failed to scan urgent orders: %v", err)
		return
	}
	if len(ids) == 0 {
		return
	}

	payload, err := json.Marshal(KitchenEvent{Type: "urgency_tick", IDs: ids, At: time.Now()})
	if err != nil {
		return
	}
	if err := redisClient.Publish(context.Background(), constants.KITCHEN_CHANNEL, payload).Err(); err != nil {
		log.Printf("failed to publish urgency tick: %v", err)
	}
}

func StopUrgencyBroadcaster() {
	if urgencyScheduler != nil {
		_ = urgencyScheduler.Shutdown()
	}
}
