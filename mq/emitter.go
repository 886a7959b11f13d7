package mq

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

// Channel carries notification events from the request handlers to the
// subscriber that persists and pushes them.
const Channel = "notification-events"

// Event is one notification to be delivered to a user.
type Event struct {
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Link    string `json:"link,omitempty"`
}

type Emitter struct {
	rdb *redis.Client
}

func NewEmitter(rdb *redis.Client) *Emitter {
	return &Emitter{rdb: rdb}
}

// Emit publishes the event to Redis. Best-effort: a lost event costs
// one notification, never the request that triggered it.
func (e *Emitter) Emit(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("mq: failed to marshal event: %v", err)
		return
	}
	if err := e.rdb.Publish(context.Background(), Channel, data).Err(); err != nil {
		log.Printf("mq: failed to publish event: %v", err)
	}
}
