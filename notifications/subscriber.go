package notifications

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"worklane/db"
	"worklane/models"
	"worklane/mq"
)

// Subscriber consumes notification events from Redis, persists each as
// a Notification document, and hands it to the hub for live delivery.
type Subscriber struct {
	rdb *redis.Client
	db  *db.DB
	hub *Hub
}

func NewSubscriber(rdb *redis.Client, database *db.DB, hub *Hub) *Subscriber {
	return &Subscriber{rdb: rdb, db: database, hub: hub}
}

// Run blocks until ctx is cancelled. Run it on its own goroutine.
func (s *Subscriber) Run(ctx context.Context) {
	sub := s.rdb.Subscribe(ctx, mq.Channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev mq.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("notifications: bad event payload: %v", err)
				continue
			}
			n := FromEvent(ev, time.Now().UTC())
			if _, err := s.db.Notifications.InsertOne(ctx, n); err != nil {
				log.Printf("notifications: insert error: %v", err)
				continue
			}
			s.hub.Push(n)
		}
	}
}

// FromEvent builds the stored notification for an emitted event.
func FromEvent(ev mq.Event, now time.Time) models.Notification {
	return models.Notification{
		ID:        models.NewID(),
		UserID:    ev.UserID,
		Title:     ev.Title,
		Message:   ev.Message,
		Type:      ev.Type,
		Link:      ev.Link,
		CreatedAt: now,
	}
}
