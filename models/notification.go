package models

import "time"

type Notification struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Title     string    `bson:"title" json:"title"`
	Message   string    `bson:"message" json:"message"`
	Type      string    `bson:"type" json:"type"`
	Link      string    `bson:"link,omitempty" json:"link,omitempty"`
	IsRead    bool      `bson:"is_read" json:"is_read"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
