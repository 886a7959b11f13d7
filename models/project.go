package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type Project struct {
	ID             string    `bson:"_id" json:"id"`
	ClientID       string    `bson:"client_id" json:"client_id"`
	Title          string    `bson:"title" json:"title"`
	Description    string    `bson:"description" json:"description"`
	Category       string    `bson:"category" json:"category"`
	BudgetType     string    `bson:"budget_type" json:"budget_type"`
	BudgetMin      float64   `bson:"budget_min" json:"budget_min"`
	BudgetMax      float64   `bson:"budget_max" json:"budget_max"`
	Duration       string    `bson:"duration" json:"duration"`
	Skills         []string  `bson:"skills" json:"skills"`
	Status         string    `bson:"status" json:"status"`
	Views          int64     `bson:"views" json:"views"`
	ProposalsCount int64     `bson:"proposals_count" json:"proposals_count"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

type ProjectCreate struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	BudgetType  string   `json:"budget_type"`
	BudgetMin   float64  `json:"budget_min"`
	BudgetMax   float64  `json:"budget_max"`
	Duration    string   `json:"duration"`
	Skills      []string `json:"skills"`
}

func (c ProjectCreate) NewProject(clientID string, now time.Time) Project {
	return Project{
		ID:          NewID(),
		ClientID:    clientID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		BudgetType:  c.BudgetType,
		BudgetMin:   c.BudgetMin,
		BudgetMax:   c.BudgetMax,
		Duration:    c.Duration,
		Skills:      orEmpty(c.Skills),
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

type ProjectUpdate struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	BudgetType  *string   `json:"budget_type"`
	BudgetMin   *float64  `json:"budget_min"`
	BudgetMax   *float64  `json:"budget_max"`
	Duration    *string   `json:"duration"`
	Skills      *[]string `json:"skills"`
	Status      *string   `json:"status"`
}

func (u ProjectUpdate) Fields(now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.BudgetType != nil {
		set["budget_type"] = *u.BudgetType
	}
	if u.BudgetMin != nil {
		set["budget_min"] = *u.BudgetMin
	}
	if u.BudgetMax != nil {
		set["budget_max"] = *u.BudgetMax
	}
	if u.Duration != nil {
		set["duration"] = *u.Duration
	}
	if u.Skills != nil {
		set["skills"] = *u.Skills
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	return set
}
