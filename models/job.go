package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

const StatusActive = "active"

type Job struct {
	ID              string    `bson:"_id" json:"id"`
	EmployerID      string    `bson:"employer_id" json:"employer_id"`
	Title           string    `bson:"title" json:"title"`
	CompanyName     string    `bson:"company_name" json:"company_name"`
	Description     string    `bson:"description" json:"description"`
	Requirements    []string  `bson:"requirements" json:"requirements"`
	Category        string    `bson:"category" json:"category"`
	JobType         string    `bson:"job_type" json:"job_type"`
	ExperienceLevel string    `bson:"experience_level" json:"experience_level"`
	SalaryMin       float64   `bson:"salary_min" json:"salary_min"`
	SalaryMax       float64   `bson:"salary_max" json:"salary_max"`
	Location        string    `bson:"location" json:"location"`
	Skills          []string  `bson:"skills" json:"skills"`
	Status          string    `bson:"status" json:"status"`
	Views           int64     `bson:"views" json:"views"`
	ApplicantsCount int64     `bson:"applicants_count" json:"applicants_count"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

type JobCreate struct {
	Title           string   `json:"title"`
	CompanyName     string   `json:"company_name"`
	Description     string   `json:"description"`
	Requirements    []string `json:"requirements"`
	Category        string   `json:"category"`
	JobType         string   `json:"job_type"`
	ExperienceLevel string   `json:"experience_level"`
	SalaryMin       float64  `json:"salary_min"`
	SalaryMax       float64  `json:"salary_max"`
	Location        string   `json:"location"`
	Skills          []string `json:"skills"`
}

// NewJob builds an active listing owned by employerID with zeroed
// counters.
func (c JobCreate) NewJob(employerID string, now time.Time) Job {
	return Job{
		ID:              NewID(),
		EmployerID:      employerID,
		Title:           c.Title,
		CompanyName:     c.CompanyName,
		Description:     c.Description,
		Requirements:    orEmpty(c.Requirements),
		Category:        c.Category,
		JobType:         c.JobType,
		ExperienceLevel: c.ExperienceLevel,
		SalaryMin:       c.SalaryMin,
		SalaryMax:       c.SalaryMax,
		Location:        c.Location,
		Skills:          orEmpty(c.Skills),
		Status:          StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// JobUpdate enumerates the fields the owner may change after posting.
type JobUpdate struct {
	Title           *string   `json:"title"`
	CompanyName     *string   `json:"company_name"`
	Description     *string   `json:"description"`
	Requirements    *[]string `json:"requirements"`
	Category        *string   `json:"category"`
	JobType         *string   `json:"job_type"`
	ExperienceLevel *string   `json:"experience_level"`
	SalaryMin       *float64  `json:"salary_min"`
	SalaryMax       *float64  `json:"salary_max"`
	Location        *string   `json:"location"`
	Skills          *[]string `json:"skills"`
	Status          *string   `json:"status"`
}

func (u JobUpdate) Fields(now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.CompanyName != nil {
		set["company_name"] = *u.CompanyName
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Requirements != nil {
		set["requirements"] = *u.Requirements
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.JobType != nil {
		set["job_type"] = *u.JobType
	}
	if u.ExperienceLevel != nil {
		set["experience_level"] = *u.ExperienceLevel
	}
	if u.SalaryMin != nil {
		set["salary_min"] = *u.SalaryMin
	}
	if u.SalaryMax != nil {
		set["salary_max"] = *u.SalaryMax
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	if u.Skills != nil {
		set["skills"] = *u.Skills
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	return set
}
