package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Account roles. A user picks one at registration and it gates what
// they can create: employers/clients post listings, jobseekers and
// freelancers respond to them.
const (
	RoleEmployer   = "employer"
	RoleFreelancer = "freelancer"
	RoleJobseeker  = "jobseeker"
	RoleClient     = "client"
)

func ValidRole(role string) bool {
	switch role {
	case RoleEmployer, RoleFreelancer, RoleJobseeker, RoleClient:
		return true
	}
	return false
}

// CanPostListings reports whether the role may create jobs or projects.
func CanPostListings(role string) bool {
	return role == RoleEmployer || role == RoleClient
}

// CanApply reports whether the role may submit job applications.
func CanApply(role string) bool {
	return role == RoleJobseeker || role == RoleFreelancer
}

// CanPropose reports whether the role may submit project proposals.
func CanPropose(role string) bool {
	return role == RoleFreelancer
}

type User struct {
	ID                 string    `bson:"_id" json:"id"`
	Email              string    `bson:"email" json:"email"`
	Password           string    `bson:"password" json:"-"`
	FullName           string    `bson:"full_name" json:"full_name"`
	UserType           string    `bson:"user_type" json:"user_type"`
	AvatarURL          string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Bio                string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills             []string  `bson:"skills" json:"skills"`
	HourlyRate         float64   `bson:"hourly_rate,omitempty" json:"hourly_rate,omitempty"`
	ExperienceLevel    string    `bson:"experience_level,omitempty" json:"experience_level,omitempty"`
	Location           string    `bson:"location,omitempty" json:"location,omitempty"`
	Rating             float64   `bson:"rating" json:"rating"`
	CompletedProjects  int       `bson:"completed_projects" json:"completed_projects"`
	VerificationStatus string    `bson:"verification_status" json:"verification_status"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updated_at"`
}

// UserUpdate is the bounded set of profile fields a user may change on
// their own record. Anything else in the payload is rejected at decode
// time.
type UserUpdate struct {
	FullName        *string   `json:"full_name"`
	AvatarURL       *string   `json:"avatar_url"`
	Bio             *string   `json:"bio"`
	Skills          *[]string `json:"skills"`
	HourlyRate      *float64  `json:"hourly_rate"`
	ExperienceLevel *string   `json:"experience_level"`
	Location        *string   `json:"location"`
}

func (u UserUpdate) Fields(now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if u.FullName != nil {
		set["full_name"] = *u.FullName
	}
	if u.AvatarURL != nil {
		set["avatar_url"] = *u.AvatarURL
	}
	if u.Bio != nil {
		set["bio"] = *u.Bio
	}
	if u.Skills != nil {
		set["skills"] = *u.Skills
	}
	if u.HourlyRate != nil {
		set["hourly_rate"] = *u.HourlyRate
	}
	if u.ExperienceLevel != nil {
		set["experience_level"] = *u.ExperienceLevel
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	return set
}
