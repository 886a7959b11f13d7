package models

import "time"

const StatusPending = "pending"

type JobApplication struct {
	ID          string    `bson:"_id" json:"id"`
	JobID       string    `bson:"job_id" json:"job_id"`
	ApplicantID string    `bson:"applicant_id" json:"applicant_id"`
	CoverLetter string    `bson:"cover_letter,omitempty" json:"cover_letter,omitempty"`
	ResumeURL   string    `bson:"resume_url,omitempty" json:"resume_url,omitempty"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type ApplicationCreate struct {
	JobID       string `json:"job_id"`
	CoverLetter string `json:"cover_letter"`
	ResumeURL   string `json:"resume_url"`
}

func (c ApplicationCreate) NewApplication(applicantID string, now time.Time) JobApplication {
	return JobApplication{
		ID:          NewID(),
		JobID:       c.JobID,
		ApplicantID: applicantID,
		CoverLetter: c.CoverLetter,
		ResumeURL:   c.ResumeURL,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

type Proposal struct {
	ID             string    `bson:"_id" json:"id"`
	ProjectID      string    `bson:"project_id" json:"project_id"`
	FreelancerID   string    `bson:"freelancer_id" json:"freelancer_id"`
	CoverLetter    string    `bson:"cover_letter" json:"cover_letter"`
	ProposedBudget float64   `bson:"proposed_budget" json:"proposed_budget"`
	DeliveryTime   string    `bson:"delivery_time" json:"delivery_time"`
	Status         string    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

type ProposalCreate struct {
	ProjectID      string  `json:"project_id"`
	CoverLetter    string  `json:"cover_letter"`
	ProposedBudget float64 `json:"proposed_budget"`
	DeliveryTime   string  `json:"delivery_time"`
}

func (c ProposalCreate) NewProposal(freelancerID string, now time.Time) Proposal {
	return Proposal{
		ID:             NewID(),
		ProjectID:      c.ProjectID,
		FreelancerID:   freelancerID,
		CoverLetter:    c.CoverLetter,
		ProposedBudget: c.ProposedBudget,
		DeliveryTime:   c.DeliveryTime,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
