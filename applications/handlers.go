package applications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"worklane/db"
	"worklane/middleware"
	"worklane/models"
	"worklane/mq"
	"worklane/utils"
)

type Handler struct {
	DB     *db.DB
	Events *mq.Emitter
}

func NewHandler(database *db.DB, events *mq.Emitter) *Handler {
	return &Handler{DB: database, Events: events}
}

func findAndRespondApplications(ctx context.Context, w http.ResponseWriter, cursor *mongo.Cursor) {
	defer cursor.Close(ctx)
	var results []models.JobApplication
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("applications: cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.JobApplication{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

// Submit files an application for a job. One application per
// (job, applicant) pair: the pre-check catches the common case and the
// unique index catches concurrent double-submission.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	actor, err := h.DB.UserByID(ctx, middleware.UserID(ctx))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}
	if !models.CanApply(actor.UserType) {
		utils.RespondWithError(w, http.StatusForbidden, "Only job seekers and freelancers can apply")
		return
	}

	var input models.ApplicationCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.JobID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "job_id is required")
		return
	}

	var job models.Job
	if err := h.DB.Jobs.FindOne(ctx, bson.M{"_id": input.JobID}).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		} else {
			log.Printf("applications: db error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	err = h.DB.Applications.FindOne(ctx, bson.M{"job_id": input.JobID, "applicant_id": actor.ID}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Already applied to this job")
		return
	} else if err != mongo.ErrNoDocuments {
		log.Printf("applications: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	application := input.NewApplication(actor.ID, time.Now().UTC())
	if _, err := h.DB.Applications.InsertOne(ctx, application); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Already applied to this job")
			return
		}
		log.Printf("applications: insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save application")
		return
	}

	// Second, independent write. If it fails the job under-counts;
	// there is no rollback of the inserted application.
	if _, err := h.DB.Jobs.UpdateOne(ctx, bson.M{"_id": input.JobID},
		bson.M{"$inc": bson.M{"applicants_count": 1}}); err != nil {
		log.Printf("applications: count update error: %v", err)
	}

	h.Events.Emit(mq.Event{
		UserID:  job.EmployerID,
		Title:   "New application",
		Message: fmt.Sprintf("%s applied to %q", actor.FullName, job.Title),
		Type:    "application",
		Link:    "/jobs/" + job.ID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, application)
}

// Mine lists the applications the caller has submitted.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	cursor, err := h.DB.Applications.Find(ctx, bson.M{"applicant_id": middleware.UserID(ctx)},
		options.Find().SetLimit(100))
	if err != nil {
		log.Printf("applications: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	findAndRespondApplications(ctx, w, cursor)
}

// ForJob lists a job's applications, visible only to its owner.
func (h *Handler) ForJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	jobID := ps.ByName("id")

	var job models.Job
	if err := h.DB.Jobs.FindOne(ctx, bson.M{"_id": jobID}).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		} else {
			log.Printf("applications: db error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if job.EmployerID != middleware.UserID(ctx) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to view applications")
		return
	}

	cursor, err := h.DB.Applications.Find(ctx, bson.M{"job_id": jobID}, options.Find().SetLimit(100))
	if err != nil {
		log.Printf("applications: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	findAndRespondApplications(ctx, w, cursor)
}
