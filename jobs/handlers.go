package jobs

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"worklane/db"
	"worklane/middleware"
	"worklane/models"
	"worklane/utils"
)

type Handler struct {
	DB *db.DB
}

func NewHandler(database *db.DB) *Handler {
	return &Handler{DB: database}
}

// listFilter builds the browse query. Only active listings are ever
// listed; the optional parameters narrow within those.
func listFilter(q url.Values) bson.M {
	filter := bson.M{"status": models.StatusActive}
	if v := q.Get("category"); v != "" {
		filter["category"] = v
	}
	if v := q.Get("job_type"); v != "" {
		filter["job_type"] = v
	}
	if v := q.Get("experience_level"); v != "" {
		filter["experience_level"] = v
	}
	return filter
}

func findAndRespondJobs(ctx context.Context, w http.ResponseWriter, cursor *mongo.Cursor) {
	defer cursor.Close(ctx)
	var results []models.Job
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("jobs: cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.Job{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	limit := utils.ParseLimit(r, 50, 100)

	cursor, err := h.DB.Jobs.Find(ctx, listFilter(r.URL.Query()), options.Find().SetLimit(limit))
	if err != nil {
		log.Printf("jobs: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	findAndRespondJobs(ctx, w, cursor)
}

// GetJob returns a single listing and bumps its view counter. The
// counter write is a single atomic $inc; the echoed value is a local
// read-after-write and may trail other viewers.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("id")

	var job models.Job
	if err := h.DB.Jobs.FindOne(ctx, bson.M{"_id": id}).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		} else {
			log.Printf("jobs: db error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if _, err := h.DB.Jobs.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}}); err != nil {
		log.Printf("jobs: view count error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	job.Views++

	utils.RespondWithJSON(w, http.StatusOK, job)
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	actor, err := h.DB.UserByID(ctx, middleware.UserID(ctx))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}
	if !models.CanPostListings(actor.UserType) {
		utils.RespondWithError(w, http.StatusForbidden, "Only employers and clients can post jobs")
		return
	}

	var input models.JobCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Title == "" || input.Description == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	job := input.NewJob(actor.ID, time.Now().UTC())
	if _, err := h.DB.Jobs.InsertOne(ctx, job); err != nil {
		log.Printf("jobs: insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, job)
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("id")

	var job models.Job
	if err := h.DB.Jobs.FindOne(ctx, bson.M{"_id": id}).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		} else {
			log.Printf("jobs: db error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if job.EmployerID != middleware.UserID(ctx) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to update this job")
		return
	}

	var update models.JobUpdate
	if err := utils.DecodeStrict(r, &update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if _, err := h.DB.Jobs.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": update.Fields(time.Now().UTC())}); err != nil {
		log.Printf("jobs: update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update job")
		return
	}

	var updated models.Job
	if err := h.DB.Jobs.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		log.Printf("jobs: reload error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DeleteJob removes a listing outright. Applications that reference it
// are left in place.
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("id")

	var job models.Job
	if err := h.DB.Jobs.FindOne(ctx, bson.M{"_id": id}).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Job not found")
		} else {
			log.Printf("jobs: db error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if job.EmployerID != middleware.UserID(ctx) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to delete this job")
		return
	}

	if _, err := h.DB.Jobs.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		log.Printf("jobs: delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete job")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Job deleted successfully"})
}
