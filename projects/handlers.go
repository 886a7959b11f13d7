package projects

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

func listFilter(q url.Values) bson.M {
	filter := bson.M{"status": models.StatusActive}
	if v := q.Get("category"); v != "" {
		filter["category"] = v
	}
	if v := q.Get("budget_type"); v != "" {
		filter["budget_type"] = v
	}
	return filter
}

func findAndRespondProjects(ctx context.Context, w http.ResponseWriter, cursor *mongo.Cursor) {
	defer cursor.Close(ctx)
	var results []models.Project
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("projects: cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.Project{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	limit := utils.ParseLimit(r, 50, 100)

	cursor, err := h.DB.Projects.Find(ctx, listFilter(r.URL.Query()), options.Find().SetLimit(limit))
	if err != nil {
		log.Printf("projects: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	findAndRespondProjects(ctx, w, cursor)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("id")

	var project models.Project
	if err := h.DB.Projects.FindOne(ctx, bson.M{"_id": id}).Decode(&project); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		} else {
			log.Printf("projects: db error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if _, err := h.DB.Projects.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}}); err != nil {
		log.Printf("projects: view count error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	project.Views++

	utils.RespondWithJSON(w, http.StatusOK, project)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	actor, err := h.DB.UserByID(ctx, middleware.UserID(ctx))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}
	if !models.CanPostListings(actor.UserType) {
		utils.RespondWithError(w, http.StatusForbidden, "Only employers and clients can post projects")
		return
	}

	var input models.ProjectCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Title == "" || input.Description == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	project := input.NewProject(actor.ID, time.Now().UTC())
	if _, err := h.DB.Projects.InsertOne(ctx, project); err != nil {
		log.Printf("projects: insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, project)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("id")

	var project models.Project
	if err := h.DB.Projects.FindOne(ctx, bson.M{"_id": id}).Decode(&project); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		} else {
			log.Printf("projects: db error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if project.ClientID != middleware.UserID(ctx) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to update this project")
		return
	}

	var update models.ProjectUpdate
	if err := utils.DecodeStrict(r, &update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if _, err := h.DB.Projects.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": update.Fields(time.Now().UTC())}); err != nil {
		log.Printf("projects: update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update project")
		return
	}

	var updated models.Project
	if err := h.DB.Projects.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		log.Printf("projects: reload error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("id")

	var project models.Project
	if err := h.DB.Projects.FindOne(ctx, bson.M{"_id": id}).Decode(&project); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		} else {
			log.Printf("projects: db error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if project.ClientID != middleware.UserID(ctx) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to delete this project")
		return
	}

	if _, err := h.DB.Projects.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		log.Printf("projects: delete error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Project deleted successfully"})
}
