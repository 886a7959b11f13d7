package proposals

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

func findAndRespondProposals(ctx context.Context, w http.ResponseWriter, cursor *mongo.Cursor) {
	defer cursor.Close(ctx)
	var results []models.Proposal
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("proposals: cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.Proposal{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

// Submit files a proposal for a project. Freelancers only, one per
// (project, freelancer) pair.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	actor, err := h.DB.UserByID(ctx, middleware.UserID(ctx))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}
	if !models.CanPropose(actor.UserType) {
		utils.RespondWithError(w, http.StatusForbidden, "Only freelancers can submit proposals")
		return
	}

	var input models.ProposalCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.ProjectID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "project_id is required")
		return
	}

	var project models.Project
	if err := h.DB.Projects.FindOne(ctx, bson.M{"_id": input.ProjectID}).Decode(&project); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		} else {
			log.Printf("proposals: db error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	err = h.DB.Proposals.FindOne(ctx, bson.M{"project_id": input.ProjectID, "freelancer_id": actor.ID}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Already submitted proposal for this project")
		return
	} else if err != mongo.ErrNoDocuments {
		log.Printf("proposals: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	proposal := input.NewProposal(actor.ID, time.Now().UTC())
	if _, err := h.DB.Proposals.InsertOne(ctx, proposal); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Already submitted proposal for this project")
			return
		}
		log.Printf("proposals: insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save proposal")
		return
	}

	if _, err := h.DB.Projects.UpdateOne(ctx, bson.M{"_id": input.ProjectID},
		bson.M{"$inc": bson.M{"proposals_count": 1}}); err != nil {
		log.Printf("proposals: count update error: %v", err)
	}

	h.Events.Emit(mq.Event{
		UserID:  project.ClientID,
		Title:   "New proposal",
		Message: fmt.Sprintf("%s sent a proposal for %q", actor.FullName, project.Title),
		Type:    "proposal",
		Link:    "/projects/" + project.ID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, proposal)
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	cursor, err := h.DB.Proposals.Find(ctx, bson.M{"freelancer_id": middleware.UserID(ctx)},
		options.Find().SetLimit(100))
	if err != nil {
		log.Printf("proposals: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	findAndRespondProposals(ctx, w, cursor)
}

func (h *Handler) ForProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	projectID := ps.ByName("id")

	var project models.Project
	if err := h.DB.Projects.FindOne(ctx, bson.M{"_id": projectID}).Decode(&project); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		} else {
			log.Printf("proposals: db error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if project.ClientID != middleware.UserID(ctx) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to view proposals")
		return
	}

	cursor, err := h.DB.Proposals.Find(ctx, bson.M{"project_id": projectID}, options.Find().SetLimit(100))
	if err != nil {
		log.Printf("proposals: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	findAndRespondProposals(ctx, w, cursor)
}
