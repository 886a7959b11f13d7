package users

import (
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

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

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, err := h.DB.UserByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
		} else {
			log.Printf("users: db error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// UpdateUser lets a user edit their own profile, nobody else's.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("id")

	if middleware.UserID(ctx) != id {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to update this profile")
		return
	}

	var update models.UserUpdate
	if err := utils.DecodeStrict(r, &update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	res, err := h.DB.Users.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": update.Fields(time.Now().UTC())})
	if err != nil {
		log.Printf("users: update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.DB.UserByID(ctx, id)
	if err != nil {
		log.Printf("users: reload error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}
