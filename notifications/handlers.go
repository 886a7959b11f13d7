package notifications

import (
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
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

// List returns the caller's feed, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(50)

	cursor, err := h.DB.Notifications.Find(ctx, bson.M{"user_id": middleware.UserID(ctx)}, opts)
	if err != nil {
		log.Printf("notifications: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var results []models.Notification
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("notifications: cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}
	if len(results) == 0 {
		results = []models.Notification{}
	}
	utils.RespondWithJSON(w, http.StatusOK, results)
}

// MarkRead flips the read flag on one of the caller's notifications.
// The filter carries both id and owner, so an unknown id or someone
// else's notification matches nothing and the call still reports
// success. Quiet no-op, kept on purpose.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	_, err := h.DB.Notifications.UpdateOne(ctx,
		bson.M{"_id": ps.ByName("id"), "user_id": middleware.UserID(ctx)},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		log.Printf("notifications: update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update notification")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Notification marked as read"})
}
