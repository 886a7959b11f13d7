package auth

import (
	"encoding/json"
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
	DB     *db.DB
	Tokens *TokenService
}

func NewHandler(database *db.DB, tokens *TokenService) *Handler {
	return &Handler{DB: database, Tokens: tokens}
}

type registerInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	UserType string `json:"user_type"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var input registerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" || input.FullName == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if !models.ValidRole(input.UserType) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown user type")
		return
	}

	// Exact-match email lookup, no normalization.
	err := h.DB.Users.FindOne(ctx, bson.M{"email": input.Email}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Email already registered")
		return
	} else if err != mongo.ErrNoDocuments {
		log.Printf("register: db error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Printf("register: hash error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	now := time.Now().UTC()
	user := models.User{
		ID:                 models.NewID(),
		Email:              input.Email,
		Password:           hashed,
		FullName:           input.FullName,
		UserType:           input.UserType,
		Skills:             []string{},
		VerificationStatus: "unverified",
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := h.DB.Users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Email already registered")
			return
		}
		log.Printf("register: insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		log.Printf("register: token error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var input loginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	// Unknown email and wrong password fail identically.
	var user models.User
	if err := h.DB.Users.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !CheckPassword(input.Password, user.Password) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		log.Printf("login: token error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// Me echoes the account the presented token belongs to.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := h.DB.UserByID(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}
