package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/xrisent/flask-back/models"
	"github.com/xrisent/flask-back/store"
	"github.com/xrisent/flask-back/utils"
)

type AuthHandler struct {
	Store *store.Store
}

func NewAuthHandler(st *store.Store) *AuthHandler {
	return &AuthHandler{Store: st}
}

// Register creates a new user account. The password is stored only as a
// bcrypt hash.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user, err := h.Store.CreateUser(payload.Name, payload.Email, string(hashed), payload.IsLibrarian)
	if errors.Is(err, store.ErrEmailExists) {
		respondError(w, http.StatusBadRequest, "Email already exists")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"id":      user.ID,
	})
}

// Login verifies credentials and issues a one-hour access token. Unknown
// email and wrong password produce the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if payload.Email == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing email or password")
		return
	}

	user, err := h.Store.GetUserByEmail(payload.Email)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, utils.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not generate token")
		return
	}

	respondJSON(w, http.StatusOK, models.LoginResponse{
		AccessToken: token,
		User:        user.Public(),
	})
}
