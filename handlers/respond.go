package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xrisent/flask-back/middleware"
	"github.com/xrisent/flask-back/models"
	"github.com/xrisent/flask-back/store"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// currentUser resolves the authenticated caller to a user row. It writes
// the error response itself and returns nil when the caller cannot be
// resolved.
func currentUser(w http.ResponseWriter, r *http.Request, st *store.Store) *models.User {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return nil
	}

	user, err := st.GetUserByID(userID)
	if errors.Is(err, store.ErrUserNotFound) {
		respondError(w, http.StatusNotFound, "User not found")
		return nil
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching user")
		return nil
	}
	return user
}

// requireLibrarian is currentUser plus the librarian check: 404 when the
// user row is gone, 403 when the caller is not a librarian.
func requireLibrarian(w http.ResponseWriter, r *http.Request, st *store.Store, action string) *models.User {
	user := currentUser(w, r, st)
	if user == nil {
		return nil
	}
	if !user.IsLibrarian {
		respondError(w, http.StatusForbidden, "Only librarians can "+action)
		return nil
	}
	return user
}
