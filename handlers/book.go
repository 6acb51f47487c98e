package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/xrisent/flask-back/models"
	"github.com/xrisent/flask-back/store"
)

type BookHandler struct {
	Store *store.Store
}

func NewBookHandler(st *store.Store) *BookHandler {
	return &BookHandler{Store: st}
}

// List returns every book with category name, rating, availability and
// reviews. Public.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.Store.ListBooks()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching books")
		return
	}
	respondJSON(w, http.StatusOK, books)
}

// Create adds a new book. A category that does not exist yet is created on
// the fly. Librarian only.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	if requireLibrarian(w, r, h.Store, "create books") == nil {
		return
	}

	var payload models.BookRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if payload.Name == "" || payload.Author == "" || payload.Category == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	id, err := h.Store.CreateBook(payload.Name, payload.Author, payload.Category)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error creating book")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Book created",
		"id":      id,
	})
}

// CreateReview attaches a review to a book. Any authenticated user; a user
// may review the same book more than once.
func (h *BookHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r, h.Store)
	if user == nil {
		return
	}

	bookID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid book id")
		return
	}

	var payload models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if payload.Rating < 1 || payload.Rating > 5 {
		respondError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	id, err := h.Store.CreateReview(user.ID, bookID, payload.Rating, payload.Text)
	if errors.Is(err, store.ErrBookNotFound) {
		respondError(w, http.StatusNotFound, "Book not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error creating review")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Review created",
		"id":      id,
	})
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
