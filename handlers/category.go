package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xrisent/flask-back/models"
	"github.com/xrisent/flask-back/store"
)

type CategoryHandler struct {
	Store *store.Store
}

func NewCategoryHandler(st *store.Store) *CategoryHandler {
	return &CategoryHandler{Store: st}
}

// List returns every category with its books nested. Public.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.ListCategories()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// Create adds a new category. Librarian only.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if requireLibrarian(w, r, h.Store, "create categories") == nil {
		return
	}

	var payload models.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "Category name is required")
		return
	}

	id, err := h.Store.CreateCategory(payload.Name)
	if errors.Is(err, store.ErrCategoryExists) {
		respondError(w, http.StatusBadRequest, "Category already exists")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error creating category")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Category created",
		"id":      id,
	})
}
