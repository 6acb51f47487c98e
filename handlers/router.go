package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xrisent/flask-back/middleware"
	"github.com/xrisent/flask-back/store"
)

// NewRouter wires every endpoint to its handler. Read-only catalog routes
// are public; everything else sits behind the auth middleware.
func NewRouter(st *store.Store) *mux.Router {
	authHandler := NewAuthHandler(st)
	categoryHandler := NewCategoryHandler(st)
	bookHandler := NewBookHandler(st)
	borrowHandler := NewBorrowHandler(st)

	r := mux.NewRouter()
	r.Use(middleware.Logging)

	// Public
	r.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/categories", categoryHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/books", bookHandler.List).Methods(http.MethodGet)

	// Authenticated
	protect := func(h http.HandlerFunc) http.Handler {
		return middleware.Auth(h)
	}
	r.Handle("/categories", protect(categoryHandler.Create)).Methods(http.MethodPost)
	r.Handle("/books", protect(bookHandler.Create)).Methods(http.MethodPost)
	r.Handle("/books/{id}/request-borrow", protect(borrowHandler.Request)).Methods(http.MethodPost)
	r.Handle("/books/{id}/return", protect(borrowHandler.Return)).Methods(http.MethodPost)
	r.Handle("/books/{id}/reviews", protect(bookHandler.CreateReview)).Methods(http.MethodPost)
	r.Handle("/borrow-requests", protect(borrowHandler.ListPending)).Methods(http.MethodGet)
	r.Handle("/borrow-requests/{id}/approve", protect(borrowHandler.Approve)).Methods(http.MethodPost)
	r.Handle("/user/history", protect(borrowHandler.History)).Methods(http.MethodGet)

	return r
}
