package handlers

import (
	"errors"
	"net/http"

	"github.com/xrisent/flask-back/store"
)

type BorrowHandler struct {
	Store *store.Store
}

func NewBorrowHandler(st *store.Store) *BorrowHandler {
	return &BorrowHandler{Store: st}
}

// Request creates a pending borrow request for a book. Fails when the book
// is already borrowed by anyone, or when the caller already has a pending
// request for it.
func (h *BorrowHandler) Request(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r, h.Store)
	if user == nil {
		return
	}

	bookID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid book id")
		return
	}

	id, err := h.Store.RequestBorrow(user.ID, bookID)
	switch {
	case errors.Is(err, store.ErrBookNotFound):
		respondError(w, http.StatusNotFound, "Book not found")
		return
	case errors.Is(err, store.ErrAlreadyBorrowed):
		respondError(w, http.StatusBadRequest, "Book is already borrowed")
		return
	case errors.Is(err, store.ErrDuplicateRequest):
		respondError(w, http.StatusBadRequest, "You already have a pending request for this book")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Error creating borrow request")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Borrow request created",
		"id":      id,
	})
}

// ListPending returns all unapproved requests. Librarian only.
func (h *BorrowHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	if requireLibrarian(w, r, h.Store, "view borrow requests") == nil {
		return
	}

	requests, err := h.Store.ListPendingRequests()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching borrow requests")
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

// Approve marks a request approved and hands the book to its requester.
// Librarian only.
func (h *BorrowHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if requireLibrarian(w, r, h.Store, "approve requests") == nil {
		return
	}

	requestID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	err = h.Store.ApproveRequest(requestID)
	switch {
	case errors.Is(err, store.ErrRequestNotFound):
		respondError(w, http.StatusNotFound, "Request not found")
		return
	case errors.Is(err, store.ErrAlreadyApproved):
		respondError(w, http.StatusBadRequest, "Request already approved")
		return
	case errors.Is(err, store.ErrAlreadyBorrowed):
		respondError(w, http.StatusBadRequest, "Book is already borrowed")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Error approving request")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Borrow request approved"})
}

// Return gives a borrowed book back: the caller must be its current
// borrower. The book moves into the caller's history.
func (h *BorrowHandler) Return(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r, h.Store)
	if user == nil {
		return
	}

	bookID, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid book id")
		return
	}

	err = h.Store.ReturnBook(user.ID, bookID)
	switch {
	case errors.Is(err, store.ErrBookNotFound):
		respondError(w, http.StatusNotFound, "Book not found")
		return
	case errors.Is(err, store.ErrNotBorrower):
		respondError(w, http.StatusBadRequest, "You have not borrowed this book")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Error returning book")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Book returned successfully"})
}

// History returns the caller's current loans and past loans.
func (h *BorrowHandler) History(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r, h.Store)
	if user == nil {
		return
	}

	history, err := h.Store.UserHistory(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching history")
		return
	}
	respondJSON(w, http.StatusOK, history)
}
