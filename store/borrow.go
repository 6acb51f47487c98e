package store

import (
	"database/sql"
	"errors"

	"github.com/xrisent/flask-back/models"
)

// RequestBorrow records a pending borrow request. The availability and
// duplicate-request checks run in the same transaction as the insert so two
// concurrent requests cannot both pass validation.
func (s *Store) RequestBorrow(userID, bookID int64) (int64, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := bookExists(tx, bookID); err != nil {
		return 0, err
	}

	var count int
	if err := tx.Get(&count, "SELECT COUNT(*) FROM borrowed_books WHERE book_id = ?", bookID); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, ErrAlreadyBorrowed
	}

	err = tx.Get(&count,
		"SELECT COUNT(*) FROM borrow_requests WHERE user_id = ? AND book_id = ? AND is_approved = ?",
		userID, bookID, false)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, ErrDuplicateRequest
	}

	res, err := tx.Exec("INSERT INTO borrow_requests (user_id, book_id, is_approved) VALUES (?, ?, ?)",
		userID, bookID, false)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// ListPendingRequests returns every unapproved request with book and
// requester names attached.
func (s *Store) ListPendingRequests() ([]models.PendingRequest, error) {
	requests := []models.PendingRequest{}
	err := s.db.Select(&requests, `
		SELECT r.id, r.book_id, b.name AS book_name, r.user_id, u.name AS user_name
		FROM borrow_requests r
		JOIN books b ON b.id = r.book_id
		JOIN users u ON u.id = r.user_id
		WHERE r.is_approved = ?
		ORDER BY r.id`, false)
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ApproveRequest marks a request approved and records its user as the
// book's current borrower. Flag flip and borrower insert are atomic; the
// unique index on borrowed_books.book_id rejects a second borrower even if
// two approvals race past the availability check.
func (s *Store) ApproveRequest(requestID int64) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var req models.BorrowRequest
	err = tx.Get(&req,
		"SELECT id, user_id, book_id, is_approved FROM borrow_requests WHERE id = ?", requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRequestNotFound
	}
	if err != nil {
		return err
	}
	if req.IsApproved {
		return ErrAlreadyApproved
	}

	var count int
	if err := tx.Get(&count, "SELECT COUNT(*) FROM borrowed_books WHERE book_id = ?", req.BookID); err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyBorrowed
	}

	if _, err := tx.Exec("UPDATE borrow_requests SET is_approved = ? WHERE id = ?", true, req.ID); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO borrowed_books (user_id, book_id) VALUES (?, ?)",
		req.UserID, req.BookID); err != nil {
		return err
	}
	return tx.Commit()
}

// ReturnBook removes the user from the book's current borrowers and
// appends a history row. History keeps one row per completed borrow cycle,
// duplicates included.
func (s *Store) ReturnBook(userID, bookID int64) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := bookExists(tx, bookID); err != nil {
		return err
	}

	res, err := tx.Exec("DELETE FROM borrowed_books WHERE user_id = ? AND book_id = ?", userID, bookID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotBorrower
	}

	if _, err := tx.Exec("INSERT INTO borrow_history (user_id, book_id) VALUES (?, ?)",
		userID, bookID); err != nil {
		return err
	}
	return tx.Commit()
}

// UserHistory returns the user's currently borrowed books and full borrow
// history.
func (s *Store) UserHistory(userID int64) (*models.UserHistory, error) {
	borrowed := []models.BookRef{}
	err := s.db.Select(&borrowed, `
		SELECT b.id, b.name, b.author
		FROM borrowed_books bb JOIN books b ON b.id = bb.book_id
		WHERE bb.user_id = ?
		ORDER BY b.id`, userID)
	if err != nil {
		return nil, err
	}

	history := []models.BookRef{}
	err = s.db.Select(&history, `
		SELECT b.id, b.name, b.author
		FROM borrow_history h JOIN books b ON b.id = h.book_id
		WHERE h.user_id = ?
		ORDER BY h.id`, userID)
	if err != nil {
		return nil, err
	}

	return &models.UserHistory{Borrowed: borrowed, History: history}, nil
}
