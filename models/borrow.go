package models

type BorrowRequest struct {
	ID         int64 `json:"id" db:"id"`
	UserID     int64 `json:"user_id" db:"user_id"`
	BookID     int64 `json:"book_id" db:"book_id"`
	IsApproved bool  `json:"is_approved" db:"is_approved"`
}

// PendingRequest is a pending borrow request enriched with book and
// requester names, as listed for librarians on GET /borrow-requests.
type PendingRequest struct {
	ID       int64  `json:"id" db:"id"`
	BookID   int64  `json:"book_id" db:"book_id"`
	BookName string `json:"book_name" db:"book_name"`
	UserID   int64  `json:"user_id" db:"user_id"`
	UserName string `json:"user_name" db:"user_name"`
}

// UserHistory holds the caller's current loans and past loans as returned
// by GET /user/history.
type UserHistory struct {
	Borrowed []BookRef `json:"borrowed"`
	History  []BookRef `json:"history"`
}
