package models

type Review struct {
	ID     int64  `json:"id" db:"id"`
	Rating int    `json:"rating" db:"rating"`
	Text   string `json:"text" db:"text"`
	UserID int64  `json:"-" db:"user_id"`
	BookID int64  `json:"-" db:"book_id"`
}

type ReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}
