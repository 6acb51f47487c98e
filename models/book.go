package models

type Book struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Author     string `json:"author" db:"author"`
	CategoryID int64  `json:"category_id" db:"category_id"`
}

// BookSummary is a book as it appears nested under its category in
// GET /categories: no category name, no review list.
type BookSummary struct {
	ID        int64   `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Author    string  `json:"author" db:"author"`
	Rating    float64 `json:"rating" db:"-"`
	Available bool    `json:"available" db:"-"`
}

// BookDetail is a book as it appears in GET /books: flattened with its
// category name and carrying the full review list.
type BookDetail struct {
	ID        int64    `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	Author    string   `json:"author" db:"author"`
	Category  string   `json:"category" db:"category"`
	Rating    float64  `json:"rating" db:"-"`
	Available bool     `json:"available" db:"-"`
	Reviews   []Review `json:"reviews" db:"-"`
}

// BookRef identifies a book in the caller's borrow/history listing.
type BookRef struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Author string `json:"author" db:"author"`
}

type BookRequest struct {
	Name     string `json:"name"`
	Author   string `json:"author"`
	Category string `json:"category"`
}
