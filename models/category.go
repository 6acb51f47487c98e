package models

type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// CategorySummary is a category with its books nested, as returned by
// GET /categories.
type CategorySummary struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Books []BookSummary `json:"books"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}
