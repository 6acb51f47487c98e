package store

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/xrisent/flask-back/models"
)

// CreateCategory inserts a new category, failing if the name is taken.
func (s *Store) CreateCategory(name string) (int64, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var count int
	if err := tx.Get(&count, "SELECT COUNT(*) FROM categories WHERE name = ?", name); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, ErrCategoryExists
	}

	res, err := tx.Exec("INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// ListCategories returns every category with its books nested, each book
// annotated with its computed rating and availability.
func (s *Store) ListCategories() ([]models.CategorySummary, error) {
	var categories []models.Category
	if err := s.db.Select(&categories, "SELECT id, name FROM categories ORDER BY id"); err != nil {
		return nil, err
	}

	var books []models.Book
	if err := s.db.Select(&books, "SELECT id, name, author, category_id FROM books ORDER BY id"); err != nil {
		return nil, err
	}

	ratings, err := s.bookRatings()
	if err != nil {
		return nil, err
	}
	borrowed, err := s.borrowedBookIDs()
	if err != nil {
		return nil, err
	}

	byCategory := make(map[int64][]models.BookSummary)
	for _, b := range books {
		byCategory[b.CategoryID] = append(byCategory[b.CategoryID], models.BookSummary{
			ID:        b.ID,
			Name:      b.Name,
			Author:    b.Author,
			Rating:    ratings[b.ID],
			Available: !borrowed[b.ID],
		})
	}

	result := make([]models.CategorySummary, 0, len(categories))
	for _, c := range categories {
		cs := models.CategorySummary{ID: c.ID, Name: c.Name, Books: byCategory[c.ID]}
		if cs.Books == nil {
			cs.Books = []models.BookSummary{}
		}
		result = append(result, cs)
	}
	return result, nil
}

// CreateBook inserts a book under the named category, creating the category
// first if it does not exist yet.
func (s *Store) CreateBook(name, author, categoryName string) (int64, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var categoryID int64
	err = tx.Get(&categoryID, "SELECT id FROM categories WHERE name = ?", categoryName)
	if errors.Is(err, sql.ErrNoRows) {
		res, insErr := tx.Exec("INSERT INTO categories (name) VALUES (?)", categoryName)
		if insErr != nil {
			return 0, insErr
		}
		categoryID, err = res.LastInsertId()
	}
	if err != nil {
		return 0, err
	}

	res, err := tx.Exec("INSERT INTO books (name, author, category_id) VALUES (?, ?, ?)",
		name, author, categoryID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// ListBooks returns every book flattened with its category name, computed
// rating and availability, and its full review list.
func (s *Store) ListBooks() ([]models.BookDetail, error) {
	books := []models.BookDetail{}
	err := s.db.Select(&books, `
		SELECT b.id, b.name, b.author, c.name AS category
		FROM books b JOIN categories c ON c.id = b.category_id
		ORDER BY b.id`)
	if err != nil {
		return nil, err
	}

	var reviews []models.Review
	err = s.db.Select(&reviews, "SELECT id, rating, text, user_id, book_id FROM reviews ORDER BY id")
	if err != nil {
		return nil, err
	}
	reviewsByBook := make(map[int64][]models.Review)
	for _, r := range reviews {
		reviewsByBook[r.BookID] = append(reviewsByBook[r.BookID], r)
	}

	ratings, err := s.bookRatings()
	if err != nil {
		return nil, err
	}
	borrowed, err := s.borrowedBookIDs()
	if err != nil {
		return nil, err
	}

	for i := range books {
		b := &books[i]
		b.Rating = ratings[b.ID]
		b.Available = !borrowed[b.ID]
		b.Reviews = reviewsByBook[b.ID]
		if b.Reviews == nil {
			b.Reviews = []models.Review{}
		}
	}
	return books, nil
}

func (s *Store) GetBookByID(id int64) (*models.Book, error) {
	var book models.Book
	err := s.db.Get(&book, "SELECT id, name, author, category_id FROM books WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateReview attaches a review to a book. Users may review the same book
// any number of times.
func (s *Store) CreateReview(userID, bookID int64, rating int, text string) (int64, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := bookExists(tx, bookID); err != nil {
		return 0, err
	}

	res, err := tx.Exec("INSERT INTO reviews (rating, text, user_id, book_id) VALUES (?, ?, ?, ?)",
		rating, text, userID, bookID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// bookRatings returns the mean review rating per book. Books without
// reviews are absent from the map, so lookups yield the zero rating.
func (s *Store) bookRatings() (map[int64]float64, error) {
	rows, err := s.db.Queryx("SELECT book_id, AVG(rating) FROM reviews GROUP BY book_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make(map[int64]float64)
	for rows.Next() {
		var bookID int64
		var avg float64
		if err := rows.Scan(&bookID, &avg); err != nil {
			return nil, err
		}
		ratings[bookID] = avg
	}
	return ratings, rows.Err()
}

func (s *Store) borrowedBookIDs() (map[int64]bool, error) {
	var ids []int64
	if err := s.db.Select(&ids, "SELECT book_id FROM borrowed_books"); err != nil {
		return nil, err
	}
	borrowed := make(map[int64]bool, len(ids))
	for _, id := range ids {
		borrowed[id] = true
	}
	return borrowed, nil
}

func bookExists(tx *sqlx.Tx, bookID int64) error {
	var count int
	if err := tx.Get(&count, "SELECT COUNT(*) FROM books WHERE id = ?", bookID); err != nil {
		return err
	}
	if count == 0 {
		return ErrBookNotFound
	}
	return nil
}
