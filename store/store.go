package store

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrEmailExists      = errors.New("email already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBookNotFound     = errors.New("book not found")
	ErrAlreadyBorrowed  = errors.New("book is already borrowed")
	ErrDuplicateRequest = errors.New("pending request already exists")
	ErrRequestNotFound  = errors.New("borrow request not found")
	ErrAlreadyApproved  = errors.New("request already approved")
	ErrNotBorrower      = errors.New("user has not borrowed this book")
)

// Store wraps the database handle. It is passed explicitly into every
// handler instead of living as package state, so tests can run against a
// throwaway database.
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open connects to the database identified by driver ("sqlite3" or "mysql")
// and dsn.
func Open(driver, dsn string) (*Store, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, driver: driver}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// InitSchema creates all tables if they do not exist. Safe to run on every
// startup.
func (s *Store) InitSchema() error {
	for _, query := range schemaFor(s.driver) {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func schemaFor(driver string) []string {
	if driver == "mysql" {
		return schemaMySQL
	}
	return schemaSQLite
}

var schemaSQLite = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_librarian BOOLEAN NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		author TEXT NOT NULL,
		category_id INTEGER NOT NULL REFERENCES categories(id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		rating INTEGER NOT NULL,
		text TEXT NOT NULL DEFAULT '',
		user_id INTEGER NOT NULL REFERENCES users(id),
		book_id INTEGER NOT NULL REFERENCES books(id)
	)`,
	`CREATE TABLE IF NOT EXISTS borrow_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		book_id INTEGER NOT NULL REFERENCES books(id),
		is_approved BOOLEAN NOT NULL DEFAULT 0
	)`,
	// UNIQUE(book_id) makes "at most one current borrower" a schema
	// guarantee, not just a handler check.
	`CREATE TABLE IF NOT EXISTS borrowed_books (
		user_id INTEGER NOT NULL REFERENCES users(id),
		book_id INTEGER NOT NULL UNIQUE REFERENCES books(id)
	)`,
	// Append-only; duplicates across repeated borrow cycles are expected.
	`CREATE TABLE IF NOT EXISTS borrow_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		book_id INTEGER NOT NULL REFERENCES books(id)
	)`,
}

var schemaMySQL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(200) NOT NULL,
		is_librarian BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		author VARCHAR(100) NOT NULL,
		category_id INT NOT NULL,
		FOREIGN KEY (category_id) REFERENCES categories(id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id INT AUTO_INCREMENT PRIMARY KEY,
		rating INT NOT NULL,
		text TEXT NOT NULL,
		user_id INT NOT NULL,
		book_id INT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (book_id) REFERENCES books(id)
	)`,
	`CREATE TABLE IF NOT EXISTS borrow_requests (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		book_id INT NOT NULL,
		is_approved BOOLEAN NOT NULL DEFAULT FALSE,
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (book_id) REFERENCES books(id)
	)`,
	`CREATE TABLE IF NOT EXISTS borrowed_books (
		user_id INT NOT NULL,
		book_id INT NOT NULL,
		UNIQUE KEY uq_borrowed_book (book_id),
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (book_id) REFERENCES books(id)
	)`,
	`CREATE TABLE IF NOT EXISTS borrow_history (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		book_id INT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (book_id) REFERENCES books(id)
	)`,
}
