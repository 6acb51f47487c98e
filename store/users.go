package store

import (
	"database/sql"
	"errors"

	"github.com/xrisent/flask-back/models"
)

// CreateUser inserts a new user. The email uniqueness check and the insert
// run in one transaction.
func (s *Store) CreateUser(name, email, passwordHash string, isLibrarian bool) (*models.User, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var count int
	if err := tx.Get(&count, "SELECT COUNT(*) FROM users WHERE email = ?", email); err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	res, err := tx.Exec(
		"INSERT INTO users (name, email, password_hash, is_librarian) VALUES (?, ?, ?, ?)",
		name, email, passwordHash, isLibrarian,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		IsLibrarian:  isLibrarian,
	}, nil
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Get(&user,
		"SELECT id, name, email, password_hash, is_librarian FROM users WHERE email = ?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByID(id int64) (*models.User, error) {
	var user models.User
	err := s.db.Get(&user,
		"SELECT id, name, email, password_hash, is_librarian FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
