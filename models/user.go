package models

type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"` // bcrypt hash, never serialized
	IsLibrarian  bool   `json:"is_librarian" db:"is_librarian"`
}

// Public returns the user summary embedded in the login response.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		IsLibrarian: u.IsLibrarian,
	}
}

type PublicUser struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	IsLibrarian bool   `json:"is_librarian"`
}

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsLibrarian bool   `json:"is_librarian"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	User        PublicUser `json:"user"`
}
