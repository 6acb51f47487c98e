package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrisent/flask-back/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.InitSchema())
	t.Cleanup(func() { s.Close() })
	return s
}

func addUser(t *testing.T, s *Store, email string, librarian bool) *models.User {
	t.Helper()
	user, err := s.CreateUser("User "+email, email, "hash", librarian)
	require.NoError(t, err)
	return user
}

func addBook(t *testing.T, s *Store, name, category string) int64 {
	t.Helper()
	id, err := s.CreateBook(name, "Author", category)
	require.NoError(t, err)
	return id
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateUser("Alice", "alice@example.com", "hash", false)
	require.NoError(t, err)

	_, err = s.CreateUser("Other Alice", "alice@example.com", "otherhash", true)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestGetUserByID(t *testing.T) {
	s := newTestStore(t)
	created := addUser(t, s, "bob@example.com", true)

	user, err := s.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.True(t, user.IsLibrarian)

	_, err = s.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateCategoryDuplicate(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateCategory("Fiction")
	require.NoError(t, err)

	_, err = s.CreateCategory("Fiction")
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestCreateBookAutoCreatesCategory(t *testing.T) {
	s := newTestStore(t)

	addBook(t, s, "Dune", "Sci-Fi")
	addBook(t, s, "Foundation", "Sci-Fi")

	categories, err := s.ListCategories()
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Sci-Fi", categories[0].Name)
	assert.Len(t, categories[0].Books, 2)
}

func TestBookRatings(t *testing.T) {
	s := newTestStore(t)
	user := addUser(t, s, "reviewer@example.com", false)
	rated := addBook(t, s, "Dune", "Sci-Fi")
	unrated := addBook(t, s, "Foundation", "Sci-Fi")

	_, err := s.CreateReview(user.ID, rated, 4, "good")
	require.NoError(t, err)
	_, err = s.CreateReview(user.ID, rated, 5, "better on reread")
	require.NoError(t, err)

	books, err := s.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 2)

	byID := make(map[int64]models.BookDetail)
	for _, b := range books {
		byID[b.ID] = b
	}
	assert.Equal(t, 4.5, byID[rated].Rating)
	assert.Len(t, byID[rated].Reviews, 2)
	assert.Equal(t, 0.0, byID[unrated].Rating)
	assert.Empty(t, byID[unrated].Reviews)
	assert.NotNil(t, byID[unrated].Reviews)
}

func TestReviewUnknownBook(t *testing.T) {
	s := newTestStore(t)
	user := addUser(t, s, "reviewer@example.com", false)

	_, err := s.CreateReview(user.ID, 9999, 3, "")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestBorrowWorkflow(t *testing.T) {
	s := newTestStore(t)
	patron := addUser(t, s, "patron@example.com", false)
	bookID := addBook(t, s, "Dune", "Sci-Fi")

	reqID, err := s.RequestBorrow(patron.ID, bookID)
	require.NoError(t, err)

	// Second request while the first is still pending.
	_, err = s.RequestBorrow(patron.ID, bookID)
	assert.ErrorIs(t, err, ErrDuplicateRequest)

	pending, err := s.ListPendingRequests()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Dune", pending[0].BookName)
	assert.Equal(t, patron.Name, pending[0].UserName)

	require.NoError(t, s.ApproveRequest(reqID))

	books, err := s.ListBooks()
	require.NoError(t, err)
	assert.False(t, books[0].Available)

	// Approved requests leave the pending list.
	pending, err = s.ListPendingRequests()
	require.NoError(t, err)
	assert.Empty(t, pending)

	// Borrowed books reject new requests and repeat approvals.
	_, err = s.RequestBorrow(patron.ID, bookID)
	assert.ErrorIs(t, err, ErrAlreadyBorrowed)
	assert.ErrorIs(t, s.ApproveRequest(reqID), ErrAlreadyApproved)

	require.NoError(t, s.ReturnBook(patron.ID, bookID))

	books, err = s.ListBooks()
	require.NoError(t, err)
	assert.True(t, books[0].Available)

	history, err := s.UserHistory(patron.ID)
	require.NoError(t, err)
	assert.Empty(t, history.Borrowed)
	require.Len(t, history.History, 1)
	assert.Equal(t, "Dune", history.History[0].Name)

	// Returning again fails: the caller no longer borrows the book.
	assert.ErrorIs(t, s.ReturnBook(patron.ID, bookID), ErrNotBorrower)
}

func TestRepeatedBorrowCyclesAccumulateHistory(t *testing.T) {
	s := newTestStore(t)
	patron := addUser(t, s, "patron@example.com", false)
	bookID := addBook(t, s, "Dune", "Sci-Fi")

	for i := 0; i < 2; i++ {
		reqID, err := s.RequestBorrow(patron.ID, bookID)
		require.NoError(t, err)
		require.NoError(t, s.ApproveRequest(reqID))
		require.NoError(t, s.ReturnBook(patron.ID, bookID))
	}

	history, err := s.UserHistory(patron.ID)
	require.NoError(t, err)
	assert.Len(t, history.History, 2)
}

func TestApproveSecondRequestForBorrowedBook(t *testing.T) {
	s := newTestStore(t)
	first := addUser(t, s, "first@example.com", false)
	second := addUser(t, s, "second@example.com", false)
	bookID := addBook(t, s, "Dune", "Sci-Fi")

	firstReq, err := s.RequestBorrow(first.ID, bookID)
	require.NoError(t, err)
	secondReq, err := s.RequestBorrow(second.ID, bookID)
	require.NoError(t, err)

	require.NoError(t, s.ApproveRequest(firstReq))
	assert.ErrorIs(t, s.ApproveRequest(secondReq), ErrAlreadyBorrowed)

	// The losing request stays pending and untouched.
	pending, err := s.ListPendingRequests()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, secondReq, pending[0].ID)
}

func TestBorrowUnknownBook(t *testing.T) {
	s := newTestStore(t)
	patron := addUser(t, s, "patron@example.com", false)

	_, err := s.RequestBorrow(patron.ID, 9999)
	assert.ErrorIs(t, err, ErrBookNotFound)

	assert.ErrorIs(t, s.ReturnBook(patron.ID, 9999), ErrBookNotFound)
	assert.ErrorIs(t, s.ApproveRequest(9999), ErrRequestNotFound)
}
