package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestUserCreateAndLookup(t *testing.T) {
	db := newTestClient(t)
	ctx := context.Background()

	user, err := db.CreateUser(ctx, "alice", "hash-1", false)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.False(t, user.IsAdmin)

	byID, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := db.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = db.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserUniqueUsername(t *testing.T) {
	db := newTestClient(t)
	ctx := context.Background()

	_, err := db.CreateUser(ctx, "alice", "hash-1", false)
	require.NoError(t, err)

	_, err = db.CreateUser(ctx, "alice", "hash-2", false)
	assert.Error(t, err)

	users, err := db.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestGetAdminByUsername(t *testing.T) {
	db := newTestClient(t)
	ctx := context.Background()

	_, err := db.CreateUser(ctx, "alice", "hash-1", false)
	require.NoError(t, err)
	admin, err := db.CreateUser(ctx, "root", "hash-2", true)
	require.NoError(t, err)

	got, err := db.GetAdminByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
	assert.True(t, got.IsAdmin)

	// A regular user is invisible to the admin lookup
	_, err = db.GetAdminByUsername(ctx, "alice")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBookLifecycle(t *testing.T) {
	db := newTestClient(t)
	ctx := context.Background()

	owner, err := db.CreateUser(ctx, "alice", "hash-1", false)
	require.NoError(t, err)

	book := &Book{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Description: "A desert planet.",
		UserID:      owner.ID,
	}
	require.NoError(t, db.CreateBook(ctx, book))
	assert.NotZero(t, book.ID)

	books, err := db.GetBooksByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)

	byTitle, err := db.GetBookByTitleAndOwner(ctx, "Dune", owner.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, byTitle.ID)

	// Title match is exact and case-sensitive
	_, err = db.GetBookByTitleAndOwner(ctx, "dune", owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	deleted, err := db.DeleteBook(ctx, book.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", deleted.Title)

	books, err = db.GetBooksByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestDeleteBookNotOwned(t *testing.T) {
	db := newTestClient(t)
	ctx := context.Background()

	owner, err := db.CreateUser(ctx, "alice", "hash-1", false)
	require.NoError(t, err)
	other, err := db.CreateUser(ctx, "bob", "hash-2", false)
	require.NoError(t, err)

	book := &Book{Title: "Dune", UserID: owner.ID}
	require.NoError(t, db.CreateBook(ctx, book))

	// Deleting as another identity leaves the row untouched
	_, err = db.DeleteBook(ctx, book.ID, other.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	books, err := db.GetBooksByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestBooksScopedToOwner(t *testing.T) {
	db := newTestClient(t)
	ctx := context.Background()

	alice, err := db.CreateUser(ctx, "alice", "hash-1", false)
	require.NoError(t, err)
	bob, err := db.CreateUser(ctx, "bob", "hash-2", false)
	require.NoError(t, err)

	require.NoError(t, db.CreateBook(ctx, &Book{Title: "Dune", UserID: alice.ID}))
	require.NoError(t, db.CreateBook(ctx, &Book{Title: "Dune", UserID: bob.ID}))

	// Same title on two shelves is allowed; the lookup is owner-scoped
	aliceBook, err := db.GetBookByTitleAndOwner(ctx, "Dune", alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, aliceBook.UserID)

	bobBooks, err := db.GetBooksByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, bobBooks, 1)
}
