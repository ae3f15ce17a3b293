package database

import "context"

// DB defines the interface for database operations.
type DB interface {
	// Users
	CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (*User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetAdminByUsername(ctx context.Context, username string) (*User, error)
	GetAllUsers(ctx context.Context) ([]User, error)

	// Books
	CreateBook(ctx context.Context, book *Book) error
	GetBooksByUser(ctx context.Context, userID uint) ([]Book, error)
	GetBookByTitleAndOwner(ctx context.Context, title string, userID uint) (*Book, error)
	GetBookByIDAndOwner(ctx context.Context, id, userID uint) (*Book, error)
	DeleteBook(ctx context.Context, id, userID uint) (*Book, error)

	// Utility
	Close() error
}
