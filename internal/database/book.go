package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Book represents a shelf entry owned by a single user.
type Book struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Author      string
	Description string
	Thumbnail   string
	InfoLink    string
	UserID      uint `gorm:"not null;index"`
}

func (c *Client) CreateBook(ctx context.Context, book *Book) error {
	if err := c.db.WithContext(ctx).Create(book).Error; err != nil {
		log.Error("failed to create book", "error", err)
		return err
	}
	return nil
}

func (c *Client) GetBooksByUser(ctx context.Context, userID uint) ([]Book, error) {
	var books []Book
	if err := c.db.WithContext(ctx).Where("user_id = ?", userID).Find(&books).Error; err != nil {
		log.Error("failed to get books by user", "error", err)
		return nil, err
	}
	return books, nil
}

// GetBookByTitleAndOwner returns the first book with exactly the given title
// owned by the given user. The match is case-sensitive and untrimmed.
func (c *Client) GetBookByTitleAndOwner(ctx context.Context, title string, userID uint) (*Book, error) {
	var book Book
	if err := c.db.WithContext(ctx).Where("title = ? AND user_id = ?", title, userID).First(&book).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get book by title", "error", err)
		}
		return nil, err
	}
	return &book, nil
}

func (c *Client) GetBookByIDAndOwner(ctx context.Context, id, userID uint) (*Book, error) {
	var book Book
	if err := c.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&book).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get book by ID", "error", err)
		}
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes the book with the given ID only if it is owned by the
// given user. It returns the deleted book, or gorm.ErrRecordNotFound when the
// book does not exist or belongs to someone else.
func (c *Client) DeleteBook(ctx context.Context, id, userID uint) (*Book, error) {
	book, err := c.GetBookByIDAndOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := c.db.WithContext(ctx).Delete(book).Error; err != nil {
		log.Error("failed to delete book", "error", err)
		return nil, err
	}
	return book, nil
}
