package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// User represents a user in the database.
// The password is stored only as a bcrypt hash, never in plaintext.
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	IsAdmin      bool   `gorm:"default:false"`
	Books        []Book `gorm:"constraint:OnDelete:CASCADE;"`
}

func (c *Client) CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (*User, error) {
	user := User{
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
	}
	if err := c.db.WithContext(ctx).Create(&user).Error; err != nil {
		log.Error("failed to create user", "error", err)
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get user by ID", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get user by username", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

// GetAdminByUsername looks up a user by username, restricted to admin accounts.
func (c *Client) GetAdminByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("username = ? AND is_admin = ?", username, true).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get admin by username", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetAllUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.db.WithContext(ctx).Find(&users).Error; err != nil {
		log.Error("failed to get all users", "error", err)
		return nil, err
	}
	return users, nil
}
