package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/bookshelf/internal/database"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateUsername is returned when registering a username that already exists.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrInvalidCredentials is returned when the username is unknown or the password doesn't verify.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Provider implements password-based authentication against the user table.
type Provider struct {
	db database.DB
}

func NewProvider(db database.DB) *Provider {
	return &Provider{db: db}
}

// Register creates a new non-admin user. The password is stored only as a
// bcrypt hash. The duplicate check is check-then-act; the unique index on
// username backstops the race at the storage layer.
func (p *Provider) Register(ctx context.Context, username, password string) (*database.User, error) {
	return p.register(ctx, username, password, false)
}

// RegisterAdmin creates a new admin user. Used by the create-admin command,
// never exposed on the HTTP surface.
func (p *Provider) RegisterAdmin(ctx context.Context, username, password string) (*database.User, error) {
	return p.register(ctx, username, password, true)
}

func (p *Provider) register(ctx context.Context, username, password string, isAdmin bool) (*database.User, error) {
	_, err := p.db.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := p.db.CreateUser(ctx, username, string(hash), isAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies the given credentials and returns the matching user.
// The stored hash is compared against the plaintext; plaintext is never
// compared directly.
func (p *Provider) Authenticate(ctx context.Context, username, password string) (*database.User, error) {
	user, err := p.db.GetUserByUsername(ctx, username)
	return p.verify(user, err, password)
}

// AuthenticateAdmin verifies the given credentials, restricted to users with
// the admin flag set.
func (p *Provider) AuthenticateAdmin(ctx context.Context, username, password string) (*database.User, error) {
	user, err := p.db.GetAdminByUsername(ctx, username)
	return p.verify(user, err, password)
}

func (p *Provider) verify(user *database.User, err error, password string) (*database.User, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		log.Debug("password verification failed", "username", user.Username)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
