package interfaces

import (
	"context"

	"github.com/mribeiro/userauth/internal/model"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// CreateUser inserts a new record with server-assigned created_at and
	// is_active=true. A duplicate email fails atomically with
	// repository.ErrDuplicateEmail and writes nothing.
	CreateUser(ctx context.Context, email, passwordHash string) (*model.User, error)
	// GetUserByEmail returns repository.ErrUserNotFound when no record
	// exists, distinguishing absence from storage faults.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}
