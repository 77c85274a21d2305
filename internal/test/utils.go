package test

import (
	"context"
	"time"

	"github.com/mribeiro/userauth/internal/interfaces"
	"github.com/mribeiro/userauth/internal/model"
	"github.com/mribeiro/userauth/internal/repository"
)

// MockUserRepository is an in-memory implementation of the UserRepository
// interface for tests that should not need a database.
type MockUserRepository struct {
	users  map[string]*model.User
	nextID int64
}

// Verify that MockUserRepository implements UserRepository interface
var _ interfaces.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*model.User),
	}
}

// CreateUser mocks creating a new user
func (r *MockUserRepository) CreateUser(ctx context.Context, email, passwordHash string) (*model.User, error) {
	if _, exists := r.users[email]; exists {
		return nil, repository.ErrDuplicateEmail
	}

	r.nextID++
	user := &model.User{
		ID:           r.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		IsActive:     true,
	}
	r.users[email] = user
	return user, nil
}

// GetUserByEmail mocks retrieving a user by email
func (r *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, exists := r.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

// Deactivate flips a stored user's active flag, simulating an operator
// disabling the account directly in the database.
func (r *MockUserRepository) Deactivate(email string) {
	if user, exists := r.users[email]; exists {
		user.IsActive = false
	}
}

// Delete removes a stored user, simulating an account deleted after a token
// was issued for it.
func (r *MockUserRepository) Delete(email string) {
	delete(r.users, email)
}
