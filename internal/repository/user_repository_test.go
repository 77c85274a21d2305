package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/mribeiro/userauth/internal/database"
)

func init() {
	if err := godotenv.Load("../../.env.test"); err != nil {
		fmt.Printf("Warning: .env.test file not found: %v\n", err)
	}
}

func setupTestDB(t *testing.T) *database.DB {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL environment variable is not set")
	}

	db, err := database.New(dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	// Clean up before each test
	_, err = db.Pool.Exec(context.Background(), "TRUNCATE users")
	if err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}

	return db
}

func TestUserRepository_CreateUser(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewUserRepository(db)

	tests := []struct {
		name         string
		email        string
		passwordHash string
		wantErr      bool
		errIs        error
	}{
		{
			name:         "valid user creation",
			email:        "test@example.com",
			passwordHash: "hashedpassword",
			wantErr:      false,
		},
		{
			name:         "duplicate email",
			email:        "test@example.com",
			passwordHash: "hashedpassword",
			wantErr:      true,
			errIs:        ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := repo.CreateUser(context.Background(), tt.email, tt.passwordHash)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				if !errors.Is(err, tt.errIs) {
					t.Errorf("got error %v, want %v", err, tt.errIs)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user == nil {
				t.Fatal("expected user but got nil")
			}
			if user.Email != tt.email {
				t.Errorf("got email %v, want %v", user.Email, tt.email)
			}
			if user.ID == 0 {
				t.Error("expected server-assigned id")
			}
			if user.CreatedAt.IsZero() {
				t.Error("expected server-assigned created_at")
			}
			if !user.IsActive {
				t.Error("expected new user to be active")
			}
		})
	}
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	// Create a test user
	email := "test@example.com"
	passwordHash := "hashedpassword"
	_, err := repo.CreateUser(ctx, email, passwordHash)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{
			name:    "existing user",
			email:   email,
			wantErr: nil,
		},
		{
			name:    "missing user",
			email:   "nobody@example.com",
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := repo.GetUserByEmail(ctx, tt.email)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Email != tt.email {
				t.Errorf("got email %v, want %v", user.Email, tt.email)
			}
			if user.PasswordHash != passwordHash {
				t.Errorf("got password hash %v, want %v", user.PasswordHash, passwordHash)
			}
		})
	}
}

func TestUserRepository_DuplicateInsertWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, "one@example.com", "hash-a"); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	if _, err := repo.CreateUser(ctx, "one@example.com", "hash-b"); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("got error %v, want %v", err, ErrDuplicateEmail)
	}

	// The failed insert must not have touched the original row.
	user, err := repo.GetUserByEmail(ctx, "one@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.PasswordHash != "hash-a" {
		t.Errorf("original row mutated: got hash %q", user.PasswordHash)
	}
}
