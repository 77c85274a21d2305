package service

import (
	"context"
	"errors"
	"strings"

	"github.com/mribeiro/userauth/internal/interfaces"
	"github.com/mribeiro/userauth/internal/repository"
	"github.com/mribeiro/userauth/internal/security"
)

var (
	// ErrEmailTaken is returned by Register when the email is already
	// registered. This is the only place the service admits an email exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned by Login for an unknown email, an
	// inactive account and a wrong password alike, so callers cannot probe
	// which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned by WhoAmI for any unacceptable token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUserNotFound is returned by WhoAmI when the token's subject no
	// longer exists or has been deactivated.
	ErrUserNotFound = errors.New("user not found")
)

// AuthService composes the password hasher, token service and user
// repository into the register/login/whoami flow. It holds no mutable state.
type AuthService struct {
	userRepo interfaces.UserRepository
	hasher   *security.PasswordHasher
	tokens   *security.TokenService
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo interfaces.UserRepository, hasher *security.PasswordHasher, tokens *security.TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// normalizeEmail fixes the case policy: addresses are matched
// case-insensitively, so A@B.com and a@b.com are the same account.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and returns the stored email. The plaintext
// password and its hash never leave this layer.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	user, err := s.userRepo.CreateUser(ctx, email, digest)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	return user.Email, nil
}

// Login authenticates a user and returns a signed bearer token with the
// email as subject.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	// An inactive account looks exactly like bad credentials.
	if !user.IsActive {
		return "", ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.Email)
}

// WhoAmI resolves a bearer token to the email of the account it was issued
// for. The account may have disappeared or been deactivated since issuance;
// tokens carry no revocation state, so that is checked against the store.
func (s *AuthService) WhoAmI(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return "", ErrInvalidToken
	}

	user, err := s.userRepo.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if !user.IsActive {
		return "", ErrUserNotFound
	}

	return user.Email, nil
}
