package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned for any token that cannot be accepted:
	// malformed, tampered, signed with the wrong key or algorithm.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTokenExpired is returned when the token is well-formed and
	// correctly signed but its expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
)

// Claims carried by an access token. Subject holds the principal's email.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed bearer tokens. The signing
// secret and TTL are process-wide configuration, fixed at startup.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with secret and stamping
// tokens with an expiry of now+ttl.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for the given subject. The expiry claim is
// always computed here from the configured TTL; callers cannot extend it.
func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the token's signature, algorithm and expiry and returns its
// claims. A token has two observable states: valid, or rejected with
// ErrTokenExpired/ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
