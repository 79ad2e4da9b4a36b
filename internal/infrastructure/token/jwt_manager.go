package token

import (
	"errors"
	"fmt"
	"time"

	domain "authapi/backend/internal/domain/auth"
	usecase "authapi/backend/internal/usecase/auth"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

// JWTManager issues and validates HS256 bearer tokens.
type JWTManager struct {
	secret  []byte
	ttl     time.Duration
	nowFunc func() time.Time
}

// NewJWTManager constructs a manager with the provided secret and lifetime.
// An empty secret is tolerated here; token operations fail with a
// configuration error instead.
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWTManager{
		secret:  []byte(secret),
		ttl:     ttl,
		nowFunc: time.Now,
	}
}

// Ensure JWTManager implements the TokenManager interface.
var _ usecase.TokenManager = (*JWTManager)(nil)

// Claims is the complete token payload: user id, email, expiry. No issuer,
// audience or not-before claims are set or required.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Generate creates a signed token expiring ttl from now.
func (m *JWTManager) Generate(userID, email string) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("%w: JWT_SECRET is not set", domain.ErrConfig)
	}

	now := m.nowFunc().UTC()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates the token, returning its payload when the
// signature checks out and the expiry has not passed.
func (m *JWTManager) Verify(tokenString string) (*usecase.TokenPayload, error) {
	if len(m.secret) == 0 {
		return nil, fmt.Errorf("%w: JWT_SECRET is not set", domain.ErrConfig)
	}

	parser := jwt.NewParser(jwt.WithTimeFunc(func() time.Time { return m.nowFunc().UTC() }))
	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return &usecase.TokenPayload{UserID: claims.UserID, Email: claims.Email}, nil
}
