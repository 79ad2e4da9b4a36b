package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domain "authapi/backend/internal/domain/auth"

	"golang.org/x/crypto/bcrypt"
)

// Service coordinates authentication workflows between domain and
// infrastructure. It is stateless beyond its injected collaborators and safe
// for concurrent use.
type Service struct {
	store   domain.CredentialStore
	tokens  TokenManager
	scheme  PasswordScheme
	logger  *slog.Logger
	nowFunc func() time.Time
}

// NewService constructs an auth service around the injected store and token
// manager.
func NewService(store domain.CredentialStore, tokens TokenManager, scheme PasswordScheme, logger *slog.Logger) *Service {
	if scheme == "" {
		scheme = SchemeSHA256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   store,
		tokens:  tokens,
		scheme:  scheme,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// Register creates a new user and returns the persisted entity without its
// password hash. The existence check and the insert are two separate store
// calls; concurrent registrations for the same email can both pass the check,
// in which case the insert decides.
func (s *Service) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, domain.ErrMissingField
	}

	existing, err := s.store.FindByField(ctx, domain.FieldEmail, email)
	if err != nil {
		s.logger.Error("registration lookup failed", "error", err)
		return nil, domain.ErrRegistrationFailed
	}
	if len(existing) > 0 {
		return nil, domain.ErrUserExists
	}

	hash, err := s.hashForStorage(password)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, domain.ErrRegistrationFailed
	}

	inserted, err := s.store.Insert(ctx, domain.User{
		Email:     email,
		Name:      name,
		Password:  hash,
		CreatedAt: s.nowFunc().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		s.logger.Error("user insert failed", "error", err)
		return nil, domain.ErrRegistrationFailed
	}

	return sanitizeUser(&inserted), nil
}

// Authenticate validates credentials and returns a bearer token plus the
// matched user. An unknown email and a wrong password are indistinguishable
// to the caller.
func (s *Service) Authenticate(ctx context.Context, creds domain.Credentials) (string, *domain.User, error) {
	email := strings.TrimSpace(creds.Email)
	password := strings.TrimSpace(creds.Password)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.matchCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return "", nil, domain.ErrInvalidCredentials
		}
		s.logger.Error("credential lookup failed", "error", err)
		return "", nil, domain.ErrAuthenticationFailed
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		s.logger.Error("token generation failed", "error", err)
		return "", nil, domain.ErrAuthenticationFailed
	}

	return token, sanitizeUser(user), nil
}

// VerifyToken validates a bearer token and returns the associated user.
func (s *Service) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	payload, err := s.tokens.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, domain.ErrConfig):
			return nil, err
		default:
			return nil, domain.ErrTokenInvalid
		}
	}

	users, err := s.store.FindByField(ctx, domain.FieldID, payload.UserID)
	if err != nil {
		return nil, fmt.Errorf("looking up token user: %w", err)
	}
	if len(users) == 0 {
		return nil, domain.ErrUserNotFound
	}

	return sanitizeUser(&users[0]), nil
}

func (s *Service) hashForStorage(password string) (string, error) {
	if s.scheme == SchemeBcrypt {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", err
		}
		return string(hashed), nil
	}
	return HashPassword(password), nil
}

// matchCredentials resolves email+password to a user. Under SchemeSHA256 this
// is a single combined lookup on email and digest. Rows carrying a bcrypt
// hash (written under SchemeBcrypt, or migrated) fall back to a find-by-email
// plus compare flow.
func (s *Service) matchCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	if s.scheme == SchemeSHA256 {
		matches, err := s.store.FindByFields(ctx, map[string]string{
			domain.FieldEmail:    email,
			domain.FieldPassword: HashPassword(password),
		})
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			return &matches[0], nil
		}
	}

	candidates, err := s.store.FindByField(ctx, domain.FieldEmail, email)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, domain.ErrInvalidCredentials
	}
	user := candidates[0]
	if s.scheme == SchemeSHA256 && !isBcryptHash(user.Password) {
		// Combined lookup above already ruled this row out.
		return nil, domain.ErrInvalidCredentials
	}
	if !verifyAgainstHash(user.Password, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return &user, nil
}

func sanitizeUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copy := *u
	copy.Password = ""
	return &copy
}
