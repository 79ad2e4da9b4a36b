// Package memory provides an in-process credential store used by tests and
// local development.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	domain "authapi/backend/internal/domain/auth"

	"github.com/google/uuid"
)

// Store keeps users in a mutex-guarded map.
type Store struct {
	mu    sync.Mutex
	users map[string]domain.User
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{users: make(map[string]domain.User)}
}

// Ensure Store implements the CredentialStore interface.
var _ domain.CredentialStore = (*Store)(nil)

// FindByField returns users whose field equals the value.
func (s *Store) FindByField(_ context.Context, field, value string) ([]domain.User, error) {
	return s.findByFilters(map[string]string{field: value})
}

// FindByFields returns users matching every filter at once.
func (s *Store) FindByFields(_ context.Context, filters map[string]string) ([]domain.User, error) {
	return s.findByFilters(filters)
}

// Insert stores a new user, assigning an id and enforcing email uniqueness.
func (s *Store) Insert(_ context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return domain.User{}, domain.ErrUserExists
		}
	}

	user.ID = uuid.NewString()
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) findByFilters(filters map[string]string) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []domain.User
	for _, u := range s.users {
		ok := true
		for field, value := range filters {
			fieldValue, err := userField(u, field)
			if err != nil {
				return nil, err
			}
			if fieldValue != value {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, u)
		}
	}
	return matches, nil
}

func userField(u domain.User, field string) (string, error) {
	switch field {
	case domain.FieldID:
		return u.ID, nil
	case domain.FieldEmail:
		return u.Email, nil
	case domain.FieldPassword:
		return u.Password, nil
	case domain.FieldName:
		return u.Name, nil
	}
	return "", fmt.Errorf("unsupported filter field %q", field)
}
