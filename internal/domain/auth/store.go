package auth

import "context"

// Store field names accepted by CredentialStore filters. Backends reject
// anything outside this set.
const (
	FieldID       = "id"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
)

// CredentialStore is the persistence boundary for the users table. It exposes
// the generic select-by-field and insert capability the auth workflows need;
// no business logic lives behind it.
type CredentialStore interface {
	// FindByField returns all users whose column matches the value exactly.
	FindByField(ctx context.Context, field, value string) ([]User, error)
	// FindByFields returns all users matching every filter at once. Login uses
	// this for the combined email+hash lookup.
	FindByFields(ctx context.Context, filters map[string]string) ([]User, error)
	// Insert persists a new user and returns the stored record including the
	// store-assigned id. Backends that enforce email uniqueness return
	// ErrUserExists on violation.
	Insert(ctx context.Context, user User) (User, error)
}
