package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"

	domain "authapi/backend/internal/domain/auth"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserStore persists users in PostgreSQL behind the credential store surface.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore constructs a store over the pool.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

// Ensure UserStore implements the CredentialStore interface.
var _ domain.CredentialStore = (*UserStore)(nil)

// FindByField returns users whose column equals the value.
func (s *UserStore) FindByField(ctx context.Context, field, value string) ([]domain.User, error) {
	return s.FindByFields(ctx, map[string]string{field: value})
}

// FindByFields returns users matching every filter at once. Filter columns
// are restricted to the known users columns; anything else is rejected before
// reaching SQL.
func (s *UserStore) FindByFields(ctx context.Context, filters map[string]string) ([]domain.User, error) {
	query := `SELECT id, email, password, name, created_at FROM users`

	fields := make([]string, 0, len(filters))
	for field := range filters {
		if !allowedColumn(field) {
			return nil, fmt.Errorf("unsupported filter field %q", field)
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var (
		clauses []string
		args    []any
	)
	for i, field := range fields {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", field, i+1))
		args = append(args, filters[field])
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// Insert persists a new user. The id is assigned here; a duplicate email
// surfaces as ErrUserExists via the unique constraint even when a concurrent
// registration passed the pre-insert existence check.
func (s *UserStore) Insert(ctx context.Context, user domain.User) (domain.User, error) {
	const query = `
INSERT INTO users (id, email, password, name, created_at)
VALUES ($1, $2, $3, $4, $5)
`
	user.ID = uuid.NewString()
	_, err := s.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Password,
		user.Name,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrUserExists
		}
		return domain.User{}, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.Name,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func allowedColumn(field string) bool {
	switch field {
	case domain.FieldID, domain.FieldEmail, domain.FieldPassword, domain.FieldName:
		return true
	}
	return false
}
