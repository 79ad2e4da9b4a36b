package memory

import (
	"context"
	"testing"

	domain "authapi/backend/internal/domain/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndFind(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	inserted, err := store.Insert(ctx, domain.User{Email: "a@b.com", Password: "hash", Name: "Ann"})
	require.NoError(t, err)
	assert.NotEmpty(t, inserted.ID)

	byEmail, err := store.FindByField(ctx, domain.FieldEmail, "a@b.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, inserted.ID, byEmail[0].ID)

	combined, err := store.FindByFields(ctx, map[string]string{
		domain.FieldEmail:    "a@b.com",
		domain.FieldPassword: "hash",
	})
	require.NoError(t, err)
	assert.Len(t, combined, 1)

	miss, err := store.FindByFields(ctx, map[string]string{
		domain.FieldEmail:    "a@b.com",
		domain.FieldPassword: "other-hash",
	})
	require.NoError(t, err)
	assert.Empty(t, miss)
}

func TestInsert_DuplicateEmail(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.Insert(ctx, domain.User{Email: "a@b.com"})
	require.NoError(t, err)

	_, err = store.Insert(ctx, domain.User{Email: "A@B.com"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestFind_UnknownField(t *testing.T) {
	store := NewStore()
	_, err := store.FindByField(context.Background(), "role", "admin")
	assert.Error(t, err)
}
