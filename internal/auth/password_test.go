package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BorgesHen/MochilaOk/internal/auth"
)

func TestHashPassword_CheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	ok, err := auth.CheckPassword(hash, "hunter22")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.CheckPassword(hash, "hunter23")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	_, err := auth.CheckPassword("plain-text", "hunter22")
	assert.Error(t, err)
}

func TestUserIDContext(t *testing.T) {
	_, ok := auth.UserIDFrom(context.Background())
	assert.False(t, ok)

	id := uuid.New()
	got, ok := auth.UserIDFrom(auth.WithUserID(context.Background(), id))
	require.True(t, ok)
	assert.Equal(t, id, got)
}
