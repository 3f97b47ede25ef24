package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/BorgesHen/MochilaOk/internal/domain"
	"github.com/BorgesHen/MochilaOk/internal/repo"
	"github.com/BorgesHen/MochilaOk/testutil"
)

// newTestTx returns a rolled-back-on-cleanup transaction for repo tests.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	return testutil.NewTx(t)
}

// createUser inserts a user with a unique email.
func createUser(t *testing.T, r repo.UserRepo, name string) domain.User {
	t.Helper()
	u, err := r.Create(context.Background(), domain.User{
		Name:         name,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "not-a-real-hash",
	})
	require.NoError(t, err)
	return u
}

// createDestination inserts a destination owned by ownerID.
func createDestination(t *testing.T, r repo.DestinationRepo, ownerID uuid.UUID, title string) domain.Destination {
	t.Helper()
	d, err := r.Create(context.Background(), domain.Destination{
		Title:   title,
		OwnerID: ownerID,
		Status:  domain.StatusPlanned,
	})
	require.NoError(t, err)
	return d
}

// createCategory inserts a category with the given mode.
func createCategory(t *testing.T, r repo.CategoryRepo, destinationID uuid.UUID, name string, mode domain.CategoryMode, sortOrder int) domain.Category {
	t.Helper()
	c, err := r.Create(context.Background(), domain.Category{
		DestinationID: destinationID,
		Name:          name,
		Mode:          mode,
		SortOrder:     sortOrder,
	})
	require.NoError(t, err)
	return c
}

// createItem inserts an item in the given category.
func createItem(t *testing.T, r repo.ItemRepo, c domain.Category, title string, createdBy uuid.UUID) domain.Item {
	t.Helper()
	it, err := r.Create(context.Background(), domain.Item{
		DestinationID: c.DestinationID,
		CategoryID:    c.ID,
		Title:         title,
		CreatedBy:     createdBy,
	})
	require.NoError(t, err)
	return it
}
