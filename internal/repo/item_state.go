package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/BorgesHen/MochilaOk/internal/domain"
)

// ItemStateRepo defines the writes to the per-(item, user) state rows.
// Each method is a single statement; none of them reads before writing.
type ItemStateRepo interface {
	// Claim sets claimed = true on userID's row, creating it if needed.
	// Returns domain.ErrConflict if another user already holds the claim.
	Claim(ctx context.Context, itemID, userID uuid.UUID) error

	// Unclaim clears userID's own claim. No-op when there is nothing to clear.
	Unclaim(ctx context.Context, itemID, userID uuid.UUID) error

	// UpsertStatus sets status on userID's row, creating it unclaimed if needed.
	UpsertStatus(ctx context.Context, itemID, userID uuid.UUID, status domain.ItemStatus) error

	// SetStatusIfClaimed sets status only when userID currently holds the claim.
	// Reports whether a row was updated.
	SetStatusIfClaimed(ctx context.Context, itemID, userID uuid.UUID, status domain.ItemStatus) (bool, error)
}

type pgItemStateRepo struct {
	db db
}

// NewItemStateRepo constructs an ItemStateRepo backed by the provided db connection.
func NewItemStateRepo(db db) ItemStateRepo {
	return &pgItemStateRepo{db: db}
}

// Claim leans on the item_user_one_claimant partial unique index: when two
// users race, the second upsert fails with a unique violation instead of
// both observing "unclaimed".
func (r *pgItemStateRepo) Claim(ctx context.Context, itemID, userID uuid.UUID) error {
	const q = `
		INSERT INTO item_user (item_id, user_id, claimed, status)
		VALUES (@item_id, @user_id, true, 'PENDING')
		ON CONFLICT (item_id, user_id)
		DO UPDATE SET claimed = true, updated_at = now()`

	args := pgx.NamedArgs{"item_id": itemID, "user_id": userID}
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q, args)
		return err
	})
	if err != nil {
		return fmt.Errorf("repo.ItemStateRepo.Claim: %w", translate(err))
	}
	return nil
}

func (r *pgItemStateRepo) Unclaim(ctx context.Context, itemID, userID uuid.UUID) error {
	const q = `
		UPDATE item_user
		SET claimed = false, updated_at = now()
		WHERE item_id = @item_id AND user_id = @user_id AND claimed`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"item_id": itemID, "user_id": userID}); err != nil {
		return fmt.Errorf("repo.ItemStateRepo.Unclaim: %w", err)
	}
	return nil
}

func (r *pgItemStateRepo) UpsertStatus(ctx context.Context, itemID, userID uuid.UUID, status domain.ItemStatus) error {
	const q = `
		INSERT INTO item_user (item_id, user_id, claimed, status)
		VALUES (@item_id, @user_id, false, @status)
		ON CONFLICT (item_id, user_id)
		DO UPDATE SET status = EXCLUDED.status, updated_at = now()`

	args := pgx.NamedArgs{"item_id": itemID, "user_id": userID, "status": string(status)}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.ItemStateRepo.UpsertStatus: %w", err)
	}
	return nil
}

// SetStatusIfClaimed checks the claim and writes the status in one statement,
// so an unclaim racing with this write cannot slip between a check and the update.
func (r *pgItemStateRepo) SetStatusIfClaimed(ctx context.Context, itemID, userID uuid.UUID, status domain.ItemStatus) (bool, error) {
	const q = `
		UPDATE item_user
		SET status = @status, updated_at = now()
		WHERE item_id = @item_id AND user_id = @user_id AND claimed`

	args := pgx.NamedArgs{"item_id": itemID, "user_id": userID, "status": string(status)}
	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return false, fmt.Errorf("repo.ItemStateRepo.SetStatusIfClaimed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
