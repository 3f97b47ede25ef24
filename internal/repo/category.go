package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/BorgesHen/MochilaOk/internal/domain"
)

// CategoryRepo defines the persistence operations for categories.
// Every read is scoped by destination so a category id from another
// destination is indistinguishable from a missing one.
type CategoryRepo interface {
	// Create inserts a category. Returns domain.ErrConflict if the name is
	// already used in the same destination.
	Create(ctx context.Context, c domain.Category) (domain.Category, error)

	// GetByID retrieves a category scoped to destinationID.
	// Returns domain.ErrNotFound if it does not exist under that destination.
	GetByID(ctx context.Context, destinationID, categoryID uuid.UUID) (domain.Category, error)

	// List returns the categories of a destination ordered by sort_order, then name.
	List(ctx context.Context, destinationID uuid.UUID) ([]domain.Category, error)
}

type pgCategoryRepo struct {
	db db
}

// NewCategoryRepo constructs a CategoryRepo backed by the provided db connection.
func NewCategoryRepo(db db) CategoryRepo {
	return &pgCategoryRepo{db: db}
}

const categoryColumns = `id, destination_id, name, mode, sort_order, created_at`

func (r *pgCategoryRepo) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	const q = `
		INSERT INTO categories (destination_id, name, mode, sort_order)
		VALUES (@destination_id, @name, @mode, @sort_order)
		RETURNING ` + categoryColumns

	args := pgx.NamedArgs{
		"destination_id": c.DestinationID,
		"name":           c.Name,
		"mode":           string(c.Mode),
		"sort_order":     c.SortOrder,
	}

	var created domain.Category
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		created, err = scanCategory(tx.QueryRow(ctx, q, args))
		return err
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.Create: %w", translate(err))
	}
	return created, nil
}

func (r *pgCategoryRepo) GetByID(ctx context.Context, destinationID, categoryID uuid.UUID) (domain.Category, error) {
	const q = `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = @id AND destination_id = @destination_id`

	c, err := scanCategory(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": categoryID, "destination_id": destinationID}))
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.GetByID: %w", translate(err))
	}
	return c, nil
}

func (r *pgCategoryRepo) List(ctx context.Context, destinationID uuid.UUID) ([]domain.Category, error) {
	const q = `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE destination_id = @destination_id
		ORDER BY sort_order ASC, name ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"destination_id": destinationID})
	if err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.List: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CategoryRepo.List: scan: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.List: rows: %w", err)
	}
	return categories, nil
}

func scanCategory(s scanner) (domain.Category, error) {
	var (
		c     domain.Category
		id    pgtype.UUID
		destI pgtype.UUID
		mode  string
	)
	if err := s.Scan(&id, &destI, &c.Name, &mode, &c.SortOrder, &c.CreatedAt); err != nil {
		return domain.Category{}, err
	}
	c.ID = uuid.UUID(id.Bytes)
	c.DestinationID = uuid.UUID(destI.Bytes)
	c.Mode = domain.CategoryMode(mode)
	return c, nil
}
