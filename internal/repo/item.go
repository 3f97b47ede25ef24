package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/BorgesHen/MochilaOk/internal/domain"
)

// ItemRepo defines the persistence operations for items.
type ItemRepo interface {
	// Create inserts an item. The caller is responsible for checking that the
	// category belongs to the item's destination.
	Create(ctx context.Context, item domain.Item) (domain.Item, error)

	// GetByID retrieves an item together with its category mode.
	// Returns domain.ErrNotFound if no such item exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error)

	// ListForUser returns every item of a destination joined with userID's own
	// state and the current claimant. Ordered by category sort_order, category
	// name, then newest item first.
	ListForUser(ctx context.Context, destinationID, userID uuid.UUID) ([]domain.ItemView, error)
}

type pgItemRepo struct {
	db db
}

// NewItemRepo constructs an ItemRepo backed by the provided db connection.
func NewItemRepo(db db) ItemRepo {
	return &pgItemRepo{db: db}
}

// itemColumns expects items aliased as i and categories as c.
const itemColumns = `
	i.id, i.destination_id, i.category_id, i.title, i.qty, i.unit, i.notes,
	i.created_by, i.created_at, i.updated_at, c.mode`

func (r *pgItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	const q = `
		WITH i AS (
			INSERT INTO items (destination_id, category_id, title, qty, unit, notes, created_by)
			VALUES (@destination_id, @category_id, @title, @qty, @unit, @notes, @created_by)
			RETURNING *
		)
		SELECT ` + itemColumns + `
		FROM i
		JOIN categories c ON c.id = i.category_id`

	args := pgx.NamedArgs{
		"destination_id": item.DestinationID,
		"category_id":    item.CategoryID,
		"title":          item.Title,
		"qty":            item.Qty, // nil becomes NULL
		"unit":           textOrNil(item.Unit),
		"notes":          textOrNil(item.Notes),
		"created_by":     item.CreatedBy,
	}

	created, err := scanItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.Create: %w", translate(err))
	}
	return created, nil
}

func (r *pgItemRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM items i
		JOIN categories c ON c.id = i.category_id
		WHERE i.id = @id`

	item, err := scanItem(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Item{}, fmt.Errorf("repo.ItemRepo.GetByID: %w", translate(err))
	}
	return item, nil
}

// ListForUser finds the claimant with a LATERAL subquery, independent of the
// caller's own item_user row. The one-claimant index guarantees at most one match.
func (r *pgItemRepo) ListForUser(ctx context.Context, destinationID, userID uuid.UUID) ([]domain.ItemView, error) {
	const q = `
		SELECT ` + itemColumns + `,
		       c.name,
		       COALESCE(iu.claimed, false),
		       COALESCE(iu.status, 'PENDING'),
		       cl.user_id
		FROM items i
		JOIN categories c ON c.id = i.category_id
		LEFT JOIN item_user iu
		       ON iu.item_id = i.id AND iu.user_id = @user_id
		LEFT JOIN LATERAL (
			SELECT user_id
			FROM item_user
			WHERE item_id = i.id AND claimed
			LIMIT 1
		) cl ON true
		WHERE i.destination_id = @destination_id
		ORDER BY c.sort_order ASC, c.name ASC, i.created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"destination_id": destinationID, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListForUser: %w", err)
	}
	defer rows.Close()

	views := []domain.ItemView{}
	for rows.Next() {
		var (
			v         domain.ItemView
			status    string
			claimedBy pgtype.UUID
		)
		v.Item, err = scanItem(rows, &v.CategoryName, &v.Mine.Claimed, &status, &claimedBy)
		if err != nil {
			return nil, fmt.Errorf("repo.ItemRepo.ListForUser: scan: %w", err)
		}
		v.Mine.Status = domain.ItemStatus(status)
		if claimedBy.Valid {
			id := uuid.UUID(claimedBy.Bytes)
			v.ClaimedBy = &id
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListForUser: rows: %w", err)
	}
	return views, nil
}

// scanItem maps the itemColumns projection into a domain.Item.
// extra receives any columns selected after the projection.
func scanItem(s scanner, extra ...any) (domain.Item, error) {
	var (
		it        domain.Item
		id        pgtype.UUID
		destID    pgtype.UUID
		catID     pgtype.UUID
		createdBy pgtype.UUID
		qty       pgtype.Float8
		unit      pgtype.Text
		notes     pgtype.Text
		mode      string
	)

	dest := append([]any{
		&id, &destID, &catID, &it.Title, &qty, &unit, &notes,
		&createdBy, &it.CreatedAt, &it.UpdatedAt, &mode,
	}, extra...)
	if err := s.Scan(dest...); err != nil {
		return domain.Item{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	it.DestinationID = uuid.UUID(destID.Bytes)
	it.CategoryID = uuid.UUID(catID.Bytes)
	it.CreatedBy = uuid.UUID(createdBy.Bytes)
	it.Unit = unit.String
	it.Notes = notes.String
	it.CategoryMode = domain.CategoryMode(mode)
	if qty.Valid {
		q := qty.Float64
		it.Qty = &q
	}
	return it, nil
}
