package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/BorgesHen/MochilaOk/internal/domain"
)

// TripTypeRepo defines the read operations for the trip type catalogue.
// Rows are seeded by migration.
type TripTypeRepo interface {
	// List returns all trip types ordered by name.
	List(ctx context.Context) ([]domain.TripType, error)
}

type pgTripTypeRepo struct {
	db db
}

// NewTripTypeRepo constructs a TripTypeRepo backed by the provided db connection.
func NewTripTypeRepo(db db) TripTypeRepo {
	return &pgTripTypeRepo{db: db}
}

func (r *pgTripTypeRepo) List(ctx context.Context) ([]domain.TripType, error) {
	const q = `
		SELECT id, name, slug, created_at
		FROM trip_types
		ORDER BY name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripTypeRepo.List: %w", err)
	}
	defer rows.Close()

	types := []domain.TripType{}
	for rows.Next() {
		var (
			tt domain.TripType
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &tt.Name, &tt.Slug, &tt.CreatedAt); err != nil {
			return nil, fmt.Errorf("repo.TripTypeRepo.List: scan: %w", err)
		}
		tt.ID = uuid.UUID(id.Bytes)
		types = append(types, tt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripTypeRepo.List: rows: %w", err)
	}
	return types, nil
}
