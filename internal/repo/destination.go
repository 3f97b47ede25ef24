package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/BorgesHen/MochilaOk/internal/domain"
)

// DestinationRepo defines the persistence operations for destinations and
// their membership rows.
type DestinationRepo interface {
	// Create inserts the destination and the owner's membership row in one
	// transaction. Either both rows exist afterwards or neither does.
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)

	// GetWithMembership returns the destination and the stored membership role
	// of userID on it (nil when userID has no membership row).
	// Returns domain.ErrNotFound if the destination does not exist.
	GetWithMembership(ctx context.Context, destinationID, userID uuid.UUID) (domain.Destination, *domain.Role, error)

	// ListAccessible returns every destination userID owns or is a member of,
	// newest first.
	ListAccessible(ctx context.Context, userID uuid.UUID) ([]domain.DestinationSummary, error)

	// ListMembers returns the members of a destination ordered by join time.
	ListMembers(ctx context.Context, destinationID uuid.UUID) ([]domain.Member, error)

	// AddMember inserts a membership row.
	// Returns domain.ErrConflict if the user is already a member.
	AddMember(ctx context.Context, destinationID, userID uuid.UUID, role domain.Role) (domain.Member, error)
}

type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

// destinationColumns expects the destination aliased as d and trip_types as tt.
const destinationColumns = `
	d.id, d.title, d.location, d.owner_id, d.trip_type_id, d.start_date, d.end_date,
	d.status, d.created_at, d.updated_at, tt.name, tt.slug`

func (r *pgDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	const insertDestination = `
		WITH d AS (
			INSERT INTO destinations (title, location, owner_id, trip_type_id, start_date, end_date, status)
			VALUES (@title, @location, @owner_id, @trip_type_id, @start_date, @end_date, @status)
			RETURNING *
		)
		SELECT ` + destinationColumns + `
		FROM d
		LEFT JOIN trip_types tt ON tt.id = d.trip_type_id`

	const insertOwner = `
		INSERT INTO destination_members (destination_id, user_id, role)
		VALUES (@destination_id, @user_id, 'owner')`

	args := pgx.NamedArgs{
		"title":        d.Title,
		"location":     textOrNil(d.Location),
		"owner_id":     d.OwnerID,
		"trip_type_id": d.TripTypeID, // nil becomes NULL
		"start_date":   d.StartDate,
		"end_date":     d.EndDate,
		"status":       string(d.Status),
	}

	var created domain.Destination
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		created, err = scanDestination(tx.QueryRow(ctx, insertDestination, args))
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, insertOwner, pgx.NamedArgs{
			"destination_id": created.ID,
			"user_id":        created.OwnerID,
		})
		return err
	})
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", translate(err))
	}
	return created, nil
}

func (r *pgDestinationRepo) GetWithMembership(ctx context.Context, destinationID, userID uuid.UUID) (domain.Destination, *domain.Role, error) {
	const q = `
		SELECT ` + destinationColumns + `, dm.role
		FROM destinations d
		LEFT JOIN trip_types tt ON tt.id = d.trip_type_id
		LEFT JOIN destination_members dm
		       ON dm.destination_id = d.id AND dm.user_id = @user_id
		WHERE d.id = @destination_id`

	var stored pgtype.Text
	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"destination_id": destinationID, "user_id": userID})
	d, err := scanDestination(row, &stored)
	if err != nil {
		return domain.Destination{}, nil, fmt.Errorf("repo.DestinationRepo.GetWithMembership: %w", translate(err))
	}
	if !stored.Valid {
		return d, nil, nil
	}
	role, err := domain.ParseRole(stored.String)
	if err != nil {
		return domain.Destination{}, nil, fmt.Errorf("repo.DestinationRepo.GetWithMembership: %w", err)
	}
	return d, &role, nil
}

func (r *pgDestinationRepo) ListAccessible(ctx context.Context, userID uuid.UUID) ([]domain.DestinationSummary, error) {
	const q = `
		SELECT ` + destinationColumns + `, dm.role
		FROM destinations d
		LEFT JOIN trip_types tt ON tt.id = d.trip_type_id
		LEFT JOIN destination_members dm
		       ON dm.destination_id = d.id AND dm.user_id = @user_id
		WHERE d.owner_id = @user_id OR dm.user_id IS NOT NULL
		ORDER BY d.created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListAccessible: %w", err)
	}
	defer rows.Close()

	out := []domain.DestinationSummary{}
	for rows.Next() {
		var stored pgtype.Text
		d, err := scanDestination(rows, &stored)
		if err != nil {
			return nil, fmt.Errorf("repo.DestinationRepo.ListAccessible: scan: %w", err)
		}
		var storedRole *domain.Role
		if stored.Valid {
			role, err := domain.ParseRole(stored.String)
			if err != nil {
				return nil, fmt.Errorf("repo.DestinationRepo.ListAccessible: %w", err)
			}
			storedRole = &role
		}
		role, _ := domain.ResolveRole(d.OwnerID, userID, storedRole)
		out = append(out, domain.DestinationSummary{Destination: d, MyRole: role})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListAccessible: rows: %w", err)
	}
	return out, nil
}

func (r *pgDestinationRepo) ListMembers(ctx context.Context, destinationID uuid.UUID) ([]domain.Member, error) {
	const q = `
		SELECT dm.user_id, u.name, u.email, dm.role, dm.joined_at
		FROM destination_members dm
		JOIN users u ON u.id = dm.user_id
		WHERE dm.destination_id = @destination_id
		ORDER BY dm.joined_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"destination_id": destinationID})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListMembers: %w", err)
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DestinationRepo.ListMembers: scan: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListMembers: rows: %w", err)
	}
	return members, nil
}

func (r *pgDestinationRepo) AddMember(ctx context.Context, destinationID, userID uuid.UUID, role domain.Role) (domain.Member, error) {
	const q = `
		WITH dm AS (
			INSERT INTO destination_members (destination_id, user_id, role)
			VALUES (@destination_id, @user_id, @role)
			RETURNING user_id, role, joined_at
		)
		SELECT dm.user_id, u.name, u.email, dm.role, dm.joined_at
		FROM dm
		JOIN users u ON u.id = dm.user_id`

	args := pgx.NamedArgs{
		"destination_id": destinationID,
		"user_id":        userID,
		"role":           string(role),
	}

	var m domain.Member
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		m, err = scanMember(tx.QueryRow(ctx, q, args))
		return err
	})
	if err != nil {
		return domain.Member{}, fmt.Errorf("repo.DestinationRepo.AddMember: %w", translate(err))
	}
	return m, nil
}

// scanDestination maps the destinationColumns projection into a domain.Destination.
// extra receives any columns selected after the projection.
func scanDestination(s scanner, extra ...any) (domain.Destination, error) {
	var (
		d          domain.Destination
		id         pgtype.UUID
		ownerID    pgtype.UUID
		tripTypeID pgtype.UUID
		location   pgtype.Text
		startDate  pgtype.Date
		endDate    pgtype.Date
		status     string
		ttName     pgtype.Text
		ttSlug     pgtype.Text
	)

	dest := append([]any{
		&id, &d.Title, &location, &ownerID, &tripTypeID, &startDate, &endDate,
		&status, &d.CreatedAt, &d.UpdatedAt, &ttName, &ttSlug,
	}, extra...)
	if err := s.Scan(dest...); err != nil {
		return domain.Destination{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	d.OwnerID = uuid.UUID(ownerID.Bytes)
	d.Location = location.String
	d.Status = domain.DestinationStatus(status)
	d.TripTypeName = ttName.String
	d.TripTypeSlug = ttSlug.String
	if tripTypeID.Valid {
		tt := uuid.UUID(tripTypeID.Bytes)
		d.TripTypeID = &tt
	}
	if startDate.Valid {
		sd := startDate.Time
		d.StartDate = &sd
	}
	if endDate.Valid {
		ed := endDate.Time
		d.EndDate = &ed
	}
	return d, nil
}

func scanMember(s scanner) (domain.Member, error) {
	var (
		m    domain.Member
		id   pgtype.UUID
		role string
	)
	if err := s.Scan(&id, &m.Name, &m.Email, &role, &m.JoinedAt); err != nil {
		return domain.Member{}, err
	}
	m.UserID = uuid.UUID(id.Bytes)
	m.Role = domain.Role(role)
	return m, nil
}
