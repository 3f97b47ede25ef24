package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BorgesHen/MochilaOk/internal/domain"
	"github.com/BorgesHen/MochilaOk/internal/repo"
)

// DestinationService implements trip creation, listing and membership.
type DestinationService struct {
	access       Authorizer
	destinations repo.DestinationRepo
	users        repo.UserRepo
}

// NewDestinationService constructs a DestinationService.
func NewDestinationService(access Authorizer, destinations repo.DestinationRepo, users repo.UserRepo) *DestinationService {
	return &DestinationService{access: access, destinations: destinations, users: users}
}

// Create validates d and persists it with ownerID as owner. The owner's
// membership row is written in the same transaction.
func (s *DestinationService) Create(ctx context.Context, ownerID uuid.UUID, d domain.Destination) (domain.Destination, error) {
	title, err := requireTrimmed("title", d.Title, minNameLength)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	d.Title = title
	d.Location = strings.TrimSpace(d.Location)

	status, err := domain.ParseDestinationStatus(string(d.Status))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	d.Status = status

	if d.StartDate != nil && d.EndDate != nil && d.EndDate.Before(*d.StartDate) {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w: end date must not be before start date", domain.ErrValidation)
	}

	d.OwnerID = ownerID
	created, err := s.destinations.Create(ctx, d)
	if err != nil {
		// The only foreign key the caller controls is the trip type.
		if errors.Is(err, domain.ErrValidation) {
			return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w: unknown trip type", domain.ErrValidation)
		}
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	return created, nil
}

// List returns the destinations userID owns or belongs to, newest first.
func (s *DestinationService) List(ctx context.Context, userID uuid.UUID) ([]domain.DestinationSummary, error) {
	list, err := s.destinations.ListAccessible(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.List: %w", err)
	}
	return list, nil
}

// Get returns one destination with its member list.
func (s *DestinationService) Get(ctx context.Context, userID, destinationID uuid.UUID) (domain.DestinationDetail, error) {
	access, err := s.access.AuthorizeDestination(ctx, userID, destinationID)
	if err != nil {
		return domain.DestinationDetail{}, fmt.Errorf("service.DestinationService.Get: %w", err)
	}

	members, err := s.destinations.ListMembers(ctx, destinationID)
	if err != nil {
		return domain.DestinationDetail{}, fmt.Errorf("service.DestinationService.Get: %w", err)
	}
	return domain.DestinationDetail{Destination: access.Destination, MyRole: access.Role, Members: members}, nil
}

// AddMember adds the user registered under email to the destination.
// Only the owner may add members, and the owner role cannot be granted.
// An empty role means member.
func (s *DestinationService) AddMember(ctx context.Context, actorID, destinationID uuid.UUID, email string, role domain.Role) (domain.Member, error) {
	if role == "" {
		role = domain.RoleMember
	}
	if role != domain.RoleMember {
		return domain.Member{}, fmt.Errorf("service.DestinationService.AddMember: %w: role must be member", domain.ErrValidation)
	}
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.Member{}, fmt.Errorf("service.DestinationService.AddMember: %w: email is required", domain.ErrValidation)
	}

	access, err := s.access.AuthorizeDestination(ctx, actorID, destinationID)
	if err != nil {
		return domain.Member{}, fmt.Errorf("service.DestinationService.AddMember: %w", err)
	}
	if !access.CanManageMembers() {
		return domain.Member{}, fmt.Errorf("service.DestinationService.AddMember: %w: only the owner can add members", domain.ErrForbidden)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Member{}, fmt.Errorf("service.DestinationService.AddMember: %w: no user registered with that email", domain.ErrNotFound)
		}
		return domain.Member{}, fmt.Errorf("service.DestinationService.AddMember: %w", err)
	}

	m, err := s.destinations.AddMember(ctx, destinationID, u.ID, role)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Member{}, fmt.Errorf("service.DestinationService.AddMember: %w: user is already a member", domain.ErrConflict)
		}
		return domain.Member{}, fmt.Errorf("service.DestinationService.AddMember: %w", err)
	}
	return m, nil
}
