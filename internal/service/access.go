// Package service contains the business logic for the MochilaOk API.
// Services validate inputs, enforce access control and the item state rules,
// and orchestrate repo calls. No SQL lives here. Services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/BorgesHen/MochilaOk/internal/domain"
	"github.com/BorgesHen/MochilaOk/internal/repo"
)

// Authorizer resolves whether a user may act on a destination or item.
// Every destination-, category-, item- or state-scoped operation goes through
// one of these two methods first.
type Authorizer interface {
	AuthorizeDestination(ctx context.Context, userID, destinationID uuid.UUID) (domain.DestinationAccess, error)
	AuthorizeItem(ctx context.Context, userID, itemID uuid.UUID) (domain.ItemAccess, error)
}

// AccessService is the Postgres-backed Authorizer.
type AccessService struct {
	destinations repo.DestinationRepo
	items        repo.ItemRepo
}

// NewAccessService constructs an AccessService backed by the provided repos.
func NewAccessService(destinations repo.DestinationRepo, items repo.ItemRepo) *AccessService {
	return &AccessService{destinations: destinations, items: items}
}

var _ Authorizer = (*AccessService)(nil)

// errNoDestination is the single answer for "missing" and "not yours".
var errNoDestination = fmt.Errorf("%w: destination not found or not accessible", domain.ErrNotFound)

// AuthorizeDestination returns the destination and the caller's effective role.
// Returns domain.ErrNotFound when the destination does not exist or the
// caller is neither its owner nor a member.
func (s *AccessService) AuthorizeDestination(ctx context.Context, userID, destinationID uuid.UUID) (domain.DestinationAccess, error) {
	d, stored, err := s.destinations.GetWithMembership(ctx, destinationID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DestinationAccess{}, fmt.Errorf("service.AccessService.AuthorizeDestination: %w", errNoDestination)
		}
		return domain.DestinationAccess{}, fmt.Errorf("service.AccessService.AuthorizeDestination: %w", err)
	}

	role, ok := domain.ResolveRole(d.OwnerID, userID, stored)
	if !ok {
		return domain.DestinationAccess{}, fmt.Errorf("service.AccessService.AuthorizeDestination: %w", errNoDestination)
	}
	return domain.DestinationAccess{Destination: d, Role: role}, nil
}

// AuthorizeItem resolves the item's destination and authorizes against it.
// Returns domain.ErrNotFound when the item does not exist or the caller has no
// access to its destination.
func (s *AccessService) AuthorizeItem(ctx context.Context, userID, itemID uuid.UUID) (domain.ItemAccess, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ItemAccess{}, fmt.Errorf("service.AccessService.AuthorizeItem: %w: item not found", domain.ErrNotFound)
		}
		return domain.ItemAccess{}, fmt.Errorf("service.AccessService.AuthorizeItem: %w", err)
	}

	access, err := s.AuthorizeDestination(ctx, userID, item.DestinationID)
	if err != nil {
		// Same message as a missing item: the caller learns nothing more.
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ItemAccess{}, fmt.Errorf("service.AccessService.AuthorizeItem: %w: item not found", domain.ErrNotFound)
		}
		return domain.ItemAccess{}, fmt.Errorf("service.AccessService.AuthorizeItem: %w", err)
	}
	return domain.ItemAccess{Item: item, Destination: access.Destination, Role: access.Role}, nil
}
