package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/BorgesHen/MochilaOk/internal/domain"
	"github.com/BorgesHen/MochilaOk/internal/repo"
)

// NewItem is the caller-supplied part of an item.
type NewItem struct {
	CategoryID uuid.UUID
	Title      string
	Qty        *float64
	Unit       string
	Notes      string
}

// ItemService manages items and each user's claim/status on them.
type ItemService struct {
	access     Authorizer
	categories repo.CategoryRepo
	items      repo.ItemRepo
	states     repo.ItemStateRepo
}

// NewItemService constructs an ItemService.
func NewItemService(access Authorizer, categories repo.CategoryRepo, items repo.ItemRepo, states repo.ItemStateRepo) *ItemService {
	return &ItemService{access: access, categories: categories, items: items, states: states}
}

// Create adds an item to a destination. The category must belong to the same
// destination; a category from elsewhere is a validation error, not a 404.
func (s *ItemService) Create(ctx context.Context, userID, destinationID uuid.UUID, in NewItem) (domain.Item, error) {
	title, err := requireTrimmed("title", in.Title, minNameLength)
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	if in.Qty != nil && (*in.Qty < 0 || math.IsNaN(*in.Qty) || math.IsInf(*in.Qty, 0)) {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w: qty must be a non-negative number", domain.ErrValidation)
	}

	if _, err := s.access.AuthorizeDestination(ctx, userID, destinationID); err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}

	if _, err := s.categories.GetByID(ctx, destinationID, in.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w: invalid category for this destination", domain.ErrValidation)
		}
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}

	item, err := s.items.Create(ctx, domain.Item{
		DestinationID: destinationID,
		CategoryID:    in.CategoryID,
		Title:         title,
		Qty:           in.Qty,
		Unit:          strings.TrimSpace(in.Unit),
		Notes:         strings.TrimSpace(in.Notes),
		CreatedBy:     userID,
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.ItemService.Create: %w", err)
	}
	return item, nil
}

// List returns every item of a destination with the caller's own state and
// the current claimant.
func (s *ItemService) List(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.ItemView, error) {
	if _, err := s.access.AuthorizeDestination(ctx, userID, destinationID); err != nil {
		return nil, fmt.Errorf("service.ItemService.List: %w", err)
	}
	list, err := s.items.ListForUser(ctx, destinationID, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ItemService.List: %w", err)
	}
	return list, nil
}

// SetClaimed claims or releases an item for the caller. Only CLAIMABLE items
// can be claimed. Claiming an item someone else holds is a conflict; releasing
// an item the caller does not hold is a no-op. Status is left untouched.
func (s *ItemService) SetClaimed(ctx context.Context, userID, itemID uuid.UUID, claimed bool) error {
	access, err := s.access.AuthorizeItem(ctx, userID, itemID)
	if err != nil {
		return fmt.Errorf("service.ItemService.SetClaimed: %w", err)
	}
	if !access.Item.CategoryMode.CanClaim() {
		return fmt.Errorf("service.ItemService.SetClaimed: %w: item is not claimable (category is not CLAIMABLE)", domain.ErrInvalidOperation)
	}

	if !claimed {
		if err := s.states.Unclaim(ctx, itemID, userID); err != nil {
			return fmt.Errorf("service.ItemService.SetClaimed: %w", err)
		}
		return nil
	}

	if err := s.states.Claim(ctx, itemID, userID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("service.ItemService.SetClaimed: %w: item already claimed by someone else", domain.ErrConflict)
		}
		return fmt.Errorf("service.ItemService.SetClaimed: %w", err)
	}
	return nil
}

// SetStatus sets the caller's status on an item. Under CLAIMABLE the caller
// must currently hold the claim. Claimed is left untouched.
func (s *ItemService) SetStatus(ctx context.Context, userID, itemID uuid.UUID, status string) (domain.ItemStatus, error) {
	st, err := domain.ParseItemStatus(status)
	if err != nil {
		return "", fmt.Errorf("service.ItemService.SetStatus: %w", err)
	}

	access, err := s.access.AuthorizeItem(ctx, userID, itemID)
	if err != nil {
		return "", fmt.Errorf("service.ItemService.SetStatus: %w", err)
	}

	if !access.Item.CategoryMode.StatusNeedsClaim() {
		if err := s.states.UpsertStatus(ctx, itemID, userID, st); err != nil {
			return "", fmt.Errorf("service.ItemService.SetStatus: %w", err)
		}
		return st, nil
	}

	// Claim check and write are one statement, so a concurrent unclaim
	// cannot slip between them.
	ok, err := s.states.SetStatusIfClaimed(ctx, itemID, userID, st)
	if err != nil {
		return "", fmt.Errorf("service.ItemService.SetStatus: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("service.ItemService.SetStatus: %w: you must claim this item before changing its status", domain.ErrForbidden)
	}
	return st, nil
}
