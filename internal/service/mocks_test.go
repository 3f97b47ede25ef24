package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/BorgesHen/MochilaOk/internal/domain"
	"github.com/BorgesHen/MochilaOk/internal/repo"
	"github.com/BorgesHen/MochilaOk/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones your test needs; calling an unset one panics, which fails the test.

type mockUserRepo struct {
	create     func(ctx context.Context, u domain.User) (domain.User, error)
	getByEmail func(ctx context.Context, email string) (domain.User, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockDestinationRepo struct {
	create            func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	getWithMembership func(ctx context.Context, destinationID, userID uuid.UUID) (domain.Destination, *domain.Role, error)
	listAccessible    func(ctx context.Context, userID uuid.UUID) ([]domain.DestinationSummary, error)
	listMembers       func(ctx context.Context, destinationID uuid.UUID) ([]domain.Member, error)
	addMember         func(ctx context.Context, destinationID, userID uuid.UUID, role domain.Role) (domain.Member, error)
}

func (m *mockDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, d)
}
func (m *mockDestinationRepo) GetWithMembership(ctx context.Context, destinationID, userID uuid.UUID) (domain.Destination, *domain.Role, error) {
	return m.getWithMembership(ctx, destinationID, userID)
}
func (m *mockDestinationRepo) ListAccessible(ctx context.Context, userID uuid.UUID) ([]domain.DestinationSummary, error) {
	return m.listAccessible(ctx, userID)
}
func (m *mockDestinationRepo) ListMembers(ctx context.Context, destinationID uuid.UUID) ([]domain.Member, error) {
	return m.listMembers(ctx, destinationID)
}
func (m *mockDestinationRepo) AddMember(ctx context.Context, destinationID, userID uuid.UUID, role domain.Role) (domain.Member, error) {
	return m.addMember(ctx, destinationID, userID, role)
}

var _ repo.DestinationRepo = (*mockDestinationRepo)(nil)

type mockCategoryRepo struct {
	create  func(ctx context.Context, c domain.Category) (domain.Category, error)
	getByID func(ctx context.Context, destinationID, categoryID uuid.UUID) (domain.Category, error)
	list    func(ctx context.Context, destinationID uuid.UUID) ([]domain.Category, error)
}

func (m *mockCategoryRepo) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	return m.create(ctx, c)
}
func (m *mockCategoryRepo) GetByID(ctx context.Context, destinationID, categoryID uuid.UUID) (domain.Category, error) {
	return m.getByID(ctx, destinationID, categoryID)
}
func (m *mockCategoryRepo) List(ctx context.Context, destinationID uuid.UUID) ([]domain.Category, error) {
	return m.list(ctx, destinationID)
}

var _ repo.CategoryRepo = (*mockCategoryRepo)(nil)

type mockItemRepo struct {
	create      func(ctx context.Context, item domain.Item) (domain.Item, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Item, error)
	listForUser func(ctx context.Context, destinationID, userID uuid.UUID) ([]domain.ItemView, error)
}

func (m *mockItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	return m.create(ctx, item)
}
func (m *mockItemRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Item, error) {
	return m.getByID(ctx, id)
}
func (m *mockItemRepo) ListForUser(ctx context.Context, destinationID, userID uuid.UUID) ([]domain.ItemView, error) {
	return m.listForUser(ctx, destinationID, userID)
}

var _ repo.ItemRepo = (*mockItemRepo)(nil)

type mockItemStateRepo struct {
	claim              func(ctx context.Context, itemID, userID uuid.UUID) error
	unclaim            func(ctx context.Context, itemID, userID uuid.UUID) error
	upsertStatus       func(ctx context.Context, itemID, userID uuid.UUID, status domain.ItemStatus) error
	setStatusIfClaimed func(ctx context.Context, itemID, userID uuid.UUID, status domain.ItemStatus) (bool, error)
}

func (m *mockItemStateRepo) Claim(ctx context.Context, itemID, userID uuid.UUID) error {
	return m.claim(ctx, itemID, userID)
}
func (m *mockItemStateRepo) Unclaim(ctx context.Context, itemID, userID uuid.UUID) error {
	return m.unclaim(ctx, itemID, userID)
}
func (m *mockItemStateRepo) UpsertStatus(ctx context.Context, itemID, userID uuid.UUID, status domain.ItemStatus) error {
	return m.upsertStatus(ctx, itemID, userID, status)
}
func (m *mockItemStateRepo) SetStatusIfClaimed(ctx context.Context, itemID, userID uuid.UUID, status domain.ItemStatus) (bool, error) {
	return m.setStatusIfClaimed(ctx, itemID, userID, status)
}

var _ repo.ItemStateRepo = (*mockItemStateRepo)(nil)

type mockTripTypeRepo struct {
	list func(ctx context.Context) ([]domain.TripType, error)
}

func (m *mockTripTypeRepo) List(ctx context.Context) ([]domain.TripType, error) {
	return m.list(ctx)
}

var _ repo.TripTypeRepo = (*mockTripTypeRepo)(nil)

type mockAuthorizer struct {
	authorizeDestination func(ctx context.Context, userID, destinationID uuid.UUID) (domain.DestinationAccess, error)
	authorizeItem        func(ctx context.Context, userID, itemID uuid.UUID) (domain.ItemAccess, error)
}

func (m *mockAuthorizer) AuthorizeDestination(ctx context.Context, userID, destinationID uuid.UUID) (domain.DestinationAccess, error) {
	return m.authorizeDestination(ctx, userID, destinationID)
}
func (m *mockAuthorizer) AuthorizeItem(ctx context.Context, userID, itemID uuid.UUID) (domain.ItemAccess, error) {
	return m.authorizeItem(ctx, userID, itemID)
}

var _ service.Authorizer = (*mockAuthorizer)(nil)

// ---- helpers ---------------------------------------------------------------

// allowAs authorizes every destination request with the given role.
func allowAs(role domain.Role) *mockAuthorizer {
	return &mockAuthorizer{
		authorizeDestination: func(_ context.Context, _, destID uuid.UUID) (domain.DestinationAccess, error) {
			return domain.DestinationAccess{Destination: domain.Destination{ID: destID}, Role: role}, nil
		},
	}
}

// denyAll answers NotFound for everything, like a non-member would see.
func denyAll() *mockAuthorizer {
	return &mockAuthorizer{
		authorizeDestination: func(context.Context, uuid.UUID, uuid.UUID) (domain.DestinationAccess, error) {
			return domain.DestinationAccess{}, domain.ErrNotFound
		},
		authorizeItem: func(context.Context, uuid.UUID, uuid.UUID) (domain.ItemAccess, error) {
			return domain.ItemAccess{}, domain.ErrNotFound
		},
	}
}

// itemIn authorizes item requests against an item in a category of the given mode.
func itemIn(mode domain.CategoryMode) *mockAuthorizer {
	return &mockAuthorizer{
		authorizeItem: func(_ context.Context, _, itemID uuid.UUID) (domain.ItemAccess, error) {
			return domain.ItemAccess{
				Item: domain.Item{ID: itemID, CategoryMode: mode},
				Role: domain.RoleMember,
			}, nil
		},
	}
}

func rolePtr(r domain.Role) *domain.Role { return &r }
