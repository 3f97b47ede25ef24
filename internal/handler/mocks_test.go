package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/BorgesHen/MochilaOk/internal/auth"
	"github.com/BorgesHen/MochilaOk/internal/domain"
	"github.com/BorgesHen/MochilaOk/internal/handler"
	"github.com/BorgesHen/MochilaOk/internal/service"
)

// Test doubles for the handler.*Servicer interfaces.
// Set only the method fields your test needs.

type mockAuthServicer struct {
	register func(ctx context.Context, name, email, password string) (domain.User, string, error)
	login    func(ctx context.Context, email, password string) (domain.User, string, error)
	me       func(ctx context.Context, userID uuid.UUID) (domain.User, error)
}

func (m *mockAuthServicer) Register(ctx context.Context, name, email, password string) (domain.User, string, error) {
	return m.register(ctx, name, email, password)
}
func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	return m.login(ctx, email, password)
}
func (m *mockAuthServicer) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	return m.me(ctx, userID)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

type mockDestinationServicer struct {
	create    func(ctx context.Context, ownerID uuid.UUID, d domain.Destination) (domain.Destination, error)
	list      func(ctx context.Context, userID uuid.UUID) ([]domain.DestinationSummary, error)
	get       func(ctx context.Context, userID, destinationID uuid.UUID) (domain.DestinationDetail, error)
	addMember func(ctx context.Context, actorID, destinationID uuid.UUID, email string, role domain.Role) (domain.Member, error)
}

func (m *mockDestinationServicer) Create(ctx context.Context, ownerID uuid.UUID, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, ownerID, d)
}
func (m *mockDestinationServicer) List(ctx context.Context, userID uuid.UUID) ([]domain.DestinationSummary, error) {
	return m.list(ctx, userID)
}
func (m *mockDestinationServicer) Get(ctx context.Context, userID, destinationID uuid.UUID) (domain.DestinationDetail, error) {
	return m.get(ctx, userID, destinationID)
}
func (m *mockDestinationServicer) AddMember(ctx context.Context, actorID, destinationID uuid.UUID, email string, role domain.Role) (domain.Member, error) {
	return m.addMember(ctx, actorID, destinationID, email, role)
}

var _ handler.DestinationServicer = (*mockDestinationServicer)(nil)

type mockCategoryServicer struct {
	create func(ctx context.Context, userID, destinationID uuid.UUID, in service.NewCategory) (domain.Category, error)
	list   func(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.Category, error)
}

func (m *mockCategoryServicer) Create(ctx context.Context, userID, destinationID uuid.UUID, in service.NewCategory) (domain.Category, error) {
	return m.create(ctx, userID, destinationID, in)
}
func (m *mockCategoryServicer) List(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.Category, error) {
	return m.list(ctx, userID, destinationID)
}

var _ handler.CategoryServicer = (*mockCategoryServicer)(nil)

type mockItemServicer struct {
	create     func(ctx context.Context, userID, destinationID uuid.UUID, in service.NewItem) (domain.Item, error)
	list       func(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.ItemView, error)
	setClaimed func(ctx context.Context, userID, itemID uuid.UUID, claimed bool) error
	setStatus  func(ctx context.Context, userID, itemID uuid.UUID, status string) (domain.ItemStatus, error)
}

func (m *mockItemServicer) Create(ctx context.Context, userID, destinationID uuid.UUID, in service.NewItem) (domain.Item, error) {
	return m.create(ctx, userID, destinationID, in)
}
func (m *mockItemServicer) List(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.ItemView, error) {
	return m.list(ctx, userID, destinationID)
}
func (m *mockItemServicer) SetClaimed(ctx context.Context, userID, itemID uuid.UUID, claimed bool) error {
	return m.setClaimed(ctx, userID, itemID, claimed)
}
func (m *mockItemServicer) SetStatus(ctx context.Context, userID, itemID uuid.UUID, status string) (domain.ItemStatus, error) {
	return m.setStatus(ctx, userID, itemID, status)
}

var _ handler.ItemServicer = (*mockItemServicer)(nil)

type mockTripTypeServicer struct {
	list func(ctx context.Context) ([]domain.TripType, error)
}

func (m *mockTripTypeServicer) List(ctx context.Context) ([]domain.TripType, error) {
	return m.list(ctx)
}

var _ handler.TripTypeServicer = (*mockTripTypeServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, userID, destinationID)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// ---- helpers ---------------------------------------------------------------

// asUser stands in for the JWT middleware: every request is authenticated as id.
func asUser(id uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), id)))
		})
	}
}

// newHTTPHandler wires a Server with the given services into its chi router,
// the same way main.go does, authenticated as user.
func newHTTPHandler(svc handler.Services, user uuid.UUID) http.Handler {
	srv := handler.NewServer(svc, []byte("openapi: 3.0.3\n"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return srv.Routes(asUser(user))
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// do sends one request through h and returns the recorder.
func do(h http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}
