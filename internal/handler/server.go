// Package handler implements the HTTP handlers for the MochilaOk API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, destination.go, item.go, etc.) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/BorgesHen/MochilaOk/internal/domain"
	"github.com/BorgesHen/MochilaOk/internal/service"
)

// The servicer interfaces below are defined here, in the consumer package,
// so handler tests can inject mocks without touching the database.

// AuthServicer defines the account operations.
type AuthServicer interface {
	Register(ctx context.Context, name, email, password string) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	Me(ctx context.Context, userID uuid.UUID) (domain.User, error)
}

// DestinationServicer defines the trip and membership operations.
type DestinationServicer interface {
	Create(ctx context.Context, ownerID uuid.UUID, d domain.Destination) (domain.Destination, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.DestinationSummary, error)
	Get(ctx context.Context, userID, destinationID uuid.UUID) (domain.DestinationDetail, error)
	AddMember(ctx context.Context, actorID, destinationID uuid.UUID, email string, role domain.Role) (domain.Member, error)
}

// CategoryServicer defines the category operations.
type CategoryServicer interface {
	Create(ctx context.Context, userID, destinationID uuid.UUID, in service.NewCategory) (domain.Category, error)
	List(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.Category, error)
}

// ItemServicer defines the item and item-state operations.
type ItemServicer interface {
	Create(ctx context.Context, userID, destinationID uuid.UUID, in service.NewItem) (domain.Item, error)
	List(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.ItemView, error)
	SetClaimed(ctx context.Context, userID, itemID uuid.UUID, claimed bool) error
	SetStatus(ctx context.Context, userID, itemID uuid.UUID, status string) (domain.ItemStatus, error)
}

// TripTypeServicer lists trip types.
type TripTypeServicer interface {
	List(ctx context.Context) ([]domain.TripType, error)
}

// ExportServicer builds the packing-list export.
type ExportServicer interface {
	Export(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.ExportRow, error)
}

// Pinger reports whether the database is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services groups every dependency the handlers call into.
type Services struct {
	Auth         AuthServicer
	Destinations DestinationServicer
	Categories   CategoryServicer
	Items        ItemServicer
	TripTypes    TripTypeServicer
	Export       ExportServicer
	DB           Pinger
}

// Server holds the handlers' dependencies.
type Server struct {
	svc      Services
	openAPI  []byte
	log      *slog.Logger
	validate *validator.Validate
}

// NewServer constructs the Server. openAPI is served verbatim at /openapi.yaml.
func NewServer(svc Services, openAPI []byte, log *slog.Logger) *Server {
	return &Server{svc: svc, openAPI: openAPI, log: log, validate: newValidator()}
}

// Routes builds the API router. requireAuth guards every route except
// health, docs, register and login.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method_not_allowed", "method not allowed"))
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Post("/auth/register", s.Register)
	r.Post("/auth/login", s.Login)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/auth/me", s.Me)
		r.Get("/trip-types", s.ListTripTypes)

		r.Route("/destinations", func(r chi.Router) {
			r.Get("/", s.ListDestinations)
			r.Post("/", s.CreateDestination)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetDestination)
				r.Post("/members", s.AddMember)
				r.Get("/categories", s.ListCategories)
				r.Post("/categories", s.CreateCategory)
				r.Get("/items", s.ListItems)
				r.Post("/items", s.CreateItem)
				r.Get("/export", s.GetExport)
			})
		})

		r.Patch("/items/{id}/claim", s.SetItemClaim)
		r.Patch("/items/{id}/status", s.SetItemStatus)
	})
	return r
}
