package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/BorgesHen/MochilaOk/internal/domain"
)

type createDestinationRequest struct {
	Title      string              `json:"title" validate:"required"`
	Location   *string             `json:"location"`
	TripTypeID *openapi_types.UUID `json:"trip_type_id"`
	StartDate  *openapi_types.Date `json:"start_date"`
	EndDate    *openapi_types.Date `json:"end_date"`
	Status     string              `json:"status" validate:"omitempty,oneof=PLANNED ONGOING COMPLETED"`
}

type addMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=member owner"`
}

type destinationResponse struct {
	ID           openapi_types.UUID  `json:"id"`
	Title        string              `json:"title"`
	Location     *string             `json:"location,omitempty"`
	OwnerID      openapi_types.UUID  `json:"owner_id"`
	TripTypeID   *openapi_types.UUID `json:"trip_type_id,omitempty"`
	TripTypeName *string             `json:"trip_type_name,omitempty"`
	TripTypeSlug *string             `json:"trip_type_slug,omitempty"`
	StartDate    *openapi_types.Date `json:"start_date,omitempty"`
	EndDate      *openapi_types.Date `json:"end_date,omitempty"`
	Status       string              `json:"status"`
	MyRole       string              `json:"my_role,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type memberResponse struct {
	UserID   openapi_types.UUID `json:"user_id"`
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Role     string             `json:"role"`
	JoinedAt time.Time          `json:"joined_at"`
}

type destinationDetailResponse struct {
	Destination destinationResponse `json:"destination"`
	Members     []memberResponse    `json:"members"`
}

// ListDestinations handles GET /destinations.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.caller(w, r)
	if !ok {
		return
	}

	list, err := s.svc.Destinations.List(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]destinationResponse, len(list))
	for i, d := range list {
		out[i] = destinationToResponse(d.Destination, d.MyRole)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateDestination handles POST /destinations.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.caller(w, r)
	if !ok {
		return
	}
	var req createDestinationRequest
	if !s.decode(w, r, &req) {
		return
	}

	created, err := s.svc.Destinations.Create(r.Context(), userID, requestToDestination(req))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, destinationToResponse(created, domain.RoleOwner))
}

// GetDestination handles GET /destinations/{id}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	userID, destID, ok := s.callerAndPathID(w, r)
	if !ok {
		return
	}

	detail, err := s.svc.Destinations.Get(r.Context(), userID, destID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	members := make([]memberResponse, len(detail.Members))
	for i, m := range detail.Members {
		members[i] = memberToResponse(m)
	}
	writeJSON(w, http.StatusOK, destinationDetailResponse{
		Destination: destinationToResponse(detail.Destination, detail.MyRole),
		Members:     members,
	})
}

// AddMember handles POST /destinations/{id}/members.
func (s *Server) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, destID, ok := s.callerAndPathID(w, r)
	if !ok {
		return
	}
	var req addMemberRequest
	if !s.decode(w, r, &req) {
		return
	}

	m, err := s.svc.Destinations.AddMember(r.Context(), userID, destID, req.Email, domain.Role(req.Role))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, memberToResponse(m))
}

// --- mapping helpers --------------------------------------------------------

func requestToDestination(req createDestinationRequest) domain.Destination {
	d := domain.Destination{
		Title:      req.Title,
		Location:   derefString(req.Location),
		TripTypeID: req.TripTypeID,
		Status:     domain.DestinationStatus(req.Status),
	}
	if req.StartDate != nil {
		t := req.StartDate.Time
		d.StartDate = &t
	}
	if req.EndDate != nil {
		t := req.EndDate.Time
		d.EndDate = &t
	}
	return d
}

func destinationToResponse(d domain.Destination, role domain.Role) destinationResponse {
	resp := destinationResponse{
		ID:           d.ID,
		Title:        d.Title,
		Location:     optionalString(d.Location),
		OwnerID:      d.OwnerID,
		TripTypeID:   d.TripTypeID,
		TripTypeName: optionalString(d.TripTypeName),
		TripTypeSlug: optionalString(d.TripTypeSlug),
		Status:       string(d.Status),
		MyRole:       string(role),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.StartDate != nil {
		resp.StartDate = &openapi_types.Date{Time: *d.StartDate}
	}
	if d.EndDate != nil {
		resp.EndDate = &openapi_types.Date{Time: *d.EndDate}
	}
	return resp
}

func memberToResponse(m domain.Member) memberResponse {
	return memberResponse{
		UserID:   m.UserID,
		Name:     m.Name,
		Email:    m.Email,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	}
}
