package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/BorgesHen/MochilaOk/internal/domain"
	"github.com/BorgesHen/MochilaOk/internal/service"
)

type createCategoryRequest struct {
	Name      string `json:"name" validate:"required"`
	Mode      string `json:"mode" validate:"required,oneof=PER_USER CLAIMABLE"`
	SortOrder *int   `json:"sort_order"`
}

type categoryResponse struct {
	ID            openapi_types.UUID `json:"id"`
	DestinationID openapi_types.UUID `json:"destination_id"`
	Name          string             `json:"name"`
	Mode          string             `json:"mode"`
	SortOrder     int                `json:"sort_order"`
	CreatedAt     time.Time          `json:"created_at"`
}

// ListCategories handles GET /destinations/{id}/categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, destID, ok := s.callerAndPathID(w, r)
	if !ok {
		return
	}

	list, err := s.svc.Categories.List(r.Context(), userID, destID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]categoryResponse, len(list))
	for i, c := range list {
		out[i] = categoryToResponse(c)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateCategory handles POST /destinations/{id}/categories.
func (s *Server) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, destID, ok := s.callerAndPathID(w, r)
	if !ok {
		return
	}
	var req createCategoryRequest
	if !s.decode(w, r, &req) {
		return
	}

	in := service.NewCategory{Name: req.Name, Mode: req.Mode}
	if req.SortOrder != nil {
		in.SortOrder = *req.SortOrder
	}
	created, err := s.svc.Categories.Create(r.Context(), userID, destID, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, categoryToResponse(created))
}

func categoryToResponse(c domain.Category) categoryResponse {
	return categoryResponse{
		ID:            c.ID,
		DestinationID: c.DestinationID,
		Name:          c.Name,
		Mode:          string(c.Mode),
		SortOrder:     c.SortOrder,
		CreatedAt:     c.CreatedAt,
	}
}
