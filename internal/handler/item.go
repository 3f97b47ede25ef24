package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/BorgesHen/MochilaOk/internal/domain"
	"github.com/BorgesHen/MochilaOk/internal/service"
)

type createItemRequest struct {
	CategoryID openapi_types.UUID `json:"category_id" validate:"required"`
	Title      string             `json:"title" validate:"required"`
	Qty        *float64           `json:"qty" validate:"omitempty,gte=0"`
	Unit       *string            `json:"unit"`
	Notes      *string            `json:"notes"`
}

type claimRequest struct {
	Claimed *bool `json:"claimed" validate:"required"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type itemResponse struct {
	ID            openapi_types.UUID `json:"id"`
	DestinationID openapi_types.UUID `json:"destination_id"`
	CategoryID    openapi_types.UUID `json:"category_id"`
	Title         string             `json:"title"`
	Qty           *float64           `json:"qty,omitempty"`
	Unit          *string            `json:"unit,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	CreatedBy     openapi_types.UUID `json:"created_by"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type itemViewResponse struct {
	itemResponse
	CategoryName string              `json:"category_name"`
	CategoryMode string              `json:"category_mode"`
	MyStatus     string              `json:"my_status"`
	MyClaimed    bool                `json:"my_claimed"`
	ClaimedBy    *openapi_types.UUID `json:"claimed_by"`
}

type claimResponse struct {
	OK      bool `json:"ok"`
	Claimed bool `json:"claimed"`
}

type statusResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

// ListItems handles GET /destinations/{id}/items.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, destID, ok := s.callerAndPathID(w, r)
	if !ok {
		return
	}

	list, err := s.svc.Items.List(r.Context(), userID, destID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]itemViewResponse, len(list))
	for i, v := range list {
		out[i] = itemViewResponse{
			itemResponse: itemToResponse(v.Item),
			CategoryName: v.CategoryName,
			CategoryMode: string(v.CategoryMode),
			MyStatus:     string(v.Mine.Status),
			MyClaimed:    v.Mine.Claimed,
			ClaimedBy:    v.ClaimedBy,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateItem handles POST /destinations/{id}/items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID, destID, ok := s.callerAndPathID(w, r)
	if !ok {
		return
	}
	var req createItemRequest
	if !s.decode(w, r, &req) {
		return
	}

	created, err := s.svc.Items.Create(r.Context(), userID, destID, service.NewItem{
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Qty:        req.Qty,
		Unit:       derefString(req.Unit),
		Notes:      derefString(req.Notes),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, itemToResponse(created))
}

// SetItemClaim handles PATCH /items/{id}/claim.
func (s *Server) SetItemClaim(w http.ResponseWriter, r *http.Request) {
	userID, itemID, ok := s.callerAndPathID(w, r)
	if !ok {
		return
	}
	var req claimRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.svc.Items.SetClaimed(r.Context(), userID, itemID, *req.Claimed); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, claimResponse{OK: true, Claimed: *req.Claimed})
}

// SetItemStatus handles PATCH /items/{id}/status.
func (s *Server) SetItemStatus(w http.ResponseWriter, r *http.Request) {
	userID, itemID, ok := s.callerAndPathID(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !s.decode(w, r, &req) {
		return
	}

	st, err := s.svc.Items.SetStatus(r.Context(), userID, itemID, req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{OK: true, Status: string(st)})
}

func itemToResponse(it domain.Item) itemResponse {
	return itemResponse{
		ID:            it.ID,
		DestinationID: it.DestinationID,
		CategoryID:    it.CategoryID,
		Title:         it.Title,
		Qty:           it.Qty,
		Unit:          optionalString(it.Unit),
		Notes:         optionalString(it.Notes),
		CreatedBy:     it.CreatedBy,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
