package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type tripTypeResponse struct {
	ID        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	Slug      string             `json:"slug"`
	CreatedAt time.Time          `json:"created_at"`
}

// ListTripTypes handles GET /trip-types.
func (s *Server) ListTripTypes(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.TripTypes.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]tripTypeResponse, len(list))
	for i, t := range list {
		out[i] = tripTypeResponse{ID: t.ID, Name: t.Name, Slug: t.Slug, CreatedAt: t.CreatedAt}
	}
	writeJSON(w, http.StatusOK, out)
}
