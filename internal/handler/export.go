// export.go implements GET /destinations/{id}/export.
// Returns the packing list of one destination as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).

package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"

	"github.com/BorgesHen/MochilaOk/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"category", "mode", "item", "qty", "unit", "notes",
	"claimed_by", "my_status", "my_claimed",
}

type exportRowResponse struct {
	Category  string  `json:"category"`
	Mode      string  `json:"mode"`
	Item      string  `json:"item"`
	Qty       *string `json:"qty,omitempty"`
	Unit      *string `json:"unit,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	ClaimedBy *string `json:"claimed_by,omitempty"`
	MyStatus  string  `json:"my_status"`
	MyClaimed bool    `json:"my_claimed"`
}

// GetExport handles GET /destinations/{id}/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	userID, destID, ok := s.callerAndPathID(w, r)
	if !ok {
		return
	}

	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid format parameter", domain.ErrValidation))
		return
	}
	if format != nil && *format != "csv" && *format != "json" {
		s.writeError(w, r, fmt.Errorf("%w: format must be csv or json", domain.ErrValidation))
		return
	}

	rows, err := s.svc.Export.Export(r.Context(), userID, destID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if format != nil && *format == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]exportRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes domain rows as CSV with a header row.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="packing-list.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// domainRowToResponse maps a domain.ExportRow to its JSON shape.
// Fields that are empty strings become nil pointers (omitempty in JSON).
func domainRowToResponse(r domain.ExportRow) exportRowResponse {
	return exportRowResponse{
		Category:  r.CategoryName,
		Mode:      string(r.CategoryMode),
		Item:      r.ItemTitle,
		Qty:       optionalString(r.Qty),
		Unit:      optionalString(r.Unit),
		Notes:     optionalString(r.Notes),
		ClaimedBy: optionalString(r.ClaimedBy),
		MyStatus:  string(r.MyStatus),
		MyClaimed: r.MyClaimed,
	}
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.CategoryName,
		string(r.CategoryMode),
		r.ItemTitle,
		r.Qty,
		r.Unit,
		r.Notes,
		r.ClaimedBy,
		string(r.MyStatus),
		strconv.FormatBool(r.MyClaimed),
	}
}
