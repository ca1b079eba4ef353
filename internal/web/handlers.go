package web

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/PriceSort/internal/core"
	"github.com/JonMunkholm/PriceSort/internal/logging"
	"github.com/JonMunkholm/PriceSort/internal/web/templates"
)

// itemsResponse is the JSON body of GET /api/items.
type itemsResponse struct {
	Count int         `json:"count"`
	Items []core.Item `json:"items"`
}

// lookup parses the request and runs the filter, recording the outcome.
func (s *Server) lookup(r *http.Request) (core.Query, []core.Item, error) {
	q, err := parseLookup(r)
	if err != nil {
		s.metrics.countLookup(0, err)
		return q, nil, err
	}

	items, err := core.Filter(s.list, q)
	s.metrics.countLookup(len(items), err)
	if err != nil {
		return q, nil, err
	}

	logging.FromContext(r.Context()).Debug("lookup",
		"price", q.Price,
		"target", q.Target,
		"category", q.Category,
		"state", q.State,
		"matches", len(items),
	)
	return q, items, nil
}

// handleIndex renders the search page with results for the current query.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q, items, err := s.lookup(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if isHTMX(r) {
		if err := templates.Results(items).Render(r.Context(), w); err != nil {
			logging.FromContext(r.Context()).Error("render results", "error", err)
		}
		return
	}
	if err := templates.Page(q, items).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// handleItems returns matching items as JSON.
func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	_, items, err := s.lookup(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, r, itemsResponse{Count: len(items), Items: items})
}

// handleSortedCSV streams the sorted price list in the same format the
// sort command writes to disk. A list that could not be sorted is refused
// with the row error instead of being served in file order.
func (s *Server) handleSortedCSV(w http.ResponseWriter, r *http.Request) {
	if !s.list.Sorted {
		if err := s.list.CheckKeys(); err != nil {
			s.respondError(w, r, err, http.StatusUnprocessableEntity)
			return
		}
	}

	var buf bytes.Buffer
	if err := core.Write(&buf, s.list); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sorted_prices.csv"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.FromContext(r.Context()).Warn("write csv", "error", err)
	}
}

// handleHealth reports liveness, the loaded row count, and whether the
// list could be sorted.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]any{"status": "ok", "items": s.list.Len(), "sorted": s.list.Sorted})
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode", "error", err)
	}
}
