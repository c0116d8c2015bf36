package http

import (
	"bytes"
	"net/http"
	"time"

	"github.com/couchcryptid/outage-listing-service/internal/domain"
)

type filtersResponse struct {
	Province string `json:"province,omitempty"`
	Sector   string `json:"sector,omitempty"`
	Date     string `json:"date,omitempty"`
	Company  string `json:"company,omitempty"`
}

type listingResponse struct {
	Title      string            `json:"title"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
	Total      int               `json:"total"`
	Filters    filtersResponse   `json:"filters"`
	Sectors    []string          `json:"sectors"`
	Outages    []domain.Outage   `json:"outages"`
	Rows       []row             `json:"rows"`
	Pagination domain.Pagination `json:"pagination"`
	Message    string            `json:"message,omitempty"`
	LoadedAt   *time.Time        `json:"loaded_at,omitempty"`
	Origin     string            `json:"origin"`
}

type provinceResponse struct {
	Name    string   `json:"name"`
	Slug    string   `json:"slug"`
	Sectors []string `json:"sectors"`
}

// handleListing serves one resolved listing page as JSON. Query parameters
// never produce a client error; malformed values fall back to defaults.
func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	q := domain.ParseQuery(r.URL.Query())
	view := s.catalog.Query(q)
	snap := s.catalog.Snapshot()

	resp := listingResponse{
		Title:      view.Title,
		Page:       view.Result.Page,
		PageSize:   view.Result.PageSize,
		TotalPages: view.Result.TotalPages,
		Total:      view.Result.Total(),
		Filters: filtersResponse{
			Province: view.Result.Province,
			Sector:   q.Sector,
			Date:     q.Date,
			Company:  q.Company,
		},
		Sectors:    nonNil(view.Result.Sectors),
		Outages:    view.Result.Window,
		Rows:       buildRows(view.Result.Window),
		Pagination: view.Pagination,
		Origin:     string(snap.Origin),
	}
	if view.Result.Empty() {
		resp.Message = noResultsMessage
	}
	if !snap.LoadedAt.IsZero() {
		loadedAt := snap.LoadedAt
		resp.LoadedAt = &loadedAt
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleProvinces serves the province-sector index for selector population.
func (s *Server) handleProvinces(w http.ResponseWriter, _ *http.Request) {
	idx := s.catalog.Snapshot().Index

	provinces := idx.Provinces()
	resp := make([]provinceResponse, 0, len(provinces))
	for _, p := range provinces {
		resp = append(resp, provinceResponse{
			Name:    p,
			Slug:    domain.EncodeProvince(p),
			Sectors: idx.Sectors(p),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleListingPage renders the HTML listing.
func (s *Server) handleListingPage(w http.ResponseWriter, r *http.Request) {
	q := domain.ParseQuery(r.URL.Query())
	page := newListingPage(r.URL.Path, q, s.catalog.Query(q), s.catalog.Snapshot().Index)

	var buf bytes.Buffer
	if err := listingTemplate.Execute(&buf, page); err != nil {
		s.logger.Error("render listing page failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
