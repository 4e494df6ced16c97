package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"bindery/internal/catalog"
	"bindery/internal/covers"
	"bindery/internal/logging"
	"bindery/internal/services"
)

// Cover state reported per catalog entry. "unknown" means no live cache
// entry exists and nothing has been resolved yet.
const (
	coverStateFound    = "found"
	coverStateNotFound = "not-found"
	coverStateUnknown  = "unknown"
)

type catalogEntry struct {
	catalog.Record
	Fingerprint string        `json:"fingerprint"`
	CoverState  string        `json:"cover_state"`
	Cover       *covers.Cover `json:"cover,omitempty"`
}

type catalogResponse struct {
	Total   int            `json:"total"`
	Records []catalogEntry `json:"records"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	records := s.catalog.Filter(query.Get("track"), query.Get("major"), query.Get("q"))

	entries := make([]catalogEntry, 0, len(records))
	for _, rec := range records {
		entry := catalogEntry{
			Record:      rec,
			Fingerprint: covers.FingerprintRecord(rec),
			CoverState:  coverStateUnknown,
		}
		if s.cache != nil {
			if cover, ok := s.cache.Get(r.Context(), entry.Fingerprint); ok {
				if cover != nil {
					entry.CoverState = coverStateFound
					entry.Cover = cover
				} else {
					entry.CoverState = coverStateNotFound
				}
			}
		}
		entries = append(entries, entry)
	}
	s.writeJSON(w, http.StatusOK, catalogResponse{Total: len(entries), Records: entries})
}

type majorsResponse struct {
	Track  string   `json:"track"`
	Majors []string `json:"majors"`
}

func (s *Server) handleMajors(w http.ResponseWriter, r *http.Request) {
	track := strings.TrimSpace(r.URL.Query().Get("track"))
	s.writeJSON(w, http.StatusOK, majorsResponse{
		Track:  track,
		Majors: s.catalog.Majors(track),
	})
}

type coverUpdate struct {
	Fingerprint string         `json:"fingerprint"`
	Record      catalog.Record `json:"record"`
	State       string         `json:"state"`
	Cover       *covers.Cover  `json:"cover,omitempty"`
}

type coversResponse struct {
	Budget  int           `json:"budget"`
	Total   int           `json:"total"`
	Updates []coverUpdate `json:"updates"`
}

func (s *Server) handleCovers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	budget := s.budget
	if raw := strings.TrimSpace(query.Get("budget")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid budget")
			return
		}
		budget = parsed
	}

	records := s.catalog.Filter(query.Get("track"), query.Get("major"), query.Get("q"))
	scheduler, err := covers.NewScheduler(s.resolver, budget, s.logger, s.metrics)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	updates := make([]coverUpdate, 0, len(records))
	err = scheduler.ResolveAll(r.Context(), records, func(u covers.Update) {
		updates = append(updates, coverUpdate{
			Fingerprint: u.Fingerprint,
			Record:      u.Record,
			State:       string(u.State),
			Cover:       u.Cover,
		})
	})
	if err != nil {
		// The client went away mid sweep. Whatever was resolved is already
		// cached, so the next request picks it up for free.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, coversResponse{Budget: budget, Total: len(records), Updates: updates})
}

type searchItem struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	ISBN      string `json:"isbn"`
	Image     string `json:"image"`
	Link      string `json:"link"`
}

type searchResponse struct {
	Query string       `json:"query"`
	Total int          `json:"total"`
	Items []searchItem `json:"items"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.searcher == nil {
		s.writeError(w, http.StatusServiceUnavailable, "search is not configured")
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "missing query")
		return
	}
	display := s.display
	if raw := strings.TrimSpace(r.URL.Query().Get("display")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid display")
			return
		}
		display = parsed
	}

	resp, err := s.searcher.Search(r.Context(), query, display)
	if err != nil {
		s.logger.Warn("search passthrough failed", logging.String("query", query), logging.Error(err))
		s.writeError(w, services.HTTPStatus(err), "search failed")
		return
	}

	items := make([]searchItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, searchItem{
			Title:     covers.StripMarkup(item.Title),
			Author:    covers.StripMarkup(item.Author),
			Publisher: covers.StripMarkup(item.Publisher),
			ISBN:      strings.TrimSpace(item.ISBN),
			Image:     strings.TrimSpace(item.Image),
			Link:      strings.TrimSpace(item.Link),
		})
	}
	s.writeJSON(w, http.StatusOK, searchResponse{Query: query, Total: resp.Total, Items: items})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": s.catalog.Len(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
