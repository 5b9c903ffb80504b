// Package web serves a localhost-only single-user review UI; it
// intentionally has no auth/CSRF protection in this mode.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gomite/mite"
	"gomite/worktime"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	client   mite.Client
	source   worktime.HolidaySource
	schedule worktime.WeekSchedule
	mux      *http.ServeMux
	now      func() time.Time
}

func NewServer(client mite.Client, source worktime.HolidaySource, schedule worktime.WeekSchedule) http.Handler {
	server := &Server{
		client:   client,
		source:   source,
		schedule: schedule,
		now:      time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleIndex)
	mux.HandleFunc("GET /review/{year}", server.handleReview)
	mux.HandleFunc("GET /api/review/{year}", server.handleAPIReview)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	target := fmt.Sprintf("/review/%d", s.now().Year())
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	view, status, err := s.buildReview(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}
	if err := renderTemplate(w, "review.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleAPIReview(w http.ResponseWriter, r *http.Request) {
	view, status, err := s.buildReview(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) buildReview(r *http.Request) (ReviewView, int, error) {
	year, err := parseYear(r.PathValue("year"))
	if err != nil {
		return ReviewView{}, http.StatusBadRequest, fmt.Errorf("invalid year (expected YYYY)")
	}

	period, err := reviewPeriod(year, s.now())
	if err != nil {
		return ReviewView{}, http.StatusBadRequest, err
	}

	entries, err := s.client.ListEntries(r.Context(), period.From, period.To)
	if err != nil {
		return ReviewView{}, http.StatusBadGateway, fmt.Errorf("load time entries: %w", err)
	}

	result := worktime.Reconcile(r.Context(), s.source, period, s.schedule, entries, s.now())
	return BuildReviewView(year, period, s.schedule, entries, result), http.StatusOK, nil
}

func parseYear(value string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	if year < 2000 || year > 2200 {
		return 0, fmt.Errorf("year out of range")
	}
	return year, nil
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
