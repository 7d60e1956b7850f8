package server

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/umputun/newsnearme/pkg/dashboard"
	"github.com/umputun/newsnearme/pkg/domain"
)

// template names
const (
	templatePage      = "page"
	templateDashboard = "dashboard"
)

// indexHandler starts a new dashboard session, runs the bootstrap calls and renders the full page
func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.Delete(c.Value)
	}

	id, store := s.sessions.New()
	st := s.loader.Bootstrap(r.Context(), store)
	http.SetCookie(w, s.newSessionCookie(id))

	s.render(w, r, templatePage, st)
}

// serviceHandler performs one service call and renders the updated dashboard
func (s *Server) serviceHandler(w http.ResponseWriter, r *http.Request) {
	id := domain.ServiceID(r.PathValue("id"))
	if _, ok := domain.LookupService(id); !ok {
		s.respondWithError(w, http.StatusNotFound, "Unknown service", fmt.Errorf("%w: %q", dashboard.ErrUnknownService, id))
		return
	}
	if err := r.ParseForm(); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	store := s.session(w, r)
	req := dashboard.Request{Service: id, City: r.FormValue("city"), Country: r.FormValue("country")}
	st, err := s.dispatcher.Dispatch(r.Context(), store, req)
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to call service", err)
		return
	}

	s.render(w, r, templateDashboard, st)
}

// searchHandler applies limit and category from the form and runs the news search
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	store := s.session(w, r)
	if !s.applyFilters(w, r, store) {
		return
	}

	st, err := s.dispatcher.Search(r.Context(), store)
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to search news", err)
		return
	}
	s.render(w, r, templateDashboard, st)
}

// filtersHandler applies limit and category from the form without searching
func (s *Server) filtersHandler(w http.ResponseWriter, r *http.Request) {
	store := s.session(w, r)
	if !s.applyFilters(w, r, store) {
		return
	}
	s.render(w, r, templateDashboard, store.State())
}

// toggleCategoryHandler selects the clicked tag or deselects it if it is already selected
func (s *Server) toggleCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	store := s.session(w, r)
	st, err := store.Apply(dashboard.Action{Type: dashboard.ActCategoryToggled, Category: r.FormValue("category")})
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid category", err)
		return
	}
	s.render(w, r, templateDashboard, st)
}

// dismissResponseHandler closes the raw response panel
func (s *Server) dismissResponseHandler(w http.ResponseWriter, r *http.Request) {
	store := s.session(w, r)
	st, err := store.Apply(dashboard.Action{Type: dashboard.ActResponseDismissed})
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to update state", err)
		return
	}
	s.render(w, r, templateDashboard, st)
}

// applyFilters sets limit and category from form values. Missing values keep the current ones.
// Returns false if the error response was already written.
func (s *Server) applyFilters(w http.ResponseWriter, r *http.Request, store *dashboard.Store) bool {
	if err := r.ParseForm(); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid form data", err)
		return false
	}

	var actions []dashboard.Action
	if v := strings.TrimSpace(r.FormValue("limit")); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			s.respondWithError(w, http.StatusBadRequest, "Invalid limit", fmt.Errorf("%w: %q", dashboard.ErrInvalidLimit, v))
			return false
		}
		actions = append(actions, dashboard.Action{Type: dashboard.ActLimitSelected, Limit: limit})
	}
	if r.Form.Has("category") {
		actions = append(actions, dashboard.Action{Type: dashboard.ActCategorySelected, Category: r.FormValue("category")})
	}

	if _, err := store.Apply(actions...); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid filters", err)
		return false
	}
	return true
}

// session returns the store of the request's session. A missing or expired session is replaced
// by a new bootstrapped one.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *dashboard.Store {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if store, ok := s.sessions.Get(c.Value); ok {
			return store
		}
	}

	id, store := s.sessions.New()
	log.Printf("[DEBUG] new session %s", id)
	s.loader.Bootstrap(r.Context(), store)
	http.SetCookie(w, s.newSessionCookie(id))
	return store
}

func (s *Server) newSessionCookie(id string) *http.Cookie {
	cfg := s.config.GetFullConfig()
	return &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cfg.Server.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   strings.HasPrefix(cfg.Server.BaseURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	}
}

// render executes the named template for the state. The place inputs are not part of the state,
// submitted values are rendered back so a dashboard swap keeps them.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, st dashboard.State) {
	cfg := s.config.GetFullConfig()
	view := buildPageView(st, s.policy, cfg.UI.Title, s.version)
	view.City = strings.TrimSpace(r.PostFormValue("city"))
	view.Country = strings.TrimSpace(r.PostFormValue("country"))

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, view); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to render page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[WARN] failed to write %s: %v", name, err)
	}
}

// respondWithError logs the error and sends a JSON error response
func (s *Server) respondWithError(w http.ResponseWriter, code int, msg string, err error) {
	if err != nil {
		log.Printf("[WARN] %s: %v", msg, err)
	}
	errMsg := msg
	if err != nil && code < http.StatusInternalServerError {
		errMsg = fmt.Sprintf("%s: %v", msg, err)
	}
	renderJSON(w, nil, code, map[string]string{"error": errMsg})
}
