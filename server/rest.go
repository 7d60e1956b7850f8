package server

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-pkgz/rest"

	"github.com/umputun/newsnearme/pkg/domain"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	apiCfg := s.config.GetFullConfig().API
	apiURL, err := apiCfg.BaseURL()
	if err != nil {
		apiURL = apiCfg.URL
	}
	status := map[string]any{
		"status":   "ok",
		"version":  s.version,
		"time":     time.Now().UTC(),
		"sessions": s.sessions.Count(),
		"api":      apiURL,
	}
	renderJSON(w, r, http.StatusOK, status)
}

// servicesHandler returns the service descriptors
func (s *Server) servicesHandler(w http.ResponseWriter, _ *http.Request) {
	rest.RenderJSON(w, domain.Services())
}

// stateHandler returns the state of the caller's session
func (s *Server) stateHandler(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		renderError(w, r, err, http.StatusNotFound)
		return
	}
	store, ok := s.sessions.Get(c.Value)
	if !ok {
		renderJSON(w, r, http.StatusNotFound, rest.JSON{"error": "session not found"})
		return
	}
	w.Header().Set("Last-Modified", store.Updated().UTC().Format(http.TimeFormat))
	renderJSON(w, r, http.StatusOK, store.State())
}

// renderJSON sends JSON response. Data is encoded before the header is written,
// so an encoding failure is reported as 500.
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	var buf bytes.Buffer
	if data != nil {
		if err := json.NewEncoder(&buf).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"can't encode response"}` + "\n"))
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[WARN] can't write JSON response: %v", err)
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
