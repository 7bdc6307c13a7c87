package controllers

import (
	"net/http"
)

// PageController serves the static pages and the health check
type PageController struct {
	*Base
	ping func() error
}

// NewPageController creates a new PageController. ping reports database health.
func NewPageController(base *Base, ping func() error) *PageController {
	return &PageController{Base: base, ping: ping}
}

func (pc *PageController) About(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, http.StatusOK, "about", pc.page(r, "About"))
}

func (pc *PageController) Contact(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, http.StatusOK, "contact", pc.page(r, "Contact"))
}

// Health answers 200 when the database is reachable and 503 otherwise.
func (pc *PageController) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if pc.ping != nil {
		if err := pc.ping(); err != nil {
			pc.Log.WithError(err).Error("health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("unavailable\n"))
			return
		}
	}
	w.Write([]byte("ok\n"))
}
