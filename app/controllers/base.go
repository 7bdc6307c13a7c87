package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"quill/app/auth"
	"quill/app/metrics"
	"quill/app/models"
	"quill/app/repositories"
	"quill/app/services"
	"quill/app/views"
)

// Base carries what every controller needs to render pages and answer errors.
type Base struct {
	Views    *views.Renderer
	Sessions *auth.Manager
	Users    *services.UserService
	Log      *logrus.Logger
	Metrics  *metrics.Metrics
}

// page prepares the data shared by every template: the current user, whether they
// administer the blog, and any pending flash messages.
func (b *Base) page(r *http.Request, title string) *views.Page {
	p := &views.Page{Title: title}

	if user := auth.CurrentUser(r.Context()); user != nil {
		p.CurrentUser = user
		isAdmin, err := b.Users.IsAdmin(user)
		if err != nil {
			b.Log.WithError(err).Error("failed to check administrator")
		}
		p.IsAdmin = isAdmin
	}

	flashes, err := b.Sessions.PopFlashes(r)
	if err != nil {
		b.Log.WithError(err).Warn("failed to read flash messages")
	}
	p.Flashes = flashes
	return p
}

func (b *Base) render(w http.ResponseWriter, r *http.Request, status int, name string, p *views.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := b.Views.Render(w, name, p); err != nil {
		b.Log.WithError(err).WithField("template", name).Error("template error")
	}
}

// sendError renders the error page with a generic message for status.
func (b *Base) sendError(w http.ResponseWriter, r *http.Request, status int) {
	p := b.page(r, http.StatusText(status))
	p.Status = status
	p.Message = errorMessage(status)
	b.render(w, r, status, "error", p)
}

// handleError maps a service error onto an HTTP status.
func (b *Base) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		b.sendError(w, r, http.StatusNotFound)
		return
	}
	b.Log.WithError(err).WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error("request failed")
	b.sendError(w, r, http.StatusInternalServerError)
}

// Deny answers a request a guard rejected.
func (b *Base) Deny(w http.ResponseWriter, r *http.Request, status int, err error) {
	if err != nil {
		b.Log.WithError(err).WithField("path", r.URL.Path).Error("guard failed")
	}
	b.sendError(w, r, status)
}

// NotFound renders the 404 page for unknown routes.
func (b *Base) NotFound(w http.ResponseWriter, r *http.Request) {
	b.sendError(w, r, http.StatusNotFound)
}

func (b *Base) flashRedirect(w http.ResponseWriter, r *http.Request, msg, to string) {
	if err := b.Sessions.AddFlash(w, r, msg); err != nil {
		b.Log.WithError(err).Error("failed to add flash")
	}
	http.Redirect(w, r, to, http.StatusFound)
}

func errorMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return "The page you are looking for does not exist."
	case http.StatusForbidden:
		return "You are not allowed to do that."
	default:
		return "Something went wrong on our side."
	}
}

func formErrors(err error) (models.FormErrors, bool) {
	var ferrs models.FormErrors
	ok := errors.As(err, &ferrs)
	return ferrs, ok
}

func idVar(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func postPath(id uint) string {
	return "/post/" + strconv.FormatUint(uint64(id), 10)
}
