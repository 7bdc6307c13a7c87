package controllers

import (
	"errors"
	"net/http"

	"quill/app/models"
	"quill/app/services"
)

// AuthController handles registration, login and logout
type AuthController struct {
	*Base
}

// NewAuthController creates a new AuthController
func NewAuthController(base *Base) *AuthController {
	return &AuthController{Base: base}
}

// ShowRegister displays the registration form
func (ac *AuthController) ShowRegister(w http.ResponseWriter, r *http.Request) {
	p := ac.page(r, "Register")
	p.Form = &models.RegisterForm{}
	ac.render(w, r, http.StatusOK, "register", p)
}

// Register creates an account and logs the new user in
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ac.sendError(w, r, http.StatusBadRequest)
		return
	}
	form := &models.RegisterForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Name:     r.PostFormValue("name"),
	}

	user, err := ac.Users.Register(form)
	if errors.Is(err, services.ErrUserExists) {
		ac.flashRedirect(w, r, "User already exists. Please log in.", "/login")
		return
	}
	if ferrs, ok := formErrors(err); ok {
		p := ac.page(r, "Register")
		p.Form = form
		p.Errors = ferrs
		ac.render(w, r, http.StatusUnprocessableEntity, "register", p)
		return
	}
	if err != nil {
		ac.handleError(w, r, err)
		return
	}

	if err := ac.Sessions.Login(w, r, user.ID); err != nil {
		ac.handleError(w, r, err)
		return
	}
	ac.Metrics.Event("register")
	ac.Log.WithField("user_id", user.ID).Info("user registered")
	http.Redirect(w, r, "/", http.StatusFound)
}

// ShowLogin displays the login form
func (ac *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	p := ac.page(r, "Log In")
	p.Form = &models.LoginForm{}
	ac.render(w, r, http.StatusOK, "login", p)
}

// Login checks the submitted credentials and starts a session
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ac.sendError(w, r, http.StatusBadRequest)
		return
	}
	form := &models.LoginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	user, err := ac.Users.Authenticate(form)
	switch {
	case errors.Is(err, services.ErrUnknownEmail):
		ac.flashRedirect(w, r, "That email does not exist, please try again.", "/login")
		return
	case errors.Is(err, services.ErrIncorrectPassword):
		ac.flashRedirect(w, r, "Password incorrect, please try again.", "/login")
		return
	}
	if ferrs, ok := formErrors(err); ok {
		p := ac.page(r, "Log In")
		p.Form = form
		p.Errors = ferrs
		ac.render(w, r, http.StatusUnprocessableEntity, "login", p)
		return
	}
	if err != nil {
		ac.handleError(w, r, err)
		return
	}

	if err := ac.Sessions.Login(w, r, user.ID); err != nil {
		ac.handleError(w, r, err)
		return
	}
	ac.Metrics.Event("login")
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout ends the session
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := ac.Sessions.Logout(w, r); err != nil {
		ac.Log.WithError(err).Warn("failed to delete session")
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
