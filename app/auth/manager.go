package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the session cookie.
const CookieName = "quill_session"

// Manager ties the session store to a signed cookie. The cookie holds only an HS256
// token whose ID claim names the server-side session.
type Manager struct {
	store  *Store
	secret []byte
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

func NewManager(store *Store, secret string) *Manager {
	return &Manager{store: store, secret: []byte(secret)}
}

// Store returns the underlying session store.
func (m *Manager) Store() *Store { return m.store }

// Load returns the session named by the request cookie, or nil when the cookie is
// missing, tampered with, expired or refers to a deleted session.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	id, err := m.parse(cookie.Value)
	if err != nil {
		return nil
	}
	sess, err := m.store.Get(id)
	if err != nil {
		return nil
	}
	return sess
}

// Login starts a fresh authenticated session for userID, replacing any existing one.
// Pending flash messages are carried over.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, userID uint) error {
	var flashes []string
	if old := m.Load(r); old != nil {
		flashes = old.Flashes
		if err := m.store.Delete(old.ID); err != nil {
			return err
		}
	}
	sess, err := m.store.Create(userID)
	if err != nil {
		return err
	}
	if len(flashes) > 0 {
		sess.Flashes = flashes
		if err := m.store.Save(sess); err != nil {
			return err
		}
	}
	return m.setCookie(w, sess)
}

// Logout deletes the current session and expires the cookie.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	var err error
	if sess := m.Load(r); sess != nil {
		err = m.store.Delete(sess.ID)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return err
}

// AddFlash queues a message for the next rendered page. Anonymous visitors get a
// session of their own to carry it.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, msg string) error {
	sess := m.Load(r)
	if sess == nil {
		var err error
		if sess, err = m.store.Create(0); err != nil {
			return err
		}
		if err := m.setCookie(w, sess); err != nil {
			return err
		}
	}
	sess.Flashes = append(sess.Flashes, msg)
	return m.store.Save(sess)
}

// PopFlashes returns and clears the queued flash messages.
func (m *Manager) PopFlashes(r *http.Request) ([]string, error) {
	sess := m.Load(r)
	if sess == nil || len(sess.Flashes) == 0 {
		return nil, nil
	}
	flashes := sess.Flashes
	sess.Flashes = nil
	if err := m.store.Save(sess); err != nil {
		return nil, err
	}
	return flashes, nil
}

func (m *Manager) setCookie(w http.ResponseWriter, sess *Session) error {
	token, err := m.sign(sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) sign(sess *Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sess.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

func (m *Manager) parse(value string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(value, &claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", errors.New("session token has no id")
	}
	return claims.ID, nil
}
