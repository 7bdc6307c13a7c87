package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"quill/app/auth"
	"quill/app/models"
)

// UserLoader looks up the user an authenticated session belongs to.
type UserLoader interface {
	GetUser(id uint) (*models.User, error)
}

// LoadUser resolves the session cookie to a user and stores it in the request
// context. Requests without a valid session pass through anonymously.
func LoadUser(sessions *auth.Manager, users UserLoader, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessions.Load(r)
			if sess == nil || !sess.Authenticated() {
				next.ServeHTTP(w, r)
				return
			}
			user, err := users.GetUser(sess.UserID)
			if err != nil {
				log.WithError(err).WithField("user_id", sess.UserID).Warn("session refers to unknown user")
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

// RequireAuthForPost sends anonymous POST requests to the login page with a flash
// message. Other methods pass through.
func RequireAuthForPost(sessions *auth.Manager, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || auth.CurrentUser(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}
			if err := sessions.AddFlash(w, r, "You need to Login or Register to comment."); err != nil {
				log.WithError(err).Error("failed to add flash")
			}
			http.Redirect(w, r, "/login", http.StatusFound)
		})
	}
}
