package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"quill/app/auth"
	"quill/app/models"
	"quill/app/repositories"
)

// Predicate decides whether a request may reach the guarded handler.
type Predicate func(r *http.Request) (bool, error)

// Denier writes the response for a request a guard rejected.
type Denier func(w http.ResponseWriter, r *http.Request, status int, err error)

// Guard runs next only when pred holds. A false predicate is answered with 403 and
// a failing one with 500, both through deny.
func Guard(pred Predicate, deny Denier) func(http.Handler) http.Handler {
	if deny == nil {
		deny = plainDeny
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := pred(r)
			if err != nil {
				deny(w, r, http.StatusInternalServerError, err)
				return
			}
			if !ok {
				deny(w, r, http.StatusForbidden, nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func plainDeny(w http.ResponseWriter, _ *http.Request, status int, _ error) {
	http.Error(w, http.StatusText(status), status)
}

// AdminChecker decides whether a user is the site administrator.
type AdminChecker interface {
	IsAdmin(user *models.User) (bool, error)
}

// AdminOnly holds for a logged-in administrator.
func AdminOnly(admins AdminChecker) Predicate {
	return func(r *http.Request) (bool, error) {
		user := auth.CurrentUser(r.Context())
		if user == nil {
			return false, nil
		}
		return admins.IsAdmin(user)
	}
}

// AuthorChecker decides whether a user wrote a comment.
type AuthorChecker interface {
	IsAuthor(commentID uint, user *models.User) (bool, error)
}

// CommentOwner holds when the logged-in user wrote the comment named by the
// commentId path variable.
func CommentOwner(comments AuthorChecker) Predicate {
	return func(r *http.Request) (bool, error) {
		user := auth.CurrentUser(r.Context())
		if user == nil {
			return false, nil
		}
		id, err := strconv.ParseUint(mux.Vars(r)["commentId"], 10, 64)
		if err != nil {
			return false, nil
		}
		return comments.IsAuthor(uint(id), user)
	}
}

// PostLoader looks a post up by ID.
type PostLoader interface {
	GetPost(id uint) (*models.Post, error)
}

// RequirePost answers 404 through deny when the post named by the id path
// variable does not exist. It runs ahead of the login check on comment
// submission so a missing post is reported before the visitor is sent to log in.
func RequirePost(posts PostLoader, deny Denier) func(http.Handler) http.Handler {
	if deny == nil {
		deny = plainDeny
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
			if err != nil {
				deny(w, r, http.StatusNotFound, nil)
				return
			}
			if _, err := posts.GetPost(uint(id)); err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					deny(w, r, http.StatusNotFound, nil)
					return
				}
				deny(w, r, http.StatusInternalServerError, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
