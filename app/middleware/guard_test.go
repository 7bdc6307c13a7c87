package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"quill/app/auth"
	"quill/app/models"
	"quill/app/repositories"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

type stubAdmins struct{ adminID uint }

func (s stubAdmins) IsAdmin(user *models.User) (bool, error) {
	return user.ID == s.adminID, nil
}

type stubAuthors map[uint]uint

func (s stubAuthors) IsAuthor(commentID uint, user *models.User) (bool, error) {
	author, ok := s[commentID]
	return ok && author == user.ID, nil
}

func requestAs(user *models.User, path string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != nil {
		req = req.WithContext(auth.WithUser(req.Context(), user))
	}
	return req
}

func TestGuard(t *testing.T) {
	tests := []struct {
		name string
		pred Predicate
		want int
	}{
		{"allowed", func(*http.Request) (bool, error) { return true, nil }, http.StatusOK},
		{"denied", func(*http.Request) (bool, error) { return false, nil }, http.StatusForbidden},
		{"failed", func(*http.Request) (bool, error) { return false, errors.New("db down") }, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Guard(tt.pred, nil)(okHandler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestGuardCustomDenier(t *testing.T) {
	var gotStatus int
	deny := func(w http.ResponseWriter, r *http.Request, status int, err error) {
		gotStatus = status
		w.WriteHeader(status)
		w.Write([]byte("custom"))
	}

	w := httptest.NewRecorder()
	Guard(func(*http.Request) (bool, error) { return false, nil }, deny)(okHandler).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusForbidden, gotStatus)
	assert.Equal(t, "custom", w.Body.String())
}

func TestAdminOnly(t *testing.T) {
	pred := AdminOnly(stubAdmins{adminID: 1})

	ok, err := pred(requestAs(&models.User{ID: 1}, "/new-post"))
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, _ = pred(requestAs(&models.User{ID: 2}, "/new-post"))
	assert.False(t, ok)

	ok, _ = pred(requestAs(nil, "/new-post"))
	assert.False(t, ok)
}

func TestCommentOwner(t *testing.T) {
	authors := stubAuthors{10: 2}
	router := mux.NewRouter()
	router.Handle("/delete/comment/{commentId}/{postId}", Guard(CommentOwner(authors), nil)(okHandler))

	tests := []struct {
		name string
		user *models.User
		path string
		want int
	}{
		{"author", &models.User{ID: 2}, "/delete/comment/10/1", http.StatusOK},
		{"someone else", &models.User{ID: 1}, "/delete/comment/10/1", http.StatusForbidden},
		{"anonymous", nil, "/delete/comment/10/1", http.StatusForbidden},
		{"missing comment", &models.User{ID: 2}, "/delete/comment/11/1", http.StatusForbidden},
		{"bad id", &models.User{ID: 2}, "/delete/comment/abc/1", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, requestAs(tt.user, tt.path))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

type stubPosts map[uint]error

func (s stubPosts) GetPost(id uint) (*models.Post, error) {
	if err, ok := s[id]; ok {
		return nil, err
	}
	return nil, repositories.ErrNotFound
}

func TestRequirePost(t *testing.T) {
	posts := stubPosts{1: nil, 2: errors.New("db down")}
	handler := RequirePost(posts, nil)(okHandler)
	router := mux.NewRouter()
	router.Handle("/post/{id}", handler)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"existing post", "/post/1", http.StatusOK},
		{"missing post", "/post/9", http.StatusNotFound},
		{"lookup failure", "/post/2", http.StatusInternalServerError},
		{"bad id", "/post/abc", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
