package controllers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"quill/app/repositories"
)

func TestCommentController_Delete(t *testing.T) {
	env := setupTestEnv(t)
	_, adminCookie := env.register(t, "admin@example.com", "Admin")
	_, readerCookie := env.register(t, "reader@example.com", "Reader")
	env.do(http.MethodPost, "/new-post", validPost("Post"), adminCookie)
	env.do(http.MethodPost, "/post/1", url.Values{"comment": {"temporary"}}, readerCookie)

	w := env.do(http.MethodGet, "/delete/comment/1/1", nil, readerCookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/post/1", w.Header().Get("Location"))

	_, err := env.comments.GetComment(1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	w = env.do(http.MethodGet, "/delete/comment/1/1", nil, readerCookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentController_DeleteRedirectsToOwningPost(t *testing.T) {
	env := setupTestEnv(t)
	_, adminCookie := env.register(t, "admin@example.com", "Admin")
	_, readerCookie := env.register(t, "reader@example.com", "Reader")
	env.do(http.MethodPost, "/new-post", validPost("First"), adminCookie)
	env.do(http.MethodPost, "/new-post", validPost("Second"), adminCookie)
	env.do(http.MethodPost, "/post/2", url.Values{"comment": {"on the second post"}}, readerCookie)

	w := env.do(http.MethodGet, "/delete/comment/1/99", nil, readerCookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/post/2", w.Header().Get("Location"))
}
