package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"quill/app/auth"
	"quill/app/models"
	"quill/app/repositories/mock"
)

func init() {
	auth.HashCost = bcrypt.MinCost
}

type testServices struct {
	users    *UserService
	posts    *PostService
	comments *CommentService
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	store := mock.NewStore()
	postRepo := mock.NewPostRepository(store)
	posts := NewPostService(postRepo)
	posts.now = func() time.Time { return time.Date(2025, time.March, 7, 9, 0, 0, 0, time.UTC) }
	return &testServices{
		users:    NewUserService(mock.NewUserRepository(store)),
		posts:    posts,
		comments: NewCommentService(mock.NewCommentRepository(store), postRepo),
	}
}

func register(t *testing.T, s *testServices, email, name string) *models.User {
	t.Helper()
	user, err := s.users.Register(&models.RegisterForm{Email: email, Password: "secret", Name: name})
	require.NoError(t, err)
	return user
}

func validPostForm(title string) *models.PostForm {
	return &models.PostForm{
		Title:    title,
		Subtitle: "A subtitle",
		ImgURL:   "https://example.com/img.jpg",
		Body:     "<p>Hello</p>",
	}
}
