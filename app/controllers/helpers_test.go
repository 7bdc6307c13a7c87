package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"quill/app/auth"
	"quill/app/metrics"
	"quill/app/middleware"
	"quill/app/models"
	"quill/app/repositories/mock"
	"quill/app/services"
	"quill/app/views"
)

func init() {
	auth.HashCost = bcrypt.MinCost
}

type testEnv struct {
	router   *mux.Router
	base     *Base
	store    *mock.Store
	posts    *services.PostService
	comments *services.CommentService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sessions, err := auth.OpenStore("", time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { sessions.Close() })

	renderer, err := views.New()
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	store := mock.NewStore()
	postRepo := mock.NewPostRepository(store)

	base := &Base{
		Views:    renderer,
		Sessions: auth.NewManager(sessions, "0123456789abcdef0123"),
		Users:    services.NewUserService(mock.NewUserRepository(store)),
		Log:      log,
		Metrics:  metrics.New(),
	}
	env := &testEnv{
		base:     base,
		store:    store,
		posts:    services.NewPostService(postRepo),
		comments: services.NewCommentService(mock.NewCommentRepository(store), postRepo),
	}

	authController := NewAuthController(base)
	postController := NewPostController(base, env.posts, env.comments)
	commentController := NewCommentController(base, env.comments)
	pageController := NewPageController(base, nil)

	router := mux.NewRouter()
	router.Use(middleware.LoadUser(base.Sessions, base.Users, log))
	router.NotFoundHandler = http.HandlerFunc(base.NotFound)
	router.HandleFunc("/register", authController.ShowRegister).Methods("GET")
	router.HandleFunc("/register", authController.Register).Methods("POST")
	router.HandleFunc("/login", authController.ShowLogin).Methods("GET")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("GET")
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/post/{id}", postController.Show).Methods("GET")
	router.HandleFunc("/post/{id}", postController.AddComment).Methods("POST")
	router.HandleFunc("/new-post", postController.New).Methods("GET")
	router.HandleFunc("/new-post", postController.Create).Methods("POST")
	router.HandleFunc("/edit-post/{id}", postController.Edit).Methods("GET")
	router.HandleFunc("/edit-post/{id}", postController.Update).Methods("POST")
	router.HandleFunc("/delete/{id}", postController.Delete).Methods("GET")
	router.HandleFunc("/delete/comment/{commentId}/{postId}", commentController.Delete).Methods("GET")
	router.HandleFunc("/about", pageController.About).Methods("GET")
	router.HandleFunc("/contact", pageController.Contact).Methods("GET")
	router.HandleFunc("/healthz", pageController.Health).Methods("GET")
	env.router = router

	return env
}

// register creates a user through the service and returns a logged-in cookie.
func (e *testEnv) register(t *testing.T, email, name string) (*models.User, *http.Cookie) {
	t.Helper()
	user, err := e.base.Users.Register(&models.RegisterForm{Email: email, Password: "secret", Name: name})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, e.base.Sessions.Login(w, httptest.NewRequest(http.MethodPost, "/login", nil), user.ID))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return user, cookies[0]
}

func (e *testEnv) do(method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// flashes returns the flash messages queued on the session a response set or reused.
func (e *testEnv) flashes(t *testing.T, w *httptest.ResponseRecorder, fallback *http.Cookie) []string {
	t.Helper()
	cookie := fallback
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	flashes, err := e.base.Sessions.PopFlashes(req)
	require.NoError(t, err)
	return flashes
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value != "" {
			return c
		}
	}
	return nil
}

func validPost(title string) url.Values {
	return url.Values{
		"title":    {title},
		"subtitle": {"Subtitle"},
		"img_url":  {"https://example.com/img.jpg"},
		"body":     {"<p>Body of " + title + "</p>"},
	}
}
