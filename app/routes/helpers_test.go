package routes

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quill/app/auth"
	"quill/app/middleware"
	"quill/app/repositories"
	"quill/app/views"
)

// testServer runs the full router against a temporary SQLite database.
type testServer struct {
	*httptest.Server
	db *gorm.DB
}

func setupTestServer(t *testing.T, limiter *middleware.RateLimiter) *testServer {
	t.Helper()
	auth.HashCost = 4

	db, err := repositories.Open(filepath.Join(t.TempDir(), "blog.db"), nil)
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))
	t.Cleanup(func() { repositories.Close(db) })

	store, err := auth.OpenStore("", time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	renderer, err := views.New()
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	router := Setup(Deps{
		Users:    repositories.NewGormUserRepository(db),
		Posts:    repositories.NewGormPostRepository(db),
		Comments: repositories.NewGormCommentRepository(db),
		Sessions: auth.NewManager(store, "0123456789abcdef0123"),
		Views:    renderer,
		Log:      log,
		Limiter:  limiter,
		Ping:     func() error { return repositories.Ping(db) },
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, db: db}
}

// browser is an HTTP client with its own cookie jar that does not follow redirects.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func (s *testServer) newBrowser(t *testing.T) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: s.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type response struct {
	status   int
	location string
	body     string
}

func (b *browser) get(path string) response {
	b.t.Helper()
	resp, err := b.client.Get(b.base + path)
	require.NoError(b.t, err)
	return readResponse(b.t, resp)
}

func (b *browser) post(path string, form url.Values) response {
	b.t.Helper()
	resp, err := b.client.PostForm(b.base+path, form)
	require.NoError(b.t, err)
	return readResponse(b.t, resp)
}

func (b *browser) register(email, name string) response {
	b.t.Helper()
	return b.post("/register", url.Values{
		"email":    {email},
		"password": {"secret"},
		"name":     {name},
	})
}

func readResponse(t *testing.T, resp *http.Response) response {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{
		status:   resp.StatusCode,
		location: resp.Header.Get("Location"),
		body:     string(body),
	}
}

func postForm(title string) url.Values {
	return url.Values{
		"title":    {title},
		"subtitle": {"Subtitle"},
		"img_url":  {"https://example.com/img.jpg"},
		"body":     {"<p>" + title + "</p>"},
	}
}
