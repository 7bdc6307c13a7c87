package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"quill/app/auth"
	"quill/app/controllers"
	"quill/app/metrics"
	"quill/app/middleware"
	"quill/app/repositories"
	"quill/app/services"
	"quill/app/views"
)

// Deps are the collaborators the router is assembled from.
type Deps struct {
	Users    repositories.UserRepository
	Posts    repositories.PostRepository
	Comments repositories.CommentRepository
	Sessions *auth.Manager
	Views    *views.Renderer
	Log      *logrus.Logger
	Metrics  *metrics.Metrics
	// Limiter throttles login and registration posts. Nil disables it.
	Limiter *middleware.RateLimiter
	// Ping reports database health on /healthz.
	Ping func() error
}

// Setup defines the application's routes and returns a router.
func Setup(d Deps) *mux.Router {
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}

	userService := services.NewUserService(d.Users)
	postService := services.NewPostService(d.Posts)
	commentService := services.NewCommentService(d.Comments, d.Posts)

	base := &controllers.Base{
		Views:    d.Views,
		Sessions: d.Sessions,
		Users:    userService,
		Log:      d.Log,
		Metrics:  d.Metrics,
	}
	authController := controllers.NewAuthController(base)
	postController := controllers.NewPostController(base, postService, commentService)
	commentController := controllers.NewCommentController(base, commentService)
	pageController := controllers.NewPageController(base, d.Ping)

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(base.NotFound)

	// Apply global middleware
	router.Use(middleware.Logger(d.Log))
	router.Use(middleware.Recoverer(d.Log))
	router.Use(d.Metrics.Instrument)
	router.Use(middleware.LoadUser(d.Sessions, userService, d.Log))

	adminOnly := middleware.Guard(middleware.AdminOnly(userService), base.Deny)
	commentOwner := middleware.Guard(middleware.CommentOwner(commentService), base.Deny)
	requireAuth := middleware.RequireAuthForPost(d.Sessions, d.Log)
	requirePost := middleware.RequirePost(postService, base.Deny)
	limit := func(h http.HandlerFunc) http.Handler {
		if d.Limiter == nil {
			return h
		}
		return d.Limiter.Handler(h)
	}

	// Auth
	router.HandleFunc("/register", authController.ShowRegister).Methods("GET")
	router.Handle("/register", limit(authController.Register)).Methods("POST")
	router.HandleFunc("/login", authController.ShowLogin).Methods("GET")
	router.Handle("/login", limit(authController.Login)).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("GET")

	// Posts
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/post/{id:[0-9]+}", postController.Show).Methods("GET")
	router.Handle("/post/{id:[0-9]+}", requirePost(requireAuth(http.HandlerFunc(postController.AddComment)))).Methods("POST")
	router.Handle("/new-post", adminOnly(http.HandlerFunc(postController.New))).Methods("GET")
	router.Handle("/new-post", adminOnly(http.HandlerFunc(postController.Create))).Methods("POST")
	router.Handle("/edit-post/{id:[0-9]+}", adminOnly(http.HandlerFunc(postController.Edit))).Methods("GET")
	router.Handle("/edit-post/{id:[0-9]+}", adminOnly(http.HandlerFunc(postController.Update))).Methods("POST")
	router.Handle("/delete/{id:[0-9]+}", adminOnly(http.HandlerFunc(postController.Delete))).Methods("GET")

	// Comments
	router.Handle("/delete/comment/{commentId:[0-9]+}/{postId:[0-9]+}",
		commentOwner(http.HandlerFunc(commentController.Delete))).Methods("GET")

	// Pages
	router.HandleFunc("/about", pageController.About).Methods("GET")
	router.HandleFunc("/contact", pageController.Contact).Methods("GET")
	router.HandleFunc("/healthz", pageController.Health).Methods("GET")
	router.Handle("/metrics", d.Metrics.Handler()).Methods("GET")

	return router
}
