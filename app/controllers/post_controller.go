package controllers

import (
	"net/http"

	"quill/app/auth"
	"quill/app/models"
	"quill/app/services"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	*Base
	posts    *services.PostService
	comments *services.CommentService
}

// NewPostController creates a new PostController
func NewPostController(base *Base, posts *services.PostService, comments *services.CommentService) *PostController {
	return &PostController{
		Base:     base,
		posts:    posts,
		comments: comments,
	}
}

// Index lists all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.posts.ListPosts()
	if err != nil {
		pc.handleError(w, r, err)
		return
	}

	p := pc.page(r, "")
	p.Posts = posts
	pc.render(w, r, http.StatusOK, "index", p)
}

// Show displays a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	pc.showPost(w, r, http.StatusOK, &models.CommentForm{}, nil)
}

// AddComment attaches a comment by the current user to the post
func (pc *PostController) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		pc.sendError(w, r, http.StatusNotFound)
		return
	}
	user := auth.CurrentUser(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		pc.sendError(w, r, http.StatusBadRequest)
		return
	}

	form := &models.CommentForm{Text: r.PostFormValue("comment")}
	_, err = pc.comments.AddComment(id, user, form)
	if ferrs, ok := formErrors(err); ok {
		pc.showPost(w, r, http.StatusUnprocessableEntity, form, ferrs)
		return
	}
	if err != nil {
		pc.handleError(w, r, err)
		return
	}

	pc.Metrics.Event("comment")
	http.Redirect(w, r, postPath(id), http.StatusFound)
}

func (pc *PostController) showPost(w http.ResponseWriter, r *http.Request, status int, form *models.CommentForm, ferrs models.FormErrors) {
	id, err := idVar(r, "id")
	if err != nil {
		pc.sendError(w, r, http.StatusNotFound)
		return
	}
	post, err := pc.posts.GetPost(id)
	if err != nil {
		pc.handleError(w, r, err)
		return
	}

	p := pc.page(r, post.Title)
	p.Post = post
	p.Form = form
	p.Errors = ferrs
	pc.render(w, r, status, "post", p)
}

// New displays the form for creating a new post
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	p := pc.page(r, "New Post")
	p.Form = &models.PostForm{}
	pc.render(w, r, http.StatusOK, "make-post", p)
}

// Create stores a new post authored by the current user
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := pc.parsePostForm(w, r)
	if !ok {
		return
	}

	post, err := pc.posts.CreatePost(form, auth.CurrentUser(r.Context()))
	if ferrs, ok := formErrors(err); ok {
		p := pc.page(r, "New Post")
		p.Form = form
		p.Errors = ferrs
		pc.render(w, r, http.StatusUnprocessableEntity, "make-post", p)
		return
	}
	if err != nil {
		pc.handleError(w, r, err)
		return
	}

	pc.Metrics.Event("post_created")
	pc.Log.WithField("post_id", post.ID).Info("post created")
	http.Redirect(w, r, "/", http.StatusFound)
}

// Edit displays the edit form pre-filled with the post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		pc.sendError(w, r, http.StatusNotFound)
		return
	}
	post, err := pc.posts.GetPost(id)
	if err != nil {
		pc.handleError(w, r, err)
		return
	}

	p := pc.page(r, "Edit Post")
	p.Form = models.PostFormFrom(post)
	p.IsEdit = true
	pc.render(w, r, http.StatusOK, "make-post", p)
}

// Update saves an edited post
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		pc.sendError(w, r, http.StatusNotFound)
		return
	}
	form, ok := pc.parsePostForm(w, r)
	if !ok {
		return
	}

	_, err = pc.posts.UpdatePost(id, form, auth.CurrentUser(r.Context()))
	if ferrs, ok := formErrors(err); ok {
		p := pc.page(r, "Edit Post")
		p.Form = form
		p.Errors = ferrs
		p.IsEdit = true
		pc.render(w, r, http.StatusUnprocessableEntity, "make-post", p)
		return
	}
	if err != nil {
		pc.handleError(w, r, err)
		return
	}

	pc.Metrics.Event("post_updated")
	http.Redirect(w, r, postPath(id), http.StatusFound)
}

// Delete removes a post and its comments
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r, "id")
	if err != nil {
		pc.sendError(w, r, http.StatusNotFound)
		return
	}
	if err := pc.posts.DeletePost(id); err != nil {
		pc.handleError(w, r, err)
		return
	}

	pc.Metrics.Event("post_deleted")
	pc.Log.WithField("post_id", id).Info("post deleted")
	http.Redirect(w, r, "/", http.StatusFound)
}

func (pc *PostController) parsePostForm(w http.ResponseWriter, r *http.Request) (*models.PostForm, bool) {
	if err := r.ParseForm(); err != nil {
		pc.sendError(w, r, http.StatusBadRequest)
		return nil, false
	}
	return &models.PostForm{
		Title:    r.PostFormValue("title"),
		Subtitle: r.PostFormValue("subtitle"),
		ImgURL:   r.PostFormValue("img_url"),
		Body:     r.PostFormValue("body"),
	}, true
}
