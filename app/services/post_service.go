package services

import (
	"errors"
	"fmt"
	"time"

	"quill/app/models"
	"quill/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
	now      func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		now:      time.Now,
	}
}

// ListPosts retrieves every post
func (s *PostService) ListPosts() ([]*models.Post, error) {
	return s.postRepo.List()
}

// GetPost retrieves a post by ID with its comments
func (s *PostService) GetPost(id uint) (*models.Post, error) {
	return s.postRepo.GetByID(id)
}

// CreatePost validates the form and stores a post authored by author, dated today.
func (s *PostService) CreatePost(form *models.PostForm, author *models.User) (*models.Post, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkTitle(form.Title, 0); err != nil {
		return nil, err
	}

	post := &models.Post{}
	post.Apply(form)
	if err := post.Stamp(author, s.now()); err != nil {
		return nil, err
	}
	if err := s.postRepo.Create(post); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, titleTaken()
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// UpdatePost overwrites the editable fields of a post. The editor becomes the author;
// the publish date is kept.
func (s *PostService) UpdatePost(id uint, form *models.PostForm, editor *models.User) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkTitle(form.Title, id); err != nil {
		return nil, err
	}
	if editor == nil {
		return nil, errors.New("editor cannot be nil")
	}

	post.Apply(form)
	post.Author = editor
	post.AuthorID = editor.ID
	if err := s.postRepo.Update(post); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, titleTaken()
		}
		return nil, err
	}
	return post, nil
}

// DeletePost deletes a post and all its comments
func (s *PostService) DeletePost(id uint) error {
	return s.postRepo.Delete(id)
}

// checkTitle fails when another post than self already uses title.
func (s *PostService) checkTitle(title string, self uint) error {
	existing, err := s.postRepo.GetByTitle(title)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check title: %w", err)
	}
	if existing.ID != self {
		return titleTaken()
	}
	return nil
}

func titleTaken() error {
	return models.FormErrors{"title": "A post with this title already exists."}
}
