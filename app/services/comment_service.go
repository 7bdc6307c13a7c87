package services

import (
	"errors"
	"fmt"

	"quill/app/models"
	"quill/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment attaches a comment by author to an existing post
func (s *CommentService) AddComment(postID uint, author *models.User, form *models.CommentForm) (*models.Comment, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{Text: form.Text}
	if err := comment.SetAuthor(author); err != nil {
		return nil, err
	}
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// GetComment retrieves a comment by ID
func (s *CommentService) GetComment(id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(id)
}

// ListPostComments retrieves all comments for a post
func (s *CommentService) ListPostComments(postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(postID)
}

// IsAuthor reports whether user wrote the comment with the given ID. A missing
// comment is never owned by anyone.
func (s *CommentService) IsAuthor(commentID uint, user *models.User) (bool, error) {
	if user == nil {
		return false, nil
	}
	comment, err := s.commentRepo.GetByID(commentID)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return comment.WrittenBy(user), nil
}

// DeleteComment deletes a comment
func (s *CommentService) DeleteComment(id uint) error {
	return s.commentRepo.Delete(id)
}
