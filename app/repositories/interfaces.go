package repositories

import "quill/app/models"

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// First returns the earliest registered user, the site administrator.
	First() (*models.User, error)
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	GetByTitle(title string) (*models.Post, error)
	List() ([]*models.Post, error)
	Update(post *models.Post) error
	// Delete removes the post together with all of its comments.
	Delete(id uint) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	ListByPost(postID uint) ([]*models.Comment, error)
	Delete(id uint) error
}
