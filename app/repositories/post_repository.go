package repositories

import (
	"quill/app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPostRepository implements PostRepository using gorm
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create creates a new post
func (r *GormPostRepository) Create(post *models.Post) error {
	return translate(r.db.Omit(clause.Associations).Create(post).Error)
}

// GetByID retrieves a post by ID with its author and comments
func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.id") }).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// GetByTitle retrieves a post by its unique title
func (r *GormPostRepository) GetByTitle(title string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("title = ?", title).First(&post).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// List retrieves every post, oldest first
func (r *GormPostRepository) List() ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.Preload("Author").Order("id").Find(&posts).Error; err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

// Update overwrites the editable fields and author of an existing post
func (r *GormPostRepository) Update(post *models.Post) error {
	res := r.db.Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"title":     post.Title,
		"subtitle":  post.Subtitle,
		"img_url":   post.ImgURL,
		"body":      post.Body,
		"date":      post.Date,
		"author_id": post.AuthorID,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a post and its comments in one transaction
func (r *GormPostRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return translate(err)
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
