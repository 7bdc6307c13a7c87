package mock

import (
	"sort"
	"sync"

	"quill/app/models"
	"quill/app/repositories"
)

// Store is an in-memory backing shared by the mock repositories so that a post
// delete can cascade to comments the same way the gorm implementation does.
type Store struct {
	mutex         sync.RWMutex
	users         map[uint]*models.User
	posts         map[uint]*models.Post
	comments      map[uint]*models.Comment
	nextUserID    uint
	nextPostID    uint
	nextCommentID uint
}

func NewStore() *Store {
	s := &Store{}
	s.Clear()
	return s
}

func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.users = make(map[uint]*models.User)
	s.posts = make(map[uint]*models.Post)
	s.comments = make(map[uint]*models.Comment)
	s.nextUserID, s.nextPostID, s.nextCommentID = 1, 1, 1
}

type UserRepository struct{ *Store }
type PostRepository struct{ *Store }
type CommentRepository struct{ *Store }

func NewUserRepository(s *Store) *UserRepository       { return &UserRepository{s} }
func NewPostRepository(s *Store) *PostRepository       { return &PostRepository{s} }
func NewCommentRepository(s *Store) *CommentRepository { return &CommentRepository{s} }

// UserRepository implementation
func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = m.nextUserID
	m.nextUserID++
	m.users[user.ID] = user
	return nil
}

func (m *UserRepository) GetByID(id uint) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *UserRepository) GetByEmail(email string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) First() (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for id := uint(1); id < m.nextUserID; id++ {
		if u, exists := m.users[id]; exists {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// PostRepository implementation
func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, p := range m.posts {
		if p.Title == post.Title {
			return repositories.ErrDuplicate
		}
	}
	post.ID = m.nextPostID
	m.nextPostID++
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) GetByID(id uint) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	post.Author = m.users[post.AuthorID]
	post.Comments = m.commentsFor(id)
	return post, nil
}

func (m *PostRepository) GetByTitle(title string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, p := range m.posts {
		if p.Title == title {
			return p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *PostRepository) List() ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		post.Author = m.users[post.AuthorID]
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) Delete(id uint) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	for cid, c := range m.comments {
		if c.PostID == id {
			delete(m.comments, cid)
		}
	}
	delete(m.posts, id)
	return nil
}

// CommentRepository implementation
func (m *CommentRepository) Create(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[comment.PostID]; !exists {
		return repositories.ErrNotFound
	}
	comment.ID = m.nextCommentID
	m.nextCommentID++
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) GetByID(id uint) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	comment.Author = m.users[comment.AuthorID]
	return comment, nil
}

func (m *CommentRepository) ListByPost(postID uint) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.commentsFor(postID), nil
}

func (m *CommentRepository) Delete(id uint) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

// commentsFor expects the caller to hold the lock.
func (s *Store) commentsFor(postID uint) []*models.Comment {
	var comments []*models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			c.Author = s.users[c.AuthorID]
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments
}
