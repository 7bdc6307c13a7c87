package models

import "errors"

// SetPost sets the parent post and updates the PostID
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}

	c.Post = post
	c.PostID = post.ID
	return nil
}

// SetAuthor sets the comment author and updates the AuthorID
func (c *Comment) SetAuthor(user *User) error {
	if user == nil {
		return errors.New("author cannot be nil")
	}

	c.Author = user
	c.AuthorID = user.ID
	return nil
}

// WrittenBy reports whether user authored the comment.
func (c *Comment) WrittenBy(user *User) bool {
	return user != nil && c.AuthorID == user.ID
}
