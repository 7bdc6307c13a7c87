package models

import (
	"errors"
	"time"
)

// DateLayout is how a post's publish date is stored, e.g. "March 07, 2025".
const DateLayout = "January 02, 2006"

// Stamp sets the author and publish date of a post.
func (p *Post) Stamp(author *User, now time.Time) error {
	if author == nil {
		return errors.New("author cannot be nil")
	}
	p.Author = author
	p.AuthorID = author.ID
	p.Date = now.Format(DateLayout)
	return nil
}

// Apply copies the editable fields of a submitted form onto the post.
func (p *Post) Apply(form *PostForm) {
	p.Title = form.Title
	p.Subtitle = form.Subtitle
	p.ImgURL = form.ImgURL
	p.Body = form.Body
}

// AddComment adds a comment to the post
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.PostID = p.ID
	p.Comments = append(p.Comments, comment)
	return nil
}

// RemoveComment removes a comment from the post
func (p *Post) RemoveComment(commentID uint) error {
	for i, comment := range p.Comments {
		if comment.ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return nil
		}
	}
	return errors.New("comment not found")
}
