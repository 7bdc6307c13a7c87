package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommentFormValidation(t *testing.T) {
	assert.NoError(t, (&CommentForm{Text: "Nice post"}).Validate())

	err := (&CommentForm{}).Validate()
	var ferrs FormErrors
	assert.ErrorAs(t, err, &ferrs)
	assert.Equal(t, "This field is required.", ferrs["comment"])
}

func TestCommentSetPost(t *testing.T) {
	comment := &Comment{
		ID:   1,
		Text: "Test Comment",
	}

	t.Run("set valid post", func(t *testing.T) {
		post := &Post{
			ID:    4,
			Title: "Test Post",
		}

		err := comment.SetPost(post)
		assert.NoError(t, err)
		assert.Equal(t, post.ID, comment.PostID)
		assert.Equal(t, post, comment.Post)
	})

	t.Run("set nil post", func(t *testing.T) {
		err := comment.SetPost(nil)
		assert.Error(t, err)
	})
}

func TestCommentAuthorship(t *testing.T) {
	alice := &User{ID: 1}
	bob := &User{ID: 2}
	comment := &Comment{Text: "hi"}

	assert.Error(t, comment.SetAuthor(nil))
	assert.NoError(t, comment.SetAuthor(bob))

	assert.True(t, comment.WrittenBy(bob))
	assert.False(t, comment.WrittenBy(alice))
	assert.False(t, comment.WrittenBy(nil))
}
