package controllers

import (
	"net/http"

	"quill/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	*Base
	comments *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(base *Base, comments *services.CommentService) *CommentController {
	return &CommentController{
		Base:     base,
		comments: comments,
	}
}

// Delete removes a comment and returns to the post it belongs to
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := idVar(r, "commentId")
	if err != nil {
		cc.sendError(w, r, http.StatusNotFound)
		return
	}

	comment, err := cc.comments.GetComment(commentID)
	if err != nil {
		cc.handleError(w, r, err)
		return
	}

	if err := cc.comments.DeleteComment(commentID); err != nil {
		cc.handleError(w, r, err)
		return
	}

	cc.Metrics.Event("comment_deleted")
	http.Redirect(w, r, postPath(comment.PostID), http.StatusFound)
}
