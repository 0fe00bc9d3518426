package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CommentsController struct {
	service CommentService
}

func NewCommentsController(service CommentService) *CommentsController {
	return &CommentsController{service: service}
}

// GetComment returns a single comment.
// GET /api/comments/:id
func (cc *CommentsController) GetComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comment, err := cc.service.GetComment(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "comment", "get comment")
		return
	}
	if comment == nil {
		respondNotFound(c, "comment")
		return
	}
	c.JSON(http.StatusOK, comment)
}

// UpdateComment replaces the text of a comment.
// PATCH /api/comments/:id
func (cc *CommentsController) UpdateComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "comment is required")
		return
	}

	updated, err := cc.service.UpdateComment(c.Request.Context(), id, req.Comment)
	if err != nil {
		respondServiceError(c, err, "comment", "update comment")
		return
	}
	if !updated {
		respondNotFound(c, "comment")
		return
	}
	respondSuccess(c, "comment updated")
}

// DeleteComment removes a comment.
// DELETE /api/comments/:id
func (cc *CommentsController) DeleteComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := cc.service.DeleteComment(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "comment", "delete comment")
		return
	}
	if !deleted {
		respondNotFound(c, "comment")
		return
	}
	respondSuccess(c, "comment deleted")
}
