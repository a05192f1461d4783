package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwellhq/inkwell/services"
	"github.com/inkwellhq/inkwell/utils"
)

// CommentController handles the comment thread under a blog.
type CommentController struct {
	interactions *services.InteractionService
}

// NewCommentController creates a CommentController.
func NewCommentController(interactions *services.InteractionService) *CommentController {
	return &CommentController{interactions: interactions}
}

// List returns the blog's comment thread: top-level comments in
// chronological order, each carrying its replies.
func (c *CommentController) List(ctx *gin.Context) {
	blogID, ok := parseIDParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "invalid blog id")
		return
	}

	thread, err := c.interactions.ListComments(blogID, optionalUser(ctx))
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"comments": thread})
}

// Create adds a comment, or a reply when parent_comment_id is set.
func (c *CommentController) Create(ctx *gin.Context) {
	viewer, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}
	blogID, ok := parseIDParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "invalid blog id")
		return
	}

	var req struct {
		Content         string `json:"content" binding:"required"`
		ParentCommentID *uint  `json:"parent_comment_id"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	comment, err := c.interactions.CreateComment(viewer, blogID, utils.SanitizeStrict(req.Content), req.ParentCommentID)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Created(ctx, gin.H{"comment": comment})
}

// Delete removes a comment along with its replies.
func (c *CommentController) Delete(ctx *gin.Context) {
	viewer, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}
	commentID, ok := parseIDParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "invalid comment id")
		return
	}

	removed, err := c.interactions.DeleteComment(viewer, commentID)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"removed": removed})
}

// ToggleLike flips the viewer's like on a comment.
func (c *CommentController) ToggleLike(ctx *gin.Context) {
	viewer, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}
	commentID, ok := parseIDParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "invalid comment id")
		return
	}

	state, err := c.interactions.ToggleCommentLike(viewer, commentID)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"liked": state.Active, "likes_count": state.Count})
}
