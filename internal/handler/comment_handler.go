package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"issue-tracker-api/internal/dto"
	"issue-tracker-api/internal/middleware"
	"issue-tracker-api/internal/response"
	"issue-tracker-api/internal/service"
)

// CommentHandler handles comment CRUD requests
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListComments godoc
// @Summary      List comments for an issue
// @Description  Returns the comments of an issue in posting order, each with its author
// @Tags         comments
// @Produce      json
// @Param        issueId path string true "Issue ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CommentResponse} "Comment list"
// @Failure      400 {object} response.ErrorResponse "Invalid issue ID"
// @Failure      404 {object} response.ErrorResponse "Issue not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /issues/{issueId}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	issueID, err := uuid.Parse(c.Param("issueId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid issue ID")
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), issueID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comments)
}

// GetComment godoc
// @Summary      Get a comment
// @Description  Returns a single comment by ID with its author
// @Tags         comments
// @Produce      json
// @Param        commentId path string true "Comment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CommentResponse} "Comment"
// @Failure      400 {object} response.ErrorResponse "Invalid comment ID"
// @Failure      404 {object} response.ErrorResponse "Comment not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /issues/comments/{commentId} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid comment ID")
		return
	}

	comment, err := h.commentService.GetComment(c.Request.Context(), commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comment)
}

// CreateComment godoc
// @Summary      Create a comment
// @Description  Posts a comment on an issue, authored by the authenticated user
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        issueId path string true "Issue ID (UUID)"
// @Param        request body dto.CreateCommentRequest true "Comment create request"
// @Success      201 {object} response.SuccessResponse{data=dto.CommentResponse} "Created comment"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      404 {object} response.ErrorResponse "Issue not found"
// @Failure      422 {object} response.ErrorResponse "Validation failed"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /issues/{issueId}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	issueID, err := uuid.Parse(c.Param("issueId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid issue ID")
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	author, ok := middleware.CurrentUser(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User not found in context")
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), issueID, author, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary      Update a comment
// @Description  Updates the body of a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        commentId path string true "Comment ID (UUID)"
// @Param        request body dto.UpdateCommentRequest true "Comment update request"
// @Success      200 {object} response.SuccessResponse{data=dto.CommentResponse} "Updated comment"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Comment not found"
// @Failure      422 {object} response.ErrorResponse "Validation failed"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /issues/comments/{commentId} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid comment ID")
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), commentID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Deletes a comment
// @Tags         comments
// @Produce      json
// @Param        commentId path string true "Comment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CommentResponse} "Deleted comment"
// @Failure      400 {object} response.ErrorResponse "Invalid comment ID"
// @Failure      404 {object} response.ErrorResponse "Comment not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /issues/comments/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid comment ID")
		return
	}

	comment, err := h.commentService.DeleteComment(c.Request.Context(), commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comment)
}
