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

// IssueHandler handles issue CRUD requests
type IssueHandler struct {
	issueService service.IssueService
}

// NewIssueHandler creates a new IssueHandler
func NewIssueHandler(issueService service.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// ListIssues godoc
// @Summary      List issues
// @Description  Returns all issues, newest first
// @Tags         issues
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.IssueResponse} "Issue list"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /issues [get]
func (h *IssueHandler) ListIssues(c *gin.Context) {
	issues, err := h.issueService.ListIssues(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, issues)
}

// GetIssue godoc
// @Summary      Get an issue
// @Description  Returns a single issue by ID
// @Tags         issues
// @Produce      json
// @Param        issueId path string true "Issue ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.IssueResponse} "Issue"
// @Failure      400 {object} response.ErrorResponse "Invalid issue ID"
// @Failure      404 {object} response.ErrorResponse "Issue not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /issues/{issueId} [get]
func (h *IssueHandler) GetIssue(c *gin.Context) {
	issueID, err := uuid.Parse(c.Param("issueId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid issue ID")
		return
	}

	issue, err := h.issueService.GetIssue(c.Request.Context(), issueID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, issue)
}

// CreateIssue godoc
// @Summary      Create an issue
// @Description  Creates a new issue authored by the authenticated user
// @Tags         issues
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateIssueRequest true "Issue create request"
// @Success      201 {object} response.SuccessResponse{data=dto.IssueResponse} "Created issue"
// @Failure      400 {object} response.ErrorResponse "Invalid request body"
// @Failure      401 {object} response.ErrorResponse "Unauthorized"
// @Failure      422 {object} response.ErrorResponse "Validation failed"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /issues [post]
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	var req dto.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	author, ok := middleware.CurrentUser(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User not found in context")
		return
	}

	issue, err := h.issueService.CreateIssue(c.Request.Context(), author, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, issue)
}

// UpdateIssue godoc
// @Summary      Update an issue
// @Description  Updates the title, body or labels of an issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Param        issueId path string true "Issue ID (UUID)"
// @Param        request body dto.UpdateIssueRequest true "Issue update request"
// @Success      200 {object} response.SuccessResponse{data=dto.IssueResponse} "Updated issue"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Issue not found"
// @Failure      422 {object} response.ErrorResponse "Validation failed"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /issues/{issueId} [put]
func (h *IssueHandler) UpdateIssue(c *gin.Context) {
	issueID, err := uuid.Parse(c.Param("issueId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid issue ID")
		return
	}

	var req dto.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	issue, err := h.issueService.UpdateIssue(c.Request.Context(), issueID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, issue)
}

// DeleteIssue godoc
// @Summary      Delete an issue
// @Description  Deletes an issue and all of its comments
// @Tags         issues
// @Produce      json
// @Param        issueId path string true "Issue ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.IssueResponse} "Deleted issue"
// @Failure      400 {object} response.ErrorResponse "Invalid issue ID"
// @Failure      404 {object} response.ErrorResponse "Issue not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Router       /issues/{issueId} [delete]
func (h *IssueHandler) DeleteIssue(c *gin.Context) {
	issueID, err := uuid.Parse(c.Param("issueId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid issue ID")
		return
	}

	issue, err := h.issueService.DeleteIssue(c.Request.Context(), issueID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, issue)
}
