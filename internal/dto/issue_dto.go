package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateIssueRequest represents the request to create a new issue.
// The author is taken from the authenticated caller, never from the body.
type CreateIssueRequest struct {
	Title  string   `json:"title" binding:"required,min=1,max=255"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty" binding:"omitempty,max=20,dive,min=1,max=50"`
}

// UpdateIssueRequest represents the request to update an issue.
// Nil fields are left unchanged; ownership is immutable post-creation.
type UpdateIssueRequest struct {
	Title  *string   `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Body   *string   `json:"body,omitempty"`
	Labels *[]string `json:"labels,omitempty" binding:"omitempty,max=20,dive,min=1,max=50"`
}

// IssueResponse represents the issue response
type IssueResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Labels    []string  `json:"labels"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
