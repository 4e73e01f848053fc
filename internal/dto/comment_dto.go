package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCommentRequest represents the request to create a new comment.
// Deliberately narrow: the author id is set server-side from the
// authenticated caller and cannot be supplied here.
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1"`
}

// UpdateCommentRequest represents the request to update a comment
type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1"`
}

// UserResponse represents a comment author
type UserResponse struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
}

// CommentResponse represents the comment response with its author populated
type CommentResponse struct {
	CommentID uuid.UUID     `json:"commentId"`
	IssueID   uuid.UUID     `json:"issueId"`
	UserID    uuid.UUID     `json:"userId"`
	Body      string        `json:"body"`
	Author    *UserResponse `json:"author,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
