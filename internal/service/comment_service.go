package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"issue-tracker-api/internal/changeset"
	"issue-tracker-api/internal/domain"
	"issue-tracker-api/internal/dto"
	"issue-tracker-api/internal/metrics"
	"issue-tracker-api/internal/repository"
	"issue-tracker-api/internal/response"
)

// commentPermittedFields is the allow-list of caller-editable comment
// fields. Issue and author references are wired server-side only.
var commentPermittedFields = []string{"body"}

// CommentService defines the interface for comment business logic
type CommentService interface {
	ListComments(ctx context.Context, issueID uuid.UUID) ([]*dto.CommentResponse, error)
	GetComment(ctx context.Context, commentID uuid.UUID) (*dto.CommentResponse, error)
	CreateComment(ctx context.Context, issueID uuid.UUID, author *domain.User, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) (*dto.CommentResponse, error)
	ChangeComment(comment *domain.Comment) *changeset.Changeset
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	issueRepo   repository.IssueRepository
	userRepo    repository.UserRepository
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	issueRepo repository.IssueRepository,
	userRepo repository.UserRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		issueRepo:   issueRepo,
		userRepo:    userRepo,
		metrics:     m,
		logger:      logger,
	}
}

// ListComments returns all comments on an issue in insertion order with
// their authors populated, so callers never issue follow-up user lookups
func (s *commentServiceImpl) ListComments(ctx context.Context, issueID uuid.UUID) ([]*dto.CommentResponse, error) {
	if _, err := s.issueRepo.FindByID(ctx, issueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Issue not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify issue", err.Error())
	}

	comments, err := s.commentRepo.FindByIssueID(ctx, issueID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comments", err.Error())
	}

	responses := make([]*dto.CommentResponse, len(comments))
	for i, comment := range comments {
		responses[i] = toCommentResponse(comment)
	}
	return responses, nil
}

// GetComment retrieves a comment by ID
func (s *commentServiceImpl) GetComment(ctx context.Context, commentID uuid.UUID) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comment", err.Error())
	}

	return toCommentResponse(comment), nil
}

// CreateComment attaches a new comment to an existing issue. The author is
// always the authenticated caller; on success the returned comment carries
// the in-memory author, avoiding a re-fetch.
func (s *commentServiceImpl) CreateComment(ctx context.Context, issueID uuid.UUID, author *domain.User, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if author == nil || author.ID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Authenticated user required", "")
	}

	if _, err := s.issueRepo.FindByID(ctx, issueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Issue not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify issue", err.Error())
	}

	cs := newCommentChangeset(&domain.Comment{}, map[string]interface{}{"body": req.Body})
	if !cs.Valid() {
		return nil, response.NewValidationError("Comment validation failed", cs.Errors, cs.Changes)
	}

	comment := &domain.Comment{
		IssueID: issueID,
		UserID:  author.ID,
		Body:    req.Body,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}

	// The caller-provided user is authoritative; attach it directly
	// instead of reloading the association from storage. Tokens minted
	// without profile claims only carry the subject, so fill in email
	// and name from the users table when they are missing.
	comment.User = *author
	if author.Email == "" && author.Name == "" && s.userRepo != nil {
		if stored, err := s.userRepo.FindByID(ctx, author.ID); err == nil {
			comment.User = *stored
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementCommentCreated()
	}

	s.logger.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("issue_id", issueID.String()),
		zap.String("user_id", author.ID.String()),
	)

	return toCommentResponse(comment), nil
}

// UpdateComment re-validates the body and persists the change
func (s *commentServiceImpl) UpdateComment(ctx context.Context, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comment", err.Error())
	}

	cs := newCommentChangeset(comment, map[string]interface{}{"body": req.Body})
	if !cs.Valid() {
		return nil, response.NewValidationError("Comment validation failed", cs.Errors, cs.Changes)
	}

	if v, ok := cs.GetChange("body"); ok {
		comment.Body = v.(string)
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update comment", err.Error())
	}

	return toCommentResponse(comment), nil
}

// DeleteComment removes a comment and returns the deleted representation;
// a concurrent delete surfaces as NOT_FOUND
func (s *commentServiceImpl) DeleteComment(ctx context.Context, commentID uuid.UUID) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comment", err.Error())
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment already deleted", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete comment", err.Error())
	}

	return toCommentResponse(comment), nil
}

// ChangeComment builds an empty-diff validation preview for a comment.
// Pure: no repository calls.
func (s *commentServiceImpl) ChangeComment(comment *domain.Comment) *changeset.Changeset {
	return changeset.Cast(commentData(comment), nil, commentPermittedFields...)
}

// newCommentChangeset casts attrs against the comment and runs the shared
// validation rules used by both creation and update
func newCommentChangeset(comment *domain.Comment, attrs map[string]interface{}) *changeset.Changeset {
	return changeset.Cast(commentData(comment), attrs, commentPermittedFields...).
		ValidateRequired("body")
}

// commentData snapshots the caller-visible comment fields for changeset casting
func commentData(comment *domain.Comment) map[string]interface{} {
	return map[string]interface{}{
		"body": comment.Body,
	}
}

// toCommentResponse converts domain.Comment to dto.CommentResponse
func toCommentResponse(comment *domain.Comment) *dto.CommentResponse {
	resp := &dto.CommentResponse{
		CommentID: comment.ID,
		IssueID:   comment.IssueID,
		UserID:    comment.UserID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}

	if comment.User.ID != uuid.Nil {
		resp.Author = &dto.UserResponse{
			UserID: comment.User.ID,
			Email:  comment.User.Email,
			Name:   comment.User.Name,
		}
	}

	return resp
}
