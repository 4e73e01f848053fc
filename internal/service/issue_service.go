package service

import (
	"context"
	"encoding/json"
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

const issueTitleMaxLen = 255

// issuePermittedFields is the allow-list of caller-editable issue fields.
// Author and identifiers are immutable post-creation and never castable.
var issuePermittedFields = []string{"title", "body", "labels"}

// IssueService defines the interface for issue business logic
type IssueService interface {
	ListIssues(ctx context.Context) ([]*dto.IssueResponse, error)
	GetIssue(ctx context.Context, issueID uuid.UUID) (*dto.IssueResponse, error)
	CreateIssue(ctx context.Context, author *domain.User, req *dto.CreateIssueRequest) (*dto.IssueResponse, error)
	UpdateIssue(ctx context.Context, issueID uuid.UUID, req *dto.UpdateIssueRequest) (*dto.IssueResponse, error)
	DeleteIssue(ctx context.Context, issueID uuid.UUID) (*dto.IssueResponse, error)
	ChangeIssue(issue *domain.Issue) *changeset.Changeset
}

// issueServiceImpl is the implementation of IssueService
type issueServiceImpl struct {
	issueRepo repository.IssueRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewIssueService creates a new instance of IssueService
func NewIssueService(issueRepo repository.IssueRepository, m *metrics.Metrics, logger *zap.Logger) IssueService {
	return &issueServiceImpl{
		issueRepo: issueRepo,
		metrics:   m,
		logger:    logger,
	}
}

// ListIssues returns all issues, newest first
func (s *issueServiceImpl) ListIssues(ctx context.Context) ([]*dto.IssueResponse, error) {
	issues, err := s.issueRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch issues", err.Error())
	}

	responses := make([]*dto.IssueResponse, len(issues))
	for i, issue := range issues {
		responses[i] = toIssueResponse(issue)
	}
	return responses, nil
}

// GetIssue retrieves an issue by ID
func (s *issueServiceImpl) GetIssue(ctx context.Context, issueID uuid.UUID) (*dto.IssueResponse, error) {
	issue, err := s.issueRepo.FindByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Issue not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue", err.Error())
	}

	return toIssueResponse(issue), nil
}

// CreateIssue validates the request and persists a new issue owned by the
// authenticated author. On validation failure nothing is persisted and the
// violated fields are reported.
func (s *issueServiceImpl) CreateIssue(ctx context.Context, author *domain.User, req *dto.CreateIssueRequest) (*dto.IssueResponse, error) {
	if author == nil || author.ID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Authenticated user required", "")
	}

	attrs := map[string]interface{}{
		"title": req.Title,
		"body":  req.Body,
	}
	if req.Labels != nil {
		attrs["labels"] = req.Labels
	}

	cs := newIssueChangeset(&domain.Issue{}, attrs)
	if !cs.Valid() {
		return nil, response.NewValidationError("Issue validation failed", cs.Errors, cs.Changes)
	}

	labelsJSON, err := marshalLabels(req.Labels)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode labels", err.Error())
	}

	issue := &domain.Issue{
		UserID: author.ID,
		Title:  req.Title,
		Body:   req.Body,
		Labels: labelsJSON,
	}

	if err := s.issueRepo.Create(ctx, issue); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create issue", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementIssueCreated()
	}

	s.logger.Info("Issue created",
		zap.String("issue_id", issue.ID.String()),
		zap.String("user_id", author.ID.String()),
	)

	return toIssueResponse(issue), nil
}

// UpdateIssue applies the requested changes through the same validation
// rules as creation. Ownership is immutable. On validation failure the
// rejected changeset state travels back with the error.
func (s *issueServiceImpl) UpdateIssue(ctx context.Context, issueID uuid.UUID, req *dto.UpdateIssueRequest) (*dto.IssueResponse, error) {
	issue, err := s.issueRepo.FindByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Issue not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue", err.Error())
	}

	attrs := make(map[string]interface{})
	if req.Title != nil {
		attrs["title"] = *req.Title
	}
	if req.Body != nil {
		attrs["body"] = *req.Body
	}
	if req.Labels != nil {
		attrs["labels"] = *req.Labels
	}

	cs := newIssueChangeset(issue, attrs)
	if !cs.Valid() {
		return nil, response.NewValidationError("Issue validation failed", cs.Errors, cs.Changes)
	}

	if v, ok := cs.GetChange("title"); ok {
		issue.Title = v.(string)
	}
	if v, ok := cs.GetChange("body"); ok {
		issue.Body = v.(string)
	}
	if v, ok := cs.GetChange("labels"); ok {
		labelsJSON, err := marshalLabels(v.([]string))
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode labels", err.Error())
		}
		issue.Labels = labelsJSON
	}

	if err := s.issueRepo.Update(ctx, issue); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update issue", err.Error())
	}

	return toIssueResponse(issue), nil
}

// DeleteIssue removes an issue and its comments and returns the deleted
// representation. A concurrent delete surfaces as NOT_FOUND rather than
// silent success.
func (s *issueServiceImpl) DeleteIssue(ctx context.Context, issueID uuid.UUID) (*dto.IssueResponse, error) {
	issue, err := s.issueRepo.FindByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Issue not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch issue", err.Error())
	}

	if err := s.issueRepo.Delete(ctx, issueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Issue already deleted", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete issue", err.Error())
	}

	return toIssueResponse(issue), nil
}

// ChangeIssue builds an empty-diff validation preview for an issue.
// Pure: no repository calls.
func (s *issueServiceImpl) ChangeIssue(issue *domain.Issue) *changeset.Changeset {
	return changeset.Cast(issueData(issue), nil, issuePermittedFields...)
}

// newIssueChangeset casts attrs against the issue and runs the shared
// validation rules used by both creation and update
func newIssueChangeset(issue *domain.Issue, attrs map[string]interface{}) *changeset.Changeset {
	return changeset.Cast(issueData(issue), attrs, issuePermittedFields...).
		ValidateRequired("title").
		ValidateLength("title", issueTitleMaxLen)
}

// issueData snapshots the caller-visible issue fields for changeset casting
func issueData(issue *domain.Issue) map[string]interface{} {
	return map[string]interface{}{
		"title":  issue.Title,
		"body":   issue.Body,
		"labels": unmarshalLabels(issue),
	}
}

func marshalLabels(labels []string) ([]byte, error) {
	if len(labels) == 0 {
		return nil, nil
	}
	return json.Marshal(labels)
}

func unmarshalLabels(issue *domain.Issue) []string {
	labels := []string{}
	if len(issue.Labels) > 0 {
		_ = json.Unmarshal(issue.Labels, &labels)
	}
	return labels
}

// toIssueResponse converts domain.Issue to dto.IssueResponse
func toIssueResponse(issue *domain.Issue) *dto.IssueResponse {
	return &dto.IssueResponse{
		ID:        issue.ID,
		UserID:    issue.UserID,
		Title:     issue.Title,
		Body:      issue.Body,
		Labels:    unmarshalLabels(issue),
		CreatedAt: issue.CreatedAt,
		UpdatedAt: issue.UpdatedAt,
	}
}
