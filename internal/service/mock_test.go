package service

import (
	"context"

	"github.com/google/uuid"

	"issue-tracker-api/internal/domain"
)

// MockIssueRepository is a mock implementation of IssueRepository
type MockIssueRepository struct {
	CreateFunc   func(ctx context.Context, issue *domain.Issue) error
	FindByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Issue, error)
	FindAllFunc  func(ctx context.Context) ([]*domain.Issue, error)
	UpdateFunc   func(ctx context.Context, issue *domain.Issue) error
	DeleteFunc   func(ctx context.Context, id uuid.UUID) error
}

func (m *MockIssueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, issue)
	}
	return nil
}

func (m *MockIssueRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockIssueRepository) FindAll(ctx context.Context) ([]*domain.Issue, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockIssueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, issue)
	}
	return nil
}

func (m *MockIssueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc        func(ctx context.Context, comment *domain.Comment) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByIssueIDFunc func(ctx context.Context, issueID uuid.UUID) ([]*domain.Comment, error)
	UpdateFunc        func(ctx context.Context, comment *domain.Comment) error
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCommentRepository) FindByIssueID(ctx context.Context, issueID uuid.UUID) ([]*domain.Comment, error) {
	if m.FindByIssueIDFunc != nil {
		return m.FindByIssueIDFunc(ctx, issueID)
	}
	return nil, nil
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	FindByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}
