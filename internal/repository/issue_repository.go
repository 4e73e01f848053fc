package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"issue-tracker-api/internal/domain"
)

// IssueRepository defines the interface for issue data access
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error)
	FindAll(ctx context.Context) ([]*domain.Issue, error)
	Update(ctx context.Context, issue *domain.Issue) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// issueRepositoryImpl is the GORM implementation of IssueRepository
type issueRepositoryImpl struct {
	db *gorm.DB
}

// NewIssueRepository creates a new instance of IssueRepository
func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepositoryImpl{db: db}
}

// Create inserts a new issue
func (r *issueRepositoryImpl) Create(ctx context.Context, issue *domain.Issue) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(issue).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds an issue by its ID
func (r *issueRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	var issue domain.Issue
	if err := r.db.WithContext(ctx).First(&issue, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

// FindAll returns all issues, newest first
func (r *issueRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Issue, error) {
	var issues []*domain.Issue
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

// Update persists changes to an existing issue
func (r *issueRepositoryImpl) Update(ctx context.Context, issue *domain.Issue) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(issue).Error; err != nil {
		return err
	}
	return nil
}

// Delete removes an issue and its comments. The comment delete is explicit
// so the cascade holds on stores where the FK constraint is not enforced;
// a zero row count on the issue row signals a concurrent delete.
func (r *issueRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.Issue{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
