package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"issue-tracker-api/internal/domain"
)

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByIssueID(ctx context.Context, issueID uuid.UUID) ([]*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// commentRepositoryImpl is the GORM implementation of CommentRepository
type commentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

// Create inserts a new comment. Associations are omitted so a populated
// author struct is never written back to the users table.
func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a comment by its ID with its author loaded
func (r *commentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByIssueID returns all comments on an issue in insertion order with
// their authors eagerly loaded. Ties on created_at are broken by id so the
// order is a stable total order.
func (r *commentRepositoryImpl) FindByIssueID(ctx context.Context, issueID uuid.UUID) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("issue_id = ?", issueID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Update persists changes to an existing comment
func (r *commentRepositoryImpl) Update(ctx context.Context, comment *domain.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(comment).Error; err != nil {
		return err
	}
	return nil
}

// Delete removes a comment; a zero row count signals a concurrent delete
func (r *commentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
