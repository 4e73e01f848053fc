package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Issue represents a trackable work item owned by a user
type Issue struct {
	BaseModel
	UserID uuid.UUID      `gorm:"type:uuid;not null;index:idx_issues_user_id" json:"user_id"`
	Title  string         `gorm:"type:varchar(255);not null" json:"title"`
	Body   string         `gorm:"type:text" json:"body"`
	Labels datatypes.JSON `gorm:"type:jsonb" json:"labels,omitempty"`

	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comments []Comment `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// TableName specifies the table name for Issue
func (Issue) TableName() string {
	return "issues"
}
