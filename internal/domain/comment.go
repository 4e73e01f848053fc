package domain

import "github.com/google/uuid"

// Comment represents a user-authored note attached to exactly one issue
type Comment struct {
	BaseModel
	IssueID uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_issue_id" json:"issue_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_user_id" json:"user_id"`
	Body    string    `gorm:"type:text;not null" json:"body"`

	Issue Issue `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE" json:"issue,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
