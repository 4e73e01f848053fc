package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated user. Rows are provisioned by the
// identity service; this service only reads them for author associations.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"not null;default:''" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
