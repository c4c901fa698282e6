package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a user record in the database.
type User struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key"`
	Name                 string    `gorm:"not null;size:255"`
	Email                string    `gorm:"uniqueIndex;not null;size:255"`
	Password             string    `gorm:"not null"`
	UserType             uint8     `gorm:"type:smallint;not null;index"`
	Coins                int       `gorm:"not null;default:0"`
	DietaryPreferenceSet bool      `gorm:"not null;default:false"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
