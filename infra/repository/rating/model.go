package rating

import (
	"time"

	"github.com/google/uuid"
)

// Rating represents a persisted purchase review.
type Rating struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	PurchaseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	EaterID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Score      int       `gorm:"not null"`
	Comment    string    `gorm:"size:1024"`
	CreatedAt  time.Time
}

// TableName specifies the table name for the Rating model.
func (Rating) TableName() string {
	return "ratings"
}
