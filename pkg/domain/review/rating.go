// Package review holds the rating an eater leaves on a purchase. A purchase
// can be rated once; the first rating earns the review reward.
package review

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrAlreadyRated is returned when a purchase has already been rated.
	ErrAlreadyRated = errors.New("purchase already rated")
	// ErrInvalidRating is returned for a rating outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Rating is an eater's review of a purchase.
type Rating struct {
	ID         uuid.UUID `json:"id"`
	PurchaseID uuid.UUID `json:"purchase_id"`
	EaterID    uuid.UUID `json:"eater_id"`
	Score      int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// New creates a rating for a purchase.
func New(purchaseID, eaterID uuid.UUID, score int, comment string) (*Rating, error) {
	if score < 1 || score > 5 {
		return nil, ErrInvalidRating
	}
	return &Rating{
		ID:         uuid.New(),
		PurchaseID: purchaseID,
		EaterID:    eaterID,
		Score:      score,
		Comment:    comment,
	}, nil
}
