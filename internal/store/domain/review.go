package domain

import "time"

// Review score bounds.
const (
	MinScore = 1
	MaxScore = 5
)

// Review represents a product review submitted by a user.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Score     int       `json:"score"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidScore checks whether a score lies within the allowed 1..5 range.
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
