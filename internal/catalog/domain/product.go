package domain

import "time"

// Product is a catalog entry stored as a document. Unlike the store
// service's relational products it carries no review aggregates.
type Product struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	About     string    `json:"about" bson:"about"`
	Price     float64   `json:"price" bson:"price"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
