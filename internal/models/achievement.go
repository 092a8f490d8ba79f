package models

import "time"

// Achievement groups the highlights of one year. Items may carry inline
// markup and are stored verbatim.
type Achievement struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Year      int       `bson:"year" json:"year"`
	Items     []string  `bson:"items" json:"items"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
