package models

import "time"

// PortfolioType enumerates the kinds of work shown on the portfolio page.
type PortfolioType string

const (
	TypeWeb    PortfolioType = "web"
	TypeMobile PortfolioType = "mobile"
	TypeDesign PortfolioType = "design"
)

// Valid reports whether t is one of the known portfolio types.
func (t PortfolioType) Valid() bool {
	switch t {
	case TypeWeb, TypeMobile, TypeDesign:
		return true
	}
	return false
}

// PortfolioItem is a single showcased project.
type PortfolioItem struct {
	ID          string        `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Image       string        `bson:"image,omitempty" json:"image"`
	Link        string        `bson:"link,omitempty" json:"link,omitempty"`
	Type        PortfolioType `bson:"type" json:"type"`
	IsFeatured  bool          `bson:"isFeatured" json:"isFeatured"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}
