package model

import "time"

// Segment values control which storefront pages list a product.
const (
	SegmentMen    = "Men"
	SegmentWomen  = "Women"
	SegmentUnisex = "Unisex"
)

type Product struct {
	ProductID   int64      `json:"productid"`
	CategoryID  *int64     `json:"categoryid,omitempty"`
	TemplateID  *int64     `json:"templateid,omitempty"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Price       int64      `json:"price"` // integer currency units
	Segment     string     `json:"segment"`
	Sizes       []string   `json:"sizes"`
	Colors      []string   `json:"colors"`
	ImageURL    *string    `json:"imageurl,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// ValidSegment reports whether s is one of the storefront segments.
func ValidSegment(s string) bool {
	return s == SegmentMen || s == SegmentWomen || s == SegmentUnisex
}
