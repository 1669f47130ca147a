package model

import "time"

// ProductTemplate is an admin-managed preset of sizes/colors/base price
// that prefills new products.
type ProductTemplate struct {
	TemplateID int64      `json:"templateid"`
	Name       string     `json:"name"`
	Sizes      []string   `json:"sizes"`
	Colors     []string   `json:"colors"`
	BasePrice  int64      `json:"baseprice"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}
