package model

// LineKey identifies a cart line. Adding an item with an existing key
// increments quantity instead of appending a duplicate line.
type LineKey struct {
	ProductID int64  `json:"productid"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// LineItem is one (product, size, color) entry in a cart or order.
type LineItem struct {
	ProductID int64  `json:"productid"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitprice"` // integer currency units
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	ImageURL  string `json:"imageurl,omitempty"`
}

func (li LineItem) Key() LineKey {
	return LineKey{ProductID: li.ProductID, Size: li.Size, Color: li.Color}
}

// AppliedPromo is the promo attached to a cart. At most one per cart,
// re-entered per session, never persisted with the server cart.
type AppliedPromo struct {
	Code          string `json:"code"`
	DiscountType  string `json:"discounttype"`
	DiscountValue int64  `json:"discountvalue"`
}
