package model

import "time"

const (
	StatusPending   = "Pending"
	StatusShipped   = "Shipped"
	StatusCompleted = "Completed"
	StatusReturned  = "Returned"
	StatusCancelled = "Cancelled"
)

const (
	PaymentCard     = "card"
	PaymentCOD      = "cod"
	PaymentTransfer = "transfer"
)

// Order represents an entry in the orders table. Created once at checkout;
// only the status changes afterwards, via admin action.
type Order struct {
	OrderID       int64      `json:"orderid"`
	Reference     string     `json:"reference"`
	CustomerID    *int64     `json:"customerid,omitempty"` // nil for guest orders
	CustomerName  string     `json:"customername"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	PostalCode    string     `json:"postalcode"`
	PaymentMethod string     `json:"paymentmethod"`
	PromoCode     *string    `json:"promocode,omitempty"`
	Subtotal      int64      `json:"subtotal"`
	Discount      int64      `json:"discount"`
	Shipping      int64      `json:"shipping"`
	Tax           int64      `json:"tax"`
	Fee           int64      `json:"fee"`
	Total         int64      `json:"total"`
	Status        string     `json:"status"`
	Source        string     `json:"source"`
	OrderDate     time.Time  `json:"orderdate"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is a row in the order_items table. Name and unit price are
// captured at purchase time so later catalog edits do not rewrite history.
type OrderItem struct {
	OrderItemID int64  `json:"orderitemid"`
	OrderID     int64  `json:"orderid"`
	ProductID   int64  `json:"productid"`
	Name        string `json:"name"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitprice"`
}
