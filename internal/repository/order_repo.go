package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

// OrderFilter narrows the admin listing. Zero values mean "no filter".
type OrderFilter struct {
	Status string
	Limit  int
	Offset int
}

// CreateTx inserts the order and its line items inside the caller's
// transaction so a failed item insert never leaves a headless order.
func (r *OrderRepository) CreateTx(ctx context.Context, tx pgx.Tx, o *model.Order) (int64, error) {
	query := `
		INSERT INTO orders
			(reference, customerid, customername, email, phone, address, city, postalcode,
			 paymentmethod, promocode, subtotal, discount, shipping, tax, fee, total,
			 status, source, orderdate, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8,
			 $9, $10, $11, $12, $13, $14, $15, $16,
			 $17, $18, $19, $20)
		RETURNING orderid
	`
	var orderID int64
	err := tx.QueryRow(ctx, query,
		o.Reference, o.CustomerID, o.CustomerName, o.Email, o.Phone, o.Address, o.City, o.PostalCode,
		o.PaymentMethod, o.PromoCode, o.Subtotal, o.Discount, o.Shipping, o.Tax, o.Fee, o.Total,
		o.Status, o.Source, o.OrderDate, time.Now(),
	).Scan(&orderID)
	if err != nil {
		return 0, err
	}

	for _, it := range o.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (orderid, productid, name, size, color, quantity, unitprice)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, orderID, it.ProductID, it.Name, it.Size, it.Color, it.Quantity, it.UnitPrice)
		if err != nil {
			return 0, err
		}
	}
	return orderID, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	var o model.Order
	query := `
		SELECT orderid, reference, customerid, customername, email, phone, address, city, postalcode,
		       paymentmethod, promocode, subtotal, discount, shipping, tax, fee, total,
		       status, source, orderdate
		FROM orders WHERE orderid=$1 AND deleted_at IS NULL
	`
	err := r.DB.QueryRow(ctx, query, orderID).Scan(
		&o.OrderID, &o.Reference, &o.CustomerID, &o.CustomerName, &o.Email, &o.Phone, &o.Address, &o.City, &o.PostalCode,
		&o.PaymentMethod, &o.PromoCode, &o.Subtotal, &o.Discount, &o.Shipping, &o.Tax, &o.Fee, &o.Total,
		&o.Status, &o.Source, &o.OrderDate,
	)
	if err != nil {
		return nil, errors.New("order not found")
	}

	items, err := r.getItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepository) getItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT orderitemid, orderid, productid, name, size, color, quantity, unitprice
		FROM order_items WHERE orderid=$1 ORDER BY orderitemid
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.OrderItemID, &it.OrderID, &it.ProductID, &it.Name, &it.Size, &it.Color, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListByCustomer returns a customer's orders, newest first, without items.
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	query := `
		SELECT orderid, reference, total, status, paymentmethod, orderdate
		FROM orders WHERE customerid=$1 AND deleted_at IS NULL ORDER BY orderid DESC
	`
	rows, err := r.DB.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.OrderID, &o.Reference, &o.Total, &o.Status, &o.PaymentMethod, &o.OrderDate); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// List returns orders for the admin table, optionally filtered by status.
func (r *OrderRepository) List(ctx context.Context, f OrderFilter) ([]model.Order, error) {
	query := `
		SELECT orderid, reference, customername, email, phone, total, status, paymentmethod, promocode, source, orderdate
		FROM orders WHERE deleted_at IS NULL
	`
	args := []interface{}{}
	if f.Status != "" {
		query += ` AND status=$1`
		args = append(args, f.Status)
	}
	query += ` ORDER BY orderid DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		if f.Status != "" {
			query += ` LIMIT $2 OFFSET $3`
		} else {
			query += ` LIMIT $1 OFFSET $2`
		}
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.OrderID, &o.Reference, &o.CustomerName, &o.Email, &o.Phone, &o.Total, &o.Status, &o.PaymentMethod, &o.PromoCode, &o.Source, &o.OrderDate); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ListForExport returns all orders with items loaded, oldest first, for the
// admin CSV export.
func (r *OrderRepository) ListForExport(ctx context.Context) ([]model.Order, error) {
	query := `
		SELECT orderid, reference, customerid, customername, email, phone, address, city, postalcode,
		       paymentmethod, promocode, subtotal, discount, shipping, tax, fee, total,
		       status, source, orderdate
		FROM orders WHERE deleted_at IS NULL ORDER BY orderid
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.OrderID, &o.Reference, &o.CustomerID, &o.CustomerName, &o.Email, &o.Phone, &o.Address, &o.City, &o.PostalCode,
			&o.PaymentMethod, &o.PromoCode, &o.Subtotal, &o.Discount, &o.Shipping, &o.Tax, &o.Fee, &o.Total,
			&o.Status, &o.Source, &o.OrderDate,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.getItems(ctx, out[i].OrderID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

// UpdateStatus sets the order status. Transition legality is checked by the
// service before this runs.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE orders SET status=$1 WHERE orderid=$2 AND deleted_at IS NULL`, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("order not found")
	}
	return nil
}

// StatusCount is one dashboard row: how many orders sit in a status and the
// revenue they represent.
type StatusCount struct {
	Status  string `json:"status"`
	Count   int64  `json:"count"`
	Revenue int64  `json:"revenue"`
}

func (r *OrderRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders WHERE deleted_at IS NULL GROUP BY status ORDER BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count, &sc.Revenue); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
