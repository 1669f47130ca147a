package repository

import (
	"context"
	"time"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CartRepository persists the per-user cart table. Rows are keyed
// (userid, productid, size, color); prices and names come from the products
// table on read so the server cart never goes stale.
type CartRepository struct {
	DB *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{DB: db}
}

// GetCart returns the user's cart lines joined to the catalog.
func (r *CartRepository) GetCart(ctx context.Context, userID int64) ([]model.LineItem, error) {
	query := `
		SELECT ci.productid, p.name, p.price, ci.quantity, ci.size, ci.color, COALESCE(p.imageurl, '')
		FROM cart_items ci
		JOIN products p ON p.productid = ci.productid
		WHERE ci.userid=$1 AND p.deleted_at IS NULL
		ORDER BY ci.created_at
	`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LineItem
	for rows.Next() {
		var li model.LineItem
		if err := rows.Scan(&li.ProductID, &li.Name, &li.UnitPrice, &li.Quantity, &li.Size, &li.Color, &li.ImageURL); err != nil {
			return nil, err
		}
		out = append(out, li)
	}
	return out, rows.Err()
}

// MergeCart folds the given lines into the user's server cart in one
// transaction, accumulating quantities on conflict, and returns the merged
// cart. All-or-nothing: a failed merge leaves the server cart untouched, so
// the login merge can be retried safely.
func (r *CartRepository) MergeCart(ctx context.Context, userID int64, lines []model.LineItem) ([]model.LineItem, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	for _, li := range lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO cart_items (userid, productid, size, color, quantity, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (userid, productid, size, color)
			DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		`, userID, li.ProductID, li.Size, li.Color, li.Quantity, time.Now())
		if err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetCart(ctx, userID)
}

// ReplaceCart swaps the user's server cart for the given snapshot in one
// transaction. Used by the best-effort mirror after local mutations.
func (r *CartRepository) ReplaceCart(ctx context.Context, userID int64, lines []model.LineItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE userid=$1`, userID); err != nil {
		return err
	}
	for _, li := range lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO cart_items (userid, productid, size, color, quantity, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, userID, li.ProductID, li.Size, li.Color, li.Quantity, time.Now())
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *CartRepository) ClearCart(ctx context.Context, userID int64) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE userid=$1`, userID)
	return err
}
