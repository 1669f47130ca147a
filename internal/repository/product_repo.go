package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

// ProductFilter narrows the storefront listing. Zero values mean "no filter".
type ProductFilter struct {
	Segment    string
	CategoryID int64
	Search     string
	Limit      int
	Offset     int
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) (int64, error) {
	var id int64
	query := `
		INSERT INTO products (categoryid, templateid, name, description, price, segment, sizes, colors, imageurl, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING productid
	`
	err := r.DB.QueryRow(ctx, query,
		p.CategoryID, p.TemplateID, p.Name, p.Description, p.Price,
		p.Segment, p.Sizes, p.Colors, p.ImageURL, p.Active, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	query := `
		SELECT productid, categoryid, templateid, name, description, price, segment, sizes, colors, imageurl, active
		FROM products WHERE productid=$1 AND deleted_at IS NULL
	`
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&p.ProductID, &p.CategoryID, &p.TemplateID, &p.Name, &p.Description,
		&p.Price, &p.Segment, &p.Sizes, &p.Colors, &p.ImageURL, &p.Active,
	)
	if err != nil {
		return nil, errors.New("product not found")
	}
	return &p, nil
}

// List returns active products matching the filter, newest first.
func (r *ProductRepository) List(ctx context.Context, f ProductFilter) ([]model.Product, error) {
	query := `
		SELECT productid, categoryid, templateid, name, description, price, segment, sizes, colors, imageurl, active
		FROM products
		WHERE deleted_at IS NULL AND active = TRUE
	`
	args := []interface{}{}
	n := 0

	if f.Segment != "" {
		n++
		query += fmt.Sprintf(" AND (segment=$%d OR segment='Unisex')", n)
		args = append(args, f.Segment)
	}
	if f.CategoryID > 0 {
		n++
		query += fmt.Sprintf(" AND categoryid=$%d", n)
		args = append(args, f.CategoryID)
	}
	if f.Search != "" {
		n++
		query += fmt.Sprintf(" AND name ILIKE $%d", n)
		args = append(args, "%"+f.Search+"%")
	}

	query += fmt.Sprintf(" ORDER BY productid DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ProductID, &p.CategoryID, &p.TemplateID, &p.Name, &p.Description,
			&p.Price, &p.Segment, &p.Sizes, &p.Colors, &p.ImageURL, &p.Active,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET categoryid=$1, templateid=$2, name=$3, description=$4, price=$5,
		    segment=$6, sizes=$7, colors=$8, imageurl=$9, active=$10
		WHERE productid=$11 AND deleted_at IS NULL
	`
	tag, err := r.DB.Exec(ctx, query,
		p.CategoryID, p.TemplateID, p.Name, p.Description, p.Price,
		p.Segment, p.Sizes, p.Colors, p.ImageURL, p.Active, p.ProductID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("product not found or already deleted")
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE products SET deleted_at=$1 WHERE productid=$2 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("product not found or already deleted")
	}
	return nil
}

func (r *ProductRepository) ExistsByCategoryID(ctx context.Context, categoryID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM product_categories WHERE categoryid=$1 AND deleted_at IS NULL)`
	if err := r.DB.QueryRow(ctx, query, categoryID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
