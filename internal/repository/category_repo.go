package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepository struct {
	DB *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(ctx context.Context, name string) (int64, error) {
	var id int64
	query := `INSERT INTO product_categories (categoryname, created_at) VALUES ($1, $2) RETURNING categoryid`
	if err := r.DB.QueryRow(ctx, query, name, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	query := `SELECT categoryid, categoryname FROM product_categories WHERE categoryid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&c.CategoryID, &c.CategoryName); err != nil {
		return nil, errors.New("category not found")
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	query := `SELECT categoryid, categoryname FROM product_categories WHERE deleted_at IS NULL ORDER BY categoryid`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.CategoryID, &c.CategoryName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id int64, name string) error {
	query := `UPDATE product_categories SET categoryname=$1 WHERE categoryid=$2 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, name, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("category not found or already deleted")
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE product_categories SET deleted_at=$1 WHERE categoryid=$2 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("category not found or already deleted")
	}
	return nil
}

func (r *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM product_categories WHERE categoryname=$1 AND deleted_at IS NULL)`
	if err := r.DB.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
