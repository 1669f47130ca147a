package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TemplateRepository struct {
	DB *pgxpool.Pool
}

func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

func (r *TemplateRepository) Create(ctx context.Context, t *model.ProductTemplate) (int64, error) {
	var id int64
	query := `
		INSERT INTO product_templates (name, sizes, colors, baseprice, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING templateid
	`
	if err := r.DB.QueryRow(ctx, query, t.Name, t.Sizes, t.Colors, t.BasePrice, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, id int64) (*model.ProductTemplate, error) {
	var t model.ProductTemplate
	query := `SELECT templateid, name, sizes, colors, baseprice FROM product_templates WHERE templateid=$1 AND deleted_at IS NULL`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&t.TemplateID, &t.Name, &t.Sizes, &t.Colors, &t.BasePrice); err != nil {
		return nil, errors.New("template not found")
	}
	return &t, nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]model.ProductTemplate, error) {
	query := `SELECT templateid, name, sizes, colors, baseprice FROM product_templates WHERE deleted_at IS NULL ORDER BY templateid`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ProductTemplate
	for rows.Next() {
		var t model.ProductTemplate
		if err := rows.Scan(&t.TemplateID, &t.Name, &t.Sizes, &t.Colors, &t.BasePrice); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *TemplateRepository) Update(ctx context.Context, t *model.ProductTemplate) error {
	query := `UPDATE product_templates SET name=$1, sizes=$2, colors=$3, baseprice=$4 WHERE templateid=$5 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, t.Name, t.Sizes, t.Colors, t.BasePrice, t.TemplateID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("template not found or already deleted")
	}
	return nil
}

func (r *TemplateRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE product_templates SET deleted_at=$1 WHERE templateid=$2 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("template not found or already deleted")
	}
	return nil
}
