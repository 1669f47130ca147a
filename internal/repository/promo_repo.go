package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPromoExhausted is returned when a redeem hits the usage cap.
var ErrPromoExhausted = errors.New("usage limit reached")

type PromoRepository struct {
	DB *pgxpool.Pool
}

func NewPromoRepository(db *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{DB: db}
}

// GetByCode matches codes case-insensitively.
func (r *PromoRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	var p model.PromoCode
	query := `
		SELECT promoid, code, discounttype, discountvalue, validfrom, validuntil, maxuses, timesused
		FROM promo_codes
		WHERE LOWER(code)=LOWER($1) AND deleted_at IS NULL
	`
	err := r.DB.QueryRow(ctx, query, code).Scan(
		&p.PromoID, &p.Code, &p.DiscountType, &p.DiscountValue,
		&p.ValidFrom, &p.ValidUntil, &p.MaxUses, &p.TimesUsed,
	)
	if err != nil {
		return nil, errors.New("promo not found")
	}
	return &p, nil
}

// RedeemTx increments timesused exactly once per order inside the order
// transaction. The cap is enforced in the same statement so two concurrent
// orders cannot both take the last use.
func (r *PromoRepository) RedeemTx(ctx context.Context, tx pgx.Tx, code string) error {
	query := `
		UPDATE promo_codes
		SET timesused = timesused + 1
		WHERE LOWER(code)=LOWER($1) AND deleted_at IS NULL
		  AND (maxuses IS NULL OR timesused < maxuses)
	`
	tag, err := tx.Exec(ctx, query, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPromoExhausted
	}
	return nil
}

func (r *PromoRepository) Create(ctx context.Context, p *model.PromoCode) (int64, error) {
	var id int64
	query := `
		INSERT INTO promo_codes (code, discounttype, discountvalue, validfrom, validuntil, maxuses, timesused, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7)
		RETURNING promoid
	`
	err := r.DB.QueryRow(ctx, query,
		p.Code, p.DiscountType, p.DiscountValue, p.ValidFrom, p.ValidUntil, p.MaxUses, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PromoRepository) List(ctx context.Context) ([]model.PromoCode, error) {
	query := `
		SELECT promoid, code, discounttype, discountvalue, validfrom, validuntil, maxuses, timesused
		FROM promo_codes WHERE deleted_at IS NULL ORDER BY promoid
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PromoCode
	for rows.Next() {
		var p model.PromoCode
		if err := rows.Scan(
			&p.PromoID, &p.Code, &p.DiscountType, &p.DiscountValue,
			&p.ValidFrom, &p.ValidUntil, &p.MaxUses, &p.TimesUsed,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PromoRepository) Update(ctx context.Context, p *model.PromoCode) error {
	query := `
		UPDATE promo_codes
		SET code=$1, discounttype=$2, discountvalue=$3, validfrom=$4, validuntil=$5, maxuses=$6
		WHERE promoid=$7 AND deleted_at IS NULL
	`
	tag, err := r.DB.Exec(ctx, query, p.Code, p.DiscountType, p.DiscountValue, p.ValidFrom, p.ValidUntil, p.MaxUses, p.PromoID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("promo not found or already deleted")
	}
	return nil
}

func (r *PromoRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE promo_codes SET deleted_at=$1 WHERE promoid=$2 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("promo not found or already deleted")
	}
	return nil
}

func (r *PromoRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM promo_codes WHERE LOWER(code)=LOWER($1) AND deleted_at IS NULL)`
	if err := r.DB.QueryRow(ctx, query, code).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
