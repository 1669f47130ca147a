package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/repository"
)

type PromoService struct {
	Repo *repository.PromoRepository
}

func NewPromoService(r *repository.PromoRepository) *PromoService {
	return &PromoService{Repo: r}
}

// Validate checks a code against the promo table. It never touches
// timesused; redemption happens once, at order submission.
func (s *PromoService) Validate(ctx context.Context, code string, now time.Time) (*model.PromoValidation, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return &model.PromoValidation{Valid: false, Reason: "invalid or expired"}, nil
	}
	p, err := s.Repo.GetByCode(ctx, code)
	if err != nil {
		// missing code and expired code are indistinguishable to the customer
		return &model.PromoValidation{Valid: false, Reason: "invalid or expired"}, nil
	}
	v := CheckPromo(p, now)
	return &v, nil
}

// CheckPromo applies the validation rules in order; the first failure wins.
func CheckPromo(p *model.PromoCode, now time.Time) model.PromoValidation {
	reject := func(reason string) model.PromoValidation {
		return model.PromoValidation{Valid: false, Reason: reason}
	}

	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return reject("not yet valid")
	}
	if p.ValidUntil != nil && now.After(*p.ValidUntil) {
		return reject("expired")
	}
	if p.MaxUses != nil && p.TimesUsed >= *p.MaxUses {
		return reject("usage limit reached")
	}
	if p.DiscountType == model.DiscountPercent && (p.DiscountValue <= 0 || p.DiscountValue > 100) {
		return reject("invalid discount")
	}
	if p.DiscountType == model.DiscountFixed && p.DiscountValue <= 0 {
		return reject("invalid discount")
	}

	return model.PromoValidation{
		Valid:         true,
		Code:          p.Code,
		DiscountType:  p.DiscountType,
		DiscountValue: p.DiscountValue,
	}
}

// Admin CRUD below.

func (s *PromoService) Create(ctx context.Context, p *model.PromoCode) (int64, error) {
	if err := validatePromoRecord(p); err != nil {
		return 0, err
	}
	exists, err := s.Repo.ExistsByCode(ctx, p.Code)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, errors.New("promo code already exists")
	}
	return s.Repo.Create(ctx, p)
}

func (s *PromoService) List(ctx context.Context) ([]model.PromoCode, error) {
	return s.Repo.List(ctx)
}

func (s *PromoService) Update(ctx context.Context, p *model.PromoCode) error {
	if err := validatePromoRecord(p); err != nil {
		return err
	}
	return s.Repo.Update(ctx, p)
}

func (s *PromoService) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}

func validatePromoRecord(p *model.PromoCode) error {
	p.Code = strings.TrimSpace(p.Code)
	if p.Code == "" {
		return errors.New("code is required")
	}
	if p.DiscountType != model.DiscountPercent && p.DiscountType != model.DiscountFixed {
		return errors.New("discount type must be percent or fixed")
	}
	if p.DiscountValue <= 0 {
		return errors.New("discount value must be > 0")
	}
	if p.DiscountType == model.DiscountPercent && p.DiscountValue > 100 {
		return errors.New("percent discount cannot exceed 100")
	}
	if p.ValidFrom != nil && p.ValidUntil != nil && p.ValidUntil.Before(*p.ValidFrom) {
		return errors.New("validuntil must be after validfrom")
	}
	if p.MaxUses != nil && *p.MaxUses <= 0 {
		return errors.New("maxuses must be > 0")
	}
	return nil
}
