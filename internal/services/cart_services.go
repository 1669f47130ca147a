package services

import (
	"context"
	"errors"
	"time"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/cart"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/repository"
)

// CartService glues the session cart store to the catalog and the per-user
// cart table.
type CartService struct {
	ProductRepo  *repository.ProductRepository
	CartRepo     *repository.CartRepository
	CustomerRepo *repository.CustomerRepository
	Promo        *PromoService
}

func NewCartService(
	pr *repository.ProductRepository,
	cr *repository.CartRepository,
	cur *repository.CustomerRepository,
	promo *PromoService,
) *CartService {
	return &CartService{ProductRepo: pr, CartRepo: cr, CustomerRepo: cur, Promo: promo}
}

// AddItem resolves the product, checks the chosen variant exists, and adds
// the line to the session cart. Stock is not checked at add time.
func (s *CartService) AddItem(ctx context.Context, sess *cart.Session, productID int64, size, color string, qty int) error {
	p, err := s.ProductRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if !p.Active {
		return errors.New("product not available")
	}
	if !contains(p.Sizes, size) {
		return errors.New("size not available for this product")
	}
	if !contains(p.Colors, color) {
		return errors.New("color not available for this product")
	}

	line := model.LineItem{
		ProductID: p.ProductID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Size:      size,
		Color:     color,
	}
	if p.ImageURL != nil {
		line.ImageURL = *p.ImageURL
	}
	sess.Store.AddItem(line, qty)
	return nil
}

func (s *CartService) UpdateQuantity(sess *cart.Session, key model.LineKey, delta int) error {
	return sess.Store.UpdateQuantity(key, delta)
}

func (s *CartService) RemoveItem(sess *cart.Session, key model.LineKey) {
	sess.Store.RemoveItem(key)
}

func (s *CartService) Clear(sess *cart.Session) {
	sess.Store.Clear()
}

// ApplyPromo validates the code and attaches it to the cart when accepted.
// The rejection reason is returned to the caller either way.
func (s *CartService) ApplyPromo(ctx context.Context, sess *cart.Session, code string) (*model.PromoValidation, error) {
	v, err := s.Promo.Validate(ctx, code, time.Now())
	if err != nil {
		return nil, err
	}
	if v.Valid {
		sess.Store.ApplyPromo(model.AppliedPromo{
			Code:          v.Code,
			DiscountType:  v.DiscountType,
			DiscountValue: v.DiscountValue,
		})
	}
	return v, nil
}

func (s *CartService) RemovePromo(sess *cart.Session) {
	sess.Store.RemovePromo()
}

// SignIn resolves the authenticated customer and runs the one-time guest
// cart merge into their server cart.
func (s *CartService) SignIn(ctx context.Context, sess *cart.Session, authID int64) error {
	c, err := s.CustomerRepo.GetByAuthID(ctx, authID)
	if err != nil {
		return err
	}
	backend := cart.NewServerBackend(s.CartRepo, c.CustomerID)
	return sess.SignIn(ctx, c.CustomerID, backend)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
