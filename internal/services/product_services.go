package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/repository"
)

type ProductService struct {
	Repo         *repository.ProductRepository
	TemplateRepo *repository.TemplateRepository
}

func NewProductService(r *repository.ProductRepository, tr *repository.TemplateRepository) *ProductService {
	return &ProductService{Repo: r, TemplateRepo: tr}
}

func (s *ProductService) Create(ctx context.Context, p *model.Product) (int64, error) {
	if err := s.prepare(ctx, p); err != nil {
		return 0, err
	}
	return s.Repo.Create(ctx, p)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) ([]model.Product, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Segment != "" && !model.ValidSegment(f.Segment) {
		return nil, errors.New("invalid segment")
	}
	return s.Repo.List(ctx, f)
}

func (s *ProductService) Update(ctx context.Context, p *model.Product) error {
	if err := s.prepare(ctx, p); err != nil {
		return err
	}
	return s.Repo.Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}

// prepare validates a product and, when it references a template, prefills
// empty sizes/colors/price from the template preset.
func (s *ProductService) prepare(ctx context.Context, p *model.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("name is required")
	}
	if !model.ValidSegment(p.Segment) {
		return errors.New("segment must be Men, Women or Unisex")
	}
	if p.CategoryID != nil {
		ok, err := s.Repo.ExistsByCategoryID(ctx, *p.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("category not found")
		}
	}
	if p.TemplateID != nil {
		t, err := s.TemplateRepo.GetByID(ctx, *p.TemplateID)
		if err != nil {
			return err
		}
		if len(p.Sizes) == 0 {
			p.Sizes = t.Sizes
		}
		if len(p.Colors) == 0 {
			p.Colors = t.Colors
		}
		if p.Price == 0 {
			p.Price = t.BasePrice
		}
	}
	if p.Price <= 0 {
		return errors.New("price must be > 0")
	}
	if len(p.Sizes) == 0 {
		return errors.New("at least one size is required")
	}
	if len(p.Colors) == 0 {
		return errors.New("at least one color is required")
	}
	return nil
}
