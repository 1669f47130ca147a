package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/repository"
)

type TemplateService struct {
	Repo *repository.TemplateRepository
}

func NewTemplateService(r *repository.TemplateRepository) *TemplateService {
	return &TemplateService{Repo: r}
}

func (s *TemplateService) Create(ctx context.Context, t *model.ProductTemplate) (int64, error) {
	if err := validateTemplate(t); err != nil {
		return 0, err
	}
	return s.Repo.Create(ctx, t)
}

func (s *TemplateService) Get(ctx context.Context, id int64) (*model.ProductTemplate, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *TemplateService) List(ctx context.Context) ([]model.ProductTemplate, error) {
	return s.Repo.List(ctx)
}

func (s *TemplateService) Update(ctx context.Context, t *model.ProductTemplate) error {
	if err := validateTemplate(t); err != nil {
		return err
	}
	return s.Repo.Update(ctx, t)
}

func (s *TemplateService) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}

func validateTemplate(t *model.ProductTemplate) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return errors.New("template name is required")
	}
	if t.BasePrice < 0 {
		return errors.New("base price must be >= 0")
	}
	if len(t.Sizes) == 0 {
		return errors.New("at least one size is required")
	}
	if len(t.Colors) == 0 {
		return errors.New("at least one color is required")
	}
	return nil
}
