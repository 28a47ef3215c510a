package service

import (
	"context"
	"fmt"

	"newsapi-backend/internal/domains/category"
)

type categoryService struct {
	repo category.Repository
}

func NewCategoryService(repo category.Repository) category.Service {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]category.CategoryResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]category.CategoryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, category.ToResponse(&rows[i].Category, rows[i].NewsCount))
	}
	return out, nil
}
