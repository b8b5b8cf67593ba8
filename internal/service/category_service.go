package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"taskapi/internal/apperr"
	"taskapi/internal/model"
	"taskapi/internal/repository"
)

// CategoryService manages a user's categories.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *CategoryService) Create(ctx context.Context, userID uint, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("category name is required")
	}

	_, err := s.repo.FindByName(ctx, userID, name)
	switch {
	case err == nil:
		return nil, errCategoryExists(name)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	category := model.Category{UserID: userID, Name: name}
	if err := s.repo.Create(ctx, &category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errCategoryExists(name)
		}
		return nil, err
	}
	return &category, nil
}

// Delete removes the category from every task that carried it. The tasks
// themselves stay.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID uint) error {
	deleted, err := s.repo.Delete(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if !deleted {
		return errCategoryNotFound()
	}
	return nil
}

func errCategoryExists(name string) error {
	return apperr.Conflict("category %q already exists", name)
}

func errCategoryNotFound() error {
	return apperr.NotFound("category not found")
}
