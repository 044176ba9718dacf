package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"go.uber.org/zap"
)

// CategoryService 产品分类服务
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	logger       *zap.Logger
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, logger: logger}
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *CategoryService) List(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*entity.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

// Create 新建分类，名称不区分大小写去重
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, validationError("分类名称不能为空")
	}
	if _, err := s.categoryRepo.FindByName(ctx, name); err == nil {
		return nil, conflictError("分类名称已存在")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	category := &entity.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: input.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("category created",
		zap.String("category_id", category.ID),
		zap.String("name", category.Name))
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (*entity.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name != "" && !strings.EqualFold(name, category.Name) {
		if _, err := s.categoryRepo.FindByName(ctx, name); err == nil {
			return nil, conflictError("分类名称已存在")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		category.Name = name
	}
	category.Description = input.Description

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，名下产品分类字段置空
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", zap.String("category_id", id))
	return nil
}
