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

// ProductService 产品服务
type ProductService struct {
	productRepo  *repository.ProductRepository
	categoryRepo *repository.CategoryRepository
	logger       *zap.Logger
}

func NewProductService(productRepo *repository.ProductRepository, categoryRepo *repository.CategoryRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

type ProductInput struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	SKU          string  `json:"sku"`
	Barcode      string  `json:"barcode"`
	CategoryID   string  `json:"category_id"`
	Quantity     *int    `json:"quantity"`
	ReorderLevel *int    `json:"reorder_level"`
	UnitPrice    float64 `json:"unit_price"`
	CostPrice    float64 `json:"cost_price"`
	ImageURL     string  `json:"image_url"`
}

func (s *ProductService) List(ctx context.Context, params repository.ProductListParams) ([]entity.Product, int64, error) {
	return s.productRepo.FindAll(ctx, params)
}

func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if strings.TrimSpace(barcode) == "" {
		return nil, validationError("条码不能为空")
	}
	return s.productRepo.FindByBarcode(ctx, barcode)
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, validationError("产品名称不能为空")
	}
	if input.UnitPrice < 0 || input.CostPrice < 0 {
		return nil, validationError("价格不能为负")
	}

	var categoryID *string
	if input.CategoryID != "" {
		if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, validationError("分类不存在")
			}
			return nil, err
		}
		categoryID = &input.CategoryID
	}

	quantity := 0
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, validationError("库存数量不能为负")
		}
		quantity = *input.Quantity
	}
	reorderLevel := 5
	if input.ReorderLevel != nil && *input.ReorderLevel >= 0 {
		reorderLevel = *input.ReorderLevel
	}

	product := &entity.Product{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  input.Description,
		SKU:          input.SKU,
		Barcode:      input.Barcode,
		CategoryID:   categoryID,
		Quantity:     quantity,
		ReorderLevel: reorderLevel,
		UnitPrice:    input.UnitPrice,
		CostPrice:    input.CostPrice,
		ImageURL:     input.ImageURL,
		IsActive:     true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name))
	return product, nil
}

// Update 更新产品主数据。库存数量不走这里，必须通过库存流水变更。
func (s *ProductService) Update(ctx context.Context, id string, input ProductInput) (*entity.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.UnitPrice < 0 || input.CostPrice < 0 {
		return nil, validationError("价格不能为负")
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	product.Description = input.Description
	product.SKU = input.SKU
	product.Barcode = input.Barcode
	if input.CategoryID != "" {
		if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, validationError("分类不存在")
			}
			return nil, err
		}
		product.CategoryID = &input.CategoryID
	} else {
		product.CategoryID = nil
	}
	if input.ReorderLevel != nil && *input.ReorderLevel >= 0 {
		product.ReorderLevel = *input.ReorderLevel
	}
	product.UnitPrice = input.UnitPrice
	product.CostPrice = input.CostPrice
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除产品。存在库存流水的产品转为停用以保全历史。
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hasTx, err := s.productRepo.HasTransactions(ctx, id)
	if err != nil {
		return err
	}
	if hasTx {
		product.IsActive = false
		if err := s.productRepo.Update(ctx, product); err != nil {
			return err
		}
		s.logger.Info("product deactivated instead of deleted",
			zap.String("product_id", id))
		return nil
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

// SetImage 更新产品图片地址
func (s *ProductService) SetImage(ctx context.Context, id, imageURL string) (*entity.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.ImageURL = imageURL
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// LowStock 低库存产品清单
func (s *ProductService) LowStock(ctx context.Context, limit int) ([]entity.Product, error) {
	return s.productRepo.FindLowStock(ctx, limit)
}
