package service

import (
	"context"
	"strings"

	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"go.uber.org/zap"
)

// SearchService 跨资源搜索服务
type SearchService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

func NewSearchService(repos *repository.Repositories, logger *zap.Logger) *SearchService {
	return &SearchService{repos: repos, logger: logger}
}

// SearchResult 聚合搜索结果
type SearchResult struct {
	Products  []entity.Product      `json:"products"`
	Suppliers []entity.Supplier     `json:"suppliers"`
	Orders    []entity.PurchaseOrder `json:"orders"`
}

// Search 按关键词在产品、供应商、订单三类资源内搜索
func (s *SearchService) Search(ctx context.Context, keyword string, limit int) (*SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, validationError("搜索关键词不能为空")
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	result := &SearchResult{}

	products, _, err := s.repos.Product.FindAll(ctx, repository.ProductListParams{
		Search: keyword, Page: 1, PageSize: limit,
	})
	if err != nil {
		return nil, err
	}
	result.Products = products

	suppliers, _, err := s.repos.Supplier.FindAll(ctx, repository.SupplierListParams{
		Search: keyword, Page: 1, PageSize: limit,
	})
	if err != nil {
		return nil, err
	}
	result.Suppliers = suppliers

	orders, _, err := s.repos.Order.FindAll(ctx, repository.OrderListParams{
		Search: keyword, Page: 1, PageSize: limit,
	})
	if err != nil {
		return nil, err
	}
	result.Orders = orders

	return result, nil
}
