package repository

import (
	"context"
	"errors"

	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository 产品仓库
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type ProductListParams struct {
	Search     string
	CategoryID string
	LowStock   bool
	ActiveOnly bool
	SortBy     string
	SortDir    string
	Page       int
	PageSize   int
}

// 可排序字段白名单，避免把用户输入拼进ORDER BY
var productSortColumns = map[string]string{
	"name":       "name",
	"sku":        "sku",
	"quantity":   "quantity",
	"unit_price": "unit_price",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// FindAll 产品列表
func (r *ProductRepository) FindAll(ctx context.Context, params ProductListParams) ([]entity.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		kw := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ? OR barcode ILIKE ?", kw, kw, kw)
	}
	if params.CategoryID != "" {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	if params.LowStock {
		query = query.Where("quantity <= reorder_level")
	}
	if params.ActiveOnly {
		query = query.Where("is_active = true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := productSortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if params.SortDir == "asc" {
		direction = "ASC"
	}

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = 20
	}

	var products []entity.Product
	err := query.Preload("Category").
		Order(column + " " + direction).
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize).
		Find(&products).Error
	return products, total, err
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDForUpdate 行级锁读取，供完成收货等读改写流程在事务内使用
func (r *ProductRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*entity.Product, error) {
	var product entity.Product
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Preload("Category").Where("barcode = ?", barcode).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Product{}).Error
}

// FindLowStock 库存不高于补货线的活跃产品
func (r *ProductRepository) FindLowStock(ctx context.Context, limit int) ([]entity.Product, error) {
	var products []entity.Product
	query := r.db.WithContext(ctx).Preload("Category").
		Where("quantity <= reorder_level AND is_active = true").
		Order("quantity ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&products).Error
	return products, err
}

func (r *ProductRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("quantity <= reorder_level AND is_active = true").
		Count(&count).Error
	return count, err
}

func (r *ProductRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("is_active = true").Count(&count).Error
	return count, err
}

// InventoryValue 当前库存总成本
func (r *ProductRepository) InventoryValue(ctx context.Context) (float64, error) {
	var result struct{ Total float64 }
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(quantity * cost_price), 0) AS total
		FROM products
		WHERE is_active = true
	`).Scan(&result).Error
	return result.Total, err
}

// HasTransactions 产品是否存在库存流水
func (r *ProductRepository) HasTransactions(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.InventoryTransaction{}).
		Where("product_id = ?", id).Count(&count).Error
	return count > 0, err
}
