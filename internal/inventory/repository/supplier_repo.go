package repository

import (
	"context"
	"errors"

	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"gorm.io/gorm"
)

// SupplierRepository 供应商仓库
type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

type SupplierListParams struct {
	Search     string
	ActiveOnly bool
	Page       int
	PageSize   int
}

// FindAll 供应商列表
func (r *SupplierRepository) FindAll(ctx context.Context, params SupplierListParams) ([]entity.Supplier, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Supplier{})

	if params.Search != "" {
		kw := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR contact_person ILIKE ? OR email ILIKE ?", kw, kw, kw)
	}
	if params.ActiveOnly {
		query = query.Where("is_active = true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = 20
	}

	var suppliers []entity.Supplier
	err := query.Order("name ASC").
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize).
		Find(&suppliers).Error
	return suppliers, total, err
}

func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *SupplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *SupplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *SupplierRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Supplier{}).Error
}

// CountActive 在用供应商数
func (r *SupplierRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Supplier{}).
		Where("is_active = true").Count(&count).Error
	return count, err
}

// CountOpenOrders 供应商名下未完结的采购订单数
func (r *SupplierRepository) CountOpenOrders(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Where("supplier_id = ? AND status IN ?", id,
			[]string{entity.POStatusPending, entity.POStatusProcessing}).
		Count(&count).Error
	return count, err
}
