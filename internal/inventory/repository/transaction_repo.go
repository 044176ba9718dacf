package repository

import (
	"context"
	"errors"
	"time"

	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"gorm.io/gorm"
)

// TransactionRepository 库存流水仓库
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

type TransactionListParams struct {
	ProductID string
	UserID    string
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// FindAll 流水列表，按发生时间倒序
func (r *TransactionRepository) FindAll(ctx context.Context, params TransactionListParams) ([]entity.InventoryTransaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.InventoryTransaction{})

	if params.ProductID != "" {
		query = query.Where("product_id = ?", params.ProductID)
	}
	if params.UserID != "" {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.Type != "" {
		query = query.Where("transaction_type = ?", params.Type)
	}
	if params.StartDate != nil {
		query = query.Where("transaction_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("transaction_date < ?", *params.EndDate)
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

	var transactions []entity.InventoryTransaction
	err := query.Preload("Product").Preload("User").
		Order("transaction_date DESC").
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize).
		Find(&transactions).Error
	return transactions, total, err
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*entity.InventoryTransaction, error) {
	var transaction entity.InventoryTransaction
	err := r.db.WithContext(ctx).Preload("Product").Preload("User").
		Where("id = ?", id).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.InventoryTransaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// CreateTx 在既有事务内写入流水
func (r *TransactionRepository) CreateTx(ctx context.Context, tx *gorm.DB, transaction *entity.InventoryTransaction) error {
	return tx.WithContext(ctx).Create(transaction).Error
}

// FindRecent 最近流水
func (r *TransactionRepository) FindRecent(ctx context.Context, limit int) ([]entity.InventoryTransaction, error) {
	if limit <= 0 {
		limit = 10
	}
	var transactions []entity.InventoryTransaction
	err := r.db.WithContext(ctx).Preload("Product").Preload("User").
		Order("transaction_date DESC").Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

// CountByTypeSince 指定时间之后某类型流水数
func (r *TransactionRepository) CountByTypeSince(ctx context.Context, txType string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.InventoryTransaction{}).
		Where("transaction_type = ? AND transaction_date >= ?", txType, since).
		Count(&count).Error
	return count, err
}

// SumQuantityByType 时间窗口内某类型流水的数量合计
func (r *TransactionRepository) SumQuantityByType(ctx context.Context, txType string, start, end time.Time) (int64, error) {
	var result struct{ Total int64 }
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(quantity), 0) AS total
		FROM inventory_transactions
		WHERE transaction_type = ? AND transaction_date >= ? AND transaction_date < ?
	`, txType, start, end).Scan(&result).Error
	return result.Total, err
}
