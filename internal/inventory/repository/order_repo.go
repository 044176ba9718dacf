package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"gorm.io/gorm"
)

// OrderRepository 采购订单仓库
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// DB 暴露底层连接，供服务层开启跨仓库事务
func (r *OrderRepository) DB() *gorm.DB {
	return r.db
}

type OrderListParams struct {
	Status      string
	SupplierID  string
	CreatedByID string
	Search      string
	SortBy      string
	SortDir     string
	Page        int
	PageSize    int
}

// 订单可排序字段白名单。创建人用户名排序需要JOIN，单独处理。
var orderSortColumns = map[string]string{
	"order_number": "purchase_orders.order_number",
	"order_date":   "purchase_orders.order_date",
	"status":       "purchase_orders.status",
	"total_amount": "purchase_orders.total_amount",
	"created_at":   "purchase_orders.created_at",
}

// FindAll 采购订单列表
func (r *OrderRepository) FindAll(ctx context.Context, params OrderListParams) ([]entity.PurchaseOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{})

	if params.Status != "" {
		query = query.Where("purchase_orders.status = ?", params.Status)
	}
	if params.SupplierID != "" {
		query = query.Where("purchase_orders.supplier_id = ?", params.SupplierID)
	}
	if params.CreatedByID != "" {
		query = query.Where("purchase_orders.created_by_id = ?", params.CreatedByID)
	}
	// 搜索与按创建人排序都要关联用户表，只关联一次
	joinedUsers := false
	if params.Search != "" {
		kw := "%" + params.Search + "%"
		query = query.Joins("LEFT JOIN users ON users.id = purchase_orders.created_by_id")
		joinedUsers = true
		query = query.Where(`purchase_orders.order_number ILIKE ?
			OR purchase_orders.status ILIKE ?
			OR users.username ILIKE ?
			OR CAST(purchase_orders.order_date AS TEXT) ILIKE ?
			OR CAST(purchase_orders.expected_delivery_date AS TEXT) ILIKE ?`,
			kw, kw, kw, kw, kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "DESC"
	if strings.EqualFold(params.SortDir, "asc") {
		direction = "ASC"
	}
	if params.SortBy == "created_by" {
		if !joinedUsers {
			query = query.Joins("LEFT JOIN users ON users.id = purchase_orders.created_by_id")
		}
		query = query.Order("users.username " + direction)
	} else if column, ok := orderSortColumns[params.SortBy]; ok {
		query = query.Order(column + " " + direction)
	} else {
		query = query.Order("purchase_orders.created_at DESC")
	}

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = 20
	}

	var orders []entity.PurchaseOrder
	err := query.Preload("Supplier").Preload("CreatedBy").Preload("Items").Preload("Items.Product").
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize).
		Find(&orders).Error
	return orders, total, err
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var order entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").Preload("CreatedBy").Preload("Items").Preload("Items.Product").
		Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.PurchaseOrder, error) {
	var order entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").Preload("CreatedBy").Preload("Items").Preload("Items.Product").
		Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// NextOrderSequence 扫描现有PO-编号的最大序号，返回下一个序号。
// 空表返回起始值10001。并发冲突由order_number唯一索引兜底，调用方重试。
func (r *OrderRepository) NextOrderSequence(ctx context.Context, tx *gorm.DB) (int64, error) {
	var result struct{ Seq int64 }
	err := tx.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(CAST(SUBSTRING(order_number FROM 4) AS BIGINT)), 10000) + 1 AS seq
		FROM purchase_orders
		WHERE order_number ~ '^PO-[0-9]+$'
	`).Scan(&result).Error
	return result.Seq, err
}

func (r *OrderRepository) Create(ctx context.Context, tx *gorm.DB, order *entity.PurchaseOrder) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) Save(ctx context.Context, order *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// SaveTx 在既有事务内保存订单头
func (r *OrderRepository) SaveTx(ctx context.Context, tx *gorm.DB, order *entity.PurchaseOrder) error {
	return tx.WithContext(ctx).Save(order).Error
}

// Delete 删除订单，先删明细再删头
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&entity.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.PurchaseOrder{}).Error
	})
}

// FindItemsByOrderID 订单明细
func (r *OrderRepository) FindItemsByOrderID(ctx context.Context, tx *gorm.DB, orderID string) ([]entity.PurchaseOrderItem, error) {
	var items []entity.PurchaseOrderItem
	err := tx.WithContext(ctx).Where("order_id = ?", orderID).
		Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *OrderRepository) SaveItem(ctx context.Context, tx *gorm.DB, item *entity.PurchaseOrderItem) error {
	return tx.WithContext(ctx).Save(item).Error
}

func (r *OrderRepository) CreateItem(ctx context.Context, tx *gorm.DB, item *entity.PurchaseOrderItem) error {
	return tx.WithContext(ctx).Create(item).Error
}

func (r *OrderRepository) DeleteItem(ctx context.Context, tx *gorm.DB, itemID string) error {
	return tx.WithContext(ctx).Where("id = ?", itemID).Delete(&entity.PurchaseOrderItem{}).Error
}

// FindRecent 最近创建的订单
func (r *OrderRepository) FindRecent(ctx context.Context, limit int) ([]entity.PurchaseOrder, error) {
	var orders []entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").Preload("CreatedBy").
		Order("created_at DESC").Limit(limit).
		Find(&orders).Error
	return orders, err
}

// MonthlyTotalRow 按月订单金额行
type MonthlyTotalRow struct {
	Month       string  `json:"month"`
	OrderCount  int64   `json:"order_count"`
	TotalAmount float64 `json:"total_amount"`
}

// MonthlyTotals 指定时间之后按自然月汇总的订单金额，取消订单不计入
func (r *OrderRepository) MonthlyTotals(ctx context.Context, since time.Time) ([]MonthlyTotalRow, error) {
	var rows []MonthlyTotalRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT TO_CHAR(DATE_TRUNC('month', created_at), 'YYYY-MM') AS month,
		       COUNT(id) AS order_count,
		       COALESCE(SUM(total_amount), 0) AS total_amount
		FROM purchase_orders
		WHERE created_at >= ? AND status <> ?
		GROUP BY 1
		ORDER BY 1 ASC
	`, since, entity.POStatusCancelled).Scan(&rows).Error
	return rows, err
}

// CountByStatus 各状态订单数
func (r *OrderRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountSince 指定时间之后创建的订单数
func (r *OrderRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).
		Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// SumAmountBetween 时间窗口内订单金额合计
func (r *OrderRepository) SumAmountBetween(ctx context.Context, start, end time.Time) (float64, error) {
	var result struct{ Total float64 }
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0) AS total
		FROM purchase_orders
		WHERE created_at >= ? AND created_at < ? AND status <> ?
	`, start, end, entity.POStatusCancelled).Scan(&result).Error
	return result.Total, err
}
