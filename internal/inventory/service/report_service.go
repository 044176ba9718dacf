package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportService 经营报表服务
type ReportService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewReportService(db *gorm.DB, logger *zap.Logger) *ReportService {
	return &ReportService{db: db, logger: logger}
}

// StockMovementRow 库存进出汇总行
type StockMovementRow struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	StockIn     int64  `json:"stock_in"`
	StockOut    int64  `json:"stock_out"`
	Adjustment  int64  `json:"adjustment"`
	Current     int    `json:"current"`
}

// StockMovement 时间窗口内各产品进出库汇总
func (s *ReportService) StockMovement(ctx context.Context, start, end time.Time) ([]StockMovementRow, error) {
	var rows []StockMovementRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id,
		       p.name AS product_name,
		       COALESCE(SUM(CASE WHEN t.transaction_type = ? THEN t.quantity ELSE 0 END), 0) AS stock_in,
		       COALESCE(SUM(CASE WHEN t.transaction_type = ? THEN t.quantity ELSE 0 END), 0) AS stock_out,
		       COALESCE(SUM(CASE WHEN t.transaction_type = ? THEN t.quantity ELSE 0 END), 0) AS adjustment,
		       p.quantity AS current
		FROM products p
		LEFT JOIN inventory_transactions t
		       ON t.product_id = p.id AND t.transaction_date >= ? AND t.transaction_date < ?
		WHERE p.is_active = true
		GROUP BY p.id, p.name, p.quantity
		ORDER BY p.name ASC
	`, entity.TxTypeStockIn, entity.TxTypeStockOut, entity.TxTypeAdjustment, start, end).
		Scan(&rows).Error
	return rows, err
}

// TopProductRow 出库排行行
type TopProductRow struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	TotalOut    int64   `json:"total_out"`
	Revenue     float64 `json:"revenue"`
}

// TopProducts 时间窗口内出库量最高的产品
func (s *ReportService) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProductRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []TopProductRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id,
		       p.name AS product_name,
		       COALESCE(SUM(t.quantity), 0) AS total_out,
		       COALESCE(SUM(t.quantity * p.unit_price), 0) AS revenue
		FROM inventory_transactions t
		JOIN products p ON p.id = t.product_id
		WHERE t.transaction_type = ? AND t.transaction_date >= ? AND t.transaction_date < ?
		GROUP BY p.id, p.name
		ORDER BY total_out DESC
		LIMIT ?
	`, entity.TxTypeStockOut, start, end, limit).Scan(&rows).Error
	return rows, err
}

// SlowMovingRow 滞销产品行
type SlowMovingRow struct {
	ProductID    string     `json:"product_id"`
	ProductName  string     `json:"product_name"`
	Quantity     int        `json:"quantity"`
	LastMovement *time.Time `json:"last_movement"`
}

// SlowMoving 指定天数内无出库记录的在库产品
func (s *ReportService) SlowMoving(ctx context.Context, days int) ([]SlowMovingRow, error) {
	if days <= 0 {
		days = 90
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	var rows []SlowMovingRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT p.id AS product_id,
		       p.name AS product_name,
		       p.quantity AS quantity,
		       MAX(t.transaction_date) AS last_movement
		FROM products p
		LEFT JOIN inventory_transactions t
		       ON t.product_id = p.id AND t.transaction_type = ?
		WHERE p.is_active = true AND p.quantity > 0
		GROUP BY p.id, p.name, p.quantity
		HAVING MAX(t.transaction_date) IS NULL OR MAX(t.transaction_date) < ?
		ORDER BY p.quantity DESC
	`, entity.TxTypeStockOut, cutoff).Scan(&rows).Error
	return rows, err
}

// SupplierContributionRow 供应商贡献行
type SupplierContributionRow struct {
	SupplierID   string  `json:"supplier_id"`
	SupplierName string  `json:"supplier_name"`
	OrderCount   int64   `json:"order_count"`
	TotalAmount  float64 `json:"total_amount"`
}

// SupplierContribution 时间窗口内各供应商订单数与金额
func (s *ReportService) SupplierContribution(ctx context.Context, start, end time.Time) ([]SupplierContributionRow, error) {
	var rows []SupplierContributionRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT sp.id AS supplier_id,
		       sp.name AS supplier_name,
		       COUNT(o.id) AS order_count,
		       COALESCE(SUM(o.total_amount), 0) AS total_amount
		FROM suppliers sp
		JOIN purchase_orders o ON o.supplier_id = sp.id
		WHERE o.created_at >= ? AND o.created_at < ? AND o.status <> ?
		GROUP BY sp.id, sp.name
		ORDER BY total_amount DESC
	`, start, end, entity.POStatusCancelled).Scan(&rows).Error
	return rows, err
}

// OrderTrendRow 订单金额趋势行（按月）
type OrderTrendRow struct {
	Month       string  `json:"month"`
	OrderCount  int64   `json:"order_count"`
	TotalAmount float64 `json:"total_amount"`
}

// OrderValueTrend 近N个月订单数量与金额趋势
func (s *ReportService) OrderValueTrend(ctx context.Context, months int) ([]OrderTrendRow, error) {
	if months <= 0 {
		months = 6
	}
	since := time.Now().AddDate(0, -months, 0)
	var rows []OrderTrendRow
	err := s.db.WithContext(ctx).Raw(`
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

// ExportStockMovement 导出库存进出汇总为xlsx
func (s *ReportService) ExportStockMovement(ctx context.Context, start, end time.Time) (*bytes.Buffer, error) {
	rows, err := s.StockMovement(ctx, start, end)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Stock Movement"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Product", "Stock In", "Stock Out", "Adjustment", "Current Quantity"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, row := range rows {
		values := []interface{}{row.ProductName, row.StockIn, row.StockOut, row.Adjustment, row.Current}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("stock movement report exported",
		zap.Int("rows", len(rows)),
		zap.Time("start", start),
		zap.Time("end", end))
	return buf, nil
}

// ExportOrders 导出采购订单清单为xlsx
func (s *ReportService) ExportOrders(ctx context.Context, repos *repository.Repositories, params repository.OrderListParams) (*bytes.Buffer, error) {
	params.Page = 1
	params.PageSize = 10000
	orders, _, err := repos.Order.FindAll(ctx, params)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Purchase Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Order Number", "Supplier", "Status", "Order Date", "Expected Delivery", "Total Amount", "Created By", "Items", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, o := range orders {
		supplierName := o.SupplierID
		if o.Supplier != nil {
			supplierName = o.Supplier.Name
		}
		createdBy := o.CreatedByID
		if o.CreatedBy != nil {
			createdBy = o.CreatedBy.DisplayName()
		}
		expected := ""
		if o.ExpectedDeliveryDate != nil {
			expected = o.ExpectedDeliveryDate.Format("2006-01-02")
		}
		values := []interface{}{
			o.OrderNumber,
			supplierName,
			o.Status,
			o.OrderDate.Format("2006-01-02"),
			expected,
			o.TotalAmount,
			createdBy,
			len(o.Items),
			o.Notes,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("purchase order report exported", zap.Int("rows", len(orders)))
	return buf, nil
}

// ExportTransactions 导出流水明细为xlsx
func (s *ReportService) ExportTransactions(ctx context.Context, repos *repository.Repositories, params repository.TransactionListParams) (*bytes.Buffer, error) {
	params.Page = 1
	params.PageSize = 10000
	transactions, _, err := repos.Transaction.FindAll(ctx, params)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transactions"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Product", "Type", "Quantity", "Reference", "User", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, t := range transactions {
		productName := t.ProductID
		if t.Product != nil {
			productName = t.Product.Name
		}
		userName := t.UserID
		if t.User != nil {
			userName = t.User.DisplayName()
		}
		values := []interface{}{
			t.TransactionDate.Format("2006-01-02 15:04:05"),
			productName,
			t.TransactionType,
			t.Quantity,
			t.ReferenceNumber,
			userName,
			t.Notes,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
