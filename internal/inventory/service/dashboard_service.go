package service

import (
	"context"
	"time"

	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"go.uber.org/zap"
)

// DashboardService 仪表盘聚合服务
type DashboardService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

func NewDashboardService(repos *repository.Repositories, logger *zap.Logger) *DashboardService {
	return &DashboardService{repos: repos, logger: logger}
}

// DashboardStats 仪表盘统计
type DashboardStats struct {
	TotalProducts      int64   `json:"total_products"`
	TotalSuppliers     int64   `json:"total_suppliers"`
	LowStockCount      int64   `json:"low_stock_count"`
	InventoryValue     float64 `json:"inventory_value"`
	PendingOrders      int64   `json:"pending_orders"`
	ProcessingOrders   int64   `json:"processing_orders"`
	DeliveredOrders    int64   `json:"delivered_orders"`
	MonthOrderValue    float64 `json:"month_order_value"`
	OrderValueDeltaPct float64 `json:"order_value_delta_pct"`
	StockInLast30Days  int64   `json:"stock_in_last_30_days"`
	StockOutLast30Days int64   `json:"stock_out_last_30_days"`
	StockOutDeltaPct   float64 `json:"stock_out_delta_pct"`
}

// Stats 汇总仪表盘指标。订单金额环比按自然月对比上月。
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalProducts, err = s.repos.Product.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.TotalSuppliers, err = s.repos.Supplier.CountActive(ctx); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = s.repos.Product.CountLowStock(ctx); err != nil {
		return nil, err
	}
	if stats.InventoryValue, err = s.repos.Product.InventoryValue(ctx); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = s.repos.Order.CountByStatus(ctx, entity.POStatusPending); err != nil {
		return nil, err
	}
	if stats.ProcessingOrders, err = s.repos.Order.CountByStatus(ctx, entity.POStatusProcessing); err != nil {
		return nil, err
	}
	if stats.DeliveredOrders, err = s.repos.Order.CountByStatus(ctx, entity.POStatusDelivered); err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	if stats.MonthOrderValue, err = s.repos.Order.SumAmountBetween(ctx, monthStart, now); err != nil {
		return nil, err
	}
	prevValue, err := s.repos.Order.SumAmountBetween(ctx, prevMonthStart, monthStart)
	if err != nil {
		return nil, err
	}
	stats.OrderValueDeltaPct = percentDelta(prevValue, stats.MonthOrderValue)

	since := now.AddDate(0, 0, -30)
	prevSince := now.AddDate(0, 0, -60)
	if stats.StockInLast30Days, err = s.repos.Transaction.SumQuantityByType(ctx, entity.TxTypeStockIn, since, now); err != nil {
		return nil, err
	}
	if stats.StockOutLast30Days, err = s.repos.Transaction.SumQuantityByType(ctx, entity.TxTypeStockOut, since, now); err != nil {
		return nil, err
	}
	prevStockOut, err := s.repos.Transaction.SumQuantityByType(ctx, entity.TxTypeStockOut, prevSince, since)
	if err != nil {
		return nil, err
	}
	stats.StockOutDeltaPct = percentDelta(float64(prevStockOut), float64(stats.StockOutLast30Days))

	return stats, nil
}

// RecentActivity 最近库存流水
func (s *DashboardService) RecentActivity(ctx context.Context, limit int) ([]entity.InventoryTransaction, error) {
	return s.repos.Transaction.FindRecent(ctx, limit)
}

// RecentOrders 最近创建的采购订单
func (s *DashboardService) RecentOrders(ctx context.Context, limit int) ([]entity.PurchaseOrder, error) {
	return s.repos.Order.FindRecent(ctx, limit)
}

// MonthlySales 近N个自然月的采购金额，无订单的月份补零
func (s *DashboardService) MonthlySales(ctx context.Context, months int) ([]repository.MonthlyTotalRow, error) {
	if months <= 0 {
		months = 6
	}
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)

	rows, err := s.repos.Order.MonthlyTotals(ctx, start)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[string]repository.MonthlyTotalRow, len(rows))
	for _, row := range rows {
		byMonth[row.Month] = row
	}

	filled := make([]repository.MonthlyTotalRow, 0, months)
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		if row, ok := byMonth[month]; ok {
			filled = append(filled, row)
		} else {
			filled = append(filled, repository.MonthlyTotalRow{Month: month})
		}
	}
	return filled, nil
}

// LowStockProducts 低库存产品
func (s *DashboardService) LowStockProducts(ctx context.Context, limit int) ([]entity.Product, error) {
	return s.repos.Product.FindLowStock(ctx, limit)
}

// percentDelta 环比增幅。基期为0时，有增长计100，无变化计0。
func percentDelta(prev, current float64) float64 {
	if prev == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - prev) / prev * 100
}
