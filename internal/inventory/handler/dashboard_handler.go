package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/service"
)

// DashboardHandler 仪表盘处理器
type DashboardHandler struct {
	dashboardSvc *service.DashboardService
}

func NewDashboardHandler(dashboardSvc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Stats 仪表盘统计
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardSvc.Stats(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, stats)
}

// RecentActivity 最近库存流水
func (h *DashboardHandler) RecentActivity(c *gin.Context) {
	limit := 10
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 50 {
			limit = v
		}
	}
	transactions, err := h.dashboardSvc.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, transactions)
}

// RecentOrders 最近采购订单
func (h *DashboardHandler) RecentOrders(c *gin.Context) {
	limit := 5
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 50 {
			limit = v
		}
	}
	orders, err := h.dashboardSvc.RecentOrders(c.Request.Context(), limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, orders)
}

// Sales 近N个月采购金额
func (h *DashboardHandler) Sales(c *gin.Context) {
	months := 6
	if m := c.Query("months"); m != "" {
		if v, err := strconv.Atoi(m); err == nil && v > 0 && v <= 36 {
			months = v
		}
	}
	rows, err := h.dashboardSvc.MonthlySales(c.Request.Context(), months)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, rows)
}

// LowStock 低库存产品
func (h *DashboardHandler) LowStock(c *gin.Context) {
	limit := 10
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 50 {
			limit = v
		}
	}
	products, err := h.dashboardSvc.LowStockProducts(c.Request.Context(), limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, products)
}
