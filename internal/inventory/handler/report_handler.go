package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/service"
)

// ReportHandler 报表处理器
type ReportHandler struct {
	reportSvc *service.ReportService
	repos     *repository.Repositories
}

func NewReportHandler(reportSvc *service.ReportService, repos *repository.Repositories) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc, repos: repos}
}

// reportWindow 解析报表时间窗口，缺省为最近30天
func reportWindow(c *gin.Context) (time.Time, time.Time) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if t, ok := service.ParseDate(c.Query("start_date")); ok {
		start = t
	}
	if t, ok := service.ParseDate(c.Query("end_date")); ok {
		end = t.AddDate(0, 0, 1)
	}
	return start, end
}

// StockMovement 库存进出汇总
func (h *ReportHandler) StockMovement(c *gin.Context) {
	start, end := reportWindow(c)
	rows, err := h.reportSvc.StockMovement(c.Request.Context(), start, end)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, rows)
}

// TopProducts 出库排行
func (h *ReportHandler) TopProducts(c *gin.Context) {
	start, end := reportWindow(c)
	limit := 10
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	rows, err := h.reportSvc.TopProducts(c.Request.Context(), start, end, limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, rows)
}

// SlowMoving 滞销产品
func (h *ReportHandler) SlowMoving(c *gin.Context) {
	days := 90
	if d := c.Query("days"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v > 0 {
			days = v
		}
	}
	rows, err := h.reportSvc.SlowMoving(c.Request.Context(), days)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, rows)
}

// SupplierContribution 供应商贡献
func (h *ReportHandler) SupplierContribution(c *gin.Context) {
	start, end := reportWindow(c)
	rows, err := h.reportSvc.SupplierContribution(c.Request.Context(), start, end)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, rows)
}

// OrderValueTrend 订单金额趋势
func (h *ReportHandler) OrderValueTrend(c *gin.Context) {
	months := 6
	if m := c.Query("months"); m != "" {
		if v, err := strconv.Atoi(m); err == nil && v > 0 && v <= 24 {
			months = v
		}
	}
	rows, err := h.reportSvc.OrderValueTrend(c.Request.Context(), months)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, rows)
}

// ExportStockMovement 导出库存进出汇总xlsx
func (h *ReportHandler) ExportStockMovement(c *gin.Context) {
	start, end := reportWindow(c)
	buf, err := h.reportSvc.ExportStockMovement(c.Request.Context(), start, end)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	fileName := fmt.Sprintf("stock-movement-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportOrders 导出采购订单清单xlsx
func (h *ReportHandler) ExportOrders(c *gin.Context) {
	params := repository.OrderListParams{
		Status:     service.NormalizeStatus(c.Query("status")),
		SupplierID: c.Query("supplier_id"),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortDir:    c.Query("sort_dir"),
	}

	buf, err := h.reportSvc.ExportOrders(c.Request.Context(), h.repos, params)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	fileName := fmt.Sprintf("purchase-orders-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportTransactions 导出流水明细xlsx
func (h *ReportHandler) ExportTransactions(c *gin.Context) {
	params := repository.TransactionListParams{
		ProductID: c.Query("product_id"),
		Type:      c.Query("type"),
	}
	if start, ok := service.ParseDate(c.Query("start_date")); ok {
		params.StartDate = &start
	}
	if end, ok := service.ParseDate(c.Query("end_date")); ok {
		end = end.AddDate(0, 0, 1)
		params.EndDate = &end
	}

	buf, err := h.reportSvc.ExportTransactions(c.Request.Context(), h.repos, params)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	fileName := fmt.Sprintf("transactions-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
