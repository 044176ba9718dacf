package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/service"
)

// InventoryHandler 库存流水处理器
type InventoryHandler struct {
	inventorySvc *service.InventoryService
}

func NewInventoryHandler(inventorySvc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventorySvc: inventorySvc}
}

// List 流水列表
func (h *InventoryHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.TransactionListParams{
		ProductID: c.Query("product_id"),
		UserID:    c.Query("user_id"),
		Type:      c.Query("type"),
		Page:      page,
		PageSize:  pageSize,
	}
	if start, ok := service.ParseDate(c.Query("start_date")); ok {
		params.StartDate = &start
	}
	if end, ok := service.ParseDate(c.Query("end_date")); ok {
		end = end.AddDate(0, 0, 1)
		params.EndDate = &end
	}

	transactions, total, err := h.inventorySvc.List(c.Request.Context(), params)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, NewListResponse(transactions, page, pageSize, total))
}

// Get 流水详情
func (h *InventoryHandler) Get(c *gin.Context) {
	transaction, err := h.inventorySvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, transaction)
}

type sellRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Notes     string `json:"notes"`
	Reference string `json:"reference"`
}

// Sell 销售出库
func (h *InventoryHandler) Sell(c *gin.Context) {
	var req sellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	transaction, err := h.inventorySvc.Sell(c.Request.Context(),
		req.ProductID, req.Quantity, req.Notes, req.Reference, GetUserID(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Created(c, transaction)
}

type adjustRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Delta     int    `json:"delta" binding:"required"`
	Notes     string `json:"notes"`
}

// Adjust 库存调整
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	transaction, err := h.inventorySvc.Adjust(c.Request.Context(),
		req.ProductID, req.Delta, req.Notes, GetUserID(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Created(c, transaction)
}

// Recent 最近流水
func (h *InventoryHandler) Recent(c *gin.Context) {
	limit := 10
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	transactions, err := h.inventorySvc.Recent(c.Request.Context(), limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, transactions)
}
