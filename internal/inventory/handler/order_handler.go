package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/service"
)

// OrderHandler 采购订单处理器
type OrderHandler struct {
	orderSvc *service.OrderService
}

func NewOrderHandler(orderSvc *service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// List 订单列表
func (h *OrderHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.OrderListParams{
		Status:     c.Query("status"),
		SupplierID: c.Query("supplier_id"),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortDir:    c.Query("sort_dir"),
		Page:       page,
		PageSize:   pageSize,
	}
	// mine=true时只看自己创建的订单
	if c.Query("mine") == "true" {
		params.CreatedByID = GetUserID(c)
	}

	orders, total, err := h.orderSvc.List(c.Request.Context(), params)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, NewListResponse(orders, page, pageSize, total))
}

// Get 订单详情
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, order)
}

// Create 创建订单
func (h *OrderHandler) Create(c *gin.Context) {
	var input service.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	order, err := h.orderSvc.Create(c.Request.Context(), input, GetUserID(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Created(c, order)
}

// Update 更新订单
func (h *OrderHandler) Update(c *gin.Context) {
	var input service.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	order, err := h.orderSvc.Update(c.Request.Context(), c.Param("id"), input, GetUserID(c), GetUserRole(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, order)
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangeStatus 变更订单状态
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	order, err := h.orderSvc.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status, GetUserID(c), GetUserRole(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, order)
}

// Complete 完成收货
func (h *OrderHandler) Complete(c *gin.Context) {
	order, err := h.orderSvc.Complete(c.Request.Context(), c.Param("id"), GetUserID(c), GetUserRole(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, order)
}

// Delete 删除订单
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orderSvc.Delete(c.Request.Context(), c.Param("id"), GetUserID(c), GetUserRole(c)); err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, nil)
}
