package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/service"
)

// SupplierHandler 供应商处理器
type SupplierHandler struct {
	supplierSvc *service.SupplierService
}

func NewSupplierHandler(supplierSvc *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierSvc: supplierSvc}
}

func (h *SupplierHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.SupplierListParams{
		Search:     c.Query("search"),
		ActiveOnly: c.Query("active_only") == "true",
		Page:       page,
		PageSize:   pageSize,
	}

	suppliers, total, err := h.supplierSvc.List(c.Request.Context(), params)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, NewListResponse(suppliers, page, pageSize, total))
}

func (h *SupplierHandler) Get(c *gin.Context) {
	supplier, err := h.supplierSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, supplier)
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var input service.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	supplier, err := h.supplierSvc.Create(c.Request.Context(), input)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Created(c, supplier)
}

func (h *SupplierHandler) Update(c *gin.Context) {
	var input service.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	supplier, err := h.supplierSvc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, supplier)
}

func (h *SupplierHandler) Delete(c *gin.Context) {
	if err := h.supplierSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, nil)
}
