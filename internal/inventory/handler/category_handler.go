package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/service"
)

// CategoryHandler 分类处理器
type CategoryHandler struct {
	categorySvc *service.CategoryService
}

func NewCategoryHandler(categorySvc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categorySvc.List(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categorySvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	category, err := h.categorySvc.Create(c.Request.Context(), input)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Created(c, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	category, err := h.categorySvc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categorySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, nil)
}
