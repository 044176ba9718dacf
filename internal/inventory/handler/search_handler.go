package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/service"
)

// SearchHandler 全局搜索处理器
type SearchHandler struct {
	searchSvc *service.SearchService
}

func NewSearchHandler(searchSvc *service.SearchService) *SearchHandler {
	return &SearchHandler{searchSvc: searchSvc}
}

// Search 跨资源搜索
func (h *SearchHandler) Search(c *gin.Context) {
	limit := 10
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}

	result, err := h.searchSvc.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, result)
}
