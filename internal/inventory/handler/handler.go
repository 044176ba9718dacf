package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Category  *CategoryHandler
	Product   *ProductHandler
	Supplier  *SupplierHandler
	Order     *OrderHandler
	Inventory *InventoryHandler
	Dashboard *DashboardHandler
	Report    *ReportHandler
	Search    *SearchHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(services *service.Services, repos *repository.Repositories) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(services.Auth),
		User:      NewUserHandler(services.User),
		Category:  NewCategoryHandler(services.Category),
		Product:   NewProductHandler(services.Product, services.Storage),
		Supplier:  NewSupplierHandler(services.Supplier),
		Order:     NewOrderHandler(services.Order),
		Inventory: NewInventoryHandler(services.Inventory),
		Dashboard: NewDashboardHandler(services.Dashboard),
		Report:    NewReportHandler(services.Report, repos),
		Search:    NewSearchHandler(services.Search),
	}
}

// === 响应辅助函数 ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewListResponse(items interface{}, page, pageSize int, total int64) *ListResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &ListResponse{
		Items: items,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages,
		},
	}
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// HandleServiceError 把服务层错误哨兵映射为HTTP响应
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "资源不存在")
	case errors.Is(err, service.ErrValidation):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		Forbidden(c, err.Error())
	case errors.Is(err, service.ErrIllegalState):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrConflict):
		Conflict(c, err.Error())
	default:
		InternalError(c, "服务器内部错误")
	}
}

func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

func GetUserRole(c *gin.Context) string {
	role, _ := c.Get("role")
	if r, ok := role.(string); ok {
		return r
	}
	return ""
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}
