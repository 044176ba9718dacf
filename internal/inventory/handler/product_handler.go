package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/service"
)

// 产品图片大小上限
const maxImageSize = 10 << 20

// ProductHandler 产品处理器
type ProductHandler struct {
	productSvc *service.ProductService
	storageSvc *service.StorageService
}

func NewProductHandler(productSvc *service.ProductService, storageSvc *service.StorageService) *ProductHandler {
	return &ProductHandler{productSvc: productSvc, storageSvc: storageSvc}
}

func (h *ProductHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.ProductListParams{
		Search:     c.Query("search"),
		CategoryID: c.Query("category_id"),
		LowStock:   c.Query("low_stock") == "true",
		ActiveOnly: c.Query("active_only") == "true",
		SortBy:     c.Query("sort_by"),
		SortDir:    c.Query("sort_dir"),
		Page:       page,
		PageSize:   pageSize,
	}

	products, total, err := h.productSvc.List(c.Request.Context(), params)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, NewListResponse(products, page, pageSize, total))
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, product)
}

// GetByBarcode 条码查询
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	product, err := h.productSvc.GetByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	product, err := h.productSvc.Create(c.Request.Context(), input)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Created(c, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	product, err := h.productSvc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, nil)
}

// LowStock 低库存产品
func (h *ProductHandler) LowStock(c *gin.Context) {
	limit := 0
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	products, err := h.productSvc.LowStock(c.Request.Context(), limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, products)
}

// UploadImage 上传产品图片并绑定到产品
func (h *ProductHandler) UploadImage(c *gin.Context) {
	productID := c.Param("id")
	if _, err := h.productSvc.Get(c.Request.Context(), productID); err != nil {
		HandleServiceError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "缺少上传文件")
		return
	}
	if fileHeader.Size > maxImageSize {
		BadRequest(c, "图片大小超过限制")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "读取上传文件失败")
		return
	}
	defer file.Close()

	objectName, err := h.storageSvc.UploadProductImage(
		c.Request.Context(), file, fileHeader.Filename, fileHeader.Size,
		fileHeader.Header.Get("Content-Type"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	product, err := h.productSvc.SetImage(c.Request.Context(), productID, objectName)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, product)
}

// ImageURL 获取产品图片的临时访问链接
func (h *ProductHandler) ImageURL(c *gin.Context) {
	product, err := h.productSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	if product.ImageURL == "" {
		NotFound(c, "产品未设置图片")
		return
	}

	url, err := h.storageSvc.PresignedImageURL(c.Request.Context(), product.ImageURL, time.Hour)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, gin.H{"url": url})
}
