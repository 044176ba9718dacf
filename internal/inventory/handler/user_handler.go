package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/service"
)

// UserHandler 用户管理处理器
type UserHandler struct {
	userSvc *service.UserService
}

func NewUserHandler(userSvc *service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// List 用户列表
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.UserListParams{
		Search:   c.Query("search"),
		Role:     c.Query("role"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}

	users, total, err := h.userSvc.List(c.Request.Context(), params)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, NewListResponse(users, page, pageSize, total))
}

// Get 用户详情
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, user)
}

// Create 管理员创建用户
func (h *UserHandler) Create(c *gin.Context) {
	var input service.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), input)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Created(c, user)
}

// Update 更新用户
func (h *UserHandler) Update(c *gin.Context) {
	var input service.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, user)
}

// Approve 审批通过注册申请
func (h *UserHandler) Approve(c *gin.Context) {
	user, err := h.userSvc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, user)
}

// Reject 驳回注册申请
func (h *UserHandler) Reject(c *gin.Context) {
	user, err := h.userSvc.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, user)
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive 启用或停用账号
func (h *UserHandler) SetActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.userSvc.SetActive(c.Request.Context(), c.Param("id"), *req.Active, GetUserID(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, user)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword 修改自己的密码
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.userSvc.ChangePassword(c.Request.Context(), GetUserID(c), req.OldPassword, req.NewPassword); err != nil {
		HandleServiceError(c, err)
		return
	}
	Success(c, gin.H{"message": "密码已修改"})
}
