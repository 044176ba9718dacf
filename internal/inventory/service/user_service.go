package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService 用户管理服务
type UserService struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// UserInput 管理员创建或更新用户入参
type UserInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func (s *UserService) List(ctx context.Context, params repository.UserListParams) ([]entity.User, int64, error) {
	return s.userRepo.FindAll(ctx, params)
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// Create 管理员创建用户，账号处于待激活状态
func (s *UserService) Create(ctx context.Context, input UserInput) (*entity.User, error) {
	if input.Username == "" || input.Email == "" {
		return nil, validationError("用户名和邮箱不能为空")
	}
	role := input.Role
	if role == "" {
		role = entity.RoleStaff
	}
	if role != entity.RoleAdmin && role != entity.RoleStaff {
		return nil, validationError("无效的角色: " + input.Role)
	}

	if _, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, conflictError("用户名已被占用")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, conflictError("邮箱已被注册")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	password := input.Password
	if password == "" {
		// 未指定密码时生成随机初始密码，待用户激活后重置
		password = uuid.NewString()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
		IsActive:     false,
		StatusReason: entity.StatusPendingActivation,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created by admin",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", user.Role))
	return user, nil
}

// Update 更新用户资料
func (s *UserService) Update(ctx context.Context, id string, input UserInput) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
			return nil, conflictError("邮箱已被注册")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		user.Email = input.Email
	}
	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Role != "" {
		if input.Role != entity.RoleAdmin && input.Role != entity.RoleStaff {
			return nil, validationError("无效的角色: " + input.Role)
		}
		// 不允许把最后一个活跃管理员降级
		if user.Role == entity.RoleAdmin && input.Role != entity.RoleAdmin && user.IsActive {
			count, err := s.userRepo.CountAdmins(ctx)
			if err != nil {
				return nil, err
			}
			if count <= 1 {
				return nil, illegalStateError("系统至少保留一名活跃管理员")
			}
		}
		user.Role = input.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Approve 审批通过自助注册账号
func (s *UserService) Approve(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.StatusReason != entity.StatusPendingApproval {
		return nil, illegalStateError("该账号不在待审批状态")
	}
	user.IsActive = true
	user.StatusReason = ""
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user approved", zap.String("user_id", user.ID))
	return user, nil
}

// Reject 驳回自助注册账号
func (s *UserService) Reject(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.StatusReason != entity.StatusPendingApproval {
		return nil, illegalStateError("该账号不在待审批状态")
	}
	user.IsActive = false
	user.StatusReason = entity.StatusRejected
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user rejected", zap.String("user_id", user.ID))
	return user, nil
}

// SetActive 启用或停用账号
func (s *UserService) SetActive(ctx context.Context, id string, active bool, actorID string) (*entity.User, error) {
	if !active && id == actorID {
		return nil, illegalStateError("不能停用自己的账号")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !active && user.Role == entity.RoleAdmin && user.IsActive {
		count, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return nil, err
		}
		if count <= 1 {
			return nil, illegalStateError("系统至少保留一名活跃管理员")
		}
	}

	user.IsActive = active
	if active {
		user.StatusReason = ""
	} else {
		user.StatusReason = entity.StatusDeactivated
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user active flag changed",
		zap.String("user_id", user.ID),
		zap.Bool("active", active),
		zap.String("actor", actorID))
	return user, nil
}

// ChangePassword 用户修改自己的密码
func (s *UserService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return validationError("密码长度至少8位")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return forbiddenError("原密码不正确")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return s.userRepo.Update(ctx, user)
}
