package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/karthikpeketi/inventory-backend/internal/config"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	refreshTokenKeyPrefix = "token:refresh:"
	otpKeyPrefix          = "otp:reset:"
	otpTTL                = 10 * time.Minute
)

// AuthService 认证服务
type AuthService struct {
	userRepo *repository.UserRepository
	rdb      *redis.Client
	cfg      *config.Config
	logger   *zap.Logger
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		rdb:      rdb,
		cfg:      cfg,
		logger:   logger,
	}
}

// TokenPair Token对
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login 用户名或邮箱加密码登录
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*entity.User, *TokenPair, error) {
	user, err := s.userRepo.FindByUsername(ctx, identifier)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = s.userRepo.FindByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, forbiddenError("用户名或密码错误")
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, forbiddenError("用户名或密码错误")
	}
	if !user.IsActive {
		return nil, nil, forbiddenError("账号未激活或已停用")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, nil, err
	}

	tokenPair, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username))
	return user, tokenPair, nil
}

// Register 自助注册，账号进入待审批状态
func (s *AuthService) Register(ctx context.Context, username, email, password, firstName, lastName string) (*entity.User, error) {
	if username == "" || email == "" {
		return nil, validationError("用户名和邮箱不能为空")
	}
	if len(password) < 8 {
		return nil, validationError("密码长度至少8位")
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, conflictError("用户名已被占用")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, conflictError("邮箱已被注册")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         entity.RoleStaff,
		IsActive:     false,
		StatusReason: entity.StatusPendingApproval,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered, pending approval",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username))
	return user, nil
}

// RefreshToken 刷新Token，旧refresh token作废
func (s *AuthService) RefreshToken(ctx context.Context, refreshTokenString string) (*TokenPair, error) {
	token, err := jwt.Parse(refreshTokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, forbiddenError("refresh token无效")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, forbiddenError("refresh token无效")
	}
	if claims["type"] != "refresh" {
		return nil, forbiddenError("token类型错误")
	}

	jti, _ := claims["jti"].(string)
	userID, err := s.rdb.Get(ctx, refreshTokenKeyPrefix+jti).Result()
	if err != nil {
		return nil, forbiddenError("refresh token已过期")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, forbiddenError("用户不存在")
	}
	if !user.IsActive {
		return nil, forbiddenError("账号已停用")
	}

	s.rdb.Del(ctx, refreshTokenKeyPrefix+jti)
	return s.generateTokenPair(ctx, user)
}

// Logout 登出，作废refresh token
func (s *AuthService) Logout(ctx context.Context, refreshTokenString string) error {
	token, err := jwt.Parse(refreshTokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if jti, ok := claims["jti"].(string); ok {
			s.rdb.Del(ctx, refreshTokenKeyPrefix+jti)
		}
	}
	return nil
}

// RequestPasswordReset 发起密码重置，生成6位验证码存入Redis。
// 验证码通过日志输出，邮件通道未接入。
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// 不暴露邮箱是否存在
			return nil
		}
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, otpKeyPrefix+user.ID, otp, otpTTL).Err(); err != nil {
		return err
	}

	s.logger.Info("password reset OTP issued",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("otp", otp))
	return nil
}

// ResetPassword 校验验证码并重置密码
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if len(newPassword) < 8 {
		return validationError("密码长度至少8位")
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return validationError("验证码无效或已过期")
		}
		return err
	}

	stored, err := s.rdb.Get(ctx, otpKeyPrefix+user.ID).Result()
	if err != nil || stored != otp {
		return validationError("验证码无效或已过期")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.rdb.Del(ctx, otpKeyPrefix+user.ID)
	s.logger.Info("password reset completed", zap.String("user_id", user.ID))
	return nil
}

// GetCurrentUser 获取当前用户
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// generateTokenPair 生成Token对，refresh token的jti落Redis
func (s *AuthService) generateTokenPair(ctx context.Context, user *entity.User) (*TokenPair, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"sub":      user.ID,
		"uid":      user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"iss":      s.cfg.JWT.Issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.JWT.AccessTokenExpire).Unix(),
		"jti":      uuid.New().String(),
	}
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshJti := uuid.New().String()
	refreshClaims := jwt.MapClaims{
		"sub":  user.ID,
		"type": "refresh",
		"iss":  s.cfg.JWT.Issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.JWT.RefreshTokenExpire).Unix(),
		"jti":  refreshJti,
	}
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.rdb.Set(ctx, refreshTokenKeyPrefix+refreshJti, user.ID, s.cfg.JWT.RefreshTokenExpire).Err(); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.cfg.JWT.AccessTokenExpire.Seconds()),
	}, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
