package entity

import "time"

// 用户角色
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// 用户状态原因
const (
	StatusPendingActivation = "PENDING_ACTIVATION"   // 管理员创建，待激活
	StatusPendingApproval   = "PENDING_APPROVAL"     // 自助注册，待审批
	StatusDeactivated       = "DEACTIVATED_BY_ADMIN" // 管理员停用
	StatusRejected          = "REJECTED_BY_ADMIN"    // 管理员驳回
)

// User 系统用户
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	Username     string     `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Email        string     `json:"email" gorm:"size:128;not null;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"size:128;not null"`
	FirstName    string     `json:"first_name" gorm:"size:64"`
	LastName     string     `json:"last_name" gorm:"size:64"`
	Role         string     `json:"role" gorm:"size:20;not null;default:STAFF"`
	IsActive     bool       `json:"is_active" gorm:"not null"`
	StatusReason string     `json:"status_reason" gorm:"size:32"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName 展示名，优先姓名，回退用户名
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
