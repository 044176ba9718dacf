package entity

import "time"

// Supplier 供应商
type Supplier struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	Name          string    `json:"name" gorm:"size:200;not null"`
	ContactPerson string    `json:"contact_person" gorm:"size:100"`
	Email         string    `json:"email" gorm:"size:128"`
	Phone         string    `json:"phone" gorm:"size:32"`
	Address       string    `json:"address" gorm:"size:500"`
	Notes         string    `json:"notes" gorm:"type:text"`
	IsActive      bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
