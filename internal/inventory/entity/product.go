package entity

import "time"

// Product 产品（库存主数据）
type Product struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Name         string    `json:"name" gorm:"size:200;not null"`
	Description  string    `json:"description" gorm:"type:text"`
	SKU          string    `json:"sku" gorm:"size:64;index"`
	Barcode      string    `json:"barcode" gorm:"size:64;index"`
	CategoryID   *string   `json:"category_id" gorm:"size:36;index"`
	Quantity     int       `json:"quantity" gorm:"not null;default:0"`
	ReorderLevel int       `json:"reorder_level" gorm:"not null;default:5"`
	UnitPrice    float64   `json:"unit_price" gorm:"type:decimal(12,2);default:0"`
	CostPrice    float64   `json:"cost_price" gorm:"type:decimal(12,2);default:0"`
	ImageURL     string    `json:"image_url" gorm:"size:500"`
	IsActive     bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Product) TableName() string {
	return "products"
}
