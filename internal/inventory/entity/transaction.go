package entity

import "time"

// 库存交易类型
const (
	TxTypeStockIn    = "STOCK_IN"   // 入库（采购收货）
	TxTypeStockOut   = "STOCK_OUT"  // 出库（销售）
	TxTypeAdjustment = "ADJUSTMENT" // 库存调整
)

// InventoryTransaction 库存流水（只追加）
type InventoryTransaction struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	ProductID       string    `json:"product_id" gorm:"size:36;not null;index"`
	UserID          string    `json:"user_id" gorm:"size:36;not null;index"`
	TransactionType string    `json:"transaction_type" gorm:"size:20;not null;index"`
	Quantity        int       `json:"quantity" gorm:"not null"`
	Notes           string    `json:"notes" gorm:"type:text"`
	ReferenceNumber string    `json:"reference_number" gorm:"size:64;index"`
	TransactionDate time.Time `json:"transaction_date" gorm:"not null;index"`
	CreatedAt       time.Time `json:"created_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}
