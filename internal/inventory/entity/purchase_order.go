package entity

import "time"

// 采购订单状态
const (
	POStatusPending    = "PENDING"
	POStatusProcessing = "PROCESSING"
	POStatusDelivered  = "DELIVERED"
	POStatusCancelled  = "CANCELLED"
)

// IsTerminalPOStatus 终态订单不允许再变更
func IsTerminalPOStatus(status string) bool {
	return status == POStatusDelivered || status == POStatusCancelled
}

// IsValidPOStatus 校验状态枚举
func IsValidPOStatus(status string) bool {
	switch status {
	case POStatusPending, POStatusProcessing, POStatusDelivered, POStatusCancelled:
		return true
	}
	return false
}

// PurchaseOrder 采购订单
type PurchaseOrder struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	OrderNumber string     `json:"order_number" gorm:"size:32;not null;uniqueIndex"`
	SupplierID  string     `json:"supplier_id" gorm:"size:36;not null;index"`
	Status      string     `json:"status" gorm:"size:20;not null;default:PENDING;index"`
	OrderDate   time.Time  `json:"order_date" gorm:"not null"`
	// 预计到货日期，解析失败时留空
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date"`
	TotalAmount          float64    `json:"total_amount" gorm:"type:decimal(12,2);default:0"`
	Notes                string     `json:"notes" gorm:"type:text"`
	CreatedByID          string     `json:"created_by_id" gorm:"size:36;not null;index"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	Supplier  *Supplier           `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	CreatedBy *User               `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Items     []PurchaseOrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem 采购订单行项
type PurchaseOrderItem struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	OrderID   string `json:"order_id" gorm:"size:36;not null;index"`
	ProductID string `json:"product_id" gorm:"size:36;not null;index"`
	Quantity  int    `json:"quantity" gorm:"not null;default:0"`
	UnitPrice float64 `json:"unit_price" gorm:"type:decimal(12,2);default:0"`
	// 实收数量，完成收货时若仍为0则回填为订购数量
	ReceivedQuantity int       `json:"received_quantity" gorm:"not null;default:0"`
	Notes            string    `json:"notes" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}
