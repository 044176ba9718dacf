package entity

import "gorm.io/gorm"

// AutoMigrate 迁移全部业务表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&Product{},
		&Supplier{},
		&PurchaseOrder{},
		&PurchaseOrderItem{},
		&InventoryTransaction{},
	)
}
