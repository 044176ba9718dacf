package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 仓库集合
type Repositories struct {
	User        *UserRepository
	Category    *CategoryRepository
	Product     *ProductRepository
	Supplier    *SupplierRepository
	Order       *OrderRepository
	Transaction *TransactionRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Category:    NewCategoryRepository(db),
		Product:     NewProductRepository(db),
		Supplier:    NewSupplierRepository(db),
		Order:       NewOrderRepository(db),
		Transaction: NewTransactionRepository(db),
	}
}
