package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InventoryService 库存流水服务。所有库存数量变动都经由这里落账。
type InventoryService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

func NewInventoryService(repos *repository.Repositories, logger *zap.Logger) *InventoryService {
	return &InventoryService{repos: repos, logger: logger}
}

func (s *InventoryService) List(ctx context.Context, params repository.TransactionListParams) ([]entity.InventoryTransaction, int64, error) {
	return s.repos.Transaction.FindAll(ctx, params)
}

func (s *InventoryService) Get(ctx context.Context, id string) (*entity.InventoryTransaction, error) {
	return s.repos.Transaction.FindByID(ctx, id)
}

// Sell 销售出库。库存不足直接拒绝。
func (s *InventoryService) Sell(ctx context.Context, productID string, quantity int, notes, reference, actorID string) (*entity.InventoryTransaction, error) {
	if quantity <= 0 {
		return nil, validationError("出库数量必须为正")
	}

	var ledger *entity.InventoryTransaction
	err := s.repos.Order.DB().Transaction(func(tx *gorm.DB) error {
		product, err := s.repos.Product.FindByIDForUpdate(ctx, tx, productID)
		if err != nil {
			return err
		}
		if product.Quantity < quantity {
			return illegalStateError(fmt.Sprintf("库存不足：现有%d，请求%d", product.Quantity, quantity))
		}
		product.Quantity -= quantity
		if err := tx.WithContext(ctx).Save(product).Error; err != nil {
			return err
		}
		ledger = &entity.InventoryTransaction{
			ID:              uuid.NewString(),
			ProductID:       product.ID,
			UserID:          actorID,
			TransactionType: entity.TxTypeStockOut,
			Quantity:        quantity,
			Notes:           notes,
			ReferenceNumber: reference,
			TransactionDate: time.Now(),
		}
		return s.repos.Transaction.CreateTx(ctx, tx, ledger)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock out recorded",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.String("actor", actorID))
	return ledger, nil
}

// Adjust 库存调整。delta可正可负，调整后库存下限为0。
func (s *InventoryService) Adjust(ctx context.Context, productID string, delta int, notes, actorID string) (*entity.InventoryTransaction, error) {
	if delta == 0 {
		return nil, validationError("调整数量不能为0")
	}

	var ledger *entity.InventoryTransaction
	err := s.repos.Order.DB().Transaction(func(tx *gorm.DB) error {
		product, err := s.repos.Product.FindByIDForUpdate(ctx, tx, productID)
		if err != nil {
			return err
		}
		next := product.Quantity + delta
		if next < 0 {
			next = 0
			delta = -product.Quantity
		}
		product.Quantity = next
		if err := tx.WithContext(ctx).Save(product).Error; err != nil {
			return err
		}
		ledger = &entity.InventoryTransaction{
			ID:              uuid.NewString(),
			ProductID:       product.ID,
			UserID:          actorID,
			TransactionType: entity.TxTypeAdjustment,
			Quantity:        delta,
			Notes:           notes,
			TransactionDate: time.Now(),
		}
		return s.repos.Transaction.CreateTx(ctx, tx, ledger)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjustment recorded",
		zap.String("product_id", productID),
		zap.Int("delta", delta),
		zap.String("actor", actorID))
	return ledger, nil
}

// Recent 最近流水
func (s *InventoryService) Recent(ctx context.Context, limit int) ([]entity.InventoryTransaction, error) {
	return s.repos.Transaction.FindRecent(ctx, limit)
}
