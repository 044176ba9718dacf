package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderService 采购订单生命周期服务
type OrderService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

func NewOrderService(repos *repository.Repositories, logger *zap.Logger) *OrderService {
	return &OrderService{repos: repos, logger: logger}
}

// OrderItemInput 订单行项入参。received_quantity未传时更新保留原值。
type OrderItemInput struct {
	ProductID        string  `json:"product_id"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	ReceivedQuantity *int    `json:"received_quantity"`
	Notes            string  `json:"notes"`
}

// OrderInput 订单创建与更新入参。总金额由调用方给定，可包含税费运费，
// 不由行项重新计算。
type OrderInput struct {
	SupplierID           string           `json:"supplier_id"`
	OrderDate            string           `json:"order_date"`
	ExpectedDeliveryDate string           `json:"expected_delivery_date"`
	TotalAmount          float64          `json:"total_amount"`
	Notes                string           `json:"notes"`
	Items                []OrderItemInput `json:"items"`
}

func (s *OrderService) List(ctx context.Context, params repository.OrderListParams) ([]entity.PurchaseOrder, int64, error) {
	if params.Status != "" {
		params.Status = NormalizeStatus(params.Status)
		if !entity.IsValidPOStatus(params.Status) {
			return nil, 0, validationError("无效的订单状态: " + params.Status)
		}
	}
	return s.repos.Order.FindAll(ctx, params)
}

func (s *OrderService) Get(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return s.repos.Order.FindByID(ctx, id)
}

// Create 创建采购订单。订单号在事务内按现有最大序号生成，
// 并发撞号由唯一索引兜底后重试。
func (s *OrderService) Create(ctx context.Context, input OrderInput, actorID string) (*entity.PurchaseOrder, error) {
	if input.SupplierID == "" {
		return nil, validationError("供应商不能为空")
	}
	if _, err := s.repos.Supplier.FindByID(ctx, input.SupplierID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validationError("供应商不存在")
		}
		return nil, err
	}
	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	order := &entity.PurchaseOrder{
		ID:                   uuid.NewString(),
		SupplierID:           input.SupplierID,
		Status:               entity.POStatusPending,
		OrderDate:            ParseOrderDate(input.OrderDate),
		ExpectedDeliveryDate: ParseOptionalDate(input.ExpectedDeliveryDate),
		TotalAmount:          input.TotalAmount,
		Notes:                input.Notes,
		CreatedByID:          actorID,
	}

	const maxAttempts = 3
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = s.repos.Order.DB().Transaction(func(tx *gorm.DB) error {
			seq, seqErr := s.repos.Order.NextOrderSequence(ctx, tx)
			if seqErr != nil {
				return seqErr
			}
			order.OrderNumber = fmt.Sprintf("PO-%d", seq)
			if createErr := s.repos.Order.Create(ctx, tx, order); createErr != nil {
				return createErr
			}
			for i := range items {
				items[i].OrderID = order.ID
				if itemErr := s.repos.Order.CreateItem(ctx, tx, &items[i]); itemErr != nil {
					return itemErr
				}
			}
			return nil
		})
		if err == nil {
			break
		}
		if isDuplicateKey(err) && attempt < maxAttempts {
			s.logger.Warn("order number conflict, retrying",
				zap.String("order_number", order.OrderNumber),
				zap.Int("attempt", attempt))
			continue
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase order created",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("created_by", actorID))
	return s.repos.Order.FindByID(ctx, order.ID)
}

// Update 更新订单头与行项。行项按product_id做差异合并：
// 已有产品保留行项ID，未显式给出实收数量时一并保留；
// 新产品插入，缺席产品删除，空列表清空全部。
func (s *OrderService) Update(ctx context.Context, id string, input OrderInput, actorID, actorRole string) (*entity.PurchaseOrder, error) {
	order, err := s.repos.Order.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEditOrder(order, actorID, actorRole) {
		return nil, forbiddenError("无权编辑该订单")
	}

	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	if input.SupplierID != "" && input.SupplierID != order.SupplierID {
		if _, err := s.repos.Supplier.FindByID(ctx, input.SupplierID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, validationError("供应商不存在")
			}
			return nil, err
		}
		order.SupplierID = input.SupplierID
	}
	if input.OrderDate != "" {
		order.OrderDate = ParseOrderDate(input.OrderDate)
	}
	order.ExpectedDeliveryDate = ParseOptionalDate(input.ExpectedDeliveryDate)
	order.Notes = input.Notes
	order.TotalAmount = input.TotalAmount

	err = s.repos.Order.DB().Transaction(func(tx *gorm.DB) error {
		existing, txErr := s.repos.Order.FindItemsByOrderID(ctx, tx, order.ID)
		if txErr != nil {
			return txErr
		}
		existingByProduct := make(map[string]entity.PurchaseOrderItem, len(existing))
		for _, item := range existing {
			existingByProduct[item.ProductID] = item
		}

		incoming := make(map[string]bool, len(items))
		for i := range items {
			incoming[items[i].ProductID] = true
			if prev, ok := existingByProduct[items[i].ProductID]; ok {
				// 同产品行项保留标识；未显式给出实收数量时保留原值
				items[i].ID = prev.ID
				if input.Items[i].ReceivedQuantity == nil {
					items[i].ReceivedQuantity = prev.ReceivedQuantity
				}
				items[i].CreatedAt = prev.CreatedAt
				items[i].OrderID = order.ID
				if txErr := s.repos.Order.SaveItem(ctx, tx, &items[i]); txErr != nil {
					return txErr
				}
			} else {
				items[i].OrderID = order.ID
				if txErr := s.repos.Order.CreateItem(ctx, tx, &items[i]); txErr != nil {
					return txErr
				}
			}
		}
		for _, item := range existing {
			if !incoming[item.ProductID] {
				if txErr := s.repos.Order.DeleteItem(ctx, tx, item.ID); txErr != nil {
					return txErr
				}
			}
		}
		return s.repos.Order.SaveTx(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase order updated",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("actor", actorID))
	return s.repos.Order.FindByID(ctx, order.ID)
}

// ChangeStatus 变更订单状态。状态词大写归一后校验，终态订单只接受原状态重放：
// 目标为DELIVERED时走完成收货流程，CANCELLED时追加取消备注，
// 其余目标为普通字段赋值，无副作用。
func (s *OrderService) ChangeStatus(ctx context.Context, id, rawStatus, actorID, actorRole string) (*entity.PurchaseOrder, error) {
	target := NormalizeStatus(rawStatus)
	if !entity.IsValidPOStatus(target) {
		return nil, validationError("无效的订单状态: " + rawStatus)
	}

	order, err := s.repos.Order.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity.IsTerminalPOStatus(order.Status) && target != order.Status {
		return nil, illegalStateError("订单已处于终态 " + order.Status + "，不可变更为 " + target)
	}

	switch target {
	case entity.POStatusDelivered:
		return s.Complete(ctx, id, actorID, actorRole)
	case entity.POStatusCancelled:
		note := "Order cancelled on " + time.Now().Format("2006-01-02 15:04:05")
		if order.Notes != "" {
			order.Notes = order.Notes + "\n" + note
		} else {
			order.Notes = note
		}
		order.Status = entity.POStatusCancelled
	default:
		order.Status = target
	}

	if err := s.repos.Order.Save(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Info("purchase order status changed",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("status", order.Status),
		zap.String("actor", actorID))
	return s.repos.Order.FindByID(ctx, order.ID)
}

// Complete 完成收货。仅PROCESSING订单可完成：逐行锁定产品行，
// 实收数量为0时回填为订购数量，产品库存按实收递增，
// 同事务写入STOCK_IN流水并把订单置为DELIVERED。
func (s *OrderService) Complete(ctx context.Context, id, actorID, actorRole string) (*entity.PurchaseOrder, error) {
	order, err := s.repos.Order.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.POStatusProcessing {
		return nil, illegalStateError("仅PROCESSING订单可完成收货，当前状态 " + order.Status)
	}

	now := time.Now()
	err = s.repos.Order.DB().Transaction(func(tx *gorm.DB) error {
		items, txErr := s.repos.Order.FindItemsByOrderID(ctx, tx, order.ID)
		if txErr != nil {
			return txErr
		}
		for i := range items {
			item := &items[i]
			product, txErr := s.repos.Product.FindByIDForUpdate(ctx, tx, item.ProductID)
			if txErr != nil {
				return txErr
			}
			received := item.ReceivedQuantity
			if received <= 0 {
				received = item.Quantity
				item.ReceivedQuantity = received
				if txErr := s.repos.Order.SaveItem(ctx, tx, item); txErr != nil {
					return txErr
				}
			}
			product.Quantity += received
			if txErr := tx.WithContext(ctx).Save(product).Error; txErr != nil {
				return txErr
			}
			ledger := &entity.InventoryTransaction{
				ID:              uuid.NewString(),
				ProductID:       product.ID,
				UserID:          actorID,
				TransactionType: entity.TxTypeStockIn,
				Quantity:        received,
				Notes:           "Received from purchase order " + order.OrderNumber,
				ReferenceNumber: order.OrderNumber,
				TransactionDate: now,
			}
			if txErr := s.repos.Transaction.CreateTx(ctx, tx, ledger); txErr != nil {
				return txErr
			}
		}
		order.Status = entity.POStatusDelivered
		return s.repos.Order.SaveTx(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase order delivered",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("actor", actorID))
	return s.repos.Order.FindByID(ctx, order.ID)
}

// Delete 删除订单。已交付订单不可删除，行项随订单级联删除。
func (s *OrderService) Delete(ctx context.Context, id, actorID, actorRole string) error {
	order, err := s.repos.Order.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == entity.POStatusDelivered {
		return illegalStateError("已交付订单不可删除")
	}
	if !CanDeleteOrder(order, actorID, actorRole) {
		return forbiddenError("无权删除该订单")
	}
	if err := s.repos.Order.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("purchase order deleted",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("actor", actorID))
	return nil
}

// buildItems 校验行项并生成实体，与入参逐项对应
func (s *OrderService) buildItems(ctx context.Context, inputs []OrderItemInput) ([]entity.PurchaseOrderItem, error) {
	items := make([]entity.PurchaseOrderItem, 0, len(inputs))
	for _, in := range inputs {
		if in.ProductID == "" {
			return nil, validationError("订单行项缺少产品")
		}
		if _, err := s.repos.Product.FindByID(ctx, in.ProductID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, validationError("产品不存在: " + in.ProductID)
			}
			return nil, err
		}
		quantity := in.Quantity
		if quantity < 0 {
			quantity = 0
		}
		unitPrice := in.UnitPrice
		if unitPrice < 0 {
			unitPrice = 0
		}
		received := 0
		if in.ReceivedQuantity != nil && *in.ReceivedQuantity > 0 {
			received = *in.ReceivedQuantity
		}
		items = append(items, entity.PurchaseOrderItem{
			ID:               uuid.NewString(),
			ProductID:        in.ProductID,
			Quantity:         quantity,
			UnitPrice:        unitPrice,
			ReceivedQuantity: received,
			Notes:            in.Notes,
		})
	}
	return items, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
