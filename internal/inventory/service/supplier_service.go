package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"go.uber.org/zap"
)

// SupplierService 供应商服务
type SupplierService struct {
	supplierRepo *repository.SupplierRepository
	logger       *zap.Logger
}

func NewSupplierService(supplierRepo *repository.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo, logger: logger}
}

type SupplierInput struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

func (s *SupplierService) List(ctx context.Context, params repository.SupplierListParams) ([]entity.Supplier, int64, error) {
	return s.supplierRepo.FindAll(ctx, params)
}

func (s *SupplierService) Get(ctx context.Context, id string) (*entity.Supplier, error) {
	return s.supplierRepo.FindByID(ctx, id)
}

func (s *SupplierService) Create(ctx context.Context, input SupplierInput) (*entity.Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, validationError("供应商名称不能为空")
	}

	supplier := &entity.Supplier{
		ID:            uuid.NewString(),
		Name:          name,
		ContactPerson: input.ContactPerson,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		Notes:         input.Notes,
		IsActive:      true,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	s.logger.Info("supplier created",
		zap.String("supplier_id", supplier.ID),
		zap.String("name", supplier.Name))
	return supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, id string, input SupplierInput) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		supplier.Name = name
	}
	supplier.ContactPerson = input.ContactPerson
	supplier.Email = input.Email
	supplier.Phone = input.Phone
	supplier.Address = input.Address
	supplier.Notes = input.Notes

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete 删除供应商。名下存在未完结采购订单时拒绝删除。
func (s *SupplierService) Delete(ctx context.Context, id string) error {
	if _, err := s.supplierRepo.FindByID(ctx, id); err != nil {
		return err
	}
	openOrders, err := s.supplierRepo.CountOpenOrders(ctx, id)
	if err != nil {
		return err
	}
	if openOrders > 0 {
		return illegalStateError("供应商名下存在未完结采购订单，不可删除")
	}
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("supplier deleted", zap.String("supplier_id", id))
	return nil
}
