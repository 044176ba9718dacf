package service

import (
	"testing"

	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
)

func TestCanEditOrder(t *testing.T) {
	owner := "user-1"
	other := "user-2"

	tests := []struct {
		name   string
		status string
		actor  string
		role   string
		want   bool
	}{
		{"admin can edit pending", entity.POStatusPending, other, entity.RoleAdmin, true},
		{"admin can edit processing", entity.POStatusProcessing, other, entity.RoleAdmin, true},
		{"admin cannot edit delivered", entity.POStatusDelivered, other, entity.RoleAdmin, false},
		{"admin cannot edit cancelled", entity.POStatusCancelled, other, entity.RoleAdmin, false},
		{"staff owner can edit pending", entity.POStatusPending, owner, entity.RoleStaff, true},
		{"staff owner cannot edit processing", entity.POStatusProcessing, owner, entity.RoleStaff, false},
		{"staff non-owner cannot edit pending", entity.POStatusPending, other, entity.RoleStaff, false},
		{"unknown role cannot edit", entity.POStatusPending, owner, "AUDITOR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &entity.PurchaseOrder{
				Status:      tt.status,
				CreatedByID: owner,
			}
			if got := CanEditOrder(order, tt.actor, tt.role); got != tt.want {
				t.Errorf("CanEditOrder() = %v, want %v", got, tt.want)
			}
		})
	}

	if CanEditOrder(nil, owner, entity.RoleAdmin) {
		t.Error("CanEditOrder(nil) should be false")
	}
}

func TestCanDeleteOrder(t *testing.T) {
	owner := "user-1"
	other := "user-2"

	tests := []struct {
		name   string
		status string
		actor  string
		role   string
		want   bool
	}{
		{"admin can delete pending", entity.POStatusPending, other, entity.RoleAdmin, true},
		{"admin can delete processing", entity.POStatusProcessing, other, entity.RoleAdmin, true},
		{"admin can delete cancelled", entity.POStatusCancelled, other, entity.RoleAdmin, true},
		{"nobody deletes delivered", entity.POStatusDelivered, other, entity.RoleAdmin, false},
		{"staff owner can delete pending", entity.POStatusPending, owner, entity.RoleStaff, true},
		{"staff owner cannot delete processing", entity.POStatusProcessing, owner, entity.RoleStaff, false},
		{"staff non-owner cannot delete pending", entity.POStatusPending, other, entity.RoleStaff, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &entity.PurchaseOrder{
				Status:      tt.status,
				CreatedByID: owner,
			}
			if got := CanDeleteOrder(order, tt.actor, tt.role); got != tt.want {
				t.Errorf("CanDeleteOrder() = %v, want %v", got, tt.want)
			}
		})
	}
}
