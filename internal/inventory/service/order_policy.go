package service

import "github.com/karthikpeketi/inventory-backend/internal/inventory/entity"

// CanEditOrder 判定操作者能否编辑订单。
// 管理员可编辑PENDING和PROCESSING订单，普通员工仅可编辑自己创建的PENDING订单。
// 终态订单任何人不可编辑。
func CanEditOrder(order *entity.PurchaseOrder, actorID, actorRole string) bool {
	if order == nil {
		return false
	}
	switch actorRole {
	case entity.RoleAdmin:
		return order.Status == entity.POStatusPending || order.Status == entity.POStatusProcessing
	case entity.RoleStaff:
		return order.Status == entity.POStatusPending && order.CreatedByID == actorID
	default:
		return false
	}
}

// CanDeleteOrder 判定操作者能否删除订单。已交付订单不可删除，其余同编辑规则。
func CanDeleteOrder(order *entity.PurchaseOrder, actorID, actorRole string) bool {
	if order == nil || order.Status == entity.POStatusDelivered {
		return false
	}
	if actorRole == entity.RoleAdmin {
		return true
	}
	return order.Status == entity.POStatusPending && order.CreatedByID == actorID
}
