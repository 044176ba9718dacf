package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/service"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/testutil"
	"github.com/karthikpeketi/inventory-backend/internal/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type inventoryTestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func setupInventoryTest(t *testing.T) *inventoryTestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	inventorySvc := service.NewInventoryService(repos, zap.NewNop())
	h := NewInventoryHandler(inventorySvc)

	r := testutil.SetupRouter()
	inv := testutil.AuthGroup(r, "/api/v1/inventory")
	inv.GET("/transactions", h.List)
	inv.GET("/transactions/recent", h.Recent)
	inv.GET("/transactions/:id", h.Get)
	inv.POST("/sell", h.Sell)
	inv.POST("/adjust", middleware.RequireRole(entity.RoleAdmin), h.Adjust)

	testutil.SeedTestUser(t, db, "admin-1", "admin1", entity.RoleAdmin)
	testutil.SeedTestUser(t, db, "staff-1", "staff1", entity.RoleStaff)
	testutil.SeedTestProduct(t, db, "prod-1", "Widget", 10)

	return &inventoryTestEnv{DB: db, Router: r}
}

func (env *inventoryTestEnv) productQuantity(t *testing.T, id string) int {
	t.Helper()
	var p entity.Product
	if err := env.DB.First(&p, "id = ?", id).Error; err != nil {
		t.Fatalf("load product %s: %v", id, err)
	}
	return p.Quantity
}

func TestSellDecrementsStockAndWritesLedger(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.StaffTestToken("staff-1")

	body := map[string]interface{}{
		"product_id": "prod-1",
		"quantity":   4,
		"reference":  "INV-2026-001",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/inventory/sell", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("sell: status %d body %s", w.Code, w.Body.String())
	}

	if got := env.productQuantity(t, "prod-1"); got != 6 {
		t.Errorf("quantity after sell = %d, want 6", got)
	}

	var ledger entity.InventoryTransaction
	if err := env.DB.First(&ledger, "product_id = ?", "prod-1").Error; err != nil {
		t.Fatalf("ledger row missing: %v", err)
	}
	if ledger.TransactionType != entity.TxTypeStockOut {
		t.Errorf("ledger type = %s, want STOCK_OUT", ledger.TransactionType)
	}
	if ledger.Quantity != 4 {
		t.Errorf("ledger quantity = %d, want 4", ledger.Quantity)
	}
	if ledger.ReferenceNumber != "INV-2026-001" {
		t.Errorf("ledger reference = %s, want INV-2026-001", ledger.ReferenceNumber)
	}
	if ledger.UserID != "staff-1" {
		t.Errorf("ledger user = %s, want staff-1", ledger.UserID)
	}
}

func TestSellRejectsInsufficientStock(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.StaffTestToken("staff-1")

	body := map[string]interface{}{"product_id": "prod-1", "quantity": 11}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/inventory/sell", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("oversell: status = %d, want 400", w.Code)
	}

	// Stock and ledger untouched after the rejection
	if got := env.productQuantity(t, "prod-1"); got != 10 {
		t.Errorf("quantity after rejected sell = %d, want 10", got)
	}
	var count int64
	env.DB.Model(&entity.InventoryTransaction{}).Count(&count)
	if count != 0 {
		t.Errorf("ledger rows = %d, want 0", count)
	}
}

func TestSellRejectsNonPositiveQuantity(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.StaffTestToken("staff-1")

	body := map[string]interface{}{"product_id": "prod-1", "quantity": -2}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/inventory/sell", body, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative sell: status = %d, want 400", w.Code)
	}
}

func TestAdjustFloorsAtZero(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.AdminTestToken("admin-1")

	body := map[string]interface{}{"product_id": "prod-1", "delta": -25, "notes": "damage write-off"}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/inventory/adjust", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("adjust: status %d body %s", w.Code, w.Body.String())
	}

	if got := env.productQuantity(t, "prod-1"); got != 0 {
		t.Errorf("quantity after adjust = %d, want 0", got)
	}

	// Ledger records the effective delta, not the requested one
	var ledger entity.InventoryTransaction
	if err := env.DB.First(&ledger, "product_id = ?", "prod-1").Error; err != nil {
		t.Fatalf("ledger row missing: %v", err)
	}
	if ledger.TransactionType != entity.TxTypeAdjustment {
		t.Errorf("ledger type = %s, want ADJUSTMENT", ledger.TransactionType)
	}
	if ledger.Quantity != -10 {
		t.Errorf("ledger quantity = %d, want -10", ledger.Quantity)
	}
}

func TestAdjustRequiresAdmin(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.StaffTestToken("staff-1")

	body := map[string]interface{}{"product_id": "prod-1", "delta": 5}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/inventory/adjust", body, token)
	if w.Code != http.StatusForbidden {
		t.Errorf("staff adjust: status = %d, want 403", w.Code)
	}
}

func TestListTransactionsFiltersByType(t *testing.T) {
	env := setupInventoryTest(t)
	staffToken := testutil.StaffTestToken("staff-1")
	adminToken := testutil.AdminTestToken("admin-1")

	sell := map[string]interface{}{"product_id": "prod-1", "quantity": 2}
	if w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/inventory/sell", sell, staffToken); w.Code != http.StatusCreated {
		t.Fatalf("sell: status %d", w.Code)
	}
	adjust := map[string]interface{}{"product_id": "prod-1", "delta": 3}
	if w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/inventory/adjust", adjust, adminToken); w.Code != http.StatusCreated {
		t.Fatalf("adjust: status %d", w.Code)
	}

	w := testutil.DoRequest(env.Router, http.MethodGet,
		"/api/v1/inventory/transactions?type=STOCK_OUT", nil, staffToken)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	pagination := data["pagination"].(map[string]interface{})
	if total := pagination["total"].(float64); total != 1 {
		t.Errorf("STOCK_OUT total = %v, want 1", total)
	}

	w = testutil.DoRequest(env.Router, http.MethodGet,
		"/api/v1/inventory/transactions", nil, staffToken)
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	pagination = data["pagination"].(map[string]interface{})
	if total := pagination["total"].(float64); total != 2 {
		t.Errorf("all transactions total = %v, want 2", total)
	}
}

func TestListTransactionsRequiresAuth(t *testing.T) {
	env := setupInventoryTest(t)
	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/inventory/transactions", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}
}
