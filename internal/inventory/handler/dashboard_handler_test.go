package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/service"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type dashboardTestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func setupDashboardTest(t *testing.T) *dashboardTestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	dashboardSvc := service.NewDashboardService(repos, zap.NewNop())
	reportSvc := service.NewReportService(db, zap.NewNop())
	dh := NewDashboardHandler(dashboardSvc)
	rh := NewReportHandler(reportSvc, repos)

	r := testutil.SetupRouter()
	dashboard := testutil.AuthGroup(r, "/api/v1/dashboard")
	dashboard.GET("/stats", dh.Stats)
	dashboard.GET("/recent-orders", dh.RecentOrders)
	dashboard.GET("/sales", dh.Sales)
	reports := testutil.AuthGroup(r, "/api/v1/reports")
	reports.GET("/orders/export", rh.ExportOrders)

	testutil.SeedTestUser(t, db, "admin-1", "admin1", entity.RoleAdmin)
	testutil.SeedTestSupplier(t, db, "sup-1", "Acme Components")

	return &dashboardTestEnv{DB: db, Router: r}
}

func seedDashboardOrder(t *testing.T, db *gorm.DB, number string, total float64, createdAt time.Time) {
	t.Helper()
	order := entity.PurchaseOrder{
		ID:          uuid.NewString(),
		OrderNumber: number,
		SupplierID:  "sup-1",
		Status:      entity.POStatusPending,
		OrderDate:   createdAt,
		TotalAmount: total,
		CreatedByID: "admin-1",
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order %s: %v", number, err)
	}
}

func TestDashboardStatsIncludesSupplierAndStockOutMetrics(t *testing.T) {
	env := setupDashboardTest(t)
	token := testutil.AdminTestToken("admin-1")

	testutil.SeedTestSupplier(t, env.DB, "sup-2", "Globex Parts")

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/dashboard/stats", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: status %d body %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})

	if got := data["total_suppliers"].(float64); got != 2 {
		t.Errorf("total_suppliers = %v, want 2", got)
	}
	if _, ok := data["stock_out_delta_pct"]; !ok {
		t.Error("stock_out_delta_pct missing from stats payload")
	}
	// No transactions in either window, delta stays at zero
	if got := data["stock_out_delta_pct"].(float64); got != 0 {
		t.Errorf("stock_out_delta_pct = %v, want 0", got)
	}
}

func TestRecentOrdersReturnsLatestFive(t *testing.T) {
	env := setupDashboardTest(t)
	token := testutil.AdminTestToken("admin-1")

	base := time.Now().Add(-7 * time.Hour)
	for i := 0; i < 7; i++ {
		seedDashboardOrder(t, env.DB, fmt.Sprintf("PO-2000%d", i), float64(i), base.Add(time.Duration(i)*time.Hour))
	}

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/dashboard/recent-orders", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("recent orders: status %d body %s", w.Code, w.Body.String())
	}
	orders := testutil.ParseResponse(w)["data"].([]interface{})
	if len(orders) != 5 {
		t.Fatalf("recent orders = %d, want 5", len(orders))
	}
	// Newest first
	first := orders[0].(map[string]interface{})
	if first["order_number"] != "PO-20006" {
		t.Errorf("first order = %v, want PO-20006", first["order_number"])
	}
	last := orders[4].(map[string]interface{})
	if last["order_number"] != "PO-20002" {
		t.Errorf("last order = %v, want PO-20002", last["order_number"])
	}
	if first["supplier"] == nil {
		t.Error("supplier not preloaded on recent orders")
	}
}

func TestMonthlySalesZeroFillsEmptyMonths(t *testing.T) {
	env := setupDashboardTest(t)
	token := testutil.AdminTestToken("admin-1")

	seedDashboardOrder(t, env.DB, "PO-30001", 250.5, time.Now())

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/dashboard/sales?months=3", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("sales: status %d body %s", w.Code, w.Body.String())
	}
	rows := testutil.ParseResponse(w)["data"].([]interface{})
	if len(rows) != 3 {
		t.Fatalf("sales rows = %d, want 3", len(rows))
	}

	currentMonth := time.Now().Format("2006-01")
	for i, raw := range rows {
		row := raw.(map[string]interface{})
		month := row["month"].(string)
		total := row["total_amount"].(float64)
		if i < 2 {
			if total != 0 {
				t.Errorf("month %s total = %v, want 0", month, total)
			}
			continue
		}
		if month != currentMonth {
			t.Errorf("last month = %s, want %s", month, currentMonth)
		}
		if total != 250.5 {
			t.Errorf("current month total = %v, want 250.5", total)
		}
	}
}

func TestExportOrdersReturnsWorkbook(t *testing.T) {
	env := setupDashboardTest(t)
	token := testutil.AdminTestToken("admin-1")

	seedDashboardOrder(t, env.DB, "PO-40001", 99, time.Now())

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/reports/orders/export", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("export: status %d body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type = %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "purchase-orders-") {
		t.Errorf("content disposition = %s", cd)
	}
	if w.Body.Len() == 0 {
		t.Error("workbook body is empty")
	}
}
