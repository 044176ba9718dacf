package service

import (
	"github.com/karthikpeketi/inventory-backend/internal/config"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services 服务集合
type Services struct {
	Auth      *AuthService
	User      *UserService
	Category  *CategoryService
	Product   *ProductService
	Supplier  *SupplierService
	Order     *OrderService
	Inventory *InventoryService
	Storage   *StorageService
	Dashboard *DashboardService
	Report    *ReportService
	Search    *SearchService
}

// NewServices 创建服务集合
func NewServices(db *gorm.DB, repos *repository.Repositories, rdb *redis.Client, minioClient *minio.Client, cfg *config.Config, logger *zap.Logger) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, rdb, cfg, logger),
		User:      NewUserService(repos.User, logger),
		Category:  NewCategoryService(repos.Category, logger),
		Product:   NewProductService(repos.Product, repos.Category, logger),
		Supplier:  NewSupplierService(repos.Supplier, logger),
		Order:     NewOrderService(repos, logger),
		Inventory: NewInventoryService(repos, logger),
		Storage:   NewStorageService(minioClient, cfg.MinIO.Bucket, logger),
		Dashboard: NewDashboardService(repos, logger),
		Report:    NewReportService(db, logger),
		Search:    NewSearchService(repos, logger),
	}
}
