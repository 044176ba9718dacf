package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/karthikpeketi/inventory-backend/internal/config"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/entity"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/handler"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/repository"
	"github.com/karthikpeketi/inventory-backend/internal/inventory/service"
	"github.com/karthikpeketi/inventory-backend/internal/metrics"
	"github.com/karthikpeketi/inventory-backend/internal/middleware"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting inventory backend",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Database migration failed", zap.Error(err))
	}
	zapLogger.Info("Database migration completed")

	// 初始化Redis
	rdb := initRedis(cfg.Redis)

	// 初始化MinIO（未配置时跳过，图片相关接口将返回错误）
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			zapLogger.Warn("Failed to init MinIO client", zap.Error(err))
			minioClient = nil
		}
	}

	// 初始化依赖
	repos := repository.NewRepositories(db)
	services := service.NewServices(db, repos, rdb, minioClient, cfg, zapLogger)
	handlers := handler.NewHandlers(services, repos)

	if minioClient != nil {
		if err := services.Storage.EnsureBucket(context.Background()); err != nil {
			zapLogger.Warn("Failed to ensure MinIO bucket", zap.Error(err))
		}
	}

	// 初始管理员账号
	if err := seedAdminUser(db, zapLogger); err != nil {
		zapLogger.Warn("Admin seed warning", zap.Error(err))
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	serverMetrics := metrics.NewServerMetrics("api")

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(serverMetrics.Middleware())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// 注册路由
	registerRoutes(router, handlers, cfg, db, rdb)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// seedAdminUser 空库时创建初始管理员，密码来自ADMIN_PASSWORD环境变量
func seedAdminUser(db *gorm.DB, zapLogger *zap.Logger) error {
	var count int64
	if err := db.Model(&entity.User{}).Where("role = ?", entity.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := config.GetEnvOrDefault("ADMIN_PASSWORD", "")
	if password == "" {
		password = uuid.NewString()
		zapLogger.Warn("ADMIN_PASSWORD not set, generated random admin password",
			zap.String("password", password))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &entity.User{
		ID:           uuid.NewString(),
		Username:     config.GetEnvOrDefault("ADMIN_USERNAME", "admin"),
		Email:        config.GetEnvOrDefault("ADMIN_EMAIL", "admin@localhost"),
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	zapLogger.Info("Initial admin user created", zap.String("username", admin.Username))
	return nil
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config, db *gorm.DB, rdb *redis.Client) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
			return
		}
		if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证 (无需登录)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/forgot-password", h.Auth.ForgotPassword)
			auth.POST("/reset-password", h.Auth.ResetPassword)
		}

		// 需要认证的接口
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			// 当前用户
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.POST("/auth/change-password", h.User.ChangePassword)

			// 用户管理（仅管理员）
			users := authorized.Group("/users")
			users.Use(middleware.RequireRole(entity.RoleAdmin))
			{
				users.GET("", h.User.List)
				users.GET("/:id", h.User.Get)
				users.POST("", h.User.Create)
				users.PUT("/:id", h.User.Update)
				users.POST("/:id/approve", h.User.Approve)
				users.POST("/:id/reject", h.User.Reject)
				users.POST("/:id/active", h.User.SetActive)
			}

			// 分类
			categories := authorized.Group("/categories")
			{
				categories.GET("", h.Category.List)
				categories.GET("/:id", h.Category.Get)
				categories.POST("", h.Category.Create)
				categories.PUT("/:id", h.Category.Update)
				categories.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Category.Delete)
			}

			// 产品
			products := authorized.Group("/products")
			{
				products.GET("", h.Product.List)
				products.GET("/low-stock", h.Product.LowStock)
				products.GET("/barcode/:barcode", h.Product.GetByBarcode)
				products.GET("/:id", h.Product.Get)
				products.POST("", h.Product.Create)
				products.PUT("/:id", h.Product.Update)
				products.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Product.Delete)
				products.POST("/:id/image", h.Product.UploadImage)
				products.GET("/:id/image-url", h.Product.ImageURL)
			}

			// 供应商
			suppliers := authorized.Group("/suppliers")
			{
				suppliers.GET("", h.Supplier.List)
				suppliers.GET("/:id", h.Supplier.Get)
				suppliers.POST("", h.Supplier.Create)
				suppliers.PUT("/:id", h.Supplier.Update)
				suppliers.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Supplier.Delete)
			}

			// 采购订单
			orders := authorized.Group("/purchase-orders")
			{
				orders.GET("", h.Order.List)
				orders.GET("/:id", h.Order.Get)
				orders.POST("", h.Order.Create)
				orders.PUT("/:id", h.Order.Update)
				orders.PATCH("/:id/status", h.Order.ChangeStatus)
				orders.POST("/:id/complete", h.Order.Complete)
				orders.DELETE("/:id", h.Order.Delete)
			}

			// 库存流水
			inventory := authorized.Group("/inventory")
			{
				inventory.GET("/transactions", h.Inventory.List)
				inventory.GET("/transactions/recent", h.Inventory.Recent)
				inventory.GET("/transactions/:id", h.Inventory.Get)
				inventory.POST("/sell", h.Inventory.Sell)
				inventory.POST("/adjust", middleware.RequireRole(entity.RoleAdmin), h.Inventory.Adjust)
			}

			// 仪表盘
			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/stats", h.Dashboard.Stats)
				dashboard.GET("/recent-activity", h.Dashboard.RecentActivity)
				dashboard.GET("/recent-orders", h.Dashboard.RecentOrders)
				dashboard.GET("/sales", h.Dashboard.Sales)
				dashboard.GET("/low-stock", h.Dashboard.LowStock)
			}

			// 报表
			reports := authorized.Group("/reports")
			{
				reports.GET("/stock-movement", h.Report.StockMovement)
				reports.GET("/top-products", h.Report.TopProducts)
				reports.GET("/slow-moving", h.Report.SlowMoving)
				reports.GET("/supplier-contribution", h.Report.SupplierContribution)
				reports.GET("/order-value-trend", h.Report.OrderValueTrend)
				reports.GET("/stock-movement/export", h.Report.ExportStockMovement)
				reports.GET("/transactions/export", h.Report.ExportTransactions)
				reports.GET("/orders/export", h.Report.ExportOrders)
			}

			// 全局搜索
			authorized.GET("/search", h.Search.Search)
		}
	}
}
