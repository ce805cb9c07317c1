package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"marinemarket_v1/internal/controller"
	"marinemarket_v1/internal/listingtype"
	"marinemarket_v1/internal/model"
	"marinemarket_v1/internal/repository"
	"marinemarket_v1/internal/router"
	"marinemarket_v1/internal/service"
	"marinemarket_v1/internal/task"
	"marinemarket_v1/pkg/database"
)

// @title MarineMarket API
// @version 1.0
// @description 海事分类信息市场后端接口
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Auth,
		deps.Controllers.Listing,
		deps.Controllers.Schema,
		deps.Controllers.Admin,
		deps.Controllers.Rate,
	)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Registry    *listingtype.Registry
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Listing repository.ListingRepository
	Image   repository.ListingImageRepository
	User    repository.UserRepository
	Rate    repository.CurrencyRateRepository
}

// Services 服务集合
type Services struct {
	Listing *service.ListingService
	Image   *service.ImageService
	User    *service.UserService
	Rate    *service.CurrencyRateService
	Storage service.StorageProvider
}

// Controllers 控制器集合
type Controllers struct {
	Auth    *controller.AuthController
	Listing *controller.ListingController
	Schema  *controller.SchemaController
	Admin   *controller.AdminController
	Rate    *controller.RateController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=postgres password=postgres dbname=marinemarket port=5432 sslmode=disable")

	return database.InitDB(dsn,
		// 用户
		&model.User{},
		// 公共信封
		&model.Listing{}, &model.ListingImage{},
		// 类型扩展表
		&model.YachtExtension{}, &model.PartExtension{}, &model.MarinaExtension{},
		&model.CrewExtension{}, &model.EquipmentExtension{}, &model.ServiceExtension{},
		&model.StorageExtension{}, &model.InsuranceExtension{}, &model.SurveyExtension{},
		&model.SecondhandExtension{},
		// 汇率
		&model.CurrencyRate{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Listing: repository.NewListingRepository(db),
		Image:   repository.NewListingImageRepository(db),
		User:    repository.NewUserRepository(db),
		Rate:    repository.NewCurrencyRateRepository(db),
	}

	// -------- 类型注册表 --------
	// 全部刊登类型在这里一次性注册，之后只读
	registry, err := listingtype.BuildRegistry(db)
	if err != nil {
		log.Fatalf("类型注册失败: %v", err)
	}

	// -------- 存储 --------
	storage := initStorage()

	// -------- 业务服务 --------
	services := &Services{
		Listing: service.NewListingService(repos.Listing, repos.User, registry),
		Image:   service.NewImageService(repos.Image, repos.Listing, storage),
		User:    service.NewUserService(repos.User),
		Rate:    service.NewCurrencyRateService(repos.Rate),
		Storage: storage,
	}

	// -------- Controller 层 --------
	controllers := &Controllers{
		Auth:    controller.NewAuthController(services.User),
		Listing: controller.NewListingController(services.Listing, services.Image),
		Schema:  controller.NewSchemaController(registry),
		Admin:   controller.NewAdminController(services.Listing),
		Rate:    controller.NewRateController(services.Rate),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Registry:    registry,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorage 初始化存储
func initStorage() service.StorageProvider {
	storage, err := service.NewStorageProvider(&service.StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", ""),
		BaseURL:   getEnv("STORAGE_BASE_URL", ""),
	})
	if err != nil {
		log.Fatalf("存储服务初始化失败: %v", err)
	}
	return storage
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 汇率刷新
	rateTask := task.NewRateTask(deps.Services.Rate)
	rateTask.Start()

	// 软删刊登清理
	purgeTask := task.NewPurgeTask(deps.Repos.Listing, deps.Services.Image)
	purgeTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
