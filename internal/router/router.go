package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"marinemarket_v1/internal/controller"
	"marinemarket_v1/internal/middleware"
	"marinemarket_v1/internal/model"

	_ "marinemarket_v1/docs"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtl *controller.AuthController,
	listingCtl *controller.ListingController,
	schemaCtl *controller.SchemaController,
	adminCtl *controller.AdminController,
	rateCtl *controller.RateController) {
	// Swagger 文档
	// 访问 http://localhost:8080/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		// auth 认证组
		auth := api.Group("/auth")
		{
			auth.POST("/register", authCtl.Register)
			auth.POST("/login", authCtl.Login)
			auth.POST("/refresh", authCtl.Refresh)
			auth.GET("/profile", middleware.JWTAuth(), authCtl.Profile)
		}

		// schema 类型元数据，完全公开
		schemas := api.Group("/schemas")
		{
			schemas.GET("", schemaCtl.ListSchemas)
			schemas.GET("/:type", schemaCtl.GetSchema)
		}

		// listings 刊登组
		// 读接口挂 OptionalAuth：匿名只看 approved，owner/管理员能看更多
		listings := api.Group("/listings")
		{
			listings.GET("", middleware.OptionalAuth(), listingCtl.List)
			listings.GET("/:id", middleware.OptionalAuth(), listingCtl.Get)

			listings.POST("",
				middleware.JWTAuth(),
				middleware.MutationRateLimit(middleware.MutationCreate, 0),
				listingCtl.Create,
			)
			listings.PUT("/:id",
				middleware.JWTAuth(),
				middleware.MutationRateLimit(middleware.MutationUpdate, 0),
				listingCtl.Update,
			)
			listings.DELETE("/:id", middleware.JWTAuth(), listingCtl.Delete)

			listings.POST("/:id/images",
				middleware.JWTAuth(),
				middleware.MutationRateLimit(middleware.MutationImage, 0),
				listingCtl.UploadImage,
			)
			listings.DELETE("/:id/images/:image_id", middleware.JWTAuth(), listingCtl.DeleteImage)
		}

		// rates 汇率，公开只读
		api.GET("/rates", rateCtl.GetRates)

		// admin 审核组，整组要求管理员角色
		admin := api.Group("/admin", middleware.JWTAuth(), middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/listings/pending", adminCtl.ListPending)
			admin.POST("/listings/:id/approve", adminCtl.Approve)
			admin.POST("/listings/:id/reject", adminCtl.Reject)
		}
	}
}
