package router

import (
	"github.com/ehgns852/moamoa/internal/config"
	"github.com/ehgns852/moamoa/internal/handler"
	"github.com/ehgns852/moamoa/internal/middleware"
	"github.com/ehgns852/moamoa/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB, assetService *service.AssetService) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// locally stored uploads are served as static files
	if cfg.Storage.Backend == "local" {
		r.Static("/uploads", cfg.Storage.LocalDir)
	}

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)

	assetHandler := handler.NewAssetHandler(assetService)
	asset := protected.Group("/asset")
	asset.POST("/categories", assetHandler.AddCategory)
	asset.GET("/categories", assetHandler.GetCategories)
	asset.DELETE("/categories/:id", assetHandler.DeleteCategory)
	asset.POST("/budgets", assetHandler.SetBudget)
	asset.POST("/expenditure-ratios", assetHandler.SetExpenditureRatio)
	asset.POST("/revenue-expenditures", assetHandler.AddRevenueExpenditure)
	asset.GET("/revenue-expenditures", assetHandler.GetMonthlySummary)
	asset.POST("/goals", assetHandler.SetAssetGoal)
	asset.POST("/money-logs", assetHandler.CreateMoneyLog)

	exportHandler := handler.NewExportHandler(db)
	asset.GET("/revenue-expenditures/export.xlsx", exportHandler.ExportXLSX)

	logHandler := handler.NewLogHandler(db)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
