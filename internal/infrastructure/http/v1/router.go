// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	appctx "confeito/internal/core/context"
	"confeito/internal/domain/auth"
	"confeito/internal/domain/catalogs/client"
	"confeito/internal/domain/catalogs/ingredient"
	"confeito/internal/domain/catalogs/recipe"
	"confeito/internal/domain/documents/expense"
	"confeito/internal/domain/documents/purchase"
	"confeito/internal/domain/reports"
	"confeito/internal/infrastructure/http/v1/handlers"
	"confeito/internal/infrastructure/http/v1/middleware"
	"confeito/internal/infrastructure/storage/postgres"
	"confeito/internal/infrastructure/storage/postgres/auth_repo"
	"confeito/internal/infrastructure/storage/postgres/catalog_repo"
	"confeito/internal/infrastructure/storage/postgres/document_repo"
	"confeito/internal/infrastructure/storage/postgres/report_repo"
	"confeito/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *pgxpool.Pool

	// TxManager drives all repository access
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTConfig for token validation and the auth endpoints
	JWTConfig auth.JWTConfig

	// AuditService records entity changes; nil disables auditing
	AuditService *postgres.AuditService
}

// jwtValidator adapts the token validation function to the middleware interface.
type jwtValidator struct {
	cfg auth.JWTConfig
}

func (v jwtValidator) ValidateToken(tokenString string) (*appctx.UserContext, error) {
	return auth.ValidateToken(v.cfg, tokenString)
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	baseHandler := handlers.NewBaseHandler()

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	// Repositories share the injected TxManager
	ingredientRepo := catalog_repo.NewIngredientRepo(cfg.TxManager)
	clientRepo := catalog_repo.NewClientRepo(cfg.TxManager)
	recipeRepo := catalog_repo.NewRecipeRepo(cfg.TxManager)
	purchaseRepo := document_repo.NewPurchaseRepo(cfg.TxManager)
	expenseRepo := document_repo.NewExpenseRepo(cfg.TxManager)
	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	userRepo := auth_repo.NewUserRepo(cfg.TxManager)

	ingredientService := ingredient.NewService(ingredientRepo, cfg.TxManager)
	clientService := client.NewService(clientRepo, cfg.TxManager)
	recipeService := recipe.NewService(recipeRepo, ingredientRepo, cfg.TxManager)
	purchaseService := purchase.NewService(purchaseRepo, clientRepo, recipeRepo, cfg.TxManager)
	expenseService := expense.NewService(expenseRepo, cfg.TxManager)
	reportService := reports.NewService(reportRepo)
	authService := auth.NewService(userRepo, cfg.JWTConfig)

	registerAuditHooks(cfg.AuditService, recipeService, purchaseService)

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(baseHandler, authService)
		apiV1.POST("/auth/login", authHandler.Login)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(jwtValidator{cfg: cfg.JWTConfig}))

		// Ingredients
		{
			handler := handlers.NewIngredientHandler(baseHandler, ingredientService)
			g := protected.Group("/ingredients")
			g.POST("", handler.Save)
			g.GET("", handler.List)
			g.GET("/:id", handler.Get)
			g.DELETE("/:id", handler.Deactivate)
		}

		// Clients
		{
			handler := handlers.NewClientHandler(baseHandler, clientService)
			g := protected.Group("/clients")
			g.POST("", handler.Create)
			g.GET("", handler.List)
			g.GET("/birthdays", handler.UpcomingBirthdays)
			g.GET("/:id", handler.Get)
			g.PUT("/:id", handler.Update)
			g.DELETE("/:id", handler.Delete)
		}

		// Recipes
		{
			handler := handlers.NewRecipeHandler(baseHandler, recipeService)
			g := protected.Group("/recipes")
			g.POST("", handler.Create)
			g.GET("", handler.List)
			g.GET("/:id", handler.Get)
			g.DELETE("/:id", handler.Delete)
		}

		// Purchases
		{
			handler := handlers.NewPurchaseHandler(baseHandler, purchaseService)
			g := protected.Group("/purchases")
			g.POST("", handler.Create)
			g.GET("", handler.List)
			g.GET("/:id", handler.Get)
			g.DELETE("/:id", handler.Delete)
		}

		// Expenses
		{
			handler := handlers.NewExpenseHandler(baseHandler, expenseService)
			g := protected.Group("/expenses")
			g.POST("", handler.Create)
			g.GET("", handler.List)
			g.GET("/:id", handler.Get)
			g.DELETE("/:id", handler.Delete)
		}

		// Reports
		{
			handler := handlers.NewReportsHandler(baseHandler, reportService)
			g := protected.Group("/reports")
			g.GET("/monthly", handler.MonthlySeries)
			g.GET("/top-clients", handler.TopClients)
		}
	}

	return router
}

// registerAuditHooks wires the audit trail into recipe and purchase
// lifecycles.
func registerAuditHooks(audit *postgres.AuditService, recipes *recipe.Service, purchases *purchase.Service) {
	if audit == nil {
		return
	}

	recipes.Hooks().OnAfterCreate(func(ctx context.Context, r *recipe.Recipe) error {
		return audit.LogChange(ctx, "recipe", r.ID, postgres.AuditActionCreate, map[string]any{
			"name":  r.Name,
			"lines": len(r.Lines),
		})
	})
	recipes.Hooks().OnAfterDelete(func(ctx context.Context, r *recipe.Recipe) error {
		return audit.LogChange(ctx, "recipe", r.ID, postgres.AuditActionDelete, map[string]any{
			"name": r.Name,
		})
	})

	purchases.Hooks().OnAfterCreate(func(ctx context.Context, p *purchase.Purchase) error {
		return audit.LogChange(ctx, "purchase", p.ID, postgres.AuditActionCreate, map[string]any{
			"client_id": p.ClientID.String(),
			"items":     len(p.Items),
		})
	})
	purchases.Hooks().OnAfterDelete(func(ctx context.Context, p *purchase.Purchase) error {
		return audit.LogChange(ctx, "purchase", p.ID, postgres.AuditActionDelete, map[string]any{
			"client_id": p.ClientID.String(),
		})
	})
}
