package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"finflow/internal/config"
	"finflow/internal/database"
	"finflow/internal/handlers"
	"finflow/internal/logger"
	"finflow/internal/middleware"
	"finflow/internal/services"
	"finflow/internal/validator"
)

// @title           FinFlow API
// @version         1.0
// @description     FinFlow is a personal finance backend for tracking income and expenses, allocating 50/30/20 budgets, materializing recurring transactions, and measuring savings goals.

// @host      localhost:8810
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	categoryService := services.NewCategoryService(db)
	periodService := services.NewPeriodService(db)
	transactionService := services.NewTransactionService(db)
	recurringService := services.NewRecurringService(db, periodService)
	budgetService := services.NewBudgetService(db, periodService)
	goalService := services.NewGoalService(db)
	reportService := services.NewReportService(db)

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	periodHandler := handlers.NewPeriodHandler(periodService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, reportService)
	recurringHandler := handlers.NewRecurringHandler(recurringService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	goalHandler := handlers.NewGoalHandler(goalService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Owner-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group, every route scoped to the resolved owner
	v1 := router.Group("/api/v1")
	v1.Use(middleware.OwnerResolver(appConfig.DefaultOwner))

	// Category routes
	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/by-type", categoryHandler.GetCategoriesByType)
	categories.POST("/defaults", categoryHandler.SeedDefaults)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Budget period routes
	periods := v1.Group("/budget-periods")
	periods.POST("", periodHandler.CreatePeriod)
	periods.GET("", periodHandler.GetPeriods)
	periods.GET("/current", periodHandler.GetCurrentPeriod)
	periods.GET("/:id", periodHandler.GetPeriodByID)
	periods.PUT("/:id/active", periodHandler.SetActive)

	// Transaction routes, report endpoints registered before the ID
	// parameter so gin does not shadow them
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/monthly-summary", transactionHandler.MonthlySummary)
	transactions.GET("/six-month-trend", transactionHandler.SixMonthTrend)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Recurring transaction routes
	recurring := v1.Group("/recurring-transactions")
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.GET("", recurringHandler.GetRecurring)
	recurring.GET("/due", recurringHandler.GetDue)
	recurring.GET("/:id", recurringHandler.GetRecurringByID)
	recurring.PUT("/:id", recurringHandler.UpdateRecurring)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)
	recurring.POST("/:id/process", recurringHandler.Process)

	// Budget routes
	budget := v1.Group("/budget")
	budget.GET("", budgetHandler.GetBudgets)
	budget.GET("/current", budgetHandler.GetCurrentBudget)
	budget.POST("/income", budgetHandler.SetIncome)
	budget.GET("/analysis", budgetHandler.GetAnalysis)

	// Goal routes
	goals := v1.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/active", goalHandler.GetActiveGoals)
	goals.GET("/completed", goalHandler.GetCompletedGoals)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/progress", goalHandler.UpdateProgress)

	log.Infof("Starting FinFlow backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
