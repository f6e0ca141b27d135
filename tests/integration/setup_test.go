package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"finflow/internal/handlers"
	"finflow/internal/logger"
	"finflow/internal/middleware"
	"finflow/internal/models"
	"finflow/internal/services"
	"finflow/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

const testOwner = "integration-owner"

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Category{},
		&models.BudgetPeriod{},
		&models.Transaction{},
		&models.RecurringTransaction{},
		&models.Budget{},
		&models.Goal{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	categoryService := services.NewCategoryService(db)
	periodService := services.NewPeriodService(db)
	transactionService := services.NewTransactionService(db)
	recurringService := services.NewRecurringService(db, periodService)
	budgetService := services.NewBudgetService(db, periodService)
	goalService := services.NewGoalService(db)
	reportService := services.NewReportService(db)

	// Handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	periodHandler := handlers.NewPeriodHandler(periodService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, reportService)
	recurringHandler := handlers.NewRecurringHandler(recurringService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	goalHandler := handlers.NewGoalHandler(goalService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.Use(middleware.OwnerResolver(testOwner))

	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/by-type", categoryHandler.GetCategoriesByType)
	categories.POST("/defaults", categoryHandler.SeedDefaults)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	periods := v1.Group("/budget-periods")
	periods.POST("", periodHandler.CreatePeriod)
	periods.GET("", periodHandler.GetPeriods)
	periods.GET("/current", periodHandler.GetCurrentPeriod)
	periods.GET("/:id", periodHandler.GetPeriodByID)
	periods.PUT("/:id/active", periodHandler.SetActive)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/monthly-summary", transactionHandler.MonthlySummary)
	transactions.GET("/six-month-trend", transactionHandler.SixMonthTrend)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	recurring := v1.Group("/recurring-transactions")
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.GET("", recurringHandler.GetRecurring)
	recurring.GET("/due", recurringHandler.GetDue)
	recurring.GET("/:id", recurringHandler.GetRecurringByID)
	recurring.PUT("/:id", recurringHandler.UpdateRecurring)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)
	recurring.POST("/:id/process", recurringHandler.Process)

	budget := v1.Group("/budget")
	budget.GET("", budgetHandler.GetBudgets)
	budget.GET("/current", budgetHandler.GetCurrentBudget)
	budget.POST("/income", budgetHandler.SetIncome)
	budget.GET("/analysis", budgetHandler.GetAnalysis)

	goals := v1.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/active", goalHandler.GetActiveGoals)
	goals.GET("/completed", goalHandler.GetCompletedGoals)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/progress", goalHandler.UpdateProgress)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Owner-ID", testOwner)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// createCategory creates a category and returns its ID.
func (app *testApp) createCategory(t *testing.T, name, categoryType string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"type":%q}`, name, categoryType)
	rec := app.request("POST", "/api/v1/categories", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating category %s failed: %d %s", name, rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	category := result["category"].(map[string]interface{})
	return category["id"].(string)
}

// createTransaction records a ledger entry and returns its ID.
func (app *testApp) createTransaction(t *testing.T, txType, categoryID, amount, date string) string {
	t.Helper()
	body := fmt.Sprintf(`{"type":%q,"category_id":%q,"amount":%q,"date":%q}`,
		txType, categoryID, amount, date)
	rec := app.request("POST", "/api/v1/transactions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	tx := result["transaction"].(map[string]interface{})
	return tx["id"].(string)
}
