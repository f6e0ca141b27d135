package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finflow/internal/errors"
	"finflow/internal/models"
	"finflow/internal/pagination"
	"finflow/internal/services"
	"finflow/internal/uuid"
)

type mockBudgetService struct {
	currentBudgetFn func(ownerID string) (*models.Budget, error)
	setIncomeFn     func(ownerID string, periodID *string, income decimal.Decimal) (*models.Budget, error)
	analyzeFn       func(ownerID string, periodID *string) (*services.BudgetAnalysis, error)
	getBudgetsFn    func(ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
}

func (m *mockBudgetService) CurrentBudget(ownerID string) (*models.Budget, error) {
	if m.currentBudgetFn != nil {
		return m.currentBudgetFn(ownerID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) SetIncome(ownerID string, periodID *string, income decimal.Decimal) (*models.Budget, error) {
	if m.setIncomeFn != nil {
		return m.setIncomeFn(ownerID, periodID, income)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) Analyze(ownerID string, periodID *string) (*services.BudgetAnalysis, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ownerID, periodID)
	}
	return &services.BudgetAnalysis{}, nil
}

func (m *mockBudgetService) GetBudgets(ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	if m.getBudgetsFn != nil {
		return m.getBudgetsFn(ownerID, page)
	}
	resp := pagination.NewPageResponse([]models.Budget{}, 1, 20, 0)
	return &resp, nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("", injectOwner(testOwner))
	g.GET("/budget", handler.GetBudgets)
	g.GET("/budget/current", handler.GetCurrentBudget)
	g.POST("/budget/income", handler.SetIncome)
	g.GET("/budget/analysis", handler.GetAnalysis)
	return r
}

func TestBudgetHandler_GetCurrentBudget(t *testing.T) {
	svc := &mockBudgetService{
		currentBudgetFn: func(ownerID string) (*models.Budget, error) {
			if ownerID != testOwner {
				t.Errorf("expected owner %s, got %s", testOwner, ownerID)
			}
			return &models.Budget{
				MonthlyIncome: decimal.RequireFromString("3000"),
				NeedsBudget:   decimal.RequireFromString("1500"),
				WantsBudget:   decimal.RequireFromString("900"),
				SavingsGoal:   decimal.RequireFromString("600"),
			}, nil
		},
	}
	r := setupBudgetRouter(NewBudgetHandler(svc))

	rec := doRequest(r, "GET", "/budget/current", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	budget := result["budget"].(map[string]interface{})
	if budget["needs_budget"] != "1500" {
		t.Errorf("expected needs 1500, got %v", budget["needs_budget"])
	}
}

func TestBudgetHandler_SetIncome(t *testing.T) {
	t.Run("passes income through", func(t *testing.T) {
		var gotIncome decimal.Decimal
		var gotPeriodID *string
		svc := &mockBudgetService{
			setIncomeFn: func(_ string, periodID *string, income decimal.Decimal) (*models.Budget, error) {
				gotIncome = income
				gotPeriodID = periodID
				return &models.Budget{MonthlyIncome: income}, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "POST", "/budget/income", `{"monthly_income":"3000"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotIncome.Equal(decimal.RequireFromString("3000")) {
			t.Errorf("expected 3000, got %s", gotIncome)
		}
		if gotPeriodID != nil {
			t.Errorf("expected nil period, got %v", *gotPeriodID)
		}
	})

	t.Run("returns 400 on missing income", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "POST", "/budget/income", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on negative income", func(t *testing.T) {
		svc := &mockBudgetService{
			setIncomeFn: func(_ string, _ *string, _ decimal.Decimal) (*models.Budget, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income must not be negative")
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "POST", "/budget/income", `{"monthly_income":"-100"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetAnalysis(t *testing.T) {
	t.Run("uses current period by default", func(t *testing.T) {
		svc := &mockBudgetService{
			analyzeFn: func(_ string, periodID *string) (*services.BudgetAnalysis, error) {
				if periodID != nil {
					t.Errorf("expected nil period, got %v", *periodID)
				}
				return &services.BudgetAnalysis{
					Budget: &models.Budget{},
					BudgetStatus: services.BudgetStatus{
						NeedsOnTrack: true, WantsOnTrack: true, SavingsOnTrack: true,
					},
				}, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "GET", "/budget/analysis", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		status := result["budget_status"].(map[string]interface{})
		if status["needs_on_track"] != true {
			t.Errorf("expected needs on track, got %v", status["needs_on_track"])
		}
	})

	t.Run("passes explicit period through", func(t *testing.T) {
		periodID := uuid.New()
		svc := &mockBudgetService{
			analyzeFn: func(_ string, gotID *string) (*services.BudgetAnalysis, error) {
				if gotID == nil || *gotID != periodID {
					t.Errorf("expected period %s, got %v", periodID, gotID)
				}
				return &services.BudgetAnalysis{}, nil
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "GET", "/budget/analysis?period_id="+periodID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on malformed period_id", func(t *testing.T) {
		r := setupBudgetRouter(NewBudgetHandler(&mockBudgetService{}))

		rec := doRequest(r, "GET", "/budget/analysis?period_id=7", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when no budget exists", func(t *testing.T) {
		svc := &mockBudgetService{
			analyzeFn: func(_ string, _ *string) (*services.BudgetAnalysis, error) {
				return nil, apperrors.ErrBudgetNotFound
			},
		}
		r := setupBudgetRouter(NewBudgetHandler(svc))

		rec := doRequest(r, "GET", "/budget/analysis?period_id="+uuid.New(), "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
	})
}
