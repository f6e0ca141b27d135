package integration

import (
	"net/http"
	"testing"
)

func TestGoalFlow_ProgressToCompletion(t *testing.T) {
	app := setupApp(t)

	// Step 1: Create a goal
	rec := app.request("POST", "/api/v1/goals",
		`{"name":"emergency fund","description":"six months of expenses","target_amount":"5000","target_date":"2026-12-31"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating goal, got %d: %s", rec.Code, rec.Body.String())
	}
	goal := parseJSON(t, rec)["goal"].(map[string]interface{})
	goalID := goal["id"].(string)
	if goal["progress_percentage"].(float64) != 0 {
		t.Errorf("expected 0%% progress, got %v", goal["progress_percentage"])
	}

	// Step 2: Record progress; the amount replaces the total
	rec = app.request("POST", "/api/v1/goals/"+goalID+"/progress", `{"current_amount":"1250"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	goal = parseJSON(t, rec)["goal"].(map[string]interface{})
	if goal["progress_percentage"].(float64) != 25 {
		t.Errorf("expected 25%% progress, got %v", goal["progress_percentage"])
	}
	if goal["completed"] != false {
		t.Errorf("expected incomplete goal, got %v", goal["completed"])
	}

	rec = app.request("POST", "/api/v1/goals/"+goalID+"/progress", `{"current_amount":"2000"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	goal = parseJSON(t, rec)["goal"].(map[string]interface{})
	if goal["progress_percentage"].(float64) != 40 {
		t.Errorf("expected replacement to 40%%, got %v", goal["progress_percentage"])
	}

	// Step 3: The goal stays in the active list until it completes
	rec = app.request("GET", "/api/v1/goals/active", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if active := parseJSON(t, rec)["goals"].([]interface{}); len(active) != 1 {
		t.Errorf("expected 1 active goal, got %d", len(active))
	}

	// Step 4: Reaching the target completes the goal
	rec = app.request("POST", "/api/v1/goals/"+goalID+"/progress", `{"current_amount":"5000"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	goal = parseJSON(t, rec)["goal"].(map[string]interface{})
	if goal["completed"] != true {
		t.Errorf("expected completed goal, got %v", goal["completed"])
	}
	if goal["progress_percentage"].(float64) != 100 {
		t.Errorf("expected 100%% progress, got %v", goal["progress_percentage"])
	}

	rec = app.request("GET", "/api/v1/goals/completed", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if completed := parseJSON(t, rec)["goals"].([]interface{}); len(completed) != 1 {
		t.Errorf("expected 1 completed goal, got %d", len(completed))
	}
	rec = app.request("GET", "/api/v1/goals/active", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if active := parseJSON(t, rec)["goals"].([]interface{}); len(active) != 0 {
		t.Errorf("expected no active goals, got %d", len(active))
	}

	// Step 5: Raising the target reopens the goal
	rec = app.request("PUT", "/api/v1/goals/"+goalID, `{"target_amount":"10000"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	goal = parseJSON(t, rec)["goal"].(map[string]interface{})
	if goal["completed"] != false {
		t.Errorf("expected reopened goal, got %v", goal["completed"])
	}
	if goal["progress_percentage"].(float64) != 50 {
		t.Errorf("expected 50%% progress after raise, got %v", goal["progress_percentage"])
	}
}

func TestGoalFlow_Delete(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/goals",
		`{"name":"vacation","target_amount":"2000","target_date":"2026-08-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	goalID := parseJSON(t, rec)["goal"].(map[string]interface{})["id"].(string)

	rec = app.request("DELETE", "/api/v1/goals/"+goalID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/goals/"+goalID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}
