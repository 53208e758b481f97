package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/khanhlinh1810/pagetrail/internal/models"
)

func TestAddGoalValidation(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name:       "zero target",
			body:       map[string]any{"type": "pages", "target": 0, "period": "weekly"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative target",
			body:       map[string]any{"type": "pages", "target": -10, "period": "weekly"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown type",
			body:       map[string]any{"type": "chapters", "target": 5, "period": "weekly"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown period",
			body:       map[string]any{"type": "pages", "target": 5, "period": "fortnightly"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "custom period without end date",
			body:       map[string]any{"type": "pages", "target": 5, "period": "custom"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "custom period with end date",
			body: map[string]any{
				"type": "pages", "target": 5, "period": "custom",
				"end_date": time.Now().AddDate(0, 1, 0).Format(time.RFC3339),
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "valid weekly goal",
			body:       map[string]any{"type": "time", "target": 300, "period": "weekly"},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, AddGoal(store), "/api/goals", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d; body: %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestListGoalsIncludesProgress(t *testing.T) {
	store := newTestStore(t)
	book := seedBook(t, store)

	// 40 pages read today.
	w := postJSON(t, AddSession(store), "/api/sessions", map[string]any{
		"book_id": book.ID, "start_page": 0, "end_page": 40, "duration": 60,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("seeding session failed: %s", w.Body.String())
	}

	w = postJSON(t, AddGoal(store), "/api/goals", map[string]any{
		"type": "pages", "target": 80, "period": "weekly",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("seeding goal failed: %s", w.Body.String())
	}

	r := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	lw := httptest.NewRecorder()
	ListGoals(store).ServeHTTP(lw, r)

	if lw.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", lw.Code, http.StatusOK)
	}

	var goals []goalWithProgress
	decodeBody(t, lw, &goals)
	if len(goals) != 1 {
		t.Fatalf("got %d goals, want 1", len(goals))
	}
	if goals[0].Progress.CurrentValue != 40 {
		t.Errorf("CurrentValue = %d, want 40", goals[0].Progress.CurrentValue)
	}
	if goals[0].Progress.ProgressPercent != 50 {
		t.Errorf("ProgressPercent = %v, want 50", goals[0].Progress.ProgressPercent)
	}
}

func TestUpdateGoalToggleCompleted(t *testing.T) {
	store := newTestStore(t)

	w := postJSON(t, AddGoal(store), "/api/goals", map[string]any{
		"type": "books", "target": 12, "period": "yearly",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("seeding goal failed: %s", w.Body.String())
	}
	var goal models.ReadingGoal
	decodeBody(t, w, &goal)

	body, _ := json.Marshal(map[string]any{"completed": true})
	r := withURLID(httptest.NewRequest(http.MethodPatch, "/api/goals/"+goal.ID, bytes.NewReader(body)), goal.ID)
	pw := httptest.NewRecorder()
	UpdateGoal(store).ServeHTTP(pw, r)

	if pw.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d; body: %s", pw.Code, http.StatusOK, pw.Body.String())
	}

	lr := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	lrw := httptest.NewRecorder()
	ListGoals(store).ServeHTTP(lrw, lr)

	var goals []goalWithProgress
	decodeBody(t, lrw, &goals)
	if len(goals) != 1 || !goals[0].Completed {
		t.Error("goal not marked completed")
	}
}

func TestUpdateGoalRejectsBadTarget(t *testing.T) {
	store := newTestStore(t)

	w := postJSON(t, AddGoal(store), "/api/goals", map[string]any{
		"type": "pages", "target": 100, "period": "monthly",
	})
	var goal models.ReadingGoal
	decodeBody(t, w, &goal)

	body, _ := json.Marshal(map[string]any{"target": 0})
	r := withURLID(httptest.NewRequest(http.MethodPatch, "/api/goals/"+goal.ID, bytes.NewReader(body)), goal.ID)
	pw := httptest.NewRecorder()
	UpdateGoal(store).ServeHTTP(pw, r)

	if pw.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", pw.Code, http.StatusBadRequest)
	}
}
