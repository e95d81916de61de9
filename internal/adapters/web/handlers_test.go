package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finaxis-assistant/internal/adapters/web"
	"finaxis-assistant/internal/app"
	"finaxis-assistant/internal/core"
)

// stubService implements only the methods the routes under test call.
type stubService struct {
	app.ApplicationService
}

func (stubService) InterpretCommand(_ context.Context, _ string) (*app.CommandResult, error) {
	return &app.CommandResult{Decision: core.RouteDecision{
		Kind:   core.RouteNavigate,
		Target: core.TargetNuevoItem,
	}}, nil
}

func TestHealthRoute(t *testing.T) {
	h := web.NewHandler(stubService{}, "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("request ID header missing")
	}
}

func TestCommandRoute(t *testing.T) {
	h := web.NewHandler(stubService{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/assistant/command",
		strings.NewReader(`{"text":":nuevo item"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), core.TargetNuevoItem) {
		t.Errorf("decision missing from body: %q", rec.Body.String())
	}
}

func TestCommandRoute_RejectsBadJSON(t *testing.T) {
	h := web.NewHandler(stubService{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/assistant/command",
		strings.NewReader(`{"text":`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "BAD_REQUEST") {
		t.Errorf("body = %q", rec.Body.String())
	}
}
