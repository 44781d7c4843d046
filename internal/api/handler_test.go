package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medstock/medstock/internal/config"
)

func testConfig() config.Config {
	return config.Config{Service: config.ServiceConfig{Name: "medstock-test"}}
}

func TestHealthEndpoint(t *testing.T) {
	handler := NewHandler(testConfig(), Dependencies{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "medstock-test" {
		t.Fatalf("body = %v", body)
	}
}

func TestReadyEndpointReportsFailure(t *testing.T) {
	handler := NewHandler(testConfig(), Dependencies{
		Readiness: func(context.Context) error { return errors.New("database dsn is not configured") },
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["error_code"] != "NOT_READY" {
		t.Fatalf("body = %v", body)
	}
}

func TestReadyEndpointWithoutChecksIsReady(t *testing.T) {
	handler := NewHandler(testConfig(), Dependencies{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ready", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCombineReadinessChecksStopsAtFirstFailure(t *testing.T) {
	calls := 0
	failing := func(context.Context) error { calls++; return errors.New("nope") }
	never := func(context.Context) error { calls++; return nil }

	check := CombineReadinessChecks(nil, failing, never)
	if err := check(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestCheckModelCredential(t *testing.T) {
	if err := CheckModelCredential(nil)(context.Background()); err == nil {
		t.Fatal("expected error for nil client")
	}
	if err := CheckModelCredential(readyProbe{nil})(context.Background()); err != nil {
		t.Fatalf("err = %v", err)
	}
	probe := readyProbe{errors.New("server misconfiguration: model API key is missing")}
	if err := CheckModelCredential(probe)(context.Background()); err == nil {
		t.Fatal("expected credential error")
	}
}

type readyProbe struct{ err error }

func (p readyProbe) Ready() error { return p.err }
