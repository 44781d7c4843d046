package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medstock/medstock/internal/chat"
	"github.com/medstock/medstock/internal/config"
	"github.com/medstock/medstock/internal/observability"
	"github.com/medstock/medstock/internal/store"
)

type ReadinessCheck func(ctx context.Context) error

// AssistantService answers a natural-language question about the supply
// chain data, given the prior conversation replayed by the caller.
type AssistantService interface {
	Respond(ctx context.Context, message string, history []chat.Turn) (string, error)
}

type ProductStore interface {
	ListProducts(ctx context.Context, f store.ProductFilter) ([]store.Product, int, error)
	GetProduct(ctx context.Context, id int64) (store.Product, error)
	CreateProduct(ctx context.Context, in store.ProductInput) (store.Product, error)
	UpdateProduct(ctx context.Context, id int64, in store.ProductInput) (store.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListProductFilterValues(ctx context.Context) (store.ProductFilterValues, error)
}

type MasterDataStore interface {
	ListCategories(ctx context.Context) ([]store.Category, error)
	GetCategory(ctx context.Context, id int64) (store.Category, error)
	CreateCategory(ctx context.Context, in store.CategoryInput) (store.Category, error)
	UpdateCategory(ctx context.Context, id int64, in store.CategoryInput) (store.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListCategoryFilterValues(ctx context.Context) (store.CategoryFilterValues, error)

	ListDepartments(ctx context.Context) ([]store.Department, error)
	GetDepartment(ctx context.Context, id int64) (store.Department, error)
	CreateDepartment(ctx context.Context, name string) (store.Department, error)
	UpdateDepartment(ctx context.Context, id int64, name string) (store.Department, error)
	DeleteDepartment(ctx context.Context, id int64) error

	ListSellers(ctx context.Context) ([]store.Seller, error)
	GetSeller(ctx context.Context, id int64) (store.Seller, error)
	CreateSeller(ctx context.Context, in store.SellerInput) (store.Seller, error)
	UpdateSeller(ctx context.Context, id int64, in store.SellerInput) (store.Seller, error)
	DeleteSeller(ctx context.Context, id int64) error
}

type RecordStore interface {
	ListSurveys(ctx context.Context, f store.SurveyFilter) ([]store.Survey, int, error)
	ListSurveyFilterValues(ctx context.Context) (store.SurveyFilterValues, error)
	GetSurvey(ctx context.Context, id int64) (store.Survey, error)
	CreateSurvey(ctx context.Context, in store.SurveyInput) (store.Survey, error)
	UpdateSurvey(ctx context.Context, id int64, in store.SurveyInput) (store.Survey, error)
	DeleteSurvey(ctx context.Context, id int64) error

	ListPurchasePlans(ctx context.Context, f store.PurchasePlanFilter) ([]store.PurchasePlan, int, error)
	GetPurchasePlan(ctx context.Context, id int64) (store.PurchasePlan, error)
	CreatePurchasePlan(ctx context.Context, in store.PurchasePlanInput) (store.PurchasePlan, error)
	UpdatePurchasePlan(ctx context.Context, id int64, in store.PurchasePlanInput) (store.PurchasePlan, error)
	DeletePurchasePlan(ctx context.Context, id int64) error

	ListPurchaseApprovals(ctx context.Context, f store.PurchaseApprovalFilter) ([]store.PurchaseApproval, int, error)
	GetPurchaseApproval(ctx context.Context, id int64) (store.PurchaseApproval, error)
	CreatePurchaseApproval(ctx context.Context, in store.PurchaseApprovalInput) (store.PurchaseApproval, error)
	UpdatePurchaseApproval(ctx context.Context, id int64, in store.PurchaseApprovalInput) (store.PurchaseApproval, error)
	DeletePurchaseApproval(ctx context.Context, id int64) error
	ListPurchaseApprovalFilterValues(ctx context.Context) (store.PurchaseApprovalFilterValues, error)

	ListWarehouseEntries(ctx context.Context, f store.WarehouseFilter) ([]store.WarehouseEntry, int, error)
	GetWarehouseEntry(ctx context.Context, id int64) (store.WarehouseEntry, error)
	CreateWarehouseEntry(ctx context.Context, in store.WarehouseEntryInput) (store.WarehouseEntry, error)
	UpdateWarehouseEntry(ctx context.Context, id int64, in store.WarehouseEntryInput) (store.WarehouseEntry, error)
	DeleteWarehouseEntry(ctx context.Context, id int64) error
	ListWarehouseFilterValues(ctx context.Context) (store.WarehouseFilterValues, error)
}

type Dependencies struct {
	Logger            *slog.Logger
	Readiness         ReadinessCheck
	DependencyTimeout time.Duration
	Assistant         AssistantService
	Products          ProductStore
	Master            MasterDataStore
	Records           RecordStore
}

func NewHandler(cfg config.Config, deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "service": cfg.Service.Name})
	})

	mux.HandleFunc("GET /v1/ready", func(w http.ResponseWriter, r *http.Request) {
		if deps.Readiness == nil {
			writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
			return
		}
		timeout := deps.DependencyTimeout
		if timeout <= 0 {
			timeout = 2 * time.Second
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		if err := deps.Readiness(ctx); err != nil {
			writeError(r.Context(), w, http.StatusServiceUnavailable, "NOT_READY", err.Error(), true, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
	})

	mux.Handle("GET /v1/metrics", promhttp.Handler())

	mux.HandleFunc("POST /v1/assistant/chat", func(w http.ResponseWriter, r *http.Request) {
		handleAssistantChat(deps, w, r)
	})

	mux.HandleFunc("GET /v1/products", func(w http.ResponseWriter, r *http.Request) {
		handleListProducts(deps, w, r)
	})
	mux.HandleFunc("GET /v1/products/filters", func(w http.ResponseWriter, r *http.Request) {
		handleProductFilterValues(deps, w, r)
	})
	mux.HandleFunc("POST /v1/products", func(w http.ResponseWriter, r *http.Request) {
		handleCreateProduct(deps, w, r)
	})
	mux.HandleFunc("GET /v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleGetProduct(deps, w, r)
	})
	mux.HandleFunc("PUT /v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleUpdateProduct(deps, w, r)
	})
	mux.HandleFunc("DELETE /v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleDeleteProduct(deps, w, r)
	})

	registerMasterDataRoutes(mux, deps)
	registerRecordRoutes(mux, deps)

	middlewares := []func(http.Handler) http.Handler{
		observability.TraceMiddleware,
		observability.MetricsMiddleware,
	}
	if deps.Logger != nil {
		middlewares = append(middlewares, observability.LoggingMiddleware(deps.Logger))
	}
	return chain(mux, middlewares...)
}

func CheckDatabaseDSN(cfg config.Config) ReadinessCheck {
	return func(_ context.Context) error {
		if cfg.Database.DSN == "" {
			return errors.New("database dsn is not configured")
		}
		return nil
	}
}

func CheckModelCredential(client AssistantReadiness) ReadinessCheck {
	return func(_ context.Context) error {
		if client == nil {
			return errors.New("model client is not configured")
		}
		return client.Ready()
	}
}

// AssistantReadiness is the credential probe of the model client.
type AssistantReadiness interface {
	Ready() error
}

func CombineReadinessChecks(checks ...ReadinessCheck) ReadinessCheck {
	filtered := make([]ReadinessCheck, 0, len(checks))
	for _, check := range checks {
		if check != nil {
			filtered = append(filtered, check)
		}
	}
	return func(ctx context.Context) error {
		for _, check := range filtered {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

func chain(base http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	wrapped := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, code, message string, retryable bool, extra map[string]any) {
	writeJSON(w, status, map[string]any{
		"error_code": code,
		"message":    message,
		"retryable":  retryable,
		"context":    extra,
		"trace_id":   observability.TraceIDFromContext(ctx),
	})
}

func idFromRequest(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
