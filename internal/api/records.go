package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/medstock/medstock/internal/store"
)

func registerRecordRoutes(mux *http.ServeMux, deps Dependencies) {
	mux.HandleFunc("GET /v1/surveys", func(w http.ResponseWriter, r *http.Request) {
		handleListSurveys(deps, w, r)
	})
	mux.HandleFunc("POST /v1/surveys", func(w http.ResponseWriter, r *http.Request) {
		handleCreateSurvey(deps, w, r)
	})
	mux.HandleFunc("GET /v1/surveys/filters", func(w http.ResponseWriter, r *http.Request) {
		handleSurveyFilterValues(deps, w, r)
	})
	mux.HandleFunc("GET /v1/surveys/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleGetSurvey(deps, w, r)
	})
	mux.HandleFunc("PUT /v1/surveys/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleUpdateSurvey(deps, w, r)
	})
	mux.HandleFunc("DELETE /v1/surveys/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleDeleteSurvey(deps, w, r)
	})

	mux.HandleFunc("GET /v1/purchase-plans", func(w http.ResponseWriter, r *http.Request) {
		handleListPurchasePlans(deps, w, r)
	})
	mux.HandleFunc("POST /v1/purchase-plans", func(w http.ResponseWriter, r *http.Request) {
		handleCreatePurchasePlan(deps, w, r)
	})
	mux.HandleFunc("GET /v1/purchase-plans/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleGetPurchasePlan(deps, w, r)
	})
	mux.HandleFunc("PUT /v1/purchase-plans/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleUpdatePurchasePlan(deps, w, r)
	})
	mux.HandleFunc("DELETE /v1/purchase-plans/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleDeletePurchasePlan(deps, w, r)
	})

	mux.HandleFunc("GET /v1/purchase-approvals", func(w http.ResponseWriter, r *http.Request) {
		handleListPurchaseApprovals(deps, w, r)
	})
	mux.HandleFunc("POST /v1/purchase-approvals", func(w http.ResponseWriter, r *http.Request) {
		handleCreatePurchaseApproval(deps, w, r)
	})
	mux.HandleFunc("GET /v1/purchase-approvals/filters", func(w http.ResponseWriter, r *http.Request) {
		handlePurchaseApprovalFilterValues(deps, w, r)
	})
	mux.HandleFunc("GET /v1/purchase-approvals/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleGetPurchaseApproval(deps, w, r)
	})
	mux.HandleFunc("PUT /v1/purchase-approvals/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleUpdatePurchaseApproval(deps, w, r)
	})
	mux.HandleFunc("DELETE /v1/purchase-approvals/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleDeletePurchaseApproval(deps, w, r)
	})

	mux.HandleFunc("GET /v1/warehouse", func(w http.ResponseWriter, r *http.Request) {
		handleListWarehouseEntries(deps, w, r)
	})
	mux.HandleFunc("POST /v1/warehouse", func(w http.ResponseWriter, r *http.Request) {
		handleCreateWarehouseEntry(deps, w, r)
	})
	mux.HandleFunc("GET /v1/warehouse/filters", func(w http.ResponseWriter, r *http.Request) {
		handleWarehouseFilterValues(deps, w, r)
	})
	mux.HandleFunc("GET /v1/warehouse/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleGetWarehouseEntry(deps, w, r)
	})
	mux.HandleFunc("PUT /v1/warehouse/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleUpdateWarehouseEntry(deps, w, r)
	})
	mux.HandleFunc("DELETE /v1/warehouse/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleDeleteWarehouseEntry(deps, w, r)
	})
}

func requireRecords(deps Dependencies, w http.ResponseWriter) bool {
	if deps.Records == nil {
		writeFailure(w, http.StatusNotImplemented, "record store is not configured")
		return false
	}
	return true
}

func paginationFromQuery(r *http.Request) (page, pageSize int, orderBy string, sortDesc bool) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	pageSize, _ = strconv.Atoi(q.Get("pageSize"))
	orderBy = strings.TrimSpace(q.Get("orderBy"))
	sortDesc = strings.EqualFold(q.Get("sortOrder"), "desc")
	return page, pageSize, orderBy, sortDesc
}

func handleListSurveys(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	q := r.URL.Query()
	filter := store.SurveyFilter{
		ProductName:    strings.TrimSpace(q.Get("productName")),
		Category:       strings.TrimSpace(q.Get("category")),
		Type:           strings.TrimSpace(q.Get("type")),
		RequestingDept: strings.TrimSpace(q.Get("requestingDept")),
		OrderBy:        strings.TrimSpace(q.Get("orderBy")),
		SortDesc:       strings.EqualFold(q.Get("sortOrder"), "desc"),
	}
	surveys, total, err := deps.Records.ListSurveys(r.Context(), filter)
	if err != nil {
		writeStoreError(w, err, "survey")
		return
	}
	writeUnpagedList(w, surveys, total)
}

func handleSurveyFilterValues(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	values, err := deps.Records.ListSurveyFilterValues(r.Context())
	if err != nil {
		writeStoreError(w, err, "survey")
		return
	}
	writeData(w, http.StatusOK, values)
}

func handlePurchaseApprovalFilterValues(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	values, err := deps.Records.ListPurchaseApprovalFilterValues(r.Context())
	if err != nil {
		writeStoreError(w, err, "purchase approval")
		return
	}
	writeData(w, http.StatusOK, values)
}

func handleWarehouseFilterValues(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	values, err := deps.Records.ListWarehouseFilterValues(r.Context())
	if err != nil {
		writeStoreError(w, err, "warehouse entry")
		return
	}
	writeData(w, http.StatusOK, values)
}

func handleGetSurvey(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid survey id")
		return
	}
	survey, err := deps.Records.GetSurvey(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "survey")
		return
	}
	writeData(w, http.StatusOK, survey)
}

func handleCreateSurvey(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	var in store.SurveyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	survey, err := deps.Records.CreateSurvey(r.Context(), in)
	if err != nil {
		writeStoreError(w, err, "survey")
		return
	}
	writeData(w, http.StatusCreated, survey)
}

func handleUpdateSurvey(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid survey id")
		return
	}
	var in store.SurveyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	survey, err := deps.Records.UpdateSurvey(r.Context(), id, in)
	if err != nil {
		writeStoreError(w, err, "survey")
		return
	}
	writeData(w, http.StatusOK, survey)
}

func handleDeleteSurvey(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid survey id")
		return
	}
	if err := deps.Records.DeleteSurvey(r.Context(), id); err != nil {
		writeStoreError(w, err, "survey")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"deleted": true})
}

func handleListPurchasePlans(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	q := r.URL.Query()
	page, pageSize, orderBy, sortDesc := paginationFromQuery(r)
	filter := store.PurchasePlanFilter{
		ProductName:          strings.TrimSpace(q.Get("productName")),
		Category:             strings.TrimSpace(q.Get("category")),
		ProductType:          strings.TrimSpace(q.Get("productType")),
		ProductSubtype:       strings.TrimSpace(q.Get("productSubtype")),
		PurchasingDepartment: strings.TrimSpace(q.Get("purchasingDepartment")),
		BudgetYear:           strings.TrimSpace(q.Get("budgetYear")),
		OrderBy:              orderBy,
		SortDesc:             sortDesc,
		Page:                 page,
		PageSize:             pageSize,
	}
	plans, total, err := deps.Records.ListPurchasePlans(r.Context(), filter)
	if err != nil {
		writeStoreError(w, err, "purchase plan")
		return
	}
	page, pageSize = store.NormalizePage(page, pageSize)
	writeList(w, plans, total, page, pageSize)
}

func handleGetPurchasePlan(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid purchase plan id")
		return
	}
	plan, err := deps.Records.GetPurchasePlan(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "purchase plan")
		return
	}
	writeData(w, http.StatusOK, plan)
}

func handleCreatePurchasePlan(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	var in store.PurchasePlanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	plan, err := deps.Records.CreatePurchasePlan(r.Context(), in)
	if err != nil {
		writeStoreError(w, err, "purchase plan")
		return
	}
	writeData(w, http.StatusCreated, plan)
}

func handleUpdatePurchasePlan(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid purchase plan id")
		return
	}
	var in store.PurchasePlanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	plan, err := deps.Records.UpdatePurchasePlan(r.Context(), id, in)
	if err != nil {
		writeStoreError(w, err, "purchase plan")
		return
	}
	writeData(w, http.StatusOK, plan)
}

func handleDeletePurchasePlan(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid purchase plan id")
		return
	}
	if err := deps.Records.DeletePurchasePlan(r.Context(), id); err != nil {
		writeStoreError(w, err, "purchase plan")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"deleted": true})
}

func handleListPurchaseApprovals(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	q := r.URL.Query()
	page, pageSize, orderBy, sortDesc := paginationFromQuery(r)
	filter := store.PurchaseApprovalFilter{
		ProductName:    strings.TrimSpace(q.Get("productName")),
		Category:       strings.TrimSpace(q.Get("category")),
		ProductType:    strings.TrimSpace(q.Get("productType")),
		ProductSubtype: strings.TrimSpace(q.Get("productSubtype")),
		Department:     strings.TrimSpace(q.Get("department")),
		OrderBy:        orderBy,
		SortDesc:       sortDesc,
		Page:           page,
		PageSize:       pageSize,
	}
	approvals, total, err := deps.Records.ListPurchaseApprovals(r.Context(), filter)
	if err != nil {
		writeStoreError(w, err, "purchase approval")
		return
	}
	page, pageSize = store.NormalizePage(page, pageSize)
	writeList(w, approvals, total, page, pageSize)
}

func handleGetPurchaseApproval(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid purchase approval id")
		return
	}
	approval, err := deps.Records.GetPurchaseApproval(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "purchase approval")
		return
	}
	writeData(w, http.StatusOK, approval)
}

func handleCreatePurchaseApproval(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	var in store.PurchaseApprovalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	approval, err := deps.Records.CreatePurchaseApproval(r.Context(), in)
	if err != nil {
		writeStoreError(w, err, "purchase approval")
		return
	}
	writeData(w, http.StatusCreated, approval)
}

func handleUpdatePurchaseApproval(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid purchase approval id")
		return
	}
	var in store.PurchaseApprovalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	approval, err := deps.Records.UpdatePurchaseApproval(r.Context(), id, in)
	if err != nil {
		writeStoreError(w, err, "purchase approval")
		return
	}
	writeData(w, http.StatusOK, approval)
}

func handleDeletePurchaseApproval(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid purchase approval id")
		return
	}
	if err := deps.Records.DeletePurchaseApproval(r.Context(), id); err != nil {
		writeStoreError(w, err, "purchase approval")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"deleted": true})
}

func handleListWarehouseEntries(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	q := r.URL.Query()
	page, pageSize, orderBy, sortDesc := paginationFromQuery(r)
	filter := store.WarehouseFilter{
		ProductName:          strings.TrimSpace(q.Get("productName")),
		Category:             strings.TrimSpace(q.Get("category")),
		ProductType:          strings.TrimSpace(q.Get("productType")),
		ProductSubtype:       strings.TrimSpace(q.Get("productSubtype")),
		RequestingDepartment: strings.TrimSpace(q.Get("requestingDepartment")),
		OrderBy:              orderBy,
		SortDesc:             sortDesc,
		Page:                 page,
		PageSize:             pageSize,
	}
	entries, total, err := deps.Records.ListWarehouseEntries(r.Context(), filter)
	if err != nil {
		writeStoreError(w, err, "warehouse entry")
		return
	}
	page, pageSize = store.NormalizePage(page, pageSize)
	writeList(w, entries, total, page, pageSize)
}

func handleGetWarehouseEntry(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid warehouse entry id")
		return
	}
	entry, err := deps.Records.GetWarehouseEntry(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "warehouse entry")
		return
	}
	writeData(w, http.StatusOK, entry)
}

func handleCreateWarehouseEntry(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	var in store.WarehouseEntryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := deps.Records.CreateWarehouseEntry(r.Context(), in)
	if err != nil {
		writeStoreError(w, err, "warehouse entry")
		return
	}
	writeData(w, http.StatusCreated, entry)
}

func handleUpdateWarehouseEntry(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid warehouse entry id")
		return
	}
	var in store.WarehouseEntryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := deps.Records.UpdateWarehouseEntry(r.Context(), id, in)
	if err != nil {
		writeStoreError(w, err, "warehouse entry")
		return
	}
	writeData(w, http.StatusOK, entry)
}

func handleDeleteWarehouseEntry(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireRecords(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid warehouse entry id")
		return
	}
	if err := deps.Records.DeleteWarehouseEntry(r.Context(), id); err != nil {
		writeStoreError(w, err, "warehouse entry")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"deleted": true})
}
