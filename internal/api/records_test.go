package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medstock/medstock/internal/store"
)

type fakeRecordStore struct {
	surveys      []store.Survey
	surveyTotal  int
	surveyFilter store.SurveyFilter

	surveyVals   store.SurveyFilterValues
	approvalVals store.PurchaseApprovalFilterValues
	wareVals     store.WarehouseFilterValues
}

func (f *fakeRecordStore) ListSurveys(_ context.Context, filter store.SurveyFilter) ([]store.Survey, int, error) {
	f.surveyFilter = filter
	return f.surveys, f.surveyTotal, nil
}

func (f *fakeRecordStore) ListSurveyFilterValues(context.Context) (store.SurveyFilterValues, error) {
	return f.surveyVals, nil
}

func (f *fakeRecordStore) GetSurvey(context.Context, int64) (store.Survey, error) {
	return store.Survey{}, store.ErrNotFound
}

func (f *fakeRecordStore) CreateSurvey(context.Context, store.SurveyInput) (store.Survey, error) {
	return store.Survey{ID: 1}, nil
}

func (f *fakeRecordStore) UpdateSurvey(_ context.Context, id int64, _ store.SurveyInput) (store.Survey, error) {
	return store.Survey{ID: id}, nil
}

func (f *fakeRecordStore) DeleteSurvey(context.Context, int64) error { return nil }

func (f *fakeRecordStore) ListPurchasePlans(context.Context, store.PurchasePlanFilter) ([]store.PurchasePlan, int, error) {
	return nil, 0, nil
}

func (f *fakeRecordStore) GetPurchasePlan(context.Context, int64) (store.PurchasePlan, error) {
	return store.PurchasePlan{}, store.ErrNotFound
}

func (f *fakeRecordStore) CreatePurchasePlan(context.Context, store.PurchasePlanInput) (store.PurchasePlan, error) {
	return store.PurchasePlan{ID: 1}, nil
}

func (f *fakeRecordStore) UpdatePurchasePlan(_ context.Context, id int64, _ store.PurchasePlanInput) (store.PurchasePlan, error) {
	return store.PurchasePlan{ID: id}, nil
}

func (f *fakeRecordStore) DeletePurchasePlan(context.Context, int64) error { return nil }

func (f *fakeRecordStore) ListPurchaseApprovals(context.Context, store.PurchaseApprovalFilter) ([]store.PurchaseApproval, int, error) {
	return nil, 0, nil
}

func (f *fakeRecordStore) GetPurchaseApproval(context.Context, int64) (store.PurchaseApproval, error) {
	return store.PurchaseApproval{}, store.ErrNotFound
}

func (f *fakeRecordStore) CreatePurchaseApproval(context.Context, store.PurchaseApprovalInput) (store.PurchaseApproval, error) {
	return store.PurchaseApproval{ID: 1}, nil
}

func (f *fakeRecordStore) UpdatePurchaseApproval(_ context.Context, id int64, _ store.PurchaseApprovalInput) (store.PurchaseApproval, error) {
	return store.PurchaseApproval{ID: id}, nil
}

func (f *fakeRecordStore) DeletePurchaseApproval(context.Context, int64) error { return nil }

func (f *fakeRecordStore) ListPurchaseApprovalFilterValues(context.Context) (store.PurchaseApprovalFilterValues, error) {
	return f.approvalVals, nil
}

func (f *fakeRecordStore) ListWarehouseEntries(context.Context, store.WarehouseFilter) ([]store.WarehouseEntry, int, error) {
	return nil, 0, nil
}

func (f *fakeRecordStore) GetWarehouseEntry(context.Context, int64) (store.WarehouseEntry, error) {
	return store.WarehouseEntry{}, store.ErrNotFound
}

func (f *fakeRecordStore) CreateWarehouseEntry(context.Context, store.WarehouseEntryInput) (store.WarehouseEntry, error) {
	return store.WarehouseEntry{ID: 1}, nil
}

func (f *fakeRecordStore) UpdateWarehouseEntry(_ context.Context, id int64, _ store.WarehouseEntryInput) (store.WarehouseEntry, error) {
	return store.WarehouseEntry{ID: id}, nil
}

func (f *fakeRecordStore) DeleteWarehouseEntry(context.Context, int64) error { return nil }

func (f *fakeRecordStore) ListWarehouseFilterValues(context.Context) (store.WarehouseFilterValues, error) {
	return f.wareVals, nil
}

func TestListSurveysForwardsQueryFilters(t *testing.T) {
	name := "Syringe 5ml"
	records := &fakeRecordStore{
		surveys:     []store.Survey{{ID: 4, ProductName: &name}},
		surveyTotal: 12,
	}
	handler := NewHandler(testConfig(), Dependencies{Records: records})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/v1/surveys?productName=syringe&category=Medical+Supplies&type=Consumable&requestingDept=ER&orderBy=pricePerUnit&sortOrder=desc", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	f := records.surveyFilter
	if f.ProductName != "syringe" || f.Category != "Medical Supplies" || f.Type != "Consumable" || f.RequestingDept != "ER" {
		t.Fatalf("filter = %+v", f)
	}
	if f.OrderBy != "pricePerUnit" || !f.SortDesc {
		t.Fatalf("ordering = %+v", f)
	}
	var body struct {
		Success    bool           `json:"success"`
		Data       []store.Survey `json:"data"`
		TotalCount int            `json:"totalCount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if !body.Success || body.TotalCount != 12 || len(body.Data) != 1 {
		t.Fatalf("body = %+v", body)
	}
}

func TestSurveyFilterValuesEndpoint(t *testing.T) {
	records := &fakeRecordStore{surveyVals: store.SurveyFilterValues{
		Categories:  []string{"Medical Supplies"},
		Types:       []string{"Consumable"},
		Subtypes:    []string{"Injection"},
		Departments: []string{"ER", "ICU"},
	}}
	handler := NewHandler(testConfig(), Dependencies{Records: records})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/surveys/filters", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success bool                     `json:"success"`
		Data    store.SurveyFilterValues `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if !body.Success || len(body.Data.Departments) != 2 {
		t.Fatalf("body = %+v", body)
	}
}

func TestPurchaseApprovalFilterValuesEndpoint(t *testing.T) {
	records := &fakeRecordStore{approvalVals: store.PurchaseApprovalFilterValues{
		Departments: []string{"Pharmacy"},
		Requesters:  []string{"somsak"},
		Approvers:   []string{"director"},
	}}
	handler := NewHandler(testConfig(), Dependencies{Records: records})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/purchase-approvals/filters", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success bool                               `json:"success"`
		Data    store.PurchaseApprovalFilterValues `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if !body.Success || len(body.Data.Requesters) != 1 || body.Data.Approvers[0] != "director" {
		t.Fatalf("body = %+v", body)
	}
}

func TestWarehouseFilterValuesEndpoint(t *testing.T) {
	records := &fakeRecordStore{wareVals: store.WarehouseFilterValues{
		TransactionTypes: []string{"in", "out"},
		Companies:        []string{"MedCo"},
		Departments:      []string{"OR"},
	}}
	handler := NewHandler(testConfig(), Dependencies{Records: records})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/warehouse/filters", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success bool                        `json:"success"`
		Data    store.WarehouseFilterValues `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if !body.Success || len(body.Data.TransactionTypes) != 2 || body.Data.Companies[0] != "MedCo" {
		t.Fatalf("body = %+v", body)
	}
}
