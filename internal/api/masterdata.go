package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/medstock/medstock/internal/store"
)

func registerMasterDataRoutes(mux *http.ServeMux, deps Dependencies) {
	mux.HandleFunc("GET /v1/categories", func(w http.ResponseWriter, r *http.Request) {
		handleListCategories(deps, w, r)
	})
	mux.HandleFunc("POST /v1/categories", func(w http.ResponseWriter, r *http.Request) {
		handleCreateCategory(deps, w, r)
	})
	mux.HandleFunc("GET /v1/categories/filters", func(w http.ResponseWriter, r *http.Request) {
		handleCategoryFilterValues(deps, w, r)
	})
	mux.HandleFunc("GET /v1/categories/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleGetCategory(deps, w, r)
	})
	mux.HandleFunc("PUT /v1/categories/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleUpdateCategory(deps, w, r)
	})
	mux.HandleFunc("DELETE /v1/categories/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleDeleteCategory(deps, w, r)
	})

	mux.HandleFunc("GET /v1/departments", func(w http.ResponseWriter, r *http.Request) {
		handleListDepartments(deps, w, r)
	})
	mux.HandleFunc("POST /v1/departments", func(w http.ResponseWriter, r *http.Request) {
		handleCreateDepartment(deps, w, r)
	})
	mux.HandleFunc("GET /v1/departments/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleGetDepartment(deps, w, r)
	})
	mux.HandleFunc("PUT /v1/departments/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleUpdateDepartment(deps, w, r)
	})
	mux.HandleFunc("DELETE /v1/departments/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleDeleteDepartment(deps, w, r)
	})

	mux.HandleFunc("GET /v1/sellers", func(w http.ResponseWriter, r *http.Request) {
		handleListSellers(deps, w, r)
	})
	mux.HandleFunc("POST /v1/sellers", func(w http.ResponseWriter, r *http.Request) {
		handleCreateSeller(deps, w, r)
	})
	mux.HandleFunc("GET /v1/sellers/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleGetSeller(deps, w, r)
	})
	mux.HandleFunc("PUT /v1/sellers/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleUpdateSeller(deps, w, r)
	})
	mux.HandleFunc("DELETE /v1/sellers/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleDeleteSeller(deps, w, r)
	})
}

func requireMaster(deps Dependencies, w http.ResponseWriter) bool {
	if deps.Master == nil {
		writeFailure(w, http.StatusNotImplemented, "master data store is not configured")
		return false
	}
	return true
}

func handleListCategories(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	categories, err := deps.Master.ListCategories(r.Context())
	if err != nil {
		writeStoreError(w, err, "category")
		return
	}
	writeData(w, http.StatusOK, categories)
}

func handleCategoryFilterValues(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	values, err := deps.Master.ListCategoryFilterValues(r.Context())
	if err != nil {
		writeStoreError(w, err, "category")
		return
	}
	writeData(w, http.StatusOK, values)
}

func handleGetCategory(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid category id")
		return
	}
	category, err := deps.Master.GetCategory(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "category")
		return
	}
	writeData(w, http.StatusOK, category)
}

func decodeCategoryInput(r *http.Request) (store.CategoryInput, string) {
	var in store.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return store.CategoryInput{}, "invalid request body"
	}
	if strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.Type) == "" {
		return store.CategoryInput{}, "category and type are required"
	}
	return in, ""
}

func handleCreateCategory(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	in, problem := decodeCategoryInput(r)
	if problem != "" {
		writeFailure(w, http.StatusBadRequest, problem)
		return
	}
	category, err := deps.Master.CreateCategory(r.Context(), in)
	if err != nil {
		writeStoreError(w, err, "category")
		return
	}
	writeData(w, http.StatusCreated, category)
}

func handleUpdateCategory(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid category id")
		return
	}
	in, problem := decodeCategoryInput(r)
	if problem != "" {
		writeFailure(w, http.StatusBadRequest, problem)
		return
	}
	category, err := deps.Master.UpdateCategory(r.Context(), id, in)
	if err != nil {
		writeStoreError(w, err, "category")
		return
	}
	writeData(w, http.StatusOK, category)
}

func handleDeleteCategory(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid category id")
		return
	}
	if err := deps.Master.DeleteCategory(r.Context(), id); err != nil {
		writeStoreError(w, err, "category")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"deleted": true})
}

type departmentRequest struct {
	Name string `json:"name"`
}

func handleListDepartments(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	departments, err := deps.Master.ListDepartments(r.Context())
	if err != nil {
		writeStoreError(w, err, "department")
		return
	}
	writeData(w, http.StatusOK, departments)
}

func handleGetDepartment(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid department id")
		return
	}
	department, err := deps.Master.GetDepartment(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "department")
		return
	}
	writeData(w, http.StatusOK, department)
}

func handleCreateDepartment(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		writeFailure(w, http.StatusBadRequest, "name is required")
		return
	}
	department, err := deps.Master.CreateDepartment(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		writeStoreError(w, err, "department")
		return
	}
	writeData(w, http.StatusCreated, department)
}

func handleUpdateDepartment(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid department id")
		return
	}
	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		writeFailure(w, http.StatusBadRequest, "name is required")
		return
	}
	department, err := deps.Master.UpdateDepartment(r.Context(), id, strings.TrimSpace(req.Name))
	if err != nil {
		writeStoreError(w, err, "department")
		return
	}
	writeData(w, http.StatusOK, department)
}

func handleDeleteDepartment(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid department id")
		return
	}
	if err := deps.Master.DeleteDepartment(r.Context(), id); err != nil {
		writeStoreError(w, err, "department")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"deleted": true})
}

func decodeSellerInput(r *http.Request) (store.SellerInput, string) {
	var in store.SellerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return store.SellerInput{}, "invalid request body"
	}
	if strings.TrimSpace(in.Code) == "" {
		return store.SellerInput{}, "code is required"
	}
	if strings.TrimSpace(in.Name) == "" {
		return store.SellerInput{}, "name is required"
	}
	return in, ""
}

func handleListSellers(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	sellers, err := deps.Master.ListSellers(r.Context())
	if err != nil {
		writeStoreError(w, err, "seller")
		return
	}
	writeData(w, http.StatusOK, sellers)
}

func handleGetSeller(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid seller id")
		return
	}
	seller, err := deps.Master.GetSeller(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "seller")
		return
	}
	writeData(w, http.StatusOK, seller)
}

func handleCreateSeller(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	in, problem := decodeSellerInput(r)
	if problem != "" {
		writeFailure(w, http.StatusBadRequest, problem)
		return
	}
	seller, err := deps.Master.CreateSeller(r.Context(), in)
	if err != nil {
		writeStoreError(w, err, "seller")
		return
	}
	writeData(w, http.StatusCreated, seller)
}

func handleUpdateSeller(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid seller id")
		return
	}
	in, problem := decodeSellerInput(r)
	if problem != "" {
		writeFailure(w, http.StatusBadRequest, problem)
		return
	}
	seller, err := deps.Master.UpdateSeller(r.Context(), id, in)
	if err != nil {
		writeStoreError(w, err, "seller")
		return
	}
	writeData(w, http.StatusOK, seller)
}

func handleDeleteSeller(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if !requireMaster(deps, w) {
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid seller id")
		return
	}
	if err := deps.Master.DeleteSeller(r.Context(), id); err != nil {
		writeStoreError(w, err, "seller")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"deleted": true})
}
