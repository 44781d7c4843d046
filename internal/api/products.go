package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/medstock/medstock/internal/store"
)

func productFilterFromQuery(r *http.Request) store.ProductFilter {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	return store.ProductFilter{
		Name:     strings.TrimSpace(q.Get("name")),
		Category: strings.TrimSpace(q.Get("category")),
		Type:     strings.TrimSpace(q.Get("type")),
		Subtype:  strings.TrimSpace(q.Get("subtype")),
		OrderBy:  strings.TrimSpace(q.Get("orderBy")),
		SortDesc: strings.EqualFold(q.Get("sortOrder"), "desc"),
		Page:     page,
		PageSize: pageSize,
	}
}

func handleListProducts(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Products == nil {
		writeFailure(w, http.StatusNotImplemented, "product store is not configured")
		return
	}
	filter := productFilterFromQuery(r)
	products, total, err := deps.Products.ListProducts(r.Context(), filter)
	if err != nil {
		writeStoreError(w, err, "product")
		return
	}
	page, pageSize := store.NormalizePage(filter.Page, filter.PageSize)
	writeList(w, products, total, page, pageSize)
}

func handleProductFilterValues(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Products == nil {
		writeFailure(w, http.StatusNotImplemented, "product store is not configured")
		return
	}
	values, err := deps.Products.ListProductFilterValues(r.Context())
	if err != nil {
		writeStoreError(w, err, "product")
		return
	}
	writeData(w, http.StatusOK, values)
}

func handleGetProduct(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Products == nil {
		writeFailure(w, http.StatusNotImplemented, "product store is not configured")
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid product id")
		return
	}
	product, err := deps.Products.GetProduct(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "product")
		return
	}
	writeData(w, http.StatusOK, product)
}

func decodeProductInput(r *http.Request) (store.ProductInput, string) {
	var in store.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return store.ProductInput{}, "invalid request body"
	}
	if strings.TrimSpace(in.Code) == "" {
		return store.ProductInput{}, "code is required"
	}
	if strings.TrimSpace(in.Name) == "" {
		return store.ProductInput{}, "name is required"
	}
	if strings.TrimSpace(in.Category) == "" {
		return store.ProductInput{}, "category is required"
	}
	return in, ""
}

func handleCreateProduct(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Products == nil {
		writeFailure(w, http.StatusNotImplemented, "product store is not configured")
		return
	}
	in, problem := decodeProductInput(r)
	if problem != "" {
		writeFailure(w, http.StatusBadRequest, problem)
		return
	}
	product, err := deps.Products.CreateProduct(r.Context(), in)
	if err != nil {
		writeStoreError(w, err, "product")
		return
	}
	writeData(w, http.StatusCreated, product)
}

func handleUpdateProduct(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Products == nil {
		writeFailure(w, http.StatusNotImplemented, "product store is not configured")
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid product id")
		return
	}
	in, problem := decodeProductInput(r)
	if problem != "" {
		writeFailure(w, http.StatusBadRequest, problem)
		return
	}
	product, err := deps.Products.UpdateProduct(r.Context(), id, in)
	if err != nil {
		writeStoreError(w, err, "product")
		return
	}
	writeData(w, http.StatusOK, product)
}

func handleDeleteProduct(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Products == nil {
		writeFailure(w, http.StatusNotImplemented, "product store is not configured")
		return
	}
	id, err := idFromRequest(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := deps.Products.DeleteProduct(r.Context(), id); err != nil {
		writeStoreError(w, err, "product")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"deleted": true})
}
