package api

import (
	"errors"
	"net/http"

	"github.com/medstock/medstock/internal/store"
)

// The admin endpoints keep the response contract of the previous admin UI
// backend: {success, data} for single records, plus pagination fields for
// list responses, and {success, error} on failure.

type dataEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type listEnvelope struct {
	Success    bool `json:"success"`
	Data       any  `json:"data"`
	TotalCount int  `json:"totalCount"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
}

type failureEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataEnvelope{Success: true, Data: data})
}

// writeUnpagedList serves lists the admin UI loads in full, such as surveys.
func writeUnpagedList(w http.ResponseWriter, data any, totalCount int) {
	writeJSON(w, http.StatusOK, struct {
		Success    bool `json:"success"`
		Data       any  `json:"data"`
		TotalCount int  `json:"totalCount"`
	}{Success: true, Data: data, TotalCount: totalCount})
}

func writeList(w http.ResponseWriter, data any, totalCount, page, pageSize int) {
	writeJSON(w, http.StatusOK, listEnvelope{
		Success:    true,
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, failureEnvelope{Success: false, Error: message})
}

// writeStoreError maps repository errors onto the admin contract.
func writeStoreError(w http.ResponseWriter, err error, entity string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeFailure(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, store.ErrConflict):
		writeFailure(w, http.StatusConflict, entity+" with this code already exists")
	default:
		writeFailure(w, http.StatusInternalServerError, "internal server error")
	}
}
