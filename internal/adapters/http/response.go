package http

import (
	"encoding/json"
	"net/http"
)

// Every handler replies with one envelope shape: {"status":"success","data":...}
// for payloads, {"status":"success","message":...} for bare acknowledgements,
// and apiError for failures. Storefront and sync clients key off status first,
// then code.
const (
	statusSuccess = "success"
	statusError   = "error"
)

type apiError struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, map[string]any{
		"status": statusSuccess,
		"data":   data,
	})
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"status":  statusSuccess,
		"message": message,
	})
}

func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, apiError{
		Status:  statusError,
		Code:    code,
		Message: message,
	})
}
