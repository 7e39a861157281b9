// Package httpapi exposes provisioning and authentication over a JSON HTTP
// surface. Handlers stay thin: decode, call the service, map the error
// taxonomy onto status codes.
package httpapi

import (
	"encoding/json"
	"net/http"
)

// apiResponse is the uniform envelope every endpoint returns. Code is a
// stable machine-readable identifier; Message is for humans and may change.
type apiResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{Status: "success", Data: data})
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{Status: "error", Code: code, Message: msg})
}
