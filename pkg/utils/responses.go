package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// ResponseSuccess answers 200 with data.
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Response{Status: true, Message: message, Data: data})
}

// ResponseCreated answers 201 with the new resource.
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Response{Status: true, Message: message, Data: data})
}

// ResponseError answers with a failed envelope. errors carries per-field
// details and may be nil.
func ResponseError(w http.ResponseWriter, code int, message string, errors any) {
	writeJSON(w, code, Response{Message: message, Errors: errors})
}
