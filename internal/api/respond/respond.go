// Package respond writes the JSON envelope every endpoint uses:
// {"success": bool, "message": string, "data": ...}.
package respond

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire shape shared by all endpoints.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK writes a success envelope with the given status code.
func OK(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{Success: true, Message: message, Data: data})
}

// Error writes a failure envelope with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: false, Message: message})
}

// FieldErrors writes a 422 failure envelope carrying per-field messages
// so the client can re-render the offending inputs.
func FieldErrors(w http.ResponseWriter, message string, fields map[string]string) {
	write(w, http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: message,
		Data:    map[string]any{"fieldErrors": fields},
	})
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
