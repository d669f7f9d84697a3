// Package transport writes the canonical response envelopes: every
// success payload is wrapped in {"data": ...} and every failure in
// {"error": ...}, so clients never have to guess the shape.
package transport

import (
	"encoding/json"
	"net/http"
)

type DataResponse struct {
	Data interface{} `json:"data"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteData(w http.ResponseWriter, status int, payload interface{}) {
	WriteJSON(w, status, DataResponse{Data: payload})
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteData(w, status, map[string]string{"message": message})
}

// EncodeData marshals the data envelope for callers that cache raw
// response bytes.
func EncodeData(payload interface{}) ([]byte, error) {
	return json.Marshal(DataResponse{Data: payload})
}

func WriteError(w http.ResponseWriter, status int, message string, details map[string]string) {
	WriteJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
