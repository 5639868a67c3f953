package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const contentTypeJSON = "application/json"

// marshalFailedBody is sent when a response value cannot be encoded.
var marshalFailedBody = []byte(`{"error":"Internal server error"}`)

// WriteJSON encodes data and writes it with statusCode. A nil data is
// written as null. When encoding fails the client gets a 500 with a JSON
// error body and the encoding error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		_, _ = WriteRawJSON(w, marshalFailedBody, http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}
	return WriteRawJSON(w, body, statusCode)
}

// WriteRawJSON writes an already encoded JSON document.
func WriteRawJSON(w http.ResponseWriter, body []byte, statusCode int) (int, error) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	return w.Write(body)
}

// WriteError writes {"error": message} with statusCode.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	_, _ = WriteJSON(w, map[string]string{"error": message}, statusCode)
}
