package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// integrityCheckFailedMsg is the server's error message for a bad body hash.
const integrityCheckFailedMsg = "Integrity check failed"

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusNotFound:            ErrNotFound,
	http.StatusMethodNotAllowed:    ErrMethodNotAllowed,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
}

// mapHTTPError returns nil for 2xx responses and a sentinel-wrapped error
// carrying the server's message otherwise.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	msg := serverMessage(resp.Body())
	if status == http.StatusBadRequest && msg == integrityCheckFailedMsg {
		return fmt.Errorf("%w: %w", ErrBadRequest, ErrIntegrityCheckFailed)
	}

	if sentinel, ok := statusErrors[status]; ok {
		return fmt.Errorf("%w: %s", sentinel, msg)
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, status, msg)
}

// serverMessage extracts the message of a {"error": "..."} body and falls
// back to the raw text.
func serverMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
