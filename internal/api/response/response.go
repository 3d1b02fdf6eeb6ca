// internal/api/response/response.go
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/newthinker/natal/internal/core"
)

// ErrorResponse is the error body returned to clients.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes data as the response body.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error writes an error response. Request errors carry their fixed message;
// calculation errors carry the most specific detail available.
func Error(w http.ResponseWriter, status int, err error) {
	JSON(w, status, ErrorResponse{Error: Message(err)})
}

// Message returns the client-facing text for err.
func Message(err error) string {
	if err == nil {
		return "an internal error occurred"
	}

	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		switch coreErr.Code {
		case core.ErrMissingParameters.Code, core.ErrInvalidRequest.Code, core.ErrMethodNotAllowed.Code:
			return coreErr.Message
		}
		return coreErr.Detail()
	}
	return err.Error()
}
