package kit

import (
	"encoding/json"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// APIResponse is the envelope for successful payloads.
type APIResponse struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// APIError is the envelope for error payloads.
type APIError struct {
	Message   string         `json:"message"`
	Code      string         `json:"code"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData wraps data in the success envelope.
func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// WriteError writes the error envelope, adding the request path and
// request ID to the details.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg, code string, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	details["path"] = r.URL.Path
	if reqID := chimw.GetReqID(r.Context()); reqID != "" {
		details["requestId"] = reqID
	}

	WriteJSON(w, status, APIError{
		Message:   msg,
		Code:      code,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}
