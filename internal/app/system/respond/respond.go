// Package respond writes JSON responses for the /api routes.
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/duasite/internal/app/system/apierr"
	"go.uber.org/zap"
)

// MaxBodyBytes bounds JSON request bodies.
const MaxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error maps err onto the apierr taxonomy and writes {"error": "..."}.
// Internal failures are logged with full detail; the client only sees a
// generic message.
func Error(w http.ResponseWriter, log *zap.Logger, entity string, err error) {
	e, internal := apierr.Classify(err, entity)
	if internal && log != nil {
		log.Error("api request failed", zap.String("entity", entity), zap.Error(err))
	}
	JSON(w, apierr.Status(e.Kind), errorBody{Error: e.Message})
}

// Decode reads a JSON body into v. Malformed or oversized input is a
// validation error.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apierr.Validation("Request body is required")
		}
		return apierr.Validation("Invalid request body")
	}
	return nil
}
