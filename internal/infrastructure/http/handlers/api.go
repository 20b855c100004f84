// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/smartkitchen/kitchen/internal/infrastructure/http/middleware"
	"github.com/smartkitchen/kitchen/pkg/errors"
	"github.com/smartkitchen/kitchen/pkg/validation"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// writeJSON writes data with the given status
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError renders err as an error envelope. Errors that are not
// AppErrors are reported as internal errors.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr := errors.Wrap(err, "Internal server error")

	if appErr.StatusCode() >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
		)
	}

	middleware.WriteError(w, r, appErr, 0)
}

// decode reads a JSON body into dst and validates it
func decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("Invalid request body").WithCause(err)
	}
	return validation.Struct(dst)
}

// pathID parses the {id} URL parameter
func pathID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewBadRequestError("Invalid id: " + raw)
	}
	return uint(id), nil
}

// parseIDList splits a comma separated id list. Segments that are not
// positive integers are skipped.
func parseIDList(raw string) []uint {
	if raw == "" {
		return nil
	}

	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

// optionalID parses a single optional query parameter
func optionalID(r *http.Request, name string) (*uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid " + name + ": " + raw)
	}
	v := uint(id)
	return &v, nil
}
