package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// listEnvelope is the uniform shape of every paginated listing.
type listEnvelope struct {
	Count   int `json:"count"`
	Results any `json:"results"`
}

type errorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

func writeList(w http.ResponseWriter, count int, results any) {
	writeJSON(w, http.StatusOK, listEnvelope{Count: count, Results: results})
}

// writeError maps domain errors onto HTTP statuses. Anything unrecognized is
// a 500 with a generic body; the real cause goes to the log.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr   *domain.ValidationError
		overDeliveryErr *domain.OverDeliveryError
		priceErr        *domain.PriceNotFoundError
		notFoundErr     *domain.NotFoundError
		conflictErr     *domain.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: validationErr.Error()})
	case errors.As(err, &overDeliveryErr):
		writeJSON(w, http.StatusConflict, errorBody{
			Error:   overDeliveryErr.Error(),
			Details: map[string]int{"remaining": overDeliveryErr.Remaining},
		})
	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, errorBody{Error: conflictErr.Error()})
	case errors.As(err, &priceErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: priceErr.Error()})
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, errorBody{Error: notFoundErr.Error()})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("invalid request body: %v", err)
	}
	return nil
}

// pagination reads page/page_size query params, clamping to sane bounds.
func pagination(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = defaultPageSize
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageSize = n
		}
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func pathID(r *http.Request, vars map[string]string, name string) (int64, error) {
	raw, ok := vars[name]
	if !ok {
		return 0, domain.NewValidationError("missing path parameter %q", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("invalid %s %q", name, raw)
	}
	return id, nil
}
