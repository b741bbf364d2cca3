package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vbonduro/labinv/internal/backend/httpapi"
	"github.com/vbonduro/labinv/internal/domain"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to a status code and error body. Anything
// unrecognised is logged and reported as an internal error.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fe *domain.FieldError
	switch {
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: fe.Error(), Code: httpapi.CodeInvalid, Field: fe.Field})
	case errors.Is(err, domain.ErrInvalid):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error(), Code: httpapi.CodeInvalid})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error(), Code: httpapi.CodeNotFound})
	case errors.Is(err, domain.ErrLocationInUse):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error(), Code: httpapi.CodeLocationInUse})
	case errors.Is(err, domain.ErrNameTaken):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error(), Code: httpapi.CodeNameTaken, Field: "name"})
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error", Code: httpapi.CodeInternal})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %v: %w", err, domain.ErrInvalid)
	}
	return nil
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: %w", r.PathValue("id"), domain.ErrInvalid)
	}
	return id, nil
}
