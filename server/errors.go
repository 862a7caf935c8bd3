package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/s0up4200/pokedex/classify"
	"github.com/s0up4200/pokedex/filter"
	"github.com/s0up4200/pokedex/service"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

const kindStale = "STALE"

var kindStatus = map[classify.Kind]int{
	classify.KindValidation: http.StatusBadRequest,
	classify.KindNotFound:   http.StatusNotFound,
	classify.KindRateLimit:  http.StatusTooManyRequests,
	classify.KindNetwork:    http.StatusServiceUnavailable,
	classify.KindUnknown:    http.StatusInternalServerError,
}

func writeError(w http.ResponseWriter, err error) {
	kind, status := classifyStatus(err)
	writeJSON(w, status, ErrorResponse{Kind: kind, Error: err.Error()})
}

// classifyStatus maps err to a kind and an HTTP status.
func classifyStatus(err error) (string, int) {
	var (
		classified *classify.Error
		compileErr *filter.CompilationError
		paramErr   *paramError
	)
	switch {
	case errors.As(err, &classified):
		return string(classified.Kind()), kindStatus[classified.Kind()]
	case errors.Is(err, service.ErrUnknownFamily), errors.Is(err, filter.ErrFilterNotFound):
		return string(classify.KindNotFound), http.StatusNotFound
	case errors.Is(err, service.ErrStale):
		return kindStale, http.StatusConflict
	case errors.As(err, &compileErr), errors.As(err, &paramErr), errors.Is(err, errMissingFilter):
		return string(classify.KindValidation), http.StatusBadRequest
	}

	rec := classify.Classify(err, "")
	return string(rec.Kind), kindStatus[rec.Kind]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
