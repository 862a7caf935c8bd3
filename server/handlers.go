package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/s0up4200/pokedex/batch"
	"github.com/s0up4200/pokedex/service"
)

type handlers struct {
	deps Deps
}

// StatusResponse is the body of /api/v1/status.
type StatusResponse struct {
	Online       bool     `json:"online"`
	OfflineStore bool     `json:"offline_store"`
	Version      string   `json:"version,omitempty"`
	Families     []string `json:"families"`
	Presets      []string `json:"presets"`
}

// ListResponse is the body of a family listing.
type ListResponse struct {
	Count    int      `json:"count"`
	Offset   int      `json:"offset"`
	Limit    int      `json:"limit"`
	Results  []string `json:"results"`
	Next     *string  `json:"next,omitempty"`
	Previous *string  `json:"previous,omitempty"`
}

// SearchResponse is the body of a family search.
type SearchResponse struct {
	Family  string           `json:"family"`
	Filter  string           `json:"filter"`
	Sample  int              `json:"sample"`
	Count   int              `json:"count"`
	Results []map[string]any `json:"results"`
}

// BatchResponse is the body of a multi-identifier get.
type BatchResponse struct {
	Results  []any          `json:"results"`
	Failures []BatchFailure `json:"failures"`
}

// BatchFailure is one identifier that could not be fetched.
type BatchFailure struct {
	Identifier string `json:"identifier"`
	Kind       string `json:"kind"`
	Error      string `json:"error"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	online := true
	if h.deps.Monitor != nil {
		online = h.deps.Monitor.IsOnline()
	}
	writeJSON(w, http.StatusOK, StatusResponse{
		Online:       online,
		OfflineStore: h.deps.Registry.Base().Client().HasOfflineStore(),
		Version:      h.deps.Version,
		Families:     h.deps.Registry.Families(),
		Presets:      h.deps.Filters.ListFilters(),
	})
}

func (h *handlers) family(w http.ResponseWriter, r *http.Request) (service.Family, bool) {
	fam, err := h.deps.Registry.Family(chi.URLParam(r, "family"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return fam, true
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	fam, ok := h.family(w, r)
	if !ok {
		return
	}

	// ?ids=a,b,c switches to a batch get.
	if ids := r.URL.Query().Get("ids"); ids != "" {
		h.getMany(w, r, fam, strings.Split(ids, ","))
		return
	}

	offset, err := intParam(r, "offset", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := intParam(r, "limit", defaultListLimit)
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := fam.List(r.Context(), offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := ListResponse{
		Count:    page.Count,
		Offset:   offset,
		Limit:    limit,
		Results:  make([]string, len(page.Results)),
		Next:     page.Next,
		Previous: page.Previous,
	}
	for i, res := range page.Results {
		resp.Results[i] = res.Name
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) getMany(w http.ResponseWriter, r *http.Request, fam service.Family, ids []string) {
	concurrency, err := intParam(r, "concurrency", 0)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := fam.GetMany(r.Context(), ids, batch.Options{Concurrency: concurrency})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := BatchResponse{Results: res.Values, Failures: make([]BatchFailure, len(res.Failures))}
	if resp.Results == nil {
		resp.Results = []any{}
	}
	for i, f := range res.Failures {
		kind, _ := classifyStatus(f.Err)
		resp.Failures[i] = BatchFailure{Identifier: f.Item, Kind: kind, Error: f.Err.Error()}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) get(w http.ResponseWriter, r *http.Request) {
	fam, ok := h.family(w, r)
	if !ok {
		return
	}
	v, err := fam.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *handlers) details(w http.ResponseWriter, r *http.Request) {
	fam, ok := h.family(w, r)
	if !ok {
		return
	}
	v, err := fam.Details(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *handlers) random(w http.ResponseWriter, r *http.Request) {
	fam, ok := h.family(w, r)
	if !ok {
		return
	}
	v, err := fam.Random(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// search runs a filter over a sample of the family. Requests carrying an
// X-Client-ID header supersede that client's previous search.
func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	fam, ok := h.family(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	preset, expression := q.Get("preset"), q.Get("filter")
	if preset == "" && strings.TrimSpace(expression) == "" {
		writeError(w, errMissingFilter)
		return
	}
	sample, err := intParam(r, "sample", 0)
	if err != nil {
		writeError(w, err)
		return
	}

	flt, err := h.deps.Filters.Resolve(preset, expression)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	done := func() error { return nil }
	if client := r.Header.Get("X-Client-ID"); client != "" {
		ctx, done = h.deps.Tracker.Begin(ctx, client+"/search/"+fam.Endpoint())
	}

	matches, err := fam.Search(ctx, flt, sample)
	if staleErr := done(); staleErr != nil {
		writeError(w, staleErr)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	resp := SearchResponse{
		Family:  fam.Endpoint(),
		Filter:  flt.Expression(),
		Sample:  sample,
		Count:   len(matches),
		Results: make([]map[string]any, len(matches)),
	}
	for i, m := range matches {
		resp.Results[i] = m
	}
	writeJSON(w, http.StatusOK, resp)
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{name: name, value: raw}
	}
	return v, nil
}

type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return "query parameter " + e.name + " must be an integer, got " + strconv.Quote(e.value)
}

var errMissingFilter = errors.New("one of filter or preset is required")
