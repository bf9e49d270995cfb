/*
handlers.go - HTTP API handlers for the rota engine

PURPOSE:
  Exposes the scheduling engine via REST. Handlers parse the request,
  delegate to the engine or its stores, persist configuration changes,
  and serialize the response.

ENDPOINTS:
  Week:
    GET    /api/week               Schedule under view
    POST   /api/week/next          Advance one week and regenerate
    POST   /api/week/previous      Go back one week and regenerate
    POST   /api/week/regenerate    Rebuild the viewed week
    POST   /api/week/swap          Exchange two slots
    POST   /api/week/override      Manual assignment (no eligibility check)
    POST   /api/week/publish       Validate streak cap and archive

  Bartenders:
    GET    /api/workers
    POST   /api/workers
    DELETE /api/workers/{name}
    POST   /api/workers/{name}/rename
    PUT    /api/workers/{name}/constraints

  Shifts:
    GET    /api/shifts
    POST   /api/shifts
    PUT    /api/shifts/{label}
    DELETE /api/shifts/{label}

  Views:
    GET    /api/streaks?include_current=true
    GET    /api/report

ERROR HANDLING:
  - 400: validation errors (bad labels, duplicate names, bad input)
  - 404: unknown bartender/shift/slot
  - 409: publish blocked or week already published (violators listed)
  - 500: persistence failures

SEE ALSO:
  - dto.go: request/response shapes
  - server.go: router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/warp/rota-engine/roster"
)

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	Engine   *roster.Engine
	Settings roster.SettingsStore
	Archive  roster.Archive
}

// NewHandler builds a handler around an engine, its settings store, and
// the archive backing the engine.
func NewHandler(engine *roster.Engine, settings roster.SettingsStore, archive roster.Archive) *Handler {
	return &Handler{Engine: engine, Settings: settings, Archive: archive}
}

// LoadSettings pulls constraint records and the shift catalog from the
// settings store into the engine. Called once at startup and again by
// the file watcher.
func (h *Handler) LoadSettings(ctx context.Context) error {
	records, err := h.Settings.LoadConstraints(ctx)
	if err != nil {
		return err
	}
	h.Engine.Constraints().Replace(records)

	labels, err := h.Settings.LoadShifts(ctx)
	if err != nil {
		return err
	}
	h.Engine.Catalog().Replace(labels)
	return nil
}

// =============================================================================
// WEEK HANDLERS
// =============================================================================

func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	h.respondWeek(w, r, h.Engine.Week)
}

func (h *Handler) NextWeek(w http.ResponseWriter, r *http.Request) {
	h.respondWeek(w, r, h.Engine.NextWeek)
}

func (h *Handler) PreviousWeek(w http.ResponseWriter, r *http.Request) {
	h.respondWeek(w, r, h.Engine.PreviousWeek)
}

func (h *Handler) RegenerateWeek(w http.ResponseWriter, r *http.Request) {
	h.respondWeek(w, r, h.Engine.Regenerate)
}

func (h *Handler) respondWeek(w http.ResponseWriter, r *http.Request, fetch func(context.Context) (*roster.Week, error)) {
	week, err := fetch(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	published, err := h.weekPublished(r.Context(), week)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, weekToDTO(week, published))
}

func (h *Handler) weekPublished(ctx context.Context, week *roster.Week) (bool, error) {
	if h.Archive == nil {
		return false, nil
	}
	_, published, err := h.Archive.Get(ctx, roster.ArchiveKey(week.Start))
	return published, err
}

func (h *Handler) SwapSlots(w http.ResponseWriter, r *http.Request) {
	var req SwapRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Engine.Swap(r.Context(), req.Day1, req.Shift1, req.Day2, req.Shift2); err != nil {
		writeError(w, err)
		return
	}
	h.GetWeek(w, r)
}

func (h *Handler) OverrideSlot(w http.ResponseWriter, r *http.Request) {
	var req OverrideRequest
	if !decode(w, r, &req) {
		return
	}
	worker := req.Worker
	if worker == "" {
		worker = roster.Unassigned
	}
	if err := h.Engine.Override(r.Context(), worker, req.Day, req.Shift); err != nil {
		writeError(w, err)
		return
	}
	h.GetWeek(w, r)
}

func (h *Handler) PublishWeek(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.Publish(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	h.GetWeek(w, r)
}

// =============================================================================
// WORKER HANDLERS
// =============================================================================

func (h *Handler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	store := h.Engine.Constraints()
	out := make([]WorkerDTO, 0)
	for _, name := range store.Workers() {
		rec, _ := store.Get(name)
		out = append(out, WorkerDTO{Name: name, Constraints: rec})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkerRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, ErrorDTO{Error: "name is required"})
		return
	}
	store := h.Engine.Constraints()
	if err := store.Add(req.Name); err != nil {
		writeError(w, err)
		return
	}
	var parsed ConstraintParseDTO
	if req.ConstraintText != "" {
		res := roster.ParseConstraintText(req.ConstraintText)
		parsed = ConstraintParseDTO{Constraints: res.Constraints, Ambiguous: res.Ambiguous}
		if err := store.Set(req.Name, res.Constraints); err != nil {
			writeError(w, err)
			return
		}
	} else {
		parsed.Constraints = roster.DefaultConstraints()
	}
	if !h.persistConstraints(w, r.Context()) {
		return
	}
	writeJSON(w, http.StatusCreated, parsed)
}

func (h *Handler) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	if err := h.Engine.Constraints().Remove(name); err != nil {
		writeError(w, err)
		return
	}
	if !h.persistConstraints(w, r.Context()) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RenameWorker(w http.ResponseWriter, r *http.Request) {
	var req RenameWorkerRequest
	if !decode(w, r, &req) {
		return
	}
	if req.NewName == "" {
		writeJSON(w, http.StatusBadRequest, ErrorDTO{Error: "new_name is required"})
		return
	}
	if err := h.Engine.Constraints().Rename(pathParam(r, "name"), req.NewName); err != nil {
		writeError(w, err)
		return
	}
	if !h.persistConstraints(w, r.Context()) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateConstraints(w http.ResponseWriter, r *http.Request) {
	var req UpdateConstraintsRequest
	if !decode(w, r, &req) {
		return
	}
	name := pathParam(r, "name")

	var out ConstraintParseDTO
	switch {
	case req.Text != "":
		res := roster.ParseConstraintText(req.Text)
		out = ConstraintParseDTO{Constraints: res.Constraints, Ambiguous: res.Ambiguous}
	case req.Constraints != nil:
		out.Constraints = *req.Constraints
	default:
		out.Constraints = roster.DefaultConstraints()
	}
	if err := h.Engine.Constraints().Set(name, out.Constraints); err != nil {
		writeError(w, err)
		return
	}
	if !h.persistConstraints(w, r.Context()) {
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	catalog := h.Engine.Catalog()
	out := make([]ShiftDTO, 0)
	for label, active := range catalog.Labels() {
		def, _ := catalog.Lookup(label)
		out = append(out, ShiftDTO{Label: label, Active: active, Start: def.Start, End: def.End})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req CreateShiftRequest
	if !decode(w, r, &req) {
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	if err := h.Engine.Catalog().Add(req.Label, active); err != nil {
		writeError(w, err)
		return
	}
	if !h.persistShifts(w, r.Context()) {
		return
	}
	def, _ := h.Engine.Catalog().Lookup(req.Label)
	writeJSON(w, http.StatusCreated, ShiftDTO{Label: req.Label, Active: active, Start: def.Start, End: def.End})
}

func (h *Handler) SetShiftActive(w http.ResponseWriter, r *http.Request) {
	var req SetShiftActiveRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Engine.Catalog().SetActive(pathParam(r, "label"), req.Active); err != nil {
		writeError(w, err)
		return
	}
	if !h.persistShifts(w, r.Context()) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.Catalog().Remove(pathParam(r, "label")); err != nil {
		writeError(w, err)
		return
	}
	if !h.persistShifts(w, r.Context()) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// VIEW HANDLERS
// =============================================================================

func (h *Handler) GetStreaks(w http.ResponseWriter, r *http.Request) {
	includeCurrent, _ := strconv.ParseBool(r.URL.Query().Get("include_current"))
	streaks, err := h.Engine.Streaks(r.Context(), includeCurrent)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, streaks)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Engine.Report(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reportToDTO(rep))
}

// =============================================================================
// HELPERS
// =============================================================================

// persistConstraints saves the constraint records, answering 500 on
// failure. Returns false when the response has been written.
func (h *Handler) persistConstraints(w http.ResponseWriter, ctx context.Context) bool {
	if err := h.Settings.SaveConstraints(ctx, h.Engine.Constraints().Records()); err != nil {
		log.Printf("api: persisting constraints failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorDTO{Error: "failed to persist constraints"})
		return false
	}
	return true
}

func (h *Handler) persistShifts(w http.ResponseWriter, ctx context.Context) bool {
	if err := h.Settings.SaveShifts(ctx, h.Engine.Catalog().Labels()); err != nil {
		log.Printf("api: persisting shifts failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorDTO{Error: "failed to persist shifts"})
		return false
	}
	return true
}

func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorDTO{Error: "invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encoding response failed: %v", err)
	}
}

// writeError maps engine errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var blocked *roster.PublishBlockedError
	switch {
	case errors.As(err, &blocked):
		writeJSON(w, http.StatusConflict, ErrorDTO{Error: blocked.Error(), Violators: blocked.Violators})
	case errors.Is(err, roster.ErrWeekPublished):
		writeJSON(w, http.StatusConflict, ErrorDTO{Error: err.Error()})
	case roster.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, ErrorDTO{Error: err.Error()})
	case roster.IsClientError(err):
		writeJSON(w, http.StatusBadRequest, ErrorDTO{Error: err.Error()})
	default:
		log.Printf("api: internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorDTO{Error: "internal error"})
	}
}
