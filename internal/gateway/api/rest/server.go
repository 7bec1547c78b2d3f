package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/mvelickovic/renderq/internal/core"
	"github.com/mvelickovic/renderq/internal/gateway/service"
	"github.com/mvelickovic/renderq/internal/imagestore"
	"github.com/mvelickovic/renderq/internal/shared/config"
	"github.com/mvelickovic/renderq/internal/shared/logging"
)

// ownerHeader carries the requester identity from the web tier.
// Authentication itself happens upstream.
const ownerHeader = "X-User-ID"

type API struct {
	dispatch service.DispatchService
	images   imagestore.Store
	store    core.JobStore

	logger logging.Logger
}

func NewAPI(
	dispatch service.DispatchService,
	images imagestore.Store,
	store core.JobStore,
	logger logging.Logger,
) *API {
	return &API{
		dispatch: dispatch,
		images:   images,
		store:    store,
		logger:   logger,
	}
}

func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/jobs", a.submitJob)
	mux.HandleFunc("GET /api/jobs", a.listJobs)
	mux.HandleFunc("GET /api/jobs/{id}", a.getJob)
	mux.HandleFunc("DELETE /api/jobs/{id}", a.cancelJob)
	mux.HandleFunc("GET /api/images", a.listImages)
	mux.HandleFunc("GET /healthz", a.health)
}

func (a *API) submitJob(w http.ResponseWriter, r *http.Request) {
	var req SubmitJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	job, err := a.dispatch.Submit(r.Context(), r.Header.Get(ownerHeader), toParams(req))
	if err != nil {
		if errors.Is(err, core.ErrInvalidParams) {
			a.respondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
		a.logger.Error("Job submission failed", "error", err)
		a.respondError(w, http.StatusServiceUnavailable, "service unavailable", "")
		return
	}

	a.respondJSON(w, http.StatusCreated, toSubmitResponse(job))
}

// getJob handles GET /api/jobs/{id}
func (a *API) getJob(w http.ResponseWriter, r *http.Request) {
	id, ok := a.parseJobID(w, r)
	if !ok {
		return
	}

	job, err := a.dispatch.Status(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			a.respondError(w, http.StatusNotFound, "job not found", "")
			return
		}
		a.logger.Error("Job lookup failed", "job_id", id.String(), "error", err)
		a.respondError(w, http.StatusServiceUnavailable, "service unavailable", "")
		return
	}

	a.respondJSON(w, http.StatusOK, toGetJobResponse(job))
}

// cancelJob handles DELETE /api/jobs/{id}. Only PENDING jobs can be
// cancelled; anything past dequeue yields 409.
func (a *API) cancelJob(w http.ResponseWriter, r *http.Request) {
	id, ok := a.parseJobID(w, r)
	if !ok {
		return
	}

	err := a.dispatch.Cancel(r.Context(), id)
	switch {
	case err == nil:
		a.respondJSON(w, http.StatusOK, map[string]string{
			"job_id": id.String(),
			"state":  string(core.JobStateCancelled),
		})
	case errors.Is(err, core.ErrNotFound):
		a.respondError(w, http.StatusNotFound, "job not found", "")
	case errors.Is(err, core.ErrConflict):
		a.respondError(w, http.StatusConflict, "job is no longer pending", "")
	default:
		a.logger.Error("Job cancellation failed", "job_id", id.String(), "error", err)
		a.respondError(w, http.StatusServiceUnavailable, "service unavailable", "")
	}
}

// listJobs handles GET /api/jobs with filters and pagination
func (a *API) listJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter core.JobFilter
	if stateStr := query.Get("state"); stateStr != "" {
		state := core.JobState(stateStr)
		filter.State = &state
	}
	filter.Owner = query.Get("owner")

	filter.Limit = 10
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			filter.Limit = l
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filter.Offset = o
		}
	}

	jobs, total, err := a.dispatch.ListJobs(r.Context(), filter)
	if err != nil {
		a.logger.Error("Job listing failed", "error", err)
		a.respondError(w, http.StatusServiceUnavailable, "service unavailable", "")
		return
	}

	summaries := make([]JobSummary, 0, len(jobs))
	for _, job := range jobs {
		summaries = append(summaries, toJobSummary(job))
	}

	var nextOffset *int
	if end := filter.Offset + len(summaries); end < total {
		next := end
		nextOffset = &next
	}

	a.respondJSON(w, http.StatusOK, ListJobsResponse{
		Jobs:       summaries,
		Total:      total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
		NextOffset: nextOffset,
	})
}

// listImages handles GET /api/images with page/limit pagination
func (a *API) listImages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := 1
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	limit := 12
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	images, total, err := a.images.List(page, limit)
	if err != nil {
		a.logger.Error("Image listing failed", "error", err)
		a.respondError(w, http.StatusServiceUnavailable, "service unavailable", "")
		return
	}

	infos := make([]ImageInfo, 0, len(images))
	for _, img := range images {
		infos = append(infos, toImageInfo(img))
	}

	a.respondJSON(w, http.StatusOK, ListImagesResponse{
		Images: infos,
		Total:  total,
		Page:   page,
		Limit:  limit,
	})
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Ping(r.Context()); err != nil {
		a.respondError(w, http.StatusServiceUnavailable, "store unreachable", "")
		return
	}
	a.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) parseJobID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		a.respondError(w, http.StatusBadRequest, "job ID required", "")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "invalid job ID", "expected UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (a *API) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (a *API) respondError(w http.ResponseWriter, statusCode int, error string, message string) {
	resp := ErrorResponse{
		Error:   error,
		Message: message,
		Code:    statusCode,
	}
	a.respondJSON(w, statusCode, resp)
}

// NewServer wires the API, static image serving and middleware into an
// http.Server using the configured timeouts.
func NewServer(
	cfg config.RESTConfig,
	api *API,
	imageDir string,
	logger logging.Logger,
) *http.Server {
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)
	mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(imageDir))))

	handler := ChainMiddleware(
		mux,
		RecoveryMiddleware(logger),
		RequestIDMiddleware,
		LoggingMiddleware(logger),
	)

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
