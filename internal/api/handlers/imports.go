package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ygglist/ygglist/internal/api/middleware"
	"github.com/ygglist/ygglist/internal/jobs"
	"github.com/ygglist/ygglist/internal/logger"
	"github.com/ygglist/ygglist/internal/storage"
)

// ImportsHandler handles receipt import endpoints. Imports run
// asynchronously: the POST answers 202 with a job ID the UI polls.
type ImportsHandler struct {
	store     *storage.Store
	publisher jobs.Publisher
	jobStore  jobs.JobStore
	log       zerolog.Logger
}

// NewImportsHandler creates a new imports handler.
func NewImportsHandler(store *storage.Store, publisher jobs.Publisher, jobStore jobs.JobStore, log zerolog.Logger) *ImportsHandler {
	return &ImportsHandler{store: store, publisher: publisher, jobStore: jobStore, log: log}
}

// Enqueue handles POST /api/imports
// Body: {"url": "..."} or {"text": "...", "location": "...", "date": "..."}.
func (h *ImportsHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL      string `json:"url,omitempty"`
		Text     string `json:"text,omitempty"`
		Location string `json:"location,omitempty"`
		Date     string `json:"date,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	job := &jobs.ImportReceiptJob{
		Location: strings.TrimSpace(req.Location),
		DateISO:  strings.TrimSpace(req.Date),
	}
	switch {
	case strings.TrimSpace(req.URL) != "":
		job.Source = jobs.ImportSourceURL
		job.URL = strings.TrimSpace(req.URL)
	case strings.TrimSpace(req.Text) != "":
		job.Source = jobs.ImportSourceText
		job.RawText = req.Text
	default:
		middleware.WriteError(w, http.StatusBadRequest, "Informe url ou text")
		return
	}

	log := logger.FromContext(r.Context())
	if err := h.publisher.PublishImportReceipt(r.Context(), job); err != nil {
		log.Error().Err(err).Msg("Failed to enqueue import job")
		middleware.WriteError(w, http.StatusInternalServerError, "Não foi possível enfileirar a importação")
		return
	}

	// A worker may already own the job; its status here is always pending.
	log.Info().Str("job_id", job.JobID).Str("source", string(job.Source)).Msg("Import job enqueued")
	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.JobID,
		"status": string(jobs.JobStatusPending),
	})
}

// List handles GET /api/imports, returning the stored import results.
func (h *ImportsHandler) List(w http.ResponseWriter, r *http.Request) {
	imports := h.store.Imports()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"imports": imports,
		"count":   len(imports),
	})
}

// GetJob handles GET /api/imports/{id}, returning the status of one import job.
func (h *ImportsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	job, err := h.jobStore.GetJob(r.Context(), jobID)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Importação não encontrada")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/imports/jobs?status=&limit=&offset=
func (h *ImportsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := jobs.JobFilter{Status: jobs.JobStatus(q.Get("status"))}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = offset
	}

	jobsList, err := h.jobStore.ListJobs(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list import jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Não foi possível listar as importações")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}
