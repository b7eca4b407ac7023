package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thoughtforge/thoughtforge/app/database"
	"github.com/thoughtforge/thoughtforge/app/validate"
)

func NewHandler(db *database.DB, basisRepo database.BasisRepository,
	jobRepo database.JobRepository, thoughtRepo database.ThoughtRepository,
	runner WorkerRunner, workerID string) *Handler {
	return &Handler{
		db:          db,
		basisRepo:   basisRepo,
		jobRepo:     jobRepo,
		thoughtRepo: thoughtRepo,
		runner:      runner,
		workerID:    workerID,
	}
}

// respondError writes the uniform error envelope. Validation messages are
// part of the client contract and pass through verbatim.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"ok": false, "error": message})
}

// decodeBody parses the request body as arbitrary JSON. Per-endpoint field
// rules are applied afterwards by the validate helpers.
func decodeBody(c *gin.Context) (interface{}, bool) {
	var body interface{}
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON payload.")
		return nil, false
	}
	return body, true
}

func (h *Handler) CreateBasisEntry(c *gin.Context) {
	body, ok := decodeBody(c)
	if !ok {
		return
	}

	in, err := validateBasisEntryBody(body)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.basisRepo.Create(c.Request.Context(), *in)
	if err != nil {
		slog.Error("Database error", "operation", "create_basis_entry", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to create basis entry.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) ListBasisEntries(c *gin.Context) {
	query := c.Request.URL.Query()

	theme, err := validate.QueryParam(query, "theme")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	basisType, err := validate.QueryParam(query, "basis_type")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.basisRepo.ListApproved(c.Request.Context(), theme, basisType)
	if err != nil {
		slog.Error("Database error", "operation", "list_basis_entries", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to list basis entries.")
		return
	}
	if entries == nil {
		entries = []database.BasisEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"items": entries})
}

func (h *Handler) CreateJob(c *gin.Context) {
	body, ok := decodeBody(c)
	if !ok {
		return
	}

	jobType, payload, err := validateJobBody(body)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.jobRepo.Create(c.Request.Context(), jobType, payload)
	if err != nil {
		slog.Error("Database error", "operation", "create_job", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to create job.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"job_id": job.ID, "status": job.Status})
}

func (h *Handler) ClaimJob(c *gin.Context) {
	body, ok := decodeBody(c)
	if !ok {
		return
	}

	workerID, err := validateClaimBody(body)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.jobRepo.ClaimNext(c.Request.Context(), workerID)
	if err != nil {
		slog.Error("Database error", "operation", "claim_job", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to claim job.")
		return
	}
	if job == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *Handler) CompleteJob(c *gin.Context) {
	id := c.Param("id")
	if !validate.IsUUID(id) {
		respondError(c, http.StatusBadRequest, "Invalid job id.")
		return
	}

	body, ok := decodeBody(c)
	if !ok {
		return
	}

	result, err := validateCompleteBody(body)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.jobRepo.Complete(c.Request.Context(), id, result)
	if err != nil {
		slog.Error("Database error", "operation", "complete_job", "job_id", id, "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to complete job.")
		return
	}
	if !updated {
		h.respondStatusConflict(c, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) FailJob(c *gin.Context) {
	id := c.Param("id")
	if !validate.IsUUID(id) {
		respondError(c, http.StatusBadRequest, "Invalid job id.")
		return
	}

	body, ok := decodeBody(c)
	if !ok {
		return
	}

	message, err := validateFailBody(body)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.jobRepo.Fail(c.Request.Context(), id, message)
	if err != nil {
		slog.Error("Database error", "operation", "fail_job", "job_id", id, "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to fail job.")
		return
	}
	if !updated {
		h.respondStatusConflict(c, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// respondStatusConflict explains a terminal transition that affected zero
// rows: either the job never existed or it is not in processing status.
func (h *Handler) respondStatusConflict(c *gin.Context, id string) {
	status, err := h.jobRepo.GetStatus(c.Request.Context(), id)
	if err != nil {
		slog.Error("Database error", "operation", "get_job_status", "job_id", id, "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to read job status.")
		return
	}
	if status == nil {
		respondError(c, http.StatusNotFound, "Job not found.")
		return
	}
	respondError(c, http.StatusConflict,
		fmt.Sprintf("Job status is %q. Expected \"processing\".", string(*status)))
}

func (h *Handler) CreateThought(c *gin.Context) {
	body, ok := decodeBody(c)
	if !ok {
		return
	}

	in, err := validateThoughtBody(body)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	thought, err := h.thoughtRepo.Create(c.Request.Context(), *in)
	if err != nil {
		slog.Error("Database error", "operation", "create_thought", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to create thought.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": thought.ID, "status": thought.Status})
}

func (h *Handler) ListThoughts(c *gin.Context) {
	query := c.Request.URL.Query()

	status, err := validate.QueryParam(query, "status")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if status == "" {
		status = string(database.ThoughtStatusDraft)
	}
	if err := validate.Enum("status", status, thoughtStatusNames()); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := validate.QueryParam(query, "category")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	thoughts, err := h.thoughtRepo.List(c.Request.Context(), database.ThoughtStatus(status), category)
	if err != nil {
		slog.Error("Database error", "operation", "list_thoughts", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to list thoughts.")
		return
	}
	if thoughts == nil {
		thoughts = []database.PersonalThought{}
	}

	c.JSON(http.StatusOK, gin.H{"items": thoughts})
}

// RunWorkerOnce drives a single pass of the content pipeline. The body is
// optional; a worker_id field overrides the configured default.
func (h *Handler) RunWorkerOnce(c *gin.Context) {
	workerID := h.workerID

	var body interface{}
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err == nil {
		if m, ok := body.(map[string]interface{}); ok {
			if s, ok := m["worker_id"].(string); ok && s != "" {
				workerID = s
			}
		}
	}

	result, err := h.runner.Run(c.Request.Context(), workerID)
	if err != nil {
		slog.Error("Worker run failed", "worker_id", workerID, "error", err)
		respondError(c, http.StatusInternalServerError, "Worker run failed.")
		return
	}

	if result.NoJob {
		c.Status(http.StatusNoContent)
		return
	}
	if result.FailureMessage != "" {
		c.JSON(http.StatusOK, gin.H{
			"ok":     false,
			"error":  result.FailureMessage,
			"job_id": result.JobID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"job_id":     result.JobID,
		"thought_id": result.ThoughtID,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	timestamp := time.Now().UTC().Format(time.RFC3339)

	if err := h.db.Ping(); err != nil {
		slog.Error("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"ok":        false,
			"database":  "error",
			"timestamp": timestamp,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"database":  "connected",
		"timestamp": timestamp,
	})
}
