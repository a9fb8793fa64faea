package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/devhire/devhire/pkg/models"
	"github.com/devhire/devhire/pkg/repository"
	"github.com/gorilla/mux"
)

type JobsHandler struct {
	jobRepo repository.JobRepo
}

func NewJobsHandler(jr repository.JobRepo) *JobsHandler {
	return &JobsHandler{jobRepo: jr}
}

type createJobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Salary      float64  `json:"salary"`
	Location    string   `json:"location"`
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		errorJSON(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		errorJSON(w, "Missing fields", http.StatusBadRequest)
		return
	}
	if req.Salary < 0 {
		errorJSON(w, "Salary must be non-negative", http.StatusBadRequest)
		return
	}

	job := models.Job{
		Title:       req.Title,
		Description: req.Description,
		Skills:      req.Skills,
		Salary:      req.Salary,
		Location:    req.Location,
		PostedBy:    userID,
	}
	if job.Skills == nil {
		job.Skills = []string{}
	}

	ctx := r.Context()
	id, err := h.jobRepo.CreateJob(ctx, &job)
	if err != nil {
		serverError(w, "jobs: create", err)
		return
	}

	created, err := h.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		serverError(w, "jobs: reload", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"message": "Job created successfully", "job": created})
}

func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}

	f := models.JobFilter{
		Location: q.Get("location"),
		Offset:   (page - 1) * limit,
		Limit:    limit,
	}
	if skills := q.Get("skills"); skills != "" {
		f.Skills = splitCSV(skills)
	}

	jobs, err := h.jobRepo.ListJobs(r.Context(), f)
	if err != nil {
		serverError(w, "jobs: list", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"jobs": jobs,
		"pagination": map[string]int{
			"page":  page,
			"limit": limit,
		},
	})
}

func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		errorJSON(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	job, err := h.jobRepo.GetJobByID(r.Context(), id)
	if err != nil {
		serverError(w, "jobs: get", err)
		return
	}
	if job == nil {
		errorJSON(w, "Job not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"job": job})
}

func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		errorJSON(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		errorJSON(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	var upd models.JobUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		errorJSON(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if upd.Salary != nil && *upd.Salary < 0 {
		errorJSON(w, "Salary must be non-negative", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	existing, err := h.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		serverError(w, "jobs: get for update", err)
		return
	}
	if existing == nil {
		errorJSON(w, "Job not found", http.StatusNotFound)
		return
	}
	if existing.PostedBy != userID {
		errorJSON(w, "Not authorized to update this job", http.StatusForbidden)
		return
	}

	if err := h.jobRepo.UpdateJob(ctx, id, upd); err != nil {
		serverError(w, "jobs: update", err)
		return
	}

	updated, err := h.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		serverError(w, "jobs: reload", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Job updated successfully", "job": updated})
}

func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		errorJSON(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		errorJSON(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	existing, err := h.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		serverError(w, "jobs: get for delete", err)
		return
	}
	if existing == nil {
		errorJSON(w, "Job not found", http.StatusNotFound)
		return
	}
	if existing.PostedBy != userID {
		errorJSON(w, "Not authorized to delete this job", http.StatusForbidden)
		return
	}

	if err := h.jobRepo.DeleteJob(ctx, id); err != nil {
		serverError(w, "jobs: delete", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Job deleted successfully"})
}

func (h *JobsHandler) MyJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		errorJSON(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	jobs, err := h.jobRepo.ListJobsByOwner(r.Context(), userID)
	if err != nil {
		serverError(w, "jobs: list by owner", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}
