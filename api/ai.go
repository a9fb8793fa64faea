package api

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/devhire/devhire/internal/matching"
	"github.com/devhire/devhire/pkg/models"
	"github.com/devhire/devhire/pkg/repository"
	"github.com/gorilla/mux"
)

const similarJobsLimit = 5

type AIHandler struct {
	engine   *matching.Engine
	userRepo repository.UserRepo
	jobRepo  repository.JobRepo
}

func NewAIHandler(engine *matching.Engine, ur repository.UserRepo, jr repository.JobRepo) *AIHandler {
	return &AIHandler{engine: engine, userRepo: ur, jobRepo: jr}
}

type extractSkillsRequest struct {
	Text string `json:"text"`
}

func (h *AIHandler) ExtractSkills(w http.ResponseWriter, r *http.Request) {
	var req extractSkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		errorJSON(w, "Text is required", http.StatusBadRequest)
		return
	}

	skills := h.engine.ExtractSkills(r.Context(), req.Text)

	writeJSON(w, http.StatusOK, map[string]any{
		"skills": skills,
		"count":  len(skills),
	})
}

// Match scores the authenticated user's skills against one job.
func (h *AIHandler) Match(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		errorJSON(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	jobID, err := strconv.ParseInt(mux.Vars(r)["jobId"], 10, 64)
	if err != nil {
		errorJSON(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	job, err := h.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		serverError(w, "ai: lookup job", err)
		return
	}
	if job == nil {
		errorJSON(w, "Job not found", http.StatusNotFound)
		return
	}

	user, err := h.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		serverError(w, "ai: lookup user", err)
		return
	}
	if user == nil {
		errorJSON(w, "User not found", http.StatusNotFound)
		return
	}

	score := matching.MatchScore(job.Skills, user.Skills)

	writeJSON(w, http.StatusOK, map[string]any{
		"jobId":      jobID,
		"matchScore": math.Round(score*100) / 100,
		"jobSkills":  job.Skills,
		"userSkills": user.Skills,
	})
}

func (h *AIHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		errorJSON(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		serverError(w, "ai: lookup user", err)
		return
	}
	if user == nil {
		errorJSON(w, "User not found", http.StatusNotFound)
		return
	}

	jobs, err := h.jobRepo.ListJobs(ctx, models.JobFilter{Limit: 100})
	if err != nil {
		serverError(w, "ai: list jobs", err)
		return
	}

	recommendations := h.engine.Recommend(ctx, user.Skills, jobs)

	writeJSON(w, http.StatusOK, map[string]any{
		"recommendations": recommendations,
		"userSkills":      user.Skills,
	})
}

// UpdateSkills extracts skills from free text and persists them on the
// caller's profile.
func (h *AIHandler) UpdateSkills(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		errorJSON(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req extractSkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		errorJSON(w, "Text is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	skills := h.engine.ExtractSkills(ctx, req.Text)

	if err := h.userRepo.UpdateUser(ctx, userID, models.UserUpdate{Skills: &skills}); err != nil {
		serverError(w, "ai: update skills", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Skills updated successfully",
		"skills":  skills,
		"count":   len(skills),
	})
}

// Similar ranks other jobs by skill-set similarity to the given job.
func (h *AIHandler) Similar(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.ParseInt(mux.Vars(r)["jobId"], 10, 64)
	if err != nil {
		errorJSON(w, "Invalid job id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	target, err := h.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		serverError(w, "ai: lookup job", err)
		return
	}
	if target == nil {
		errorJSON(w, "Job not found", http.StatusNotFound)
		return
	}

	jobs, err := h.jobRepo.ListJobs(ctx, models.JobFilter{Limit: 100})
	if err != nil {
		serverError(w, "ai: list jobs", err)
		return
	}

	similar := matching.SimilarJobs(*target, jobs, similarJobsLimit)

	writeJSON(w, http.StatusOK, map[string]any{
		"targetJob": map[string]any{
			"id":     target.ID,
			"title":  target.Title,
			"skills": target.Skills,
		},
		"similarJobs": similar,
	})
}
