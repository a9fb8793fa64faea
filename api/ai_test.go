package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devhire/devhire/api"
	"github.com/devhire/devhire/internal/matching"
	"github.com/devhire/devhire/pkg/models"
	"github.com/devhire/devhire/pkg/repository/mock"
	"github.com/gorilla/mux"
)

// aiFixture wires the handler with a fallback-only engine so no completion
// backend is needed.
func aiFixture() (*api.AIHandler, *mock.Mocks) {
	mocks := mock.NewMocks()
	engine := matching.NewEngine(nil, "", nil)
	return api.NewAIHandler(engine, mocks.Users, mocks.Jobs), mocks
}

func TestAIExtractSkills(t *testing.T) {
	handler, _ := aiFixture()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantSkill  string
	}{
		{"InvalidJSON", `{`, http.StatusBadRequest, ""},
		{"MissingText", `{}`, http.StatusBadRequest, ""},
		{"FindsKnownSkills", `{"text":"Senior engineer with Go and PostgreSQL experience"}`, http.StatusOK, "Go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodPost, "/ai/extract-skills", []byte(tt.body), 0)
			w := httptest.NewRecorder()
			handler.ExtractSkills(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantSkill == "" {
				return
			}

			var body struct {
				Skills []string `json:"skills"`
				Count  int      `json:"count"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body.Count != len(body.Skills) {
				t.Fatalf("count %d does not match skills %v", body.Count, body.Skills)
			}
			found := false
			for _, s := range body.Skills {
				if s == tt.wantSkill {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected %q among extracted skills %v", tt.wantSkill, body.Skills)
			}
		})
	}
}

func TestAIMatch(t *testing.T) {
	handler, mocks := aiFixture()

	userID, _ := mocks.Users.CreateUser(context.Background(), &models.User{
		Name: "Alice", Email: "alice@example.com", Skills: []string{"Go", "SQL"},
	})
	jobID, _ := mocks.Jobs.CreateJob(context.Background(), &models.Job{
		Title: "Backend", Skills: []string{"go", "sql"}, PostedBy: 99,
	})

	req := authedRequest(http.MethodGet, "/ai/match/1", nil, userID)
	req = mux.SetURLVars(req, map[string]string{"jobId": "1"})
	w := httptest.NewRecorder()
	handler.Match(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", w.Code, w.Body.String())
	}
	var body struct {
		JobID      int64   `json:"jobId"`
		MatchScore float64 `json:"matchScore"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.JobID != jobID {
		t.Fatalf("unexpected job id %d", body.JobID)
	}
	// skill sets are identical ignoring case
	if body.MatchScore != 100 {
		t.Fatalf("expected score 100, got %v", body.MatchScore)
	}
}

func TestAIMatch_JobNotFound(t *testing.T) {
	handler, mocks := aiFixture()
	userID, _ := mocks.Users.CreateUser(context.Background(), &models.User{Name: "A", Email: "a@example.com"})

	req := authedRequest(http.MethodGet, "/ai/match/42", nil, userID)
	req = mux.SetURLVars(req, map[string]string{"jobId": "42"})
	w := httptest.NewRecorder()
	handler.Match(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAIRecommendations_FallbackOrdering(t *testing.T) {
	handler, mocks := aiFixture()

	userID, _ := mocks.Users.CreateUser(context.Background(), &models.User{
		Name: "Alice", Email: "alice@example.com", Skills: []string{"Go", "SQL"},
	})
	_, _ = mocks.Jobs.CreateJob(context.Background(), &models.Job{Title: "No Overlap", Skills: []string{"PHP"}, PostedBy: 9})
	_, _ = mocks.Jobs.CreateJob(context.Background(), &models.Job{Title: "Full Overlap", Skills: []string{"Go", "SQL"}, PostedBy: 9})
	_, _ = mocks.Jobs.CreateJob(context.Background(), &models.Job{Title: "Half Overlap", Skills: []string{"Go", "Kafka"}, PostedBy: 9})

	req := authedRequest(http.MethodGet, "/ai/recommendations", nil, userID)
	w := httptest.NewRecorder()
	handler.Recommendations(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Recommendations []models.JobScore `json:"recommendations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Recommendations) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(body.Recommendations))
	}
	if body.Recommendations[0].Job.Title != "Full Overlap" {
		t.Fatalf("best match should rank first: %+v", body.Recommendations)
	}
	for i := 1; i < len(body.Recommendations); i++ {
		if body.Recommendations[i].Score > body.Recommendations[i-1].Score {
			t.Fatalf("recommendations not sorted by score: %+v", body.Recommendations)
		}
	}
}

func TestAIUpdateSkills_Persists(t *testing.T) {
	handler, mocks := aiFixture()

	userID, _ := mocks.Users.CreateUser(context.Background(), &models.User{
		Name: "Alice", Email: "alice@example.com", Skills: []string{},
	})

	req := authedRequest(http.MethodPost, "/ai/update-skills", []byte(`{"text":"I build services in Go with Docker"}`), userID)
	w := httptest.NewRecorder()
	handler.UpdateSkills(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", w.Code, w.Body.String())
	}

	stored, _ := mocks.Users.GetUserByID(context.Background(), userID)
	if len(stored.Skills) == 0 {
		t.Fatalf("skills were not persisted")
	}
	found := map[string]bool{}
	for _, s := range stored.Skills {
		found[s] = true
	}
	if !found["Go"] || !found["Docker"] {
		t.Fatalf("expected Go and Docker in stored skills %v", stored.Skills)
	}
}

func TestAISimilar(t *testing.T) {
	handler, mocks := aiFixture()

	_, _ = mocks.Jobs.CreateJob(context.Background(), &models.Job{Title: "Target", Skills: []string{"Go", "SQL"}, PostedBy: 9})
	_, _ = mocks.Jobs.CreateJob(context.Background(), &models.Job{Title: "Close", Skills: []string{"Go", "SQL"}, PostedBy: 9})
	_, _ = mocks.Jobs.CreateJob(context.Background(), &models.Job{Title: "Far", Skills: []string{"Swift"}, PostedBy: 9})

	req := httptest.NewRequest(http.MethodGet, "/ai/similar/1", nil)
	req = mux.SetURLVars(req, map[string]string{"jobId": "1"})
	w := httptest.NewRecorder()
	handler.Similar(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		TargetJob struct {
			ID int64 `json:"id"`
		} `json:"targetJob"`
		SimilarJobs []models.JobScore `json:"similarJobs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.TargetJob.ID != 1 {
		t.Fatalf("unexpected target: %+v", body.TargetJob)
	}
	for _, s := range body.SimilarJobs {
		if s.Job.ID == 1 {
			t.Fatalf("target job listed among its own similar jobs")
		}
	}
	if len(body.SimilarJobs) == 0 || body.SimilarJobs[0].Job.Title != "Close" {
		t.Fatalf("unexpected similar jobs: %+v", body.SimilarJobs)
	}
}
