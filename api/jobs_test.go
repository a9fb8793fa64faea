package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devhire/devhire/api"
	"github.com/devhire/devhire/pkg/models"
	"github.com/devhire/devhire/pkg/repository/mock"
	"github.com/gorilla/mux"
)

func authedRequest(method, path string, body []byte, userID int64) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != 0 {
		req = req.WithContext(context.WithValue(req.Context(), api.CtxUserID, userID))
	}
	return req
}

func seedJob(t *testing.T, m *mock.Mocks, job models.Job) int64 {
	t.Helper()
	id, err := m.Jobs.CreateJob(context.Background(), &job)
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return id
}

func TestJobsCreate(t *testing.T) {
	tests := []struct {
		name       string
		userID     int64
		body       string
		wantStatus int
	}{
		{
			name:       "Unauthenticated",
			userID:     0,
			body:       `{"title":"Backend Engineer"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "InvalidJSON",
			userID:     1,
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MissingTitle",
			userID:     1,
			body:       `{"description":"no title here"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "NegativeSalary",
			userID:     1,
			body:       `{"title":"Backend Engineer","salary":-5}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Success",
			userID:     1,
			body:       `{"title":"Backend Engineer","description":"Build APIs","skills":["Go","SQL"],"salary":120000,"location":"Remote"}`,
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			handler := api.NewJobsHandler(mocks.Jobs)

			req := authedRequest(http.MethodPost, "/jobs", []byte(tt.body), tt.userID)
			w := httptest.NewRecorder()
			handler.Create(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusCreated {
				return
			}

			var body struct {
				Job *models.Job `json:"job"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body.Job == nil || body.Job.Title != "Backend Engineer" || body.Job.PostedBy != tt.userID {
				t.Fatalf("unexpected job: %+v", body.Job)
			}
		})
	}
}

func TestJobsGet(t *testing.T) {
	mocks := mock.NewMocks()
	id := seedJob(t, mocks, models.Job{Title: "Go Engineer", PostedBy: 1})
	handler := api.NewJobsHandler(mocks.Jobs)

	req := httptest.NewRequest(http.MethodGet, "/jobs/1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	w := httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Job *models.Job `json:"job"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Job == nil || body.Job.ID != id {
		t.Fatalf("unexpected job: %+v", body.Job)
	}
}

func TestJobsGet_NotFound(t *testing.T) {
	handler := api.NewJobsHandler(mock.NewMocks().Jobs)

	req := httptest.NewRequest(http.MethodGet, "/jobs/99", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "99"})
	w := httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestJobsUpdate_OwnerOnly(t *testing.T) {
	mocks := mock.NewMocks()
	id := seedJob(t, mocks, models.Job{Title: "Original Title", Salary: 100, PostedBy: 1})
	handler := api.NewJobsHandler(mocks.Jobs)

	// Someone other than the owner must be rejected and the record untouched.
	req := authedRequest(http.MethodPut, "/jobs/1", []byte(`{"title":"Hijacked"}`), 2)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	w := httptest.NewRecorder()
	handler.Update(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	stored, _ := mocks.Jobs.GetJobByID(context.Background(), id)
	if stored.Title != "Original Title" {
		t.Fatalf("record was modified by a non-owner: %+v", stored)
	}

	// The owner's partial update only changes the fields it names.
	req = authedRequest(http.MethodPut, "/jobs/1", []byte(`{"title":"Updated Title"}`), 1)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	w = httptest.NewRecorder()
	handler.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", w.Code, w.Body.String())
	}
	stored, _ = mocks.Jobs.GetJobByID(context.Background(), id)
	if stored.Title != "Updated Title" {
		t.Fatalf("title not updated: %+v", stored)
	}
	if stored.Salary != 100 {
		t.Fatalf("salary changed by a partial update: %+v", stored)
	}
}

func TestJobsUpdate_NotFound(t *testing.T) {
	handler := api.NewJobsHandler(mock.NewMocks().Jobs)

	req := authedRequest(http.MethodPut, "/jobs/42", []byte(`{"title":"X"}`), 1)
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	w := httptest.NewRecorder()
	handler.Update(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestJobsDelete_OwnerOnly(t *testing.T) {
	mocks := mock.NewMocks()
	id := seedJob(t, mocks, models.Job{Title: "Keep Me", PostedBy: 1})
	handler := api.NewJobsHandler(mocks.Jobs)

	req := authedRequest(http.MethodDelete, "/jobs/1", nil, 2)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if stored, _ := mocks.Jobs.GetJobByID(context.Background(), id); stored == nil {
		t.Fatalf("record deleted by a non-owner")
	}

	req = authedRequest(http.MethodDelete, "/jobs/1", nil, 1)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	w = httptest.NewRecorder()
	handler.Delete(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if stored, _ := mocks.Jobs.GetJobByID(context.Background(), id); stored != nil {
		t.Fatalf("record still present after owner delete")
	}
}

func TestJobsList_FiltersAndPagination(t *testing.T) {
	mocks := mock.NewMocks()
	seedJob(t, mocks, models.Job{Title: "Go Backend", Skills: []string{"Go", "SQL"}, Location: "Berlin", PostedBy: 1})
	seedJob(t, mocks, models.Job{Title: "Frontend", Skills: []string{"React"}, Location: "Remote", PostedBy: 1})
	seedJob(t, mocks, models.Job{Title: "Platform", Skills: []string{"Go", "Kubernetes"}, Location: "Remote", PostedBy: 2})
	handler := api.NewJobsHandler(mocks.Jobs)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"All", "", 3},
		{"BySkill", "?skills=go", 2},
		{"ByLocation", "?location=remote", 2},
		{"SkillAndLocation", "?skills=go&location=remote", 1},
		{"Paginated", "?page=2&limit=2", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/jobs"+tt.query, nil)
			w := httptest.NewRecorder()
			handler.List(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			var body struct {
				Jobs []models.Job `json:"jobs"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if len(body.Jobs) != tt.want {
				t.Fatalf("expected %d jobs, got %d", tt.want, len(body.Jobs))
			}
		})
	}
}

func TestJobsMyJobs(t *testing.T) {
	mocks := mock.NewMocks()
	seedJob(t, mocks, models.Job{Title: "Mine", PostedBy: 1})
	seedJob(t, mocks, models.Job{Title: "Theirs", PostedBy: 2})
	handler := api.NewJobsHandler(mocks.Jobs)

	req := authedRequest(http.MethodGet, "/jobs/user/my", nil, 1)
	w := httptest.NewRecorder()
	handler.MyJobs(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Jobs []models.Job `json:"jobs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Jobs) != 1 || body.Jobs[0].Title != "Mine" {
		t.Fatalf("unexpected jobs: %+v", body.Jobs)
	}
}
