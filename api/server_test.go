package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devhire/devhire/api"
	migrations "github.com/devhire/devhire/db"
	"github.com/devhire/devhire/internal/config"
	"github.com/devhire/devhire/internal/db"
	"github.com/devhire/devhire/internal/matching"
	"github.com/devhire/devhire/internal/repository/sqlite"
	"github.com/devhire/devhire/pkg/models"
)

// newTestServer wires the full router against a fresh in-memory database.
// The matching engine runs fallback-only and no chain verifier is attached,
// matching a deployment with neither external service configured.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	database, err := db.New(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	// a second pooled connection would see a fresh empty in-memory database
	database.GetConn().SetMaxOpenConns(1)

	if err := db.Migrate(ctx, database, migrations.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := sqlite.New(database, nil)
	cfg := &config.Config{
		JWTSecret:     "e2e-secret",
		TokenDuration: time.Hour,
		Payment: config.PaymentConfig{
			Amount:      0,
			Currency:    "ETH",
			Network:     "Sepolia Testnet",
			AdminWallet: "0xadmin",
		},
	}

	router := api.SetupRoutes(cfg, "test", "now", api.Deps{
		Users:  repo,
		Jobs:   repo,
		Txs:    repo,
		Engine: matching.NewEngine(nil, "", nil),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, payload any, out any) int {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return res.StatusCode
}

// The whole free-posting journey: signup, login, pay a zero fee, post a job,
// and see it under the caller's own postings.
func TestServer_SignupLoginPostAndListOwnJobs(t *testing.T) {
	srv := newTestServer(t)

	var signup struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	status := doJSON(t, srv, http.MethodPost, "/auth/signup", "", map[string]string{
		"name": "Eve", "email": "eve@example.com", "password": "pw123",
	}, &signup)
	if status != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d", status)
	}
	if signup.Token == "" || signup.User == nil {
		t.Fatalf("signup response incomplete: %+v", signup)
	}

	var login struct {
		Token string `json:"token"`
	}
	status = doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "eve@example.com", "password": "pw123",
	}, &login)
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", status)
	}
	token := login.Token

	// posting fee is zero: initiate settles immediately, verify confirms
	var initiate struct {
		Transaction *models.Transaction `json:"transaction"`
	}
	status = doJSON(t, srv, http.MethodPost, "/payments/initiate", token, map[string]any{
		"amount": 0,
	}, &initiate)
	if status != http.StatusOK {
		t.Fatalf("initiate: expected 200, got %d", status)
	}
	if initiate.Transaction.Status != models.TxCompleted {
		t.Fatalf("zero-amount transaction not completed: %+v", initiate.Transaction)
	}

	var job struct {
		Job *models.Job `json:"job"`
	}
	status = doJSON(t, srv, http.MethodPost, "/jobs", token, map[string]any{
		"title":       "Go Developer",
		"description": "Build the backend",
		"skills":      []string{"Go", "SQL"},
		"salary":      95000,
		"location":    "Remote",
	}, &job)
	if status != http.StatusCreated {
		t.Fatalf("create job: expected 201, got %d", status)
	}

	var mine struct {
		Jobs []models.Job `json:"jobs"`
	}
	status = doJSON(t, srv, http.MethodGet, "/jobs/user/my", token, nil, &mine)
	if status != http.StatusOK {
		t.Fatalf("my jobs: expected 200, got %d", status)
	}
	if len(mine.Jobs) != 1 {
		t.Fatalf("expected 1 owned job, got %d", len(mine.Jobs))
	}
	got := mine.Jobs[0]
	if got.Title != "Go Developer" || got.Salary != 95000 || len(got.Skills) != 2 {
		t.Fatalf("stored job does not match posting: %+v", got)
	}
	if got.PostedBy != signup.User.ID {
		t.Fatalf("job owner mismatch: %+v", got)
	}
}

func TestServer_ProtectedRoutesRejectAnonymous(t *testing.T) {
	srv := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/me"},
		{http.MethodGet, "/profile"},
		{http.MethodPost, "/jobs"},
		{http.MethodGet, "/jobs/user/my"},
		{http.MethodPost, "/payments/initiate"},
		{http.MethodGet, "/payments/history"},
		{http.MethodGet, "/ai/recommendations"},
	}
	for _, p := range paths {
		if status := doJSON(t, srv, p.method, p.path, "", nil, nil); status != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", p.method, p.path, status)
		}
	}
}

func TestServer_PublicRoutes(t *testing.T) {
	srv := newTestServer(t)

	var health struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	if status := doJSON(t, srv, http.MethodGet, "/health", "", nil, &health); status != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", status)
	}
	if health.Status != "ok" || health.Service != "devhire" {
		t.Fatalf("unexpected health payload: %+v", health)
	}

	var reqs map[string]any
	if status := doJSON(t, srv, http.MethodGet, "/payments/requirements", "", nil, &reqs); status != http.StatusOK {
		t.Fatalf("requirements: expected 200, got %d", status)
	}
	if reqs["currency"] != "ETH" {
		t.Fatalf("unexpected requirements: %v", reqs)
	}

	var jobs struct {
		Jobs []models.Job `json:"jobs"`
	}
	if status := doJSON(t, srv, http.MethodGet, "/jobs", "", nil, &jobs); status != http.StatusOK {
		t.Fatalf("jobs: expected 200, got %d", status)
	}
	if jobs.Jobs == nil {
		t.Fatalf("expected empty job list, got null")
	}
}
