// ABOUTME: HTTP-level tests for the tasknest API using httptest
// ABOUTME: Covers auth flows, task CRUD, AI endpoints, and the cross-user scenario

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/store"
	"github.com/tasknest/tasknest/internal/suggest"
	"github.com/tasknest/tasknest/internal/task"
	"github.com/tasknest/tasknest/internal/user"
)

// newTestServer builds a full API server on a mock store and the given
// generator.
func newTestServer(t *testing.T, gen suggest.Generator) *httptest.Server {
	t.Helper()

	signer := auth.NewSigner([]byte("test-secret"), time.Hour)
	mock := store.NewMockStore()

	srv := NewServer(
		user.NewService(mock, signer),
		task.NewService(mock),
		suggest.NewService(gen, time.Second),
		signer,
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func okGenerator(reply string) suggest.Generator {
	return suggest.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return reply, nil
	})
}

func brokenGenerator() suggest.Generator {
	return suggest.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("upstream unavailable")
	})
}

// doJSON issues a request with an optional bearer token and decodes the
// response into out (if non-nil).
func doJSON(t *testing.T, method, url, token string, body any, out any) *http.Response {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}

	req, err := http.NewRequest(method, url, &reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func registerUser(t *testing.T, ts *httptest.Server, email string) AuthResponse {
	t.Helper()
	var authResp AuthResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "",
		RegisterRequest{Email: email, Name: "Test", Password: "correct-horse"}, &authResp)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return authResp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, okGenerator(""))

	var body map[string]string
	resp := doJSON(t, http.MethodGet, ts.URL+"/health", "", nil, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t, okGenerator(""))

	registered := registerUser(t, ts, "alice@example.com")
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "alice@example.com", registered.User.Email)

	var loggedIn AuthResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "",
		LoginRequest{Email: "alice@example.com", Password: "correct-horse"}, &loggedIn)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	var errBody map[string]string
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "",
		LoginRequest{Email: "alice@example.com", Password: "wrong"}, &errBody)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t, okGenerator(""))

	registerUser(t, ts, "alice@example.com")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "",
		RegisterRequest{Email: "alice@example.com", Name: "Again", Password: "correct-horse"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestTasks_RequireCredential(t *testing.T) {
	ts := newTestServer(t, okGenerator(""))

	endpoints := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/tasks"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodGet, "/api/tasks/some-id"},
		{http.MethodPut, "/api/tasks/some-id"},
		{http.MethodDelete, "/api/tasks/some-id"},
		{http.MethodPost, "/api/ai/breakdown"},
		{http.MethodPost, "/api/ai/priority"},
		{http.MethodPost, "/api/ai/estimate"},
	}

	for _, ep := range endpoints {
		t.Run(ep.method+" "+ep.path, func(t *testing.T) {
			resp := doJSON(t, ep.method, ts.URL+ep.path, "", nil, nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestTasks_CRUD(t *testing.T) {
	ts := newTestServer(t, okGenerator(""))
	alice := registerUser(t, ts, "alice@example.com")

	// Create with defaults
	var created TaskResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/tasks", alice.Token,
		CreateTaskRequest{Title: "Write report"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "todo", created.Status)
	assert.Equal(t, "medium", created.Priority)
	assert.Equal(t, alice.User.ID, created.OwnerID)

	// Read back
	var fetched TaskResponse
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/tasks/"+created.ID, alice.Token, nil, &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.ID, fetched.ID)

	// Partial update: only status changes
	status := "completed"
	var updated TaskResponse
	resp = doJSON(t, http.MethodPut, ts.URL+"/api/tasks/"+created.ID, alice.Token,
		UpdateTaskRequest{Status: &status}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", updated.Status)
	assert.Equal(t, "Write report", updated.Title)

	// List
	var list ListTasksResponse
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/tasks", alice.Token, nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list.Tasks, 1)

	// Delete
	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/tasks/"+created.ID, alice.Token, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/tasks/"+created.ID, alice.Token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTasks_CreateValidation(t *testing.T) {
	ts := newTestServer(t, okGenerator(""))
	alice := registerUser(t, ts, "alice@example.com")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/tasks", alice.Token,
		CreateTaskRequest{Description: "no title"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTasks_CrossUserIsNotFound(t *testing.T) {
	ts := newTestServer(t, okGenerator(""))
	alice := registerUser(t, ts, "alice@example.com")
	bob := registerUser(t, ts, "bob@example.com")

	var created TaskResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/tasks", alice.Token,
		CreateTaskRequest{Title: "Private"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Bob probing Alice's task gets the same response as probing garbage.
	var bodyReal, bodyFake map[string]string
	respReal := doJSON(t, http.MethodGet, ts.URL+"/api/tasks/"+created.ID, bob.Token, nil, &bodyReal)
	respFake := doJSON(t, http.MethodGet, ts.URL+"/api/tasks/no-such-id", bob.Token, nil, &bodyFake)

	assert.Equal(t, http.StatusNotFound, respReal.StatusCode)
	assert.Equal(t, http.StatusNotFound, respFake.StatusCode)
	assert.Equal(t, bodyFake, bodyReal)

	// Same for update and delete.
	title := "Hijack"
	resp = doJSON(t, http.MethodPut, ts.URL+"/api/tasks/"+created.ID, bob.Token,
		UpdateTaskRequest{Title: &title}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/tasks/"+created.ID, bob.Token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Alice still sees her task.
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/tasks/"+created.ID, alice.Token, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAI_Breakdown(t *testing.T) {
	ts := newTestServer(t, okGenerator("Draft outline\nGather data\nWrite sections\nReview\nSubmit\nExtra 1\nExtra 2"))
	alice := registerUser(t, ts, "alice@example.com")

	var body BreakdownResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/ai/breakdown", alice.Token,
		SuggestionRequest{Title: "Write report"}, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body.Subtasks, 5)
	assert.Equal(t, "Draft outline", body.Subtasks[0])
}

func TestAI_Breakdown_GeneratorDown(t *testing.T) {
	ts := newTestServer(t, brokenGenerator())
	alice := registerUser(t, ts, "alice@example.com")

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/ai/breakdown", alice.Token,
		SuggestionRequest{Title: "Write report"}, nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestAI_Priority_FallsBackWhenGeneratorDown(t *testing.T) {
	ts := newTestServer(t, brokenGenerator())
	alice := registerUser(t, ts, "alice@example.com")

	var body PriorityResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/ai/priority", alice.Token,
		SuggestionRequest{Title: "Write report"}, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "medium", body.Priority)
}

func TestAI_Estimate_FallsBackWhenGeneratorDown(t *testing.T) {
	ts := newTestServer(t, brokenGenerator())
	alice := registerUser(t, ts, "alice@example.com")

	var body EstimateResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/ai/estimate", alice.Token,
		SuggestionRequest{Title: "Write report"}, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 60, body.EstimatedMinutes)
}

func TestAI_TitleRequired(t *testing.T) {
	ts := newTestServer(t, okGenerator("high"))
	alice := registerUser(t, ts, "alice@example.com")

	for _, path := range []string{"/api/ai/breakdown", "/api/ai/priority", "/api/ai/estimate"} {
		t.Run(path, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, ts.URL+path, alice.Token,
				SuggestionRequest{Description: "no title"}, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

// TestScenario_EndToEnd walks the full flow: register, create a task, ask for
// a breakdown, then confirm another user's credential cannot reach the task.
func TestScenario_EndToEnd(t *testing.T) {
	ts := newTestServer(t, okGenerator("Outline the report\nCollect figures\nWrite the draft"))

	alice := registerUser(t, ts, "alice@example.com")

	var created TaskResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/tasks", alice.Token,
		CreateTaskRequest{Title: "Write report"}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "todo", created.Status)
	assert.Equal(t, "medium", created.Priority)

	var breakdown BreakdownResponse
	resp = doJSON(t, http.MethodPost, ts.URL+"/api/ai/breakdown", alice.Token,
		SuggestionRequest{Title: created.Title}, &breakdown)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.GreaterOrEqual(t, len(breakdown.Subtasks), 1)
	assert.LessOrEqual(t, len(breakdown.Subtasks), 5)
	for _, st := range breakdown.Subtasks {
		assert.NotEmpty(t, st)
	}

	bob := registerUser(t, ts, "bob@example.com")
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/tasks/"+created.ID, bob.Token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
