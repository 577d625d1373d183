package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	domainstudio "github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
	"github.com/Krosebrook/Flash-n-Frame/internal/ports"
	"github.com/Krosebrook/Flash-n-Frame/internal/usecase/studio"
)

// stubStudio answers with canned results and records the inputs it saw.
type stubStudio struct {
	generation domainstudio.Generation
	task       domainstudio.Task
	err        error

	lastRepoInput    studio.RepoInput
	lastArticleInput studio.ArticleInput
	lastTaskInput    studio.CreateTaskInput
	deletedID        string
	cleared          bool
}

func (s *stubStudio) GenerateFromRepo(_ context.Context, in studio.RepoInput) (domainstudio.Generation, error) {
	s.lastRepoInput = in
	return s.generation, s.err
}

func (s *stubStudio) GenerateFromArticle(_ context.Context, in studio.ArticleInput) (domainstudio.Generation, error) {
	s.lastArticleInput = in
	return s.generation, s.err
}

func (s *stubStudio) StyleTransfer(_ context.Context, _ studio.StyleTransferInput) (domainstudio.Generation, error) {
	return s.generation, s.err
}

func (s *stubStudio) GenerateUICode(_ context.Context, _ studio.UICodeInput) (domainstudio.Generation, error) {
	return s.generation, s.err
}

func (s *stubStudio) ListGenerations(_ context.Context, _ studio.HistoryFilter) ([]domainstudio.Generation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domainstudio.Generation{s.generation}, nil
}

func (s *stubStudio) GetGeneration(_ context.Context, id string) (domainstudio.Generation, error) {
	if s.err != nil {
		return domainstudio.Generation{}, s.err
	}
	if id != s.generation.ID {
		return domainstudio.Generation{}, ports.ErrGenerationNotFound
	}
	return s.generation, nil
}

func (s *stubStudio) DeleteGeneration(_ context.Context, id string) error {
	s.deletedID = id
	return s.err
}

func (s *stubStudio) ClearGenerations(context.Context) error {
	s.cleared = true
	return s.err
}

func (s *stubStudio) CreateTask(_ context.Context, in studio.CreateTaskInput) (domainstudio.Task, error) {
	s.lastTaskInput = in
	return s.task, s.err
}

func (s *stubStudio) UpdateTaskStatus(_ context.Context, _ string, _ string) (domainstudio.Task, error) {
	return s.task, s.err
}

func (s *stubStudio) DeleteTask(_ context.Context, id string) error {
	s.deletedID = id
	return s.err
}

func (s *stubStudio) ListTasks(_ context.Context, _ studio.TaskListInput) ([]domainstudio.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []domainstudio.Task{s.task}, nil
}

type stubStyles struct{}

func (stubStyles) List() []studio.StyleProfile {
	return []studio.StyleProfile{{ID: "clean", Name: "Clean editorial"}}
}

func setup(t *testing.T) (*stubStudio, http.Handler) {
	t.Helper()

	stub := &stubStudio{
		generation: domainstudio.Generation{
			ID:        "gen-1",
			Kind:      domainstudio.KindRepoInfographic,
			SourceRef: "octocat/hello-world",
			MIMEType:  "image/png",
			Payload:   []byte("png-bytes"),
			CreatedAt: "2026-08-01T12:00:00Z",
		},
		task: domainstudio.Task{
			ID:     "task-1",
			Title:  "write docs",
			Status: domainstudio.StatusTodo,
		},
	}
	return stub, New(stub, stubStyles{}).Router()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	_, h := setup(t)

	rr := do(t, h, http.MethodGet, "/healthz", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestGenerateRepo(t *testing.T) {
	stub, h := setup(t)

	rr := do(t, h, http.MethodPost, "/api/generate/repo", map[string]string{
		"repo":  "octocat/hello-world@main",
		"style": "clean",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body)
	}
	if stub.lastRepoInput.RepoRef != "octocat/hello-world@main" || stub.lastRepoInput.StyleID != "clean" {
		t.Fatalf("input = %+v", stub.lastRepoInput)
	}

	var resp struct {
		ID      string `json:"id"`
		Payload []byte `json:"payload"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "gen-1" || string(resp.Payload) != "png-bytes" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestGenerateRepoRejectsBadJSON(t *testing.T) {
	_, h := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/api/generate/repo", bytes.NewReader([]byte("{")))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domainstudio.ErrRepoRefRequired, http.StatusBadRequest},
		{domainstudio.ErrInvalidRepoRef, http.StatusBadRequest},
		{domainstudio.ErrPermissionDenied, http.StatusForbidden},
		{domainstudio.ErrNotFound, http.StatusNotFound},
		{ports.ErrGenerationNotFound, http.StatusNotFound},
		{domainstudio.ErrRateLimited, http.StatusTooManyRequests},
		{domainstudio.ErrContentBlocked, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", domainstudio.ErrRateLimited), http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		stub, h := setup(t)
		stub.err = tc.err

		rr := do(t, h, http.MethodPost, "/api/generate/repo", map[string]string{"repo": "a/b"})
		if rr.Code != tc.want {
			t.Fatalf("err %v: status = %d, want %d", tc.err, rr.Code, tc.want)
		}
	}
}

func TestInternalErrorBodyIsGeneric(t *testing.T) {
	stub, h := setup(t)
	stub.err = fmt.Errorf("rpc timeout to backend 10.0.0.8")

	rr := do(t, h, http.MethodPost, "/api/generate/repo", map[string]string{"repo": "a/b"})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if bytes.Contains(rr.Body.Bytes(), []byte("10.0.0.8")) {
		t.Fatalf("internal detail leaked: %s", rr.Body)
	}
}

func TestListGenerationsOmitsPayload(t *testing.T) {
	_, h := setup(t)

	rr := do(t, h, http.MethodGet, "/api/generations/", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp struct {
		Generations []map[string]any `json:"generations"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Generations) != 1 {
		t.Fatalf("generations = %+v", resp.Generations)
	}
	if _, ok := resp.Generations[0]["payload"]; ok {
		t.Fatal("listing must not inline payloads")
	}
	if got := resp.Generations[0]["payload_bytes"].(float64); int(got) != len("png-bytes") {
		t.Fatalf("payload_bytes = %v", got)
	}
}

func TestListGenerationsRejectsBadLimit(t *testing.T) {
	_, h := setup(t)

	rr := do(t, h, http.MethodGet, "/api/generations/?limit=lots", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestGetArtifactServesRawBytes(t *testing.T) {
	_, h := setup(t)

	rr := do(t, h, http.MethodGet, "/api/generations/gen-1/artifact", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
	if rr.Body.String() != "png-bytes" {
		t.Fatalf("body = %q", rr.Body)
	}

	rr = do(t, h, http.MethodGet, "/api/generations/missing/artifact", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing artifact status = %d", rr.Code)
	}
}

func TestDeleteAndClearGenerations(t *testing.T) {
	stub, h := setup(t)

	rr := do(t, h, http.MethodDelete, "/api/generations/gen-1", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}
	if stub.deletedID != "gen-1" {
		t.Fatalf("deleted id = %q", stub.deletedID)
	}

	rr = do(t, h, http.MethodDelete, "/api/generations/", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("clear status = %d", rr.Code)
	}
	if !stub.cleared {
		t.Fatal("clear not forwarded")
	}
}

func TestTaskEndpoints(t *testing.T) {
	stub, h := setup(t)

	rr := do(t, h, http.MethodPost, "/api/tasks/", map[string]string{"title": "write docs", "notes": "soon"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rr.Code, rr.Body)
	}
	if stub.lastTaskInput.Title != "write docs" || stub.lastTaskInput.Notes != "soon" {
		t.Fatalf("task input = %+v", stub.lastTaskInput)
	}

	rr = do(t, h, http.MethodPatch, "/api/tasks/task-1", map[string]string{"status": "done"})
	if rr.Code != http.StatusOK {
		t.Fatalf("patch status = %d", rr.Code)
	}

	rr = do(t, h, http.MethodGet, "/api/tasks/?all=true", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d", rr.Code)
	}
	var resp struct {
		Tasks []taskResponse `json:"tasks"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Tasks) != 1 || resp.Tasks[0].ID != "task-1" {
		t.Fatalf("tasks = %+v", resp.Tasks)
	}

	rr = do(t, h, http.MethodDelete, "/api/tasks/task-1", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}
}

func TestListStyles(t *testing.T) {
	_, h := setup(t)

	rr := do(t, h, http.MethodGet, "/api/styles", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp struct {
		Styles []studio.StyleProfile `json:"styles"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Styles) != 1 || resp.Styles[0].ID != "clean" {
		t.Fatalf("styles = %+v", resp.Styles)
	}
}
