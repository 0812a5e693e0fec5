package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/subnav/core"
	"github.com/poiesic/subnav/dispatch"
	"github.com/poiesic/subnav/ingestion"
	"github.com/poiesic/subnav/source"
	"github.com/poiesic/subnav/storage"
	"github.com/poiesic/subnav/storage/badger"
	"github.com/poiesic/subnav/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeRunner records submissions and serves runs from memory.
type fakeRunner struct {
	mu        sync.Mutex
	runs      map[string]*core.Run
	submitErr error
	submits   int
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{runs: make(map[string]*core.Run)}
}

func (f *fakeRunner) Submit(ctx context.Context) (*core.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	run := &core.Run{ID: core.NewID(), Status: core.RunStatusPending, SubmittedAt: time.Now().UTC()}
	f.runs[run.ID] = run
	return run, nil
}

func (f *fakeRunner) Status(ctx context.Context, id string) (*core.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return run, nil
}

func (f *fakeRunner) List(ctx context.Context, limit int) ([]*core.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var runs []*core.Run
	for _, r := range f.runs {
		runs = append(runs, r)
	}
	return runs, nil
}

func setupServer(t *testing.T) (*Server, storage.SubsidyRepository, *fakeRunner) {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	runner := newFakeRunner()
	srv, err := New(repos.Subsidies(), runner)
	require.NoError(t, err)
	return srv, repos.Subsidies(), runner
}

func serve(srv *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func seed(t *testing.T, repo storage.SubsidyRepository) (*core.Subsidy, *core.Subsidy) {
	t.Helper()
	ctx := context.Background()
	late := storagetest.NewSubsidy("神奈川県 ものづくりDX支援補助金", "https://example.jp/dx",
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), "製造業", "IT・情報通信業")
	early := storagetest.NewSubsidy("神奈川県 IT導入サポート助成金", "https://example.jp/it",
		time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC), "全業種対象")
	require.NoError(t, repo.AddSubsidy(ctx, late))
	require.NoError(t, repo.AddSubsidy(ctx, early))
	return early, late
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, newFakeRunner())
	assert.ErrorIs(t, err, ErrSubsidyRepositoryRequired)

	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	_, err = New(repos.Subsidies(), nil)
	assert.ErrorIs(t, err, ErrRunnerRequired)

	_, err = New(repos.Subsidies(), newFakeRunner(), WithAddr(""))
	assert.Error(t, err)
}

func TestHealthz(t *testing.T) {
	srv, _, _ := setupServer(t)
	rec := serve(srv, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestIndex_EmptyState(t *testing.T) {
	srv, _, _ := setupServer(t)
	rec := serve(srv, http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "現在、利用可能な補助金情報はありません。")
}

func TestIndex_RendersSubsidies(t *testing.T) {
	srv, repo, _ := setupServer(t)
	early, late := seed(t, repo)

	rec := serve(srv, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "クライアント向け要約")
	assert.Contains(t, body, "税理士向け詳細（専門家向け）")
	assert.Contains(t, body, "公式情報（外部リンク）")
	assert.Contains(t, body, late.SourceURL)
	assert.NotContains(t, body, "現在、利用可能な補助金情報はありません。")

	// sorted by deadline ascending
	assert.Less(t, strings.Index(body, early.Name), strings.Index(body, late.Name))
}

func TestIndex_TagFilter(t *testing.T) {
	srv, repo, _ := setupServer(t)
	early, late := seed(t, repo)

	rec := serve(srv, http.MethodGet, "/?tag="+url.QueryEscape("製造業"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), late.Name)
	assert.NotContains(t, rec.Body.String(), early.Name)
}

func TestListSubsidies(t *testing.T) {
	srv, repo, _ := setupServer(t)

	rec := serve(srv, http.MethodGet, "/api/subsidies")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	early, late := seed(t, repo)

	rec = serve(srv, http.MethodGet, "/api/subsidies")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []core.Subsidy
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, early.ID, got[0].ID)
	assert.Equal(t, late.ID, got[1].ID)

	rec = serve(srv, http.MethodGet, "/api/subsidies?tag="+url.QueryEscape("全業種対象"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, early.ID, got[0].ID)

	rec = serve(srv, http.MethodGet, "/api/subsidies?limit=1")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 1)

	rec = serve(srv, http.MethodGet, "/api/subsidies?limit=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSubsidies_UsesDocumentFieldNames(t *testing.T) {
	srv, repo, _ := setupServer(t)
	seed(t, repo)

	rec := serve(srv, http.MethodGet, "/api/subsidies?limit=1")
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.Len(t, raw, 1)
	for _, key := range []string{"id", "name", "source_url", "deadline", "processed_date",
		"industry_tags", "summary_for_client", "summary_for_accountant"} {
		assert.Contains(t, raw[0], key)
	}
}

func TestGetSubsidy(t *testing.T) {
	srv, repo, _ := setupServer(t)
	early, _ := seed(t, repo)

	rec := serve(srv, http.MethodGet, "/api/subsidies/"+early.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	var got core.Subsidy
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, early.Name, got.Name)

	rec = serve(srv, http.MethodGet, "/api/subsidies/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunFlow(t *testing.T) {
	srv, _, runner := setupServer(t)

	rec := serve(srv, http.MethodPost, "/api/run-flow")
	require.Equal(t, http.StatusAccepted, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		RunID   string `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "AIフローの実行を開始しました。", body.Message)
	assert.NotEmpty(t, body.RunID)
	assert.Equal(t, 1, runner.submits)

	rec = serve(srv, http.MethodGet, "/api/runs/"+body.RunID)
	require.Equal(t, http.StatusOK, rec.Code)
	var run core.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, core.RunStatusPending, run.Status)

	rec = serve(srv, http.MethodGet, "/api/runs")
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []core.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	assert.Len(t, runs, 1)
}

func TestRunFlow_Errors(t *testing.T) {
	srv, _, runner := setupServer(t)

	runner.submitErr = errors.New("store unavailable")
	rec := serve(srv, http.MethodPost, "/api/run-flow")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "store unavailable")

	rec = serve(srv, http.MethodGet, "/api/run-flow")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// heldRunner blocks every pipeline run until release is closed.
type heldRunner struct {
	started chan struct{}
	release chan struct{}
}

func (r *heldRunner) Run(ctx context.Context, _ source.Source, _ ingestion.Monitor) (*ingestion.Result, error) {
	r.started <- struct{}{}
	select {
	case <-r.release:
		return &ingestion.Result{}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestRunFlow_AcknowledgesWhileRunning(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	runner := &heldRunner{started: make(chan struct{}, 2), release: make(chan struct{})}
	d, err := dispatch.New(runner, source.NewStatic(), repos.Runs())
	require.NoError(t, err)
	defer d.Close()

	srv, err := New(repos.Subsidies(), d)
	require.NoError(t, err)

	post := func() string {
		rec := serve(srv, http.MethodPost, "/api/run-flow")
		require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
		var body struct {
			Success bool   `json:"success"`
			RunID   string `json:"run_id"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		return body.RunID
	}

	first := post()
	<-runner.started
	second := post()
	third := post()
	assert.NotEqual(t, first, second)
	assert.Equal(t, second, third)

	close(runner.release)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Wait(ctx))

	for _, id := range []string{first, second} {
		run, err := d.Status(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, core.RunStatusSucceeded, run.Status)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	srv, _, _ := setupServer(t)
	rec := serve(srv, http.MethodGet, "/api/runs/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListenAndServe_ShutsDownOnCancel(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	srv, err := New(repos.Subsidies(), newFakeRunner(), WithAddr("127.0.0.1:0"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
