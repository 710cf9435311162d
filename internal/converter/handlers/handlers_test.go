package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fml2scene/internal/common/middleware"
	"fml2scene/internal/converter/mapper"
	"fml2scene/internal/converter/repository"
	"fml2scene/internal/converter/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wallProject = `{
  "project": {
    "id": 42,
    "name": "Studio",
    "floors": [{"id": 1, "designs": [{"id": 5, "walls": [{
      "a": {"x": 0, "y": 0}, "b": {"x": 500, "y": 0},
      "az": {"z": 0, "h": 250}, "bz": {"z": 0, "h": 250},
      "thickness": 10, "balance": 0.5,
      "openings": [{"type": "door", "refid": "door-std", "width": 80, "z": 0, "z_height": 200, "t": 0.5}]
    }], "areas": [{}]}]}]
  }
}`

type testEnv struct {
	app   *fiber.App
	repo  *repository.Repository
	store *storage.FileStorage
	dir   string
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	db, err := repository.OpenSQLite(filepath.Join(dir, "db", "conversions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.New(db)
	require.NoError(t, repo.Init(context.Background()))

	store := storage.NewFileStorage(filepath.Join(dir, "out"), storage.FormatJSON)

	app := fiber.New()
	NewHandler(mapper.DefaultOptions(), repo, store, nil).Register(app)
	return &testEnv{app: app, repo: repo, store: store, dir: dir}
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var out map[string]any
	if len(data) > 0 && data[0] == '{' {
		require.NoError(t, json.Unmarshal(data, &out))
	}
	return resp, out
}

func TestConvert(t *testing.T) {
	env := newEnv(t)

	resp, body := do(t, env.app, http.MethodPost, "/convert", wallProject)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	runID := body["run_id"].(string)
	assert.NotEmpty(t, runID)
	assert.Equal(t, runID, resp.Header.Get(middleware.RunIDHeader))

	lines := strings.Split(body["command_text"].(string), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "make_wall, id=0,"))
	assert.True(t, strings.HasPrefix(lines[1], "make_door, id=1000, wall0_id=0, wall1_id=-1, position_x=2.500000"))

	meta := body["metadata"].(map[string]any)
	assert.Equal(t, "door-std", meta["1000"].(map[string]any)["asset"])

	diags := body["diagnostics"].([]any)
	require.Len(t, diags, 1)
	assert.Equal(t, "areas", diags[0].(map[string]any)["property"])

	files := body["files"].([]any)
	assert.Len(t, files, 3)
	_, err := os.Stat(filepath.Join(env.dir, "out", runID, "floor-1-design-5-0.scenescript.txt"))
	assert.NoError(t, err)

	conv, err := env.repo.Get(context.Background(), runID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), conv.ProjectID)
	assert.Equal(t, 2, conv.CommandCount)
	assert.Equal(t, 1, conv.DiagnosticCount)
}

func TestConvertOptionsOverride(t *testing.T) {
	env := newEnv(t)

	body := strings.Replace(wallProject, `"project"`, `"options": {"snap_value": 0.5}, "project"`, 1)
	body = strings.Replace(body, `"x": 500`, `"x": 520`, 1)

	resp, out := do(t, env.app, http.MethodPost, "/convert", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, out["command_text"], "b_x=5.000000")
}

func TestConvertRejectsBadInput(t *testing.T) {
	env := newEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"invalid json", "{"},
		{"no project", `{}`},
		{"no floors", `{"project": {"floors": []}}`},
		{"zero thickness", strings.Replace(wallProject, `"thickness": 10`, `"thickness": 0`, 1)},
		{"t above one", strings.Replace(wallProject, `"t": 0.5`, `"t": 1.5`, 1)},
		{"negative snap", `{"options": {"snap_value": -1}, "project": {"floors": [{}]}}`},
		{"unknown opening", strings.Replace(wallProject, `"type": "door"`, `"type": "arch"`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, env.app, http.MethodPost, "/convert", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}

	list, err := env.repo.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestConversionArchive(t *testing.T) {
	env := newEnv(t)

	_, created := do(t, env.app, http.MethodPost, "/convert", wallProject)
	runID := created["run_id"].(string)

	resp, body := do(t, env.app, http.MethodGet, "/conversions/"+runID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, runID, body["id"])
	result := body["result"].(map[string]any)
	assert.Equal(t, created["command_text"], result["command_text"])

	resp, _ = do(t, env.app, http.MethodGet, "/conversions/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, env.app, http.MethodGet, "/conversions?project_id=42", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["conversions"], 1)

	resp, _ = do(t, env.app, http.MethodGet, "/conversions?limit=x", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestParse(t *testing.T) {
	env := newEnv(t)

	script := "# header\nmake_wall, id=0, a_x=0.000000\n\nmake_door, id=1000, wall0_id=0\nmake_wall, id=1\n"
	resp, body := do(t, env.app, http.MethodPost, "/parse", script)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Len(t, body["commands"], 3)
	assert.Equal(t, map[string]any{"make_wall": 2.0, "make_door": 1.0}, body["counts"])

	resp, _ = do(t, env.app, http.MethodPost, "/parse", "make_wall, id=0, id=1")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	env := newEnv(t)

	resp, body := do(t, env.app, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])

	resp, body = do(t, env.app, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", body["status"])

	do(t, env.app, http.MethodPost, "/convert", wallProject)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mresp, err := env.app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(mresp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `fml2scene_commands_total{command="make_door"} 1`)
	assert.Contains(t, string(data), `fml2scene_runs_total{outcome="ok"} 1`)
}

func TestWithoutArchive(t *testing.T) {
	app := fiber.New()
	NewHandler(mapper.DefaultOptions(), nil, nil, nil).Register(app)

	resp, body := do(t, app, http.MethodPost, "/convert", wallProject)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body["files"])

	resp, _ = do(t, app, http.MethodGet, "/conversions/x", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
