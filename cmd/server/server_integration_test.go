package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"moneypath/internal/config"
	"moneypath/internal/logging"
	"moneypath/internal/serverapp"
)

func TestServer_HealthAndReadinessExposeRequestID(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		res := app.request(http.MethodGet, path, nil, "")
		if res.Code != http.StatusOK {
			t.Fatalf("%s expected 200, got %d body=%s", path, res.Code, res.Body.String())
		}
		if rid := strings.TrimSpace(res.Header().Get("X-Request-Id")); rid == "" {
			t.Fatalf("%s missing X-Request-Id header", path)
		}
	}
}

func TestServer_PlayerLifecycle(t *testing.T) {
	app := newTestApp(t)

	createRes := app.json(http.MethodPost, "/api/players", map[string]any{
		"id":      "it1",
		"name":    "Integration Player",
		"path_id": "military",
		"goals":   []string{"debt_free"},
	})
	if createRes.Code != http.StatusOK {
		t.Fatalf("create player expected 200, got %d body=%s", createRes.Code, createRes.Body.String())
	}
	created := decodeBodyMap(t, createRes)
	if created["id"] != "it1" {
		t.Fatalf("expected player id it1, got %v", created["id"])
	}

	getRes := app.request(http.MethodGet, "/api/players/it1", nil, "")
	if getRes.Code != http.StatusOK {
		t.Fatalf("get player expected 200, got %d body=%s", getRes.Code, getRes.Body.String())
	}

	advRes := app.json(http.MethodPost, "/api/players/it1/advance", map[string]any{"months": 3})
	if advRes.Code != http.StatusOK {
		t.Fatalf("advance expected 200, got %d body=%s", advRes.Code, advRes.Body.String())
	}
	report := decodeBodyMap(t, advRes)
	if got := report["months_completed"]; got != float64(3) {
		t.Fatalf("expected 3 months completed, got %v body=%s", got, advRes.Body.String())
	}

	depRes := app.json(http.MethodPost, "/api/players/it1/savings/deposit", map[string]any{"amount": "200"})
	if depRes.Code != http.StatusOK {
		t.Fatalf("deposit expected 200, got %d body=%s", depRes.Code, depRes.Body.String())
	}

	wdRes := app.json(http.MethodPost, "/api/players/it1/savings/withdraw", map[string]any{"amount": "50"})
	if wdRes.Code != http.StatusOK {
		t.Fatalf("withdraw expected 200, got %d body=%s", wdRes.Code, wdRes.Body.String())
	}

	listRes := app.request(http.MethodGet, "/api/players", nil, "")
	if listRes.Code != http.StatusOK {
		t.Fatalf("list players expected 200, got %d", listRes.Code)
	}
	if !strings.Contains(listRes.Body.String(), `"it1"`) {
		t.Fatalf("expected player list to include it1, body=%s", listRes.Body.String())
	}

	histRes := app.request(http.MethodGet, "/api/players/it1/history", nil, "")
	if histRes.Code != http.StatusOK {
		t.Fatalf("history expected 200, got %d", histRes.Code)
	}
	if !strings.Contains(histRes.Body.String(), "month_advanced") {
		t.Fatalf("expected history to record month advances, body=%s", histRes.Body.String())
	}

	statsRes := app.request(http.MethodGet, "/api/stats", nil, "")
	if statsRes.Code != http.StatusOK {
		t.Fatalf("stats expected 200, got %d", statsRes.Code)
	}
	stats := decodeBodyMap(t, statsRes)
	if got := stats["months_advanced"]; got != float64(3) {
		t.Fatalf("expected stats to count 3 months, got %v", got)
	}
}

func TestServer_SnapshotRoundTripOverHTTP(t *testing.T) {
	app := newTestApp(t)

	createRes := app.json(http.MethodPost, "/api/players", map[string]any{
		"id":      "snap1",
		"name":    "Saver",
		"path_id": "military",
	})
	if createRes.Code != http.StatusOK {
		t.Fatalf("create player expected 200, got %d body=%s", createRes.Code, createRes.Body.String())
	}

	advRes := app.json(http.MethodPost, "/api/players/snap1/advance", map[string]any{"months": 1})
	if advRes.Code != http.StatusOK {
		t.Fatalf("advance expected 200, got %d body=%s", advRes.Code, advRes.Body.String())
	}
	saved := asMap(t, decodeBodyMap(t, advRes)["player"])
	savedCash := asString(t, saved["cash"])

	saveRes := app.json(http.MethodPost, "/api/players/snap1/saves", map[string]any{})
	if saveRes.Code != http.StatusOK {
		t.Fatalf("save expected 200, got %d body=%s", saveRes.Code, saveRes.Body.String())
	}
	token := asString(t, decodeBodyMap(t, saveRes)["token"])
	if token == "" {
		t.Fatalf("expected a snapshot token")
	}

	// Mutate the live state so the restore has something to undo.
	depRes := app.json(http.MethodPost, "/api/players/snap1/savings/deposit", map[string]any{"amount": "300"})
	if depRes.Code != http.StatusOK {
		t.Fatalf("deposit expected 200, got %d body=%s", depRes.Code, depRes.Body.String())
	}

	listRes := app.request(http.MethodGet, "/api/saves", nil, "")
	if listRes.Code != http.StatusOK {
		t.Fatalf("list saves expected 200, got %d", listRes.Code)
	}
	if !strings.Contains(listRes.Body.String(), token) {
		t.Fatalf("expected saves list to include %s, body=%s", token, listRes.Body.String())
	}

	restoreRes := app.json(http.MethodPost, "/api/saves/"+token+"/restore", map[string]any{})
	if restoreRes.Code != http.StatusOK {
		t.Fatalf("restore expected 200, got %d body=%s", restoreRes.Code, restoreRes.Body.String())
	}
	restored := decodeBodyMap(t, restoreRes)
	if got := asString(t, restored["cash"]); got != savedCash {
		t.Fatalf("expected restored cash %s, got %s", savedCash, got)
	}

	getRes := app.request(http.MethodGet, "/api/players/snap1", nil, "")
	if getRes.Code != http.StatusOK {
		t.Fatalf("get player expected 200, got %d", getRes.Code)
	}
	live := decodeBodyMap(t, getRes)
	if got := asString(t, live["cash"]); got != savedCash {
		t.Fatalf("expected live cash %s after restore, got %s", savedCash, got)
	}
}

func TestServer_AdminPageAndEmbeddedStatic(t *testing.T) {
	app := newTestApp(t)

	adminRes := app.request(http.MethodGet, "/_/admin", nil, "")
	if adminRes.Code != http.StatusOK {
		t.Fatalf("admin page expected 200, got %d", adminRes.Code)
	}
	body := adminRes.Body.String()
	if !strings.Contains(body, "moneypath") || !strings.Contains(body, "/api/players") {
		t.Fatalf("admin page missing expected content: %s", body)
	}

	routesRes := app.request(http.MethodGet, "/_/admin/routes.json", nil, "")
	if routesRes.Code != http.StatusOK {
		t.Fatalf("routes.json expected 200, got %d", routesRes.Code)
	}
	var routes []map[string]any
	if err := json.Unmarshal(routesRes.Body.Bytes(), &routes); err != nil {
		t.Fatalf("decode routes.json: %v", err)
	}
	if len(routes) == 0 {
		t.Fatalf("expected a non-empty route table")
	}

	for _, path := range []string{"/static/css/admin.css", "/static/js/admin.js"} {
		res := app.request(http.MethodGet, path, nil, "")
		if res.Code != http.StatusOK {
			t.Fatalf("embedded asset %s expected 200, got %d", path, res.Code)
		}
		if res.Body.Len() == 0 {
			t.Fatalf("embedded asset %s should not be empty", path)
		}
	}
}

func TestServer_ValidationAndNotFound(t *testing.T) {
	app := newTestApp(t)

	res := app.request(http.MethodGet, "/api/players/ghost", nil, "")
	if res.Code != http.StatusNotFound {
		t.Fatalf("unknown player expected 404, got %d body=%s", res.Code, res.Body.String())
	}

	createRes := app.json(http.MethodPost, "/api/players", map[string]any{
		"id":      "v1",
		"name":    "Validator",
		"path_id": "trade_school",
	})
	if createRes.Code != http.StatusOK {
		t.Fatalf("create player expected 200, got %d body=%s", createRes.Code, createRes.Body.String())
	}

	badMonths := app.json(http.MethodPost, "/api/players/v1/advance", map[string]any{"months": 2})
	if badMonths.Code != http.StatusBadRequest {
		t.Fatalf("advance months=2 expected 400, got %d body=%s", badMonths.Code, badMonths.Body.String())
	}

	badPath := app.json(http.MethodPost, "/api/players", map[string]any{
		"name":    "Lost",
		"path_id": "astronaut_school",
	})
	if badPath.Code != http.StatusBadRequest {
		t.Fatalf("unknown path expected 400, got %d body=%s", badPath.Code, badPath.Body.String())
	}

	badGame := app.json(http.MethodPost, "/api/players/v1/minigames", map[string]any{"game_id": "poker"})
	if badGame.Code != http.StatusBadRequest {
		t.Fatalf("unknown minigame expected 400, got %d body=%s", badGame.Code, badGame.Body.String())
	}

	badAmount := app.json(http.MethodPost, "/api/players/v1/savings/deposit", map[string]any{"amount": "-5"})
	if badAmount.Code != http.StatusBadRequest {
		t.Fatalf("negative deposit expected 400, got %d body=%s", badAmount.Code, badAmount.Body.String())
	}
}

func TestServer_ConfigEndpoint(t *testing.T) {
	app := newTestApp(t)

	res := app.request(http.MethodGet, "/api/config", nil, "")
	if res.Code != http.StatusOK {
		t.Fatalf("config expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"server"`) {
		t.Fatalf("expected config body to include server section, body=%s", res.Body.String())
	}
}

// --- helpers ---

type testApp struct {
	handler http.Handler
	logs    *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := loadTestConfig(t)

	// Keep the integration runs deterministic: no random events, no decay.
	quiet := config.Default()
	quiet.EventChance = 0
	quiet.AssetDecayPerMonth = 0
	cfg.Balance = &quiet

	var logs bytes.Buffer
	logger := logging.NewLogger("debug", &logs)

	h, err := serverapp.NewHandler(serverapp.Options{
		Config:        cfg,
		DataDir:       t.TempDir(),
		UseDiskStatic: false,
		Logger:        logger,
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	return &testApp{handler: h, logs: &logs}
}

func (a *testApp) json(method, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	return a.request(method, path, bytes.NewReader(b), "application/json")
}

func (a *testApp) request(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfgPath := filepath.Join(projectRoot(t), "moneypath_config.yml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load config %s: %v", cfgPath, err)
	}
	return cfg
}

func projectRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime.Caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

func decodeBodyMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode json body failed: %v body=%s", err, rec.Body.String())
	}
	return out
}

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	out, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T (%v)", v, v)
	}
	return out
}

func asString(t *testing.T, v any) string {
	t.Helper()
	s, ok := v.(string)
	if !ok {
		t.Fatalf("expected string, got %T (%v)", v, v)
	}
	return s
}
