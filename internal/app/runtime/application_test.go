package runtime

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/odpi/itinfra/internal/config"
	"github.com/odpi/itinfra/internal/middleware"
)

const outTopicPath = "/servers/cocoMDS1/open-metadata/access-services/it-infrastructure/topics/out-topic"

const validValuesPath = "/servers/cocoMDS1/open-metadata/access-services/it-infrastructure/users/garygeeke/valid-values"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.AuditFile = filepath.Join(t.TempDir(), "audit.jsonl")
	cfg.Logging.Output = "stderr"
	cfg.Logging.Level = "error"
	return cfg
}

func serve(t *testing.T, a *Application, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestApplicationServesHealthAndAudits(t *testing.T) {
	cfg := testConfig(t)
	a, err := NewApplication(cfg, "")
	if err != nil {
		t.Fatalf("new application: %v", err)
	}
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	rec := serve(t, a, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
	var health struct {
		Status  string   `json:"status"`
		Servers []string `json:"servers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "ok" || len(health.Servers) != 1 || health.Servers[0] != "cocoMDS1" {
		t.Fatalf("unexpected health %+v", health)
	}

	rec = serve(t, a, httptest.NewRequest(http.MethodGet, validValuesPath, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("valid values status = %d body=%s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Trace-ID") == "" {
		t.Fatalf("tracing middleware did not set a trace id")
	}

	f, err := os.Open(cfg.Server.AuditFile)
	if err != nil {
		t.Fatalf("open audit file: %v", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		t.Fatalf("audit file is empty")
	}
	if !strings.Contains(scanner.Text(), `"userId":"garygeeke"`) {
		t.Fatalf("unexpected audit line %s", scanner.Text())
	}
}

func TestApplicationRequiresBearerTokenWhenAuthEnabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.Issuer = "itinfra"
	a, err := NewApplication(cfg, "")
	if err != nil {
		t.Fatalf("new application: %v", err)
	}
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	rec := serve(t, a, httptest.NewRequest(http.MethodGet, validValuesPath, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d", rec.Code)
	}

	token, err := middleware.NewToken("test-secret", "itinfra", "garygeeke", time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, validValuesPath, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	if rec := serve(t, a, req); rec.Code != http.StatusOK {
		t.Fatalf("status with token = %d body=%s", rec.Code, rec.Body.String())
	}

	other, _ := middleware.NewToken("test-secret", "itinfra", "erinoverview", time.Minute)
	req = httptest.NewRequest(http.MethodGet, validValuesPath, nil)
	req.Header.Set("Authorization", "Bearer "+other)
	if rec := serve(t, a, req); rec.Code != http.StatusForbidden {
		t.Fatalf("status for another user's path = %d", rec.Code)
	}
}

func TestOutTopicRequiresBearerTokenWhenAuthEnabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.Issuer = "itinfra"
	cfg.Events.WebSocket = true
	a, err := NewApplication(cfg, "")
	if err != nil {
		t.Fatalf("new application: %v", err)
	}
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	if rec := serve(t, a, httptest.NewRequest(http.MethodGet, outTopicPath, nil)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("out-topic without token = %d", rec.Code)
	}

	token, err := middleware.NewToken("test-secret", "itinfra", "garygeeke", time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, outTopicPath, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	// Authenticated but not a websocket handshake, so the upgrade is refused.
	if rec := serve(t, a, req); rec.Code != http.StatusBadRequest {
		t.Fatalf("out-topic with token = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestApplicationRunAndShutdown(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit.RequestsPerSecond = 50
	a, err := NewApplication(cfg, "")
	if err != nil {
		t.Fatalf("new application: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not return after cancel")
	}
	if err := a.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if names := a.Services().Registry.Names(); len(names) != 0 {
		t.Fatalf("servers still registered after shutdown: %v", names)
	}
}

func TestOpenDatabaseValidatesConfig(t *testing.T) {
	if _, err := openDatabase(config.DatabaseConfig{}); err == nil {
		t.Fatalf("expected missing driver to fail")
	}
	if _, err := openDatabase(config.DatabaseConfig{Driver: "postgres"}); err == nil {
		t.Fatalf("expected missing dsn to fail")
	}
	if _, err := openDatabase(config.DatabaseConfig{Driver: "no-such-driver", DSN: "x"}); err == nil {
		t.Fatalf("expected unknown driver to fail")
	}
}

func TestNewApplicationRejectsBadRedisURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.Events.RedisURL = "not-a-url://"
	if _, err := NewApplication(cfg, ""); err == nil {
		t.Fatalf("expected bad redis url to fail")
	}
}
