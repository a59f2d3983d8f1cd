package bootstrap

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/duasite/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validConfig() AppConfig {
	return AppConfig{
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "duasite_test",
		SessionKey:    strings.Repeat("k", 40),
		SessionMaxAge: 24 * time.Hour,
		CSRFKey:       strings.Repeat("c", 32),
	}
}

func TestValidateConfig(t *testing.T) {
	dev := &config.CoreConfig{Env: "dev"}
	prod := &config.CoreConfig{Env: "prod"}

	tests := []struct {
		name    string
		core    *config.CoreConfig
		mutate  func(c *AppConfig)
		wantErr string
	}{
		{name: "valid", core: dev, mutate: func(c *AppConfig) {}},
		{name: "bad uri", core: dev, mutate: func(c *AppConfig) { c.MongoURI = "postgres://x" }, wantErr: "MongoDB URI"},
		{name: "empty session key", core: dev, mutate: func(c *AppConfig) { c.SessionKey = " " }, wantErr: "session_key"},
		{name: "short csrf key", core: dev, mutate: func(c *AppConfig) { c.CSRFKey = "short" }, wantErr: "csrf_key"},
		{name: "tiny max age", core: dev, mutate: func(c *AppConfig) { c.SessionMaxAge = time.Second }, wantErr: "session_max_age"},
		{name: "dev session key in prod", core: prod, mutate: func(c *AppConfig) { c.SessionKey = devSessionKey }, wantErr: "session_key"},
		{name: "dev csrf key in prod", core: prod, mutate: func(c *AppConfig) { c.CSRFKey = devCSRFKey }, wantErr: "csrf_key"},
		{name: "dev keys allowed in dev", core: dev, mutate: func(c *AppConfig) { c.SessionKey, c.CSRFKey = devSessionKey, devCSRFKey }},
		{name: "unknown audit mode", core: dev, mutate: func(c *AppConfig) { c.AuditLogAuth = "everything" }, wantErr: "audit_log_auth"},
		{name: "audit off", core: dev, mutate: func(c *AppConfig) { c.AuditLogAuth, c.AuditLogAdmin = "off", "log" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(tt.core, cfg, testLogger())
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestDevKeyLengths(t *testing.T) {
	if len(devCSRFKey) != 32 {
		t.Errorf("devCSRFKey length = %d, want 32", len(devCSRFKey))
	}
	if len(devSessionKey) < 32 {
		t.Errorf("devSessionKey length = %d, want >= 32", len(devSessionKey))
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://a.org, ,https://b.org ,")
	want := []string{"https://a.org", "https://b.org"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitList = %v, want %v", got, want)
	}
	if splitList("") != nil {
		t.Error("empty input should give nil")
	}
}

func TestStartupAndShutdown_DrainQueue(t *testing.T) {
	q := workers.NewQueue(testLogger(), 1, 4, time.Second)
	deps := DBDeps{Jobs: q}

	if err := Startup(context.Background(), nil, AppConfig{}, deps, testLogger()); err != nil {
		t.Fatalf("Startup: %v", err)
	}

	done := make(chan struct{})
	q.Enqueue(workers.Job{Name: "probe", Run: func(ctx context.Context) error {
		close(done)
		return nil
	}})

	if err := Shutdown(context.Background(), nil, AppConfig{}, deps, testLogger()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	select {
	case <-done:
	default:
		t.Error("queued job did not run before shutdown returned")
	}
}
