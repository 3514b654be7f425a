package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/config"
	"github.com/Abraxas-365/resumeforge/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/resumeforge/pkg/ratelimit/ratelimitmemory"
	"github.com/Abraxas-365/resumeforge/pkg/resume/extract"
	"github.com/Abraxas-365/resumeforge/pkg/resume/render"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumeapi"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumeinfra"
	"github.com/Abraxas-365/resumeforge/pkg/resume/resumesrv"
	"github.com/Abraxas-365/resumeforge/pkg/resume/rewrite"
)

func testContainer(t *testing.T) (*Container, string) {
	t.Helper()
	enhancedDir := t.TempDir()
	uploads, err := fsxlocal.NewLocalFileSystem(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	enhanced, err := fsxlocal.NewLocalFileSystem(enhancedDir)
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			AppName:          "Resume Forge",
			Version:          "1.2.3",
			Environment:      "test",
			SecretKey:        "secret",
			MaxContentLength: 1 << 20,
			CORSOrigins:      "*",
		},
		AI:        config.AIConfig{Provider: config.ProviderGemini, GeminiAPIKey: "key"},
		RateLimit: config.RateLimitConfig{Requests: 5, Window: 5 * time.Minute},
	}

	c := &Container{
		Config:     cfg,
		Uploads:    uploads,
		Enhanced:   enhanced,
		Repository: resumeinfra.NewMemoryRepository(),
		Limiter:    ratelimitmemory.New(5, 5*time.Minute),
	}
	c.ResumeService = resumesrv.NewService(uploads, enhanced, extract.New(nil), rewrite.NewAIEnhancer(nil, nil), render.New(), c.Repository)
	c.Handlers = resumeapi.NewHandlers(c.ResumeService, resumeapi.Config{
		AppName: cfg.Server.AppName,
		Limiter: c.Limiter,
		Window:  cfg.RateLimit.Window,
	})
	return c, enhancedDir
}

func getJSON(t *testing.T, c *Container, target string) (int, map[string]any, http.Header) {
	t.Helper()
	resp, err := newApp(c).Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return resp.StatusCode, body, resp.Header
}

func TestHealthHealthy(t *testing.T) {
	c, _ := testContainer(t)
	c.probes = []probe{{name: "redis", check: func(context.Context) error { return nil }}}

	status, body, _ := getJSON(t, c, "/health")
	if status != http.StatusOK || body["status"] != "healthy" || body["version"] != "1.2.3" {
		t.Fatalf("status = %d body = %v", status, body)
	}
	if body["message"] != "Resume Enhancement System is running" {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestHealthMissingAPIKey(t *testing.T) {
	c, _ := testContainer(t)
	c.Config.AI.GeminiAPIKey = ""

	status, body, _ := getJSON(t, c, "/health")
	if status != http.StatusInternalServerError || body["message"] != "API key not configured" {
		t.Fatalf("status = %d body = %v", status, body)
	}
}

func TestHealthMissingDirectory(t *testing.T) {
	c, dir := testContainer(t)
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}

	status, body, _ := getJSON(t, c, "/health")
	if status != http.StatusInternalServerError || body["message"] != "Required directories missing" {
		t.Fatalf("status = %d body = %v", status, body)
	}
}

func TestHealthDegradedDependency(t *testing.T) {
	c, _ := testContainer(t)
	c.probes = []probe{
		{name: "redis", check: func(context.Context) error { return nil }},
		{name: "database", check: func(context.Context) error { return errors.New("connection refused") }},
	}

	status, body, _ := getJSON(t, c, "/health")
	if status != http.StatusServiceUnavailable || body["status"] != "degraded" {
		t.Fatalf("status = %d body = %v", status, body)
	}
	checks := body["checks"].(map[string]any)
	if checks["database"] != "unhealthy" || checks["redis"] != "healthy" {
		t.Fatalf("checks = %v", checks)
	}
}

func TestUnknownRoute(t *testing.T) {
	c, _ := testContainer(t)

	status, body, header := getJSON(t, c, "/api/v1/nope")
	if status != http.StatusNotFound || body["code"] != "NOT_FOUND" {
		t.Fatalf("status = %d body = %v", status, body)
	}
	if id := header.Get("X-Request-ID"); id == "" || body["request_id"] != id {
		t.Fatalf("request id header %q body %v", id, body["request_id"])
	}
}

func TestCookieKey(t *testing.T) {
	key, err := base64.StdEncoding.DecodeString(cookieKey("secret"))
	if err != nil || len(key) != 32 {
		t.Fatalf("key len = %d err = %v", len(key), err)
	}
	if cookieKey("secret") == cookieKey("other") {
		t.Fatal("keys should differ per secret")
	}
}
