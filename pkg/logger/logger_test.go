package logger

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func captureStdOut(fn func()) string {
	orig := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() {
		os.Stdout = orig
	}()

	fn()

	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	_ = r.Close()
	return buf.String()
}

func TestDetectEnv(t *testing.T) {
	t.Setenv("APP_ENV", "")
	if got := DetectEnv(); got != EnvDev {
		t.Fatalf("default should be dev, got %q", got)
	}

	t.Setenv("APP_ENV", "staging")
	if got := DetectEnv(); got != EnvStage {
		t.Fatalf("expected stage, got %q", got)
	}

	t.Setenv("APP_ENV", "production")
	if got := DetectEnv(); got != EnvProd {
		t.Fatalf("expected prod, got %q", got)
	}
}

func TestInitDevStdTextOutput(t *testing.T) {
	cfg := Config{
		Service:   "stream-service",
		Version:   "v0.1.0",
		Env:       EnvDev,
		Backend:   BackendStd,
		Level:     slog.LevelDebug,
		AddSource: true,
	}

	out := captureStdOut(func() {
		Init(cfg)
		slog.Info("Hello world")
	})

	if strings.Contains(out, "{") && strings.Contains(out, "}") {
		t.Fatalf("expected text output in dev/std, got JSON: %s", out)
	}
	if !strings.Contains(out, "Hello world") {
		t.Fatalf("message missing: %s", out)
	}
	if !strings.Contains(out, "service=stream-service") {
		t.Fatalf("service attr missing: %s", out)
	}
	if !strings.Contains(out, "env=dev") {
		t.Fatalf("env attr missing: %s", out)
	}
}

func TestInitProdZapJSONOutput(t *testing.T) {
	cfg := Config{
		Service: "stream-service",
		Version: "v0.1.0",
		Env:     EnvProd,
		Backend: BackendZap,
	}

	out := captureStdOut(func() {
		Init(cfg)
		slog.Info("Hello world")
	})

	if !strings.Contains(out, "{") || !strings.Contains(out, "}") {
		t.Fatalf("expected JSON output in prod/zap, got: %s", out)
	}
	if !strings.Contains(out, `"Hello world"`) {
		t.Fatalf("message missing: %s", out)
	}
	if !strings.Contains(out, `"service"`) || !strings.Contains(out, `"stream-service"`) {
		t.Fatalf("service attr missing: %s", out)
	}
}

func TestLFallsBackToDefault(t *testing.T) {
	def = nil
	t.Setenv("APP_ENV", "")

	_ = captureStdOut(func() {
		if L() == nil {
			t.Fatal("expected a logger")
		}
	})
}
