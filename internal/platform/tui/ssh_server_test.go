package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048/internal/config"
)

func testServerConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Address = "127.0.0.1:0"
	cfg.Server.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")
	return cfg
}

func TestResolveHostKeyPath(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "dir", "key")

	got, err := resolveHostKeyPath(want)
	if err != nil {
		t.Fatalf("resolveHostKeyPath() error = %v", err)
	}
	if got != want {
		t.Errorf("resolveHostKeyPath() = %q, want %q", got, want)
	}
	if info, err := os.Stat(filepath.Dir(want)); err != nil || !info.IsDir() {
		t.Errorf("key directory was not created: %v", err)
	}
}

func TestNewSSHServer(t *testing.T) {
	cfg := testServerConfig(t)
	cfg.Server.MetricsAddress = "127.0.0.1:0"

	srv, err := NewSSHServer(cfg, openStore(t), log.New(os.Stderr))
	if err != nil {
		t.Fatalf("NewSSHServer() error = %v", err)
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
	if srv.metrics == nil || srv.rec == nil {
		t.Error("metrics address set but metrics server missing")
	}
	if _, err := os.Stat(cfg.Server.HostKeyPath); err != nil {
		t.Errorf("host key not generated: %v", err)
	}
}

func TestNewSSHServerWithoutMetrics(t *testing.T) {
	srv, err := NewSSHServer(testServerConfig(t), nil, nil)
	if err != nil {
		t.Fatalf("NewSSHServer() error = %v", err)
	}
	if srv.metrics != nil || srv.rec != nil {
		t.Error("metrics server created without an address")
	}
}

func TestSSHServerStopsOnContext(t *testing.T) {
	srv, err := NewSSHServer(testServerConfig(t), nil, log.New(os.Stderr))
	if err != nil {
		t.Fatalf("NewSSHServer() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe() did not return after cancel")
	}
}
