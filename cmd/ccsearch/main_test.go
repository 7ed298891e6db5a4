package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	apppkg "github.com/hyperifyio/ccsearch/internal/app"
	"github.com/hyperifyio/ccsearch/internal/index"
)

// Smoke test: run completes a dry run with minimal config and no network.
func TestRun_DryRun_NoError(t *testing.T) {
	cfg := apppkg.Config{
		DryRun: true,
		Plain:  true,
		Groups: []apppkg.QueryGroup{{Name: "smoke", Queries: []string{"pstu.ru"}}},
	}
	if err := run(cfg); err != nil {
		t.Fatalf("run error: %v", err)
	}
}

// run with a file-backed index provider processes queries without a server.
func TestRun_FileProvider_NoError(t *testing.T) {
	dir := t.TempDir()
	recordsPath := filepath.Join(dir, "records.json")
	b, err := json.Marshal(map[string][]index.Record{"pstu.ru": {}})
	if err != nil {
		t.Fatalf("marshal records: %v", err)
	}
	if err := os.WriteFile(recordsPath, b, 0o644); err != nil {
		t.Fatalf("write records: %v", err)
	}

	cfg := apppkg.Config{
		IndexFile:     recordsPath,
		ArchiveURL:    "http://archive.invalid/",
		Plain:         true,
		FetchInterval: time.Millisecond,
		Groups:        []apppkg.QueryGroup{{Name: "smoke", Queries: []string{"pstu.ru"}}},
	}
	if err := run(cfg); err != nil {
		t.Fatalf("run error: %v", err)
	}
}

func TestRun_InvalidConfig_Error(t *testing.T) {
	if err := run(apppkg.Config{MaxRecords: -2}); err == nil {
		t.Fatalf("expected error for invalid config")
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("CCSEARCH_TEST_STR", "value")
	t.Setenv("CCSEARCH_TEST_INT", "11")
	t.Setenv("CCSEARCH_TEST_DUR", "3s")
	t.Setenv("CCSEARCH_TEST_BOOL", "yes")

	if got := envStr("CCSEARCH_TEST_STR", "def"); got != "value" {
		t.Fatalf("envStr = %q", got)
	}
	if got := envStr("CCSEARCH_TEST_ABSENT", "def"); got != "def" {
		t.Fatalf("envStr default = %q", got)
	}
	if got := envInt("CCSEARCH_TEST_INT", 1); got != 11 {
		t.Fatalf("envInt = %d", got)
	}
	if got := envInt("CCSEARCH_TEST_ABSENT", 1); got != 1 {
		t.Fatalf("envInt default = %d", got)
	}
	if got := envDur("CCSEARCH_TEST_DUR", time.Second); got != 3*time.Second {
		t.Fatalf("envDur = %s", got)
	}
	if got := envBool("CCSEARCH_TEST_BOOL", false); !got {
		t.Fatalf("envBool should honor yes")
	}
	if got := envBool("CCSEARCH_TEST_ABSENT", true); !got {
		t.Fatalf("envBool default lost")
	}
}
