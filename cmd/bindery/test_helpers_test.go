package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"bindery/internal/config"
	"bindery/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

// setupCLITestEnv prepares an isolated HOME, a catalog data file, and a
// config file pointing at them.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t)
	testsupport.WriteCatalog(t, cfg.Catalog.Path, testsupport.SampleRecords())

	configPath := filepath.Join(homeDir, ".config", "bindery", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[server]\nbind = %q\nlock_dir = %q\n\n[catalog]\npath = %q\n\n"+
			"[naver]\nclient_id = %q\nclient_secret = %q\nbase_url = %q\n\n"+
			"[cache]\nenabled = %t\npath = %q\n\n[logging]\nlevel = \"error\"\n",
		cfg.Server.Bind,
		cfg.Server.LockDir,
		cfg.Catalog.Path,
		cfg.Naver.ClientID,
		cfg.Naver.ClientSecret,
		cfg.Naver.BaseURL,
		cfg.Cache.Enabled,
		cfg.Cache.Path,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// newBookSearchStub serves a fixed item set for any query, in the book
// search wire shape.
func newBookSearchStub(t *testing.T, items []map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"total":   len(items),
			"start":   1,
			"display": len(items),
			"items":   items,
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Errorf("encode stub payload: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}
