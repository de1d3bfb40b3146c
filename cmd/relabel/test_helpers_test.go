package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"relabel/internal/config"
	"relabel/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	dataset    *testsupport.Dataset
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	home := filepath.Join(testsupport.BaseDir(cfg), "home")
	testsupport.MkdirAll(t, home)
	t.Setenv("HOME", home)
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
	t.Setenv(config.EnvConfigPath, "")

	configPath := filepath.Join(testsupport.BaseDir(cfg), "relabel.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		dataset:    testsupport.NewDataset(t),
		configPath: configPath,
	}
}

func (e *cliTestEnv) runArgs(extra ...string) []string {
	args := append([]string{}, extra...)
	return append(args, e.dataset.ImageDir, e.dataset.LabelDir, e.dataset.SourceNames, e.dataset.TargetNames)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\noutput_dir = %q\nstate_dir = %q\n\n[history]\nenabled = %t\nkeep = %d\n",
		cfg.Paths.OutputDir,
		cfg.Paths.StateDir,
		cfg.History.Enabled,
		cfg.History.Keep,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
