package main

import (
	"errors"
	"strings"
	"testing"

	"relabel/internal/history"
)

func TestHistoryListAndClear(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded")

	for _, suffix := range []string{"first", "second"} {
		if _, _, err := runCLI(t, env.runArgs("--suffix", suffix), env.configPath); err != nil {
			t.Fatalf("relabel %s: %v", suffix, err)
		}
	}

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "Suffix")
	if strings.Index(out, "second") > strings.Index(out, "first") {
		t.Fatalf("expected newest run first:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"history", "--limit", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("history --limit: %v", err)
	}
	if strings.Contains(out, "first") {
		t.Fatalf("limit not applied:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"history", "show", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, "first")
	requireContains(t, out, env.dataset.LabelDir)

	if _, _, err := runCLI(t, []string{"history", "show", "99"}, env.configPath); !errors.Is(err, history.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	out, _, err = runCLI(t, []string{"history", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	requireContains(t, out, "Cleared 2 runs")

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}

func TestNoHistoryFlag(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env.runArgs("--no-history"), env.configPath); err != nil {
		t.Fatalf("relabel: %v", err)
	}
	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}
