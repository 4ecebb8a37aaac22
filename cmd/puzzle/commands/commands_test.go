package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd, a := newRootCommand("test", "none", &stdout, &stderr)
	cmd.SetArgs(append(args, "--log-level", "error", "--log-format", "json"))

	err := cmd.ExecuteContext(context.Background())
	if terr := a.teardown(context.Background()); terr != nil {
		t.Errorf("teardown failed: %v", terr)
	}
	return stdout.String(), err
}

func TestSolve_OneMove(t *testing.T) {
	out, err := run(t, "solve", "--board", "123/456/708")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !strings.Contains(out, "Initial") || !strings.Contains(out, "Step 1") {
		t.Errorf("expected both boards to be drawn:\n%s", out)
	}
	if !strings.Contains(out, "Solved in 1 moves with astar") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestSolve_AlgorithmFlag(t *testing.T) {
	out, err := run(t, "solve", "--board", "813/402/765", "--algorithm", "dijkstra", "-q")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if strings.Contains(out, "Initial") {
		t.Error("--quiet must suppress the boards")
	}
	if !strings.Contains(out, "with dijkstra") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestSolve_Scrambled(t *testing.T) {
	out, err := run(t, "solve", "--seed", "7", "--moves", "10", "-q")
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !strings.Contains(out, "Solved in") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestSolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad board", []string{"solve", "--board", "12345"}},
		{"bad algorithm", []string{"solve", "--algorithm", "bfs"}},
		{"bad heuristic", []string{"solve", "--heuristic", "euclid"}},
		{"bad store", []string{"solve", "--store", "redis"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestStep(t *testing.T) {
	t.Run("completes", func(t *testing.T) {
		out, err := run(t, "step", "--board", "123/456/708", "--every", "1")
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}
		if !strings.Contains(out, "Solved in 1 moves after 2 ticks") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("stops early", func(t *testing.T) {
		out, err := run(t, "step", "--board", "813/402/765", "--max-ticks", "3")
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}
		if !strings.Contains(out, "Stopped after 3 ticks") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})
}

func TestHistory_SQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	if _, err := run(t, "solve", "--board", "123/456/708", "-q", "--store", "sqlite", "--dsn", db); err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if _, err := run(t, "solve", "--board", "123/405/786", "-q", "--algorithm", "best-first", "--store", "sqlite", "--dsn", db); err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	out, err := run(t, "history", "--store", "sqlite", "--dsn", db)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 runs, got:\n%s", out)
	}
	if !strings.Contains(lines[1], "best-first") || !strings.Contains(lines[2], "astar") {
		t.Errorf("runs not listed newest first:\n%s", out)
	}

	runID := strings.Fields(lines[2])[0]
	out, err = run(t, "history", "show", runID, "--store", "sqlite", "--dsn", db)
	if err != nil {
		t.Fatalf("history show failed: %v", err)
	}
	if !strings.Contains(out, "1 moves with astar") {
		t.Errorf("unexpected show output:\n%s", out)
	}

	if _, err := run(t, "history", "rm", runID, "--store", "sqlite", "--dsn", db); err != nil {
		t.Fatalf("history rm failed: %v", err)
	}
	if _, err := run(t, "history", "show", runID, "--store", "sqlite", "--dsn", db); err == nil {
		t.Error("expected deleted run to be gone")
	}
}

func TestHistory_EmptyMemory(t *testing.T) {
	out, err := run(t, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "No recorded runs.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
