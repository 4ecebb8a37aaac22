package emit

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestZerologEmitter_Levels(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewZerologEmitter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	emitter.Emit(Event{RunID: "run-001", Step: 1, Node: 0, Msg: "node_expanded", Meta: map[string]interface{}{"g": 0.0}})
	emitter.Emit(Event{RunID: "run-001", Step: 2, Node: 3, Msg: "goal_found"})
	emitter.Emit(Event{RunID: "run-001", Step: 3, Node: 4, Msg: "expansion_failed", Meta: map[string]interface{}{"error": "boom"}})

	lines := decodeLines(t, &buf)
	if len(lines) != 3 {
		t.Fatalf("expected 3 log lines, got %d", len(lines))
	}

	wantLevels := []string{"debug", "info", "error"}
	for i, want := range wantLevels {
		if lines[i]["level"] != want {
			t.Errorf("line %d: level = %v, want %s", i, lines[i]["level"], want)
		}
	}
	if lines[1]["message"] != "goal_found" {
		t.Errorf("message = %v", lines[1]["message"])
	}
	if lines[0]["run_id"] != "run-001" || lines[0]["g"] != 0.0 {
		t.Errorf("unexpected fields: %v", lines[0])
	}
	if lines[2]["error"] != "boom" {
		t.Errorf("error field = %v", lines[2]["error"])
	}
}

func TestZerologEmitter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewZerologEmitter(zerolog.New(&buf).Level(zerolog.InfoLevel))

	emitter.Emit(Event{RunID: "run-001", Msg: "node_expanded"})
	emitter.Emit(Event{RunID: "run-001", Msg: "frontier_exhausted"})

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected only the info event, got %d lines", len(lines))
	}
	if lines[0]["message"] != "frontier_exhausted" {
		t.Errorf("message = %v", lines[0]["message"])
	}
}
