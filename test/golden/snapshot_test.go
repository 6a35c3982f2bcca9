package golden

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/retlint/retlint/internal/ir"
	"github.com/retlint/retlint/internal/metrics"
	"github.com/retlint/retlint/internal/parser"
	"github.com/retlint/retlint/internal/rules"
	"github.com/retlint/retlint/internal/shared"
)

var update = flag.Bool("update", false, "update golden snapshot")

const goldenFile = "expected.json"

const sampleWebApp = `export function fetchCount(): number {
  return 42;
}

function untyped(flag) {
  if (flag) {
    return 1;
  }
  return Math.random();
}

const handler = () => 'unannotated';

let typedFn: () => string = () => 'ok';

var makeAdder = (x) => (y: number): number => x + y;

node.addEventListener('click', () => {});
`

func TestGolden_WebAppSnapshot(t *testing.T) {
	// Build a temp input dir
	dir := t.TempDir()
	in := filepath.Join(dir, "golden.ts")
	if err := os.WriteFile(in, []byte(sampleWebApp), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	// Parse → Run
	run, _ := parser.Parse(dir)

	// Config defaults
	cfg := shared.DefaultConfig()

	// Rules settings
	rules.SetSettings(rules.Settings{
		Severity:          cfg.Rule.Severity,
		SeverityThreshold: cfg.Rule.SeverityThreshold,
	})

	// Context
	run.ID = "run-golden" // stable id for snapshot
	run.StartedAt = time.Time{}
	run.Source = "samples/web-app"
	run.IRVersion = ir.Version
	run.Context.Options = cfg.Rule.Options
	run.Context.Severity = cfg.Rule.Severity
	run.Context.SeverityThreshold = cfg.Rule.SeverityThreshold

	// Coverage annotate
	for i := range run.Files {
		run.Files[i].Annotations.Coverage = metrics.FileCoverage(&run.Files[i])
	}

	// Evaluate rule
	run.Findings = rules.Evaluate(&run)

	// Normalize volatile fields before snapshot
	norm := normalize(run)

	// Serialize pretty. Escaping is off so evidence like `() =>` stays
	// literal in the snapshot instead of `=\u003e`.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(norm); err != nil {
		t.Fatalf("marshal got: %v", err)
	}
	got := buf.Bytes()
	if bytes.Contains(got, []byte(`\u003e`)) {
		t.Fatalf("snapshot evidence must stay literal, got escaped \\u003e")
	}

	if *update {
		if err := os.WriteFile(goldenFile, got, 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		t.Logf("updated %s", goldenFile)
		return
	}

	want, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("read golden (%s): %v\nRun with: go test ./test/golden -run TestGolden_WebAppSnapshot -args -update", goldenFile, err)
	}

	if !bytes.Equal(bytes.TrimSpace(got), bytes.TrimSpace(want)) {
		tmp := filepath.Join(t.TempDir(), "got.json")
		_ = os.WriteFile(tmp, got, 0o644)
		t.Fatalf("golden mismatch.\n  golden: %s\n  actual: %s\nTip: update with\n  go test ./test/golden -run TestGolden_WebAppSnapshot -count=1 -args -update", goldenFile, tmp)
	}
}

type runLite struct {
	ID        string        `json:"id"`
	StartedAt string        `json:"started_at"`
	Source    string        `json:"source,omitempty"`
	IRVersion string        `json:"ir_version,omitempty"`
	Context   ir.Context    `json:"context"`
	Files     []fileLite    `json:"files"`
	Findings  []findingLite `json:"findings"`
}

type fileLite struct {
	Path     string      `json:"path"`
	Language string      `json:"language"`
	Coverage ir.Coverage `json:"coverage"`
}

type findingLite struct {
	RuleID    string `json:"rule_id"`
	Severity  string `json:"severity"`
	File      string `json:"file"`
	Construct string `json:"construct,omitempty"`
	Line      int    `json:"line"`
	Message   string `json:"message"`
	Evidence  string `json:"evidence,omitempty"`
}

// normalize removes volatile fields (IDs, timestamps, temp dir paths) and
// sorts deterministically.
func normalize(run ir.Run) runLite {
	files := make([]fileLite, 0, len(run.Files))
	for _, f := range run.Files {
		files = append(files, fileLite{
			Path:     filepath.Base(f.Path),
			Language: f.Language,
			Coverage: f.Annotations.Coverage,
		})
	}
	sort.Slice(files, func(i, k int) bool { return files[i].Path < files[k].Path })

	finds := make([]findingLite, 0, len(run.Findings))
	for _, f := range run.Findings {
		finds = append(finds, findingLite{
			RuleID:    f.RuleID,
			Severity:  f.Severity,
			File:      filepath.Base(f.File),
			Construct: f.Construct,
			Line:      f.Line,
			Message:   f.Message,
			Evidence:  f.Evidence,
		})
	}
	sevRank := map[string]int{"HIGH": 3, "MEDIUM": 2, "LOW": 1}
	sort.Slice(finds, func(i, k int) bool {
		si, sk := sevRank[finds[i].Severity], sevRank[finds[k].Severity]
		if si != sk {
			return si > sk
		}
		if finds[i].File != finds[k].File {
			return finds[i].File < finds[k].File
		}
		return finds[i].Line < finds[k].Line
	})

	return runLite{
		ID:        "run-golden",
		StartedAt: "", // zeroed
		Source:    run.Source,
		IRVersion: run.IRVersion,
		Context:   run.Context,
		Files:     files,
		Findings:  finds,
	}
}
