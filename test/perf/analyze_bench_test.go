package perf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retlint/retlint/internal/metrics"
	"github.com/retlint/retlint/internal/parser"
	"github.com/retlint/retlint/internal/rules"
)

const benchSample = `export function fetchUsers(): Promise<void> {
  return api.get('/users');
}

function transform(rows) {
  if (!rows.length) return [];
  return rows.map((r) => r.id);
}

const onClick = () => {
  console.log('clicked');
};

var compose = (f) => (g) => (x) => f(g(x));
`

func BenchmarkAnalyze_Small(b *testing.B) {
	dir := b.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bench.ts"), []byte(benchSample), 0o644); err != nil {
		b.Fatal(err)
	}

	rules.SetSettings(rules.Settings{
		Severity:          "MEDIUM",
		SeverityThreshold: "LOW",
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		run, _ := parser.Parse(dir)
		for j := range run.Files {
			run.Files[j].Annotations.Coverage = metrics.FileCoverage(&run.Files[j])
		}
		run.Context.Options = rules.DefaultOptions()
		run.Findings = rules.Evaluate(&run)
	}
}

func BenchmarkParseSource(b *testing.B) {
	content := []byte(benchSample)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.ParseSource("bench.ts", content); err != nil {
			b.Fatal(err)
		}
	}
}
