package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retlint/retlint/internal/ir"
)

func finding(file, construct, evidence, severity string, line int) ir.Finding {
	return ir.Finding{
		RuleID: ir.RuleExplicitReturnType, File: file, Construct: construct,
		Evidence: evidence, Severity: severity, Line: line,
		Message: "Missing explicit return type on declaration; annotate the signature or cover it with a typed context.",
	}
}

func TestDiff(t *testing.T) {
	base := ir.Run{Findings: []ir.Finding{
		finding("a.ts", "kept", "function kept() {", "MEDIUM", 3),
		finding("a.ts", "fixed", "function fixed() {", "MEDIUM", 10),
		finding("b.ts", "moved", "const moved = () => {", "MEDIUM", 5),
	}}
	head := ir.Run{Findings: []ir.Finding{
		finding("a.ts", "kept", "function kept() {", "MEDIUM", 3),
		finding("b.ts", "moved", "const moved = () => {", "MEDIUM", 8), // shifted down
		finding("c.ts", "fresh", "function fresh() {", "MEDIUM", 1),
	}}

	d := diff("base", "head", &base, &head)

	assert.Equal(t, 1, d.Summary.NewCount)
	assert.Equal(t, 1, d.Summary.RemovedCount)
	assert.Equal(t, 1, d.Summary.ChangedCount)

	require.Len(t, d.New, 1)
	assert.Equal(t, "fresh", d.New[0].Construct)

	require.Len(t, d.Removed, 1)
	assert.Equal(t, "fixed", d.Removed[0].Construct)

	require.Len(t, d.Changed, 1)
	assert.Equal(t, []string{"line"}, d.Changed[0].Changed)
}

func TestDiff_IdenticalRuns(t *testing.T) {
	run := ir.Run{Findings: []ir.Finding{
		finding("a.ts", "f", "function f() {", "MEDIUM", 1),
	}}
	d := diff("x", "y", &run, &run)
	assert.Zero(t, d.Summary.NewCount)
	assert.Zero(t, d.Summary.RemovedCount)
	assert.Zero(t, d.Summary.ChangedCount)
}
