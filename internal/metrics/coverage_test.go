package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retlint/retlint/internal/ir"
)

func TestFileCoverage(t *testing.T) {
	f := ir.File{
		Path: "a.ts",
		Functions: []ir.Function{
			{Name: "annotated", HasReturnAnnotation: true},
			{Name: "typedCtx", TypedContext: true},
			{Name: "bare"},
			{Name: "alsoBare"},
		},
	}
	cov := FileCoverage(&f)
	assert.Equal(t, 4, cov.Functions)
	assert.Equal(t, 2, cov.Annotated)
	assert.Equal(t, 0.5, cov.Ratio)
}

func TestFileCoverage_Empty(t *testing.T) {
	f := ir.File{Path: "empty.ts"}
	cov := FileCoverage(&f)
	assert.Zero(t, cov.Functions)
	assert.Zero(t, cov.Ratio)
}

func TestRunCoverage(t *testing.T) {
	run := ir.Run{
		Files: []ir.File{
			{Annotations: ir.Anno{Coverage: ir.Coverage{Functions: 3, Annotated: 3, Ratio: 1}}},
			{Annotations: ir.Anno{Coverage: ir.Coverage{Functions: 1, Annotated: 0, Ratio: 0}}},
		},
	}
	total := RunCoverage(&run)
	assert.Equal(t, 4, total.Functions)
	assert.Equal(t, 3, total.Annotated)
	assert.Equal(t, 0.75, total.Ratio)
}
