package metrics

import (
	"math"

	"github.com/retlint/retlint/internal/ir"
)

// FileCoverage computes the share of a file's constructs that carry an
// explicit return type. A construct covered by a typed context counts as
// annotated; the type is supplied, just not inline.
func FileCoverage(f *ir.File) ir.Coverage {
	cov := ir.Coverage{Functions: len(f.Functions)}
	for i := range f.Functions {
		fn := &f.Functions[i]
		if fn.HasReturnAnnotation || fn.TypedContext {
			cov.Annotated++
		}
	}
	if cov.Functions > 0 {
		cov.Ratio = round2(float64(cov.Annotated) / float64(cov.Functions))
	}
	return cov
}

// RunCoverage aggregates coverage over every file in a run.
func RunCoverage(run *ir.Run) ir.Coverage {
	var total ir.Coverage
	for i := range run.Files {
		c := run.Files[i].Annotations.Coverage
		total.Functions += c.Functions
		total.Annotated += c.Annotated
	}
	if total.Functions > 0 {
		total.Ratio = round2(float64(total.Annotated) / float64(total.Functions))
	}
	return total
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
