package rules

import (
	"github.com/retlint/retlint/internal/ir"
)

// Rule describes the diagnostic this tool emits. There is exactly one; a
// general rule registry is out of scope.
type Rule struct {
	ID              string
	Summary         string
	DefaultSeverity string
}

func ExplicitReturnType() Rule {
	return Rule{
		ID:              ir.RuleExplicitReturnType,
		Summary:         "Function-like construct is missing an explicit return type annotation.",
		DefaultSeverity: "MEDIUM",
	}
}

// DefaultOptions matches the documented defaults: typed function expressions
// and higher-order functions are exempt out of the box, the rest is strict.
func DefaultOptions() ir.Options {
	return ir.Options{
		AllowTypedFunctionExpressions: true,
		AllowHigherOrderFunctions:     true,
	}
}

// Check is the return-type checker: a pure predicate over one classified
// construct. The exemptions are independent and short-circuit in order;
// evaluating the same construct twice with the same options always yields
// the same outcome.
func Check(fn *ir.Function, opts ir.Options) *ir.Finding {
	if opts.AllowExpressions && fn.ExpressionContext {
		return nil
	}
	if opts.AllowTypedFunctionExpressions && fn.TypedContext {
		return nil
	}
	if opts.AllowHigherOrderFunctions && fn.ReturnsFunction {
		return nil
	}
	if opts.AllowZeroOrSingleReturnStatement && singleEffectiveReturnType(fn.ReturnKinds) {
		return nil
	}
	if fn.HasReturnAnnotation {
		return nil
	}
	return &ir.Finding{
		Construct: fn.Name,
		Line:      fn.Line,
		Col:       fn.Col,
		RuleID:    ir.RuleExplicitReturnType,
		Message:   "Missing explicit return type on " + fn.Kind + "; annotate the signature or cover it with a typed context.",
		Evidence:  fn.Signature,
	}
}

// singleEffectiveReturnType reports whether the value-returning statements
// share at most one distinct kind. Undefined-like returns are already
// excluded from kinds and never count; unknown kinds unify with anything, so
// `return 1; return compute();` is still a single effective return type.
func singleEffectiveReturnType(kinds []string) bool {
	distinct := ""
	for _, k := range kinds {
		if k == ir.ReturnUnknown {
			continue
		}
		if distinct == "" {
			distinct = k
			continue
		}
		if k != distinct {
			return false
		}
	}
	return true
}
