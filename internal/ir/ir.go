package ir

import "time"

const Version = "1.0"

// RuleExplicitReturnType is the identifier of the single diagnostic kind
// this tool emits.
const RuleExplicitReturnType = "EXPLICIT-RETURN-TYPE"

// Function kinds.
const (
	KindDeclaration        = "declaration"
	KindFunctionExpression = "function-expression"
	KindArrowExpression    = "arrow-expression"
	KindObjectMethod       = "object-method"
	KindClassMethod        = "class-method"
)

// Return value kinds. Anything not syntactically classifiable is ReturnUnknown;
// unknown never counts as a distinct return type on its own.
const (
	ReturnNumber   = "number"
	ReturnString   = "string"
	ReturnBoolean  = "boolean"
	ReturnNull     = "null"
	ReturnArray    = "array"
	ReturnObject   = "object"
	ReturnFunction = "function"
	ReturnRegex    = "regex"
	ReturnUnknown  = "unknown"
)

type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Source    string    `json:"source,omitempty"`
	IRVersion string    `json:"ir_version,omitempty"`

	Context  Context   `json:"context"`
	Files    []File    `json:"files"`
	Findings []Finding `json:"findings,omitempty"`
}

// Context snapshots the settings a run was evaluated under, so stored runs
// reproduce the same findings when reloaded.
type Context struct {
	Options           Options `json:"options"`
	Severity          string  `json:"severity,omitempty"`           // severity assigned to findings
	SeverityThreshold string  `json:"severity_threshold,omitempty"` // minimum severity kept
}

// Options are the checker's independently togglable exemptions.
type Options struct {
	AllowExpressions                 bool `json:"allow_expressions" yaml:"allow_expressions"`
	AllowTypedFunctionExpressions    bool `json:"allow_typed_function_expressions" yaml:"allow_typed_function_expressions"`
	AllowHigherOrderFunctions        bool `json:"allow_higher_order_functions" yaml:"allow_higher_order_functions"`
	AllowZeroOrSingleReturnStatement bool `json:"allow_zero_or_single_return_statement" yaml:"allow_zero_or_single_return_statement"`
}

type File struct {
	Path        string     `json:"path"`
	Language    string     `json:"language"` // "ts"|"tsx"|"js"
	Functions   []Function `json:"functions"`
	Annotations Anno       `json:"annotations"`
}

type Anno struct {
	Coverage Coverage `json:"coverage,omitempty"`
}

// Coverage is the share of constructs in a file carrying an explicit return type.
type Coverage struct {
	Functions int     `json:"functions"`
	Annotated int     `json:"annotated"`
	Ratio     float64 `json:"ratio"`
}

// Function is one function-like construct, fully classified at parse time.
// Classification is computed once per construct; the checker only reads it.
type Function struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	EndLine int    `json:"end_line,omitempty"`

	Async     bool `json:"async,omitempty"`
	Generator bool `json:"generator,omitempty"`

	// HasReturnAnnotation is true when the signature itself carries a return type.
	HasReturnAnnotation bool `json:"has_return_annotation"`
	// TypedContext is true when an enclosing annotated variable, cast, or typed
	// container already supplies the construct's function type.
	TypedContext bool `json:"typed_context,omitempty"`
	// ExpressionContext is true for anonymous inline uses (call arguments,
	// array elements, IIFEs) that are not part of a named declaration.
	ExpressionContext bool `json:"expression_context,omitempty"`
	// ReturnsFunction is true when the construct's only or final action is to
	// return another function-like construct.
	ReturnsFunction bool `json:"returns_function,omitempty"`

	// UndefinedReturns counts bare `return`, `return undefined`, `return void x`.
	UndefinedReturns int `json:"undefined_returns,omitempty"`
	// ReturnKinds holds one coarse kind per value-returning statement.
	ReturnKinds []string `json:"return_kinds,omitempty"`

	// Signature is the first source line of the construct, used as evidence.
	Signature string `json:"signature,omitempty"`
}

type Finding struct {
	ID        string         `json:"id"`
	File      string         `json:"file"`
	Construct string         `json:"construct,omitempty"`
	Line      int            `json:"line"`
	Col       int            `json:"col"`
	RuleID    string         `json:"rule_id"`
	Severity  string         `json:"severity"` // LOW|MEDIUM|HIGH
	Message   string         `json:"message"`
	Evidence  string         `json:"evidence,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
