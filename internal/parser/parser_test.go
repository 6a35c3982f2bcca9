package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retlint/retlint/internal/ir"
)

func parseTS(t *testing.T, src string) ir.File {
	t.Helper()
	f, err := ParseSource("test.ts", []byte(src))
	require.NoError(t, err)
	return f
}

func find(t *testing.T, f ir.File, name string) *ir.Function {
	t.Helper()
	for i := range f.Functions {
		if f.Functions[i].Name == name {
			return &f.Functions[i]
		}
	}
	t.Fatalf("construct %q not found in %+v", name, f.Functions)
	return nil
}

func TestParse_DeclarationKinds(t *testing.T) {
	f := parseTS(t, `
function plain() {}
const arrow = () => {};
const expr = function () {};
class C {
  method() {}
}
const obj = {
  shorthand() {},
};
`)
	assert.Equal(t, ir.KindDeclaration, find(t, f, "plain").Kind)
	assert.Equal(t, ir.KindArrowExpression, find(t, f, "arrow").Kind)
	assert.Equal(t, ir.KindFunctionExpression, find(t, f, "expr").Kind)
	assert.Equal(t, ir.KindClassMethod, find(t, f, "method").Kind)
	assert.Equal(t, ir.KindObjectMethod, find(t, f, "shorthand").Kind)
}

func TestParse_ReturnAnnotation(t *testing.T) {
	f := parseTS(t, `
function typed(): void {}
function untyped() {}
const arrowTyped = (): number => 1;
`)
	assert.True(t, find(t, f, "typed").HasReturnAnnotation)
	assert.False(t, find(t, f, "untyped").HasReturnAnnotation)
	assert.True(t, find(t, f, "arrowTyped").HasReturnAnnotation)
}

func TestParse_TypedContext(t *testing.T) {
	f := parseTS(t, `
type FuncType = () => string;
let arrowFn: FuncType = () => 'test';
let bare = () => 'test';
const cast = (() => 1) as FuncType;
`)
	assert.True(t, find(t, f, "arrowFn").TypedContext)
	assert.False(t, find(t, f, "bare").TypedContext)
	assert.True(t, find(t, f, "cast").TypedContext)
}

func TestParse_ExpressionContext(t *testing.T) {
	f := parseTS(t, `
node.addEventListener('click', () => {});
const assigned = () => {};
function decl() {}
`)
	var inline *ir.Function
	for i := range f.Functions {
		if f.Functions[i].Name == "(anonymous)" {
			inline = &f.Functions[i]
		}
	}
	require.NotNil(t, inline, "inline callback not extracted")
	assert.True(t, inline.ExpressionContext)
	assert.False(t, find(t, f, "assigned").ExpressionContext)
	assert.False(t, find(t, f, "decl").ExpressionContext)
}

func TestParse_HigherOrder(t *testing.T) {
	f := parseTS(t, `
var arrowFn = () => (): void => {};
function factory() {
  return function (): number { return 1; };
}
function notHigher() {
  const inner = () => {};
  return 1;
}
`)
	outer := find(t, f, "arrowFn")
	assert.True(t, outer.ReturnsFunction)

	assert.True(t, find(t, f, "factory").ReturnsFunction)
	assert.False(t, find(t, f, "notHigher").ReturnsFunction)

	// every nested construct is extracted independently
	inner := find(t, f, "inner")
	assert.Equal(t, ir.KindArrowExpression, inner.Kind)
}

func TestParse_ReturnClassification(t *testing.T) {
	f := parseTS(t, `
function undefinedLike(a) {
  if (a) return;
  if (a > 1) return undefined;
  return void 0;
}
function singleKind(a) {
  if (a) return 1;
  return Math.random();
}
function mixedKinds(a) {
  if (a) return 'test';
  return 1;
}
`)
	u := find(t, f, "undefinedLike")
	assert.Equal(t, 3, u.UndefinedReturns)
	assert.Empty(t, u.ReturnKinds)

	s := find(t, f, "singleKind")
	assert.Equal(t, []string{ir.ReturnNumber, ir.ReturnUnknown}, s.ReturnKinds)

	m := find(t, f, "mixedKinds")
	assert.Equal(t, []string{ir.ReturnString, ir.ReturnNumber}, m.ReturnKinds)
}

func TestParse_NestedReturnsNotCounted(t *testing.T) {
	f := parseTS(t, `
function outer() {
  const inner = () => { return 'deep'; };
  inner();
}
`)
	o := find(t, f, "outer")
	assert.Empty(t, o.ReturnKinds)
	assert.Zero(t, o.UndefinedReturns)

	i := find(t, f, "inner")
	assert.Equal(t, []string{ir.ReturnString}, i.ReturnKinds)
}

func TestParse_ExpressionBodyIsImplicitReturn(t *testing.T) {
	f := parseTS(t, `const short = () => 'test';`)
	assert.Equal(t, []string{ir.ReturnString}, find(t, f, "short").ReturnKinds)
}

func TestParse_AsyncAndGenerator(t *testing.T) {
	f := parseTS(t, `
async function load() {}
function* gen() {}
`)
	assert.True(t, find(t, f, "load").Async)
	assert.True(t, find(t, f, "gen").Generator)
}

func TestParse_Positions(t *testing.T) {
	f := parseTS(t, "function first() {}\nfunction second() {}\n")
	assert.Equal(t, 1, find(t, f, "first").Line)
	assert.Equal(t, 2, find(t, f, "second").Line)
	assert.Equal(t, "function first() {}", find(t, f, "first").Signature)
}

func TestParse_JavaScriptFiles(t *testing.T) {
	f, err := ParseSource("legacy.js", []byte(`
function js() { return 1; }
`))
	require.NoError(t, err)
	assert.Equal(t, "js", f.Language)
	fn := find(t, f, "js")
	assert.False(t, fn.HasReturnAnnotation)
	assert.Equal(t, []string{ir.ReturnNumber}, fn.ReturnKinds)
}

func TestParse_DirectoryWalk(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.ts":       "export function a() { return 1; }\n",
		"b.js":       "function b() {}\n",
		"ignore.txt": "function notCode() {}\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	run, diags := Parse(dir)
	assert.Empty(t, diags.Warnings)
	require.Len(t, run.Files, 2)
	assert.Equal(t, ir.Version, run.IRVersion)
}

func TestParse_EmptyDirectoryWarns(t *testing.T) {
	run, diags := Parse(t.TempDir())
	assert.Empty(t, run.Files)
	assert.NotEmpty(t, diags.Warnings)
}
