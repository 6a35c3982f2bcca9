package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/retlint/retlint/internal/ir"
)

// Node type names differ between grammar revisions for function expressions
// ("function" in older tree-sitter-javascript, "function_expression" later),
// so both are matched.
func isFunctionNode(t string) bool {
	switch t {
	case "function_declaration", "generator_function_declaration",
		"function_expression", "function", "generator_function",
		"arrow_function", "method_definition":
		return true
	}
	return false
}

// classify computes every attribute of a construct in a single pass over its
// node. The checker never touches the AST.
func classify(n *sitter.Node, content []byte, lines []string) ir.Function {
	kind := kindOf(n)

	fn := ir.Function{
		Name:                nameOf(n, content),
		Kind:                kind,
		Line:                int(n.StartPoint().Row) + 1,
		Col:                 int(n.StartPoint().Column) + 1,
		EndLine:             int(n.EndPoint().Row) + 1,
		Async:               hasKeyword(n, "async"),
		Generator:           strings.Contains(n.Type(), "generator") || hasKeyword(n, "*"),
		HasReturnAnnotation: n.ChildByFieldName("return_type") != nil,
		TypedContext:        typedContext(n),
		ReturnsFunction:     returnsFunction(n),
		Signature:           signatureOf(n, lines),
	}
	fn.ExpressionContext = expressionContext(n, kind)
	collectReturns(n, content, &fn)
	return fn
}

func kindOf(n *sitter.Node) string {
	switch n.Type() {
	case "function_declaration", "generator_function_declaration":
		return ir.KindDeclaration
	case "arrow_function":
		return ir.KindArrowExpression
	case "method_definition":
		if p := n.Parent(); p != nil && p.Type() == "object" {
			return ir.KindObjectMethod
		}
		return ir.KindClassMethod
	default:
		return ir.KindFunctionExpression
	}
}

func nameOf(n *sitter.Node, content []byte) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return text(name, content)
	}
	// names live above paren and cast wrappers
	p := n.Parent()
	for p != nil {
		switch p.Type() {
		case "parenthesized_expression", "as_expression", "satisfies_expression", "type_assertion", "non_null_expression":
			p = p.Parent()
			continue
		}
		break
	}
	if p == nil {
		return "(anonymous)"
	}
	switch p.Type() {
	case "variable_declarator", "public_field_definition", "field_definition":
		if name := p.ChildByFieldName("name"); name != nil {
			return text(name, content)
		}
	case "pair":
		if key := p.ChildByFieldName("key"); key != nil {
			return text(key, content)
		}
	case "assignment_expression":
		if left := p.ChildByFieldName("left"); left != nil {
			return text(left, content)
		}
	}
	return "(anonymous)"
}

// effectiveParent skips parentheses and cast wrappers when asking what
// syntactic slot a construct occupies.
func effectiveParent(n *sitter.Node) *sitter.Node {
	p := n.Parent()
	for p != nil && p.Type() == "parenthesized_expression" {
		p = p.Parent()
	}
	return p
}

// typedContext reports whether an enclosing annotated variable, cast, or
// typed container already supplies the construct's function type.
func typedContext(n *sitter.Node) bool {
	p := effectiveParent(n)
	if p == nil {
		return false
	}
	switch p.Type() {
	case "variable_declarator":
		return p.ChildByFieldName("type") != nil
	case "as_expression", "satisfies_expression", "type_assertion":
		return true
	case "public_field_definition", "field_definition":
		return p.ChildByFieldName("type") != nil
	case "pair":
		// members of a typed object literal inherit its type
		if obj := effectiveParent(p); obj != nil && obj.Type() == "object" {
			return typedContext(obj)
		}
	case "array":
		return typedContext(p)
	}
	return false
}

// expressionContext reports whether the construct is an anonymous inline use:
// passed as an argument, an array element, an IIFE, or otherwise used in an
// expression position that is not part of a named declaration.
func expressionContext(n *sitter.Node, kind string) bool {
	switch kind {
	case ir.KindDeclaration, ir.KindClassMethod, ir.KindObjectMethod:
		return false
	}
	p := effectiveParent(n)
	if p == nil {
		return false
	}
	switch p.Type() {
	case "variable_declarator", "assignment_expression", "pair",
		"public_field_definition", "field_definition",
		"export_statement", "program":
		return false
	}
	return true
}

// returnsFunction reports whether the construct's only or final action is to
// return another function-like construct. The inner construct is extracted
// and checked independently.
func returnsFunction(n *sitter.Node) bool {
	body := n.ChildByFieldName("body")
	if body == nil {
		return false
	}
	if body.Type() != "statement_block" {
		// expression-bodied arrow
		return isFunctionNode(unwrap(body).Type())
	}
	var last *sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		if c.Type() == "comment" {
			continue
		}
		last = c
	}
	if last == nil || last.Type() != "return_statement" {
		return false
	}
	if expr := returnExpr(last); expr != nil {
		return isFunctionNode(unwrap(expr).Type())
	}
	return false
}

// collectReturns classifies the construct's own return statements, skipping
// those of nested functions.
func collectReturns(n *sitter.Node, content []byte, fn *ir.Function) {
	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	if body.Type() != "statement_block" {
		// an expression body is one implicit return
		if undefinedLike(body, content) {
			fn.UndefinedReturns++
		} else {
			fn.ReturnKinds = append(fn.ReturnKinds, valueKind(body, content))
		}
		return
	}
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		for i := 0; i < int(node.NamedChildCount()); i++ {
			c := node.NamedChild(i)
			if isFunctionNode(c.Type()) {
				continue
			}
			if c.Type() == "return_statement" {
				expr := returnExpr(c)
				if expr == nil || undefinedLike(expr, content) {
					fn.UndefinedReturns++
				} else {
					fn.ReturnKinds = append(fn.ReturnKinds, valueKind(expr, content))
				}
				continue
			}
			walk(c)
		}
	}
	walk(body)
}

func returnExpr(ret *sitter.Node) *sitter.Node {
	if ret.NamedChildCount() == 0 {
		return nil
	}
	expr := ret.NamedChild(0)
	if expr.Type() == "comment" {
		return nil
	}
	return expr
}

// undefinedLike matches bare `return` values of the shape `undefined` or
// `void <expr>`; they never force an annotation requirement by themselves.
func undefinedLike(n *sitter.Node, content []byte) bool {
	n = unwrap(n)
	switch n.Type() {
	case "undefined":
		return true
	case "identifier":
		return text(n, content) == "undefined"
	case "unary_expression":
		if op := n.ChildByFieldName("operator"); op != nil {
			return text(op, content) == "void"
		}
	}
	return false
}

// valueKind assigns a coarse syntactic kind to a returned value. No type
// inference is attempted; unclassifiable values are ReturnUnknown, which
// unifies with any other kind for the single-return-type exemption.
func valueKind(n *sitter.Node, content []byte) string {
	n = unwrap(n)
	switch n.Type() {
	case "number":
		return ir.ReturnNumber
	case "string", "template_string":
		return ir.ReturnString
	case "true", "false":
		return ir.ReturnBoolean
	case "null":
		return ir.ReturnNull
	case "array":
		return ir.ReturnArray
	case "object":
		return ir.ReturnObject
	case "regex":
		return ir.ReturnRegex
	case "unary_expression":
		if arg := n.ChildByFieldName("argument"); arg != nil && arg.Type() == "number" {
			return ir.ReturnNumber
		}
		return ir.ReturnUnknown
	case "as_expression", "satisfies_expression", "non_null_expression", "await_expression":
		if n.NamedChildCount() > 0 {
			return valueKind(n.NamedChild(0), content)
		}
		return ir.ReturnUnknown
	default:
		if isFunctionNode(n.Type()) || n.Type() == "class" {
			return ir.ReturnFunction
		}
		return ir.ReturnUnknown
	}
}

func unwrap(n *sitter.Node) *sitter.Node {
	for n.Type() == "parenthesized_expression" && n.NamedChildCount() > 0 {
		n = n.NamedChild(0)
	}
	return n
}

// hasKeyword scans the node's anonymous children for a token like "async".
func hasKeyword(n *sitter.Node, kw string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if !c.IsNamed() && c.Type() == kw {
			return true
		}
	}
	return false
}

func signatureOf(n *sitter.Node, lines []string) string {
	row := int(n.StartPoint().Row)
	if row < 0 || row >= len(lines) {
		return ""
	}
	s := strings.TrimSpace(lines[row])
	if len(s) > 160 {
		s = s[:160] + "..."
	}
	return s
}

func text(n *sitter.Node, content []byte) string {
	return string(content[n.StartByte():n.EndByte()])
}
