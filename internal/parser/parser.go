package parser

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/retlint/retlint/internal/ir"
)

type Diagnostics struct {
	Warnings []string
}

// DefaultExtensions are the file extensions scanned by Parse.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}

// Parse walks a source tree and extracts classified function constructs from
// every TypeScript/JavaScript file found.
func Parse(path string) (ir.Run, Diagnostics) {
	return ParseWithExtensions(path, DefaultExtensions)
}

func ParseWithExtensions(path string, exts []string) (ir.Run, Diagnostics) {
	var run ir.Run
	run.IRVersion = ir.Version
	run.Source = filepath.Clean(path)
	diags := Diagnostics{}

	allow := map[string]bool{}
	for _, e := range exts {
		allow[strings.ToLower(e)] = true
	}

	_ = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !allow[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}
		file, perr := ParseFile(p)
		if perr != nil {
			diags.Warnings = append(diags.Warnings, p+": "+perr.Error())
			return nil
		}
		if len(file.Functions) > 0 {
			run.Files = append(run.Files, file)
		}
		return nil
	})

	if len(run.Files) == 0 {
		diags.Warnings = append(diags.Warnings, "no TypeScript/JavaScript files found or no functions parsed")
	}
	return run, diags
}

func ParseFile(path string) (ir.File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return ir.File{}, err
	}
	return ParseSource(path, b)
}

// ParseSource parses one file's content. Parse errors in the source do not
// fail the call; tree-sitter recovers and we extract what it could parse.
func ParseSource(path string, content []byte) (ir.File, error) {
	lang := languageFor(path)

	p := sitter.NewParser()
	switch lang {
	case "tsx":
		p.SetLanguage(tsx.GetLanguage())
	case "js":
		p.SetLanguage(javascript.GetLanguage())
	default:
		p.SetLanguage(typescript.GetLanguage())
	}

	tree, err := p.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return ir.File{}, err
	}
	defer tree.Close()

	file := ir.File{Path: path, Language: lang}
	lines := strings.Split(string(content), "\n")
	extractFunctions(tree.RootNode(), content, lines, &file.Functions)
	return file, nil
}

func languageFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsx":
		return "tsx"
	case ".js", ".jsx", ".mjs", ".cjs":
		return "js"
	default:
		return "ts"
	}
}

// extractFunctions walks the AST depth-first and classifies every
// function-like node. Nested functions become independent constructs.
func extractFunctions(node *sitter.Node, content []byte, lines []string, out *[]ir.Function) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if isFunctionNode(child.Type()) {
			*out = append(*out, classify(child, content, lines))
		}
		extractFunctions(child, content, lines, out)
	}
}
