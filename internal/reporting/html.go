package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"

	"github.com/retlint/retlint/internal/ir"
	"github.com/retlint/retlint/internal/metrics"
)

func WriteHTML(runID, outDir string, run *ir.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	total := metrics.RunCoverage(run)

	// Head + styles
	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace}</style>")
	fmt.Fprint(f, "</head><body>")

	// Title + summary
	fmt.Fprintf(f, "<h1>retlint report – <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p>Files: %d &nbsp; Findings: %d</p>", len(run.Files), len(run.Findings))
	if total.Functions > 0 {
		fmt.Fprintf(f, "<p><b>Return-type coverage</b>: %d/%d constructs annotated (%.0f%%)</p>",
			total.Annotated, total.Functions, total.Ratio*100)
	}

	// Options banner
	o := run.Context.Options
	fmt.Fprintf(f, "<p class='dim'>Options: allowExpressions=%t allowTypedFunctionExpressions=%t allowHigherOrderFunctions=%t allowZeroOrSingleReturnStatement=%t</p>",
		o.AllowExpressions, o.AllowTypedFunctionExpressions, o.AllowHigherOrderFunctions, o.AllowZeroOrSingleReturnStatement)
	fmt.Fprintf(f, "<p class='dim'>Severity: %s &nbsp; Threshold: %s</p>",
		html.EscapeString(run.Context.Severity), html.EscapeString(run.Context.SeverityThreshold))

	// Findings
	if len(run.Findings) > 0 {
		fmt.Fprint(f, "<h2>Findings</h2><table><tr><th>Severity</th><th>File</th><th>Construct</th><th>Line</th><th>Message</th><th>Evidence</th></tr>")
		for _, fd := range run.Findings {
			fmt.Fprintf(f, "<tr><td>%s</td><td class='mono'>%s</td><td class='mono'>%s</td><td>%d</td><td>%s</td><td class='mono'>%s</td></tr>",
				html.EscapeString(fd.Severity),
				html.EscapeString(fd.File),
				html.EscapeString(fd.Construct),
				fd.Line,
				html.EscapeString(fd.Message),
				html.EscapeString(fd.Evidence),
			)
		}
		fmt.Fprint(f, "</table>")
	} else {
		fmt.Fprint(f, "<p>No findings.</p>")
	}

	// Per-file coverage, worst first
	if len(run.Files) > 0 {
		type row struct {
			path string
			cov  ir.Coverage
		}
		rows := make([]row, 0, len(run.Files))
		for i := range run.Files {
			rows = append(rows, row{run.Files[i].Path, run.Files[i].Annotations.Coverage})
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].cov.Ratio == rows[j].cov.Ratio {
				return rows[i].path < rows[j].path
			}
			return rows[i].cov.Ratio < rows[j].cov.Ratio
		})
		fmt.Fprint(f, "<h2>Coverage by file</h2><table><tr><th>File</th><th>Constructs</th><th>Annotated</th><th>Ratio</th></tr>")
		for _, r := range rows {
			fmt.Fprintf(f, "<tr><td class='mono'>%s</td><td>%d</td><td>%d</td><td>%.0f%%</td></tr>",
				html.EscapeString(r.path), r.cov.Functions, r.cov.Annotated, r.cov.Ratio*100)
		}
		fmt.Fprint(f, "</table>")
	}

	fmt.Fprint(f, "</body></html>")
	return path, nil
}
