package rules

import (
	"fmt"
	"hash/crc32"
	"sort"

	"github.com/retlint/retlint/internal/ir"
)

// Evaluate runs the checker over every construct in the run, assigns stable
// unique finding IDs, applies the severity threshold, and returns findings in
// a deterministic order.
func Evaluate(run *ir.Run) []ir.Finding {
	var all []ir.Finding

	seen := make(map[string]struct{}) // finding IDs seen in this run
	seq := 0

	put := func(id string) bool {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
		return true
	}

	for i := range run.Files {
		file := &run.Files[i]
		for j := range file.Functions {
			fd := Check(&file.Functions[j], run.Context.Options)
			if fd == nil {
				continue
			}
			fd.File = file.Path
			fd.Severity = rsettings.Severity
			if !severityOK(fd.Severity) {
				continue
			}
			// Stable content-derived ID; fall back to a run-local sequence
			// on collision (two identical anonymous constructs on one line).
			id := makeID(fd.RuleID, fd.File, fd.Construct, fd.Evidence, fd.Line)
			if !put(id) {
				for {
					seq++
					candidate := fmt.Sprintf("%s-%06d", fd.RuleID, seq)
					if put(candidate) {
						id = candidate
						break
					}
				}
			}
			fd.ID = id
			all = append(all, *fd)
		}
	}

	// Stable order for reproducible outputs
	sev := map[string]int{"HIGH": 3, "MEDIUM": 2, "LOW": 1}
	sort.Slice(all, func(i, j int) bool {
		if sev[all[i].Severity] != sev[all[j].Severity] {
			return sev[all[i].Severity] > sev[all[j].Severity]
		}
		if all[i].File != all[j].File {
			return all[i].File < all[j].File
		}
		if all[i].Line != all[j].Line {
			return all[i].Line < all[j].Line
		}
		return all[i].ID < all[j].ID
	})
	return all
}

func makeID(ruleID, file, construct, evidence string, line int) string {
	data := fmt.Sprintf("%s|%s|%s|%s|%d", ruleID, file, construct, evidence, line)
	sum := crc32.ChecksumIEEE([]byte(data))
	return fmt.Sprintf("%s-%08x", ruleID, sum)
}
