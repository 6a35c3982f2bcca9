package rules

import "strings"

type Settings struct {
	Severity          string // severity assigned to findings
	SeverityThreshold string // minimum severity kept by Evaluate
}

var rsettings = Settings{
	Severity:          "MEDIUM",
	SeverityThreshold: "LOW",
}

func SetSettings(s Settings) {
	// fill defaults
	if s.Severity == "" {
		s.Severity = rsettings.Severity
	}
	if s.SeverityThreshold == "" {
		s.SeverityThreshold = rsettings.SeverityThreshold
	}
	rsettings = s
}

func severityRank(sev string) int {
	switch strings.ToUpper(strings.TrimSpace(sev)) {
	case "HIGH":
		return 3
	case "MEDIUM":
		return 2
	default:
		return 1 // LOW or unknown → LOW
	}
}

func severityOK(sev string) bool {
	return severityRank(sev) >= severityRank(rsettings.SeverityThreshold)
}
