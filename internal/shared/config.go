package shared

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/retlint/retlint/internal/ir"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./retlint.db"
	} `yaml:"database"`

	Analysis struct {
		Sources    []string `yaml:"sources"`    // ["./src"]
		Extensions []string `yaml:"extensions"` // defaults to .ts/.tsx/.js/.jsx/.mjs/.cjs
	} `yaml:"analysis"`

	Rule struct {
		Severity          string     `yaml:"severity"`           // LOW|MEDIUM|HIGH
		SeverityThreshold string     `yaml:"severity_threshold"` // minimum severity reported
		Options           ir.Options `yaml:"options"`
	} `yaml:"rule"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	API struct {
		Addr              string   `yaml:"addr"` // ":8720"
		AllowedOrigins    []string `yaml:"allowed_origins"`
		SessionTTLMinutes int      `yaml:"session_ttl_minutes"`
	} `yaml:"api"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./retlint.db"
	c.Rule.Severity = "MEDIUM"
	c.Rule.SeverityThreshold = "LOW"
	c.Rule.Options = ir.Options{
		AllowTypedFunctionExpressions: true,
		AllowHigherOrderFunctions:     true,
	}
	c.Reporting.OutDir = "./reports"
	c.API.Addr = ":8720"
	c.API.SessionTTLMinutes = 12 * 60
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("RETLINT_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("RETLINT_SEVERITY"); v != "" {
		c.Rule.Severity = strings.ToUpper(v)
	}
	if v := os.Getenv("RETLINT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("RETLINT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("RETLINT_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("RETLINT_API_ADDR"); v != "" {
		c.API.Addr = v
	}
	return c, nil
}
