// Package config holds the generator settings and their defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment variable read by LoadFromEnv.
const EnvPrefix = "SURVEY_SEED"

const (
	DefaultMatrixName  = "4. LO MIRANDA MATRIZ VOTME 2024 PLANTA CERDOS.XLSX"
	DefaultOutputName  = "respuestas_cuestionario.xlsx"
	DefaultAddPerArea  = 12
	DefaultExpired     = 0.40
	DefaultSeed        = 321
	DefaultNameLocales = "es_CL,es_ES,es_MX,es"
	ledgerName         = ".survey-seed.db"
)

// Config controls one generate run.
type Config struct {
	ProjectRoot  string
	MatrixName   string
	OutputName   string
	AddPerArea   int
	ExpiredRatio float64
	Seed         int64
	NameLocales  []string

	// LedgerPath overrides the run ledger location; empty means the default
	// next to the output file.
	LedgerPath string
	NoHistory  bool

	// Format selects command output: text or json.
	Format string

	LogLevel  string
	LogFormat string
}

// Default returns the settings used when nothing is overridden.
func Default() Config {
	return Config{
		ProjectRoot:  ".",
		MatrixName:   DefaultMatrixName,
		OutputName:   DefaultOutputName,
		AddPerArea:   DefaultAddPerArea,
		ExpiredRatio: DefaultExpired,
		Seed:         DefaultSeed,
		NameLocales:  SplitList(DefaultNameLocales),
		Format:       "text",
		LogLevel:     "info",
		LogFormat:    "console",
	}
}

// LoadFromEnv overrides fields from PREFIX_* environment variables.
// Unparseable numbers are reported as errors rather than ignored.
func (c *Config) LoadFromEnv(prefix string) error {
	if v := os.Getenv(prefix + "_PROJECT_ROOT"); v != "" {
		c.ProjectRoot = v
	}
	if v := os.Getenv(prefix + "_MATRIX_NAME"); v != "" {
		c.MatrixName = v
	}
	if v := os.Getenv(prefix + "_OUT_NAME"); v != "" {
		c.OutputName = v
	}
	if v := os.Getenv(prefix + "_ADD_PER_AREA"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s_ADD_PER_AREA: %w", prefix, err)
		}
		c.AddPerArea = n
	}
	if v := os.Getenv(prefix + "_EXPIRED_RATIO"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s_EXPIRED_RATIO: %w", prefix, err)
		}
		c.ExpiredRatio = f
	}
	if v := os.Getenv(prefix + "_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s_SEED: %w", prefix, err)
		}
		c.Seed = n
	}
	if v := os.Getenv(prefix + "_NAME_LOCALE"); v != "" {
		c.NameLocales = SplitList(v)
	}
	if v := os.Getenv(prefix + "_DB"); v != "" {
		c.LedgerPath = v
	}
	if v := os.Getenv(prefix + "_FORMAT"); v != "" {
		c.Format = v
	}
	if v := os.Getenv(prefix + "_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(prefix + "_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	return nil
}

// Validate checks value ranges and enumerated settings.
func (c Config) Validate() error {
	if err := c.ValidateOutput(); err != nil {
		return err
	}
	if c.AddPerArea < 0 {
		return fmt.Errorf("add-per-area must be >= 0, got %d", c.AddPerArea)
	}
	if c.ExpiredRatio < 0 || c.ExpiredRatio > 1 {
		return fmt.Errorf("expired-ratio must be within [0,1], got %g", c.ExpiredRatio)
	}
	if strings.TrimSpace(c.OutputName) == "" {
		return fmt.Errorf("out-name is required")
	}
	return nil
}

// ValidateOutput checks the output and logging formats and the log level.
func (c Config) ValidateOutput() error {
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("format must be one of %v, got %q", formats, c.Format)
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		return fmt.Errorf("log-format must be one of %v, got %q", logFormats, c.LogFormat)
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("log-level must be one of %v, got %q", logLevels, c.LogLevel)
	}
	return nil
}

var (
	formats    = []string{"text", "json"}
	logFormats = []string{"console", "json"}
	logLevels  = []string{"debug", "info", "warn", "error"}
)

// SourceDir is <project-root>/src/source, where every file of a run lives.
func (c Config) SourceDir() string {
	return filepath.Join(c.ProjectRoot, "src", "source")
}

// MatrixPath is the reference matrix location.
func (c Config) MatrixPath() string {
	return filepath.Join(c.SourceDir(), c.MatrixName)
}

// OutputPath is the output workbook location.
func (c Config) OutputPath() string {
	return filepath.Join(c.SourceDir(), c.OutputName)
}

// LedgerFile is the run ledger database location.
func (c Config) LedgerFile() string {
	if c.LedgerPath != "" {
		return c.LedgerPath
	}
	return filepath.Join(c.SourceDir(), ledgerName)
}

// SplitList splits a comma-separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
