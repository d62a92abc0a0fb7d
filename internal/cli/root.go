// Package cli implements the survey-seed CLI commands.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/survey-seed/internal/config"
	"github.com/rcliao/survey-seed/internal/logging"
	"github.com/rcliao/survey-seed/internal/store"
)

var (
	dbPath      string
	formatFlag  string
	logLevel    string
	logFormat   string
	projectRoot string
	outName     string
)

// RootCmd is the top-level command. Without a subcommand it runs generate.
var RootCmd = &cobra.Command{
	Use:   "survey-seed",
	Short: "Append synthetic ergonomic survey responses to a workbook",
	Long: "Generates random questionnaire responses per area and role, appends them to the\n" +
		"responses workbook and rebuilds its per-area parameters sheet.",
	RunE:         runGenerate,
	SilenceUsage: true,
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringVarP(&dbPath, "db", "d", "", "Run ledger path (default: $SURVEY_SEED_DB or <project-root>/src/source/.survey-seed.db)")
	pf.StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")
	pf.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "console", "Log format: console or json")
	pf.StringVar(&projectRoot, "project-root", ".", "Project root (the directory holding src/)")
	pf.StringVar(&outName, "out-name", config.DefaultOutputName, "Output workbook name inside src/source/")

	addGenerateFlags(RootCmd)
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// loadConfig layers defaults, SURVEY_SEED_* env vars and explicitly set flags,
// then checks the output and logging settings.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if err := cfg.LoadFromEnv(config.EnvPrefix); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if changed(cmd, "project-root") {
		cfg.ProjectRoot = projectRoot
	}
	if changed(cmd, "out-name") {
		cfg.OutputName = outName
	}
	if changed(cmd, "format") {
		cfg.Format = formatFlag
	}
	if changed(cmd, "db") {
		cfg.LedgerPath = dbPath
	}
	if changed(cmd, "log-level") {
		cfg.LogLevel = logLevel
	}
	if changed(cmd, "log-format") {
		cfg.LogFormat = logFormat
	}
	if changed(cmd, "matrix-name") {
		cfg.MatrixName, _ = flags.GetString("matrix-name")
	}
	if changed(cmd, "add-per-area") {
		cfg.AddPerArea, _ = flags.GetInt("add-per-area")
	}
	if changed(cmd, "expired-ratio") {
		cfg.ExpiredRatio, _ = flags.GetFloat64("expired-ratio")
	}
	if changed(cmd, "seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}
	if changed(cmd, "name-locale") {
		v, _ := flags.GetString("name-locale")
		cfg.NameLocales = config.SplitList(v)
	}
	if changed(cmd, "no-history") {
		cfg.NoHistory, _ = flags.GetBool("no-history")
	}
	if err := cfg.ValidateOutput(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func openStore(cfg config.Config) (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.LedgerFile())
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
