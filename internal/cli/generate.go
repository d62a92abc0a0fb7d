package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/survey-seed/internal/config"
	"github.com/rcliao/survey-seed/internal/pipeline"
)

func init() {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Append random responses per area",
		Long: "Reads areas and roles from the staffing matrix (or a built-in set when it is\n" +
			"missing), appends --add-per-area responses per area to the output workbook and\n" +
			"rewrites its parameters sheet.",
		RunE: runGenerate,
	}
	addGenerateFlags(cmd)

	RootCmd.AddCommand(cmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().String("matrix-name", config.DefaultMatrixName, "Staffing matrix workbook inside src/source/")
	cmd.Flags().Int("add-per-area", config.DefaultAddPerArea, "Responses to add per area")
	cmd.Flags().Float64("expired-ratio", config.DefaultExpired, "Share of responses with an expired date (0..1)")
	cmd.Flags().Int64("seed", config.DefaultSeed, "Random seed")
	cmd.Flags().String("name-locale", config.DefaultNameLocales, "Name locale preference, comma-separated")
	cmd.Flags().Bool("no-history", false, "Do not record the run in the ledger")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := pipeline.Options{Logger: logger}
	if !cfg.NoHistory {
		s, err := openStore(cfg)
		if err != nil {
			logger.Warn("Run ledger unavailable, continuing without it", zap.Error(err))
		} else {
			defer s.Close()
			opts.Ledger = s
		}
	}

	res, err := pipeline.Run(cmd.Context(), cfg, opts)
	if err != nil {
		logger.Error("Generate failed", zap.Error(err))
		return fmt.Errorf("generate: %w", err)
	}

	if cfg.Format == "json" {
		return printJSON(res)
	}

	fmt.Printf("✔ Listo: agregado(s) %d registro(s) a '%s'. Total ahora: %d\n", res.Appended, res.OutputPath, res.Total)
	fmt.Println("\nÁreas (Parametros):")
	fmt.Println(renderParameters(res.Parameters))
	return nil
}
