package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/survey-seed/internal/dataset"
	"github.com/rcliao/survey-seed/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the parameters table of the output workbook",
		RunE:  runParams,
	}

	cmd.Flags().Bool("recompute", false, "Recount from the responses sheet instead of reading Parametros")

	RootCmd.AddCommand(cmd)
}

func runParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	recompute, _ := cmd.Flags().GetBool("recompute")

	var params []model.ParameterRow
	if recompute {
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()
		params = dataset.Load(cfg.OutputPath(), logger).Summarize()
	} else {
		params, err = dataset.ReadParameters(cfg.OutputPath())
		if err != nil {
			return fmt.Errorf("params: %w", err)
		}
	}

	if cfg.Format == "json" {
		return printJSON(params)
	}
	fmt.Println(renderParameters(params))
	return nil
}
