package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/survey-seed/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded generate runs, newest first",
		RunE:  runHistory,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().Bool("all-outputs", false, "Include runs that wrote other output workbooks")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	limit, _ := cmd.Flags().GetInt("limit")
	allOutputs, _ := cmd.Flags().GetBool("all-outputs")

	s, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	p := store.ListParams{Limit: limit}
	if !allOutputs {
		p.Output = cfg.OutputPath()
	}
	runs, err := s.List(cmd.Context(), p)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}

	if cfg.Format == "json" {
		return printJSON(runs)
	}
	fmt.Println(renderRuns(runs))
	return nil
}
