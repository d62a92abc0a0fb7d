package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show run ledger statistics",
		RunE:  runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	s, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), cfg.LedgerFile())
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	if cfg.Format == "json" {
		return printJSON(stats)
	}

	fmt.Printf("Ledger: %s (%d bytes)\nRuns: %d, responses appended: %d\n",
		stats.DBPath, stats.DBSizeBytes, stats.TotalRuns, stats.Appended)
	t := newTable(1, "Área", "Agregados", "Runs")
	for _, a := range stats.Areas {
		t.Row(a.Area, strconv.Itoa(a.Appended), strconv.Itoa(a.Runs))
	}
	fmt.Println(t.Render())
	return nil
}
