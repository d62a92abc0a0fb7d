package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/survey-seed/internal/dataset"
	"github.com/rcliao/survey-seed/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show current and expired responses per area",
		Long: fmt.Sprintf("Groups the responses sheet by area and counts responses dated at most %d\n"+
			"days before --as-of (current), older ones (expired) and undated ones.", dataset.ValidDays),
		RunE: runStatus,
	}

	cmd.Flags().String("as-of", "", "Reference date DD/MM/YYYY (default: today)")

	RootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	today, err := asOf(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	status := dataset.Load(cfg.OutputPath(), logger).Status(today)

	if cfg.Format == "json" {
		return printJSON(status)
	}
	if len(status) == 0 {
		fmt.Printf("No responses in '%s'.\n", cfg.OutputPath())
		return nil
	}
	fmt.Println(renderStatus(status))
	return nil
}

func asOf(cmd *cobra.Command) (time.Time, error) {
	v, _ := cmd.Flags().GetString("as-of")
	if v == "" {
		return time.Now(), nil
	}
	d, err := time.Parse(model.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--as-of: want DD/MM/YYYY, got %q", v)
	}
	return d, nil
}
