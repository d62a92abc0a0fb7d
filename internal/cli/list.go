package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/survey-seed/internal/dataset"
	"github.com/rcliao/survey-seed/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List responses of the output workbook",
		RunE:  runList,
	}

	cmd.Flags().StringP("area", "a", "", "Filter by exact area")
	cmd.Flags().StringP("name", "n", "", "Filter by worker name substring (case-insensitive)")
	cmd.Flags().IntP("limit", "l", 0, "Max results (0: all)")

	RootCmd.AddCommand(cmd)
}

var listColumns = []string{model.ColID, model.ColDate, model.ColArea, model.ColName, model.ColRole, model.ColSex}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	area, _ := cmd.Flags().GetString("area")
	name, _ := cmd.Flags().GetString("name")
	limit, _ := cmd.Flags().GetInt("limit")

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	t := dataset.Load(cfg.OutputPath(), logger).Filter(area, name)
	if limit > 0 && t.Len() > limit {
		t.Rows = t.Rows[:limit]
	}
	rows := responseRows(t)

	if cfg.Format == "json" {
		return printJSON(rows)
	}
	fmt.Println(renderResponses(rows))
	return nil
}

// responseRows keeps the listColumns of each row, keyed by column name.
func responseRows(t *dataset.Table) []map[string]string {
	cols := make([][]string, len(listColumns))
	for i, c := range listColumns {
		cols[i] = t.Column(c)
	}
	out := make([]map[string]string, t.Len())
	for r := range out {
		m := make(map[string]string, len(listColumns))
		for i, c := range listColumns {
			m[c] = cols[i][r]
		}
		out[r] = m
	}
	return out
}
