package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claimloom/claimloom/internal/stats"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print summary statistics for the filtered claims",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, view, err := loadFilteredView()
		if err != nil {
			return err
		}
		rep := stats.BuildReport(view, effectiveConfig().OutlierThreshold)
		fmt.Printf("Dataset: %d claims, showing %d after filters\n\n", ds.Len(), view.Len())
		fmt.Print(rep.Markdown())
		return nil
	},
}

func init() {
	registerFilterFlags(summaryCmd)
	rootCmd.AddCommand(summaryCmd)
}
