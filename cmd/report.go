package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/claimloom/claimloom/internal/charts"
	"github.com/claimloom/claimloom/internal/report"
	"github.com/claimloom/claimloom/internal/stats"
	"github.com/claimloom/claimloom/internal/utils"
)

var (
	reportOut    string
	reportCharts bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a PDF report for the filtered claims",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, view, err := loadFilteredView()
		if err != nil {
			return err
		}
		conf := effectiveConfig()

		out := reportOut
		if out == "" {
			if err := utils.EnsureDir(conf.ReportDir); err != nil {
				return fmt.Errorf("mkdir report dir: %w", err)
			}
			out = filepath.Join(conf.ReportDir, "insurance_claims_report.pdf")
		}

		var pngs [][]byte
		if reportCharts {
			opts := charts.Options{Width: conf.ChartWidth, Height: conf.ChartHeight}
			timeline, err := charts.Timeline(stats.AmountByPeriod(view, stats.ByPolicyType), opts)
			if err != nil {
				return err
			}
			regions, err := charts.CategoryBars("Claims by Region", stats.ByCategory(view, stats.ByRegion), opts)
			if err != nil {
				return err
			}
			pngs = [][]byte{timeline, regions}
		}

		var buf bytes.Buffer
		err = report.Build(&buf, report.Params{
			View:     view,
			Summary:  stats.Summarize(view),
			Describe: stats.DescribeAmount(view),
			Charts:   pngs,
			RowLimit: conf.TableRowLimit,
		})
		if err != nil {
			return err
		}
		if err := utils.SafeWriteFile(out, buf.Bytes()); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Report for %d claims written to %s\n", view.Len(), out)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output file (default <report_dir>/insurance_claims_report.pdf)")
	reportCmd.Flags().BoolVar(&reportCharts, "charts", false, "embed charts in the report")
	registerFilterFlags(reportCmd)
	rootCmd.AddCommand(reportCmd)
}
