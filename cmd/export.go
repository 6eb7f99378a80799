package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/claimloom/claimloom/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered claims as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, view, err := loadFilteredView()
		if err != nil {
			return err
		}
		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			out = f
		}
		if err := export.WriteCSV(out, view); err != nil {
			return err
		}
		if exportOut != "" {
			fmt.Fprintf(os.Stderr, "✓ Wrote %d claims to %s\n", view.Len(), exportOut)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	registerFilterFlags(exportCmd)
	rootCmd.AddCommand(exportCmd)
}
