package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/payoff/internal/report"
	"github.com/theirongolddev/payoff/internal/scenario"

	"github.com/spf13/cobra"
)

var (
	flagExportCSV      string
	flagExportPDF      string
	flagExportScenario string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the schedule as CSV or PDF, or the inputs as a scenario file",
	Example: `  payoff export --csv schedule.csv
  payoff export --pdf report.pdf --extra 5000@12/yearly --apply-extras
  payoff export --scenario-out mine.yaml --rate 5.5`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportCSV, "csv", "", "CSV output path (- for stdout)")
	exportCmd.Flags().StringVar(&flagExportPDF, "pdf", "", "PDF output path")
	exportCmd.Flags().StringVar(&flagExportScenario, "scenario-out", "", "Scenario YAML output path (- for stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if flagExportCSV == "" && flagExportPDF == "" && flagExportScenario == "" {
		return errors.New("nothing to export: pass --csv, --pdf or --scenario-out")
	}

	res, err := simulate(cmd)
	if err != nil {
		return err
	}
	now := time.Now()

	if flagExportCSV != "" {
		err := writeOutput(flagExportCSV, func(w io.Writer) error {
			return report.WriteCSV(w, res.History, now)
		})
		if err != nil {
			return fmt.Errorf("writing CSV: %w", err)
		}
		if flagExportCSV != "-" {
			warnf("  Wrote %d months to %s\n", res.History.MonthCount, flagExportCSV)
		}
	}

	if flagExportPDF != "" {
		data, err := report.GeneratePDF(report.Input{
			Params:      res.Request.Params,
			History:     res.History,
			Extras:      res.Request.Extras,
			ApplyExtras: res.Request.ApplyExtras,
			Now:         now,
		})
		if err != nil {
			return err
		}
		if err := writeFile(flagExportPDF, data); err != nil {
			return fmt.Errorf("writing PDF: %w", err)
		}
		warnf("  Wrote %s\n", flagExportPDF)
	}

	if flagExportScenario != "" {
		f := scenario.File{Scenario: scenario.Scenario{
			Name:        "exported",
			Loan:        scenario.NewLoan(res.Request.Params),
			Extras:      res.Request.Extras,
			ApplyExtras: res.Request.ApplyExtras,
			Strict:      res.Request.Strict,
		}}
		data, err := scenario.Marshal(f)
		if err != nil {
			return err
		}
		err = writeOutput(flagExportScenario, func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		})
		if err != nil {
			return fmt.Errorf("writing scenario: %w", err)
		}
		if flagExportScenario != "-" {
			warnf("  Wrote %s\n", flagExportScenario)
		}
	}

	return nil
}

// writeOutput streams to stdout for "-" and to a new file otherwise.
func writeOutput(path string, fn func(io.Writer) error) error {
	if path == "-" {
		return fn(os.Stdout)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	f, err := os.Create(path) //nolint:gosec // path is chosen by the local user
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeFile(path string, data []byte) error {
	return writeOutput(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
