package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/pdftool/internal/pdf"
	"github.com/kpauljoseph/pdftool/internal/progress"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [folder | files...]",
	Short: "Concatenate PDFs into one file",
	Long: `merge appends the pages of every input, in the order given, into one
document saved as <folder of first file>/<name>. Missing or unreadable
inputs are reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		cfg, err := loadConfig(log)
		if err != nil {
			return err
		}

		files, err := resolveInputs(cmd.Context(), log, args)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		destDir, _ := cmd.Flags().GetString("out")
		if destDir == "" && len(files) > 0 {
			destDir = filepath.Dir(files[0])
		}

		engine := pdf.NewEngine(cfg, log)
		merger := pdf.NewMerger(engine, cfg.MergeDefaultName, log)
		report, err := merger.Run(cmd.Context(), files, destDir, name, progress.NewWriterSink(cmd.OutOrStdout()))
		if report != nil {
			report.Print(log)
		}
		if err != nil {
			return err
		}

		if n := report.Failed() + report.NotFound(); n > 0 {
			return fmt.Errorf("%d input(s) skipped", n)
		}
		return nil
	},
}

func init() {
	mergeCmd.Flags().String("name", "", "output file name (default: Zusammengefuehrt.pdf)")
	mergeCmd.Flags().String("out", "", "output directory (default: folder of the first file)")

	rootCmd.AddCommand(mergeCmd)
}
