package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kpauljoseph/pdftool/internal/pdf"
	"github.com/kpauljoseph/pdftool/internal/progress"
	"github.com/kpauljoseph/pdftool/pkg/models"
)

var rotateCmd = &cobra.Command{
	Use:   "rotate [folder | files...]",
	Short: "Reset page rotation and recompress",
	Long: `rotate clears the rotation flag of every page and writes a recompressed
copy of each file into <folder>/komprimiert (or --out). Files named with
--except keep their rotation and are only recompressed.

In rasterize mode (--mode rasterize) every page is rendered, turned by the
configured angle and painted onto a new page instead.`,
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

		exceptions := models.NewExceptionSet(viper.GetStringSlice("except")...)
		if path := viper.GetString("except-file"); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read exceptions: %w", err)
			}
			for name := range models.ParseExceptions(string(data)) {
				exceptions[name] = struct{}{}
			}
		}

		destDir := viper.GetString("out")
		if destDir == "" && len(files) > 0 {
			destDir = filepath.Join(filepath.Dir(files[0]), cfg.OutputSubdir)
		}

		engine := pdf.NewEngine(cfg, log)
		normalizer := pdf.NewNormalizer(engine, cfg.Rotation, log)
		report, err := normalizer.Run(cmd.Context(), files, destDir, exceptions, progress.NewWriterSink(cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		report.Print(log)

		if n := report.Failed(); n > 0 {
			return fmt.Errorf("%d of %d file(s) failed", n, len(report.Outcomes))
		}
		return nil
	},
}

func init() {
	flags := rotateCmd.Flags()
	flags.StringSlice("except", nil, "file names to leave unrotated (repeatable)")
	flags.String("except-file", "", "text file with one exempt file name per line")
	flags.String("out", "", "output directory (default: <folder of first file>/<output_subdir>)")
	flags.String("mode", "", "rotation mode: reset or rasterize")
	flags.String("subdir", "", "output subfolder name (default: komprimiert)")

	for _, name := range []string{"except", "except-file", "out", "mode", "subdir"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	rootCmd.AddCommand(rotateCmd)
}
