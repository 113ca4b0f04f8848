package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kpauljoseph/pdftool/internal/config"
	"github.com/kpauljoseph/pdftool/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "pdftool",
	Short: "Rotate, compress and merge PDF files",
	Long: `pdftool batch-processes PDF files.

rotate resets the page rotation of every selected file (except the ones
listed as exceptions) and writes recompressed copies into a subfolder.
merge concatenates the selected files, in order, into a single PDF.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to a YAML config file")
	flags.Bool("verbose", false, "enable verbose logging")
	flags.Bool("debug", false, "enable debug mode with trace logging")
	flags.String("validation", "", "PDF validation mode: relaxed or strict")

	for _, name := range []string{"config", "verbose", "debug", "validation"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func initConfig() {
	viper.SetEnvPrefix("PDFTOOL")
	viper.AutomaticEnv()
}

func newLogger() *logger.Logger {
	log := logger.New(
		logger.WithPrefix("[pdftool] "),
		logger.WithOutput(os.Stderr),
	)
	log.SetVerbose(viper.GetBool("verbose") || viper.GetBool("debug"))
	if viper.GetBool("debug") {
		log.SetLevel(logger.LevelTrace)
	}
	return log
}

// loadConfig reads the config file when one is given and applies flag and
// environment overrides on top.
func loadConfig(log *logger.Logger) (*config.Config, error) {
	cfg := config.Default()
	if path := viper.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
		cfg = loaded
		log.Debug("Using config file: %s", path)
	}

	if v := viper.GetString("validation"); v != "" {
		cfg.Validation = v
	}
	if v := viper.GetString("mode"); v != "" {
		cfg.Rotation.Mode = v
	}
	if v := viper.GetString("subdir"); v != "" {
		cfg.OutputSubdir = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
