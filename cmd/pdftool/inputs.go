package main

import (
	"context"
	"os"

	"github.com/kpauljoseph/pdftool/internal/scanner"
	"github.com/kpauljoseph/pdftool/pkg/logger"
	"github.com/kpauljoseph/pdftool/pkg/utils"
)

// resolveInputs expands a single directory argument into the PDFs it
// contains. Anything else is taken as an explicit, ordered file list.
func resolveInputs(ctx context.Context, log *logger.Logger, args []string) ([]string, error) {
	s := scanner.New(log)
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			files, err := s.FindPDFs(ctx, args[0])
			if err != nil {
				return nil, err
			}
			paths := make([]string, len(files))
			for i, f := range files {
				paths[i] = f.Path
			}
			return paths, nil
		}
	}
	for _, f := range s.Describe(args) {
		log.Debug("Input: %s (%s)", f.Path, utils.FormatMB(f.Size))
	}
	return args, nil
}
