package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kpauljoseph/pdftool/pkg/logger"
	"github.com/kpauljoseph/pdftool/pkg/models"
)

var ErrNoPDFs = errors.New("no PDF files found")

type DirectoryScanner struct {
	logger *logger.Logger
}

func New(log *logger.Logger) *DirectoryScanner {
	if log == nil {
		log = logger.Discard()
	}
	return &DirectoryScanner{
		logger: log,
	}
}

// FindPDFs lists the PDF files directly inside dir, sorted by name. Every
// file starts out included.
func (s *DirectoryScanner) FindPDFs(ctx context.Context, dir string) ([]models.InputFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	var pdfs []models.InputFile
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if entry.IsDir() || !IsPDF(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			s.logger.Debug("Skipping %s: %v", entry.Name(), err)
			continue
		}

		pdfs = append(pdfs, models.InputFile{
			Path:     filepath.Join(dir, entry.Name()),
			Name:     entry.Name(),
			Size:     info.Size(),
			Included: true,
		})
	}

	if len(pdfs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPDFs, dir)
	}

	sort.Slice(pdfs, func(i, j int) bool {
		return pdfs[i].Name < pdfs[j].Name
	})
	for i := range pdfs {
		pdfs[i].Position = i
	}

	s.logger.Debug("Found %d PDFs in %s", len(pdfs), dir)
	return pdfs, nil
}

// Describe stats explicitly chosen files. Missing files are kept with a zero
// size so the caller can still report them.
func (s *DirectoryScanner) Describe(paths []string) []models.InputFile {
	files := make([]models.InputFile, 0, len(paths))
	for i, path := range paths {
		file := models.InputFile{
			Path:     path,
			Name:     filepath.Base(path),
			Included: true,
			Position: i,
		}
		if info, err := os.Stat(path); err == nil {
			file.Size = info.Size()
		} else {
			s.logger.Debug("Cannot stat %s: %v", path, err)
		}
		files = append(files, file)
	}
	return files
}

func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
