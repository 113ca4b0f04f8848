package acceptance

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kpauljoseph/pdftool/internal/config"
	"github.com/kpauljoseph/pdftool/internal/pdf"
	"github.com/kpauljoseph/pdftool/internal/pdf/pdftest"
	"github.com/kpauljoseph/pdftool/pkg/logger"
)

// Fixture describes one input file of a test folder.
type Fixture struct {
	Name  string
	Pages []pdftest.Page
}

// Folder is a temporary directory populated with generated PDFs.
type Folder struct {
	Dir    string
	engine *pdf.PDFEngine
}

func NewFolder(log *logger.Logger, fixtures ...Fixture) (*Folder, error) {
	dir, err := os.MkdirTemp("", "pdftool-acceptance-*")
	if err != nil {
		return nil, err
	}

	for _, f := range fixtures {
		if err := pdftest.WritePDF(filepath.Join(dir, f.Name), f.Pages...); err != nil {
			os.RemoveAll(dir)
			return nil, fmt.Errorf("fixture %s: %w", f.Name, err)
		}
	}

	return &Folder{Dir: dir, engine: pdf.NewEngine(config.Default(), log)}, nil
}

func (f *Folder) Path(name string) string {
	return filepath.Join(f.Dir, name)
}

func (f *Folder) Remove() error {
	return os.RemoveAll(f.Dir)
}

// Rotations returns the effective rotation of every page of the file.
func (f *Folder) Rotations(path string) ([]int, error) {
	doc, err := f.engine.Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Rotations()
}

// Widths returns the page widths in page order. Fixture pages differ in width,
// which makes page order observable after a merge.
func (f *Folder) Widths(path string) ([]float64, error) {
	pages, err := f.engine.Inspect(path)
	if err != nil {
		return nil, err
	}
	widths := make([]float64, len(pages))
	for i, p := range pages {
		widths[i] = p.Width
	}
	return widths, nil
}
