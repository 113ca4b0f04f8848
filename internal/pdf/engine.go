package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/kpauljoseph/pdftool/internal/config"
	"github.com/kpauljoseph/pdftool/pkg/logger"
)

var disableConfigDir sync.Once

type PDFEngine struct {
	cfg    *config.Config
	logger *logger.Logger
}

func NewEngine(cfg *config.Config, log *logger.Logger) *PDFEngine {
	// pdfcpu would otherwise create a config directory in the user's home.
	disableConfigDir.Do(api.DisableConfigDir)

	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &PDFEngine{
		cfg:    cfg,
		logger: log,
	}
}

func (e *PDFEngine) newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	if e.cfg.Validation == config.ValidationStrict {
		conf.ValidationMode = model.ValidationStrict
	} else {
		conf.ValidationMode = model.ValidationRelaxed
	}
	conf.WriteObjectStream = e.cfg.Compression.ObjectStreams
	conf.WriteXRefStream = e.cfg.Compression.ObjectStreams
	return conf
}

// Load reads the whole file before parsing so no handle stays open.
// Optimization drops unused and duplicate objects.
func (e *PDFEngine) Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	return e.load(bytes.NewReader(data), path)
}

func (e *PDFEngine) load(rs io.ReadSeeker, path string) (*Document, error) {
	ctx, err := api.ReadValidateAndOptimize(rs, e.newConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return newDocument(ctx, path)
}

func (e *PDFEngine) Save(doc *Document, path string) error {
	if e.cfg.Compression.DeflateStreams {
		n, err := deflateStreams(doc.ctx)
		if err != nil {
			return fmt.Errorf("failed to compress streams: %w", err)
		}
		e.logger.Trace("Deflated %d streams for %s", n, filepath.Base(path))
	}
	doc.ctx.WriteObjectStream = e.cfg.Compression.ObjectStreams
	doc.ctx.WriteXRefStream = e.cfg.Compression.ObjectStreams

	// Temp file in the target directory, renamed on success. The target may
	// be the source file itself.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pdftool-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()

	if err := api.WriteContext(doc.ctx, tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

func (e *PDFEngine) Merge(docs []*Document) (*Document, error) {
	switch len(docs) {
	case 0:
		return nil, fmt.Errorf("nothing to merge")
	case 1:
		return docs[0], nil
	}

	readers := make([]io.ReadSeeker, 0, len(docs))
	for _, doc := range docs {
		var buf bytes.Buffer
		if err := api.WriteContext(doc.ctx, &buf); err != nil {
			return nil, fmt.Errorf("failed to serialize %s: %w", filepath.Base(doc.path), err)
		}
		readers = append(readers, bytes.NewReader(buf.Bytes()))
	}

	return e.mergeRaw(readers)
}

func (e *PDFEngine) mergeRaw(readers []io.ReadSeeker) (*Document, error) {
	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, e.newConfiguration()); err != nil {
		return nil, fmt.Errorf("failed to merge: %w", err)
	}
	return e.load(bytes.NewReader(out.Bytes()), "")
}

// Inspect loads path and describes its pages.
func (e *PDFEngine) Inspect(path string) ([]PageInfo, error) {
	doc, err := e.Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Pages()
}
