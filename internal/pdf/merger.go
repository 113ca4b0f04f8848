package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kpauljoseph/pdftool/internal/config"
	"github.com/kpauljoseph/pdftool/internal/progress"
	"github.com/kpauljoseph/pdftool/pkg/logger"
	"github.com/kpauljoseph/pdftool/pkg/models"
	"github.com/kpauljoseph/pdftool/pkg/utils"
)

var ErrNothingToMerge = errors.New("none of the selected PDFs could be read")

type Merger struct {
	engine      Engine
	defaultName string
	logger      *logger.Logger
}

func NewMerger(engine Engine, defaultName string, log *logger.Logger) *Merger {
	if defaultName == "" {
		defaultName = config.DefaultMergeName
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Merger{
		engine:      engine,
		defaultName: defaultName,
		logger:      log,
	}
}

// ResolveOutputName trims name and falls back to the default when it is empty.
func (m *Merger) ResolveOutputName(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return m.defaultName
	}
	return name
}

// Run appends the pages of every readable input, in order, and saves the
// result once as destDir/name. Missing or unreadable inputs are reported and
// skipped.
func (m *Merger) Run(ctx context.Context, files []string, destDir, name string, sink progress.Sink) (*models.RunReport, error) {
	if len(files) == 0 {
		progress.Printf(sink, "❌ No PDFs selected!")
		return nil, ErrNoInput
	}

	target := filepath.Join(destDir, m.ResolveOutputName(name))
	report := &models.RunReport{
		Operation: models.OperationMerge,
		Output:    target,
		StartTime: time.Now(),
	}

	progress.Printf(sink, "Merging %d PDFs...", len(files))

	var docs []*Document
	for _, path := range files {
		select {
		case <-ctx.Done():
			report.EndTime = time.Now()
			return report, ctx.Err()
		default:
		}

		outcome := models.Outcome{Path: path, Name: filepath.Base(path)}

		if !utils.FileExists(path) {
			outcome.Status = models.StatusNotFound
			outcome.Err = os.ErrNotExist
			report.Add(outcome)
			progress.Printf(sink, "   ❌ Not found: %s", outcome.Name)
			continue
		}

		doc, err := m.engine.Load(path)
		if err != nil {
			outcome.Status = models.StatusFailed
			outcome.Err = err
			report.Add(outcome)
			progress.Printf(sink, "   ❌ %s – error: %v", outcome.Name, err)
			continue
		}

		outcome.Status = models.StatusSucceeded
		outcome.Pages = doc.PageCount()
		outcome.SizeBefore, _ = utils.FileSize(path)
		report.Add(outcome)
		docs = append(docs, doc)
		progress.Printf(sink, "   ✅ %s (%d pages)", outcome.Name, outcome.Pages)
	}

	if len(docs) == 0 {
		report.EndTime = time.Now()
		progress.Printf(sink, "❌ Nothing to merge, no file written.")
		return report, ErrNothingToMerge
	}

	merged, err := m.engine.Merge(docs)
	if err != nil {
		report.EndTime = time.Now()
		progress.Printf(sink, "❌ Merge failed: %v", err)
		return report, err
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		report.EndTime = time.Now()
		progress.Printf(sink, "❌ Cannot create output folder %s: %v", destDir, err)
		return report, fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := m.engine.Save(merged, target); err != nil {
		report.EndTime = time.Now()
		progress.Printf(sink, "❌ Saving %s failed: %v", filepath.Base(target), err)
		return report, err
	}

	report.Pages = merged.PageCount()
	report.Size, _ = utils.FileSize(target)
	report.EndTime = time.Now()
	m.logger.Debug("Merged %d documents into %s (%d pages)", len(docs), target, report.Pages)

	progress.Printf(sink, "📄 Saved as: %s  (%s, %d pages)", filepath.Base(target), utils.FormatMB(report.Size), report.Pages)
	return report, nil
}
