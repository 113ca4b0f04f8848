package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kpauljoseph/pdftool/internal/config"
	"github.com/kpauljoseph/pdftool/internal/progress"
	"github.com/kpauljoseph/pdftool/pkg/logger"
	"github.com/kpauljoseph/pdftool/pkg/models"
	"github.com/kpauljoseph/pdftool/pkg/utils"
)

var ErrNoInput = errors.New("no PDFs selected")

// Normalizer resets page rotation and recompresses a batch of files.
type Normalizer struct {
	engine   Engine
	rotation config.Rotation
	logger   *logger.Logger
}

func NewNormalizer(engine Engine, rotation config.Rotation, log *logger.Logger) *Normalizer {
	if rotation.Mode == "" {
		rotation.Mode = config.ModeReset
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Normalizer{
		engine:   engine,
		rotation: rotation,
		logger:   log,
	}
}

// Run writes every input to destDir under its original name. Files whose base
// name is in exceptions keep their rotation but are still recompressed. A
// failing file is recorded and the run moves on to the next one.
func (n *Normalizer) Run(ctx context.Context, files []string, destDir string, exceptions models.ExceptionSet, sink progress.Sink) (*models.RunReport, error) {
	if len(files) == 0 {
		progress.Printf(sink, "❌ No PDFs selected!")
		return nil, ErrNoInput
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		progress.Printf(sink, "❌ Cannot create output folder %s: %v", destDir, err)
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	report := &models.RunReport{
		Operation: models.OperationRotate,
		Output:    destDir,
		StartTime: time.Now(),
	}

	progress.Printf(sink, "✅ Processing %d PDF(s)...", len(files))
	n.logger.Debug("Rotation mode: %s, %d exception(s)", n.rotation.Mode, exceptions.Len())

	for _, path := range files {
		select {
		case <-ctx.Done():
			report.EndTime = time.Now()
			return report, ctx.Err()
		default:
		}

		outcome := n.processFile(path, destDir, exceptions.Contains(path))
		report.Add(outcome)
		if outcome.Err != nil {
			n.logger.Error("Failed to process %s: %v", outcome.Name, outcome.Err)
		}
		progress.Printf(sink, "%s", describeRotation(outcome, n.rotation.Mode))
		report.Pages += outcome.Pages
		report.Size += outcome.SizeAfter
	}

	report.EndTime = time.Now()
	progress.Printf(sink, "📁 Done! Files in: %s", destDir)
	return report, nil
}

func (n *Normalizer) processFile(path, destDir string, exempt bool) models.Outcome {
	outcome := models.Outcome{
		Path:   path,
		Name:   filepath.Base(path),
		Exempt: exempt,
		Status: models.StatusFailed,
	}
	n.logger.Debug("Processing %s (exempt: %t)", outcome.Name, exempt)

	size, err := utils.FileSize(path)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.SizeBefore = size

	doc, rotated, err := n.transform(path, exempt)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Rotated = rotated
	outcome.Pages = doc.PageCount()

	target := filepath.Join(destDir, outcome.Name)
	if err := n.engine.Save(doc, target); err != nil {
		outcome.Err = err
		return outcome
	}

	if outcome.SizeAfter, err = utils.FileSize(target); err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.Status = models.StatusSucceeded
	return outcome
}

// transform returns the document to save and the number of pages whose
// orientation it changed.
func (n *Normalizer) transform(path string, exempt bool) (*Document, int, error) {
	if n.rotation.Mode == config.ModeRasterize {
		degrees := n.rotation.RasterDegrees
		if exempt {
			degrees = 0
		}
		doc, err := n.engine.Rasterize(path, degrees)
		if err != nil {
			return nil, 0, err
		}
		rotated := 0
		if NormalizeRotation(degrees) != 0 {
			rotated = doc.PageCount()
		}
		return doc, rotated, nil
	}

	doc, err := n.engine.Load(path)
	if err != nil {
		return nil, 0, err
	}
	if exempt {
		return doc, 0, nil
	}
	rotated, err := doc.ResetRotations()
	if err != nil {
		return nil, 0, err
	}
	return doc, rotated, nil
}

func describeRotation(o models.Outcome, mode string) string {
	var action string
	switch {
	case o.Exempt:
		action = "not rotated (exception)"
	case mode == config.ModeRasterize:
		action = fmt.Sprintf("rasterized, %d page(s) rotated", o.Rotated)
	default:
		action = fmt.Sprintf("rotation reset on %d page(s)", o.Rotated)
	}

	if !o.OK() {
		return fmt.Sprintf("❌ %s – %s – error: %v", o.Name, action, o.Err)
	}
	return fmt.Sprintf("✅ %s – %s – %s (%s)", o.Name, action, utils.FormatMB(o.SizeAfter), describeReduction(o.Reduction()))
}

func describeReduction(pct float64) string {
	if pct < 0 {
		return fmt.Sprintf("%.0f%% larger", -pct)
	}
	return fmt.Sprintf("%.0f%% smaller", pct)
}
