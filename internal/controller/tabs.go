package controller

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/kpauljoseph/pdftool/internal/progress"
	"github.com/kpauljoseph/pdftool/internal/selection"
	"github.com/kpauljoseph/pdftool/pkg/models"
)

type Rotator interface {
	Run(ctx context.Context, files []string, destDir string, exceptions models.ExceptionSet, sink progress.Sink) (*models.RunReport, error)
}

type Merger interface {
	Run(ctx context.Context, files []string, destDir, name string, sink progress.Sink) (*models.RunReport, error)
}

// RotateTab owns the state of the rotate & compress tab.
type RotateTab struct {
	worker
	Files *selection.FileList

	mu           sync.Mutex
	exceptions   string
	rotator      Rotator
	outputSubdir string
	sink         progress.Sink
}

func NewRotateTab(rotator Rotator, outputSubdir string, sink progress.Sink) *RotateTab {
	return &RotateTab{
		Files:        selection.NewFileList(),
		rotator:      rotator,
		outputSubdir: outputSubdir,
		sink:         sink,
	}
}

// SetExceptions takes the raw text of the exceptions box, one name per line.
func (t *RotateTab) SetExceptions(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.exceptions = text
}

func (t *RotateTab) Exceptions() models.ExceptionSet {
	t.mu.Lock()
	defer t.mu.Unlock()
	return models.ParseExceptions(t.exceptions)
}

// OutputDir is the subfolder next to the selected files.
func (t *RotateTab) OutputDir() string {
	folder := t.Files.Folder()
	if folder == "" {
		return ""
	}
	return filepath.Join(folder, t.outputSubdir)
}

// Start validates the selection and processes it on a new goroutine. The
// selection and exceptions are captured at call time.
func (t *RotateTab) Start(ctx context.Context) (*Run, error) {
	files := t.Files.Selected()
	if len(files) == 0 {
		return nil, ErrNoSelection
	}
	destDir := filepath.Join(filepath.Dir(files[0]), t.outputSubdir)
	exceptions := t.Exceptions()

	return t.start(ctx, func(ctx context.Context) (*models.RunReport, error) {
		return t.rotator.Run(ctx, files, destDir, exceptions, t.sink)
	})
}

// MergeTab owns the state of the merge tab.
type MergeTab struct {
	worker
	Files *selection.FileList

	mu         sync.Mutex
	outputName string
	merger     Merger
	sink       progress.Sink
}

func NewMergeTab(merger Merger, defaultName string, sink progress.Sink) *MergeTab {
	return &MergeTab{
		Files:      selection.NewFileList(),
		outputName: defaultName,
		merger:     merger,
		sink:       sink,
	}
}

func (t *MergeTab) SetOutputName(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.outputName = name
}

func (t *MergeTab) OutputName() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.outputName
}

// Start merges the selected files, in list order, into the folder of the
// first one.
func (t *MergeTab) Start(ctx context.Context) (*Run, error) {
	files := t.Files.Selected()
	if len(files) == 0 {
		return nil, ErrNoSelection
	}
	destDir := filepath.Dir(files[0])
	name := t.OutputName()

	return t.start(ctx, func(ctx context.Context) (*models.RunReport, error) {
		return t.merger.Run(ctx, files, destDir, name, t.sink)
	})
}
