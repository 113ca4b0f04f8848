package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/kpauljoseph/pdftool/internal/config"
	"github.com/kpauljoseph/pdftool/internal/controller"
	"github.com/kpauljoseph/pdftool/internal/pdf"
	"github.com/kpauljoseph/pdftool/internal/progress"
	"github.com/kpauljoseph/pdftool/internal/scanner"
	"github.com/kpauljoseph/pdftool/internal/selection"
	"github.com/kpauljoseph/pdftool/pkg/logger"
	"github.com/kpauljoseph/pdftool/pkg/models"
	"github.com/kpauljoseph/pdftool/pkg/utils"
	"github.com/kpauljoseph/pdftool/pkg/version"
)

type PDFToolGUI struct {
	// Core components
	window      fyne.Window
	log         *logger.Logger
	logFileName string
	cfg         *config.Config
	scanner     *scanner.DirectoryScanner
	mutex       sync.Mutex

	rotate *tabView
	merge  *tabView
}

// tabView holds the widgets of one tab. Both tabs share the same layout;
// merge additionally shows reorder buttons and an output name entry.
type tabView struct {
	files     *selection.FileList
	reorder   bool
	dirEntry  *widget.Entry
	checklist *fyne.Container
	logArea   *widget.Entry
	startBtn  *widget.Button
	status    *widget.Label
	collector *progress.Collector
}

func NewPDFToolGUI() *PDFToolGUI {
	log, logFileName, err := setupLogging()
	if err != nil {
		log = logger.New(logger.WithPrefix("[pdftool-gui] "))
		fmt.Printf("Warning: Failed to set up logging: %v\n", err)
	}

	cfg := config.Default()
	if path := os.Getenv("PDFTOOL_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Warn("Ignoring config %s: %v", path, err)
		} else {
			cfg = loaded
		}
	}

	pdftoolApp := app.New()
	window := pdftoolApp.NewWindow("PDF Tool")

	return &PDFToolGUI{
		window:      window,
		log:         log,
		logFileName: logFileName,
		cfg:         cfg,
		scanner:     scanner.New(log),
	}
}

func (gui *PDFToolGUI) setupUI() {
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu("Help",
			fyne.NewMenuItem("About", func() {
				dialog.ShowInformation(
					"About PDF Tool",
					version.GetDetailedVersionInfo(),
					gui.window,
				)
			}),
			fyne.NewMenuItem("Open Log File", gui.openLogFile),
		),
	)
	gui.window.SetMainMenu(mainMenu)

	engine := pdf.NewEngine(gui.cfg, gui.log)

	gui.rotate = gui.newTabView(false)
	rotateTab := controller.NewRotateTab(
		pdf.NewNormalizer(engine, gui.cfg.Rotation, gui.log),
		gui.cfg.OutputSubdir,
		progress.Tee(gui.rotate.collector, progress.NewLoggerSink(gui.log)),
	)
	gui.rotate.files = rotateTab.Files

	gui.merge = gui.newTabView(true)
	mergeTab := controller.NewMergeTab(
		pdf.NewMerger(engine, gui.cfg.MergeDefaultName, gui.log),
		gui.cfg.MergeDefaultName,
		progress.Tee(gui.merge.collector, progress.NewLoggerSink(gui.log)),
	)
	gui.merge.files = mergeTab.Files

	exceptionsEntry := widget.NewMultiLineEntry()
	exceptionsEntry.SetPlaceHolder("File names to leave unrotated, one per line")
	exceptionsEntry.SetMinRowsVisible(3)
	exceptionsEntry.OnChanged = rotateTab.SetExceptions

	nameEntry := widget.NewEntry()
	nameEntry.SetText(gui.cfg.MergeDefaultName)
	nameEntry.OnChanged = mergeTab.SetOutputName

	gui.rotate.startBtn.SetText("Rotate & Compress")
	gui.rotate.startBtn.OnTapped = func() {
		gui.handleStart(gui.rotate, rotateTab.Start, func(r *models.RunReport) string {
			return fmt.Sprintf("%d of %d file(s) written to %s", r.Succeeded(), len(r.Outcomes), r.Output)
		})
	}

	gui.merge.startBtn.SetText("Merge")
	gui.merge.startBtn.OnTapped = func() {
		gui.handleStart(gui.merge, mergeTab.Start, func(r *models.RunReport) string {
			return fmt.Sprintf("Saved %s (%s, %d pages)", r.Output, utils.FormatMB(r.Size), r.Pages)
		})
	}

	tabs := container.NewAppTabs(
		container.NewTabItem("Rotate & Compress", gui.layoutTab(gui.rotate,
			widget.NewCard("", "Exceptions", exceptionsEntry))),
		container.NewTabItem("Merge", gui.layoutTab(gui.merge,
			widget.NewCard("", "Output file name", nameEntry))),
	)

	gui.window.SetContent(container.NewPadded(tabs))
	gui.window.Resize(fyne.NewSize(700, 800))
	gui.window.SetFixedSize(false)
}

func (gui *PDFToolGUI) newTabView(reorder bool) *tabView {
	v := &tabView{
		reorder:   reorder,
		dirEntry:  widget.NewEntry(),
		checklist: container.NewVBox(),
		logArea:   widget.NewMultiLineEntry(),
		startBtn:  widget.NewButton("", nil),
		status:    widget.NewLabel("Select a folder to begin..."),
		collector: progress.NewCollector(),
	}
	v.dirEntry.SetPlaceHolder("Select PDF Folder")
	v.logArea.Wrapping = fyne.TextWrapWord
	v.logArea.SetMinRowsVisible(8)
	v.startBtn.Importance = widget.HighImportance
	v.collector.OnAppend(func(string) {
		gui.mutex.Lock()
		defer gui.mutex.Unlock()
		v.logArea.SetText(v.collector.String())
		v.logArea.CursorRow = len(v.collector.Lines())
	})
	return v
}

func (gui *PDFToolGUI) layoutTab(v *tabView, options fyne.CanvasObject) fyne.CanvasObject {
	browseBtn := widget.NewButton("Browse", func() { gui.handleBrowse(v) })
	browseBtn.Importance = widget.HighImportance

	allBtn := widget.NewButton("All", func() {
		v.files.SelectAll()
		gui.refreshChecklist(v)
	})
	noneBtn := widget.NewButton("None", func() {
		v.files.SelectNone()
		gui.refreshChecklist(v)
	})

	filesCard := widget.NewCard("", "Files", container.NewBorder(
		nil,
		container.NewHBox(allBtn, noneBtn, layout.NewSpacer()),
		nil, nil,
		container.NewVScroll(v.checklist),
	))

	top := container.NewVBox(
		container.NewBorder(nil, nil, nil, browseBtn, v.dirEntry),
	)
	bottom := container.NewVBox(options, v.startBtn, v.status)

	return container.NewBorder(top, bottom, nil, nil,
		container.NewVSplit(filesCard, v.logArea))
}

func (gui *PDFToolGUI) handleBrowse(v *tabView) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, gui.window)
			return
		}
		if uri == nil {
			return
		}
		gui.loadFolder(v, uri.Path())
	}, gui.window)
}

func (gui *PDFToolGUI) loadFolder(v *tabView, dir string) {
	v.dirEntry.SetText(dir)
	files, err := gui.scanner.FindPDFs(context.Background(), dir)
	if err != nil {
		v.files.Clear()
		gui.refreshChecklist(v)
		if errors.Is(err, scanner.ErrNoPDFs) {
			gui.updateStatus(v, "No PDFs found in this folder")
			return
		}
		dialog.ShowError(fmt.Errorf("error finding PDFs: %w", err), gui.window)
		return
	}

	v.files.Load(files)
	gui.refreshChecklist(v)
	gui.updateStatus(v, fmt.Sprintf("Found %d PDFs", len(files)))
}

// refreshChecklist rebuilds the rows from the file list, which stays the
// source of truth for order and inclusion.
func (gui *PDFToolGUI) refreshChecklist(v *tabView) {
	v.checklist.RemoveAll()
	for _, f := range v.files.Files() {
		path := f.Path
		check := widget.NewCheck(fmt.Sprintf("%s  (%s)", f.Name, utils.FormatMB(f.Size)), func(checked bool) {
			v.files.SetIncluded(path, checked)
		})
		check.SetChecked(f.Included)

		if !v.reorder {
			v.checklist.Add(check)
			continue
		}

		up := widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() {
			if v.files.MoveUp(path) {
				gui.refreshChecklist(v)
			}
		})
		down := widget.NewButtonWithIcon("", theme.MoveDownIcon(), func() {
			if v.files.MoveDown(path) {
				gui.refreshChecklist(v)
			}
		})
		up.Importance = widget.LowImportance
		down.Importance = widget.LowImportance
		v.checklist.Add(container.NewBorder(nil, nil, nil, container.NewHBox(up, down), check))
	}
	v.checklist.Refresh()
}

type startFunc func(ctx context.Context) (*controller.Run, error)

func (gui *PDFToolGUI) handleStart(v *tabView, start startFunc, summary func(*models.RunReport) string) {
	v.collector.Reset()
	run, err := start(context.Background())
	switch {
	case errors.Is(err, controller.ErrNoSelection):
		dialog.ShowError(errors.New("No PDFs selected!"), gui.window)
		return
	case errors.Is(err, controller.ErrRunning):
		dialog.ShowInformation("Busy", "Processing is still running.", gui.window)
		return
	case err != nil:
		dialog.ShowError(err, gui.window)
		return
	}

	v.startBtn.Disable()
	gui.updateStatus(v, "Processing files...")

	go func() {
		report, err := run.Wait()

		gui.mutex.Lock()
		v.startBtn.Enable()
		gui.mutex.Unlock()

		if err != nil {
			gui.updateStatus(v, "Error occurred during processing")
			dialog.ShowError(err, gui.window)
			return
		}
		report.Print(gui.log)
		gui.updateStatus(v, summary(report))
	}()
}

func (gui *PDFToolGUI) updateStatus(v *tabView, message string) {
	gui.mutex.Lock()
	defer gui.mutex.Unlock()
	v.status.SetText(message)
}

func (gui *PDFToolGUI) openLogFile() {
	if gui.logFileName == "" {
		return
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", gui.logFileName)
	case "darwin":
		cmd = exec.Command("open", gui.logFileName)
	default:
		cmd = exec.Command("xdg-open", gui.logFileName)
	}
	if err := cmd.Start(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to open log file: %w", err), gui.window)
	}
}

func setupLogging() (*logger.Logger, string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	logsDir := filepath.Join(homeDir, "pdftool-logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFileName := filepath.Join(logsDir, fmt.Sprintf("pdftool_%s.log", timestamp))

	absLogPath, err := filepath.Abs(logFileName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	logFile, err := os.Create(absLogPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, logFile)
	log := logger.New(
		logger.WithPrefix("[pdftool-gui] "),
		logger.WithOutput(multiWriter),
	)
	log.SetVerbose(strings.EqualFold(os.Getenv("PDFTOOL_VERBOSE"), "true"))

	return log, absLogPath, nil
}

func (gui *PDFToolGUI) Run() {
	gui.setupUI()
	gui.window.ShowAndRun()
}

func main() {
	NewPDFToolGUI().Run()
}
