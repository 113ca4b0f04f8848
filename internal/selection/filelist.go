package selection

import (
	"path/filepath"
	"sync"

	"github.com/kpauljoseph/pdftool/pkg/models"
)

// FileList is the view-model behind a checklist of PDFs: an ordered list with
// an inclusion flag per row.
type FileList struct {
	mu    sync.RWMutex
	files []models.InputFile
}

func NewFileList() *FileList {
	return &FileList{}
}

// Load replaces the list. Positions are renumbered in the given order.
func (l *FileList) Load(files []models.InputFile) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.files = make([]models.InputFile, len(files))
	copy(l.files, files)
	l.renumber()
}

func (l *FileList) Clear() {
	l.Load(nil)
}

func (l *FileList) Files() []models.InputFile {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.InputFile, len(l.files))
	copy(out, l.files)
	return out
}

func (l *FileList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.files)
}

func (l *FileList) SelectAll() {
	l.setAll(true)
}

func (l *FileList) SelectNone() {
	l.setAll(false)
}

func (l *FileList) setAll(included bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.files {
		l.files[i].Included = included
	}
}

// SetIncluded reports whether path was found.
func (l *FileList) SetIncluded(path string, included bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(path)
	if i < 0 {
		return false
	}
	l.files[i].Included = included
	return true
}

// MoveUp swaps path with its predecessor. It reports whether anything moved.
func (l *FileList) MoveUp(path string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(path)
	if i <= 0 {
		return false
	}
	l.files[i-1], l.files[i] = l.files[i], l.files[i-1]
	l.renumber()
	return true
}

func (l *FileList) MoveDown(path string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(path)
	if i < 0 || i >= len(l.files)-1 {
		return false
	}
	l.files[i], l.files[i+1] = l.files[i+1], l.files[i]
	l.renumber()
	return true
}

// Selected returns the included paths in list order.
func (l *FileList) Selected() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var paths []string
	for _, f := range l.files {
		if f.Included {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// Folder is the directory of the first file, or "" for an empty list.
func (l *FileList) Folder() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.files) == 0 {
		return ""
	}
	return filepath.Dir(l.files[0].Path)
}

func (l *FileList) index(path string) int {
	for i, f := range l.files {
		if f.Path == path {
			return i
		}
	}
	return -1
}

func (l *FileList) renumber() {
	for i := range l.files {
		l.files[i].Position = i
	}
}
