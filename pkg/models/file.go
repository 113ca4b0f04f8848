package models

import (
	"path/filepath"
	"strings"
)

// InputFile is a candidate PDF shown in a file list.
type InputFile struct {
	Path     string
	Name     string
	Size     int64
	Included bool
	Position int
}

// ExceptionSet holds base file names that are exempt from the rotation reset.
type ExceptionSet map[string]struct{}

// ParseExceptions reads one file name per line. Blank lines are ignored.
func ParseExceptions(text string) ExceptionSet {
	set := make(ExceptionSet)
	for _, line := range strings.Split(text, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

func NewExceptionSet(names ...string) ExceptionSet {
	set := make(ExceptionSet, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

// Contains matches on the base name of path only.
func (s ExceptionSet) Contains(path string) bool {
	if s == nil {
		return false
	}
	_, ok := s[filepath.Base(path)]
	return ok
}

func (s ExceptionSet) Len() int {
	return len(s)
}
