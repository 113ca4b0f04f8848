package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// PageInfo describes a single page. Number is 1-based.
type PageInfo struct {
	Number   int
	Width    float64
	Height   float64
	Rotation int
}

// Document is an in-memory PDF.
type Document struct {
	ctx  *model.Context
	path string
}

func newDocument(ctx *model.Context, path string) (*Document, error) {
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}
	return &Document{ctx: ctx, path: path}, nil
}

// Path is the file the document was loaded from, empty for generated documents.
func (d *Document) Path() string {
	return d.path
}

func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Rotations returns the effective rotation of every page, normalized to
// 0, 90, 180 or 270.
func (d *Document) Rotations() ([]int, error) {
	pages, err := d.Pages()
	if err != nil {
		return nil, err
	}
	rotations := make([]int, len(pages))
	for i, p := range pages {
		rotations[i] = p.Rotation
	}
	return rotations, nil
}

func (d *Document) Pages() ([]PageInfo, error) {
	pages := make([]PageInfo, 0, d.ctx.PageCount)
	for pageNr := 1; pageNr <= d.ctx.PageCount; pageNr++ {
		pageDict, _, inh, err := d.ctx.PageDict(pageNr, false)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", pageNr, err)
		}
		if pageDict == nil {
			return nil, fmt.Errorf("page %d not found", pageNr)
		}

		info := PageInfo{Number: pageNr}
		info.Rotation, err = d.effectiveRotation(pageDict, inh)
		if err != nil {
			return nil, fmt.Errorf("failed to read rotation of page %d: %w", pageNr, err)
		}

		if inh != nil {
			box := inh.CropBox
			if box == nil {
				box = inh.MediaBox
			}
			if box != nil {
				info.Width = box.Width()
				info.Height = box.Height()
			}
		}
		pages = append(pages, info)
	}
	return pages, nil
}

// ResetRotations sets /Rotate 0 on every page and reports how many pages had
// a non-zero rotation. Page content is left as is. The entry is written on
// each page so that a rotation inherited from the page tree is overridden too.
func (d *Document) ResetRotations() (int, error) {
	touched := 0
	for pageNr := 1; pageNr <= d.ctx.PageCount; pageNr++ {
		pageDict, _, inh, err := d.ctx.PageDict(pageNr, false)
		if err != nil {
			return touched, fmt.Errorf("failed to read page %d: %w", pageNr, err)
		}
		if pageDict == nil {
			return touched, fmt.Errorf("page %d not found", pageNr)
		}

		rotation, err := d.effectiveRotation(pageDict, inh)
		if err != nil {
			return touched, fmt.Errorf("failed to read rotation of page %d: %w", pageNr, err)
		}
		if rotation != 0 {
			touched++
		}
		pageDict["Rotate"] = types.Integer(0)
	}
	return touched, nil
}

func (d *Document) effectiveRotation(pageDict types.Dict, inh *model.InheritedPageAttrs) (int, error) {
	if obj, found := pageDict.Find("Rotate"); found && obj != nil {
		i, err := d.ctx.DereferenceInteger(obj)
		if err != nil {
			return 0, err
		}
		if i != nil {
			return NormalizeRotation(i.Value()), nil
		}
	}
	if inh != nil {
		return NormalizeRotation(inh.Rotate), nil
	}
	return 0, nil
}

// NormalizeRotation maps any multiple of 90 into [0, 360).
func NormalizeRotation(degrees int) int {
	return ((degrees % 360) + 360) % 360
}
