package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Rasterize renders each page with go-fitz at the configured DPI, rotates the
// bitmap clockwise by degrees and places it on a fresh page. Landscape bitmaps
// get a landscape page.
func (e *PDFEngine) Rasterize(path string, degrees int) (*Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	//Page numbers are zero indexed in the fitz package.
	pages := make([]io.ReadSeeker, 0, doc.NumPage())
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		img, err := doc.ImageDPI(pageNum, e.cfg.Rotation.RasterDPI)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", pageNum+1, err)
		}

		page, err := e.imagePage(RotateImage(img, degrees))
		if err != nil {
			return nil, fmt.Errorf("failed to build page %d: %w", pageNum+1, err)
		}
		pages = append(pages, bytes.NewReader(page))
	}

	e.logger.Debug("Rasterized %d pages of %s", len(pages), path)

	if len(pages) == 1 {
		return e.load(pages[0], path)
	}
	result, err := e.mergeRaw(pages)
	if err != nil {
		return nil, err
	}
	result.path = path
	return result, nil
}

// PageBox returns the target page size for a bitmap of the given size.
func (e *PDFEngine) PageBox(width, height int) (float64, float64) {
	w, h := e.cfg.Rotation.PageWidth, e.cfg.Rotation.PageHeight
	if width > height {
		return h, w
	}
	return w, h
}

func (e *PDFEngine) imagePage(img *image.RGBA) ([]byte, error) {
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		return nil, err
	}

	w, h := e.PageBox(img.Bounds().Dx(), img.Bounds().Dy())
	imp := pdfcpu.DefaultImportConfig()
	// Center keeps the page box and fits the image into it.
	imp.PageDim = &types.Dim{Width: w, Height: h}
	imp.Pos = types.Center
	imp.Scale = 1.0
	imp.ScaleAbs = false

	var out bytes.Buffer
	if err := api.ImportImages(nil, &out, []io.Reader{&encoded}, imp, e.newConfiguration()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// RotateImage returns src rotated clockwise by a multiple of 90 degrees.
func RotateImage(src *image.RGBA, degrees int) *image.RGBA {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var dst *image.RGBA
	switch NormalizeRotation(degrees) {
	case 90:
		dst = image.NewRGBA(image.Rect(0, 0, height, width))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				dst.SetRGBA(height-1-y, x, src.RGBAAt(bounds.Min.X+x, bounds.Min.Y+y))
			}
		}
	case 180:
		dst = image.NewRGBA(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				dst.SetRGBA(width-1-x, height-1-y, src.RGBAAt(bounds.Min.X+x, bounds.Min.Y+y))
			}
		}
	case 270:
		dst = image.NewRGBA(image.Rect(0, 0, height, width))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				dst.SetRGBA(y, width-1-x, src.RGBAAt(bounds.Min.X+x, bounds.Min.Y+y))
			}
		}
	default:
		return src
	}
	return dst
}
