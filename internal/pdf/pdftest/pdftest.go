// Package pdftest generates small PDF fixtures for tests, so the repository
// carries no binary test data.
package pdftest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

var disableConfigDir sync.Once

// Page describes one fixture page. Width and Height are in points; the page
// is backed by a bitmap of the same pixel size.
type Page struct {
	Width    int
	Height   int
	Rotation int
}

// Portrait returns n portrait pages with the given rotation. Widths differ by
// one point per page so page order can be told apart after a merge.
func Portrait(n, rotation int) []Page {
	pages := make([]Page, n)
	for i := range pages {
		pages[i] = Page{Width: 100 + i, Height: 140, Rotation: rotation}
	}
	return pages
}

// WritePDF creates a PDF at path with one image page per entry.
func WritePDF(path string, pages ...Page) error {
	disableConfigDir.Do(api.DisableConfigDir)

	if len(pages) == 0 {
		return fmt.Errorf("pdftest: at least one page required")
	}

	imgs := make([]io.Reader, 0, len(pages))
	for i, p := range pages {
		data, err := pageImage(p, i)
		if err != nil {
			return err
		}
		imgs = append(imgs, bytes.NewReader(data))
	}

	var out bytes.Buffer
	if err := api.ImportImages(nil, &out, imgs, nil, nil); err != nil {
		return fmt.Errorf("pdftest: import images: %w", err)
	}
	if err := os.WriteFile(path, out.Bytes(), 0644); err != nil {
		return err
	}

	for i, p := range pages {
		if p.Rotation == 0 {
			continue
		}
		tmp := path + ".rot"
		if err := api.RotateFile(path, tmp, p.Rotation, []string{strconv.Itoa(i + 1)}, nil); err != nil {
			return fmt.Errorf("pdftest: rotate page %d: %w", i+1, err)
		}
		if err := os.Rename(tmp, path); err != nil {
			return err
		}
	}
	return nil
}

// WriteCorrupt writes a file with a .pdf name that no PDF reader accepts.
func WriteCorrupt(path string) error {
	return os.WriteFile(path, []byte("this is not a pdf"), 0644)
}

func pageImage(p Page, index int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	shade := uint8(40 * (index % 6))
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			if y < p.Height/2 {
				img.Set(x, y, color.RGBA{255, shade, 0, 255})
			} else {
				img.Set(x, y, color.RGBA{0, shade, 255, 255})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
