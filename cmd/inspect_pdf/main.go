package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"

	"github.com/kpauljoseph/pdftool/internal/config"
	"github.com/kpauljoseph/pdftool/internal/pdf"
	"github.com/kpauljoseph/pdftool/pkg/logger"
	"github.com/kpauljoseph/pdftool/pkg/utils"
)

func main() {
	pdfPath := flag.String("file", "", "Path to PDF file")
	renderDir := flag.String("render", "", "Optional directory to save page images for manual inspection")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Parse()

	if *pdfPath == "" {
		fmt.Println("Please provide a PDF file path using -file flag")
		os.Exit(1)
	}

	log := logger.New(logger.WithPrefix("[inspect_pdf] "), logger.WithOutput(os.Stderr))
	log.SetVerbose(*verbose)

	size, err := utils.FileSize(*pdfPath)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Analyzing PDF: %s (%s)\n", *pdfPath, utils.FormatMB(size))

	engine := pdf.NewEngine(config.Default(), log)
	pages, err := engine.Inspect(*pdfPath)
	if err != nil {
		fmt.Printf("Error inspecting pages: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Pages: %d\n", len(pages))
	for _, p := range pages {
		fmt.Printf("\nPage %d:\n", p.Number)
		fmt.Printf("Dimensions (Width x Height): %.3f x %.3f points\n", p.Width, p.Height)
		fmt.Printf("Rotation: %d\n", p.Rotation)
	}

	if *renderDir != "" {
		if err := render(*pdfPath, *renderDir); err != nil {
			fmt.Printf("Error rendering pages: %v\n", err)
			os.Exit(1)
		}
	}
}

func render(path, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	doc, err := fitz.New(path)
	if err != nil {
		return fmt.Errorf("error opening PDF: %w", err)
	}
	defer doc.Close()

	fmt.Printf("\nSaved page images to:\n")
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			return fmt.Errorf("page %d: %w", n+1, err)
		}

		out := filepath.Join(dir, fmt.Sprintf("page%d.png", n+1))
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("%s\n", out)
	}
	return nil
}
