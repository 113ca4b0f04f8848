package pdf

// Engine is the PDF capability the operations are built on. PDFEngine is the
// pdfcpu/go-fitz backed implementation.
type Engine interface {
	// Load reads and validates a document fully into memory.
	Load(path string) (*Document, error)
	// Save writes doc to path with recompression applied.
	Save(doc *Document, path string) error
	// Merge concatenates the pages of docs in order into a new document.
	Merge(docs []*Document) (*Document, error)
	// Rasterize renders every page of the file at path, rotates the bitmap by
	// degrees and returns a document built from the bitmaps.
	Rasterize(path string, degrees int) (*Document, error)
}
