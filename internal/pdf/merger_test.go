package pdf_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdftool/internal/config"
	"github.com/kpauljoseph/pdftool/internal/pdf"
	"github.com/kpauljoseph/pdftool/internal/pdf/pdftest"
	"github.com/kpauljoseph/pdftool/internal/progress"
	"github.com/kpauljoseph/pdftool/pkg/models"
)

var _ = Describe("Merger", func() {
	var (
		engine *pdf.PDFEngine
		merger *pdf.Merger
		dir    string
		sink   *progress.Collector
		ctx    context.Context
		fileA  string
		fileB  string
	)

	widthsOf := func(path string) []float64 {
		pages, err := engine.Inspect(path)
		Expect(err).NotTo(HaveOccurred())
		widths := make([]float64, len(pages))
		for i, p := range pages {
			widths[i] = p.Width
		}
		return widths
	}

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "pdftool-merger-*")
		Expect(err).NotTo(HaveOccurred())

		engine = pdf.NewEngine(config.Default(), pdfTestLogger())
		merger = pdf.NewMerger(engine, config.DefaultMergeName, pdfTestLogger())
		sink = progress.NewCollector()
		ctx = context.Background()

		fileA = filepath.Join(dir, "A.pdf")
		fileB = filepath.Join(dir, "B.pdf")
		Expect(pdftest.WritePDF(fileA,
			pdftest.Page{Width: 100, Height: 140},
			pdftest.Page{Width: 101, Height: 140},
			pdftest.Page{Width: 102, Height: 140},
		)).To(Succeed())
		Expect(pdftest.WritePDF(fileB,
			pdftest.Page{Width: 200, Height: 140},
			pdftest.Page{Width: 201, Height: 140},
		)).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should append B's pages after A's", func() {
		report, err := merger.Run(ctx, []string{fileA, fileB}, dir, "out.pdf", sink)
		Expect(err).NotTo(HaveOccurred())

		out := filepath.Join(dir, "out.pdf")
		Expect(out).To(BeAnExistingFile())
		Expect(report.Output).To(Equal(out))
		Expect(report.Pages).To(Equal(5))
		Expect(report.Size).To(BeNumerically(">", 0))

		expected := append(widthsOf(fileA), widthsOf(fileB)...)
		Expect(widthsOf(out)).To(Equal(expected))
	})

	It("should honor the supplied order", func() {
		_, err := merger.Run(ctx, []string{fileB, fileA}, dir, "reversed.pdf", sink)
		Expect(err).NotTo(HaveOccurred())

		expected := append(widthsOf(fileB), widthsOf(fileA)...)
		Expect(widthsOf(filepath.Join(dir, "reversed.pdf"))).To(Equal(expected))
	})

	It("should skip missing files and keep the rest", func() {
		missing := filepath.Join(dir, "missing.pdf")
		report, err := merger.Run(ctx, []string{fileA, missing, fileB}, dir, "out.pdf", sink)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Pages).To(Equal(5))
		Expect(report.NotFound()).To(Equal(1))
		Expect(report.Outcomes[1].Status).To(Equal(models.StatusNotFound))
		Expect(sink.String()).To(ContainSubstring("Not found: missing.pdf"))
	})

	It("should skip unreadable files", func() {
		broken := filepath.Join(dir, "broken.pdf")
		Expect(pdftest.WriteCorrupt(broken)).To(Succeed())

		report, err := merger.Run(ctx, []string{broken, fileB}, dir, "out.pdf", sink)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Failed()).To(Equal(1))
		Expect(report.Pages).To(Equal(2))
	})

	It("should fall back to the default name", func() {
		report, err := merger.Run(ctx, []string{fileA, fileB}, dir, "   ", sink)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Output).To(Equal(filepath.Join(dir, "Zusammengefuehrt.pdf")))
		Expect(report.Output).To(BeAnExistingFile())
	})

	It("should save a single input on its own", func() {
		report, err := merger.Run(ctx, []string{fileB}, dir, "single.pdf", sink)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Pages).To(Equal(2))
	})

	It("should not write anything for an empty selection", func() {
		report, err := merger.Run(ctx, nil, dir, "out.pdf", sink)
		Expect(errors.Is(err, pdf.ErrNoInput)).To(BeTrue())
		Expect(report).To(BeNil())
		Expect(filepath.Join(dir, "out.pdf")).NotTo(BeAnExistingFile())
		Expect(sink.String()).To(ContainSubstring("No PDFs selected"))
	})

	It("should not write anything when no input is readable", func() {
		report, err := merger.Run(ctx, []string{filepath.Join(dir, "x.pdf"), filepath.Join(dir, "y.pdf")}, dir, "out.pdf", sink)
		Expect(errors.Is(err, pdf.ErrNothingToMerge)).To(BeTrue())
		Expect(report.NotFound()).To(Equal(2))
		Expect(filepath.Join(dir, "out.pdf")).NotTo(BeAnExistingFile())
	})

	It("should return the error of the final save", func() {
		failing := pdf.NewMerger(failingSaveEngine{engine}, "", pdfTestLogger())
		_, err := failing.Run(ctx, []string{fileA, fileB}, dir, "out.pdf", sink)
		Expect(err).To(MatchError("disk full"))
		Expect(sink.String()).To(ContainSubstring("Saving out.pdf failed"))
	})

	DescribeTable("ResolveOutputName",
		func(in, expected string) {
			Expect(merger.ResolveOutputName(in)).To(Equal(expected))
		},
		Entry("empty", "", "Zusammengefuehrt.pdf"),
		Entry("blank", " \t ", "Zusammengefuehrt.pdf"),
		Entry("trimmed", "  out.pdf ", "out.pdf"),
	)
})
