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

type failingSaveEngine struct {
	*pdf.PDFEngine
}

func (failingSaveEngine) Save(*pdf.Document, string) error {
	return errors.New("disk full")
}

var _ = Describe("Rotation normalizer", func() {
	var (
		engine     *pdf.PDFEngine
		normalizer *pdf.Normalizer
		sourceDir  string
		outputDir  string
		sink       *progress.Collector
		ctx        context.Context
		fileA      string
		fileB      string
	)

	rotationsOf := func(path string) []int {
		doc, err := engine.Load(path)
		Expect(err).NotTo(HaveOccurred())
		rotations, err := doc.Rotations()
		Expect(err).NotTo(HaveOccurred())
		return rotations
	}

	BeforeEach(func() {
		var err error
		sourceDir, err = os.MkdirTemp("", "pdftool-normalizer-*")
		Expect(err).NotTo(HaveOccurred())
		outputDir = filepath.Join(sourceDir, "komprimiert")

		engine = pdf.NewEngine(config.Default(), pdfTestLogger())
		normalizer = pdf.NewNormalizer(engine, config.Default().Rotation, pdfTestLogger())
		sink = progress.NewCollector()
		ctx = context.Background()

		fileA = filepath.Join(sourceDir, "A.pdf")
		fileB = filepath.Join(sourceDir, "B.pdf")
		Expect(pdftest.WritePDF(fileA,
			pdftest.Page{Width: 100, Height: 140, Rotation: 90},
			pdftest.Page{Width: 101, Height: 140, Rotation: 180},
			pdftest.Page{Width: 102, Height: 140},
		)).To(Succeed())
		Expect(pdftest.WritePDF(fileB, pdftest.Portrait(2, 270)...)).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(sourceDir)).To(Succeed())
	})

	It("should reset every rotation and keep page counts", func() {
		report, err := normalizer.Run(ctx, []string{fileA, fileB}, outputDir, nil, sink)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Succeeded()).To(Equal(2))
		Expect(report.Failed()).To(BeZero())
		Expect(report.Output).To(Equal(outputDir))
		Expect(report.Pages).To(Equal(5))

		outA := filepath.Join(outputDir, "A.pdf")
		outB := filepath.Join(outputDir, "B.pdf")
		Expect(outA).To(BeAnExistingFile())
		Expect(outB).To(BeAnExistingFile())

		Expect(rotationsOf(outA)).To(Equal([]int{0, 0, 0}))
		Expect(rotationsOf(outB)).To(Equal([]int{0, 0}))

		Expect(report.Outcomes[0].Rotated).To(Equal(2))
		Expect(report.Outcomes[0].Pages).To(Equal(3))
		Expect(report.Outcomes[1].Rotated).To(Equal(2))
		Expect(report.Outcomes[0].SizeBefore).To(BeNumerically(">", 0))
		Expect(report.Outcomes[0].SizeAfter).To(BeNumerically(">", 0))
	})

	It("should leave exempt files rotated", func() {
		exceptions := models.ParseExceptions("B.pdf\n")
		report, err := normalizer.Run(ctx, []string{fileA, fileB}, outputDir, exceptions, sink)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Succeeded()).To(Equal(2))

		Expect(rotationsOf(filepath.Join(outputDir, "A.pdf"))).To(Equal([]int{0, 0, 0}))
		Expect(rotationsOf(filepath.Join(outputDir, "B.pdf"))).To(Equal([]int{270, 270}))

		Expect(report.Outcomes[1].Exempt).To(BeTrue())
		Expect(report.Outcomes[1].Rotated).To(BeZero())
		Expect(sink.String()).To(ContainSubstring("B.pdf – not rotated (exception)"))
	})

	It("should be idempotent", func() {
		_, err := normalizer.Run(ctx, []string{fileA}, outputDir, nil, sink)
		Expect(err).NotTo(HaveOccurred())

		secondDir := filepath.Join(sourceDir, "second")
		report, err := normalizer.Run(ctx, []string{filepath.Join(outputDir, "A.pdf")}, secondDir, nil, sink)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Outcomes[0].Rotated).To(BeZero())
		Expect(rotationsOf(filepath.Join(secondDir, "A.pdf"))).To(Equal([]int{0, 0, 0}))
	})

	It("should report an empty selection without touching the disk", func() {
		report, err := normalizer.Run(ctx, nil, outputDir, nil, sink)
		Expect(errors.Is(err, pdf.ErrNoInput)).To(BeTrue())
		Expect(report).To(BeNil())
		Expect(outputDir).NotTo(BeADirectory())
		Expect(sink.Lines()).To(ConsistOf(ContainSubstring("No PDFs selected")))
	})

	It("should continue after a broken file", func() {
		broken := filepath.Join(sourceDir, "broken.pdf")
		Expect(pdftest.WriteCorrupt(broken)).To(Succeed())

		report, err := normalizer.Run(ctx, []string{broken, fileA}, outputDir, nil, sink)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Failed()).To(Equal(1))
		Expect(report.Succeeded()).To(Equal(1))
		Expect(report.Outcomes[0].Err).To(HaveOccurred())

		Expect(filepath.Join(outputDir, "broken.pdf")).NotTo(BeAnExistingFile())
		Expect(filepath.Join(outputDir, "A.pdf")).To(BeAnExistingFile())

		Expect(sink.String()).To(ContainSubstring("❌ broken.pdf"))
		Expect(sink.String()).To(ContainSubstring("✅ A.pdf"))
	})

	It("should record a missing input as a failure", func() {
		report, err := normalizer.Run(ctx, []string{filepath.Join(sourceDir, "gone.pdf")}, outputDir, nil, sink)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Failed()).To(Equal(1))
		Expect(outputDir).To(BeADirectory())
	})

	It("should record save failures per file", func() {
		failing := pdf.NewNormalizer(failingSaveEngine{engine}, config.Default().Rotation, pdfTestLogger())
		report, err := failing.Run(ctx, []string{fileA, fileB}, outputDir, nil, sink)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Failed()).To(Equal(2))
		Expect(sink.String()).To(ContainSubstring("disk full"))
	})

	It("should stop when the context is cancelled", func() {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		report, err := normalizer.Run(cancelled, []string{fileA}, outputDir, nil, sink)
		Expect(err).To(Equal(context.Canceled))
		Expect(report.Outcomes).To(BeEmpty())
	})

	It("should narrate the run", func() {
		_, err := normalizer.Run(ctx, []string{fileA}, outputDir, nil, sink)
		Expect(err).NotTo(HaveOccurred())

		lines := sink.Lines()
		Expect(lines).To(HaveLen(3))
		Expect(lines[0]).To(ContainSubstring("Processing 1 PDF(s)"))
		Expect(lines[1]).To(MatchRegexp(`A\.pdf – rotation reset on 2 page\(s\) – \d+\.\d MB \(-?\d+% (smaller|larger)\)`))
		Expect(lines[2]).To(ContainSubstring(outputDir))
	})

	Context("in rasterize mode", func() {
		var (
			rotation   config.Rotation
			rasterizer *pdf.Normalizer
		)

		BeforeEach(func() {
			rotation = config.Default().Rotation
			rotation.Mode = config.ModeRasterize
			rasterizer = pdf.NewNormalizer(engine, rotation, pdfTestLogger())
		})

		It("should render portrait pages onto the portrait box", func() {
			fileC := filepath.Join(sourceDir, "C.pdf")
			Expect(pdftest.WritePDF(fileC, pdftest.Portrait(2, 0)...)).To(Succeed())

			report, err := rasterizer.Run(ctx, []string{fileC}, outputDir, nil, sink)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Succeeded()).To(Equal(1))
			Expect(report.Outcomes[0].Rotated).To(Equal(2))

			pages, err := engine.Inspect(filepath.Join(outputDir, "C.pdf"))
			Expect(err).NotTo(HaveOccurred())
			Expect(pages).To(HaveLen(2))
			for _, p := range pages {
				Expect(p.Rotation).To(BeZero())
				Expect(p.Width).To(BeNumerically("~", rotation.PageWidth, 1))
				Expect(p.Height).To(BeNumerically("~", rotation.PageHeight, 1))
			}
		})

		It("should pick the landscape box for pages displayed sideways", func() {
			report, err := rasterizer.Run(ctx, []string{fileB}, outputDir, models.NewExceptionSet("B.pdf"), sink)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Succeeded()).To(Equal(1))
			Expect(report.Outcomes[0].Rotated).To(BeZero())

			pages, err := engine.Inspect(filepath.Join(outputDir, "B.pdf"))
			Expect(err).NotTo(HaveOccurred())
			Expect(pages).To(HaveLen(2))
			for _, p := range pages {
				Expect(p.Width).To(BeNumerically("~", rotation.PageHeight, 1))
				Expect(p.Height).To(BeNumerically("~", rotation.PageWidth, 1))
			}
		})
	})
})
