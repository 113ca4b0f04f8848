package models_test

import (
	"bytes"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdftool/pkg/logger"
	"github.com/kpauljoseph/pdftool/pkg/models"
)

var _ = Describe("Models", func() {
	Context("ExceptionSet", func() {
		It("should parse one name per line and drop blanks", func() {
			set := models.ParseExceptions("  scan.pdf \n\n\tcover.pdf\n   \n")
			Expect(set.Len()).To(Equal(2))
			Expect(set.Contains("scan.pdf")).To(BeTrue())
			Expect(set.Contains("cover.pdf")).To(BeTrue())
		})

		DescribeTable("Contains",
			func(path string, expected bool) {
				set := models.NewExceptionSet("scan.pdf")
				Expect(set.Contains(path)).To(Equal(expected))
			},
			Entry("bare name", "scan.pdf", true),
			Entry("absolute path", "/data/in/scan.pdf", true),
			Entry("different case", "/data/in/Scan.pdf", false),
			Entry("name only partially equal", "/data/in/scan.pdf.bak", false),
			Entry("directory name matches, file does not", "/scan.pdf/other.pdf", false),
		)

		It("should treat a nil set as empty", func() {
			var set models.ExceptionSet
			Expect(set.Contains("a.pdf")).To(BeFalse())
		})
	})

	Context("Outcome", func() {
		DescribeTable("Reduction",
			func(before, after int64, expected float64) {
				o := models.Outcome{SizeBefore: before, SizeAfter: after}
				Expect(o.Reduction()).To(BeNumerically("~", expected, 0.001))
			},
			Entry("halved", int64(1000), int64(500), 50.0),
			Entry("unchanged", int64(1000), int64(1000), 0.0),
			Entry("grew", int64(1000), int64(1100), -10.0),
			Entry("empty source", int64(0), int64(100), 0.0),
		)
	})

	Context("RunReport", func() {
		It("should count outcomes by status", func() {
			start := time.Now()
			report := &models.RunReport{Operation: models.OperationRotate, StartTime: start}
			report.Add(models.Outcome{Name: "a.pdf", Status: models.StatusSucceeded})
			report.Add(models.Outcome{Name: "b.pdf", Status: models.StatusFailed, Err: errors.New("broken")})
			report.Add(models.Outcome{Name: "c.pdf", Status: models.StatusNotFound})
			report.Add(models.Outcome{Name: "d.pdf", Status: models.StatusSucceeded, Exempt: true})
			report.EndTime = start.Add(1500 * time.Millisecond)

			Expect(report.Succeeded()).To(Equal(2))
			Expect(report.Failed()).To(Equal(1))
			Expect(report.NotFound()).To(Equal(1))
			Expect(report.TimeTaken()).To(Equal(1500 * time.Millisecond))
		})
	})
})

var _ = Describe("RunReport.Print", func() {
	It("should summarize the run and list failures", func() {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithFlags(0))

		report := &models.RunReport{Operation: models.OperationRotate, Output: "/out"}
		report.Add(models.Outcome{Name: "a.pdf", Status: models.StatusSucceeded})
		report.Add(models.Outcome{Name: "b.pdf", Status: models.StatusFailed, Err: errors.New("broken")})
		report.Print(log)

		out := buf.String()
		Expect(out).To(ContainSubstring("INFO: - Succeeded: 1"))
		Expect(out).To(ContainSubstring("INFO: - Failed: 1"))
		Expect(out).To(ContainSubstring("ERROR:   b.pdf: broken"))
		Expect(out).NotTo(ContainSubstring("Not found"))
	})
})
