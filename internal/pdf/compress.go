package pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/filter"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Streams smaller than this are written as is.
const minDeflateSize = 64

// deflateStreams Flate-encodes every stream that has no filter yet. The
// encoded form replaces the original only when it is smaller. XMP metadata is
// left readable.
func deflateStreams(ctx *model.Context) (int, error) {
	deflated := 0
	for objNr, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Object == nil {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok || len(sd.FilterPipeline) > 0 || len(sd.Raw) < minDeflateSize {
			continue
		}
		if _, found := sd.Find("Filter"); found {
			continue
		}
		if t := sd.Type(); t != nil && *t == "Metadata" {
			continue
		}

		encoded := sd
		encoded.Dict = sd.Dict.Clone().(types.Dict)
		encoded.Content = sd.Raw
		encoded.FilterPipeline = []types.PDFFilter{{Name: filter.Flate}}
		encoded.InsertName("Filter", filter.Flate)

		if err := encoded.Encode(); err != nil {
			return deflated, fmt.Errorf("object %d: %w", objNr, err)
		}
		if len(encoded.Raw) >= len(sd.Raw) {
			continue
		}

		entry.Object = encoded
		deflated++
	}
	return deflated, nil
}
