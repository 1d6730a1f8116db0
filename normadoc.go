// Package normadoc converts scanned or typeset technical-standard documents
// into a structured record: the standard's code and title, an ordered tree of
// numbered sections with cleaned prose, the validated tables, and the grouped
// figures with positional metadata.
//
// Basic usage:
//
//	record, warnings, err := normadoc.Open("une_23007.pdf").Record()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println(normadoc.FormatWarnings(warnings))
//	}
//
// With options:
//
//	record, _, err := normadoc.Open("une_23007.pdf").
//	    WithoutFigures().
//	    WithProfile(profile.UNE()).
//	    Record()
//
// Page-level extraction is a capability the pipeline consumes, not something
// it owns: any extract.PageExtractor can drive it. Open wires in the default
// pdfcpu-backed extractor; FromExtractor accepts a replacement.
package normadoc

import (
	"github.com/jiarana/normadoc/extract"
	pdfx "github.com/jiarana/normadoc/extract/pdfcpu"
)

// Open prepares a Pipeline over the document at path using the pdfcpu-backed
// page extractor. The document is not opened until a terminal operation such
// as Record runs.
func Open(path string) *Pipeline {
	p := newPipeline(defaultConfig())
	p.path = path
	p.openExtractor = func() (extract.PageExtractor, error) {
		return pdfx.Open(path)
	}
	return p
}

// FromExtractor prepares a Pipeline over an already-open page extractor.
// sourceName is recorded in the output record in place of a filename. If the
// extractor also implements extract.RegionRenderer, figures are extracted;
// otherwise figure extraction is disabled with a warning, per the degraded
// mode for a missing rendering capability.
func FromExtractor(ex extract.PageExtractor, sourceName string) *Pipeline {
	p := newPipeline(defaultConfig())
	p.path = sourceName
	p.openExtractor = func() (extract.PageExtractor, error) {
		return ex, nil
	}
	return p
}
