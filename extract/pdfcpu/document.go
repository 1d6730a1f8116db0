// Package pdfcpu implements the page-extraction collaborator on top of the
// pdfcpu library. Page text is recovered by walking decoded content-stream
// text operators, image placements by replaying the graphics state around
// each XObject invocation, and region rendering by compositing the page's
// embedded image tiles at a target DPI.
//
// The implementation targets the bounded family of similarly-produced
// standard documents, not arbitrary PDFs; pages this walker cannot make sense
// of simply yield no text, which the pipeline reports as a per-document
// warning.
package pdfcpu

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/jiarana/normadoc/extract"
)

// Document is an open PDF implementing extract.PageExtractor and
// extract.RegionRenderer.
type Document struct {
	path string
	ctx  *model.Context
}

// Open reads, validates, and optimizes a PDF.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read %s: %w", path, err)
	}

	return &Document{path: path, ctx: ctx}, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// PageText extracts the raw text of a page from its content stream. ok is
// false when the page has no stream or the stream yields no text at all.
func (d *Document) PageText(page int) (string, bool) {
	data, err := d.pageContent(page)
	if err != nil || len(data) == 0 {
		return "", false
	}

	text := assembleText(interpret(data).runs)
	if text == "" {
		return "", false
	}
	return text, true
}

// pageContent returns the decoded content stream of a page.
func (d *Document) pageContent(page int) ([]byte, error) {
	r, err := pdfcpu.ExtractPageContent(d.ctx, page)
	if err != nil {
		return nil, fmt.Errorf("extracting page %d content: %w", page, err)
	}
	return io.ReadAll(r)
}

// hasImages reports whether a page references any image XObjects.
func (d *Document) hasImages(page int) bool {
	return len(pdfcpu.ImageObjNrs(d.ctx, page)) > 0
}

var _ extract.PageExtractor = (*Document)(nil)
var _ extract.RegionRenderer = (*Document)(nil)
