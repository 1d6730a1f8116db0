// Package extract defines the page-extraction collaborator interface the
// pipeline consumes. The core treats page-level text, table-grid, and
// image-placement extraction as an external capability: given a page, return
// its raw text, its raw grids, and its raw image placement records. Any
// implementation honoring these interfaces can drive the pipeline; the
// pdfcpu subpackage provides the default one.
package extract

import (
	"github.com/jiarana/normadoc/model"
)

// LineStrategy selects how an implementation detects table cell boundaries.
type LineStrategy string

const (
	// StrategyLines detects cells from ruled lines drawn on the page.
	StrategyLines LineStrategy = "lines"

	// StrategyText infers cell boundaries from text alignment.
	StrategyText LineStrategy = "text"
)

// TableConfig carries the grid-detection settings passed through to the
// collaborator for each page.
type TableConfig struct {
	Vertical      LineStrategy
	Horizontal    LineStrategy
	SnapTolerance float64
	JoinTolerance float64
}

// DefaultTableConfig returns the settings used for the UNE family: ruled-line
// detection with a 5-pixel snap and join tolerance.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		Vertical:      StrategyLines,
		Horizontal:    StrategyLines,
		SnapTolerance: 5,
		JoinTolerance: 5,
	}
}

// PageExtractor is the per-page extraction capability. Pages are 1-based.
// Implementations are used single-threaded for the duration of one document.
type PageExtractor interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// PageText returns the raw extracted text of a page, or ok=false when
	// the page yields no extractable text.
	PageText(page int) (text string, ok bool)

	// PageTables returns the raw table grids of a page: each grid is a
	// sequence of rows of nullable cell strings.
	PageTables(page int, cfg TableConfig) [][][]*string

	// PageImagePlacements returns the bounding boxes of raster image
	// placements on a page, in draw order, in page coordinates.
	PageImagePlacements(page int) []model.BBox
}

// RenderedImage is one rasterized figure region.
type RenderedImage struct {
	Data   []byte
	Format string
}

// RegionRenderer is the optional rasterization capability. When a
// PageExtractor does not also implement RegionRenderer, figure extraction is
// disabled for the run and everything else proceeds.
type RegionRenderer interface {
	// RenderRegion rasterizes the given page region at the target DPI.
	RenderRegion(page int, bbox model.BBox, dpi float64) (RenderedImage, error)
}
