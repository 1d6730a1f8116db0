package pdfcpu

import (
	"sort"
	"strings"

	"github.com/jiarana/normadoc/extract"
)

// minRuleLength filters out tick marks and underlines that are too short to
// be table rules.
const minRuleLength = 10.0

// PageTables recovers raw table grids from the ruled lines drawn on a page.
// Horizontal and vertical rules are grouped into aligned boundary positions
// using the config's snap tolerance; the resulting cell lattice is filled
// with the text runs falling inside each cell. Cells no run lands in are
// reported as absent (nil), exactly as the cleaner expects.
//
// The page is assumed to hold at most one ruled table, which holds for the
// document family this module targets; pages whose rules do not form at
// least a 2×2 lattice yield nothing.
func (d *Document) PageTables(page int, cfg extract.TableConfig) [][][]*string {
	data, err := d.pageContent(page)
	if err != nil {
		return nil
	}
	return gridsFromContent(interpret(data), cfg)
}

// gridsFromContent builds the raw grids of one interpreted page.
func gridsFromContent(content pageContentData, cfg extract.TableConfig) [][][]*string {
	if len(content.segments) == 0 {
		return nil
	}

	var hPos, vPos []float64
	for _, s := range content.segments {
		if s.length() < minRuleLength {
			continue
		}
		switch {
		case s.horizontal():
			hPos = append(hPos, (s.y0+s.y1)/2)
		case s.vertical():
			vPos = append(vPos, (s.x0+s.x1)/2)
		}
	}

	rowBounds := snapPositions(hPos, cfg.SnapTolerance) // Y, descending
	colBounds := snapPositions(vPos, cfg.SnapTolerance) // X, ascending
	sort.Sort(sort.Reverse(sort.Float64Slice(rowBounds)))
	sort.Float64s(colBounds)

	rows, cols := len(rowBounds)-1, len(colBounds)-1
	if rows < 1 || cols < 1 || rows*cols < 4 {
		return nil
	}

	cells := make([][]strings.Builder, rows)
	for i := range cells {
		cells[i] = make([]strings.Builder, cols)
	}

	for _, run := range sortedByReadingOrder(content.runs) {
		row := bandBetween(rowBounds, run.y, true)
		col := bandBetween(colBounds, run.x, false)
		if row < 0 || col < 0 {
			continue
		}
		if cells[row][col].Len() > 0 {
			cells[row][col].WriteByte(' ')
		}
		cells[row][col].WriteString(run.text)
	}

	grid := make([][]*string, rows)
	for i := range grid {
		grid[i] = make([]*string, cols)
		for j := range grid[i] {
			if cells[i][j].Len() == 0 {
				continue
			}
			text := cells[i][j].String()
			grid[i][j] = &text
		}
	}

	return [][][]*string{grid}
}

// snapPositions groups near-coincident rule positions into averaged
// boundaries, the way repeated strokes and hairline doubles are drawn.
func snapPositions(positions []float64, tolerance float64) []float64 {
	if len(positions) == 0 {
		return nil
	}
	if tolerance <= 0 {
		tolerance = 1
	}

	sort.Float64s(positions)

	var bounds []float64
	groupStart := 0
	for i := 1; i <= len(positions); i++ {
		if i < len(positions) && positions[i]-positions[i-1] <= tolerance {
			continue
		}
		sum := 0.0
		for _, p := range positions[groupStart:i] {
			sum += p
		}
		bounds = append(bounds, sum/float64(i-groupStart))
		groupStart = i
	}

	return bounds
}

// bandBetween locates the band index a coordinate falls into. For rows the
// bounds descend (PDF Y grows upward); for columns they ascend.
func bandBetween(bounds []float64, v float64, descending bool) int {
	for i := 0; i+1 < len(bounds); i++ {
		if descending {
			if v <= bounds[i] && v >= bounds[i+1] {
				return i
			}
		} else {
			if v >= bounds[i] && v <= bounds[i+1] {
				return i
			}
		}
	}
	return -1
}

// sortedByReadingOrder orders runs top to bottom, then left to right, so
// multi-run cell text concatenates in reading order.
func sortedByReadingOrder(runs []textRun) []textRun {
	sorted := make([]textRun, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if diff := sorted[i].y - sorted[j].y; diff > lineTolerance || diff < -lineTolerance {
			return sorted[i].y > sorted[j].y
		}
		return sorted[i].x < sorted[j].x
	})
	return sorted
}
