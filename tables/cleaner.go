// Package tables validates and cleans raw table grids extracted from document
// pages. A raw grid is a sequence of rows of nullable cells, exactly as the
// page-extraction collaborator reports it; the cleaner normalizes cell
// whitespace and discards degenerate or mostly-empty grids.
package tables

import (
	"fmt"
	"strings"

	"github.com/jiarana/normadoc/model"
	"github.com/jiarana/normadoc/profile"
)

// Cleaner validates raw grids against the family's acceptance thresholds.
type Cleaner struct {
	minRows       int
	maxBlankRatio float64
}

// New creates a Cleaner for the given document family.
func New(p *profile.Profile) *Cleaner {
	return &Cleaner{
		minRows:       p.MinTableRows,
		maxBlankRatio: p.MaxBlankCellRatio,
	}
}

// Clean normalizes a raw grid and returns the resulting table, or ok=false
// when the grid is discarded. Rows with no cells are dropped, cell whitespace
// runs collapse to single spaces, absent cells become empty strings, and
// all-blank rows are dropped. The grid is discarded when fewer than the
// minimum rows survive or when the blank-cell fraction exceeds the threshold.
// page and ordinal are 1-based and synthesize the table id.
func (c *Cleaner) Clean(grid [][]*string, page, ordinal int) (model.Table, bool) {
	var rows [][]string
	for _, raw := range grid {
		if len(raw) == 0 {
			continue
		}

		row := make([]string, len(raw))
		blank := true
		for i, cell := range raw {
			if cell == nil {
				continue
			}
			row[i] = strings.Join(strings.Fields(*cell), " ")
			if row[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) < c.minRows {
		return model.Table{}, false
	}

	total, empty := 0, 0
	for _, row := range rows {
		for _, cell := range row {
			total++
			if strings.TrimSpace(cell) == "" {
				empty++
			}
		}
	}
	if total == 0 || float64(empty)/float64(total) > c.maxBlankRatio {
		return model.Table{}, false
	}

	return model.Table{
		ID:     fmt.Sprintf("tabla_p%d_%d", page, ordinal),
		Page:   page,
		Header: rows[0],
		Rows:   rows[1:],
	}, true
}
