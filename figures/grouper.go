// Package figures merges raw per-page image placements into logical figure
// regions and attaches a positional nearby-section estimate. Multi-tile PDFs
// store one logical figure as several image objects laid out in a grid; the
// grouper reassembles them by spatial adjacency and filters out decorative
// icons and letterhead banner strips.
package figures

import (
	"github.com/jiarana/normadoc/model"
	"github.com/jiarana/normadoc/profile"
)

// Grouper clusters image placements into maximal adjacency-connected regions.
type Grouper struct {
	tolerance    float64
	minWidth     float64
	minHeight    float64
	bannerWidth  float64
	bannerHeight float64
	bannerAspect float64
}

// New creates a Grouper with the family's adjacency tolerance and region
// acceptance thresholds.
func New(p *profile.Profile) *Grouper {
	return &Grouper{
		tolerance:    p.AdjacencyTolerance,
		minWidth:     p.FigureMinWidth,
		minHeight:    p.FigureMinHeight,
		bannerWidth:  p.BannerMinWidth,
		bannerHeight: p.BannerMaxHeight,
		bannerAspect: p.BannerMinAspect,
	}
}

// adjacent reports whether a box touches the envelope once the envelope is
// expanded by the tolerance on all sides: the extents must overlap on both
// axes.
func (g *Grouper) adjacent(envelope, box model.BBox) bool {
	return envelope.Expand(g.tolerance).Intersects(box)
}

// Group partitions placements into maximal adjacency-connected clusters and
// returns the union bounding box of each cluster, in first-member order.
//
// Each cluster grows from a seed placement: unassigned placements adjacent to
// the cluster's bounding envelope are absorbed and the envelope expands,
// repeating until a full scan absorbs nothing. The envelope is deliberately
// the adjacency reference rather than the individual members: absorbed tiles
// can bridge gaps between tiles that are not pairwise adjacent, which is how
// a tiled figure with uneven spacing still merges into one region.
func (g *Grouper) Group(placements []model.BBox) []model.BBox {
	used := make([]bool, len(placements))
	var regions []model.BBox

	for i, seed := range placements {
		if used[i] {
			continue
		}
		used[i] = true
		envelope := seed

		for absorbed := true; absorbed; {
			absorbed = false
			for j, box := range placements {
				if used[j] || !g.adjacent(envelope, box) {
					continue
				}
				envelope = envelope.Union(box)
				used[j] = true
				absorbed = true
			}
		}

		regions = append(regions, envelope)
	}

	return regions
}

// Keep reports whether a merged region is an acceptable figure: large enough
// on both axes, and not a banner. Wide, short, high-aspect regions are
// letterhead or logo strips, not figures.
func (g *Grouper) Keep(region model.BBox) bool {
	if region.Width < g.minWidth || region.Height < g.minHeight {
		return false
	}
	if region.Width > g.bannerWidth &&
		region.Height < g.bannerHeight &&
		region.AspectRatio() > g.bannerAspect {
		return false
	}
	return true
}

// GroupAndFilter merges placements and drops regions that fail Keep.
func (g *Grouper) GroupAndFilter(placements []model.BBox) []model.BBox {
	var kept []model.BBox
	for _, region := range g.Group(placements) {
		if g.Keep(region) {
			kept = append(kept, region)
		}
	}
	return kept
}
