package figures

import (
	"regexp"
	"strings"

	"github.com/jiarana/normadoc/model"
)

// bareIntegerRe matches top-level section labels.
var bareIntegerRe = regexp.MustCompile(`^\d+$`)

// NearbySection estimates the section a figure on the given page belongs to.
// The estimate is a coarse positional proxy — the figure's relative position
// through the body pages mapped onto the top-level sections — and is always
// flagged as estimated. It is never derived from actual page layout.
//
// Pages inside the skipped front matter map to the introduction section. The
// eligible sections are those with bare-integer labels; when a document has
// none, the first 10 detected sections stand in.
func NearbySection(page, totalPages, skipLeading int, secs []model.Section) model.SectionRef {
	if len(secs) == 0 {
		return model.SectionRef{Estimated: true}
	}

	if page <= skipLeading {
		intro := introduction(secs)
		return model.SectionRef{Number: intro.Number, Title: intro.Title, Estimated: true}
	}

	eligible := topLevel(secs)
	if len(eligible) == 0 {
		eligible = secs
		if len(eligible) > 10 {
			eligible = eligible[:10]
		}
	}

	span := totalPages - skipLeading
	if span < 1 {
		span = 1
	}
	rel := float64(page-skipLeading) / float64(span)

	idx := int(rel * float64(len(eligible)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(eligible) {
		idx = len(eligible) - 1
	}

	sec := eligible[idx]
	return model.SectionRef{Number: sec.Number, Title: sec.Title, Estimated: true}
}

// introduction picks the introduction section: label "0", a title starting
// with "INTRODUC", or failing both, the first section.
func introduction(secs []model.Section) model.Section {
	for _, s := range secs {
		if s.Number == "0" {
			return s
		}
	}
	for _, s := range secs {
		if strings.HasPrefix(strings.ToUpper(s.Title), "INTRODUC") {
			return s
		}
	}
	return secs[0]
}

// topLevel filters sections whose label is a bare integer.
func topLevel(secs []model.Section) []model.Section {
	var top []model.Section
	for _, s := range secs {
		if bareIntegerRe.MatchString(s.Number) {
			top = append(top, s)
		}
	}
	return top
}
