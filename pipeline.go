package normadoc

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jiarana/normadoc/extract"
	"github.com/jiarana/normadoc/figures"
	"github.com/jiarana/normadoc/model"
	"github.com/jiarana/normadoc/normtext"
	"github.com/jiarana/normadoc/sections"
	"github.com/jiarana/normadoc/tables"
)

// ErrNoText marks a document that yielded no extractable text. Batch callers
// treat it as a per-document failure: report, skip, continue.
var ErrNoText = errors.New("no extractable text")

// identityScanLimit bounds how far into the normalized text the code and
// title patterns look. The identity always sits on the opening pages.
const identityScanLimit = 3000

// Pipeline processes one document into a structured record. All intermediate
// state lives inside Record's call frame and is discarded when it returns;
// a Pipeline holds only configuration and can be discarded after use.
type Pipeline struct {
	path          string
	cfg           config
	openExtractor func() (extract.PageExtractor, error)
}

func newPipeline(cfg config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Record runs the full pipeline: page texts through noise removal and
// section segmentation, page grids through table validation, and page image
// placements through figure grouping and rendering. Warnings report degraded
// or skipped work; the error is non-nil only when the document as a whole
// could not be processed.
func (p *Pipeline) Record() (*model.DocumentRecord, []Warning, error) {
	ex, err := p.openExtractor()
	if err != nil {
		return nil, nil, err
	}

	prof := p.cfg.profile
	log := p.cfg.logger

	normalizer := normtext.New(prof)
	segmenter := sections.New(prof)
	cleaner := tables.New(prof)
	grouper := figures.New(prof)

	total := ex.PageCount()

	var pageTexts []string
	for page := 1; page <= total; page++ {
		if text, ok := ex.PageText(page); ok {
			pageTexts = append(pageTexts, text)
		}
	}
	if len(pageTexts) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", p.path, ErrNoText)
	}

	clean := normalizer.Normalize(strings.Join(pageTexts, "\n\n"))

	code, title := p.identity(clean)
	if code == "" {
		code = filenameStem(p.path)
	}

	secs := segmenter.Segment(clean)
	sections.Sort(secs)
	log.Info("sections detected", "document", p.path, "count", len(secs))

	var tabs []model.Table
	tableCfg := extract.DefaultTableConfig()
	for page := 1; page <= total; page++ {
		for i, grid := range ex.PageTables(page, tableCfg) {
			if t, ok := cleaner.Clean(grid, page, i+1); ok {
				tabs = append(tabs, t)
			}
		}
	}
	log.Info("tables extracted", "document", p.path, "count", len(tabs))

	var warnings []Warning
	var figs []model.Figure
	if p.cfg.figures {
		figs, warnings = p.extractFigures(ex, grouper, secs, total)
		log.Info("figures extracted", "document", p.path, "count", len(figs))
	}

	return &model.DocumentRecord{
		Code:        code,
		Title:       title,
		SourceFile:  filepath.Base(p.path),
		ExtractedAt: time.Now(),
		TotalPages:  total,
		Sections:    secs,
		Tables:      tabs,
		Figures:     figs,
	}, warnings, nil
}

// extractFigures groups, filters, and renders figure regions page by page.
// The leading cover/TOC pages and the final back-matter page are excluded.
// Rendering is the optional capability: an extractor without it disables
// figure extraction with a single warning.
func (p *Pipeline) extractFigures(ex extract.PageExtractor, grouper *figures.Grouper, secs []model.Section, total int) ([]model.Figure, []Warning) {
	renderer, ok := ex.(extract.RegionRenderer)
	if !ok {
		return nil, []Warning{{
			Code:    WarnNoRenderer,
			Message: "extractor has no rendering capability, figure extraction disabled",
		}}
	}

	prof := p.cfg.profile
	var warnings []Warning
	var figs []model.Figure

	capped := false
	for page := prof.SkipLeadingPages + 1; page < total && !capped; page++ {
		regions := grouper.GroupAndFilter(ex.PageImagePlacements(page))
		for i, region := range regions {
			rendered, err := renderer.RenderRegion(page, region, p.cfg.dpi)
			if err != nil {
				warnings = append(warnings, Warning{
					Code:    WarnRenderFailed,
					Page:    page,
					Message: err.Error(),
				})
				continue
			}

			id := fmt.Sprintf("figura_p%d_%d", page, i+1)
			figs = append(figs, model.Figure{
				ID:            id,
				File:          id + "." + rendered.Format,
				Page:          page,
				BBox:          region,
				NearbySection: figures.NearbySection(page, total, prof.SkipLeadingPages, secs),
				Format:        rendered.Format,
				ByteSize:      len(rendered.Data),
				Data:          rendered.Data,
			})

			// Emit the cap warning where the cap is hit, so a document
			// capped on its last region still reports the condition.
			if len(figs) >= prof.MaxFigures {
				warnings = append(warnings, Warning{
					Code:    WarnFigureCap,
					Page:    page,
					Message: fmt.Sprintf("figure cap of %d reached, remaining figures skipped", prof.MaxFigures),
				})
				capped = true
				break
			}
		}
	}

	return figs, warnings
}

// identity extracts the standard's code and descriptive title from the
// opening pages. The title is only trusted when a code was found; a title
// pattern alone matches too loosely.
func (p *Pipeline) identity(clean string) (code, title string) {
	head := clean
	if runes := []rune(head); len(runes) > identityScanLimit {
		head = string(runes[:identityScanLimit])
	}

	if p.cfg.profile.CodePattern != "" {
		re, err := regexp.Compile(`(?i)` + p.cfg.profile.CodePattern)
		if err == nil {
			if m := re.FindStringSubmatch(head); m != nil {
				raw := m[0]
				if len(m) > 1 {
					raw = m[1]
				}
				code = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
			}
		}
	}

	if code != "" && p.cfg.profile.TitlePattern != "" {
		re, err := regexp.Compile(`(?i)` + p.cfg.profile.TitlePattern)
		if err == nil {
			if m := re.FindString(head); m != "" {
				title = strings.TrimSpace(m)
			}
		}
	}

	return code, title
}

// filenameStem returns the base name of a path without its extension,
// lowercased with spaces flattened, matching the naming of the output
// artifacts.
func filenameStem(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ToLower(base)
	base = strings.ReplaceAll(base, " ", "_")
	return strings.ReplaceAll(base, "=", "-")
}
