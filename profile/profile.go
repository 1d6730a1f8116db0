// Package profile holds the document-family configuration consumed by the
// pipeline components: the noise patterns stripped by the text normalizer, the
// heading rejection list used by the section segmenter, the annex-title lookup
// table, and the table/figure acceptance thresholds.
//
// A Profile is an immutable value established once per run. Components compile
// what they need from it at construction and never write back, which keeps
// concurrent test runs and batch processing deterministic. UNE returns the
// built-in profile for AENOR-published UNE standards; Load reads a profile for
// another document family from YAML.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile describes one family of similarly-formatted standard documents.
type Profile struct {
	// Name identifies the family ("une").
	Name string `yaml:"name"`

	// NoisePatterns are removal regexes applied to raw page text, in order.
	// Each is compiled multiline and case-insensitive.
	NoisePatterns []string `yaml:"noise_patterns"`

	// ExcludedTitleWords reject a captured heading title when the title
	// starts with one of them (lowercased comparison).
	ExcludedTitleWords []string `yaml:"excluded_title_words"`

	// AnnexTitles maps annex letters to the full-annex titles used when a
	// complete-annex heading carries no usable title of its own.
	AnnexTitles map[string]string `yaml:"annex_titles"`

	// CodePattern extracts the standard code from the opening pages.
	CodePattern string `yaml:"code_pattern"`

	// TitlePattern extracts the descriptive title near the code.
	TitlePattern string `yaml:"title_pattern"`

	// MinTableRows is the minimum surviving rows (header included) for a
	// grid to be kept.
	MinTableRows int `yaml:"min_table_rows"`

	// MaxBlankCellRatio discards a grid whose blank-cell fraction exceeds it.
	MaxBlankCellRatio float64 `yaml:"max_blank_cell_ratio"`

	// Figure acceptance thresholds.
	FigureMinWidth     float64 `yaml:"figure_min_width"`
	FigureMinHeight    float64 `yaml:"figure_min_height"`
	BannerMinWidth     float64 `yaml:"banner_min_width"`
	BannerMaxHeight    float64 `yaml:"banner_max_height"`
	BannerMinAspect    float64 `yaml:"banner_min_aspect"`
	AdjacencyTolerance float64 `yaml:"adjacency_tolerance"`
	MaxFigures         int     `yaml:"max_figures"`

	// SkipLeadingPages excludes cover/TOC pages from figure extraction; the
	// last page is always excluded as back matter.
	SkipLeadingPages int `yaml:"skip_leading_pages"`
}

// UNE returns the built-in profile for AENOR-published UNE standards.
func UNE() *Profile {
	return &Profile{
		Name: "une",
		NoisePatterns: []string{
			// License and acquisition notices, in their several layouts.
			`Este documento ha sido adquirido por[^\n]*\d{4}\.`,
			`Este documento ha sido adquirido por.*?AENOR`,
			`Para poder utilizarlo en un sistema de red.*?AENOR`,
			`© AENOR \d{4}[^\n]*`,
			// AENOR postal footer ("Génova, 6 ...", accent varies by producer).
			`G.nova,?\s*6[^\n]*`,
			`Reproducci.n prohibida[^\n]*`,
			// Header/footer pairs of standard code and page number, both orders.
			`-\s*\d+\s*-\s*UNE[^\n]*`,
			`^UNE\s*\d+[-:]?\d*[-:]?\d*\s*-\s*\d+\s*-\s*$`,
			`^UNE[\s-]+\d+[^\n]*-\s*\d+\s*-\s*$`,
			`^-\s*\d+\s*-\s*$`,
			`^\d+\s*$`,
			// Table-of-contents lines: text, dot leader, page number.
			`^[^\n]*\.{3,}\s*\d+\s*$`,
			// Annex captions that leak into body content.
			`^ANEXO\s+[A-Z]\s*\([^)]+\)\s*$`,
			`^REQUISITOS ESPECÍFICOS\s*$`,
			`^FALSAS ALARMAS\s*$`,
		},
		ExcludedTitleWords: []string{
			"pagina", "paginas", "página", "páginas",
			"tabla", "tablas", "figure", "figura", "figuras",
			"nota", "notas", "ejemplo", "ejemplos",
			"aenor", "une", "iso", "en",
			"reproduccion", "reproducción", "prohibida",
			"este documento", "adquirido", "licencia",
		},
		AnnexTitles: map[string]string{
			"C": "REQUISITOS ESPECÍFICOS",
			"D": "FALSAS ALARMAS",
		},
		CodePattern:        `(UNE(?:-EN)?[\s-]*\d+(?:[:-]\d+)*(?::\d{4})?)`,
		TitlePattern:       `(?:Sistemas de [^\n]+|Componentes [^\n]+)`,
		MinTableRows:       2,
		MaxBlankCellRatio:  0.7,
		FigureMinWidth:     50,
		FigureMinHeight:    50,
		BannerMinWidth:     500,
		BannerMaxHeight:    200,
		BannerMinAspect:    4,
		AdjacencyTolerance: 10,
		MaxFigures:         50,
		SkipLeadingPages:   5,
	}
}

// Load reads a profile from a YAML file. Fields left empty fall back to the
// UNE defaults, so a family profile only has to state what differs.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}

	p := UNE()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	p.applyDefaults()
	return p, nil
}

// applyDefaults restores zero-valued thresholds to the UNE defaults. A loaded
// profile may legitimately clear pattern lists, but a zero threshold would
// reject everything, which no family wants.
func (p *Profile) applyDefaults() {
	def := UNE()
	if p.MinTableRows <= 0 {
		p.MinTableRows = def.MinTableRows
	}
	if p.MaxBlankCellRatio <= 0 {
		p.MaxBlankCellRatio = def.MaxBlankCellRatio
	}
	if p.FigureMinWidth <= 0 {
		p.FigureMinWidth = def.FigureMinWidth
	}
	if p.FigureMinHeight <= 0 {
		p.FigureMinHeight = def.FigureMinHeight
	}
	if p.BannerMinWidth <= 0 {
		p.BannerMinWidth = def.BannerMinWidth
	}
	if p.BannerMaxHeight <= 0 {
		p.BannerMaxHeight = def.BannerMaxHeight
	}
	if p.BannerMinAspect <= 0 {
		p.BannerMinAspect = def.BannerMinAspect
	}
	if p.AdjacencyTolerance <= 0 {
		p.AdjacencyTolerance = def.AdjacencyTolerance
	}
	if p.MaxFigures <= 0 {
		p.MaxFigures = def.MaxFigures
	}
	if p.SkipLeadingPages <= 0 {
		p.SkipLeadingPages = def.SkipLeadingPages
	}
}
