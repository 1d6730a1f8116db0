package normadoc

import (
	"log/slog"

	"github.com/jiarana/normadoc/profile"
)

// config holds the per-run pipeline configuration. It is frozen when the
// pipeline starts processing; the fluent With* methods below adjust it
// beforehand.
type config struct {
	profile *profile.Profile
	figures bool
	dpi     float64
	logger  *slog.Logger
}

func defaultConfig() config {
	return config{
		profile: profile.UNE(),
		figures: true,
		dpi:     150,
		logger:  slog.Default(),
	}
}

// WithProfile selects the document-family profile.
func (p *Pipeline) WithProfile(prof *profile.Profile) *Pipeline {
	p.cfg.profile = prof
	return p
}

// WithoutFigures disables figure extraction for the run.
func (p *Pipeline) WithoutFigures() *Pipeline {
	p.cfg.figures = false
	return p
}

// WithDPI sets the rasterization density for figure rendering.
func (p *Pipeline) WithDPI(dpi float64) *Pipeline {
	if dpi > 0 {
		p.cfg.dpi = dpi
	}
	return p
}

// WithLogger sets the logger used for per-document progress and diagnostics.
func (p *Pipeline) WithLogger(logger *slog.Logger) *Pipeline {
	if logger != nil {
		p.cfg.logger = logger
	}
	return p
}
