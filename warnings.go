package normadoc

import (
	"fmt"
	"strings"
)

// WarningCode classifies non-fatal conditions reported during a pipeline run.
type WarningCode string

const (
	// WarnNoText means a document yielded no extractable text at all.
	WarnNoText WarningCode = "no_text"

	// WarnNoRenderer means the rendering capability is unavailable and
	// figure extraction was disabled for the run.
	WarnNoRenderer WarningCode = "no_renderer"

	// WarnRenderFailed means one figure region failed to rasterize and was
	// skipped.
	WarnRenderFailed WarningCode = "render_failed"

	// WarnFigureCap means the per-document figure cap was reached and
	// remaining pages were not scanned for figures.
	WarnFigureCap WarningCode = "figure_cap"
)

// Warning is a non-fatal condition encountered while processing a document.
// Warnings never abort a run; they describe what was skipped or degraded.
type Warning struct {
	Code    WarningCode
	Page    int // 0 when not page-specific
	Message string
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("%s (page %d): %s", w.Code, w.Page, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings renders warnings one per line for logging.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
