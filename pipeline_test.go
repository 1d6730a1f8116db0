package normadoc

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jiarana/normadoc/extract"
	"github.com/jiarana/normadoc/model"
	"github.com/jiarana/normadoc/profile"
)

// fakeExtractor drives the pipeline from in-memory page data.
type fakeExtractor struct {
	pages      map[int]string
	grids      map[int][][][]*string
	placements map[int][]model.BBox
	total      int
}

func (f *fakeExtractor) PageCount() int { return f.total }

func (f *fakeExtractor) PageText(page int) (string, bool) {
	text, ok := f.pages[page]
	return text, ok
}

func (f *fakeExtractor) PageTables(page int, _ extract.TableConfig) [][][]*string {
	return f.grids[page]
}

func (f *fakeExtractor) PageImagePlacements(page int) []model.BBox {
	return f.placements[page]
}

// renderingExtractor adds the rasterization capability.
type renderingExtractor struct {
	fakeExtractor
	renderErr error
	rendered  int
}

func (r *renderingExtractor) RenderRegion(page int, bbox model.BBox, dpi float64) (extract.RenderedImage, error) {
	if r.renderErr != nil {
		return extract.RenderedImage{}, r.renderErr
	}
	r.rendered++
	return extract.RenderedImage{Data: []byte("imagen"), Format: "png"}, nil
}

func cell(s string) *string { return &s }

// standardDocument is a 10-page document with an identity, headings out of
// numeric order, a ruled table, and a two-tile figure on a body page.
func standardDocument() *renderingExtractor {
	return &renderingExtractor{
		fakeExtractor: fakeExtractor{
			total: 10,
			pages: map[int]string{
				1: "norma española\nUNE 23007-14:2014\nSistemas de detección y de alarma de incendios",
				3: "A.1 Objeto del anexo\ncuerpo del anexo",
				4: "1 OBJETO Y CAMPO DE APLICACIÓN\ncuerpo uno",
				5: "1.1 Generalidades\ntexto general",
				6: "2 NORMAS PARA CONSULTA\nreferencias",
			},
			grids: map[int][][][]*string{
				6: {{
					{cell("Tipo"), cell("Valor")},
					{cell("A"), cell("1")},
				}},
			},
			placements: map[int][]model.BBox{
				7: {
					model.NewBBox(50, 200, 120, 150),
					model.NewBBox(172, 200, 120, 150),
				},
			},
		},
	}
}

func quietPipeline(ex extract.PageExtractor) *Pipeline {
	return FromExtractor(ex, "une_23007-14=2014.pdf").
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRecord_Identity(t *testing.T) {
	rec, _, err := quietPipeline(standardDocument()).Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if rec.Code != "UNE23007-14:2014" {
		t.Errorf("expected code UNE23007-14:2014, got %q", rec.Code)
	}
	if rec.Title != "Sistemas de detección y de alarma de incendios" {
		t.Errorf("unexpected title: %q", rec.Title)
	}
	if rec.SourceFile != "une_23007-14=2014.pdf" {
		t.Errorf("unexpected source file: %q", rec.SourceFile)
	}
	if rec.TotalPages != 10 {
		t.Errorf("expected 10 pages, got %d", rec.TotalPages)
	}
}

func TestRecord_SectionsDetectedAndOrdered(t *testing.T) {
	rec, _, err := quietPipeline(standardDocument()).Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	want := []string{"1", "1.1", "2", "A.1"}
	if len(rec.Sections) != len(want) {
		t.Fatalf("expected %d sections, got %d: %+v", len(want), len(rec.Sections), rec.Sections)
	}
	for i, num := range want {
		if rec.Sections[i].Number != num {
			t.Errorf("section %d: expected %s, got %s", i, num, rec.Sections[i].Number)
		}
	}
	if rec.Sections[0].Content != "cuerpo uno" {
		t.Errorf("unexpected section content: %q", rec.Sections[0].Content)
	}
}

func TestRecord_Tables(t *testing.T) {
	rec, _, err := quietPipeline(standardDocument()).Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if len(rec.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(rec.Tables))
	}
	tab := rec.Tables[0]
	if tab.ID != "tabla_p6_1" || tab.Page != 6 {
		t.Errorf("unexpected table identity: %s page %d", tab.ID, tab.Page)
	}
	if tab.Header[0] != "Tipo" || tab.Rows[0][1] != "1" {
		t.Errorf("unexpected table content: %+v", tab)
	}
}

func TestRecord_Figures(t *testing.T) {
	doc := standardDocument()
	rec, warnings, err := quietPipeline(doc).Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if len(rec.Figures) != 1 {
		t.Fatalf("expected merged tiles as 1 figure, got %d", len(rec.Figures))
	}
	fig := rec.Figures[0]
	if fig.ID != "figura_p7_1" || fig.Page != 7 {
		t.Errorf("unexpected figure identity: %s page %d", fig.ID, fig.Page)
	}
	if fig.Format != "png" || fig.File != "figura_p7_1.png" {
		t.Errorf("unexpected figure file: %s %s", fig.File, fig.Format)
	}
	if fig.BBox != model.NewBBox(50, 200, 242, 150) {
		t.Errorf("unexpected figure region: %+v", fig.BBox)
	}
	if !fig.NearbySection.Estimated {
		t.Error("nearby section not flagged as estimated")
	}
	if fig.NearbySection.Number != "1" {
		t.Errorf("expected nearby section 1, got %q", fig.NearbySection.Number)
	}
	if doc.rendered != 1 {
		t.Errorf("expected 1 render call, got %d", doc.rendered)
	}
}

func TestRecord_WithoutFigures(t *testing.T) {
	doc := standardDocument()
	rec, warnings, err := quietPipeline(doc).WithoutFigures().Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if len(rec.Figures) != 0 || doc.rendered != 0 {
		t.Errorf("figure extraction ran despite WithoutFigures")
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestRecord_NoRendererDegradesWithWarning(t *testing.T) {
	doc := standardDocument()
	rec, warnings, err := quietPipeline(&doc.fakeExtractor).Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if len(rec.Figures) != 0 {
		t.Errorf("expected no figures without renderer, got %d", len(rec.Figures))
	}
	if len(warnings) != 1 || warnings[0].Code != WarnNoRenderer {
		t.Errorf("expected a no_renderer warning, got %v", warnings)
	}
	if len(rec.Sections) == 0 || len(rec.Tables) == 0 {
		t.Error("text and table extraction should proceed without renderer")
	}
}

func TestRecord_RenderFailureSkipsFigure(t *testing.T) {
	doc := standardDocument()
	doc.renderErr = errors.New("región fuera de página")

	rec, warnings, err := quietPipeline(doc).Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if len(rec.Figures) != 0 {
		t.Errorf("expected failed region skipped, got %d figures", len(rec.Figures))
	}
	if len(warnings) != 1 || warnings[0].Code != WarnRenderFailed || warnings[0].Page != 7 {
		t.Errorf("expected a render_failed warning for page 7, got %v", warnings)
	}
}

func TestRecord_FigureCapSkipsRemainingPages(t *testing.T) {
	doc := standardDocument()
	doc.placements[8] = []model.BBox{model.NewBBox(50, 200, 300, 300)}

	prof := profile.UNE()
	prof.MaxFigures = 1

	rec, warnings, err := quietPipeline(doc).WithProfile(prof).Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if len(rec.Figures) != 1 || rec.Figures[0].Page != 7 {
		t.Fatalf("expected only the first figure kept, got %+v", rec.Figures)
	}
	if len(warnings) != 1 || warnings[0].Code != WarnFigureCap || warnings[0].Page != 7 {
		t.Errorf("expected a figure_cap warning for page 7, got %v", warnings)
	}
	if doc.rendered != 1 {
		t.Errorf("pages past the cap were still rendered: %d calls", doc.rendered)
	}
}

func TestRecord_FigureCapWarnsOnFinalPage(t *testing.T) {
	doc := standardDocument()
	// The cap is hit by the last region of the last eligible page; the
	// warning must still be emitted.
	doc.placements = map[int][]model.BBox{
		9: {model.NewBBox(50, 200, 300, 300)},
	}

	prof := profile.UNE()
	prof.MaxFigures = 1

	rec, warnings, err := quietPipeline(doc).WithProfile(prof).Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if len(rec.Figures) != 1 {
		t.Fatalf("expected 1 figure, got %d", len(rec.Figures))
	}
	if len(warnings) != 1 || warnings[0].Code != WarnFigureCap || warnings[0].Page != 9 {
		t.Errorf("expected a figure_cap warning for page 9, got %v", warnings)
	}
}

func TestRecord_NoTextIsError(t *testing.T) {
	ex := &fakeExtractor{total: 3}

	_, _, err := quietPipeline(ex).Record()
	if !errors.Is(err, ErrNoText) {
		t.Errorf("expected ErrNoText, got %v", err)
	}
}

func TestRecord_CodeFallsBackToFilename(t *testing.T) {
	ex := &fakeExtractor{
		total: 6,
		pages: map[int]string{1: "1 OBJETO Y CAMPO DE APLICACIÓN\nsin código"},
	}

	rec, _, err := quietPipeline(ex).Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if rec.Code != "une_23007-14-2014" {
		t.Errorf("expected filename-derived code, got %q", rec.Code)
	}
}

func TestFormatWarnings(t *testing.T) {
	warnings := []Warning{
		{Code: WarnNoRenderer, Message: "sin renderizador"},
		{Code: WarnRenderFailed, Page: 7, Message: "fallo"},
	}

	got := FormatWarnings(warnings)
	want := "no_renderer: sin renderizador\nrender_failed (page 7): fallo"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
