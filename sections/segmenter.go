package sections

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jiarana/normadoc/model"
	"github.com/jiarana/normadoc/normtext"
	"github.com/jiarana/normadoc/profile"
)

// Heading grammars, tried in priority order. The complete-annex test runs
// first so a letter-keyed annex opener is never captured by the numeric
// grammars; the numeric grammars run from least to most dotted.
var (
	// "ANEXO C (Informativo)" — letter-keyed annex with no numbered
	// subsections. Standalone caption copies of the same line are already
	// stripped by the normalizer; an opener that carries trailing text on
	// the line survives and is matched here.
	completeAnnexRe = regexp.MustCompile(`^ANEXO\s+([A-Z])\s*\(([^)]+)\)`)

	// "13 FUNCIONAMIENTO DEL SISTEMA" — bare 1–2 digit number, all-caps title.
	mainHeadingRe = regexp.MustCompile(`^(\d{1,2})\s+([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ\s,]+)$`)

	// "6.5.2 Detectores" — dotted numeric heading, mixed-case bounded title.
	subHeadingRe = regexp.MustCompile(`^(\d{1,2}(?:\.\d{1,2}){1,3})\s+([A-ZÁÉÍÓÚÑa-záéíóúñ][^\n]{3,80})$`)

	// "A.1 Objeto" — dotted annex heading, letters A–D.
	annexHeadingRe = regexp.MustCompile(`^([A-D]\.\d{1,2}(?:\.\d{1,2})?)\s+([A-ZÁÉÍÓÚÑa-záéíóúñ][^\n]{3,80})$`)
)

// numberedGrammars are the step-2 grammars whose captured titles go through
// false-positive validation before a section is opened.
var numberedGrammars = []*regexp.Regexp{mainHeadingRe, subHeadingRe, annexHeadingRe}

// Segmenter partitions cleaned document text into sections.
type Segmenter struct {
	norm        *normtext.Normalizer
	excluded    []string
	annexTitles map[string]string
}

// New creates a Segmenter for the given document family.
func New(p *profile.Profile) *Segmenter {
	return &Segmenter{
		norm:        normtext.New(p),
		excluded:    p.ExcludedTitleWords,
		annexTitles: p.AnnexTitles,
	}
}

// openSection accumulates content for the heading currently being filled.
type openSection struct {
	number string
	title  string
	lines  []string
}

// segmentState is the fold accumulator: the open section, the duplicate-key
// set, and the closed sections so far.
type segmentState struct {
	open *openSection
	seen map[string]struct{}
	out  []model.Section
}

// Segment walks text line by line and returns the detected sections in
// document-appearance order. Each section's content has been normalized and
// trimmed of trailing next-heading leakage. Lines before the first heading
// are discarded as preamble.
func (s *Segmenter) Segment(text string) []model.Section {
	st := &segmentState{seen: make(map[string]struct{})}

	for _, line := range strings.Split(text, "\n") {
		s.step(st, line)
	}
	s.closeOpen(st)

	return st.out
}

// step is the state-machine transition for one line.
func (s *Segmenter) step(st *segmentState, line string) {
	stripped := strings.TrimSpace(line)

	if number, title, ok := s.matchCompleteAnnex(stripped); ok {
		if s.acceptKey(st, number, title) {
			s.closeOpen(st)
			st.open = &openSection{number: number, title: title}
			return
		}
	}

	for _, re := range numberedGrammars {
		m := re.FindStringSubmatch(stripped)
		if m == nil {
			continue
		}
		number, title := m[1], strings.TrimSpace(m[2])
		if !s.validTitle(title) {
			continue
		}
		if !s.acceptKey(st, number, title) {
			continue
		}
		s.closeOpen(st)
		st.open = &openSection{number: number, title: title}
		return
	}

	if st.open != nil {
		st.open.lines = append(st.open.lines, line)
	}
}

// closeOpen finalizes the open section, if any: its buffer is normalized,
// trimmed of trailing leakage, and appended to the output.
func (s *Segmenter) closeOpen(st *segmentState) {
	if st.open == nil {
		return
	}
	content := s.norm.Normalize(strings.Join(st.open.lines, "\n"))
	content = trimLeakage(content)
	st.out = append(st.out, model.Section{
		Number:  st.open.number,
		Title:   st.open.title,
		Content: content,
	})
	st.open = nil
}

// matchCompleteAnnex recognizes a letter-keyed annex opener and resolves its
// title: the family's annex-title table first, then any text trailing the
// qualifier on the line, then the qualifier itself. The section number is
// "<Letter>.0" so the annex body sorts ahead of its numbered subsections.
func (s *Segmenter) matchCompleteAnnex(line string) (number, title string, ok bool) {
	loc := completeAnnexRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return "", "", false
	}
	m := completeAnnexRe.FindStringSubmatch(line)
	letter, qualifier := m[1], strings.TrimSpace(m[2])

	title = s.annexTitles[letter]
	if title == "" {
		title = strings.TrimSpace(line[loc[1]:])
	}
	if title == "" {
		title = qualifier
	}
	return letter + ".0", title, true
}

// acceptKey suppresses a heading already seen under the same number and
// leading title text. Standards repeat every heading once in the table of
// contents; this keeps only the first occurrence that reaches the segmenter.
func (s *Segmenter) acceptKey(st *segmentState, number, title string) bool {
	key := number + "_" + firstRunes(title, 20)
	if _, dup := st.seen[key]; dup {
		return false
	}
	st.seen[key] = struct{}{}
	return true
}

// validTitle rejects captured titles that are known false positives: titles
// starting with a caption or boilerplate word, and titles with fewer than 3
// alphabetic characters.
func (s *Segmenter) validTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, word := range s.excluded {
		if strings.HasPrefix(lower, word) {
			return false
		}
	}

	letters := 0
	for _, r := range title {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters >= 3
}

// firstRunes returns at most n leading runes of s.
func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
