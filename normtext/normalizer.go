// Package normtext strips pagination noise from raw page text and repairs
// line-wrap damage, producing the clean text stream the section segmenter
// consumes.
package normtext

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jiarana/normadoc/profile"
)

// Normalizer removes structural noise from extracted page text: running
// headers and footers, license boilerplate, bare page numbers, and
// table-of-contents leader lines. After noise removal it rejoins words split
// by end-of-line hyphenation and collapses runs of blank lines.
//
// Normalize is pure and total: any input string, including the empty string,
// yields a result, and normalizing twice yields the same result as once.
type Normalizer struct {
	noise []*regexp.Regexp
}

var (
	hyphenSplitRe = regexp.MustCompile(`(\p{L})-\n[ \t]*(\p{L})`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
)

// New builds a Normalizer from the family profile's noise patterns. Patterns
// are compiled multiline and case-insensitive; an invalid pattern is a
// programming error in the profile and panics at construction.
func New(p *profile.Profile) *Normalizer {
	n := &Normalizer{noise: make([]*regexp.Regexp, 0, len(p.NoisePatterns))}
	for _, pat := range p.NoisePatterns {
		n.noise = append(n.noise, regexp.MustCompile(`(?im)`+pat))
	}
	return n
}

// Normalize returns text with all noise patterns removed, hyphenated line
// wraps repaired, and blank-line runs collapsed. Within each pass noise
// removal runs before hyphen joining so removed boilerplate cannot falsely
// trigger a join; the whole sequence then repeats until stable, because a
// join can reassemble a boilerplate line the patterns only recognize whole.
// Every step removes characters, so the fixed point is always reached.
func (n *Normalizer) Normalize(text string) string {
	// Producers disagree on Unicode form for accented Spanish; fold to NFC
	// so the patterns match either.
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")

	for {
		prev := text

		for _, re := range n.noise {
			text = re.ReplaceAllString(text, "")
		}

		// A word can be split across more than two lines; repeat until
		// stable.
		for {
			joined := hyphenSplitRe.ReplaceAllString(text, "$1$2")
			if joined == text {
				break
			}
			text = joined
		}

		text = blankRunRe.ReplaceAllString(text, "\n\n")

		if text == prev {
			break
		}
	}

	return strings.TrimSpace(text)
}
