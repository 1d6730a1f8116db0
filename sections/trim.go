package sections

import (
	"regexp"
	"strings"
)

// Shapes that indicate the next section's heading leaked into the tail of the
// current section's buffer. Page layout sometimes attributes the first lines
// of the following heading to the trailing content of the section before it.
var leakagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^ANEXO\s+[A-Z]\s*\(`),
	regexp.MustCompile(`^NOTA\s+En la numeraci`),
	regexp.MustCompile(`^\d{1,2}\s+[A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ\s]+$`),
	regexp.MustCompile(`^[A-Z]\.\d+\s+[A-Z]`),
}

// leakageScanWindow bounds how far back from the end of a buffer leaked
// headings are searched for.
const leakageScanWindow = 20

// trimLeakage removes trailing lines that belong to a following heading. Only
// the last 20 lines are scanned, and a match is honored only inside the final
// 20% of the buffer so a genuine in-body reference earlier in the section is
// never mistaken for a leaked heading. The first qualifying match scanning
// backward sets the cut point; everything from that line on is discarded.
func trimLeakage(content string) string {
	if content == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	floor := len(lines) - leakageScanWindow
	if floor < 0 {
		floor = 0
	}

	cut := len(lines)
	for i := len(lines) - 1; i > floor; i-- {
		line := strings.TrimSpace(lines[i])
		for _, re := range leakagePatterns {
			if re.MatchString(line) && float64(i) > float64(len(lines))*0.8 {
				cut = i
				break
			}
		}
		if cut < len(lines) {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines[:cut], "\n"))
}
