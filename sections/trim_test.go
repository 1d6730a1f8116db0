package sections

import (
	"fmt"
	"strings"
	"testing"
)

func bodyLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("línea de contenido %d", i+1)
	}
	return lines
}

func TestTrimLeakage_Empty(t *testing.T) {
	if got := trimLeakage(""); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestTrimLeakage_CutsTrailingHeading(t *testing.T) {
	lines := append(bodyLines(10), "13 FUNCIONAMIENTO DEL SISTEMA")

	got := trimLeakage(strings.Join(lines, "\n"))

	if strings.Contains(got, "FUNCIONAMIENTO") {
		t.Errorf("leaked heading survived: %q", got)
	}
	if !strings.Contains(got, "línea de contenido 10") {
		t.Errorf("body content lost: %q", got)
	}
}

func TestTrimLeakage_CutsTrailingAnnexOpener(t *testing.T) {
	lines := append(bodyLines(10), "ANEXO C (Informativo)", "texto del anexo")

	got := trimLeakage(strings.Join(lines, "\n"))

	if strings.Contains(got, "ANEXO") || strings.Contains(got, "texto del anexo") {
		t.Errorf("leaked annex lines survived: %q", got)
	}
}

func TestTrimLeakage_IgnoresEarlyHeadingShape(t *testing.T) {
	lines := bodyLines(12)
	lines[2] = "13 FUNCIONAMIENTO DEL SISTEMA"

	content := strings.Join(lines, "\n")
	if got := trimLeakage(content); got != content {
		t.Errorf("in-body reference was trimmed:\n%q", got)
	}
}

func TestTrimLeakage_ShortBufferUntouched(t *testing.T) {
	content := "una línea\n13 FUNCIONAMIENTO DEL SISTEMA"
	if got := trimLeakage(content); got != content {
		t.Errorf("short buffer was trimmed: %q", got)
	}
}
