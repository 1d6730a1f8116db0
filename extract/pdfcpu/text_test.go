package pdfcpu

import "testing"

func TestAssembleText_Empty(t *testing.T) {
	if got := assembleText(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestAssembleText_LinesTopToBottom(t *testing.T) {
	runs := []textRun{
		{x: 50, y: 680, text: "cuerpo de la sección"},
		{x: 50, y: 700, text: "1 OBJETO Y CAMPO DE APLICACIÓN"},
	}

	got := assembleText(runs)
	want := "1 OBJETO Y CAMPO DE APLICACIÓN\ncuerpo de la sección\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestAssembleText_RunsJoinWithinLine(t *testing.T) {
	runs := []textRun{
		{x: 120, y: 700, text: "continuado"},
		{x: 50, y: 701.5, text: "cuerpo"},
	}

	got := assembleText(runs)
	if got != "cuerpo continuado\n" {
		t.Errorf("expected runs merged left to right, got %q", got)
	}
}

func TestAssembleText_SplitsBeyondTolerance(t *testing.T) {
	runs := []textRun{
		{x: 50, y: 700, text: "uno"},
		{x: 50, y: 695, text: "dos"},
	}

	got := assembleText(runs)
	if got != "uno\ndos\n" {
		t.Errorf("expected separate lines, got %q", got)
	}
}

func TestCleanLine(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  cuerpo   de  la   norma  ", "cuerpo de la norma"},
		{"con\ttabulador", "con tabulador"},
		{"con\x00control", "concontrol"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := cleanLine(tc.in); got != tc.want {
			t.Errorf("cleanLine(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}
