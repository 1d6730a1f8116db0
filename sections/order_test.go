package sections

import (
	"testing"

	"github.com/jiarana/normadoc/model"
)

func TestSortKey(t *testing.T) {
	cases := []struct {
		label string
		want  [4]int
	}{
		{"1", [4]int{0, 1, 0, 0}},
		{"10", [4]int{0, 10, 0, 0}},
		{"6.5", [4]int{0, 6, 5, 0}},
		{"6.5.2", [4]int{0, 6, 5, 2}},
		{"A.1", [4]int{1, 1, 0, 0}},
		{"a.1", [4]int{1, 1, 0, 0}},
		{"B.2.3", [4]int{2, 2, 3, 0}},
		{"C.0", [4]int{3, 0, 0, 0}},
		{"", sentinelKey},
		{"??", sentinelKey},
	}

	for _, tc := range cases {
		if got := SortKey(tc.label); got != tc.want {
			t.Errorf("SortKey(%q) = %v, expected %v", tc.label, got, tc.want)
		}
	}
}

func TestSort_NumericBeforeAnnex(t *testing.T) {
	secs := []model.Section{
		{Number: "A.1"},
		{Number: "1.1"},
		{Number: "2"},
		{Number: "1"},
		{Number: "C.0"},
		{Number: "B.1"},
		{Number: "1.2"},
	}

	Sort(secs)

	want := []string{"1", "1.1", "1.2", "2", "A.1", "B.1", "C.0"}
	for i, num := range want {
		if secs[i].Number != num {
			t.Errorf("position %d: expected %s, got %s", i, num, secs[i].Number)
		}
	}
}

func TestSort_UnparseableLast(t *testing.T) {
	secs := []model.Section{
		{Number: "??"},
		{Number: "2"},
		{Number: "A.1"},
	}

	Sort(secs)

	if secs[2].Number != "??" {
		t.Errorf("expected unparseable label last, got order %v", []string{secs[0].Number, secs[1].Number, secs[2].Number})
	}
}

func TestSort_StableForEqualKeys(t *testing.T) {
	secs := []model.Section{
		{Number: "1", Title: "primera"},
		{Number: "1", Title: "segunda"},
	}

	Sort(secs)

	if secs[0].Title != "primera" || secs[1].Title != "segunda" {
		t.Errorf("equal keys reordered: %s, %s", secs[0].Title, secs[1].Title)
	}
}
