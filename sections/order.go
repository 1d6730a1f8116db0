package sections

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jiarana/normadoc/model"
)

// sortKeyRe parses a heading label as an optional annex letter followed by up
// to three dot-separated numeric groups.
var sortKeyRe = regexp.MustCompile(`^([A-Z])?\.?(\d+)?\.?(\d+)?\.?(\d+)?`)

// sentinelKey sorts unparseable labels after everything else.
var sentinelKey = [4]int{999, 999, 999, 999}

// SortKey maps a heading label to a sortable tuple. Numeric sections get
// prefix 0 and sort first; annexes get 1 + the letter's alphabetic rank, so
// they follow all numeric sections in A, B, C, D order. Missing numeric
// groups default to 0.
//
//	SortKey("1")     → [0 1 0 0]
//	SortKey("6.5.2") → [0 6 5 2]
//	SortKey("A.1")   → [1 1 0 0]
//	SortKey("C.0")   → [3 0 0 0]
func SortKey(label string) [4]int {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" {
		return sentinelKey
	}

	m := sortKeyRe.FindStringSubmatch(label)
	if m == nil || (m[1] == "" && m[2] == "") {
		return sentinelKey
	}

	var key [4]int
	if m[1] != "" {
		key[0] = int(m[1][0]-'A') + 1
	}
	for i, group := range m[2:] {
		if group == "" {
			continue
		}
		n, err := strconv.Atoi(group)
		if err != nil {
			return sentinelKey
		}
		key[i+1] = n
	}
	return key
}

// keyLess compares two sort keys lexicographically.
func keyLess(a, b [4]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Sort orders sections by ascending sort key. The sort is stable, so
// sections with equal keys keep their document-appearance order.
func Sort(secs []model.Section) {
	sort.SliceStable(secs, func(i, j int) bool {
		return keyLess(SortKey(secs[i].Number), SortKey(secs[j].Number))
	})
}
