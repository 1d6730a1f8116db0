package pdfcpu

import "math"

// matrix is a PDF affine transformation matrix [a b c d e f].
type matrix [6]float64

var identity = matrix{1, 0, 0, 1, 0, 0}

// mul returns m × other (other applied after m).
func (m matrix) mul(other matrix) matrix {
	return matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

func translation(tx, ty float64) matrix {
	return matrix{1, 0, 0, 1, tx, ty}
}

// transform applies the matrix to a point.
func (m matrix) transform(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// textRun is a shown string positioned at its text-space origin mapped to
// page space.
type textRun struct {
	x, y float64
	text string
}

// segment is a stroked or filled straight path edge in page space. Only
// axis-aligned segments matter downstream; the classification helpers below
// use a small tolerance.
type segment struct {
	x0, y0, x1, y1 float64
}

func (s segment) horizontal() bool {
	return math.Abs(s.y1-s.y0) <= 1
}

func (s segment) vertical() bool {
	return math.Abs(s.x1-s.x0) <= 1
}

func (s segment) length() float64 {
	dx, dy := s.x1-s.x0, s.y1-s.y0
	return math.Sqrt(dx*dx + dy*dy)
}

// placement is one XObject invocation with its resolved page-space bbox.
type placement struct {
	name string
	x, y float64
	w, h float64
}

// pageContentData is everything the collaborator recovers from one page's
// content stream in a single pass.
type pageContentData struct {
	runs       []textRun
	segments   []segment
	placements []placement
}

// interpret replays a content stream far enough to position text runs, ruled
// lines, and XObject placements in page space. It tracks the graphics state
// (q/Q/cm), the text matrices (BT/Tm/Td/TD/T*/TL), and the current path; all
// painting detail is ignored.
func interpret(data []byte) pageContentData {
	var out pageContentData

	ctm := identity
	var stack []matrix

	tm, lm := identity, identity
	leading := 0.0

	var curX, curY, startX, startY float64
	var path []segment

	var operands []float64
	var strs []string
	var lastName string

	emit := func() {
		if len(strs) == 0 {
			return
		}
		text := ""
		for _, s := range strs {
			text += s
		}
		if text != "" {
			p := tm.mul(ctm)
			out.runs = append(out.runs, textRun{x: p[4], y: p[5], text: text})
		}
	}

	newline := func() {
		lm = translation(0, -leading).mul(lm)
		tm = lm
	}

	num := func(i int) float64 {
		// i counts back from the end of the operand list.
		return operands[len(operands)-1-i]
	}

	for _, tok := range lexContent(data) {
		switch tok.kind {
		case tokNumber:
			// Inside a TJ array a large negative adjustment is a kerned
			// word gap; keep it as a space so words stay separated.
			if len(strs) > 0 && tok.fval <= -180 {
				strs = append(strs, " ")
			}
			operands = append(operands, tok.fval)
			continue
		case tokString:
			strs = append(strs, tok.sval)
			continue
		case tokName:
			lastName = tok.sval
			operands = operands[:0]
			continue
		}

		switch tok.sval {
		case "q":
			stack = append(stack, ctm)
		case "Q":
			if n := len(stack); n > 0 {
				ctm = stack[n-1]
				stack = stack[:n-1]
			}
		case "cm":
			if len(operands) >= 6 {
				var m matrix
				copy(m[:], operands[len(operands)-6:])
				ctm = m.mul(ctm)
			}

		case "BT":
			tm, lm = identity, identity
		case "Tm":
			if len(operands) >= 6 {
				var m matrix
				copy(m[:], operands[len(operands)-6:])
				tm, lm = m, m
			}
		case "Td":
			if len(operands) >= 2 {
				lm = translation(num(1), num(0)).mul(lm)
				tm = lm
			}
		case "TD":
			if len(operands) >= 2 {
				leading = -num(0)
				lm = translation(num(1), num(0)).mul(lm)
				tm = lm
			}
		case "TL":
			if len(operands) >= 1 {
				leading = num(0)
			}
		case "T*":
			newline()

		case "Tj", "TJ":
			emit()
		case "'":
			newline()
			emit()
		case "\"":
			newline()
			emit()

		case "m":
			if len(operands) >= 2 {
				curX, curY = ctm.transform(num(1), num(0))
				startX, startY = curX, curY
			}
		case "l":
			if len(operands) >= 2 {
				x, y := ctm.transform(num(1), num(0))
				path = append(path, segment{curX, curY, x, y})
				curX, curY = x, y
			}
		case "c", "v", "y":
			if len(operands) >= 2 {
				// Curves never draw table rules; just track the endpoint.
				curX, curY = ctm.transform(num(1), num(0))
			}
		case "h":
			path = append(path, segment{curX, curY, startX, startY})
			curX, curY = startX, startY
		case "re":
			if len(operands) >= 4 {
				x, y, w, h := num(3), num(2), num(1), num(0)
				x0, y0 := ctm.transform(x, y)
				x1, y1 := ctm.transform(x+w, y+h)
				path = append(path,
					segment{x0, y0, x1, y0},
					segment{x0, y1, x1, y1},
					segment{x0, y0, x0, y1},
					segment{x1, y0, x1, y1},
				)
				curX, curY = x0, y0
			}
		case "S", "s", "f", "F", "f*", "B", "B*", "b", "b*":
			out.segments = append(out.segments, path...)
			path = nil
		case "n":
			path = nil

		case "Do":
			if lastName != "" {
				out.placements = append(out.placements, unitSquarePlacement(lastName, ctm))
			}
		}

		operands = operands[:0]
		strs = strs[:0]
	}

	return out
}

// unitSquarePlacement maps the unit square through a matrix and returns the
// axis-aligned bounds of the result. An image XObject spans the unit square
// in its own space, so the CTM at the Do operator gives its placement
// directly.
func unitSquarePlacement(name string, m matrix) placement {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for _, corner := range [4][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		x, y := m.transform(corner[0], corner[1])
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	return placement{name: name, x: minX, y: minY, w: maxX - minX, h: maxY - minY}
}
