package pdfcpu

import (
	"strconv"
	"strings"
)

// tokenKind discriminates content-stream tokens.
type tokenKind int

const (
	tokNumber tokenKind = iota
	tokString
	tokName
	tokOperator
)

// token is one lexed content-stream token. Array and dictionary delimiters
// are skipped: the interpreter only needs the strings and numbers they carry.
type token struct {
	kind tokenKind
	sval string
	fval float64
}

// isDelim reports PDF delimiter characters.
func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isWhitespace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

// lexContent tokenizes a decoded content stream. It is deliberately loose:
// malformed constructs are skipped rather than reported, since a page this
// lexer cannot make sense of simply yields no output.
func lexContent(data []byte) []token {
	var toks []token
	i := 0

	for i < len(data) {
		c := data[i]

		switch {
		case isWhitespace(c):
			i++

		case c == '%': // comment to end of line
			for i < len(data) && data[i] != '\n' {
				i++
			}

		case c == '(':
			s, next := lexString(data, i)
			toks = append(toks, token{kind: tokString, sval: s})
			i = next

		case c == '<':
			if i+1 < len(data) && data[i+1] == '<' {
				i += 2 // dictionary open, contents lex as normal tokens
				continue
			}
			// Hex string: skip, these carry CID-encoded text this
			// interpreter does not map.
			for i < len(data) && data[i] != '>' {
				i++
			}
			i++

		case c == '/':
			j := i + 1
			for j < len(data) && !isWhitespace(data[j]) && !isDelim(data[j]) {
				j++
			}
			toks = append(toks, token{kind: tokName, sval: string(data[i+1 : j])})
			i = j

		case c == '[' || c == ']' || c == '{' || c == '}' || c == '>':
			i++

		default:
			j := i
			for j < len(data) && !isWhitespace(data[j]) && !isDelim(data[j]) {
				j++
			}
			word := string(data[i:j])
			i = j
			if v, err := strconv.ParseFloat(word, 64); err == nil {
				toks = append(toks, token{kind: tokNumber, fval: v})
			} else if word != "" {
				toks = append(toks, token{kind: tokOperator, sval: word})
			}
		}
	}

	return toks
}

// lexString reads a parenthesized string literal starting at open, honoring
// nested parentheses and backslash escapes. It returns the decoded string
// and the index just past the closing parenthesis.
func lexString(data []byte, open int) (string, int) {
	var sb strings.Builder
	depth := 1
	i := open + 1

	for i < len(data) && depth > 0 {
		c := data[i]
		switch {
		case c == '\\' && i+1 < len(data):
			i++
			switch data[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\', '(', ')':
				sb.WriteByte(data[i])
			case '\n': // line continuation
			default:
				if data[i] >= '0' && data[i] <= '7' {
					val := int(data[i] - '0')
					for k := 0; k < 2 && i+1 < len(data) && data[i+1] >= '0' && data[i+1] <= '7'; k++ {
						i++
						val = val*8 + int(data[i]-'0')
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(data[i])
				}
			}
			i++
		case c == '(':
			depth++
			sb.WriteByte(c)
			i++
		case c == ')':
			depth--
			if depth > 0 {
				sb.WriteByte(c)
			}
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}

	return sb.String(), i
}
