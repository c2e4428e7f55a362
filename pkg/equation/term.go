package equation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Term is one parsed left-hand-side unit: Coefficient × Kind(Index).
type Term struct {
	Text        string
	Coefficient float64 // signed; 1.0 or -1.0 when omitted
	Kind        Mode
	Index       int // 1-based as written
}

// Column is the 0-based matrix column of the term.
func (t Term) Column() int {
	return t.Index - 1
}

// sign, optional coefficient (optionally followed by '*'), kind letter, index
var termPattern = regexp.MustCompile(`^([+-]?)(?:((?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)\*?)?([A-Za-z])(\d+)$`)

// ParseTerm parses text such as "V1", "-2.5I3" or "+4e-3*V2". The index is
// only checked to be positive; the upper bound belongs to the system.
func ParseTerm(text string, mode Mode) (Term, error) {
	matches := termPattern.FindStringSubmatch(text)
	if matches == nil {
		return Term{}, fmt.Errorf("%w: %q", ErrUnrecognizedTerm, text)
	}

	term := Term{Text: text, Coefficient: 1.0}
	if matches[2] != "" {
		coef, err := strconv.ParseFloat(matches[2], 64)
		if err != nil {
			return Term{}, fmt.Errorf("%w: %q: %v", ErrUnrecognizedTerm, text, err)
		}
		term.Coefficient = coef
	}
	if matches[1] == "-" {
		term.Coefficient = -term.Coefficient
	}

	kind := Mode(matches[3][0])
	if !kind.Valid() {
		return Term{}, fmt.Errorf("%w: %q: unknown variable kind %q", ErrUnrecognizedTerm, text, matches[3])
	}
	if kind != mode {
		return Term{}, fmt.Errorf("%w: %w: %q in %s analysis", ErrUnrecognizedTerm, ErrWrongKind, text, mode)
	}
	term.Kind = kind

	index, err := strconv.Atoi(matches[4])
	if err != nil || index < 1 {
		return Term{}, fmt.Errorf("%w: %w: %q", ErrUnrecognizedTerm, ErrIndexRange, text)
	}
	term.Index = index

	return term, nil
}

// splitTerms cuts the left-hand side before every sign that is not part of
// an exponent and tightens each piece with compactTerm.
func splitTerms(lhs string) []string {
	var terms []string
	start := 0
	for i := 1; i < len(lhs); i++ {
		if lhs[i] != '+' && lhs[i] != '-' {
			continue
		}
		if isExponentSign(lhs, i) {
			continue
		}
		if piece := strings.TrimSpace(lhs[start:i]); piece != "" {
			terms = append(terms, compactTerm(piece))
		}
		start = i
	}
	if piece := strings.TrimSpace(lhs[start:]); piece != "" {
		terms = append(terms, compactTerm(piece))
	}
	return terms
}

// compactTerm drops whitespace after the sign, around '*' and before the
// kind letter. Any other whitespace is kept so the piece fails the term
// grammar as written.
func compactTerm(piece string) string {
	var b strings.Builder
	seenLetter := false
	for i := 0; i < len(piece); i++ {
		c := piece[i]
		if !isSpace(c) {
			if isLetter(c) {
				seenLetter = true
			}
			b.WriteByte(c)
			continue
		}

		j := i
		for j < len(piece) && isSpace(piece[j]) {
			j++
		}
		prev, next := piece[i-1], piece[j]
		switch {
		case i == 1 && (prev == '+' || prev == '-'):
		case prev == '*' || next == '*':
		case !seenLetter && isLetter(next) && next != 'e' && next != 'E':
		default:
			return b.String() + piece[i:]
		}
		i = j - 1
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isExponentSign(s string, i int) bool {
	if i < 2 || (s[i-1] != 'e' && s[i-1] != 'E') {
		return false
	}
	prev := s[i-2]
	return (prev >= '0' && prev <= '9') || prev == '.'
}
