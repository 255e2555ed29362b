package chunking

import (
	"strings"
	"unicode/utf8"
)

type row struct {
	text   strings.Builder
	length int
}

// rowSequence is an ordered list of rows with a cursor on the row that
// receives the next token. Rows are only opened when a token is placed.
type rowSequence struct {
	rows       []*row
	cursor     int
	overflowed bool
}

func (s *rowSequence) current() *row {
	if len(s.rows) == 0 {
		s.rows = append(s.rows, &row{})
		s.cursor = 0
	}
	return s.rows[s.cursor]
}

func (s *rowSequence) open() {
	s.rows = append(s.rows, &row{})
	s.cursor = len(s.rows) - 1
}

func (s *rowSequence) appendToCurrent(token string, tokenLength int) {
	r := s.current()
	r.text.WriteString(token)
	r.length += tokenLength
}

func (s *rowSequence) strings() []string {
	out := make([]string, len(s.rows))
	for i, r := range s.rows {
		out[i] = r.text.String()
	}
	return out
}

// packRows fills rows greedily. A token that would push the current row past
// maxLength goes to a new row, unless the row cap is reached, in which case it
// is appended to the last row regardless of length.
func packRows(tokens []string, maxLength, maxRows int) *rowSequence {
	seq := &rowSequence{}
	for _, token := range tokens {
		tokenLength := utf8.RuneCountInString(token)
		exceeds := seq.current().length+tokenLength > maxLength
		if exceeds {
			if seq.cursor < maxRows-1 {
				seq.open()
			} else {
				seq.overflowed = true
			}
		}
		seq.appendToCurrent(token, tokenLength)
	}
	return seq
}
