// SPDX-License-Identifier: Apache-2.0

package sqlvalues

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// RawRow is the ordered list of verbatim SQL literal tokens of one row tuple.
type RawRow []string

var (
	ErrValuesClauseNotFound = errors.New("could not find VALUES clause")
	errUnterminatedRow      = errors.New("unterminated row tuple")
	errUnterminatedString   = errors.New("unterminated string literal")
)

// the keyword only counts when a row tuple or the terminator follows it, so
// values mentioned in comments or identifiers before the clause are skipped
var valuesKeyword = regexp.MustCompile(`(?i)\bVALUES\s*[(;]`)

type scanState uint8

const (
	stateOutside scanState = iota
	stateInRow
	stateInString
)

type scanner struct {
	input string

	state scanState
	// state to go back to once the current string literal is closed
	resume scanState
	quote  byte
	depth  int

	field strings.Builder
	row   RawRow
	rows  []RawRow
}

// Parse locates the first VALUES keyword followed by a row tuple in the sql text on input and returns
// the row tuples that follow it, up to the statement terminating semicolon.
// Rows and fields are returned in source order. Parentheses and delimiters
// nested inside a row field or a string literal are kept as part of the field
// text.
func Parse(sql string) ([]RawRow, error) {
	loc := valuesKeyword.FindStringIndex(sql)
	if loc == nil {
		return nil, ErrValuesClauseNotFound
	}

	// resume on the opening parenthesis or terminator matched last
	s := &scanner{input: sql[loc[1]-1:]}
	return s.scan()
}

func (s *scanner) scan() ([]RawRow, error) {
	for i := 0; i < len(s.input); i++ {
		c := s.input[i]
		switch s.state {
		case stateInString:
			if s.resume == stateInRow {
				s.field.WriteByte(c)
			}
			if c == s.quote && !s.isEscaped(i) {
				s.state = s.resume
			}

		case stateOutside:
			switch {
			case isQuote(c) && !s.isEscaped(i):
				s.openString(c)
			case c == '(':
				s.depth = 1
				s.field.Reset()
				s.state = stateInRow
			case c == ';':
				return s.rows, nil
			}

		case stateInRow:
			switch {
			case isQuote(c) && !s.isEscaped(i):
				s.field.WriteByte(c)
				s.openString(c)
			case c == '(':
				s.depth++
				s.field.WriteByte(c)
			case c == ')':
				s.depth--
				if s.depth > 0 {
					s.field.WriteByte(c)
					continue
				}
				s.endField()
				s.endRow()
			case c == ',' && s.depth == 1:
				s.endField()
			default:
				s.field.WriteByte(c)
			}
		}
	}

	switch {
	case s.state == stateInString:
		return nil, fmt.Errorf("%w: %w", ErrValuesClauseNotFound, errUnterminatedString)
	case s.state == stateInRow:
		return nil, fmt.Errorf("%w: %w (row %d)", ErrValuesClauseNotFound, errUnterminatedRow, len(s.rows))
	default:
		// no statement terminator after the last row
		return nil, ErrValuesClauseNotFound
	}
}

func (s *scanner) openString(quote byte) {
	s.resume = s.state
	s.quote = quote
	s.state = stateInString
}

func (s *scanner) endField() {
	s.row = append(s.row, strings.TrimSpace(s.field.String()))
	s.field.Reset()
}

func (s *scanner) endRow() {
	s.rows = append(s.rows, s.row)
	s.row = nil
	s.state = stateOutside
}

// isEscaped reports whether the character at position i is preceded by a
// backslash.
func (s *scanner) isEscaped(i int) bool {
	return i > 0 && s.input[i-1] == '\\'
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"'
}
