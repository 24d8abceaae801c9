package chip8

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

/// Type for scanned tokens.
///
type tokenType uint8

/// Lexical assembly tokens.
///
const (
	tokenEnd tokenType = iota
	tokenComma
	tokenLabel
	tokenIdent
	tokenV
	tokenI
	tokenB
	tokenF
	tokenK
	tokenDT
	tokenST
	tokenIndirect
	tokenLit
	tokenText
)

/// A lexical token. Registers and literals carry a number, labels and
/// identifiers carry their upper case name and strings their text.
///
type token struct {
	typ  tokenType
	num  int
	text string
}

/// CHIP-8 assembler token scanner over one source line.
///
type tokenScanner struct {
	line string
	pos  int
}

/// scanLine splits a source line into tokens, dropping any comment.
///
func scanLine(line string) ([]token, error) {
	s := &tokenScanner{line: line}

	var tokens []token
	for {
		t, err := s.scanToken()
		if err != nil {
			return nil, err
		}

		if t.typ == tokenEnd {
			return tokens, nil
		}

		tokens = append(tokens, t)
	}
}

/// Reads the next token from a scanner.
///
func (s *tokenScanner) scanToken() (token, error) {
	for s.pos < len(s.line) && s.line[s.pos] <= ' ' {
		s.pos++
	}

	// end of line or start of a comment
	if s.pos >= len(s.line) || s.line[s.pos] == ';' {
		return token{typ: tokenEnd}, nil
	}

	c := s.line[s.pos]

	switch {
	case c == ',':
		s.pos++
		return token{typ: tokenComma}, nil
	case c == '[':
		return s.scanIndirection()
	case c == '#':
		return s.scanHexLit()
	case c == '$':
		return s.scanBinLit()
	case c == '-' || isDigit(c):
		return s.scanDecLit()
	case isIdentStart(c):
		return s.scanIdentifier(), nil
	case c == '"' || c == '\'':
		return s.scanString(c)
	}

	return token{}, fmt.Errorf("unexpected character %q", c)
}

/// Scan an identifier: instruction, register, label or label reference.
///
func (s *tokenScanner) scanIdentifier() token {
	i := s.pos

	for s.pos < len(s.line) && (isIdentStart(s.line[s.pos]) || isDigit(s.line[s.pos])) {
		s.pos++
	}

	id := strings.ToUpper(s.line[i:s.pos])

	// a trailing colon defines a label
	if s.pos < len(s.line) && s.line[s.pos] == ':' {
		s.pos++
		return token{typ: tokenLabel, text: id}
	}

	if len(id) == 2 && id[0] == 'V' {
		if n, err := strconv.ParseUint(id[1:], 16, 8); err == nil {
			return token{typ: tokenV, num: int(n)}
		}
	}

	switch id {
	case "I":
		return token{typ: tokenI}
	case "B":
		return token{typ: tokenB}
	case "F":
		return token{typ: tokenF}
	case "K":
		return token{typ: tokenK}
	case "DT":
		return token{typ: tokenDT}
	case "ST":
		return token{typ: tokenST}
	}

	return token{typ: tokenIdent, text: id}
}

/// Scan the [I] operand of the register load and store instructions.
///
func (s *tokenScanner) scanIndirection() (token, error) {
	end := strings.IndexByte(s.line[s.pos:], ']')
	if end < 0 {
		return token{}, errors.New("unterminated indirection")
	}

	inner := strings.TrimSpace(s.line[s.pos+1 : s.pos+end])
	s.pos += end + 1

	if !strings.EqualFold(inner, "I") {
		return token{}, fmt.Errorf("illegal indirection [%s]", inner)
	}

	return token{typ: tokenIndirect}, nil
}

/// Scan a decimal literal, or a hexadecimal one with a 0x prefix.
///
func (s *tokenScanner) scanDecLit() (token, error) {
	i := s.pos

	if s.line[s.pos] == '-' {
		s.pos++
	}

	base := 10
	if strings.HasPrefix(s.line[s.pos:], "0x") || strings.HasPrefix(s.line[s.pos:], "0X") {
		s.pos += 2
		base = 16
	}

	start := s.pos
	for s.pos < len(s.line) && isDigitOf(s.line[s.pos], base) {
		s.pos++
	}

	n, err := strconv.ParseInt(s.line[start:s.pos], base, 32)
	if err != nil {
		return token{}, fmt.Errorf("illegal number %s", s.line[i:s.pos])
	}

	if s.line[i] == '-' {
		n = -n
	}

	return token{typ: tokenLit, num: int(n)}, nil
}

/// Scan a hexadecimal literal.
///
func (s *tokenScanner) scanHexLit() (token, error) {
	i := s.pos

	s.pos++
	for s.pos < len(s.line) && isDigitOf(s.line[s.pos], 16) {
		s.pos++
	}

	n, err := strconv.ParseInt(s.line[i+1:s.pos], 16, 32)
	if err != nil {
		return token{}, fmt.Errorf("illegal hex value %s", s.line[i:s.pos])
	}

	return token{typ: tokenLit, num: int(n)}, nil
}

/// Scan a binary literal, where '.' may stand in for 0 to draw sprites.
///
func (s *tokenScanner) scanBinLit() (token, error) {
	i := s.pos

	s.pos++
	for s.pos < len(s.line) && strings.IndexByte(".01", s.line[s.pos]) >= 0 {
		s.pos++
	}

	bits := strings.ReplaceAll(s.line[i+1:s.pos], ".", "0")

	n, err := strconv.ParseInt(bits, 2, 32)
	if err != nil {
		return token{}, fmt.Errorf("illegal binary value %s", s.line[i:s.pos])
	}

	return token{typ: tokenLit, num: int(n)}, nil
}

/// Scan a quoted string.
///
func (s *tokenScanner) scanString(term byte) (token, error) {
	end := strings.IndexByte(s.line[s.pos+1:], term)
	if end < 0 {
		return token{}, errors.New("unterminated string")
	}

	text := s.line[s.pos+1 : s.pos+1+end]
	s.pos += end + 2

	return token{typ: tokenText, text: text}, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDigitOf(c byte, base int) bool {
	if base == 16 {
		return isDigit(c) || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
	}
	return isDigit(c)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
