// Package scanner turns Lox source text into a token sequence.
package scanner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/sdecook/golox/internal/loxerr"
	"github.com/sdecook/golox/internal/token"
)

// Scanner performs a single pass over the source with one character of
// lookahead (two for the "/" comment case and number fractions).
type Scanner struct {
	source []byte
	idx    int // index of the current character; -1 before the first call to next
	ch     byte
	line   int
	log    *logrus.Logger
}

// New returns a Scanner over source. log may be nil, in which case tracing
// is disabled.
func New(source string, log *logrus.Logger) *Scanner {
	return &Scanner{
		source: []byte(source),
		idx:    -1,
		line:   1,
		log:    log,
	}
}

// Scan consumes the whole source and returns its tokens terminated by EOF.
// If any illegal character or unterminated string was found, it returns a
// non-nil *multierror.Error (each cause a *loxerr.ScanError) alongside the
// tokens collected around the bad spans.
func (s *Scanner) Scan() ([]token.Token, error) {
	var toks []token.Token
	var errs *multierror.Error

	for s.next() {
		switch s.ch {
		case ' ', '\t', '\r':
			// skip
		case '\n':
			s.line++
		case '(':
			toks = append(toks, s.tok(token.LEFT_PAREN, "("))
		case ')':
			toks = append(toks, s.tok(token.RIGHT_PAREN, ")"))
		case '{':
			toks = append(toks, s.tok(token.LEFT_BRACE, "{"))
		case '}':
			toks = append(toks, s.tok(token.RIGHT_BRACE, "}"))
		case ',':
			toks = append(toks, s.tok(token.COMMA, ","))
		case '.':
			toks = append(toks, s.tok(token.DOT, "."))
		case '-':
			toks = append(toks, s.tok(token.MINUS, "-"))
		case '+':
			toks = append(toks, s.tok(token.PLUS, "+"))
		case ';':
			toks = append(toks, s.tok(token.SEMICOLON, ";"))
		case '*':
			toks = append(toks, s.tok(token.STAR, "*"))
		case '/':
			if s.peek() == '/' {
				s.skipLineComment()
			} else {
				toks = append(toks, s.tok(token.SLASH, "/"))
			}
		case '=':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, s.tok(token.EQUAL_EQUAL, "=="))
			} else {
				toks = append(toks, s.tok(token.EQUAL, "="))
			}
		case '!':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, s.tok(token.BANG_EQUAL, "!="))
			} else {
				toks = append(toks, s.tok(token.BANG, "!"))
			}
		case '<':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, s.tok(token.LESS_EQUAL, "<="))
			} else {
				toks = append(toks, s.tok(token.LESS, "<"))
			}
		case '>':
			if s.peek() == '=' {
				s.next()
				toks = append(toks, s.tok(token.GREATER_EQUAL, ">="))
			} else {
				toks = append(toks, s.tok(token.GREATER, ">"))
			}
		case '"':
			tok, err := s.stringLiteral()
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			toks = append(toks, tok)
		default:
			switch {
			case isDigit(s.ch):
				toks = append(toks, s.numberLiteral())
			case isAlpha(s.ch):
				toks = append(toks, s.identifier())
			default:
				errs = multierror.Append(errs, &loxerr.ScanError{
					Line: s.line,
					Msg:  fmt.Sprintf("Unexpected character: %s", string(s.ch)),
				})
			}
		}
	}

	toks = append(toks, token.New(token.EOF, "", nil, s.line))
	s.trace("scanned %d tokens", len(toks))
	return toks, errs.ErrorOrNil()
}

func (s *Scanner) next() bool {
	if s.idx >= len(s.source)-1 {
		s.idx = len(s.source)
		return false
	}
	s.idx++
	s.ch = s.source[s.idx]
	return true
}

func (s *Scanner) peek() byte {
	if s.idx+1 >= len(s.source) {
		return 0
	}
	return s.source[s.idx+1]
}

func (s *Scanner) peekNext() byte {
	if s.idx+2 >= len(s.source) {
		return 0
	}
	return s.source[s.idx+2]
}

func (s *Scanner) tok(kind token.Type, lexeme string) token.Token {
	return token.New(kind, lexeme, nil, s.line)
}

func (s *Scanner) skipLineComment() {
	for s.peek() != '\n' && s.peek() != 0 {
		s.next()
	}
}

func (s *Scanner) stringLiteral() (token.Token, error) {
	startLine := s.line
	start := s.idx

	for {
		if s.peek() == 0 {
			return token.Token{}, &loxerr.ScanError{Line: startLine, Msg: "Unterminated string."}
		}
		if s.peek() == '\n' {
			s.line++
		}
		s.next()
		if s.ch == '"' {
			break
		}
	}

	lexeme := string(s.source[start : s.idx+1])
	literal := strings.Trim(lexeme, "\"")
	return token.New(token.STRING, lexeme, literal, startLine), nil
}

func (s *Scanner) numberLiteral() token.Token {
	start := s.idx

	for isDigit(s.peek()) {
		s.next()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.next()
		for isDigit(s.peek()) {
			s.next()
		}
	}

	lexeme := string(s.source[start : s.idx+1])
	value, _ := strconv.ParseFloat(lexeme, 64)
	return token.New(token.NUMBER, lexeme, value, s.line)
}

func (s *Scanner) identifier() token.Token {
	start := s.idx

	for isAlphaNumeric(s.peek()) {
		s.next()
	}

	lexeme := string(s.source[start : s.idx+1])
	kind, isKeyword := token.Keywords[lexeme]
	if !isKeyword {
		kind = token.IDENTIFIER
	}
	return token.New(kind, lexeme, nil, s.line)
}

func (s *Scanner) trace(format string, args ...any) {
	if s.log != nil {
		s.log.Debugf(format, args...)
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
