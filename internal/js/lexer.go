package js

import (
	"fmt"
	"strings"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokKeyword
	tokNumber
	tokString
	tokTemplate
	tokRegex
	tokPunct
	tokComment
)

type token struct {
	typ     tokenType
	lit     string
	line    int
	col     int
	off     int // byte offset of the token start
	end     int // byte offset just past the token
	block   bool // for tokComment: true when /* */ style
	newline bool // token is the first on its line
}

// ParseError reports a lexing or parsing failure with its source position.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

var keywords = map[string]bool{
	"async": false, // contextual, classified at parse time
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "default": true, "delete": true, "do": true,
	"else": true, "export": true, "extends": true, "finally": true, "for": true,
	"function": true, "if": true, "import": true, "in": true, "instanceof": true,
	"let": true, "new": true, "of": true, "return": true, "switch": true,
	"throw": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "yield": true,
}

// multi-character punctuators, longest first so scanning is greedy.
var puncts = []string{
	">>>=", "===", "!==", "**=", "<<=", ">>=", ">>>", "...", "&&=", "||=", "??=",
	"==", "!=", "<=", ">=", "&&", "||", "??", "?.", "=>", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
	"{", "}", "(", ")", "[", "]", ";", ",", "<", ">", "+", "-", "*", "/",
	"%", "&", "|", "^", "!", "~", "?", ":", "=", ".",
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int

	toks []token
}

func lex(src string) ([]token, error) {
	l := &lexer{src: src, line: 1, col: 1}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.toks, nil
}

func (l *lexer) run() error {
	atLineStart := true
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.advance(1)
			atLineStart = true
			continue
		case c == ' ' || c == '\t' || c == '\r':
			l.advance(1)
			continue
		case c == '/' && l.peek(1) == '/':
			l.lexLineComment(atLineStart)
		case c == '/' && l.peek(1) == '*':
			if err := l.lexBlockComment(atLineStart); err != nil {
				return err
			}
		case c == '"' || c == '\'':
			if err := l.lexString(atLineStart); err != nil {
				return err
			}
		case c == '`':
			if err := l.lexTemplate(atLineStart); err != nil {
				return err
			}
		case c >= '0' && c <= '9':
			l.lexNumber(atLineStart)
		case c == '.' && l.peek(1) >= '0' && l.peek(1) <= '9':
			l.lexNumber(atLineStart)
		case isIdentStart(c):
			l.lexIdent(atLineStart)
		case c == '/' && l.regexAllowed():
			if err := l.lexRegex(atLineStart); err != nil {
				return err
			}
		default:
			if !l.lexPunct(atLineStart) {
				return l.errf("unexpected character %q", string(c))
			}
		}
		atLineStart = false
	}
	l.emit(token{typ: tokEOF, line: l.line, col: l.col, off: l.pos, end: l.pos, newline: atLineStart})
	return nil
}

func (l *lexer) peek(n int) byte {
	if l.pos+n < len(l.src) {
		return l.src[l.pos+n]
	}
	return 0
}

func (l *lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *lexer) emit(t token) {
	l.toks = append(l.toks, t)
}

func (l *lexer) errf(format string, args ...any) error {
	return &ParseError{Line: l.line, Col: l.col, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) lexLineComment(nl bool) {
	line, col, off := l.line, l.col, l.pos
	start := l.pos + 2
	end := start
	for end < len(l.src) && l.src[end] != '\n' {
		end++
	}
	l.advance(end - l.pos)
	l.emit(token{typ: tokComment, lit: l.src[start:end], line: line, col: col, off: off, end: end, newline: nl})
}

func (l *lexer) lexBlockComment(nl bool) error {
	line, col, off := l.line, l.col, l.pos
	start := l.pos + 2
	idx := strings.Index(l.src[start:], "*/")
	if idx < 0 {
		return l.errf("unterminated block comment")
	}
	l.advance(idx + 4)
	l.emit(token{typ: tokComment, lit: l.src[start : start+idx], line: line, col: col, block: true, off: off, end: start + idx + 2, newline: nl})
	return nil
}

func (l *lexer) lexString(nl bool) error {
	line, col := l.line, l.col
	quote := l.src[l.pos]
	start := l.pos
	i := l.pos + 1
	for i < len(l.src) {
		switch l.src[i] {
		case '\\':
			i += 2
			continue
		case quote:
			l.advance(i + 1 - l.pos)
			l.emit(token{typ: tokString, lit: l.src[start : i+1], line: line, col: col, off: start, end: i + 1, newline: nl})
			return nil
		case '\n':
			return l.errf("unterminated string literal")
		}
		i++
	}
	return l.errf("unterminated string literal")
}

func (l *lexer) lexTemplate(nl bool) error {
	line, col := l.line, l.col
	start := l.pos
	i := l.pos + 1
	depth := 0 // ${ } nesting
	for i < len(l.src) {
		switch {
		case l.src[i] == '\\':
			i += 2
			continue
		case l.src[i] == '$' && i+1 < len(l.src) && l.src[i+1] == '{':
			depth++
			i += 2
			continue
		case l.src[i] == '}' && depth > 0:
			depth--
		case l.src[i] == '`' && depth == 0:
			l.advance(i + 1 - l.pos)
			l.emit(token{typ: tokTemplate, lit: l.src[start : i+1], line: line, col: col, off: start, end: i + 1, newline: nl})
			return nil
		}
		i++
	}
	return l.errf("unterminated template literal")
}

func (l *lexer) lexNumber(nl bool) {
	line, col := l.line, l.col
	start := l.pos
	i := l.pos
	if l.src[i] == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X' || l.peek(1) == 'b' || l.peek(1) == 'B' || l.peek(1) == 'o' || l.peek(1) == 'O') {
		i += 2
		for i < len(l.src) && isHexDigit(l.src[i]) {
			i++
		}
	} else {
		for i < len(l.src) && (isDigit(l.src[i]) || l.src[i] == '.' || l.src[i] == '_') {
			i++
		}
		if i < len(l.src) && (l.src[i] == 'e' || l.src[i] == 'E') {
			i++
			if i < len(l.src) && (l.src[i] == '+' || l.src[i] == '-') {
				i++
			}
			for i < len(l.src) && isDigit(l.src[i]) {
				i++
			}
		}
	}
	if i < len(l.src) && l.src[i] == 'n' { // bigint suffix
		i++
	}
	l.advance(i - l.pos)
	l.emit(token{typ: tokNumber, lit: l.src[start:i], line: line, col: col, off: start, end: i, newline: nl})
}

func (l *lexer) lexIdent(nl bool) {
	line, col := l.line, l.col
	start := l.pos
	i := l.pos
	for i < len(l.src) && isIdentPart(l.src[i]) {
		i++
	}
	lit := l.src[start:i]
	l.advance(i - l.pos)
	typ := tokIdent
	if keywords[lit] {
		typ = tokKeyword
	}
	l.emit(token{typ: typ, lit: lit, line: line, col: col, off: start, end: i, newline: nl})
}

func (l *lexer) lexRegex(nl bool) error {
	line, col := l.line, l.col
	start := l.pos
	i := l.pos + 1
	inClass := false
	for i < len(l.src) {
		switch l.src[i] {
		case '\\':
			i += 2
			continue
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '\n':
			return l.errf("unterminated regular expression")
		case '/':
			if !inClass {
				i++
				for i < len(l.src) && isIdentPart(l.src[i]) { // flags
					i++
				}
				l.advance(i - l.pos)
				l.emit(token{typ: tokRegex, lit: l.src[start:i], line: line, col: col, off: start, end: i, newline: nl})
				return nil
			}
		}
		i++
	}
	return l.errf("unterminated regular expression")
}

func (l *lexer) lexPunct(nl bool) bool {
	for _, p := range puncts {
		if strings.HasPrefix(l.src[l.pos:], p) {
			line, col, off := l.line, l.col, l.pos
			l.advance(len(p))
			l.emit(token{typ: tokPunct, lit: p, line: line, col: col, off: off, end: off + len(p), newline: nl})
			return true
		}
	}
	return false
}

// regexAllowed reports whether a `/` at the current position starts a regex
// literal rather than a division operator, judged from the previous
// significant token.
func (l *lexer) regexAllowed() bool {
	for i := len(l.toks) - 1; i >= 0; i-- {
		prev := l.toks[i]
		if prev.typ == tokComment {
			continue
		}
		switch prev.typ {
		case tokIdent, tokNumber, tokString, tokTemplate, tokRegex:
			return false
		case tokKeyword:
			// `return /re/`, `typeof /re/` etc. allow a regex.
			return true
		case tokPunct:
			switch prev.lit {
			case ")", "]", "}", "++", "--":
				return false
			}
			return true
		}
		return true
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') || c == '_'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
