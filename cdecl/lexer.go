package cdecl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LexStatus is the outcome of one token-read attempt. LexEOF is a normal
// terminal condition, not necessarily an error; callers distinguish it from
// true lexer faults.
type LexStatus int

const (
	LexOK LexStatus = iota
	// LexNilStream means the lexer has no input stream.
	LexNilStream
	// LexNilToken means the token output slot was nil. The value-returning
	// API cannot produce it; it remains part of the status vocabulary.
	LexNilToken
	// LexUnreadFail means the last read character could not be returned to
	// the stream. The lexer-owned pushback buffer cannot fail, so this is
	// likewise vocabulary only.
	LexUnreadFail
	// LexEOF means end of input was reached before any token text.
	LexEOF
	// LexNotNumber means the next token is not a number.
	LexNotNumber
	// LexNotIdent means the next token is not an identifier.
	LexNotIdent
	// LexBadToken means the input was malformed; the token text has details.
	LexBadToken
)

var lexStatusNames = [...]string{
	LexOK:         "LexOK",
	LexNilStream:  "LexNilStream",
	LexNilToken:   "LexNilToken",
	LexUnreadFail: "LexUnreadFail",
	LexEOF:        "LexEOF",
	LexNotNumber:  "LexNotNumber",
	LexNotIdent:   "LexNotIdent",
	LexBadToken:   "LexBadToken",
}

func (s LexStatus) String() string {
	if s < 0 || int(s) >= len(lexStatusNames) {
		return "(unknown)"
	}
	return lexStatusNames[s]
}

// Message returns a human-readable description of the status.
func (s LexStatus) Message() string {
	switch s {
	case LexOK:
		return "Success"
	case LexNilStream:
		return "Input stream is nil"
	case LexNilToken:
		return "Token output address is nil"
	case LexUnreadFail:
		return "Failed to put last read char back to stream"
	case LexEOF:
		return "Read EOF from input stream"
	case LexNotNumber:
		return "Next token to read is not a number"
	case LexNotIdent:
		return "Next token to read is not an identifier"
	case LexBadToken:
		return "Unable to retrieve valid token, see token text for details"
	default:
		return "Unknown lexer status"
	}
}

// Fixed diagnostic texts carried by bad tokens.
const (
	longTokenError     = "Token too large: ..."
	untermCommentError = "Unterminated block comment"
	charTokenErrorFmt  = "Unknown character token '%c'"
)

// Lexer reads tokens from a character stream one call at a time. It relies on
// at most one character of pushback, held in the lexer itself rather than the
// stream.
type Lexer struct {
	r       *bufio.Reader
	peeked  rune
	hasPeek bool
}

// NewLexer wraps r for tokenizing. A nil reader is tolerated; NextToken then
// reports LexNilStream.
func NewLexer(r io.Reader) *Lexer {
	if r == nil {
		return &Lexer{}
	}
	return &Lexer{r: bufio.NewReader(r)}
}

// readRune returns the next character, honoring the pushback buffer. The
// second result is true at end of input; read errors behave as end of input.
func (l *Lexer) readRune() (rune, bool) {
	if l.hasPeek {
		l.hasPeek = false
		return l.peeked, false
	}
	c, _, err := l.r.ReadRune()
	if err != nil {
		return 0, true
	}
	return c, false
}

// unread stores c for the next readRune call. Only one character is ever
// pending; the design never requires multi-character pushback.
func (l *Lexer) unread(c rune) {
	l.peeked = c
	l.hasPeek = true
}

// NextToken reads one token from the input stream. On LexBadToken the token
// kind is KindError and its text carries the diagnostic.
func (l *Lexer) NextToken() (Token, LexStatus) {
	if l.r == nil {
		return Token{}, LexNilStream
	}
	c, eof, unterm := l.skipSpaceAndComments()
	if unterm {
		return Token{Kind: KindError, Text: untermCommentError}, LexBadToken
	}
	if eof {
		return Token{}, LexEOF
	}
	switch {
	case isIdentStart(c):
		l.unread(c)
		return l.lexIdentOrKeyword()
	case isDigit(c):
		l.unread(c)
		return l.lexNumber()
	}
	switch c {
	case '(':
		return Token{Kind: KindLParen}, LexOK
	case ')':
		return Token{Kind: KindRParen}, LexOK
	case '[':
		return Token{Kind: KindLBracket}, LexOK
	case ']':
		return Token{Kind: KindRBracket}, LexOK
	case ',':
		return Token{Kind: KindComma}, LexOK
	case '*':
		return Token{Kind: KindStar}, LexOK
	case ';':
		return Token{Kind: KindSemicolon}, LexOK
	case '/':
		// reachable only when the slash did not open a comment
		return Token{Kind: KindSlash}, LexOK
	}
	tok := Token{Kind: KindError, Text: fmt.Sprintf(charTokenErrorFmt, c)}
	return tok, LexBadToken
}

// skipSpaceAndComments consumes whitespace and comments, returning the first
// significant character. A slash that does not open a comment is returned as
// itself with its lookahead pushed back. The third result is true when a
// block comment hit end of input before closing.
func (l *Lexer) skipSpaceAndComments() (rune, bool, bool) {
	for {
		c, eof := l.readRune()
		if eof {
			return 0, true, false
		}
		if isSpace(c) {
			continue
		}
		if c != '/' {
			return c, false, false
		}
		next, eof := l.readRune()
		if eof {
			// lone slash at end of input is still a token
			return c, false, false
		}
		switch next {
		case '*':
			if !l.skipBlockComment() {
				return 0, false, true
			}
		case '/':
			l.skipLineComment()
		default:
			l.unread(next)
			return c, false, false
		}
	}
}

// skipBlockComment consumes through the first "*/", reporting false if end of
// input arrives before the comment closes.
func (l *Lexer) skipBlockComment() bool {
	for {
		c, eof := l.readRune()
		if eof {
			return false
		}
		if c != '*' {
			continue
		}
		next, eof := l.readRune()
		if eof {
			return false
		}
		if next == '/' {
			return true
		}
		// a '*' may still start the terminator
		l.unread(next)
	}
}

func (l *Lexer) skipLineComment() {
	for {
		c, eof := l.readRune()
		if eof || c == '\n' {
			return
		}
	}
}

// lexIdentOrKeyword reads an identifier run and classifies it against the
// keyword set. struct and enum trigger one more identifier read for the tag,
// which becomes the token text.
func (l *Lexer) lexIdentOrKeyword() (Token, LexStatus) {
	text, tok, status := l.identText()
	if status != LexOK {
		return tok, status
	}
	kind, ok := keywords[text]
	if !ok {
		return Token{Kind: KindIdent, Text: text}, LexOK
	}
	if kind == KindStruct || kind == KindEnum {
		tag, tok, status := l.identText()
		if status != LexOK {
			return tok, status
		}
		return Token{Kind: kind, Text: tag}, LexOK
	}
	return Token{Kind: kind}, LexOK
}

// identText reads the maximal run of identifier characters after skipping
// leading whitespace, enforcing the MaxTokenLen bound.
func (l *Lexer) identText() (string, Token, LexStatus) {
	var c rune
	var eof bool
	for {
		c, eof = l.readRune()
		if eof {
			return "", Token{}, LexEOF
		}
		if !isSpace(c) {
			break
		}
	}
	if !isIdentStart(c) {
		l.unread(c)
		return "", Token{}, LexNotIdent
	}
	var b strings.Builder
	b.WriteRune(c)
	for {
		c, eof = l.readRune()
		if eof {
			return b.String(), Token{}, LexOK
		}
		if !isIdentRune(c) {
			l.unread(c)
			return b.String(), Token{}, LexOK
		}
		if b.Len() >= MaxTokenLen {
			l.unread(c)
			return "", Token{Kind: KindError, Text: longTokenError}, LexBadToken
		}
		b.WriteRune(c)
	}
}

// lexNumber reads a digit run with an optional 0x/0X prefix. Number tokens
// are defined for completeness; the declaration grammar consumes them only as
// array bounds.
func (l *Lexer) lexNumber() (Token, LexStatus) {
	c, _ := l.readRune()
	var b strings.Builder
	b.WriteRune(c)
	digit := isDigit
	if c == '0' {
		next, eof := l.readRune()
		if eof {
			return Token{Kind: KindNumber, Text: b.String()}, LexOK
		}
		if next == 'x' || next == 'X' {
			b.WriteRune(next)
			digit = isHexDigit
		} else {
			l.unread(next)
		}
	}
	for {
		c, eof := l.readRune()
		if eof {
			return Token{Kind: KindNumber, Text: b.String()}, LexOK
		}
		if !digit(c) {
			l.unread(c)
			return Token{Kind: KindNumber, Text: b.String()}, LexOK
		}
		if b.Len() >= MaxTokenLen {
			l.unread(c)
			return Token{Kind: KindError, Text: longTokenError}, LexBadToken
		}
		b.WriteRune(c)
	}
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c rune) bool {
	return isAlpha(c) || c == '_'
}

func isIdentRune(c rune) bool {
	return isAlpha(c) || isDigit(c) || c == '_'
}
