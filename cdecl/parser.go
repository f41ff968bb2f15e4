package cdecl

import (
	"fmt"
	"io"
)

// ParseStatus is the outcome of a full declaration parse.
type ParseStatus int

const (
	ParseOK ParseStatus = iota
	// ParseNilInput means the input stream was nil.
	ParseNilInput
	// ParseNilOutput means the output stream was nil.
	ParseNilOutput
	// ParseEOF means input ended after the identifier but before the
	// declaration was complete.
	ParseEOF
	// ParseLexerErr wraps a lexer fault; the errinfo lexer half has the
	// originating status and text.
	ParseLexerErr
	// ParseStackOverflow means the declaration had more prefix tokens than
	// the token stack can defer.
	ParseStackOverflow
	// ParseOutputErr means a write to the output stream failed.
	ParseOutputErr
	// ParseErr is a generic structural fault; the errinfo parser text has
	// details.
	ParseErr
	// ParseBadToken is kept for status-vocabulary completeness; bad tokens
	// surface as ParseLexerErr with LexBadToken underneath.
	ParseBadToken
	// ParseNilErrText means a parse error was reported with no detail text.
	ParseNilErrText
	// ParseErrTextTooLong means the parser detail text was truncated to
	// ErrorTextLen bytes.
	ParseErrTextTooLong
)

var parseStatusNames = [...]string{
	ParseOK:             "ParseOK",
	ParseNilInput:       "ParseNilInput",
	ParseNilOutput:      "ParseNilOutput",
	ParseEOF:            "ParseEOF",
	ParseLexerErr:       "ParseLexerErr",
	ParseStackOverflow:  "ParseStackOverflow",
	ParseOutputErr:      "ParseOutputErr",
	ParseErr:            "ParseErr",
	ParseBadToken:       "ParseBadToken",
	ParseNilErrText:     "ParseNilErrText",
	ParseErrTextTooLong: "ParseErrTextTooLong",
}

func (s ParseStatus) String() string {
	if s < 0 || int(s) >= len(parseStatusNames) {
		return "(unknown)"
	}
	return parseStatusNames[s]
}

// Message returns a human-readable description of the status.
func (s ParseStatus) Message() string {
	switch s {
	case ParseOK:
		return "Success"
	case ParseNilInput:
		return "Input stream is nil"
	case ParseNilOutput:
		return "Output stream is nil"
	case ParseEOF:
		return "Parser read EOF before finishing parse"
	case ParseLexerErr:
		return "Lexer error, check error info lexer text"
	case ParseStackOverflow:
		return "Too many tokens to fit on token stack"
	case ParseOutputErr:
		return "Error writing parser output to stream"
	case ParseErr:
		return "Parser error, check error info"
	case ParseBadToken:
		return "Parser read bad token from lexer"
	case ParseNilErrText:
		return "Parser error text is missing"
	case ParseErrTextTooLong:
		return "Parser error text too long and truncated"
	default:
		return "Unknown parser status"
	}
}

// Parse reads one C declaration from r and writes a plain-English description
// of the declared type to w, e.g. "x: pointer to pointer to const double".
// Parsing is terminal on ';' or on the first fault. errinfo may be nil to
// disable diagnostics; behavior is otherwise identical.
//
// Output is not transactional: partial text may have been written to w before
// a fault is detected.
func Parse(r io.Reader, w io.Writer, errinfo *ErrInfo) ParseStatus {
	if r == nil {
		return ParseNilInput
	}
	return ParseWith(NewLexer(r), w, errinfo)
}

// ParseWith is Parse over an existing lexer. Callers reading several
// declarations from one stream reuse the lexer between calls so that
// buffered input is not lost; each call still owns a fresh token stack and
// errinfo record.
func ParseWith(lx *Lexer, w io.Writer, errinfo *ErrInfo) ParseStatus {
	if lx == nil {
		return ParseNilInput
	}
	if w == nil {
		return ParseNilOutput
	}
	p := parser{lx: lx, w: w, errinfo: errinfo}
	return p.parse()
}

// parser holds the state of a single declaration parse. Each call owns its
// stack and streams; nothing is shared between invocations.
type parser struct {
	lx      *Lexer
	w       io.Writer
	errinfo *ErrInfo
	stack   tokenStack

	// right parens read after the identifier, balanced against '(' tokens
	// popped during the pointer pass
	nRParen int
}

// fail records the fault in the errinfo record and returns the status the
// record received, which differs from status when the detail text is missing
// or truncated.
func (p *parser) fail(lexStatus LexStatus, tok Token, status ParseStatus, text string) ParseStatus {
	writeErrInfo(p.errinfo, lexStatus, tok, status, text)
	if status == ParseErr {
		if text == "" {
			return ParseNilErrText
		}
		if len(text) > ErrorTextLen {
			return ParseErrTextTooLong
		}
	}
	return status
}

func (p *parser) failf(status ParseStatus, format string, args ...any) ParseStatus {
	return p.fail(LexOK, Token{}, status, fmt.Sprintf(format, args...))
}

// printf writes to the output stream, converting any write failure into
// ParseOutputErr.
func (p *parser) printf(format string, args ...any) ParseStatus {
	if _, err := fmt.Fprintf(p.w, format, args...); err != nil {
		return p.fail(LexOK, Token{}, ParseOutputErr, "")
	}
	return ParseOK
}

func (p *parser) parse() ParseStatus {
	ident, status := p.scanToIdent()
	if status != ParseOK {
		return status
	}
	if st := p.printf("%s:", ident.Text); st != ParseOK {
		return st
	}
	if st := p.scanDeclarator(ident); st != ParseOK {
		return st
	}
	if st := p.parsePointers(); st != ParseOK {
		return st
	}
	if st := p.parseType(); st != ParseOK {
		return st
	}
	writeErrInfo(p.errinfo, LexOK, Token{}, ParseOK, "")
	return ParseOK
}

// scanToIdent lexes tokens onto the stack until the declared identifier
// appears. The identifier itself is returned, not pushed.
func (p *parser) scanToIdent() (Token, ParseStatus) {
	for {
		tok, lexStatus := p.lx.NextToken()
		if lexStatus != LexOK {
			return tok, p.fail(lexStatus, tok, ParseLexerErr, "")
		}
		if tok.Kind == KindIdent {
			return tok, ParseOK
		}
		if !p.stack.push(tok) {
			return tok, p.fail(lexStatus, tok, ParseStackOverflow, "")
		}
	}
}

// next reads the next token during the postfix scan, where end of input means
// the declaration is known to be unfinished.
func (p *parser) next() (Token, ParseStatus) {
	tok, lexStatus := p.lx.NextToken()
	switch lexStatus {
	case LexOK:
		return tok, ParseOK
	case LexEOF:
		return tok, p.fail(lexStatus, tok, ParseEOF, "")
	default:
		return tok, p.fail(lexStatus, tok, ParseLexerErr, "")
	}
}

// scanDeclarator handles everything between the identifier and the closing
// ';': trailing right parens from grouped declarators and array specifiers.
// Array structure is written to the output as each group completes.
func (p *parser) scanDeclarator(ident Token) ParseStatus {
	tok, st := p.next()
	if st != ParseOK {
		return st
	}
	for tok.Kind == KindRParen {
		p.nRParen++
		if tok, st = p.next(); st != ParseOK {
			return st
		}
	}
	dim := 0
	for {
		switch tok.Kind {
		case KindLBracket:
			dim++
			if tok, st = p.next(); st != ParseOK {
				return st
			}
			bound := ""
			if tok.Kind == KindNumber {
				bound = tok.Text
				if tok, st = p.next(); st != ParseOK {
					return st
				}
			}
			switch {
			case tok.Kind == KindLBracket:
				return p.failf(ParseErr, "Duplicate '[' when parsing array specifier")
			case tok.Kind != KindRBracket:
				return p.failf(
					ParseErr,
					"Unexpected token type %s with text %q when parsing array specifier",
					tok.Kind, tok.Text,
				)
			case bound == "" && dim > 1:
				return p.failf(ParseErr, "Missing bound for array dimension %d", dim)
			}
			if bound == "" {
				st = p.printf(" array of")
			} else {
				st = p.printf(" array %s of", bound)
			}
			if st != ParseOK {
				return st
			}
			if tok, st = p.next(); st != ParseOK {
				return st
			}
		case KindNumber:
			return p.failf(ParseErr, "Array bound %s with no preceding '['", tok.Text)
		case KindRBracket:
			return p.failf(ParseErr, "']' with no matching '[' when parsing array specifier")
		case KindSemicolon:
			return ParseOK
		default:
			return p.failf(ParseErr, "Incomplete declaration for identifier %s", ident.Text)
		}
	}
}

// parsePointers pops deferred tokens to resolve pointer levels and their
// cv-qualifiers. The token that ends the phase is left on the stack for the
// type pass.
func (p *parser) parsePointers() ParseStatus {
	hasConst := false
	hasVolatile := false
	nLParen := 0
	for {
		tok, ok := p.stack.top()
		if !ok {
			return p.failf(ParseErr, "Unexpectedly ran out of tokens when parsing pointers, missing type")
		}
		switch tok.Kind {
		case KindConst:
			if hasConst {
				return p.failf(ParseErr, "Duplicate const qualifier for pointer")
			}
			hasConst = true
		case KindVolatile:
			if hasVolatile {
				return p.failf(ParseErr, "Duplicate volatile qualifier for pointer")
			}
			hasVolatile = true
		case KindLParen:
			nLParen++
		case KindStar:
			if hasConst {
				if st := p.printf(" const"); st != ParseOK {
					return st
				}
			}
			if hasVolatile {
				if st := p.printf(" volatile"); st != ParseOK {
					return st
				}
			}
			if st := p.printf(" pointer to"); st != ParseOK {
				return st
			}
			hasConst, hasVolatile = false, false
		default:
			if hasConst || hasVolatile {
				return p.failf(
					ParseErr,
					"Unexpected token type %s with text %q when parsing pointers",
					tok.Kind, tok.Text,
				)
			}
			if nLParen != p.nRParen {
				return p.failf(
					ParseErr,
					"Mismatched parentheses when parsing pointers, read %d '(' %d ')'",
					nLParen, p.nRParen,
				)
			}
			return ParseOK
		}
		p.stack.pop()
	}
}

// parseType pops the remaining tokens to resolve the cv-qualified, possibly
// sign-qualified base type, then writes it followed by a newline.
func (p *parser) parseType() ParseStatus {
	hasConst := false
	hasVolatile := false
	var sign Kind  // KindSigned, KindUnsigned or zero
	var base Token // base type token, zero until seen
	for {
		tok, ok := p.stack.pop()
		if !ok {
			break
		}
		switch tok.Kind {
		case KindConst:
			if hasConst {
				return p.failf(ParseErr, "Duplicate const qualifier for type")
			}
			hasConst = true
		case KindVolatile:
			if hasVolatile {
				return p.failf(ParseErr, "Duplicate volatile qualifier for type")
			}
			hasVolatile = true
		case KindSigned, KindUnsigned:
			if sign == tok.Kind {
				return p.failf(ParseErr, "Duplicate %s qualifier for type", tok.Kind)
			}
			if sign != KindError {
				return p.failf(
					ParseErr,
					"Identifier already qualified as %s, cannot re-qualify as %s",
					sign, tok.Kind,
				)
			}
			sign = tok.Kind
		case KindStruct, KindEnum, KindVoid, KindChar, KindInt, KindLong, KindFloat, KindDouble:
			if base.Kind != KindError {
				return p.failf(
					ParseErr,
					"Type %s provided when identifier already specified as %s",
					tok.Kind, base.Kind,
				)
			}
			base = tok
		default:
			return p.failf(
				ParseErr,
				"Unexpected token type %s with text %q when parsing identifier type",
				tok.Kind, tok.Text,
			)
		}
	}
	if base.Kind == KindError {
		return p.failf(ParseErr, "Missing type for identifier")
	}
	if hasConst {
		if st := p.printf(" const"); st != ParseOK {
			return st
		}
	}
	if hasVolatile {
		if st := p.printf(" volatile"); st != ParseOK {
			return st
		}
	}
	if sign != KindError {
		if base.Kind != KindChar && base.Kind != KindInt && base.Kind != KindLong {
			return p.failf(ParseErr, "Only char, int, or long can be signed or unsigned")
		}
		if st := p.printf(" %s", sign); st != ParseOK {
			return st
		}
	}
	var st ParseStatus
	switch base.Kind {
	case KindStruct, KindEnum:
		st = p.printf(" %s %s", base.Kind, base.Text)
	default:
		st = p.printf(" %s", base.Kind)
	}
	if st != ParseOK {
		return st
	}
	return p.printf("\n")
}
