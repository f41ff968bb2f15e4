package cdecl

// ErrorTextLen is the bound on parser diagnostic text. Longer messages are
// truncated, and the truncation itself is reported via ParseErrTextTooLong.
const ErrorTextLen = 255

// LexerInfo is the lexer half of an ErrInfo record. Text carries the bad
// token's diagnostic when Status is LexBadToken.
type LexerInfo struct {
	Status LexStatus
	Text   string
}

// ParserInfo is the parser half of an ErrInfo record. Text carries free-form
// detail when Status is ParseErr or ParseErrTextTooLong.
type ParserInfo struct {
	Status ParseStatus
	Text   string
}

// ErrInfo is the caller-supplied diagnostic bundle for one parse call. It is
// populated exactly once per call, overwriting any prior contents. A nil
// ErrInfo disables reporting without affecting parse behavior.
type ErrInfo struct {
	Lexer  LexerInfo
	Parser ParserInfo
}

// writeErrInfo records the statuses of one parse outcome. tok is the most
// recent token read by the lexer; its text is kept only for LexBadToken. text
// is the parser detail, consulted only for ParseErr: an empty text downgrades
// the status to ParseNilErrText, an over-long one is truncated with
// ParseErrTextTooLong.
func writeErrInfo(errinfo *ErrInfo, lexStatus LexStatus, tok Token, parseStatus ParseStatus, text string) {
	if errinfo == nil {
		return
	}
	errinfo.Lexer.Status = lexStatus
	errinfo.Parser.Status = parseStatus
	if lexStatus == LexBadToken {
		errinfo.Lexer.Text = tok.Text
	} else {
		errinfo.Lexer.Text = ""
	}
	if parseStatus != ParseErr {
		errinfo.Parser.Text = ""
		return
	}
	switch {
	case text == "":
		errinfo.Parser.Status = ParseNilErrText
		errinfo.Parser.Text = ""
	case len(text) > ErrorTextLen:
		errinfo.Parser.Status = ParseErrTextTooLong
		errinfo.Parser.Text = text[:ErrorTextLen]
	default:
		errinfo.Parser.Text = text
	}
}

// LexerError is a lexer fault as a Go error.
type LexerError struct {
	Status LexStatus
	Text   string
}

func (e *LexerError) Error() string {
	if e.Text != "" {
		return e.Status.Message() + ": " + e.Text
	}
	return e.Status.Message()
}

// ParserError is a parser fault as a Go error. When Status is ParseLexerErr
// the originating lexer fault is preserved in Lexer.
type ParserError struct {
	Status ParseStatus
	Text   string
	Lexer  *LexerError
}

func (e *ParserError) Error() string {
	switch {
	case e.Text != "":
		return e.Text
	case e.Lexer != nil:
		return e.Status.Message() + ": " + e.Lexer.Error()
	default:
		return e.Status.Message()
	}
}

func (e *ParserError) Unwrap() error {
	if e.Lexer == nil {
		return nil
	}
	return e.Lexer
}

// Err converts a populated record into a Go error, nil when the parse
// succeeded.
func (e *ErrInfo) Err() error {
	if e == nil || e.Parser.Status == ParseOK {
		return nil
	}
	perr := &ParserError{Status: e.Parser.Status, Text: e.Parser.Text}
	if e.Parser.Status == ParseLexerErr || e.Lexer.Status != LexOK {
		perr.Lexer = &LexerError{Status: e.Lexer.Status, Text: e.Lexer.Text}
	}
	return perr
}
