package cdecl

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// parseString runs one declaration through Parse with a fresh stack, output
// buffer and errinfo record.
func parseString(t *testing.T, input string) (string, ParseStatus, ErrInfo) {
	t.Helper()
	var out bytes.Buffer
	var errinfo ErrInfo
	status := Parse(strings.NewReader(input), &out, &errinfo)
	return out.String(), status, errinfo
}

func TestParseDeclarations(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"int hello;", "hello: int\n"},
		{"double *y;", "y: pointer to double\n"},
		{"int **x;", "x: pointer to pointer to int\n"},
		{"const double **x;", "x: pointer to pointer to const double\n"},
		{"unsigned char *const *const y;", "y: const pointer to const pointer to unsigned char\n"},
		{"const int *const a;", "a: const pointer to const int\n"},
		{"volatile void *volatile *const b;", "b: const pointer to volatile pointer to volatile void\n"},
		{"struct    my_struct  **b;", "b: pointer to pointer to struct my_struct\n"},
		{"enum _e2 e;", "e: enum _e2\n"},
		{"signed long sl;", "sl: signed long\n"},
		{"unsigned int u;", "u: unsigned int\n"},
		{"const volatile int cv;", "cv: const volatile int\n"},
		{"int (*x);", "x: pointer to int\n"},
		{"char (*(*p));", "p: pointer to pointer to char\n"},
		{"long x[10];", "x: array 10 of long\n"},
		{"char x[];", "x: array of char\n"},
		{"int m[2][3];", "m: array 2 of array 3 of int\n"},
		{"char *argv[10];", "argv: array 10 of pointer to char\n"},
		{"float grid[0x10];", "grid: array 0x10 of float\n"},
		{"int /* comment */ x; // trailing", "x: int\n"},
	}
	for _, tt := range tests {
		got, status, errinfo := parseString(t, tt.input)
		if status != ParseOK {
			t.Fatalf("Parse(%q) status = %s (%s), want ParseOK",
				tt.input, status, errinfo.Parser.Text)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) output = %q, want %q", tt.input, got, tt.want)
		}
		if errinfo.Parser.Status != ParseOK || errinfo.Lexer.Status != LexOK {
			t.Errorf("Parse(%q) errinfo = %+v, want clean record", tt.input, errinfo)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"*y;", "Unexpectedly ran out of tokens when parsing pointers, missing type"},
		{"const double ((**(*x));", "Mismatched parentheses when parsing pointers, read 3 '(' 2 ')'"},
		{"int (*x;", "Mismatched parentheses when parsing pointers, read 1 '(' 0 ')'"},
		{"double *yyy * x;", "Incomplete declaration for identifier yyy"},
		{"int *const const x;", "Duplicate const qualifier for pointer"},
		{"int *volatile volatile x;", "Duplicate volatile qualifier for pointer"},
		{"const const int x;", "Duplicate const qualifier for type"},
		{"volatile volatile int x;", "Duplicate volatile qualifier for type"},
		{"signed unsigned int x;", "Identifier already qualified as unsigned, cannot re-qualify as signed"},
		{"unsigned signed int x;", "Identifier already qualified as signed, cannot re-qualify as unsigned"},
		{"signed signed int x;", "Duplicate signed qualifier for type"},
		{"int double x;", "Type int provided when identifier already specified as double"},
		{"struct s1 enum e1 x;", "Type struct provided when identifier already specified as enum"},
		{"signed float x;", "Only char, int, or long can be signed or unsigned"},
		{"unsigned void x;", "Only char, int, or long can be signed or unsigned"},
		{"signed x;", "Missing type for identifier"},
		{`struct my_struct * [ const abc;`, `Unexpected token type '[' with text "" when parsing pointers`},
		{"int x[3][];", "Missing bound for array dimension 2"},
		{"int x[[3];", "Duplicate '[' when parsing array specifier"},
		{"int x 3;", "Array bound 3 with no preceding '['"},
		{"int x];", "']' with no matching '[' when parsing array specifier"},
		{"int x[*];", `Unexpected token type '*' with text "" when parsing array specifier`},
	}
	for _, tt := range tests {
		_, status, errinfo := parseString(t, tt.input)
		if status != ParseErr {
			t.Fatalf("Parse(%q) status = %s, want ParseErr", tt.input, status)
		}
		if status != errinfo.Parser.Status {
			t.Errorf("Parse(%q) returned %s but errinfo holds %s",
				tt.input, status, errinfo.Parser.Status)
		}
		if errinfo.Parser.Text != tt.text {
			t.Errorf("Parse(%q) error text = %q, want %q",
				tt.input, errinfo.Parser.Text, tt.text)
		}
	}
}

func TestParseStackOverflow(t *testing.T) {
	input := strings.Repeat("*", stackSize+1) + "x;"
	_, status, errinfo := parseString(t, input)
	if status != ParseStackOverflow {
		t.Fatalf("status = %s, want ParseStackOverflow", status)
	}
	if errinfo.Parser.Status != ParseStackOverflow {
		t.Fatalf("errinfo parser status = %s, want ParseStackOverflow", errinfo.Parser.Status)
	}
}

func TestParseLexerErrors(t *testing.T) {
	// input ends before any identifier appears
	_, status, errinfo := parseString(t, "int **;")
	if status != ParseLexerErr {
		t.Fatalf("Parse(int **;) status = %s, want ParseLexerErr", status)
	}
	if errinfo.Lexer.Status != LexEOF {
		t.Fatalf("errinfo lexer status = %s, want LexEOF", errinfo.Lexer.Status)
	}

	// malformed character: bad token text must survive verbatim
	_, status, errinfo = parseString(t, "int @x;")
	if status != ParseLexerErr {
		t.Fatalf("Parse(int @x;) status = %s, want ParseLexerErr", status)
	}
	if errinfo.Lexer.Status != LexBadToken {
		t.Fatalf("errinfo lexer status = %s, want LexBadToken", errinfo.Lexer.Status)
	}
	if errinfo.Lexer.Text != "Unknown character token '@'" {
		t.Fatalf("errinfo lexer text = %q", errinfo.Lexer.Text)
	}
}

func TestParsePrematureEOF(t *testing.T) {
	// stream ends after the identifier, before ';'
	_, status, errinfo := parseString(t, "int x")
	if status != ParseEOF {
		t.Fatalf("status = %s, want ParseEOF", status)
	}
	if errinfo.Lexer.Status != LexEOF {
		t.Fatalf("errinfo lexer status = %s, want LexEOF", errinfo.Lexer.Status)
	}
}

func TestParseTokenTooLargeIdentifier(t *testing.T) {
	input := "int " + strings.Repeat("a", MaxTokenLen+1) + ";"
	_, status, errinfo := parseString(t, input)
	if status != ParseLexerErr {
		t.Fatalf("status = %s, want ParseLexerErr", status)
	}
	if errinfo.Lexer.Status != LexBadToken || errinfo.Lexer.Text != "Token too large: ..." {
		t.Fatalf("errinfo lexer = %+v", errinfo.Lexer)
	}
}

func TestParseNilStreams(t *testing.T) {
	var out bytes.Buffer
	if status := Parse(nil, &out, nil); status != ParseNilInput {
		t.Errorf("nil input status = %s, want ParseNilInput", status)
	}
	if status := Parse(strings.NewReader("int x;"), nil, nil); status != ParseNilOutput {
		t.Errorf("nil output status = %s, want ParseNilOutput", status)
	}
}

func TestParseNilErrInfo(t *testing.T) {
	// a nil errinfo disables reporting but not parse behavior
	var out bytes.Buffer
	status := Parse(strings.NewReader("*y;"), &out, nil)
	if status != ParseErr {
		t.Fatalf("status = %s, want ParseErr", status)
	}
	status = Parse(strings.NewReader("int hello;"), &out, nil)
	if status != ParseOK {
		t.Fatalf("status = %s, want ParseOK", status)
	}
}

func TestParsePartialOutputOnFailure(t *testing.T) {
	// the parser is deliberately non-transactional
	got, status, _ := parseString(t, "*y;")
	if status != ParseErr {
		t.Fatalf("status = %s, want ParseErr", status)
	}
	if got != "y: pointer to" {
		t.Fatalf("partial output = %q, want %q", got, "y: pointer to")
	}
}

func TestParseIdempotent(t *testing.T) {
	const input = "unsigned char *const *const y;"
	first, status, _ := parseString(t, input)
	if status != ParseOK {
		t.Fatalf("first parse status = %s", status)
	}
	for i := 0; i < 3; i++ {
		got, status, _ := parseString(t, input)
		if status != ParseOK || got != first {
			t.Fatalf("parse %d diverged: status %s output %q, want %q", i, status, got, first)
		}
	}
}

// errWriter fails every write.
type errWriter struct{}

func (errWriter) Write(p []byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestParseOutputWriteError(t *testing.T) {
	var errinfo ErrInfo
	status := Parse(strings.NewReader("int hello;"), errWriter{}, &errinfo)
	if status != ParseOutputErr {
		t.Fatalf("status = %s, want ParseOutputErr", status)
	}
	if errinfo.Parser.Status != ParseOutputErr {
		t.Fatalf("errinfo parser status = %s, want ParseOutputErr", errinfo.Parser.Status)
	}
}

func TestParseStopsAtSemicolon(t *testing.T) {
	// two declarations on one stream: each call consumes exactly one
	lx := NewLexer(strings.NewReader("int a; double *b;"))
	var out bytes.Buffer
	if status := ParseWith(lx, &out, nil); status != ParseOK {
		t.Fatalf("first declaration status = %s", status)
	}
	if status := ParseWith(lx, &out, nil); status != ParseOK {
		t.Fatalf("second declaration status = %s", status)
	}
	want := "a: int\nb: pointer to double\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}
