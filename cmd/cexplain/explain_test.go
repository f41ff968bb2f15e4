package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestExplainStream(t *testing.T) {
	input := `
int hello;
const double **x; // doubly indirect
struct my_struct *s[10];
`
	var out bytes.Buffer
	if err := explainStream("test", strings.NewReader(input), &out); err != nil {
		t.Fatalf("explainStream: %v", err)
	}
	want := "hello: int\n" +
		"x: pointer to pointer to const double\n" +
		"s: array 10 of pointer to struct my_struct\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestExplainStreamEmptyInput(t *testing.T) {
	var out bytes.Buffer
	if err := explainStream("test", strings.NewReader("  \n/* nothing */\n"), &out); err != nil {
		t.Fatalf("explainStream: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("output = %q, want empty", out.String())
	}
}

func TestExplainStreamStopsOnError(t *testing.T) {
	input := "int a; const const int b; long c;"
	var out bytes.Buffer
	err := explainStream("test", strings.NewReader(input), &out)
	if err == nil {
		t.Fatalf("expected error from malformed second declaration")
	}
	if !strings.Contains(err.Error(), "Duplicate const qualifier for type") {
		t.Fatalf("error = %v", err)
	}
	// the first declaration was already emitted
	if !strings.HasPrefix(out.String(), "a: int\n") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestExplainStreamPrematureEnd(t *testing.T) {
	var out bytes.Buffer
	err := explainStream("test", strings.NewReader("int x"), &out)
	if err == nil {
		t.Fatalf("expected error for declaration cut off before ';'")
	}
}
