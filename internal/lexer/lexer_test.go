package lexer

import (
	"reflect"
	"testing"
)

func TestParseCommandAndPosition(t *testing.T) {
	tests := []struct {
		input       string
		wantCommand string
		wantPos     int
	}{
		{"", "", 0},
		{"echo", "echo", 4},
		{"echo hello", "echo", 4},
		{"'echo' hello", "echo", 6},
		{"ec'h'o hello", "echo", 6},
		{"echo\thello", "echo", 4},
		{`"2>foo" bar`, "2>foo", 7},
	}

	for _, tt := range tests {
		command, pos := ParseCommandAndPosition(tt.input)
		if command != tt.wantCommand || pos != tt.wantPos {
			t.Errorf("ParseCommandAndPosition(%q) = (%q, %d), want (%q, %d)",
				tt.input, command, pos, tt.wantCommand, tt.wantPos)
		}
		if pos > len(tt.input) {
			t.Errorf("ParseCommandAndPosition(%q) returned pos %d > len %d", tt.input, pos, len(tt.input))
		}
	}
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a b c", []string{"a", "b", "c"}},
		{"'a b'", []string{"a b"}},
		{"'a  b'  \"c d\"", []string{"a  b", "c d"}},
		{`hello\ world`, []string{"hello world"}},
		{`"hello\"world"`, []string{`hello"world`}},
		{`"hello\nworld"`, []string{`hello\nworld`}},
		{`'\n'`, []string{`\n`}},
		{"a\tb", []string{"a\tb"}},
		{"", nil},
		{"   ", nil},
	}

	for _, tt := range tests {
		got := ParseArguments(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseArguments(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}

func TestParseArgumentsTabsDoNotSplit(t *testing.T) {
	got := ParseArguments("a\tb c")
	want := []string{"a\tb", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseArguments(a\\tb c) = %#v, want %#v", got, want)
	}
}
