package projects

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "header and rows preserve order",
			input: "id,title\np1,One\np2,Two\np3,Three\n",
			want:  [][]string{{"id", "title"}, {"p1", "One"}, {"p2", "Two"}, {"p3", "Three"}},
		},
		{
			name:  "no trailing newline",
			input: "a,b\nc,d",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "quoted comma and doubled quote",
			input: `"a,b""c"`,
			want:  [][]string{{`a,b"c`}},
		},
		{
			name:  "cells are trimmed",
			input: "  a , b  \n c ,d",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "CRLF is one terminator",
			input: "a,b\r\nc,d\r\n",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "bare CR ends a row",
			input: "a,b\rc,d",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "newline inside quotes is kept",
			input: "id,description\np1,\"line one\nline two\"\n",
			want:  [][]string{{"id", "description"}, {"p1", "line one\nline two"}},
		},
		{
			name:  "trailing blank lines dropped",
			input: "a,b\n\n\n",
			want:  [][]string{{"a", "b"}},
		},
		{
			name:  "whitespace-only line dropped",
			input: "a,b\n   \nc,d",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "row of empty cells kept",
			input: "a,b\n,\n",
			want:  [][]string{{"a", "b"}, {"", ""}},
		},
		{
			name:  "ragged rows kept as-is",
			input: "a,b,c\n1\n1,2,3,4\n",
			want:  [][]string{{"a", "b", "c"}, {"1"}, {"1", "2", "3", "4"}},
		},
		{
			name:  "unterminated quote consumes to EOF",
			input: "a,\"b,c\nd,e",
			want:  [][]string{{"a", "b,c\nd,e"}},
		},
		{
			name:  "trailing comma yields empty last cell",
			input: "a,b,\n",
			want:  [][]string{{"a", "b", ""}},
		},
		{
			name:  "multibyte text passes through",
			input: "name\nkøbenhavn – café\n",
			want:  [][]string{{"name"}, {"københavn – café"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q)\n got  %q\n want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenize_RowCount(t *testing.T) {
	input := "id,title,summary\n"
	for i := 0; i < 50; i++ {
		input += "p,T,S\n"
	}

	rows := Tokenize(input)
	if len(rows) != 51 {
		t.Fatalf("expected 51 rows (header + 50), got %d", len(rows))
	}
	if rows[0][0] != "id" {
		t.Errorf("first row should be the header, got %q", rows[0])
	}
}
