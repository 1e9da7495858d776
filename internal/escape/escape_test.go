// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"errors"
	"testing"

	"github.com/creachadair/rjson/internal/escape"
	"go4.org/mem"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		offset int // of the error, or -1 for success
	}{
		{"", "", -1},
		{"plain", "plain", -1},
		{`a\tb`, "a\tb", -1},
		{`\"\\\/\b\f\n\r\t`, "\"\\/\b\f\n\r\t", -1},
		{`x\u0041y`, "xAy", -1},
		{`\ud83d\ude00`, "\U0001F600", -1},
		{`\ud83d`, "\U0000FFFD", -1},
		{`\ude00\ud83d`, "\U0000FFFD\U0000FFFD", -1},
		{`\ud83d\u0041`, "\U0000FFFDA", -1},
		{`abc\`, "", 3},
		{`ab\x`, "", 2},
		{`\u12`, "", 0},
		{`ok \uzzzz`, "", 3},
	}
	for _, tc := range tests {
		got, err := escape.Unquote(mem.S(tc.input))
		if tc.offset >= 0 {
			var eerr *escape.Error
			if !errors.As(err, &eerr) {
				t.Errorf("Unquote(%#q): got %v, want *Error", tc.input, err)
			} else if eerr.Offset != tc.offset {
				t.Errorf("Unquote(%#q): got offset %d, want %d", tc.input, eerr.Offset, tc.offset)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unquote(%#q): unexpected error: %v", tc.input, err)
		} else if string(got) != tc.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", tc.input, got, tc.want)
		}
	}
}

func TestValidEscape(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"n", 1},
		{`"rest`, 1},
		{"/", 1},
		{"u00e9", 5},
		{"uABCDxyz", 5},
		{"u00", 0},
		{"u00g0", 0},
		{"x", 0},
		{"0", 0},
	}
	for _, tc := range tests {
		if got := escape.ValidEscape(mem.S(tc.input)); got != tc.want {
			t.Errorf("ValidEscape(%#q): got %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{"abc", `"abc"`},
		{"a\"b", `"a\"b"`},
		{"\x7f", "\"\x7f\""},
		{"\x1f", `"\u001f"`},
		{"\U00002028", `"\u2028"`},
		{"caf\U000000e9", "\"caf\U000000e9\""},
		{"\xff", "\"\U0000FFFD\""},
	}
	for _, tc := range tests {
		if got := string(escape.Quote(mem.S(tc.input))); got != tc.want {
			t.Errorf("Quote(%#q): got %#q, want %#q", tc.input, got, tc.want)
		}
	}
}
