// Package testutil defines support code for unit tests.
package testutil

import (
	"testing"

	"github.com/creachadair/rjson/ast"
	"github.com/google/go-cmp/cmp"
)

// CmpOptions are options for cmp.Diff and cmp.Equal that compare ast.Text
// values by content, ignoring whether they are borrowed or owned.
var CmpOptions = cmp.Options{
	cmp.Comparer(func(a, b ast.Text) bool { return a.Equal(b) }),
}

// MustParse parses input as a single value, or fails t.
func MustParse(t testing.TB, input string) ast.Value {
	t.Helper()
	v, err := ast.ParseString(input)
	if err != nil {
		t.Fatalf("Parse %q: %v", input, err)
	}
	return v
}
