package document_test

import (
	"testing"

	"github.com/fork-tongue/ruff-cgx/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", nil},
		{"single line no newline", "abc", []string{"abc"}},
		{"single line with newline", "abc\n", []string{"abc\n"}},
		{"multiple lines", "a\nb\nc\n", []string{"a\n", "b\n", "c\n"}},
		{"no trailing newline", "a\nb", []string{"a\n", "b"}},
		{"blank lines kept", "a\n\n\nb\n", []string{"a\n", "\n", "\n", "b\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, document.SplitLines(tt.content))
		})
	}
}

func TestDocumentSlice(t *testing.T) {
	d := document.New("a\nb\nc\nd\n")

	assert.Equal(t, []string{"b\n", "c\n"}, d.Slice(1, 3))
	assert.Equal(t, []string{"a\n", "b\n", "c\n", "d\n"}, d.Slice(-5, 99))
	assert.Nil(t, d.Slice(3, 3))
	assert.Nil(t, d.Slice(4, 2))
}

func TestReassemble(t *testing.T) {
	t.Run("no replacements reproduces content", func(t *testing.T) {
		out, err := document.Reassemble(document.New("a\nb\n"), nil)
		require.NoError(t, err)
		assert.Equal(t, "a\nb\n", out)
	})

	t.Run("single replacement", func(t *testing.T) {
		d := document.New("a\nb\nc\n")
		out, err := document.Reassemble(d, []document.Replacement{
			{Lines: []string{"B1\n", "B2\n"}, Start: 1, End: 2},
		})
		require.NoError(t, err)
		assert.Equal(t, "a\nB1\nB2\nc\n", out)
	})

	t.Run("replacements apply regardless of order", func(t *testing.T) {
		d := document.New("a\nb\nc\nd\n")
		out, err := document.Reassemble(d, []document.Replacement{
			{Lines: []string{"A\n"}, Start: 0, End: 1},
			{Lines: []string{"C\n"}, Start: 2, End: 3},
		})
		require.NoError(t, err)
		assert.Equal(t, "A\nb\nC\nd\n", out)

		// same replacements, reversed input order
		out2, err := document.Reassemble(d, []document.Replacement{
			{Lines: []string{"C\n"}, Start: 2, End: 3},
			{Lines: []string{"A\n"}, Start: 0, End: 1},
		})
		require.NoError(t, err)
		assert.Equal(t, out, out2)
	})

	t.Run("adjacent spans are not overlapping", func(t *testing.T) {
		d := document.New("a\nb\nc\n")
		out, err := document.Reassemble(d, []document.Replacement{
			{Lines: []string{"X\n"}, Start: 0, End: 1},
			{Lines: []string{"Y\n"}, Start: 1, End: 2},
		})
		require.NoError(t, err)
		assert.Equal(t, "X\nY\nc\n", out)
	})

	t.Run("overlapping spans error", func(t *testing.T) {
		d := document.New("a\nb\nc\n")
		_, err := document.Reassemble(d, []document.Replacement{
			{Lines: []string{"X\n"}, Start: 0, End: 2},
			{Lines: []string{"Y\n"}, Start: 1, End: 3},
		})
		assert.Error(t, err)
	})

	t.Run("span out of range errors", func(t *testing.T) {
		d := document.New("a\n")
		_, err := document.Reassemble(d, []document.Replacement{
			{Lines: []string{"X\n"}, Start: 0, End: 5},
		})
		assert.Error(t, err)

		_, err = document.Reassemble(d, []document.Replacement{
			{Lines: []string{"X\n"}, Start: -1, End: 1},
		})
		assert.Error(t, err)
	})

	t.Run("result gains exactly one trailing newline", func(t *testing.T) {
		out, err := document.Reassemble(document.New("a\nb"), nil)
		require.NoError(t, err)
		assert.Equal(t, "a\nb\n", out)
	})

	t.Run("empty document stays empty", func(t *testing.T) {
		out, err := document.Reassemble(document.New(""), nil)
		require.NoError(t, err)
		assert.Equal(t, "", out)
	})

	t.Run("replacement may shrink the document", func(t *testing.T) {
		d := document.New("a\nb\nc\n")
		out, err := document.Reassemble(d, []document.Replacement{
			{Lines: nil, Start: 1, End: 3},
		})
		require.NoError(t, err)
		assert.Equal(t, "a\n", out)
	})
}
