package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fork-tongue/ruff-cgx/internal/markup"
	"github.com/fork-tongue/ruff-cgx/internal/render"
	"github.com/fork-tongue/ruff-cgx/internal/ruff"
	"github.com/fork-tongue/ruff-cgx/internal/ruff/rufftest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func root(t *testing.T, source string) *markup.Node {
	t.Helper()
	tree, err := markup.Parse(source)
	require.NoError(t, err)
	require.NotEmpty(t, tree.Roots)
	return tree.Roots[0]
}

func TestRenderSingleAttribute(t *testing.T) {
	r := render.New(nil, 88)
	lines := r.RenderRegion(context.Background(), root(t, "<div class=\"box\">hello</div>"))
	assert.Equal(t, []string{
		"<div class=\"box\">\n",
		"  hello\n",
		"</div>\n",
	}, lines)
}

func TestRenderSelfClosing(t *testing.T) {
	r := render.New(nil, 88)

	t.Run("no attributes", func(t *testing.T) {
		lines := r.RenderRegion(context.Background(), root(t, "<item/>"))
		assert.Equal(t, []string{"<item />\n"}, lines)
	})

	t.Run("one attribute stays inline", func(t *testing.T) {
		lines := r.RenderRegion(context.Background(), root(t, "<item name=\"x\"/>"))
		assert.Equal(t, []string{"<item name=\"x\" />\n"}, lines)
	})
}

func TestRenderMultipleAttributes(t *testing.T) {
	r := render.New(nil, 88)
	source := "<thing @click=\"c\" class=\"z\" v-if=\"ok\" :b=\"b\" v-for=\"i in xs\" id=\"me\" #hdr />"
	lines := r.RenderRegion(context.Background(), root(t, source))
	assert.Equal(t, []string{
		"<thing\n",
		"  v-for=\"i in xs\"\n",
		"  v-if=\"ok\"\n",
		"  id=\"me\"\n",
		"  #hdr\n",
		"  :b=\"b\"\n",
		"  class=\"z\"\n",
		"  @click=\"c\"\n",
		"/>\n",
	}, lines)
}

func TestRenderAttributeOrderIsDeterministic(t *testing.T) {
	r := render.New(nil, 88)
	a := r.RenderRegion(context.Background(), root(t, "<x class=\"c\" disabled :value=\"v\" @click=\"h\" />"))
	b := r.RenderRegion(context.Background(), root(t, "<x @click=\"h\" :value=\"v\" disabled class=\"c\" />"))
	assert.Equal(t, a, b)
	assert.Equal(t, []string{
		"<x\n",
		"  class=\"c\"\n",
		"  disabled\n",
		"  :value=\"v\"\n",
		"  @click=\"h\"\n",
		"/>\n",
	}, a)
}

func TestRenderNesting(t *testing.T) {
	r := render.New(nil, 88)
	source := "<template><outer><inner /></outer></template>"
	lines := r.RenderRegion(context.Background(), root(t, source))
	assert.Equal(t, []string{
		"<template>\n",
		"  <outer>\n",
		"    <inner />\n",
		"  </outer>\n",
		"</template>\n",
	}, lines)
}

func TestRenderComment(t *testing.T) {
	r := render.New(nil, 88)
	lines := r.RenderRegion(context.Background(), root(t, "<template><!-- note --></template>"))
	assert.Equal(t, []string{
		"<template>\n",
		"  <!-- note -->\n",
		"</template>\n",
	}, lines)
}

func TestRenderTabsBecomeIndent(t *testing.T) {
	r := render.New(nil, 88)
	lines := r.RenderRegion(context.Background(), root(t, "<div>a\tb</div>"))
	assert.Equal(t, []string{
		"<div>\n",
		"  a  b\n",
		"</div>\n",
	}, lines)
}

func TestRenderFormatsExpressions(t *testing.T) {
	t.Run("bound value goes through the formatter", func(t *testing.T) {
		fake := &rufftest.Fake{Formats: map[string]string{
			"__dummy__ = count+1\n": "__dummy__ = count + 1\n",
		}}
		r := render.New(fake, 88)
		lines := r.RenderRegion(context.Background(), root(t, "<item :value=\"count+1\" />"))
		assert.Equal(t, []string{"<item :value=\"count + 1\" />\n"}, lines)

		opts := fake.FormatOptionsSeen()
		require.Len(t, opts, 1)
		assert.True(t, opts[0].SingleQuotes)
		assert.Equal(t, 88, opts[0].LineLength)
	})

	t.Run("nested depth narrows the width", func(t *testing.T) {
		fake := &rufftest.Fake{}
		r := render.New(fake, 88)
		r.RenderRegion(context.Background(), root(t, "<template><item :v=\"x\" /></template>"))

		opts := fake.FormatOptionsSeen()
		require.Len(t, opts, 1)
		assert.Equal(t, 86, opts[0].LineLength)
	})

	t.Run("loop sides format independently", func(t *testing.T) {
		fake := &rufftest.Fake{Formats: map[string]string{
			"__dummy__ = items+extra\n": "__dummy__ = items + extra\n",
		}}
		r := render.New(fake, 88)
		lines := r.RenderRegion(context.Background(), root(t, "<item v-for=\"it in items+extra\" />"))
		assert.Equal(t, []string{"<item v-for=\"it in items + extra\" />\n"}, lines)
	})

	t.Run("slot values pass through untouched", func(t *testing.T) {
		fake := &rufftest.Fake{}
		r := render.New(fake, 88)
		lines := r.RenderRegion(context.Background(), root(t, "<item v-slot:header=\"props\" />"))
		assert.Equal(t, []string{"<item v-slot:header=\"props\" />\n"}, lines)
		assert.Empty(t, fake.FormatCalls())
	})

	t.Run("multi-line result falls back to the source", func(t *testing.T) {
		fake := &rufftest.Fake{FormatFunc: func(string, ruff.FormatOptions) (string, error) {
			return "__dummy__ = (\n    very_long\n)\n", nil
		}}
		r := render.New(fake, 88)
		lines := r.RenderRegion(context.Background(), root(t, "<item :v=\"very_long\" />"))
		assert.Equal(t, []string{"<item :v=\"very_long\" />\n"}, lines)
	})

	t.Run("formatter failure falls back to the source", func(t *testing.T) {
		fake := &rufftest.Fake{FormatFunc: func(string, ruff.FormatOptions) (string, error) {
			return "", errors.New("boom")
		}}
		r := render.New(fake, 88)
		lines := r.RenderRegion(context.Background(), root(t, "<item :v=\"x\" />"))
		assert.Equal(t, []string{"<item :v=\"x\" />\n"}, lines)
	})
}
