package goquery_test

import (
	"testing"

	"github.com/fwojciec/readweb"
	"github.com/fwojciec/readweb/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		html      string
		framework readweb.Framework
		contains  string
		excludes  string
	}{
		{
			name: "docusaurus",
			html: `<div id="__docusaurus"><nav class="navbar">Nav</nav><main><article><div class="theme-doc-markdown markdown">` +
				`<h1>Intro<a class="hash-link" href="#intro">#</a></h1><p>Docusaurus body</p></div></article></main></div>`,
			framework: readweb.FrameworkDocusaurus,
			contains:  "Docusaurus body",
			excludes:  "hash-link",
		},
		{
			name: "mkdocs",
			html: `<div data-md-component="container"><nav data-md-component="navigation">Nav</nav>` +
				`<div class="md-content"><article class="md-content__inner"><h1>Title<a class="headerlink" href="#t">¶</a></h1><p>MkDocs body</p></article></div></div>`,
			framework: readweb.FrameworkMkDocs,
			contains:  "MkDocs body",
			excludes:  "headerlink",
		},
		{
			name: "sphinx classic",
			html: `<div class="documentwrapper"><div class="body"><h1>API<a class="headerlink" href="#api">¶</a></h1><p>Sphinx body</p></div></div>` +
				`<div class="sphinxsidebar">Side</div>`,
			framework: readweb.FrameworkSphinx,
			contains:  "Sphinx body",
			excludes:  "Side",
		},
		{
			name:      "vitepress",
			html:      `<div id="VPContent"><div class="vp-doc"><h1>Guide<a class="header-anchor" href="#guide">#</a></h1><p>VitePress body</p></div></div>`,
			framework: readweb.FrameworkVitePress,
			contains:  "VitePress body",
			excludes:  "header-anchor",
		},
		{
			name:      "vuepress",
			html:      `<div class="theme-container"><aside class="sidebar">Side</aside><main class="page"><div class="theme-default-content"><p>VuePress body</p></div></main></div>`,
			framework: readweb.FrameworkVuePress,
			contains:  "VuePress body",
			excludes:  "Side",
		},
		{
			name:      "generic article",
			html:      `<nav>Menu</nav><article><h1>News</h1><p>Article body</p><aside>Related</aside></article><footer>Foot</footer>`,
			framework: readweb.FrameworkArticle,
			contains:  "Article body",
			excludes:  "Related",
		},
		{
			name:      "generic main",
			html:      `<header>Head</header><main><p>Main body</p><nav>Pager</nav></main>`,
			framework: readweb.FrameworkMain,
			contains:  "Main body",
			excludes:  "Pager",
		},
	}

	registry := goquery.NewBuiltinRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := normalize(t, goquery.NewNormalizer(), tt.html, "")

			preset, markup, ok := registry.Detect(doc)

			require.True(t, ok)
			assert.Equal(t, tt.framework, preset.Framework)
			assert.Contains(t, markup, tt.contains)
			assert.NotContains(t, markup, tt.excludes)
		})
	}

	t.Run("no preset applies", func(t *testing.T) {
		t.Parallel()

		doc := normalize(t, goquery.NewNormalizer(), `<div class="wrapper"><p>Plain</p></div>`, "")

		_, _, ok := registry.Detect(doc)

		assert.False(t, ok)
	})
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	r := goquery.NewRegistry()
	first := readweb.Preset{PresetMatchDetectors: []string{"body"}, MainContentSelectors: []string{"main"}}
	second := readweb.Preset{PresetMatchDetectors: []string{"body"}, MainContentSelectors: []string{"article"}}

	r.Register(readweb.FrameworkMain, first)
	r.Register(readweb.FrameworkArticle, first)
	r.Register(readweb.FrameworkMain, second)

	assert.Equal(t, []readweb.Framework{readweb.FrameworkMain, readweb.FrameworkArticle}, r.List())
	assert.Equal(t, second, r.Get(readweb.FrameworkMain).Preset)
	assert.Nil(t, r.Get(readweb.FrameworkSphinx))
}

func TestBuiltinPresets_AreValid(t *testing.T) {
	t.Parallel()

	for _, p := range goquery.BuiltinPresets() {
		assert.NoError(t, p.Preset.Validate(), p.Framework)
	}
}
