package goquery

import (
	"strings"

	"github.com/fwojciec/readweb"
)

var _ readweb.PresetDetector = (*Registry)(nil)

// Registry holds built-in presets in priority order and detects which one
// applies to a document.
type Registry struct {
	presets []readweb.BuiltinPreset
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewBuiltinRegistry creates a Registry with every built-in preset:
// framework presets first, then the generic article and main presets.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, p := range BuiltinPresets() {
		r.Register(p.Framework, p.Preset)
	}
	return r
}

// Register appends a preset. A preset registered again for the same
// framework replaces the earlier one in place.
func (r *Registry) Register(framework readweb.Framework, preset readweb.Preset) {
	for i := range r.presets {
		if r.presets[i].Framework == framework {
			r.presets[i].Preset = preset
			return
		}
	}
	r.presets = append(r.presets, readweb.BuiltinPreset{Framework: framework, Preset: preset})
}

// Get returns the preset registered for a framework.
// Returns nil if no preset is registered for the framework.
func (r *Registry) Get(framework readweb.Framework) *readweb.BuiltinPreset {
	for i := range r.presets {
		if r.presets[i].Framework == framework {
			p := r.presets[i]
			return &p
		}
	}
	return nil
}

// List returns the registered frameworks in priority order.
func (r *Registry) List() []readweb.Framework {
	frameworks := make([]readweb.Framework, len(r.presets))
	for i, p := range r.presets {
		frameworks[i] = p.Framework
	}
	return frameworks
}

// Detect returns the first preset whose guarded apply succeeds with
// non-blank markup.
func (r *Registry) Detect(doc readweb.Document) (*readweb.BuiltinPreset, string, bool) {
	for i := range r.presets {
		res, ok := doc.Apply(r.presets[i].Preset).(readweb.ApplyOK)
		if !ok || strings.TrimSpace(res.Markup) == "" {
			continue
		}
		p := r.presets[i]
		return &p, res.Markup, true
	}
	return nil, "", false
}

// BuiltinPresets returns the presets for known documentation frameworks
// followed by generic HTML5 layouts. Detectors only use markers that
// survive normalization: meta tags and volatile identifiers are gone by
// the time a preset is applied.
func BuiltinPresets() []readweb.BuiltinPreset {
	return []readweb.BuiltinPreset{
		{
			Framework: readweb.FrameworkDocusaurus,
			Preset: readweb.Preset{
				PresetMatchDetectors: []string{"#__docusaurus"},
				MainContentSelectors: []string{".theme-doc-markdown"},
				MainContentFilters:   []string{".hash-link", ".theme-doc-toc-mobile"},
			},
		},
		{
			Framework: readweb.FrameworkMkDocs,
			Preset: readweb.Preset{
				PresetMatchDetectors: []string{"[data-md-component]"},
				MainContentSelectors: []string{".md-content__inner"},
				MainContentFilters:   []string{".headerlink", ".md-source-file"},
			},
		},
		{
			// Classic theme and the ReadTheDocs theme.
			Framework: readweb.FrameworkSphinx,
			Preset: readweb.Preset{
				PresetMatchDetectors: []string{".sphinxsidebar, .wy-nav-side"},
				MainContentSelectors: []string{".documentwrapper .body, .rst-content .document"},
				MainContentFilters:   []string{".headerlink"},
			},
		},
		{
			// VitePress is checked before VuePress, its predecessor.
			Framework: readweb.FrameworkVitePress,
			Preset: readweb.Preset{
				PresetMatchDetectors: []string{"#VPContent"},
				MainContentSelectors: []string{".vp-doc"},
				MainContentFilters:   []string{".header-anchor"},
			},
		},
		{
			Framework: readweb.FrameworkVuePress,
			Preset: readweb.Preset{
				PresetMatchDetectors: []string{".theme-container"},
				MainContentSelectors: []string{".theme-default-content"},
				MainContentFilters:   []string{".header-anchor"},
			},
		},
		{
			Framework: readweb.FrameworkGitBook,
			Preset: readweb.Preset{
				PresetMatchDetectors: []string{"[data-testid='space.sidebar']"},
				MainContentSelectors: []string{"main"},
				MainContentFilters:   []string{"[data-testid='page.desktopTableOfContents']"},
			},
		},
		{
			Framework: readweb.FrameworkNextra,
			Preset: readweb.Preset{
				PresetMatchDetectors: []string{".nextra-nav-container, .nextra-navbar"},
				MainContentSelectors: []string{"article"},
				MainContentFilters:   []string{".nextra-breadcrumb", ".nextra-toc"},
			},
		},
		{
			Framework: readweb.FrameworkArticle,
			Preset: readweb.Preset{
				PresetMatchDetectors: []string{"body"},
				MainContentSelectors: []string{"article"},
				MainContentFilters:   []string{"nav", "aside", "form"},
			},
		},
		{
			Framework: readweb.FrameworkMain,
			Preset: readweb.Preset{
				PresetMatchDetectors: []string{"body"},
				MainContentSelectors: []string{"main"},
				MainContentFilters:   []string{"nav", "aside", "footer", "form"},
			},
		},
	}
}
