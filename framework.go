package readweb

// Framework identifies a site generator with a known page layout.
type Framework string

// Framework constants.
const (
	FrameworkUnknown    Framework = ""
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"

	// FrameworkArticle and FrameworkMain are layout-agnostic presets
	// built on the HTML5 article and main elements.
	FrameworkArticle Framework = "article"
	FrameworkMain    Framework = "main"
)

// BuiltinPreset is a preset shipped with the application for a known
// framework.
type BuiltinPreset struct {
	Framework Framework
	Preset    Preset
}

// PresetDetector finds a built-in preset that applies to a document.
type PresetDetector interface {
	// Detect returns the first built-in preset whose guarded apply succeeds
	// with non-empty markup, along with that markup.
	// Returns false if no built-in preset applies.
	Detect(doc Document) (preset *BuiltinPreset, markup string, ok bool)
}
