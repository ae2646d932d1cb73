package gemini

import "strings"

// MaxPromptHTML is the number of runes of cleaned HTML included in the
// prompt.
const MaxPromptHTML = 200000

const instructions = `# Overall system overview

You are part of a larger system that transforms web pages into readable "main content" excerpts.

It does so by using Presets tailored for particular websites.

` + "```ts" + `
type CSSSelector = string;

interface Preset {
  preset_match_detectors: CSSSelector[];
  main_content_selectors: CSSSelector[];
  main_content_filters: CSSSelector[];
}
` + "```" + `

The system reads the HTML of a URL, looks up the stored presets for that URL and uses the first one that matches. When no preset matches, it asks you to write one.

## preset_match_detectors

Selectors for page characteristics that are LIKELY to be present on other pages of this website with the same layout: navigation bars, footers, headers, logos, sidebars, profile or login buttons.

They narrow the set of layouts the preset applies to. A page with an unfamiliar layout should get a new preset instead of reusing this one.

## main_content_selectors

Selectors capturing the main human-readable content. Multiple selectors are allowed.

## main_content_filters

Selectors excluding elements FROM the main content: ads, banners, popups, sponsored content, tables of contents, cookie banners, modals, share blocks, "read more" and "subscribe" blocks, sign up or log in elements, feedback forms, paywall banners.

Do NOT filter out in-content images that illustrate the text, or lists that are part of the text.

Filters are applied to the main content fragments only, so only include selectors for elements inside the main content. Filtering is a secondary, optional goal: if useful filters are hard to find, leave them out.

# General rules for selectors

- You CAN use descendant (div div), child (div > div) and sibling (div + div) combinators.
- You MUST NOT use nth-child, nth-of-type or similar positional selectors. The HTML is preprocessed before you see it and some elements are removed, so positions are not stable.
- You MUST NOT use :contains() pseudo-selectors.
- AVOID CRYPTIC SELECTORS. Generated class names or ids such as .SDhuSDJBK87SD or .elem-a186cef change between builds and MUST NOT appear in selectors. Use a more generic selector or a selector for a parent node instead.

BAD: .element-837af3
GOOD: body > div > div

# Task

Produce a preset that turns this page into "reader mode" content. The preset is applied automatically and the result is shown to you as markdown, so you can reflect on it and refine the preset.

Do not produce any output other than tool calls.

# Workflow

1. Call apply_preset with a preset.
2. The tool responds with either a failure description or the extracted markdown, plus issues to fix.
3. On failure, adjust the preset and go back to step 1.
4. On success, check that the output holds all of the main content and nothing else. If it does not, adjust the preset and go back to step 1.
5. When the output is complete, call accept_output.

# Example

Input page:

` + "```html" + `
<div class="main">
  <div id="s"><a href="/main">Main</a><a href="/about">About</a></div>
  <div id="p">
    <p id="cr-sqlite">CR-SQLite is a run-time loadable extension for SQLite and libSQL...</p>
    <span class="sponsored">NordVPN is a fast, secure, and risk-free VPN for online privacy.</span>
    <p id="cr-sqlite-features">CR-SQLite comes with a set of features...</p>
  </div>
  <div id="f">cr-sqlite (c) 2025</div>
</div>
` + "```" + `

A good preset is {"preset_match_detectors": [".main", "#s", "#f"], "main_content_selectors": ["#p"], "main_content_filters": [".sponsored"]}. Without the filter, the sponsored sentence would appear in the output and you should try again. With "#cr-sqlite" as the main content selector, the second paragraph would be missing because the selector is too specific.`

const toolsHelp = `Tools:
- apply_preset: Provide a Preset to apply to the HTML. The tool returns feedback telling you what to fix and, when extraction succeeds, a markdown preview.
- accept_output: When you are satisfied, call with no arguments to finish.`

// BuildPrompt returns the instruction text followed by the cleaned HTML,
// truncated to MaxPromptHTML runes.
func BuildPrompt(cleanedHTML string) string {
	if r := []rune(cleanedHTML); len(r) > MaxPromptHTML {
		cleanedHTML = string(r[:MaxPromptHTML])
	}
	return strings.Join([]string{instructions, "", toolsHelp, "", "# HTML", cleanedHTML}, "\n")
}
