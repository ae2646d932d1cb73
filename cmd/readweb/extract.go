package main

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fwojciec/readweb"
	"github.com/fwojciec/readweb/crawl"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		return err
	}

	x, err := deps.Extractor.ExtractHTML(deps.Ctx, c.URL, html)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(x)
	}

	fmt.Fprintf(deps.Stderr, "method: %s\n", x.Method)
	if x.Title != "" {
		fmt.Fprintf(deps.Stdout, "# %s\n\n", x.Title)
	}
	fmt.Fprintln(deps.Stdout, x.Markdown)
	return nil
}

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	switch readweb.ExtractionMethod(c.Show) {
	case "", readweb.MethodPreset, readweb.MethodBuiltin, readweb.MethodReadability, readweb.MethodLiteral:
	default:
		return readweb.Errorf(readweb.EINVALID, "unknown method %q", c.Show)
	}

	var preset *readweb.Preset
	if c.Preset != "" {
		p, err := readPreset(deps, c.Preset)
		if err != nil {
			return err
		}
		preset = p
	} else if deps.Presets != nil {
		stored, err := deps.Presets.FindPresetsForURL(deps.Ctx, c.URL)
		if err != nil {
			return err
		}
		if len(stored) > 0 {
			preset = &stored[0].Preset
		}
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		return err
	}

	results, err := deps.Comparer.Compare(deps.Ctx, c.URL, html, preset, deps.TokenCounter)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(deps.Stdout, "%-12s %s\n", r.Method, readweb.ErrorMessage(r.Err))
			continue
		}
		line := fmt.Sprintf("%-12s %8d chars", r.Method, r.Chars)
		if deps.TokenCounter != nil {
			line += fmt.Sprintf("  %s", crawl.FormatTokens(r.Tokens))
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	if c.Show == "" {
		return nil
	}
	for _, r := range results {
		if string(r.Method) != c.Show {
			continue
		}
		if r.Err != nil {
			return r.Err
		}
		fmt.Fprintf(deps.Stdout, "\n%s\n", r.Markdown)
	}
	return nil
}

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" {
		return readweb.Errorf(readweb.EINVALID, "invalid URL: %s", c.URL)
	}
	name := c.Name
	if name == "" {
		name = u.Host
	}

	store := deps.PageStore(c.Out, name)
	progress := func(p readweb.FetchProgress) {
		if p.Error != nil {
			fmt.Fprintf(deps.Stderr, "\rskip %s: %s\n", p.URL, readweb.ErrorMessage(p.Error))
			return
		}
		fmt.Fprintf(deps.Stderr, "\r[%d/%d] %-8s %s", p.Completed, p.Total, p.Method, crawl.TruncateURL(p.URL, 50))
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, c.URL, store, progress)
	// Clear progress line
	fmt.Fprintf(deps.Stderr, "\r%80s\r", "")
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, result.Summary())
	return nil
}

// filter compiles the include and exclude patterns. Returns nil when no
// pattern is set.
func (c *CrawlCmd) filter() (*readweb.URLFilter, error) {
	return readweb.NewURLFilter(c.Include, c.Exclude)
}
