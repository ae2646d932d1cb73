package main

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fwojciec/readweb"
)

// Run executes the suggest command. The preset is printed as JSON; with
// --save it is also stored for the site pattern.
func (c *SuggestCmd) Run(deps *Dependencies) error {
	fixture, err := deps.Fixtures.Load(deps.Ctx, c.Fixture)
	if err != nil {
		return err
	}

	suggestion, err := deps.Suggester.Suggest(deps.Ctx, fixture)
	if err != nil {
		return err
	}
	if suggestion.Preset == nil {
		return readweb.Errorf(readweb.ENOTREADABLE, "no working preset found after %d attempt(s)", suggestion.Steps)
	}
	if !suggestion.Accepted {
		fmt.Fprintf(deps.Stderr, "warning: preset not confirmed after %d attempt(s); review it before use\n", suggestion.Steps)
	}

	out, err := json.MarshalIndent(suggestion.Preset, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))

	if !c.Save {
		return nil
	}

	pattern := c.SitePattern
	if pattern == "" {
		if pattern, err = defaultSitePattern(fixture.URL); err != nil {
			return err
		}
	}
	sp := &readweb.StoredPreset{SitePattern: pattern, Preset: *suggestion.Preset}
	if err := deps.Presets.CreatePreset(deps.Ctx, sp); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stderr, "Saved preset %s for %s\n", sp.ID, sp.SitePattern)
	return nil
}

// Run executes the fixture command.
func (c *FixtureCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		return err
	}

	path, err := deps.Fixtures.Save(deps.Ctx, &readweb.Fixture{URL: c.URL, HTML: html})
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, path)
	return nil
}

// defaultSitePattern returns a glob matching every page on the URL's host.
func defaultSitePattern(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", readweb.Errorf(readweb.EINVALID, "fixture has no URL; pass --site-pattern")
	}
	return u.Host + "/**", nil
}
