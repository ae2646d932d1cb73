package mcp

import (
	"context"
	"encoding/json"

	"github.com/fwojciec/readweb"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NormalizeArgs is the input of the normalize tool.
type NormalizeArgs struct {
	HTML    string `json:"html" jsonschema:"Raw page HTML"`
	BaseURL string `json:"base_url,omitempty" jsonschema:"Page URL. Same-host absolute links are rewritten to host-relative form."`
}

// NormalizeResult is the output of the normalize tool.
type NormalizeResult struct {
	HTML string `json:"html"`
}

// PresetArgs carries a page and a preset. The preset is decoded strictly:
// it must have exactly the preset_match_detectors, main_content_selectors
// and main_content_filters lists.
type PresetArgs struct {
	HTML      string         `json:"html" jsonschema:"Raw page HTML"`
	BaseURL   string         `json:"base_url,omitempty" jsonschema:"Page URL"`
	Preset    map[string]any `json:"preset" jsonschema:"Preset object with preset_match_detectors, main_content_selectors and main_content_filters lists of CSS selectors"`
	Unchecked bool           `json:"unchecked,omitempty" jsonschema:"Skip validation and extract with whatever selectors match"`
}

// ValidateResult is the output of the validate tool.
type ValidateResult struct {
	Problems readweb.Problems `json:"problems"`
	Feedback string           `json:"feedback"`
}

// ApplyResult is the output of the apply_preset tool.
type ApplyResult struct {
	Kind     string `json:"kind"`
	Markup   string `json:"markup,omitempty"`
	Markdown string `json:"markdown,omitempty"`
	Feedback string `json:"feedback,omitempty"`
}

// SavePresetArgs is the input of the save_preset tool.
type SavePresetArgs struct {
	SitePattern string         `json:"site_pattern" jsonschema:"Glob matched against URL host and path, e.g. docs.example.com/**"`
	Preset      map[string]any `json:"preset" jsonschema:"Preset object with preset_match_detectors, main_content_selectors and main_content_filters"`
}

// SavePresetResult is the output of the save_preset tool.
type SavePresetResult struct {
	ID          string `json:"id"`
	ContentHash string `json:"content_hash"`
}

func (s *Server) normalize(_ context.Context, _ *mcp.CallToolRequest, args NormalizeArgs) (*mcp.CallToolResult, any, error) {
	doc, err := s.normalizer.Normalize(args.HTML, args.BaseURL)
	if err != nil {
		return errorResult(err)
	}
	cleaned, err := doc.HTML()
	if err != nil {
		return errorResult(err)
	}
	s.logger.Debug("mcp normalize", "bytes_in", len(args.HTML), "bytes_out", len(cleaned))
	return textResult(NormalizeResult{HTML: cleaned})
}

func (s *Server) validate(_ context.Context, _ *mcp.CallToolRequest, args PresetArgs) (*mcp.CallToolResult, any, error) {
	doc, preset, err := s.prepare(args.HTML, args.BaseURL, args.Preset)
	if err != nil {
		return errorResult(err)
	}
	problems := doc.Validate(*preset)
	s.logger.Debug("mcp validate", "critical", len(problems.Critical), "non_critical", len(problems.NonCritical))
	return textResult(ValidateResult{
		Problems: problems,
		Feedback: readweb.RenderProblems(problems),
	})
}

func (s *Server) applyPreset(_ context.Context, _ *mcp.CallToolRequest, args PresetArgs) (*mcp.CallToolResult, any, error) {
	doc, preset, err := s.prepare(args.HTML, args.BaseURL, args.Preset)
	if err != nil {
		return errorResult(err)
	}

	var result readweb.ApplyResult
	var problems readweb.Problems
	if args.Unchecked {
		result = doc.ApplyUnchecked(*preset)
	} else {
		problems, result = doc.Check(*preset)
	}
	s.logger.Debug("mcp apply preset", "kind", result.Kind(), "unchecked", args.Unchecked)

	ok, isOK := result.(readweb.ApplyOK)
	if !isOK {
		return textResult(ApplyResult{
			Kind:     result.Kind(),
			Feedback: readweb.RenderApplyFailure(result),
		})
	}

	out := ApplyResult{
		Kind:     result.Kind(),
		Markup:   ok.Markup,
		Feedback: readweb.RenderProblems(problems),
	}
	if s.converter != nil && ok.Markup != "" {
		md, err := s.converter.Convert(ok.Markup)
		if err != nil {
			return errorResult(err)
		}
		out.Markdown = md
	}
	return textResult(out)
}

func (s *Server) savePreset(ctx context.Context, _ *mcp.CallToolRequest, args SavePresetArgs) (*mcp.CallToolResult, any, error) {
	preset, err := decodePreset(args.Preset)
	if err != nil {
		return errorResult(err)
	}
	sp := &readweb.StoredPreset{SitePattern: args.SitePattern, Preset: *preset}
	if err := s.presets.CreatePreset(ctx, sp); err != nil {
		return errorResult(err)
	}
	return textResult(SavePresetResult{ID: sp.ID, ContentHash: sp.ContentHash})
}

// prepare decodes the preset and normalizes the page.
func (s *Server) prepare(html, baseURL string, raw map[string]any) (readweb.Document, *readweb.Preset, error) {
	preset, err := decodePreset(raw)
	if err != nil {
		return nil, nil, err
	}
	doc, err := s.normalizer.Normalize(html, baseURL)
	if err != nil {
		return nil, nil, err
	}
	return doc, preset, nil
}

func decodePreset(raw map[string]any) (*readweb.Preset, error) {
	if raw == nil {
		return nil, readweb.Errorf(readweb.EINVALID, "preset required")
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, readweb.Errorf(readweb.EINVALID, "invalid preset: %v", err)
	}
	return readweb.ParsePresetBytes(b)
}
