// Package gemini implements preset suggestion and token counting with
// Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/fwojciec/readweb"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultMaxSteps bounds the number of model turns in one session.
const DefaultMaxSteps = 5

const (
	applyPresetTool  = "apply_preset"
	acceptOutputTool = "accept_output"
)

// Ensure Suggester implements readweb.Suggester at compile time.
var _ readweb.Suggester = (*Suggester)(nil)

// Ensure *genai.Models satisfies ContentGenerator at compile time.
var _ ContentGenerator = (*genai.Models)(nil)

// ContentGenerator generates model responses. *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Suggester implements readweb.Suggester by letting Gemini call an
// apply_preset tool until it accepts the extraction.
type Suggester struct {
	gen        ContentGenerator
	normalizer readweb.Normalizer
	converter  readweb.Converter
	model      string
	maxSteps   int
	logger     *slog.Logger
}

// Option configures a Suggester.
type Option func(*Suggester)

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return func(s *Suggester) {
		if model != "" {
			s.model = model
		}
	}
}

// WithMaxSteps bounds the number of model turns.
func WithMaxSteps(n int) Option {
	return func(s *Suggester) {
		if n > 0 {
			s.maxSteps = n
		}
	}
}

// WithLogger sets the logger used for per-step diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Suggester) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSuggester creates a Suggester. The normalizer prepares the page the
// model sees and the converter renders extractions as markdown.
func NewSuggester(gen ContentGenerator, normalizer readweb.Normalizer, converter readweb.Converter, opts ...Option) *Suggester {
	s := &Suggester{
		gen:        gen,
		normalizer: normalizer,
		converter:  converter,
		model:      DefaultModel,
		maxSteps:   DefaultMaxSteps,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// session holds the state of one suggestion loop.
type session struct {
	doc      readweb.Document
	steps    int
	accepted bool
	preset   *readweb.Preset
	markdown string
}

// Suggest runs the tool-calling loop for the fixture page.
func (s *Suggester) Suggest(ctx context.Context, fixture *readweb.Fixture) (*readweb.Suggestion, error) {
	if fixture == nil {
		return nil, readweb.Errorf(readweb.EINVALID, "fixture required")
	}
	if err := fixture.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.normalizer.Normalize(fixture.HTML, fixture.URL)
	if err != nil {
		return nil, err
	}
	cleaned, err := doc.HTML()
	if err != nil {
		return nil, err
	}

	sess := &session{doc: doc}
	contents := []*genai.Content{
		genai.NewContentFromText(BuildPrompt(cleaned), genai.RoleUser),
	}
	config := BuildConfig()

	for turn := 0; turn < s.maxSteps && !sess.accepted; turn++ {
		resp, err := s.gen.GenerateContent(ctx, s.model, contents, config)
		if err != nil {
			return nil, readweb.Errorf(readweb.EUNAVAILABLE, "gemini: %v", err)
		}
		if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			break
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			break
		}
		contents = append(contents, resp.Candidates[0].Content)

		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			parts = append(parts, genai.NewPartFromFunctionResponse(call.Name, s.handle(sess, call)))
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}

	return &readweb.Suggestion{
		Preset:   sess.preset,
		Markdown: sess.markdown,
		Accepted: sess.accepted,
		Steps:    sess.steps,
	}, nil
}

// handle executes one function call and returns the tool response.
func (s *Suggester) handle(sess *session, call *genai.FunctionCall) map[string]any {
	switch call.Name {
	case applyPresetTool:
		return s.applyPreset(sess, call.Args)
	case acceptOutputTool:
		if sess.preset == nil {
			return map[string]any{"error": "No successful markdown yet. Try again."}
		}
		sess.accepted = true
		s.logger.Debug("suggester accepted output", "steps", sess.steps)
		return map[string]any{"output": "accepted"}
	default:
		return map[string]any{"error": "Unknown tool " + call.Name + "."}
	}
}

func (s *Suggester) applyPreset(sess *session, args map[string]any) map[string]any {
	sess.steps++

	raw, err := json.Marshal(args)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	preset, err := readweb.ParsePresetBytes(raw)
	if err != nil {
		s.logger.Debug("suggester rejected preset shape", "step", sess.steps, "err", err)
		return map[string]any{"error": readweb.ErrorMessage(err)}
	}

	problems, result := sess.doc.Check(*preset)

	ok, isOK := result.(readweb.ApplyOK)
	if !isOK {
		feedback := readweb.RenderProblems(problems)
		if feedback == "" {
			feedback = readweb.RenderApplyFailure(result)
		}
		s.logger.Debug("suggester step failed", "step", sess.steps, "result", result.Kind())
		return map[string]any{"error": feedback}
	}

	md := ""
	if ok.Markup != "" {
		md, err = s.converter.Convert(ok.Markup)
		if err != nil {
			return map[string]any{"error": readweb.ErrorMessage(err)}
		}
	}
	if md == "" {
		s.logger.Debug("suggester step extracted nothing", "step", sess.steps)
		return map[string]any{"error": "The preset matched but the extraction contains no text. Target the container that holds the readable content."}
	}

	sess.preset = preset
	sess.markdown = md
	s.logger.Debug("suggester step succeeded", "step", sess.steps, "chars", len(md), "problems", len(problems.NonCritical))
	return map[string]any{
		"markdown": md,
		"feedback": readweb.RenderProblems(problems),
	}
}

// BuildConfig returns the GenerateContentConfig declaring the suggestion
// tools. The model is forced to answer with function calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	selectors := &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
	return &genai.GenerateContentConfig{
		Temperature: &temp,
		Tools: []*genai.Tool{{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        applyPresetTool,
					Description: "Apply the provided Preset to the source HTML and return either feedback to fix or the extracted markdown.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"preset_match_detectors": selectors,
							"main_content_selectors": selectors,
							"main_content_filters":   selectors,
						},
						Required: []string{"preset_match_detectors", "main_content_selectors", "main_content_filters"},
					},
				},
				{
					Name:        acceptOutputTool,
					Description: "Call this when satisfied with the result. Takes no arguments.",
				},
			},
		}},
		ToolConfig: &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: genai.FunctionCallingConfigModeAny,
			},
		},
	}
}
