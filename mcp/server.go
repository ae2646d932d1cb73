// Package mcp exposes the extraction engine to agents as a Model Context
// Protocol server: agents normalize pages, validate and apply presets they
// write themselves, and save the ones that work.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/fwojciec/readweb"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	NormalizeTool   = "normalize"
	ValidateTool    = "validate"
	ApplyPresetTool = "apply_preset"
	SavePresetTool  = "save_preset"
)

// Server serves the readweb tools.
type Server struct {
	server     *mcp.Server
	normalizer readweb.Normalizer
	converter  readweb.Converter
	presets    readweb.PresetService
	logger     *slog.Logger
	version    string
}

// Option configures a Server.
type Option func(*Server)

// WithPresetService enables the save_preset tool.
func WithPresetService(presets readweb.PresetService) Option {
	return func(s *Server) {
		s.presets = presets
	}
}

// WithConverter adds markdown to apply_preset results.
func WithConverter(converter readweb.Converter) Option {
	return func(s *Server) {
		s.converter = converter
	}
}

// WithLogger sets the logger for tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithVersion sets the version reported to clients.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// NewServer creates a Server whose tools normalize pages with normalizer.
func NewServer(normalizer readweb.Normalizer, opts ...Option) *Server {
	s := &Server{
		normalizer: normalizer,
		logger:     slog.Default(),
		version:    "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "readweb",
		Version: s.version,
	}, nil)
	s.registerTools()
	return s
}

// Run serves the tools over stdin and stdout until the client disconnects
// or ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, &mcp.StdioTransport{})
}

// Serve serves the tools over the given transport.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        NormalizeTool,
		Description: "Normalize page HTML: remove scripts, styles, comments, volatile generated class names and ids, and oversized text. Returns the cleaned HTML to write selectors against.",
	}, s.normalize)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ValidateTool,
		Description: "Validate a preset against page HTML. Returns critical and non-critical problems plus feedback describing how to fix them.",
	}, s.validate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ApplyPresetTool,
		Description: "Apply a preset to page HTML. Returns the extracted main content, or feedback explaining why the preset does not apply.",
	}, s.applyPreset)

	if s.presets != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        SavePresetTool,
			Description: "Save a working preset for every page whose host and path match the site pattern glob, e.g. docs.example.com/**.",
		}, s.savePreset)
	}
}

// textResult returns out as JSON text content.
func textResult(out any) (*mcp.CallToolResult, any, error) {
	b, err := json.Marshal(out)
	if err != nil {
		return errorResult(readweb.Errorf(readweb.EINTERNAL, "encode result: %v", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}, out, nil
}

// errorResult reports err to the agent as a tool error so it can correct
// its input.
func errorResult(err error) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: readweb.ErrorMessage(err)}},
		IsError: true,
	}, nil, nil
}
