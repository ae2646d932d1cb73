package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/readweb"
	"github.com/fwojciec/readweb/crawl"
)

// Dependencies holds all services and configuration for command execution.
// Main fills in only what the selected command needs.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Normalizer   readweb.Normalizer
	Converter    readweb.Converter
	Presets      readweb.PresetService
	Fixtures     readweb.FixtureStore
	Fetcher      readweb.Fetcher
	Suggester    readweb.Suggester
	Extractor    readweb.ContentExtractor
	Comparer     Comparer
	TokenCounter readweb.TokenCounter
	Crawler      Crawler
	PageStore    func(dir, name string) readweb.PageStore
	MCP          Server
}

// Comparer runs every extraction strategy on one page.
type Comparer interface {
	Compare(ctx context.Context, pageURL, html string, preset *readweb.Preset, counter readweb.TokenCounter) ([]crawl.Comparison, error)
}

// Crawler extracts a whole site into a page store.
type Crawler interface {
	Crawl(ctx context.Context, sourceURL string, store readweb.PageStore, progress readweb.FetchProgressFunc) (*crawl.Result, error)
}

// Server serves tools until its client disconnects.
type Server interface {
	Run(ctx context.Context) error
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose  bool          `short:"v" help:"Log debug output to stderr"`
	DB       string        `name:"db" env:"READWEB_DB" help:"Preset database path (default: ~/.readweb/readweb.db)"`
	Model    string        `env:"READWEB_MODEL" default:"gemini-2.5-flash" help:"Gemini model used to suggest presets"`
	APIKey   string        `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Timeout  time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Browser  bool          `short:"b" help:"Render pages in headless Chrome instead of plain HTTP"`
	Fixtures string        `name:"fixtures" default:"fixtures" help:"Fixture directory"`
	Fallback string        `default:"readability" enum:"readability,trafilatura" help:"Heuristic extractor used when no preset applies (readability, trafilatura)"`

	Normalize NormalizeCmd `cmd:"" help:"Print the normalized form of page HTML"`
	Validate  ValidateCmd  `cmd:"" help:"Validate a preset against page HTML"`
	Apply     ApplyCmd     `cmd:"" help:"Apply a preset to page HTML"`
	Suggest   SuggestCmd   `cmd:"" help:"Suggest a preset for a fixture with Gemini"`
	Fixture   FixtureCmd   `cmd:"" help:"Capture a page as a fixture"`
	Extract   ExtractCmd   `cmd:"" help:"Extract readable markdown from a URL"`
	Compare   CompareCmd   `cmd:"" help:"Compare extraction strategies on a URL"`
	Crawl     CrawlCmd     `cmd:"" help:"Extract every page of a site to markdown files"`
	Presets   PresetsCmd   `cmd:"" help:"Manage stored presets"`
	MCP       MCPCmd       `cmd:"" name:"mcp" help:"Serve the preset tools over MCP on stdio"`
}

// NormalizeCmd is the "normalize" subcommand.
type NormalizeCmd struct {
	Input   string `arg:"" default:"-" help:"HTML file, or - for stdin"`
	BaseURL string `name:"base-url" help:"Page URL; same-host links are made host-relative"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	Preset  string `short:"p" required:"" help:"Preset JSON file"`
	Input   string `arg:"" default:"-" help:"HTML file, or - for stdin"`
	BaseURL string `name:"base-url" help:"Page URL"`
	JSON    bool   `help:"Print problems as JSON"`
}

// ApplyCmd is the "apply" subcommand.
type ApplyCmd struct {
	Preset    string `short:"p" required:"" help:"Preset JSON file"`
	Input     string `arg:"" default:"-" help:"HTML file, or - for stdin"`
	BaseURL   string `name:"base-url" help:"Page URL"`
	Unchecked bool   `help:"Skip validation and extract whatever the selectors match"`
	Markdown  bool   `short:"m" help:"Print markdown instead of HTML"`
}

// SuggestCmd is the "suggest" subcommand.
type SuggestCmd struct {
	Fixture     string `arg:"" help:"Fixture name or JSON file"`
	Save        bool   `short:"s" help:"Store the suggested preset"`
	SitePattern string `name:"site-pattern" help:"Glob the stored preset applies to (default: fixture host/**)"`
}

// FixtureCmd is the "fixture" subcommand.
type FixtureCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL  string `arg:"" help:"Page URL"`
	JSON bool   `help:"Print the extraction as JSON"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	URL    string `arg:"" help:"Page URL"`
	Preset string `short:"p" help:"Preset JSON file (default: first stored preset for the URL)"`
	Show   string `help:"Print the markdown produced by one method (preset, builtin, readability or literal)"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL          string   `arg:"" help:"Site URL; only pages under its path are crawled"`
	Out          string   `short:"o" required:"" help:"Output directory"`
	Name         string   `short:"n" help:"Subdirectory name (default: site host)"`
	Concurrency  int      `short:"c" default:"10" help:"Concurrent fetch limit"`
	RPS          float64  `name:"rps" default:"5" help:"Requests per second per domain (0 for unlimited)"`
	MaxPages     int      `name:"max-pages" default:"1000" help:"Page limit when following links"`
	Include      []string `short:"I" help:"Only crawl URLs matching this regex (repeatable)"`
	Exclude      []string `short:"X" help:"Skip URLs matching this regex (repeatable)"`
	RecycleAfter int64    `name:"recycle-after" default:"75" help:"Restart the browser after this many pages (0 to never restart)"`
}

// PresetsCmd groups the preset management subcommands.
type PresetsCmd struct {
	List   PresetsListCmd   `cmd:"" default:"1" help:"List stored presets"`
	Add    PresetsAddCmd    `cmd:"" help:"Store a preset for a site pattern"`
	Delete PresetsDeleteCmd `cmd:"" help:"Delete a stored preset"`
}

// PresetsListCmd is the "presets list" subcommand.
type PresetsListCmd struct {
	Site string `help:"Only presets with this exact site pattern"`
}

// PresetsAddCmd is the "presets add" subcommand.
type PresetsAddCmd struct {
	SitePattern string `arg:"" help:"Glob matched against URL host and path, e.g. docs.example.com/**"`
	Preset      string `arg:"" help:"Preset JSON file, or - for stdin"`
}

// PresetsDeleteCmd is the "presets delete" subcommand.
type PresetsDeleteCmd struct {
	ID string `arg:"" help:"Preset ID"`
}

// MCPCmd is the "mcp" subcommand.
type MCPCmd struct{}
