package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/readweb"
	"github.com/fwojciec/readweb/crawl"
	"github.com/fwojciec/readweb/fs"
	"github.com/fwojciec/readweb/gemini"
	"github.com/fwojciec/readweb/goquery"
	"github.com/fwojciec/readweb/htmltomarkdown"
	rwhttp "github.com/fwojciec/readweb/http"
	rwmcp "github.com/fwojciec/readweb/mcp"
	"github.com/fwojciec/readweb/readability"
	"github.com/fwojciec/readweb/rod"
	rwslog "github.com/fwojciec/readweb/slog"
	"github.com/fwojciec/readweb/sqlite"
	"github.com/fwojciec/readweb/trafilatura"
	"google.golang.org/genai"
)

// version is set at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorText(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Overrides --db and READWEB_DB when set.
	DBPath string

	// SQLite database used by the preset service. Opened on demand.
	DB *sqlite.DB

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases the database and any started fetchers.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("readweb"),
		kong.Description("Extract readable content from web pages with CSS selector presets"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return readweb.Errorf(readweb.EINVALID, "no command specified. Run 'readweb --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	defer m.Close()
	if err := m.wire(ctx, cli, strings.Fields(kongCtx.Command())[0], deps); err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// wire fills in the dependencies the command needs.
func (m *Main) wire(ctx context.Context, cli *CLI, cmd string, deps *Dependencies) error {
	logger := deps.Logger

	switch cmd {
	case "normalize", "validate", "apply":
		deps.Normalizer = rwslog.NewLoggingNormalizer(goquery.NewNormalizer(goquery.WithLogger(logger)), logger)
		deps.Converter = m.converter(logger)

	case "suggest":
		deps.Fixtures = fs.NewFixtureStore(cli.Fixtures)
		suggester, err := m.suggester(ctx, cli, logger)
		if err != nil {
			return err
		}
		deps.Suggester = suggester
		if cli.Suggest.Save {
			if deps.Presets, err = m.presets(cli, logger); err != nil {
				return err
			}
		}

	case "fixture":
		deps.Fixtures = fs.NewFixtureStore(cli.Fixtures)
		fetcher, err := m.fetcher(cli, cli.Browser, logger)
		if err != nil {
			return err
		}
		deps.Fetcher = fetcher

	case "extract", "compare":
		presets, err := m.presets(cli, logger)
		if err != nil {
			return err
		}
		fetcher, err := m.fetcher(cli, cli.Browser, logger)
		if err != nil {
			return err
		}
		extractor := m.extractor(cli, presets, logger)
		deps.Presets = presets
		deps.Fetcher = fetcher
		deps.Extractor = rwslog.NewLoggingContentExtractor(extractor, logger)
		deps.Comparer = extractor
		if cmd == "compare" {
			deps.TokenCounter = m.tokenCounter(cli, logger)
		}

	case "crawl":
		presets, err := m.presets(cli, logger)
		if err != nil {
			return err
		}
		filter, err := cli.Crawl.filter()
		if err != nil {
			return err
		}
		extractor := m.extractor(cli, presets, logger)
		fetcher, err := m.crawlFetcher(ctx, cli, extractor.Fallback, logger)
		if err != nil {
			return err
		}
		deps.Crawler = &crawl.Crawler{
			Sitemaps:     rwslog.NewLoggingSitemapService(rwhttp.NewSitemapService(nil), logger),
			Fetcher:      fetcher,
			Extractor:    rwslog.NewLoggingContentExtractor(extractor, logger),
			TokenCounter: m.tokenCounter(cli, logger),
			RateLimiter:  crawl.NewDomainLimiter(cli.Crawl.RPS),
			Filter:       filter,
			Logger:       logger,
			Concurrency:  cli.Crawl.Concurrency,
			MaxPages:     cli.Crawl.MaxPages,
		}
		deps.PageStore = func(dir, name string) readweb.PageStore {
			return fs.NewFileStore(dir, name)
		}

	case "presets":
		presets, err := m.presets(cli, logger)
		if err != nil {
			return err
		}
		deps.Presets = presets

	case "mcp":
		presets, err := m.presets(cli, logger)
		if err != nil {
			return err
		}
		deps.MCP = rwmcp.NewServer(
			rwslog.NewLoggingNormalizer(goquery.NewNormalizer(goquery.WithLogger(logger)), logger),
			rwmcp.WithPresetService(presets),
			rwmcp.WithConverter(m.converter(logger)),
			rwmcp.WithLogger(logger),
			rwmcp.WithVersion(version),
		)
	}
	return nil
}

func (m *Main) converter(logger *slog.Logger) readweb.Converter {
	return rwslog.NewLoggingConverter(htmltomarkdown.NewConverter(), logger)
}

// presets opens the database and returns the preset service.
func (m *Main) presets(cli *CLI, logger *slog.Logger) (readweb.PresetService, error) {
	if m.DB == nil {
		path := m.DBPath
		if path == "" {
			path = cli.DB
		}
		if path == "" {
			path = defaultDBPath()
		}

		db := sqlite.NewDB(path)
		if err := db.Open(); err != nil {
			return nil, fmt.Errorf("open database at %q (set READWEB_DB to use a different path): %w", path, err)
		}
		m.DB = db
		m.closers = append(m.closers, db)
	}
	return rwslog.NewLoggingPresetService(sqlite.NewPresetService(m.DB), logger), nil
}

// fetcher returns a browser or HTTP fetcher.
func (m *Main) fetcher(cli *CLI, browser bool, logger *slog.Logger) (readweb.Fetcher, error) {
	if !browser {
		return rwslog.NewLoggingFetcher(rwhttp.NewFetcher(rwhttp.WithTimeout(cli.Timeout)), logger), nil
	}

	f, err := rod.NewFetcher(
		rod.WithFetchTimeout(cli.Timeout),
		rod.WithRecycleAfter(cli.Crawl.RecycleAfter),
		rod.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("start browser (Chrome or Chromium must be installed): %w", err)
	}
	m.closers = append(m.closers, f)
	return rwslog.NewLoggingFetcher(f, logger), nil
}

// crawlFetcher picks the fetcher for a whole site. Without --browser it
// probes the source URL and only renders pages in a browser when that adds
// substantial content. A missing browser falls back to HTTP.
func (m *Main) crawlFetcher(ctx context.Context, cli *CLI, extractor readweb.Extractor, logger *slog.Logger) (readweb.Fetcher, error) {
	if cli.Browser {
		return m.fetcher(cli, true, logger)
	}

	httpFetcher, _ := m.fetcher(cli, false, logger)
	browserFetcher, err := m.fetcher(cli, true, logger)
	if err != nil {
		logger.Warn("browser unavailable, crawling over http", "err", err)
		return httpFetcher, nil
	}

	fetcher := crawl.ProbeFetcher(ctx, cli.Crawl.URL, httpFetcher, browserFetcher, extractor)
	if fetcher == browserFetcher {
		logger.Info("page renders with javascript, crawling with browser", "url", cli.Crawl.URL)
	}
	return fetcher, nil
}

// extractor builds the extraction pipeline.
func (m *Main) extractor(cli *CLI, presets readweb.PresetService, logger *slog.Logger) *crawl.Extractor {
	var fallback readweb.Extractor = readability.NewExtractor()
	if cli.Fallback == "trafilatura" {
		fallback = trafilatura.NewExtractor()
	}

	return &crawl.Extractor{
		Normalizer: rwslog.NewLoggingNormalizer(goquery.NewContentNormalizer(goquery.WithLogger(logger)), logger),
		Converter:  m.converter(logger),
		Presets:    presets,
		Builtins:   rwslog.NewLoggingPresetDetector(goquery.NewBuiltinRegistry(), logger),
		Fallback:   rwslog.NewLoggingExtractor(fallback, logger),
		Logger:     logger,
	}
}

// tokenCounter returns a token counter, or nil when the model has no
// local tokenizer.
func (m *Main) tokenCounter(cli *CLI, logger *slog.Logger) readweb.TokenCounter {
	tc, err := gemini.NewTokenCounter(cli.Model)
	if err != nil {
		logger.Debug("token counting disabled", "model", cli.Model, "err", err)
		return nil
	}
	return tc
}

// suggester connects to Gemini.
func (m *Main) suggester(ctx context.Context, cli *CLI, logger *slog.Logger) (readweb.Suggester, error) {
	if cli.APIKey == "" {
		return nil, readweb.Errorf(readweb.EINVALID, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cli.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to Gemini API (check GEMINI_API_KEY): %w", err)
	}

	s := gemini.NewSuggester(
		client.Models,
		goquery.NewNormalizer(goquery.WithLogger(logger)),
		m.converter(logger),
		gemini.WithModel(cli.Model),
		gemini.WithLogger(logger),
	)
	return rwslog.NewLoggingSuggester(s, logger), nil
}

// errorText returns the message shown to the user. Domain errors carry a
// user-facing message; anything else is printed as is.
func errorText(err error) string {
	if readweb.ErrorCode(err) == readweb.EINTERNAL {
		return err.Error()
	}
	return readweb.ErrorMessage(err)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "readweb.db"
	}
	dir := filepath.Join(home, ".readweb")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "readweb.db")
}
