package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/versefill"
	"github.com/fwojciec/versefill/bloom"
	"github.com/fwojciec/versefill/config"
	"github.com/fwojciec/versefill/detect"
	"github.com/fwojciec/versefill/fetch"
	"github.com/fwojciec/versefill/gemini"
	"github.com/fwojciec/versefill/render"
	vslog "github.com/fwojciec/versefill/slog"
	"github.com/fwojciec/versefill/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config overrides loading the config file. Set before calling Run().
	Config *config.Config

	// Resolver overrides the Gemini resolver built from the config.
	Resolver versefill.Resolver

	// Stdin is read when a command is given "-" as its file.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	VerseService  *sqlite.VerseService
	ImportService versefill.ImportService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("versefill"),
		kong.Description("Fill Bible verse text into church message outlines."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'versefill --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := m.loadConfig(cli)
	if err != nil {
		return err
	}
	deps.Config = cfg

	if cmd == "books" {
		return kongCtx.Run(deps)
	}

	if err := m.openDB(cfg.DBPath, stderr); err != nil {
		return err
	}
	defer m.Close()

	m.VerseService = sqlite.NewVerseService(m.DB)
	m.ImportService = sqlite.NewImportService(m.DB)
	deps.Verses = m.VerseService
	deps.Imports = m.ImportService

	if cmd == "render" || cmd == "refs" {
		deps.Detector, err = m.detector(ctx, cfg, deps.Logger, stderr)
		if err != nil {
			return err
		}
	}

	if cmd == "render" {
		refs, err := m.VerseService.VerseReferences(ctx)
		if err != nil {
			return fmt.Errorf("failed to load verse index: %w", err)
		}
		index := bloom.Build(refs)
		deps.Logger.Debug("verse index", "verses", len(refs), "estimated", index.EstimatedCount())

		deps.Fetcher = &fetch.Fetcher{
			Store:  vslog.NewLoggingVerseStore(m.VerseService, deps.Logger),
			Index:  index,
			Fanout: cfg.Fanout,
		}

		layout, err := render.ParseLayout(cfg.Layout)
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		deps.Renderer = &render.Renderer{Layout: layout, MarginWidth: cfg.MarginWidth}
	}

	return kongCtx.Run(deps)
}

// loadConfig returns the settings for this invocation with the command line
// flags applied over the config file.
func (m *Main) loadConfig(cli *CLI) (config.Config, error) {
	var cfg config.Config
	if m.Config != nil {
		cfg = *m.Config
	} else {
		var err error
		if cfg, err = config.Load(cli.Config); err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if cli.Render.Layout != "" {
		cfg.Layout = cli.Render.Layout
	}
	if cli.Render.MarginWidth > 0 {
		cfg.MarginWidth = cli.Render.MarginWidth
	}
	for _, mode := range []string{cli.Render.Resolver, cli.Refs.Resolver} {
		switch mode {
		case "on":
			cfg.Resolver.Enabled = true
		case "off":
			cfg.Resolver.Enabled = false
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (m *Main) openDB(path string, stderr io.Writer) error {
	if path != ":memory:" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set VERSEFILL_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// detector builds the detection pipeline, attaching the Gemini resolver
// when it is enabled.
func (m *Main) detector(ctx context.Context, cfg config.Config, logger *slog.Logger, stderr io.Writer) (versefill.Detector, error) {
	policy, err := detect.ParseScopePolicy(cfg.ScopePolicy)
	if err != nil {
		return nil, err
	}
	d := &detect.Detector{
		ResolverTimeout: cfg.Resolver.Timeout,
		ScopePolicy:     policy,
	}

	resolver := m.Resolver
	if resolver == nil && cfg.Resolver.Enabled {
		if resolver, err = newGeminiResolver(ctx, cfg.Resolver, stderr); err != nil {
			return nil, err
		}
	}
	if resolver != nil {
		d.Resolver = vslog.NewLoggingResolver(resolver, logger)
	}

	return vslog.NewLoggingDetector(d, logger), nil
}

func newGeminiResolver(ctx context.Context, cfg config.ResolverConfig, stderr io.Writer) (*gemini.Resolver, error) {
	if cfg.APIKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Run with --resolver=off to use the pattern library only")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	r := gemini.NewResolver(client, cfg.Model, cfg.RequestsPerSecond)
	if cfg.MaxInputTokens > 0 {
		// The local tokenizer lags behind the newest models.
		tokens, err := gemini.NewTokenCounter(gemini.DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		r.Tokens = tokens
		r.MaxInputTokens = cfg.MaxInputTokens
	}
	return r, nil
}
