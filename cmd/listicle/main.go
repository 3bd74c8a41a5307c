package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/listicle"
	"github.com/fwojciec/listicle/extract"
	"github.com/fwojciec/listicle/goquery"
	"github.com/fwojciec/listicle/htmltomarkdown"
	listiclehttp "github.com/fwojciec/listicle/http"
	"github.com/fwojciec/listicle/rod"
	listicleslog "github.com/fwojciec/listicle/slog"
)

// Exit statuses.
const (
	exitError    = 1
	exitMismatch = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(ExitCode(err))
	}
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if errors.Is(err, ErrMismatch) {
		return exitMismatch
	}
	return exitError
}

// Main represents the program.
type Main struct {
	// Services overriding the real implementations in end-to-end tests.
	Fetcher      listicle.Fetcher
	Generator    listicle.Generator
	Converter    listicle.Converter
	TokenCounter listicle.TokenCounter

	// BrowserFetcher starts the --browser fetcher. Defaults to headless Chrome.
	BrowserFetcher func(timeout time.Duration) (listicle.Fetcher, error)
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("listicle"),
		kong.Description("Extract ranked products from listicle pages as JSON"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'listicle --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher, err := m.fetcher(cli)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", listicle.ErrorMessage(err))
		if cli.Browser {
			fmt.Fprintln(stderr, "Hint: --browser needs Chrome or Chromium installed")
		}
		return err
	}
	defer fetcher.Close()

	deps.Fetcher = listicleslog.NewLoggingFetcher(fetcher, deps.Logger)
	deps.Sanitizer = listicleslog.NewLoggingSanitizer(goquery.NewSanitizer(), deps.Logger)

	switch strings.Fields(kongCtx.Command())[0] {
	case "extract":
		extractor, err := m.extractor(ctx, &cli.Extract, deps.Logger)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", listicle.ErrorMessage(err))
			return err
		}
		deps.Extractor = listicleslog.NewLoggingExtractor(extractor, deps.Logger)
		deps.Reference = goquery.NewRuleExtractor()

	case "clean":
		deps.Converter = m.Converter
		if deps.Converter == nil {
			deps.Converter = htmltomarkdown.NewConverter()
		}
		if cli.Clean.Tokens {
			tc, err := m.tokenCounter(cli.Clean.TokenizerModel)
			if err != nil {
				return err
			}
			deps.TokenCounter = tc
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) fetcher(cli *CLI) (listicle.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	if cli.Browser {
		if m.BrowserFetcher != nil {
			return m.BrowserFetcher(cli.Timeout)
		}
		return rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
	}
	return listiclehttp.NewFetcher(listiclehttp.WithTimeout(cli.Timeout)), nil
}

func (m *Main) extractor(ctx context.Context, c *ExtractCmd, logger *slog.Logger) (listicle.Extractor, error) {
	if c.Backend == BackendRules {
		return goquery.NewRuleExtractor(), nil
	}

	gen := m.Generator
	if gen == nil {
		var err error
		if gen, err = c.Generator(ctx); err != nil {
			return nil, err
		}
	}
	return extract.NewExtractor(listicleslog.NewLoggingGenerator(gen, logger)), nil
}

func (m *Main) tokenCounter(model string) (listicle.TokenCounter, error) {
	if m.TokenCounter != nil {
		return m.TokenCounter, nil
	}
	return newTokenCounter(model)
}
