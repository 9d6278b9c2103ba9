// Command khmer converts Khmer number words to numerals and back.
//
// Usage:
//
//	khmer [flags] [text...]
//
// Arguments are converted one per line and printed. With -input, every
// non-empty line of the file is converted concurrently and written as
// JSON Lines to -output (or stdout).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khmer-numerals/internal/app"
	"github.com/khmer-numerals/internal/batch"
	"github.com/khmer-numerals/internal/config"
	"github.com/khmer-numerals/pkg/khmer"
)

type options struct {
	mode       string
	system     string
	inputPath  string
	outputPath string
	limit      int
	threads    int
	args       []string
}

func main() {
	var opts options

	flag.StringVar(&opts.mode, "mode", "words", "Conversion mode: words (words to numerals) or numerals (numerals to words)")
	flag.StringVar(&opts.system, "system", "", "Output numeral system for words mode: arabic or khmer (default from config)")
	flag.StringVar(&opts.inputPath, "input", "", "Input text file, one expression per line")
	flag.StringVar(&opts.outputPath, "output", "", "Output JSON Lines file (default stdout)")
	flag.IntVar(&opts.limit, "limit", 0, "Limit number of lines (0 = unlimited)")
	flag.IntVar(&opts.threads, "threads", 0, "Number of worker goroutines (0 = from config, or all CPUs)")

	// Short aliases
	flag.StringVar(&opts.mode, "m", "words", "Conversion mode (short)")
	flag.StringVar(&opts.system, "s", "", "Output numeral system (short)")
	flag.StringVar(&opts.inputPath, "i", "", "Input text file (short)")
	flag.StringVar(&opts.outputPath, "o", "", "Output JSON Lines file (short)")
	flag.IntVar(&opts.limit, "l", 0, "Limit number of lines (short)")
	flag.IntVar(&opts.threads, "t", 0, "Number of worker goroutines (short)")

	flag.Usage = usage
	flag.Parse()
	opts.args = flag.Args()

	if opts.inputPath == "" && len(opts.args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, opts, os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: khmer [options] [text...]")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  --mode, -m <mode>     words (default) or numerals")
	fmt.Fprintln(os.Stderr, "  --system, -s <sys>    arabic or khmer output digits")
	fmt.Fprintln(os.Stderr, "  --input, -i <path>    Convert every line of a file")
	fmt.Fprintln(os.Stderr, "  --output, -o <path>   JSON Lines output file (default stdout)")
	fmt.Fprintln(os.Stderr, "  --limit, -l <n>       Limit number of lines")
	fmt.Fprintln(os.Stderr, "  --threads, -t <n>     Number of worker goroutines")
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	p, err := newProcessor(cfg, opts, logger)
	if err != nil {
		return err
	}

	if opts.inputPath == "" {
		return convertArgs(p, opts.args, stdout)
	}

	out := stdout
	if opts.outputPath != "" {
		f, err := os.Create(opts.outputPath)
		if err != nil {
			return fmt.Errorf("could not create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return convertFile(ctx, p, opts, cfg.Batch.MaxLineBytes, out, logger)
}

func newProcessor(cfg *config.Config, opts options, logger *slog.Logger) (*batch.Processor, error) {
	direction, err := batch.ParseDirection(opts.mode)
	if err != nil {
		return nil, err
	}

	systemName := cfg.Converter.OutputSystem
	if opts.system != "" {
		systemName = opts.system
	}
	system, err := khmer.ParseNumeralSystem(systemName)
	if err != nil {
		return nil, err
	}

	conv, err := app.NewConverter(cfg.Converter, logger)
	if err != nil {
		return nil, err
	}

	workers := cfg.Batch.Workers
	if opts.threads > 0 {
		workers = opts.threads
	}

	return &batch.Processor{
		Converter: conv,
		Direction: direction,
		System:    system,
		Workers:   workers,
	}, nil
}

// convertArgs prints one result per argument. Every argument is attempted;
// the first failure is returned after all have been processed.
func convertArgs(p *batch.Processor, args []string, stdout io.Writer) error {
	var errs []error
	for _, arg := range args {
		out, err := p.Convert(arg)
		if err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", arg, err))
			continue
		}
		fmt.Fprintln(stdout, out)
	}
	return errors.Join(errs...)
}

func convertFile(ctx context.Context, p *batch.Processor, opts options, maxLineBytes int, out io.Writer, logger *slog.Logger) error {
	in, err := os.Open(opts.inputPath)
	if err != nil {
		return fmt.Errorf("input file not found: %w", err)
	}
	defer in.Close()

	lines, err := batch.ReadLines(in, opts.limit, maxLineBytes)
	if err != nil {
		return err
	}

	logger.Info("processing",
		slog.String("input", opts.inputPath),
		slog.Int("lines", len(lines)),
		slog.String("mode", p.Direction.String()),
	)

	start := time.Now()
	records, err := p.Run(ctx, lines)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range records {
		if r.Err != nil {
			failed++
			logger.Debug("line failed", slog.Int("id", r.ID), slog.String("input", r.Input), slog.String("error", r.Err.Error()))
		}
	}

	if err := batch.WriteJSONL(out, records); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	duration := time.Since(start)
	logger.Info("done",
		slog.Int("lines", len(records)),
		slog.Int("failed", failed),
		slog.Duration("duration", duration),
		slog.Float64("lines_per_sec", float64(len(records))/duration.Seconds()),
	)
	return nil
}
