// Package batch converts many lines concurrently and writes the results as
// JSON Lines.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/khmer-numerals/internal/metrics"
	"github.com/khmer-numerals/pkg/khmer"
)

// Direction selects which way a line is converted.
type Direction int

const (
	// WordsToNumeral reads Khmer number words and emits numerals.
	WordsToNumeral Direction = iota
	// NumeralToWords reads numerals and emits Khmer number words.
	NumeralToWords
)

func (d Direction) String() string {
	switch d {
	case WordsToNumeral:
		return "words"
	case NumeralToWords:
		return "numerals"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection accepts "words" (words in, numerals out) or "numerals".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "words":
		return WordsToNumeral, nil
	case "numerals":
		return NumeralToWords, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want words or numerals)", s)
	}
}

// Record is the outcome of converting one input line.
type Record struct {
	ID     int
	Input  string
	Output string
	Err    error
}

// Processor converts lines with a shared converter on a bounded set of
// goroutines. The zero Workers value means runtime.NumCPU.
type Processor struct {
	Converter *khmer.Converter
	Direction Direction
	System    khmer.NumeralSystem
	Workers   int
	Metrics   metrics.Recorder
}

func (p *Processor) converter() *khmer.Converter {
	if p.Converter == nil {
		return khmer.DefaultConverter()
	}
	return p.Converter
}

func (p *Processor) recorder() metrics.Recorder {
	if p.Metrics == nil {
		return metrics.Nop{}
	}
	return p.Metrics
}

// Convert converts a single line in the processor's direction.
func (p *Processor) Convert(input string) (string, error) {
	start := time.Now()

	var (
		out string
		err error
		op  string
	)
	switch p.Direction {
	case NumeralToWords:
		op = metrics.OpNumeralToWords
		out, err = p.converter().NumeralToWords(input)
	default:
		op = metrics.OpWordsToNumeral
		out, err = p.converter().WordsToNumeral(input, p.System)
	}

	p.recorder().ObserveConversion(op, err, time.Since(start))
	return out, err
}

// Run converts every line and returns one record per line in input order.
// A failing line does not stop the batch; its record carries the error.
// Run only returns an error when ctx is cancelled.
func (p *Processor) Run(ctx context.Context, lines []string) ([]Record, error) {
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	records := make([]Record, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, line := range lines {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := p.Convert(line)
			records[i] = Record{ID: i, Input: line, Output: out, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
