package khmer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseCategory is the inverse of Category.String.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "digit":
		return CategoryDigit, nil
	case "tens":
		return CategoryTens, nil
	case "scale":
		return CategoryScale, nil
	case "decimal_point":
		return CategoryDecimalPoint, nil
	default:
		return 0, fmt.Errorf("unknown category %q", s)
	}
}

// ReadMorphemes reads one morpheme per line in the form
//
//	text<TAB>category<TAB>weight
//
// Blank lines and lines starting with # are skipped. The weight column may be
// omitted for a decimal point.
func ReadMorphemes(r io.Reader) ([]Morpheme, error) {
	var out []Morpheme

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("line %d: want text, category and weight separated by tabs", lineNo)
		}

		category, err := ParseCategory(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		var weight int64
		if len(fields) == 3 {
			weight, err = strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: weight: %w", lineNo, err)
			}
		} else if category != CategoryDecimalPoint {
			return nil, fmt.Errorf("line %d: missing weight for %s", lineNo, category)
		}

		out = append(out, Morpheme{Text: strings.TrimSpace(fields[0]), Category: category, Weight: weight})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadLexicon builds a lexicon from the built-in vocabulary extended with the
// alternate spellings listed in the file at path. Built-in spellings stay the
// ones rendered by NumeralToWords.
func LoadLexicon(path string) (*Lexicon, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon not found at %s: %w", path, err)
	}
	defer file.Close()

	extra, err := ReadMorphemes(file)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}

	morphemes := make([]Morpheme, 0, len(builtinMorphemes)+len(extra))
	morphemes = append(morphemes, builtinMorphemes...)
	morphemes = append(morphemes, extra...)

	lex, err := NewLexiconFrom(morphemes)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lex, nil
}
