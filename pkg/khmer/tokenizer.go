package khmer

import (
	"fmt"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer segments Khmer number expressions by greedy longest match
type Tokenizer struct {
	Lexicon *Lexicon
}

// NewTokenizer creates a new tokenizer over the given lexicon
func NewTokenizer(lexicon *Lexicon) *Tokenizer {
	return &Tokenizer{Lexicon: lexicon}
}

// Clean composes text to NFC and strips whitespace and zero-width characters.
func Clean(text string) (string, error) {
	t := transform.Chain(norm.NFC, runes.Remove(runes.Predicate(isIgnorable)))
	out, _, err := transform.String(t, text)
	if err != nil {
		return "", fmt.Errorf("normalize input: %w", err)
	}
	return out, nil
}

func isIgnorable(r rune) bool {
	return unicode.IsSpace(r) || IsZeroWidth(r)
}

// Tokenize splits text into morphemes. At each position the longest morpheme
// that prefixes the remaining text is taken. Empty input yields no tokens.
func (t *Tokenizer) Tokenize(text string) ([]Morpheme, error) {
	clean, err := Clean(text)
	if err != nil {
		return nil, err
	}
	if clean == "" {
		return []Morpheme{}, nil
	}

	rs := []rune(clean)
	n := len(rs)
	tokens := make([]Morpheme, 0, n/3)

	for i := 0; i < n; {
		m, length, ok := t.Lexicon.longestMatch(rs, i)
		if !ok {
			return nil, &SegmentationError{
				Input:   clean,
				Offset:  i,
				Residue: string(rs[i:t.residueEnd(rs, i)]),
			}
		}
		tokens = append(tokens, m)
		i += length
	}
	return tokens, nil
}

// Segment is Tokenize returning the morpheme spellings only.
func (t *Tokenizer) Segment(text string) ([]string, error) {
	tokens, err := t.Tokenize(text)
	if err != nil {
		return nil, err
	}
	segments := make([]string, len(tokens))
	for i, tok := range tokens {
		segments[i] = tok.Text
	}
	return segments, nil
}

// residueEnd returns the end of the unrecognised run starting at start: the
// first later position where a morpheme matches, or the end of input.
func (t *Tokenizer) residueEnd(rs []rune, start int) int {
	for j := start + 1; j < len(rs); j++ {
		if _, _, ok := t.Lexicon.longestMatch(rs, j); ok {
			return j
		}
	}
	return len(rs)
}
