package khmer

import (
	"fmt"
	"strings"
)

// NumeralSystem selects the digit glyphs of a rendered numeral.
type NumeralSystem uint8

const (
	Arabic NumeralSystem = iota // 0-9
	Khmer                       // ០-៩
)

func (s NumeralSystem) String() string {
	switch s {
	case Arabic:
		return "arabic"
	case Khmer:
		return "khmer"
	default:
		return fmt.Sprintf("numeral_system(%d)", uint8(s))
	}
}

// ParseNumeralSystem parses "arabic" (alias "english") or "khmer".
func ParseNumeralSystem(s string) (NumeralSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arabic", "english":
		return Arabic, nil
	case "khmer":
		return Khmer, nil
	default:
		return 0, fmt.Errorf("unknown numeral system %q", s)
	}
}

// Converter converts between Khmer number words and numerals. It holds no
// per-call state and is safe for concurrent use.
type Converter struct {
	lexicon   *Lexicon
	tokenizer *Tokenizer
}

// NewConverter creates a converter over the given lexicon
func NewConverter(lexicon *Lexicon) *Converter {
	return &Converter{
		lexicon:   lexicon,
		tokenizer: NewTokenizer(lexicon),
	}
}

// Lexicon returns the converter's vocabulary.
func (c *Converter) Lexicon() *Lexicon {
	return c.lexicon
}

var defaultConverter = NewConverter(defaultLexicon)

// DefaultConverter returns the converter over the built-in lexicon.
func DefaultConverter() *Converter {
	return defaultConverter
}

// WordsToArabicNumeral converts Khmer number words to an Arabic-digit numeral.
func WordsToArabicNumeral(text string) (string, error) {
	return defaultConverter.WordsToArabicNumeral(text)
}

// WordsToKhmerNumeral converts Khmer number words to a Khmer-digit numeral.
func WordsToKhmerNumeral(text string) (string, error) {
	return defaultConverter.WordsToKhmerNumeral(text)
}

// WordsToNumeral converts Khmer number words to a numeral in the given system.
func WordsToNumeral(text string, system NumeralSystem) (string, error) {
	return defaultConverter.WordsToNumeral(text, system)
}

// NumeralToWords renders whitespace-separated numerals as Khmer words.
func NumeralToWords(text string) (string, error) {
	return defaultConverter.NumeralToWords(text)
}
