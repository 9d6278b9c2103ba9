package khmer

import (
	"strconv"
	"strings"
)

// MaxInteger is the largest integer part NumeralToWords renders. Above it the
// million word would have to repeat, which the resolver cannot read back.
const MaxInteger int64 = 999_999_999_999

// NumeralToWords renders each whitespace-separated numeral of text as Khmer
// words and joins them with a single space. Numerals are digits with at most
// one decimal point; Khmer digit glyphs are accepted. Nothing is returned
// unless every numeral converts.
func (c *Converter) NumeralToWords(text string) (string, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", ErrEmptyInput
	}

	results := make([]string, len(fields))
	for i, f := range fields {
		words, err := c.numeralToWords(f)
		if err != nil {
			return "", err
		}
		results[i] = words
	}
	return strings.Join(results, " "), nil
}

func (c *Converter) numeralToWords(token string) (string, error) {
	intPart, fracPart, hasFrac, ok := splitNumeral(ToArabicDigits(token))
	if !ok {
		return "", &InvalidNumberFormatError{Token: token}
	}

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || n > MaxInteger {
		return "", &InvalidNumberFormatError{Token: token, Err: ErrOutOfRange}
	}

	var b strings.Builder
	b.WriteString(c.IntegerWords(n))
	if hasFrac {
		b.WriteString(c.lexicon.DecimalPoint())
		b.WriteString(c.FractionWords(fracPart))
	}
	return b.String(), nil
}

// splitNumeral validates digits[.digits] and splits it at the point. A
// missing integer part before the point reads as zero.
func splitNumeral(s string) (intPart, fracPart string, hasFrac, ok bool) {
	intPart, fracPart, hasFrac = strings.Cut(s, ".")
	if hasFrac {
		if fracPart == "" || !allDigits(fracPart) {
			return "", "", false, false
		}
		if intPart == "" {
			intPart = "0"
		}
	}
	if intPart == "" || !allDigits(intPart) {
		return "", "", false, false
	}
	return intPart, fracPart, hasFrac, true
}

func allDigits(s string) bool {
	for _, r := range s {
		if !IsArabicDigit(r) {
			return false
		}
	}
	return true
}

// IntegerWords renders a non-negative integer as Khmer words.
func (c *Converter) IntegerWords(n int64) string {
	if n == 0 {
		return c.lexicon.ZeroWord()
	}
	var b strings.Builder
	c.writeGroups(&b, n)
	return b.String()
}

// writeGroups peels scales from the largest down. Each quotient is rendered
// recursively before its scale word; only the million quotient can exceed 9.
func (c *Converter) writeGroups(b *strings.Builder, n int64) {
	for _, scale := range scaleOrder {
		if n < scale {
			continue
		}
		c.writeGroups(b, n/scale)
		word, _ := c.lexicon.ScaleWord(scale)
		b.WriteString(word)
		n %= scale
	}
	if n >= 10 {
		b.WriteString(c.lexicon.TensWord(int(n / 10 * 10)))
		n %= 10
	}
	if n > 0 {
		b.WriteString(c.lexicon.DigitWord(int(n)))
	}
}

// FractionWords renders each digit independently, without place value.
func (c *Converter) FractionWords(digits string) string {
	var b strings.Builder
	for i := 0; i < len(digits); i++ {
		b.WriteString(c.lexicon.DigitWord(int(digits[i] - '0')))
	}
	return b.String()
}
