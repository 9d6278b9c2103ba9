package khmer

import (
	"strconv"
	"strings"
)

// WordsToArabicNumeral converts Khmer number words to an Arabic-digit numeral.
func (c *Converter) WordsToArabicNumeral(text string) (string, error) {
	return c.WordsToNumeral(text, Arabic)
}

// WordsToKhmerNumeral converts Khmer number words to a Khmer-digit numeral.
func (c *Converter) WordsToKhmerNumeral(text string) (string, error) {
	return c.WordsToNumeral(text, Khmer)
}

// WordsToNumeral converts each whitespace-separated expression of text and
// joins the numerals with a single space. If any expression fails the whole
// call fails; with several expressions the error is an *ExpressionError.
func (c *Converter) WordsToNumeral(text string, system NumeralSystem) (string, error) {
	exprs := strings.Fields(text)
	if len(exprs) == 0 {
		return "", ErrEmptyInput
	}

	results := make([]string, len(exprs))
	for i, expr := range exprs {
		num, err := c.expressionToNumeral(expr)
		if err != nil {
			if len(exprs) > 1 {
				return "", &ExpressionError{Index: i, Expression: expr, Err: err}
			}
			return "", err
		}
		results[i] = num
	}

	out := strings.Join(results, " ")
	if system == Khmer {
		out = ToKhmerDigits(out)
	}
	return out, nil
}

func (c *Converter) expressionToNumeral(expr string) (string, error) {
	tokens, err := c.tokenizer.Tokenize(expr)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", ErrEmptyInput
	}

	dot := -1
	for i, tok := range tokens {
		if tok.Category == CategoryDecimalPoint {
			dot = i
			break
		}
	}

	if dot < 0 {
		v, err := Resolve(tokens)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(v, 10), nil
	}

	whole, err := Resolve(tokens[:dot])
	if err != nil {
		return "", err
	}
	frac, err := fractionDigits(tokens[dot], tokens[dot+1:])
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(whole, 10) + "." + frac, nil
}

// fractionDigits reads the tokens after the decimal point digit by digit.
// Spoken fractions carry no place value: "សូន្យប្រាំ" is 05, not 5. A tens
// word followed by a non-zero digit is the only two-digit group.
func fractionDigits(point Morpheme, tokens []Morpheme) (string, error) {
	if len(tokens) == 0 {
		return "", &GrammarError{Token: point.Text, Reason: "no digits after decimal point"}
	}

	leadingZeros := 0
	for _, tok := range tokens {
		if tok.Category != CategoryDigit || tok.Weight != 0 {
			break
		}
		leadingZeros++
	}

	var b strings.Builder
	b.Grow(len(tokens) * 2)
	b.WriteString(strings.Repeat("0", leadingZeros))

	rest := tokens[leadingZeros:]
	for i := 0; i < len(rest); i++ {
		tok := rest[i]
		switch tok.Category {
		case CategoryTens:
			// A tens word followed by a non-zero digit reads as one
			// two-digit group: ម្ភៃប្រាំ is 25, not 205.
			if i+1 < len(rest) && rest[i+1].Category == CategoryDigit && rest[i+1].Weight > 0 {
				b.WriteString(strconv.FormatInt(tok.Weight/10, 10))
				b.WriteString(strconv.FormatInt(rest[i+1].Weight, 10))
				i++
				continue
			}
			b.WriteString(strconv.FormatInt(tok.Weight, 10))
		case CategoryDigit:
			b.WriteString(strconv.FormatInt(tok.Weight, 10))
		case CategoryDecimalPoint:
			return "", &GrammarError{Token: tok.Text, Reason: "second decimal point"}
		case CategoryScale:
			return "", &GrammarError{Token: tok.Text, Reason: "scale word after decimal point"}
		default:
			return "", &GrammarError{Token: tok.Text, Reason: "unknown morpheme category"}
		}
	}
	return b.String(), nil
}
