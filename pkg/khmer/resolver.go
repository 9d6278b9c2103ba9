package khmer

import "math"

// scaleOrder lists scale weights from largest to smallest
var scaleOrder = []int64{Million, HundredThousand, TenThousand, Thousand, Hundred}

// Resolve reduces a token stream to its integer value.
//
// Digit and tens words push their weight onto an accumulator. A scale word
// collects every trailing entry smaller than itself, multiplies the sum by
// the scale and pushes the product back. The value is the accumulator sum.
// A scale word with nothing smaller before it contributes zero.
func Resolve(tokens []Morpheme) (int64, error) {
	acc := make([]int64, 0, len(tokens))

	for _, tok := range tokens {
		switch tok.Category {
		case CategoryDigit, CategoryTens:
			acc = append(acc, tok.Weight)
		case CategoryScale:
			var k int64
			var err error
			acc, k, err = collect(acc, tok.Weight)
			if err != nil {
				return 0, &GrammarError{Token: tok.Text, Reason: "value too large", Err: err}
			}
			if k > math.MaxInt64/tok.Weight {
				return 0, &GrammarError{Token: tok.Text, Reason: "value too large", Err: ErrOverflow}
			}
			acc = append(acc, k*tok.Weight)
		case CategoryDecimalPoint:
			return 0, &GrammarError{Token: tok.Text, Reason: "unexpected decimal point"}
		default:
			return 0, &GrammarError{Token: tok.Text, Reason: "unknown morpheme category"}
		}
	}

	total, err := sum(acc)
	if err != nil {
		return 0, &GrammarError{Reason: "value too large", Err: err}
	}
	return total, nil
}

// collect pops entries below threshold off the end of acc and returns the
// shortened accumulator with their sum. It stops at the first entry at or
// above threshold, which is left in place.
func collect(acc []int64, threshold int64) ([]int64, int64, error) {
	var k int64
	for len(acc) > 0 {
		last := acc[len(acc)-1]
		if last >= threshold {
			break
		}
		if k > math.MaxInt64-last {
			return acc, 0, ErrOverflow
		}
		k += last
		acc = acc[:len(acc)-1]
	}
	return acc, k, nil
}

func sum(values []int64) (int64, error) {
	var total int64
	for _, v := range values {
		if total > math.MaxInt64-v {
			return 0, ErrOverflow
		}
		total += v
	}
	return total, nil
}
