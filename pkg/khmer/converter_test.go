package khmer

import (
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ConversionCase represents a single case from the shared test file
type ConversionCase struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Words       string `json:"words"`
	Arabic      string `json:"arabic"`
	Khmer       string `json:"khmer"`
}

var testConverter *Converter
var testCases []ConversionCase

func TestMain(m *testing.M) {
	testConverter = NewConverter(NewLexicon())

	data, err := os.ReadFile(filepath.Join("testdata", "conversion_cases.json"))
	if err != nil {
		panic("Failed to load test cases: " + err.Error())
	}
	if err := json.Unmarshal(data, &testCases); err != nil {
		panic("Failed to parse test cases: " + err.Error())
	}

	os.Exit(m.Run())
}

func TestAllCasesWordsToNumeral(t *testing.T) {
	for _, tc := range testCases {
		got, err := testConverter.WordsToArabicNumeral(tc.Words)
		if err != nil {
			t.Errorf("[%d] %s: unexpected error: %v", tc.ID, tc.Description, err)
			continue
		}
		if got != tc.Arabic {
			t.Errorf("[%d] %s\n  Input: %s\n  Expected: %s\n  Actual: %s",
				tc.ID, tc.Description, tc.Words, tc.Arabic, got)
		}

		got, err = testConverter.WordsToKhmerNumeral(tc.Words)
		if err != nil {
			t.Errorf("[%d] %s: unexpected error: %v", tc.ID, tc.Description, err)
			continue
		}
		if got != tc.Khmer {
			t.Errorf("[%d] %s\n  Input: %s\n  Expected: %s\n  Actual: %s",
				tc.ID, tc.Description, tc.Words, tc.Khmer, got)
		}
	}
}

func TestAllCasesNumeralToWords(t *testing.T) {
	for _, tc := range testCases {
		for _, numeral := range []string{tc.Arabic, tc.Khmer} {
			got, err := testConverter.NumeralToWords(numeral)
			if err != nil {
				t.Errorf("[%d] %s: unexpected error: %v", tc.ID, tc.Description, err)
				continue
			}
			if got != tc.Words {
				t.Errorf("[%d] %s\n  Input: %s\n  Expected: %s\n  Actual: %s",
					tc.ID, tc.Description, numeral, tc.Words, got)
			}
		}
	}
}

func TestRoundTripIntegers(t *testing.T) {
	t.Parallel()

	values := []int64{0, 1, 9, 10, 11, 19, 20, 99, 100, 101, 110, 999, 1000, 1001,
		9999, 10000, 10001, 99999, 100000, 100001, 999999, 1000000, 1000001,
		10000000, 99999999, 100000000, 999999999}
	for p := int64(10); p <= 1_000_000_000; p *= 10 {
		values = append(values, p-1, p, p+1)
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		values = append(values, rng.Int63n(1_000_000_000))
	}

	for _, n := range values {
		s := strconv.FormatInt(n, 10)
		words, err := testConverter.NumeralToWords(s)
		require.NoError(t, err, s)
		back, err := testConverter.WordsToArabicNumeral(words)
		require.NoError(t, err, "%s -> %s", s, words)
		require.Equal(t, s, back, "round trip via %s", words)
	}
}

func TestRoundTripLargeIntegers(t *testing.T) {
	t.Parallel()

	for _, n := range []int64{1_000_000_000, 12_345_678_901, 500_000_000_000, MaxInteger} {
		s := strconv.FormatInt(n, 10)
		words, err := testConverter.NumeralToWords(s)
		require.NoError(t, err)
		back, err := testConverter.WordsToArabicNumeral(words)
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}
}

func TestScaleGrouping(t *testing.T) {
	got, err := NumeralToWords("150")
	require.NoError(t, err)
	assert.Equal(t, "មួយរយហាសិប", got)
}

func TestDecimalLeadingZero(t *testing.T) {
	got, err := WordsToArabicNumeral("បីចុចសូន្យប្រាំ")
	require.NoError(t, err)
	assert.Equal(t, "3.05", got)
}

func TestNumeralToWordsMultiple(t *testing.T) {
	got, err := NumeralToWords("500 20000")
	require.NoError(t, err)
	assert.Equal(t, "ប្រាំរយ ពីរម៉ឺន", got)

	got, err = NumeralToWords("  1000\t3.5  ")
	require.NoError(t, err)
	assert.Equal(t, "មួយពាន់ បីចុចប្រាំ", got)
}

func TestNumeralToWordsFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "leading zeros", input: "007", want: "ប្រាំពីរ"},
		{name: "missing integer part", input: ".5", want: "សូន្យចុចប្រាំ"},
		{name: "trailing fraction zero", input: "2.50", want: "ពីរចុចប្រាំសូន្យ"},
		{name: "khmer glyphs", input: "១៥០", want: "មួយរយហាសិប"},
		{name: "mixed glyphs", input: "1៥", want: "ដប់ប្រាំ"},
		{name: "thousand millions", input: "2000000000", want: "ពីរពាន់លាន"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := testConverter.NumeralToWords(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumeralToWordsInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		token string
		cause error
	}{
		{name: "letters", input: "12x", token: "12x"},
		{name: "negative", input: "-5", token: "-5"},
		{name: "plus sign", input: "+5", token: "+5"},
		{name: "exponent", input: "1e5", token: "1e5"},
		{name: "two points", input: "1.2.3", token: "1.2.3"},
		{name: "bare point", input: ".", token: "."},
		{name: "trailing point", input: "3.", token: "3."},
		{name: "second token bad", input: "500 abc", token: "abc"},
		{name: "above max", input: "1000000000000", token: "1000000000000", cause: ErrOutOfRange},
		{name: "beyond int64", input: "99999999999999999999", token: "99999999999999999999", cause: ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := testConverter.NumeralToWords(tt.input)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.ErrorIs(t, err, ErrInvalidNumberFormat)

			var nfe *InvalidNumberFormatError
			require.True(t, errors.As(err, &nfe))
			assert.Equal(t, tt.token, nfe.Token)
			assert.Contains(t, err.Error(), tt.token)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}
}

func TestWordsToNumeralMultipleExpressions(t *testing.T) {
	got, err := WordsToArabicNumeral("ប្រាំរយ ពីរម៉ឺន")
	require.NoError(t, err)
	assert.Equal(t, "500 20000", got)

	got, err = WordsToKhmerNumeral("ប្រាំរយ ពីរម៉ឺន")
	require.NoError(t, err)
	assert.Equal(t, "៥០០ ២០០០០", got)
}

func TestWordsToNumeralExpressionFailure(t *testing.T) {
	got, err := WordsToArabicNumeral("ប្រាំរយ xyz")
	require.Error(t, err)
	assert.Empty(t, got)

	var exprErr *ExpressionError
	require.True(t, errors.As(err, &exprErr))
	assert.Equal(t, 1, exprErr.Index)
	assert.Equal(t, "xyz", exprErr.Expression)
	assert.ErrorIs(t, err, ErrSegmentation)
}

func TestWordsToNumeralSegmentationError(t *testing.T) {
	_, err := WordsToArabicNumeral("xyz")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSegmentation)

	var segErr *SegmentationError
	require.True(t, errors.As(err, &segErr))
	assert.Equal(t, "xyz", segErr.Residue)
}

func TestWordsToNumeralGrammarErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty fraction", input: "បីចុច"},
		{name: "second decimal point", input: "បីចុចប្រាំចុចមួយ"},
		{name: "scale after point", input: "បីចុចប្រាំរយ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := testConverter.WordsToArabicNumeral(tt.input)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.ErrorIs(t, err, ErrGrammar)

			var gErr *GrammarError
			assert.True(t, errors.As(err, &gErr))
		})
	}
}

func TestWordsToNumeralTolerance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lone scale word", input: "រយ", want: "0"},
		{name: "leading scale word", input: "ពាន់មួយ", want: "1"},
		{name: "repeated scale", input: "ពីររយរយ", want: "200"},
		{name: "empty integer part", input: "ចុចប្រាំ", want: "0.5"},
		{name: "tens in fraction", input: "មួយចុចម្ភៃ", want: "1.20"},
		{name: "tens plus digit in fraction", input: "បីចុចម្ភៃប្រាំ", want: "3.25"},
		{name: "ten plus digit in fraction", input: "បីចុចដប់ពីរ", want: "3.12"},
		{name: "tens plus digit without integer part", input: "ចុចម្ភៃប្រាំ", want: "0.25"},
		{name: "tens plus zero in fraction", input: "មួយចុចម្ភៃសូន្យ", want: "1.200"},
		{name: "tens group after leading zero", input: "មួយចុចសូន្យសាមសិបបី", want: "1.033"},
		{name: "zero width space ignored", input: "មួយ\u200bរយ", want: "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := testConverter.WordsToArabicNumeral(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := WordsToArabicNumeral(in)
		assert.ErrorIs(t, err, ErrEmptyInput)

		_, err = NumeralToWords(in)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}

	_, err := WordsToArabicNumeral("\u200b")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseNumeralSystem(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]NumeralSystem{
		"arabic": Arabic, "English": Arabic, " khmer ": Khmer,
	} {
		got, err := ParseNumeralSystem(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseNumeralSystem("roman")
	assert.Error(t, err)
	assert.Equal(t, "khmer", Khmer.String())
}

func TestConverterConcurrentUse(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for _, tc := range testCases {
				got, err := testConverter.WordsToArabicNumeral(tc.Words)
				if err != nil || got != tc.Arabic {
					t.Errorf("[%d] got %q, %v", tc.ID, got, err)
				}
			}
		}()
	}
	for g := 0; g < 8; g++ {
		<-done
	}
}
