package khmer

// Character classification for number text.

const (
	khmerDigitZero = '\u17E0' // ០
	khmerDigitNine = '\u17E9' // ៩
)

// zeroWidthChars are stripped from input before segmentation
var zeroWidthChars = map[rune]bool{
	'\u200B': true, // ZERO WIDTH SPACE
	'\u200C': true, // ZERO WIDTH NON-JOINER
	'\u200D': true, // ZERO WIDTH JOINER
	'\uFEFF': true, // BYTE ORDER MARK
}

// IsArabicDigit checks if character is an ASCII digit
func IsArabicDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsKhmerDigit checks if character is a Khmer digit glyph (U+17E0 - U+17E9)
func IsKhmerDigit(r rune) bool {
	return r >= khmerDigitZero && r <= khmerDigitNine
}

// IsZeroWidth checks if character is an invisible joiner or space
func IsZeroWidth(r rune) bool {
	return zeroWidthChars[r]
}
