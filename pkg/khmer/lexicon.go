package khmer

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	khmerStart = 0x1780
	khmerEnd   = 0x17FF
	khmerRange = khmerEnd - khmerStart + 1 // 128
)

// Category tells the resolver how a morpheme contributes to a value.
type Category uint8

const (
	CategoryDigit Category = iota + 1
	CategoryTens
	CategoryScale
	CategoryDecimalPoint
)

func (c Category) String() string {
	switch c {
	case CategoryDigit:
		return "digit"
	case CategoryTens:
		return "tens"
	case CategoryScale:
		return "scale"
	case CategoryDecimalPoint:
		return "decimal_point"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// Morpheme is a single Khmer number word with its weight.
// Scale weights are multipliers, digit and tens weights are terminal values.
type Morpheme struct {
	Text     string
	Category Category
	Weight   int64
}

// Scale weights
const (
	Hundred         int64 = 100
	Thousand        int64 = 1_000
	TenThousand     int64 = 10_000
	HundredThousand int64 = 100_000
	Million         int64 = 1_000_000
)

// builtinMorphemes is the standard Khmer number vocabulary
var builtinMorphemes = []Morpheme{
	{"សូន្យ", CategoryDigit, 0},
	{"មួយ", CategoryDigit, 1},
	{"ពីរ", CategoryDigit, 2},
	{"បី", CategoryDigit, 3},
	{"បួន", CategoryDigit, 4},
	{"ប្រាំ", CategoryDigit, 5},
	{"ប្រាំមួយ", CategoryDigit, 6},
	{"ប្រាំពីរ", CategoryDigit, 7},
	{"ប្រាំបី", CategoryDigit, 8},
	{"ប្រាំបួន", CategoryDigit, 9},

	{"ដប់", CategoryTens, 10},
	{"ម្ភៃ", CategoryTens, 20},
	{"សាមសិប", CategoryTens, 30},
	{"សែសិប", CategoryTens, 40},
	{"ហាសិប", CategoryTens, 50},
	{"ហុកសិប", CategoryTens, 60},
	{"ចិតសិប", CategoryTens, 70},
	{"ប៉ែតសិប", CategoryTens, 80},
	{"កៅសិប", CategoryTens, 90},

	{"រយ", CategoryScale, Hundred},
	{"ពាន់", CategoryScale, Thousand},
	{"ម៉ឺន", CategoryScale, TenThousand},
	{"សែន", CategoryScale, HundredThousand},
	{"លាន", CategoryScale, Million},

	{"ចុច", CategoryDecimalPoint, 0},
}

// trieNode is one rune step of a morpheme spelling. morpheme is set on the
// node that ends a complete word.
type trieNode struct {
	khmerChildren [khmerRange]*trieNode // indexed by r - khmerStart
	otherChildren map[rune]*trieNode    // digits in alias spellings, anything outside the block
	morpheme      *Morpheme
}

// getChild follows r, or returns nil when no spelling continues with it.
func (n *trieNode) getChild(r rune) *trieNode {
	if r >= khmerStart && r <= khmerEnd {
		return n.khmerChildren[r-khmerStart]
	}
	if n.otherChildren == nil {
		return nil
	}
	return n.otherChildren[r]
}

// getOrCreateChild extends the spelling path with r while building.
func (n *trieNode) getOrCreateChild(r rune) *trieNode {
	if r >= khmerStart && r <= khmerEnd {
		idx := r - khmerStart
		if n.khmerChildren[idx] == nil {
			n.khmerChildren[idx] = &trieNode{}
		}
		return n.khmerChildren[idx]
	}
	if n.otherChildren == nil {
		n.otherChildren = make(map[rune]*trieNode)
	}
	child, exists := n.otherChildren[r]
	if !exists {
		child = &trieNode{}
		n.otherChildren[r] = child
	}
	return child
}

// Lexicon holds the number vocabulary. It is immutable after construction
// and safe for concurrent use.
type Lexicon struct {
	entries       map[string]Morpheme
	ordered       []Morpheme
	digitWords    [10]string
	tensWords     [10]string
	scaleWords    map[int64]string
	decimalPoint  string
	maxWordLength int
	trie          *trieNode
}

var defaultLexicon = NewLexicon()

// DefaultLexicon returns the shared built-in lexicon.
func DefaultLexicon() *Lexicon {
	return defaultLexicon
}

// NewLexicon builds a lexicon from the built-in vocabulary.
func NewLexicon() *Lexicon {
	lex, err := NewLexiconFrom(builtinMorphemes)
	if err != nil {
		panic("khmer: invalid built-in lexicon: " + err.Error())
	}
	return lex
}

// NewLexiconFrom builds a lexicon from the given entries. The vocabulary must
// name every digit 0-9, every tens value 10-90, the five scales and exactly one
// decimal point, with no duplicate spellings.
func NewLexiconFrom(morphemes []Morpheme) (*Lexicon, error) {
	lex := &Lexicon{
		entries:    make(map[string]Morpheme, len(morphemes)),
		scaleWords: make(map[int64]string),
		trie:       &trieNode{},
	}

	for _, m := range morphemes {
		m.Text = norm.NFC.String(m.Text)
		if m.Text == "" {
			return nil, fmt.Errorf("empty morpheme for weight %d", m.Weight)
		}
		if _, dup := lex.entries[m.Text]; dup {
			return nil, fmt.Errorf("duplicate morpheme %q", m.Text)
		}
		if err := lex.register(m); err != nil {
			return nil, err
		}
		lex.entries[m.Text] = m
		if n := utf8.RuneCountInString(m.Text); n > lex.maxWordLength {
			lex.maxWordLength = n
		}
	}

	if err := lex.checkComplete(); err != nil {
		return nil, err
	}

	lex.ordered = make([]Morpheme, 0, len(lex.entries))
	for _, m := range lex.entries {
		lex.ordered = append(lex.ordered, m)
	}
	sort.Slice(lex.ordered, func(i, j int) bool {
		li := utf8.RuneCountInString(lex.ordered[i].Text)
		lj := utf8.RuneCountInString(lex.ordered[j].Text)
		if li != lj {
			return li > lj
		}
		return lex.ordered[i].Text < lex.ordered[j].Text
	})

	for i := range lex.ordered {
		lex.insertIntoTrie(&lex.ordered[i])
	}
	return lex, nil
}

func (l *Lexicon) register(m Morpheme) error {
	switch m.Category {
	case CategoryDigit:
		if m.Weight < 0 || m.Weight > 9 {
			return fmt.Errorf("digit %q has weight %d", m.Text, m.Weight)
		}
		if l.digitWords[m.Weight] == "" {
			l.digitWords[m.Weight] = m.Text
		}
	case CategoryTens:
		if m.Weight < 10 || m.Weight > 90 || m.Weight%10 != 0 {
			return fmt.Errorf("tens word %q has weight %d", m.Text, m.Weight)
		}
		if l.tensWords[m.Weight/10] == "" {
			l.tensWords[m.Weight/10] = m.Text
		}
	case CategoryScale:
		if !isScaleWeight(m.Weight) {
			return fmt.Errorf("scale %q has weight %d", m.Text, m.Weight)
		}
		if _, ok := l.scaleWords[m.Weight]; !ok {
			l.scaleWords[m.Weight] = m.Text
		}
	case CategoryDecimalPoint:
		if l.decimalPoint != "" {
			return fmt.Errorf("second decimal point %q", m.Text)
		}
		l.decimalPoint = m.Text
	default:
		return fmt.Errorf("morpheme %q has unknown %s", m.Text, m.Category)
	}
	return nil
}

func (l *Lexicon) checkComplete() error {
	for d, w := range l.digitWords {
		if w == "" {
			return fmt.Errorf("missing word for digit %d", d)
		}
	}
	for t := 1; t <= 9; t++ {
		if l.tensWords[t] == "" {
			return fmt.Errorf("missing word for %d", t*10)
		}
	}
	for _, s := range scaleOrder {
		if _, ok := l.scaleWords[s]; !ok {
			return fmt.Errorf("missing word for scale %d", s)
		}
	}
	if l.decimalPoint == "" {
		return fmt.Errorf("missing decimal point word")
	}
	return nil
}

func isScaleWeight(w int64) bool {
	for _, s := range scaleOrder {
		if w == s {
			return true
		}
	}
	return false
}

// insertIntoTrie marks the node that ends m's spelling.
func (l *Lexicon) insertIntoTrie(m *Morpheme) {
	node := l.trie
	for _, r := range m.Text {
		node = node.getOrCreateChild(r)
	}
	node.morpheme = m
}

// longestMatch walks the trie from runes[start] and returns the longest
// morpheme that is a prefix of runes[start:], with its rune length.
func (l *Lexicon) longestMatch(runes []rune, start int) (Morpheme, int, bool) {
	node := l.trie
	var best *Morpheme
	bestLen := 0
	for i := start; i < len(runes); i++ {
		node = node.getChild(runes[i])
		if node == nil {
			break
		}
		if node.morpheme != nil {
			best = node.morpheme
			bestLen = i - start + 1
		}
	}
	if best == nil {
		return Morpheme{}, 0, false
	}
	return *best, bestLen, true
}

// Lookup returns the morpheme spelled exactly as text.
func (l *Lexicon) Lookup(text string) (Morpheme, bool) {
	m, ok := l.entries[text]
	return m, ok
}

// Contains checks if a word is in the lexicon
func (l *Lexicon) Contains(text string) bool {
	_, ok := l.entries[text]
	return ok
}

// Morphemes returns every morpheme ordered by descending rune length, then
// lexicographically. This is the matching order of the tokenizer.
func (l *Lexicon) Morphemes() []Morpheme {
	out := make([]Morpheme, len(l.ordered))
	copy(out, l.ordered)
	return out
}

// MaxWordLength returns the rune length of the longest morpheme.
func (l *Lexicon) MaxWordLength() int {
	return l.maxWordLength
}

// DigitWord returns the word for a digit 0-9.
func (l *Lexicon) DigitWord(d int) string {
	return l.digitWords[d]
}

// TensWord returns the word for 10, 20, ..., 90.
func (l *Lexicon) TensWord(t int) string {
	return l.tensWords[t/10]
}

// ScaleWord returns the word for a scale weight.
func (l *Lexicon) ScaleWord(weight int64) (string, bool) {
	w, ok := l.scaleWords[weight]
	return w, ok
}

// DecimalPoint returns the decimal point word.
func (l *Lexicon) DecimalPoint() string {
	return l.decimalPoint
}

// ZeroWord returns the word for digit zero.
func (l *Lexicon) ZeroWord() string {
	return l.digitWords[0]
}

// ToKhmerDigits replaces Arabic digits with Khmer digit glyphs.
func ToKhmerDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if IsArabicDigit(r) {
			return khmerDigitZero + (r - '0')
		}
		return r
	}, s)
}

// ToArabicDigits replaces Khmer digit glyphs with Arabic digits.
func ToArabicDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if IsKhmerDigit(r) {
			return '0' + (r - khmerDigitZero)
		}
		return r
	}, s)
}
