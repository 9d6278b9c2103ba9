package batch

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

var builderPool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

// outputBufferSize is the buffered writer size for JSON Lines output.
const outputBufferSize = 256 * 1024

// WriteJSONL writes one JSON object per record:
// {"id":N,"input":"...","output":"..."} or {"id":N,"input":"...","error":"..."}.
func WriteJSONL(w io.Writer, records []Record) error {
	bw := bufio.NewWriterSize(w, outputBufferSize)

	sb := builderPool.Get().(*strings.Builder)
	defer builderPool.Put(sb)

	for i := range records {
		buildJSON(sb, &records[i])
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// buildJSON renders a record without reflection.
func buildJSON(sb *strings.Builder, rec *Record) {
	sb.Reset()
	sb.Grow(len(rec.Input)*2 + len(rec.Output)*2 + 50)

	sb.WriteString(`{"id":`)
	writeInt(sb, rec.ID)
	sb.WriteString(`,"input":"`)
	writeEscapedJSON(sb, rec.Input)
	if rec.Err != nil {
		sb.WriteString(`","error":"`)
		writeEscapedJSON(sb, rec.Err.Error())
	} else {
		sb.WriteString(`","output":"`)
		writeEscapedJSON(sb, rec.Output)
	}
	sb.WriteString(`"}`)
}

func writeInt(sb *strings.Builder, n int) {
	if n == 0 {
		sb.WriteByte('0')
		return
	}
	if n < 0 {
		sb.WriteByte('-')
		n = -n
	}

	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	sb.Write(buf[pos:])
}

// writeEscapedJSON escapes quotes, backslashes and control characters.
// Valid multi-byte UTF-8 passes through; invalid bytes become \ufffd.
func writeEscapedJSON(sb *strings.Builder, s string) {
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				sb.WriteString(`\ufffd`)
			} else {
				sb.WriteString(s[i : i+size])
			}
			i += size
			continue
		}

		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if c < 0x20 {
				sb.WriteString(`\u00`)
				sb.WriteByte("0123456789abcdef"[c>>4])
				sb.WriteByte("0123456789abcdef"[c&0xf])
			} else {
				sb.WriteByte(c)
			}
		}
		i++
	}
}
