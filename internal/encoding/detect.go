// Package encoding normalizes uploaded spreadsheets exported by office
// tools in whatever charset they happen to use.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names reported by Detect.
const (
	UTF8        = "UTF-8"
	UTF16LE     = "UTF-16LE"
	UTF16BE     = "UTF-16BE"
	Windows1252 = "windows-1252"
	ISO88599    = "ISO-8859-9"
)

const sniffLen = 4096

var boms = []struct {
	prefix  []byte
	charset string
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
}

var decoders = map[string]encoding.Encoding{
	UTF16LE:      unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	UTF16BE:      unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	Windows1252:  charmap.Windows1252,
	"ISO-8859-1": charmap.Windows1252,
	ISO88599:     charmap.ISO8859_9,
}

// Detect sniffs the start of r and returns a UTF-8 reader over the whole
// input together with the charset it decided on. A byte order mark wins,
// then valid UTF-8, then a chardet guess; anything else is read as
// Windows-1252.
func Detect(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("sniffing encoding: %w", err)
	}

	for _, bom := range boms {
		if !bytes.HasPrefix(head, bom.prefix) {
			continue
		}

		if bom.charset == UTF8 {
			_, _ = br.Discard(len(bom.prefix))
			return br, UTF8, nil
		}

		return decode(br, bom.charset), bom.charset, nil
	}

	if utf8.Valid(head) {
		return br, UTF8, nil
	}

	if guess, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if guess.Charset == UTF8 {
			return br, UTF8, nil
		}

		if _, ok := decoders[guess.Charset]; ok {
			return decode(br, guess.Charset), guess.Charset, nil
		}
	}

	return decode(br, Windows1252), Windows1252, nil
}

// NewUTF8Reader is Detect without the charset.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	out, _, err := Detect(r)
	return out, err
}

func decode(r io.Reader, charset string) io.Reader {
	return transform.NewReader(r, decoders[charset].NewDecoder())
}
