package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// sniffLen is how many bytes the detector examines.
const sniffLen = 4096

// NewUTF8Reader wraps r so its contents come out as UTF-8, whatever
// spreadsheet tool produced the file. A UTF-8 BOM is stripped, UTF-16 is
// decoded via its BOM, already-valid UTF-8 passes through, and anything else
// goes through charset detection with a Windows-1252 fallback.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(head, utf8BOM):
		_, _ = br.Discard(len(utf8BOM))
		return br, nil
	case bytes.HasPrefix(head, utf16LEBOM):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	case bytes.HasPrefix(head, utf16BEBOM):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if t := legacyTransformer(head); t != nil {
		return transform.NewReader(br, t), nil
	}

	return br, nil
}

// legacyTransformer picks a decoder for content that failed UTF-8
// validation. Returns nil when the detector still calls it UTF-8, which
// happens when the sniff window cuts a multibyte rune in half.
func legacyTransformer(head []byte) transform.Transformer {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return nil
		case "ISO-8859-9":
			return charmap.ISO8859_9.NewDecoder()
		}
	}

	// Windows-1252 maps every byte, so decoding cannot fail outright.
	return charmap.Windows1252.NewDecoder()
}
