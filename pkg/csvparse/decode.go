package csvparse

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type decodeStrategy struct {
	name   string
	decode func([]byte) (string, error)
}

// decodeStrategies is tried in order; the first strategy that accepts the input wins.
// iso-8859-1 maps every byte, so the forced strategy only guards a decoder failure.
var decodeStrategies = []decodeStrategy{
	{"utf-8", decodeUTF8},
	{"latin-1", decodeLatin1},
	{"windows-1252", decodeWindows1252},
	{"iso-8859-1", decodeISO88591},
	{"utf-8-replace", forceUTF8},
}

// decode converts raw export bytes to text and reports which strategy succeeded.
func decode(raw []byte) (string, string) {
	for _, s := range decodeStrategies {
		text, err := s.decode(raw)
		if err == nil {
			return text, s.name
		}
	}
	return forceUTF8Text(raw), "utf-8-replace"
}

func decodeUTF8(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("content is not valid UTF-8")
	}
	return string(raw), nil
}

// decodeLatin1 rejects input carrying C1 control bytes (0x80-0x9F). Real exports never
// contain them as text, while Windows-1252 uses that range for €, curly quotes and
// dashes, so such input belongs to the next strategy.
func decodeLatin1(raw []byte) (string, error) {
	for _, b := range raw {
		if b >= 0x80 && b <= 0x9F {
			return "", fmt.Errorf("C1 control byte 0x%02X", b)
		}
	}
	return decodeWith(charmap.ISO8859_1, raw)
}

// decodeWindows1252 rejects the five byte values Windows-1252 leaves undefined.
func decodeWindows1252(raw []byte) (string, error) {
	for _, b := range raw {
		switch b {
		case 0x81, 0x8D, 0x8F, 0x90, 0x9D:
			return "", fmt.Errorf("byte 0x%02X undefined in windows-1252", b)
		}
	}
	return decodeWith(charmap.Windows1252, raw)
}

// decodeISO88591 accepts any byte, keeping stray C1 bytes as their control characters
// so the accented letters around them survive.
func decodeISO88591(raw []byte) (string, error) {
	return decodeWith(charmap.ISO8859_1, raw)
}

func forceUTF8(raw []byte) (string, error) {
	return forceUTF8Text(raw), nil
}

func forceUTF8Text(raw []byte) string {
	return strings.ToValidUTF8(string(bytes.TrimPrefix(raw, utf8BOM)), "\uFFFD")
}

func decodeWith(enc encoding.Encoding, raw []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode failed: %w", err)
	}
	return string(out), nil
}
