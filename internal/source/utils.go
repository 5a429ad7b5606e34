package source

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrBinaryContent is returned by Load for files that contain NUL bytes
// outside of a UTF-16 encoding.
var ErrBinaryContent = errors.New("binary content")

func hasUTF8BOM(content []byte) bool {
	return bytes.HasPrefix(content, utf8BOM)
}

func hasUTF16BOM(content []byte) bool {
	return len(content) >= 2 &&
		((content[0] == 0xFF && content[1] == 0xFE) || (content[0] == 0xFE && content[1] == 0xFF))
}

// decodeContent приводит сырые байты файла к UTF-8.
// UTF-8 возвращается как есть (BOM сохраняется, чтобы смещения совпадали с диском),
// UTF-16 с BOM перекодируется и помечается FileTranscoded.
func decodeContent(raw []byte) ([]byte, FileFlags, error) {
	switch {
	case hasUTF8BOM(raw):
		return raw, FileHadBOM, nil
	case hasUTF16BOM(raw):
		// BOMOverride выбирает порядок байт по BOM и съедает его
		dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		out, _, err := transform.Bytes(dec, raw)
		if err != nil {
			return nil, 0, fmt.Errorf("utf-16: %w", err)
		}
		// BOM сохраняем в UTF-8 форме, чтобы no-bom видел его
		return append(append([]byte(nil), utf8BOM...), out...), FileHadBOM | FileTranscoded, nil
	case bytes.IndexByte(raw, 0) >= 0:
		return nil, 0, ErrBinaryContent
	}
	return raw, 0, nil
}

func hasCRLF(content []byte) bool {
	return bytes.Contains(content, []byte("\r\n"))
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- длина проверена в Add
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// бинпоиск: количество '\n' строго до off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := lo // 0-based
	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - startOff + 1} // #nosec G115
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
