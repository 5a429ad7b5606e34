package checker

import (
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/types"
)

// cookString снимает кавычки и раскрывает escape-последовательности JS.
func cookString(raw string) string {
	if len(raw) >= 2 {
		raw = raw[1 : len(raw)-1]
	}
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ch != '\\' || i+1 >= len(raw) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch esc := raw[i]; esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\r':
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		case '\n':
			// продолжение строки
		case 'x':
			if r, ok := parseHex(raw, i+1, i+3); ok {
				b.WriteRune(r)
				i += 2
				continue
			}
			b.WriteByte(esc)
		case 'u':
			if i+1 < len(raw) && raw[i+1] == '{' {
				end := strings.IndexByte(raw[i:], '}')
				if r, ok := parseHex(raw, i+2, i+end); end > 0 && ok {
					b.WriteRune(r)
					i += end
					continue
				}
			} else if r, ok := parseHex(raw, i+1, i+5); ok {
				b.WriteRune(r)
				i += 4
				continue
			}
			b.WriteByte(esc)
		default:
			r, size := utf8.DecodeRuneInString(raw[i:])
			b.WriteRune(r)
			i += size - 1
		}
	}
	return b.String()
}

func parseHex(s string, from, to int) (rune, bool) {
	if from >= to || to > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[from:to], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true // #nosec G115 -- не больше 32 бит
}

// numberText приводит числовой литерал к каноническому виду Number#toString.
func numberText(raw string) (string, bool) {
	raw = strings.ReplaceAll(raw, "_", "")
	lower := strings.ToLower(raw)
	base := 0
	switch {
	case strings.HasPrefix(lower, "0x"):
		base = 16
	case strings.HasPrefix(lower, "0o"):
		base = 8
	case strings.HasPrefix(lower, "0b"):
		base = 2
	case len(raw) > 1 && raw[0] == '0' && isDigits(raw[1:]) && !strings.ContainsAny(raw, "89"):
		// устаревшая восьмеричная запись 0777
		v, ok := new(big.Int).SetString(raw[1:], 8)
		if !ok {
			return "", false
		}
		f, _ := new(big.Float).SetInt(v).Float64()
		return types.FormatNumber(f), true
	}
	if base != 0 {
		v, ok := new(big.Int).SetString(raw[2:], base)
		if !ok {
			return "", false
		}
		f, _ := new(big.Float).SetInt(v).Float64()
		return types.FormatNumber(f), true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	return types.FormatNumber(f), true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// bigintText: 0x10n -> 16n
func bigintText(raw string) (string, bool) {
	raw = strings.TrimSuffix(strings.ReplaceAll(raw, "_", ""), "n")
	v, ok := new(big.Int).SetString(raw, 0)
	if !ok {
		return "", false
	}
	return v.String() + "n", true
}
