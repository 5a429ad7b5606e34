package config

import (
	"crypto/sha256"
	"sort"
	"strconv"
	"strings"
)

// Digest is a 256-bit content hash, compatible with source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by deps: H(content || dep1 || dep2 ...).
// Callers keep deps in a deterministic order.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Digest hashes everything in c that affects lint output. Rule sections are
// written in name order so equal configs hash equally.
func (c *Config) Digest() Digest {
	var b strings.Builder
	b.WriteString("semantic=")
	b.WriteString(strconv.FormatBool(c.Semantic))
	b.WriteByte('\n')
	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rc := c.Rules[name]
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strings.ToLower(strings.TrimSpace(rc.Severity)))
		for _, o := range rc.Options {
			b.WriteByte('\x00')
			b.WriteString(o)
		}
		b.WriteByte('\n')
	}
	return sha256.Sum256([]byte(b.String()))
}
