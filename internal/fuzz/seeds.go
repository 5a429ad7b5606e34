package fuzz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
	maxFuzzInput = 16 << 10
)

var languageSeeds = []string{
	"",
	"let a = null;\n",
	"class C extends B { constructor() { super(); if (x) { super(); } } }",
	"for (let i = 0; i < xs.length; i++) { f(xs[i]); }",
	"const v = <string>x; const w = y as number; z!.k;",
	"import {a,b} from 'm';\nimport  * as ns from \"n\";",
	"try {\n} catch (e) {\n} finally {}\nif (a) {\n} else {\n}",
	"`a ${b + `c ${d}`} e`; /re[/]gex/g.test(s); a / b / c;",
	"o[\"key\"]; o?.[\"k\"]; new String(\"s\"); i++ + ++j;",
	"f(true, /*flag*/ false, null, undefined);\nDebug.assert(x, `msg ${y}`);",
	"x = a\n++b\nreturn\n(c)",
	"for (const k in [1, 2]) {}\nfor (x of y) {}",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addFixtureSeeds(f)
}

// addFixtureSeeds adds every .ts/.js member of the testkit archives.
func addFixtureSeeds(f *testing.F) {
	paths, err := filepath.Glob(filepath.Join("..", "testkit", "testdata", "*.txtar"))
	if err != nil {
		return
	}
	for _, path := range paths {
		// #nosec G304 -- path comes from repository testdata glob
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		for _, file := range txtar.Parse(data).Files {
			if strings.HasSuffix(file.Name, ".ts") || strings.HasSuffix(file.Name, ".js") {
				f.Add(clampSeed(file.Data))
			}
		}
	}
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
