// Package config loads the project configuration: which files belong to the
// project, whether the semantic model is built and how rules are set up.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
)

// File names searched for, in order of preference within one directory.
var FileNames = []string{"tsrules.toml", "tsrules.yaml", "tsrules.yml"}

// DefaultInclude lists the extensions linted when the config names none.
var DefaultInclude = []string{".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs"}

var (
	// ErrNotFound is returned by Find when no config file exists up the tree.
	ErrNotFound = errors.New("config not found")
	// ErrUnknownRule is wrapped when a [rules.<name>] section names no rule.
	ErrUnknownRule = errors.New("unknown rule")
)

const severityOff = "off"

// Config is the effective configuration of a run.
type Config struct {
	// Path is the config file; empty when defaults are in use.
	Path string
	// Root is the project root: [project].root resolved against the config
	// directory, or the target directory without a config.
	Root     string
	Include  []string
	Semantic bool
	Rules    map[string]RuleConfig
}

// RuleConfig is one [rules.<name>] section.
type RuleConfig struct {
	Severity string   `toml:"severity" yaml:"severity"`
	Options  []string `toml:"options" yaml:"options"`
}

// Off reports whether the rule is switched off.
func (r RuleConfig) Off() bool {
	return strings.EqualFold(strings.TrimSpace(r.Severity), severityOff)
}

type fileConfig struct {
	Project struct {
		Root    string   `toml:"root" yaml:"root"`
		Include []string `toml:"include" yaml:"include"`
	} `toml:"project" yaml:"project"`
	Semantic struct {
		Enabled *bool `toml:"enabled" yaml:"enabled"`
	} `toml:"semantic" yaml:"semantic"`
	Rules map[string]RuleConfig `toml:"rules" yaml:"rules"`
}

// Default returns the configuration used when no file is found.
func Default(dir string) *Config {
	return &Config{
		Root:     dir,
		Include:  append([]string(nil), DefaultInclude...),
		Semantic: true,
		Rules:    map[string]RuleConfig{},
	}
}

func (fc *fileConfig) resolve(path string) (*Config, error) {
	dir := filepath.Dir(path)
	cfg := Default(dir)
	cfg.Path = path
	if root := strings.TrimSpace(fc.Project.Root); root != "" {
		if filepath.IsAbs(root) {
			return nil, fmt.Errorf("%s: invalid [project].root %q: must be relative", path, root)
		}
		cfg.Root = filepath.Join(dir, filepath.Clean(filepath.FromSlash(root)))
	}
	if len(fc.Project.Include) > 0 {
		cfg.Include = cfg.Include[:0]
		for _, ext := range fc.Project.Include {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			cfg.Include = append(cfg.Include, ext)
		}
	}
	if fc.Semantic.Enabled != nil {
		cfg.Semantic = *fc.Semantic.Enabled
	}
	for name, rc := range fc.Rules {
		if rc.Severity != "" && !rc.Off() {
			if _, ok := diag.ParseSeverity(rc.Severity); !ok {
				return nil, fmt.Errorf("%s: rules.%s: invalid severity %q", path, name, rc.Severity)
			}
		}
		cfg.Rules[name] = rc
	}
	return cfg, nil
}

// Includes reports whether path has one of the included extensions.
func (c *Config) Includes(path string) bool {
	ext := filepath.Ext(path)
	if strings.HasSuffix(path, ".d.ts") {
		return false
	}
	for _, want := range c.Include {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// Enable turns the rules of reg into the run list. Rules keep their default
// severity unless configured; "off" drops them. Naming a rule that reg does
// not know is an error.
func (c *Config) Enable(reg *lint.Registry) ([]lint.Enabled, error) {
	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := reg.Lookup(name); !ok {
			return nil, fmt.Errorf("%s: %w %q", c.source(), ErrUnknownRule, name)
		}
	}
	out := make([]lint.Enabled, 0, reg.Len())
	for _, r := range reg.Rules() {
		meta := r.Meta()
		en := lint.Enabled{Rule: r, Severity: meta.Severity}
		rc, ok := c.Rules[meta.Name]
		if ok {
			if rc.Off() {
				continue
			}
			if sev, ok := diag.ParseSeverity(rc.Severity); ok {
				en.Severity = sev
			}
			if err := checkOptions(meta, rc.Options); err != nil {
				return nil, fmt.Errorf("%s: rules.%s: %w", c.source(), meta.Name, err)
			}
			en.Options = rc.Options
		}
		out = append(out, en)
	}
	return out, nil
}

// checkOptions validates options of rules that enumerate their values.
func checkOptions(meta lint.Meta, opts []string) error {
	if len(meta.Options) == 0 {
		return nil
	}
	for _, o := range opts {
		known := false
		for _, want := range meta.Options {
			if o == want {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown option %q (accepted: %s)", o, strings.Join(meta.Options, ", "))
		}
	}
	return nil
}

func (c *Config) source() string {
	if c.Path == "" {
		return "config"
	}
	return c.Path
}
