package lint

import (
	"fmt"
	"sort"
)

// Registry holds rules by name. Registration order is the dispatch order.
type Registry struct {
	rules  []Rule
	byName map[string]int
}

// NewRegistry creates a registry with the given rules.
func NewRegistry(rules ...Rule) (*Registry, error) {
	reg := &Registry{byName: make(map[string]int)}
	for _, r := range rules {
		if err := reg.Register(r); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Register adds a rule; names are unique.
func (reg *Registry) Register(r Rule) error {
	name := r.Meta().Name
	if name == "" {
		return fmt.Errorf("lint: rule without name")
	}
	if _, dup := reg.byName[name]; dup {
		return fmt.Errorf("lint: rule %q registered twice", name)
	}
	reg.byName[name] = len(reg.rules)
	reg.rules = append(reg.rules, r)
	return nil
}

// Lookup returns the rule with the given name.
func (reg *Registry) Lookup(name string) (Rule, bool) {
	idx, ok := reg.byName[name]
	if !ok {
		return nil, false
	}
	return reg.rules[idx], true
}

// Rules returns the rules in registration order.
func (reg *Registry) Rules() []Rule {
	return append([]Rule(nil), reg.rules...)
}

// Names returns rule names sorted alphabetically.
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.rules))
	for _, r := range reg.rules {
		names = append(names, r.Meta().Name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered rules.
func (reg *Registry) Len() int {
	return len(reg.rules)
}
