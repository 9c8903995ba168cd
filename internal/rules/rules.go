package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Rule is an immutable detection rule: a positive pattern plus allowlist
// patterns that suppress the match when they hit the same line.
type Rule struct {
	name      string
	pattern   *regexp.Regexp
	allowlist []*regexp.Regexp
}

// Spec is the uncompiled form of a Rule, as written in code or config.
type Spec struct {
	Name      string   `yaml:"name"`
	Pattern   string   `yaml:"pattern"`
	Allowlist []string `yaml:"allowlist"`
}

// New compiles a Spec into a Rule.
func New(s Spec) (Rule, error) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return Rule{}, errors.New("rule name is empty")
	}
	if s.Pattern == "" {
		return Rule{}, fmt.Errorf("rule %s: pattern is empty", name)
	}
	re, err := regexp.Compile(s.Pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %s: pattern: %w", name, err)
	}
	r := Rule{name: name, pattern: re}
	for i, a := range s.Allowlist {
		are, err := regexp.Compile(a)
		if err != nil {
			return Rule{}, fmt.Errorf("rule %s: allowlist[%d]: %w", name, i, err)
		}
		r.allowlist = append(r.allowlist, are)
	}
	return r, nil
}

// MustNew is like New but panics on error. It is meant for rules defined in
// code, where a bad pattern is a programming error.
func MustNew(s Spec) Rule {
	r, err := New(s)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Rule) Name() string { return r.name }

// Pattern returns the source text of the positive pattern.
func (r Rule) Pattern() string { return r.pattern.String() }

// Allowlist returns the source text of each allowlist pattern.
func (r Rule) Allowlist() []string {
	out := make([]string, len(r.allowlist))
	for i, a := range r.allowlist {
		out[i] = a.String()
	}
	return out
}

// Matches reports whether the positive pattern matches anywhere in line and
// no allowlist pattern does. Allowlist always wins.
func (r Rule) Matches(line string) bool {
	if r.pattern == nil || !r.pattern.MatchString(line) {
		return false
	}
	return !r.Suppressed(line)
}

// Suppressed reports whether any allowlist pattern matches line.
func (r Rule) Suppressed(line string) bool {
	for _, a := range r.allowlist {
		if a.MatchString(line) {
			return true
		}
	}
	return false
}

// RuleSet is a fixed, ordered sequence of rules. Order decides report order
// when several rules hit the same line.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet builds a RuleSet, rejecting duplicate names.
func NewRuleSet(rs ...Rule) (RuleSet, error) {
	seen := make(map[string]bool, len(rs))
	out := make([]Rule, 0, len(rs))
	for _, r := range rs {
		if r.pattern == nil {
			return RuleSet{}, errors.New("uncompiled rule in rule set")
		}
		if seen[r.name] {
			return RuleSet{}, fmt.Errorf("duplicate rule name %q", r.name)
		}
		seen[r.name] = true
		out = append(out, r)
	}
	return RuleSet{rules: out}, nil
}

// Rules returns a copy of the rules in order.
func (s RuleSet) Rules() []Rule {
	return append([]Rule(nil), s.rules...)
}

// Names returns the rule names in order.
func (s RuleSet) Names() []string {
	out := make([]string, len(s.rules))
	for i, r := range s.rules {
		out[i] = r.name
	}
	return out
}

// MatchLine returns the names of rules that match line, in rule order.
func (s RuleSet) MatchLine(line string) []string {
	var out []string
	for _, r := range s.rules {
		if r.Matches(line) {
			out = append(out, r.name)
		}
	}
	return out
}

// Compile builds the active rule set: the built-ins minus any names in
// disable, followed by the extra specs in the order given. Unknown names in
// disable are an error so typos do not silently keep a rule running.
func Compile(extra []Spec, disable []string) (RuleSet, error) {
	known := make(map[string]bool, len(builtin))
	for _, r := range builtin {
		known[r.name] = true
	}
	drop := map[string]bool{}
	for _, d := range disable {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if !known[d] {
			return RuleSet{}, fmt.Errorf("disable_rules: unknown built-in rule %q", d)
		}
		drop[d] = true
	}
	var active []Rule
	for _, r := range builtin {
		if !drop[r.name] {
			active = append(active, r)
		}
	}
	for _, s := range extra {
		r, err := New(s)
		if err != nil {
			return RuleSet{}, err
		}
		active = append(active, r)
	}
	return NewRuleSet(active...)
}
