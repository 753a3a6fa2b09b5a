package libconway

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

type rewriteRule struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Close string `yaml:"close,omitempty"`
}

type rewriteRules struct {
	Suffix   []rewriteRule `yaml:"suffix"`
	Expand   []rewriteRule `yaml:"expand"`
	Truncate []rewriteRule `yaml:"truncate"`
	Reduce   []rewriteRule `yaml:"reduce"`
}

//go:embed rewrite-rules.yaml
var rewriteRulesYAML []byte

var gRewriteRules = mustLoadRewriteRules(rewriteRulesYAML)

func mustLoadRewriteRules(doc []byte) *rewriteRules {
	rules := &rewriteRules{}
	if err := yaml.Unmarshal(doc, rules); err != nil {
		panic(err)
	}
	for _, section := range [][]rewriteRule{rules.Suffix, rules.Expand, rules.Truncate, rules.Reduce} {
		for _, rule := range section {
			if len(rule.From) == 0 {
				panic("rewrite rule with empty 'from'")
			}
		}
	}
	return rules
}

// ExpandAbbreviations rewrites seed aliases (e.g. P4 to C) and operators that are shorthand for others (e.g. o to jj).
func ExpandAbbreviations(s string) string {
	return gRewriteRules.expandAbbreviations(s)
}

// Simplify rewrites a notation string into an equivalent one using the fewest primitive operators.
//
// If useTruncateAlgorithm is set, t is kept since it then runs as a direct vertex truncation.
func Simplify(s string, useTruncateAlgorithm bool) string {
	rules := gRewriteRules
	s = rules.expandAbbreviations(s)
	if !useTruncateAlgorithm {
		for _, rule := range rules.Truncate {
			s = rule.replaceWithClose(s)
		}
	}
	for _, rule := range rules.Reduce {
		s = rule.replaceLeftmostUntilGone(s)
	}
	return s
}

func (rules *rewriteRules) expandAbbreviations(s string) string {
	for _, rule := range rules.Suffix {
		if strings.HasSuffix(s, rule.From) {
			s = s[:len(s)-len(rule.From)] + rule.To
			break
		}
	}
	for _, rule := range rules.Expand {
		s = strings.ReplaceAll(s, rule.From, rule.To)
	}
	return s
}

func (rule *rewriteRule) replaceLeftmostUntilGone(s string) string {
	for {
		idx := strings.Index(s, rule.From)
		if idx < 0 {
			return s
		}
		s = s[:idx] + rule.To + s[idx+len(rule.From):]
	}
}

// replaceWithClose replaces each match with To, then inserts Close after any digits that followed the match.
func (rule *rewriteRule) replaceWithClose(s string) string {
	for {
		idx := strings.Index(s, rule.From)
		if idx < 0 {
			return s
		}
		rest := s[idx+len(rule.From):]
		digits := 0
		for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
			digits++
		}
		s = s[:idx] + rule.To + rest[:digits] + rule.Close + rest[digits:]
	}
}
