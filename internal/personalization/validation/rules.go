package validation

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// RuleKind discriminates the rule variants.
type RuleKind string

const (
	KindRequired RuleKind = "required"
	KindLength   RuleKind = "length"
	KindRange    RuleKind = "range"
)

// Rule is one declarative constraint. Min/Max are lengths for KindLength and values for KindRange;
// either bound may be absent.
type Rule struct {
	Kind RuleKind `yaml:"kind"`
	Min  *float64 `yaml:"min,omitempty"`
	Max  *float64 `yaml:"max,omitempty"`
}

func Required() Rule { return Rule{Kind: KindRequired} }

func Length(min, max *int) Rule {
	return Rule{Kind: KindLength, Min: intBound(min), Max: intBound(max)}
}

func Range(min, max *float64) Rule {
	return Rule{Kind: KindRange, Min: min, Max: max}
}

// FieldRules is the rule list for a single field.
type FieldRules struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
	Rules []Rule `yaml:"rules"`
}

func (f FieldRules) IsRequired() bool {
	for _, r := range f.Rules {
		if r.Kind == KindRequired {
			return true
		}
	}
	return false
}

func (f FieldRules) label() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// SectionRules keeps field order as declared so error reporting is deterministic.
type SectionRules struct {
	Name   string       `yaml:"name"`
	Fields []FieldRules `yaml:"fields"`
}

func (s SectionRules) Field(name string) (FieldRules, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldRules{}, false
}

type RuleSet struct {
	Version  int            `yaml:"version"`
	Sections []SectionRules `yaml:"sections"`
}

func (rs *RuleSet) Section(name string) (SectionRules, bool) {
	if rs == nil {
		return SectionRules{}, false
	}
	for _, s := range rs.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return SectionRules{}, false
}

// ParseRuleSet decodes and checks a YAML rule document.
func ParseRuleSet(raw []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(raw, &rs); err != nil {
		return nil, fmt.Errorf("parse rule set: %w", err)
	}
	if rs.Version <= 0 {
		return nil, fmt.Errorf("rule set: missing version")
	}
	for _, s := range rs.Sections {
		for _, f := range s.Fields {
			for _, r := range f.Rules {
				switch r.Kind {
				case KindRequired, KindLength, KindRange:
				default:
					return nil, fmt.Errorf("rule set: %s.%s: unknown rule kind %q", s.Name, f.Name, r.Kind)
				}
				if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
					return nil, fmt.Errorf("rule set: %s.%s: min %v > max %v", s.Name, f.Name, *r.Min, *r.Max)
				}
			}
		}
	}
	return &rs, nil
}

var defaultRules = mustParse(defaultRulesYAML)

// DefaultRules returns the built-in preference rule set.
func DefaultRules() *RuleSet { return defaultRules }

func mustParse(raw []byte) *RuleSet {
	rs, err := ParseRuleSet(raw)
	if err != nil {
		panic(err)
	}
	return rs
}

func intBound(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
