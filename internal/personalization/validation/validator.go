// Package validation checks learner preference values against declarative rules.
//
// Validation outcomes are data, not errors: an invalid field is an expected, frequent result of
// interactive editing, so every function here returns a result value and never an error.
package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
)

type Result struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

type SectionResult struct {
	IsValid bool                `json:"is_valid"`
	Errors  map[string][]string `json:"errors"`
}

type ProfileResult struct {
	IsValid bool                           `json:"is_valid"`
	Errors  map[string]map[string][]string `json:"errors"`
}

// ValidateField checks value against rules. A required-and-empty value yields exactly one error;
// otherwise every length and range rule is evaluated and all violations are reported.
// An empty value on an optional field is valid.
func ValidateField(field string, value any, rules FieldRules) Result {
	if rules.Name == "" {
		rules.Name = field
	}
	if IsEmpty(value) {
		if rules.IsRequired() {
			return Result{IsValid: false, Errors: []string{rules.label() + " is required"}}
		}
		return Result{IsValid: true, Errors: []string{}}
	}

	errs := []string{}
	for _, r := range rules.Rules {
		switch r.Kind {
		case KindLength:
			errs = append(errs, checkLength(rules.label(), value, r)...)
		case KindRange:
			errs = append(errs, checkRange(rules.label(), value, r)...)
		}
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// Validator binds the validation functions to a rule set.
type Validator struct {
	rules *RuleSet
}

func New(rules *RuleSet) *Validator {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Validator{rules: rules}
}

func (v *Validator) Rules() *RuleSet { return v.rules }

// FieldRules looks up the rules of section.field; the boolean is false when none are declared.
func (v *Validator) FieldRules(section, field string) (FieldRules, bool) {
	s, ok := v.rules.Section(section)
	if !ok {
		return FieldRules{Name: field}, false
	}
	f, ok := s.Field(field)
	if !ok {
		return FieldRules{Name: field}, false
	}
	return f, true
}

// ValidateField validates one field of a section. Fields without rules pass through as valid.
func (v *Validator) ValidateField(section, field string, value any) Result {
	rules, _ := v.FieldRules(section, field)
	return ValidateField(field, value, rules)
}

// ValidateSection checks every ruled field of section; values for unruled fields are ignored.
func (v *Validator) ValidateSection(section string, values map[string]any) SectionResult {
	out := SectionResult{IsValid: true, Errors: map[string][]string{}}
	s, ok := v.rules.Section(section)
	if !ok {
		return out
	}
	for _, f := range s.Fields {
		res := ValidateField(f.Name, values[f.Name], f)
		if !res.IsValid {
			out.IsValid = false
			out.Errors[f.Name] = res.Errors
		}
	}
	return out
}

// ValidateProfile validates every ruled section of p. Absent sections are validated as empty.
func (v *Validator) ValidateProfile(p *learner.Profile) ProfileResult {
	doc := map[string]map[string]any{}
	for _, s := range v.rules.Sections {
		doc[s.Name] = p.SectionValues(s.Name)
	}
	return v.ValidateProfileValues(doc)
}

// ValidateProfileValues is ValidateProfile for draft-shaped input keyed by section name.
func (v *Validator) ValidateProfileValues(doc map[string]map[string]any) ProfileResult {
	out := ProfileResult{IsValid: true, Errors: map[string]map[string][]string{}}
	for _, s := range v.rules.Sections {
		res := v.ValidateSection(s.Name, doc[s.Name])
		if !res.IsValid {
			out.IsValid = false
			out.Errors[s.Name] = res.Errors
		}
	}
	return out
}

// IsEmpty reports whether v counts as absent: nil, a nil pointer, an empty slice or array,
// or a string containing only whitespace.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return strings.TrimSpace(rv.String()) == ""
	case reflect.Slice, reflect.Array:
		return rv.Len() == 0
	default:
		return false
	}
}

func checkLength(label string, value any, r Rule) []string {
	rv := indirect(reflect.ValueOf(value))
	var (
		n    int
		unit string
	)
	switch rv.Kind() {
	case reflect.String:
		n, unit = utf8.RuneCountInString(rv.String()), "characters"
	case reflect.Slice, reflect.Array:
		n, unit = rv.Len(), "items"
	default:
		return nil
	}
	var errs []string
	if r.Min != nil && float64(n) < *r.Min {
		errs = append(errs, fmt.Sprintf("%s must have at least %s %s", label, formatNumber(*r.Min), unit))
	}
	if r.Max != nil && float64(n) > *r.Max {
		errs = append(errs, fmt.Sprintf("%s must have at most %s %s", label, formatNumber(*r.Max), unit))
	}
	return errs
}

func checkRange(label string, value any, r Rule) []string {
	n, ok := toFloat(indirect(reflect.ValueOf(value)))
	if !ok {
		return nil
	}
	var errs []string
	if r.Min != nil && n < *r.Min {
		errs = append(errs, fmt.Sprintf("%s must be at least %s", label, formatNumber(*r.Min)))
	}
	if r.Max != nil && n > *r.Max {
		errs = append(errs, fmt.Sprintf("%s must be at most %s", label, formatNumber(*r.Max)))
	}
	return errs
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func toFloat(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
