package validation

import (
	"reflect"
	"testing"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestValidateField(t *testing.T) {
	goals := FieldRules{Name: "learning_goals", Label: "Learning goals", Rules: []Rule{Required(), Length(intp(1), intp(2))}}
	bio := FieldRules{Name: "bio", Label: "Bio", Rules: []Rule{Length(intp(3), intp(5))}}
	rating := FieldRules{Name: "rating", Label: "Rating", Rules: []Rule{Range(floatp(0), floatp(5))}}
	both := FieldRules{Name: "tags", Label: "Tags", Rules: []Rule{Length(intp(3), nil), Length(nil, intp(1))}}

	cases := []struct {
		name       string
		value      any
		rules      FieldRules
		wantValid  bool
		wantErrors []string
	}{
		{name: "required_nil", value: nil, rules: goals, wantErrors: []string{"Learning goals is required"}},
		{name: "required_empty_slice", value: []string{}, rules: goals, wantErrors: []string{"Learning goals is required"}},
		{name: "required_whitespace", value: "   ", rules: goals, wantErrors: []string{"Learning goals is required"}},
		{name: "too_many_items", value: []string{"a", "b", "c"}, rules: goals, wantErrors: []string{"Learning goals must have at most 2 items"}},
		{name: "ok_items", value: []string{"a"}, rules: goals, wantValid: true},
		{name: "optional_empty_is_valid", value: "", rules: bio, wantValid: true},
		{name: "string_too_short", value: "ab", rules: bio, wantErrors: []string{"Bio must have at least 3 characters"}},
		{name: "runes_not_bytes", value: "héé", rules: bio, wantValid: true},
		{name: "range_low", value: -1, rules: rating, wantErrors: []string{"Rating must be at least 0"}},
		{name: "range_high_float", value: 5.5, rules: rating, wantErrors: []string{"Rating must be at most 5"}},
		{name: "range_ok_pointer", value: floatp(4.5), rules: rating, wantValid: true},
		{name: "zero_is_populated", value: 0, rules: rating, wantValid: true},
		{name: "range_ignores_non_numbers", value: "high", rules: rating, wantValid: true},
		{name: "errors_accumulate", value: []string{"a", "b"}, rules: both, wantErrors: []string{"Tags must have at least 3 items", "Tags must have at most 1 items"}},
		{name: "no_rules_pass_through", value: 12345, rules: FieldRules{}, wantValid: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateField(tc.rules.Name, tc.value, tc.rules)
			if got.IsValid != tc.wantValid {
				t.Fatalf("ValidateField(%v).IsValid=%v, want %v (errors=%v)", tc.value, got.IsValid, tc.wantValid, got.Errors)
			}
			want := tc.wantErrors
			if want == nil {
				want = []string{}
			}
			if !reflect.DeepEqual(got.Errors, want) {
				t.Fatalf("ValidateField(%v).Errors=%q, want %q", tc.value, got.Errors, want)
			}
		})
	}
}

func TestIsEmpty(t *testing.T) {
	var nilSlice []string
	var nilPtr *float64
	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"nil_slice", nilSlice, true},
		{"nil_pointer", nilPtr, true},
		{"tabs", "\t\n", true},
		{"text", "x", false},
		{"zero_number", 0.0, false},
		{"false", false, false},
		{"typed_slice", []learner.LearningStyle{learner.StyleVisual}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsEmpty(tc.value); got != tc.want {
				t.Fatalf("IsEmpty(%#v)=%v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestValidateSectionUnknownFieldsPassThrough(t *testing.T) {
	v := New(nil)
	res := v.ValidateSection(learner.SectionContentPreferences, map[string]any{
		learner.FieldLanguagePreference: []string{"en"},
		"favourite_colour":              "",
	})
	if !res.IsValid {
		t.Fatalf("ValidateSection.IsValid=false, errors=%v", res.Errors)
	}
	if r := v.ValidateField("no_such_section", "x", nil); !r.IsValid {
		t.Fatalf("ValidateField on unknown section should be valid, got %v", r.Errors)
	}
}

func TestValidateProfileScenario(t *testing.T) {
	p := &learner.Profile{
		UserID: 1,
		BasicInfo: &learner.BasicInfo{
			LearningGoals:   []string{"web_dev"},
			ExperienceLevel: learner.ExperienceSomeBasics,
		},
		ContentPreferences: &learner.ContentPreferences{},
	}
	res := New(nil).ValidateProfile(p)
	if res.IsValid {
		t.Fatalf("ValidateProfile.IsValid=true, want false")
	}
	cp := res.Errors[learner.SectionContentPreferences]
	if got := cp[learner.FieldLanguagePreference]; !reflect.DeepEqual(got, []string{"Language preference is required"}) {
		t.Fatalf("language_preference errors=%q", got)
	}
	basic := res.Errors[learner.SectionBasicInfo]
	for _, f := range []string{learner.FieldPreferredPace, learner.FieldTimeAvailability, learner.FieldLearningStyle, learner.FieldCareerStage, learner.FieldTargetTimeline} {
		if len(basic[f]) != 1 {
			t.Fatalf("basic_info.%s errors=%q, want exactly one", f, basic[f])
		}
	}
	if _, ok := basic[learner.FieldLearningGoals]; ok {
		t.Fatalf("learning_goals should be valid, got %q", basic[learner.FieldLearningGoals])
	}
}

func TestValidateProfileAbsentSectionMatchesEmptySection(t *testing.T) {
	v := New(nil)
	absent := v.ValidateProfile(&learner.Profile{UserID: 1})
	empty := v.ValidateProfile(&learner.Profile{UserID: 1, BasicInfo: &learner.BasicInfo{}, ContentPreferences: &learner.ContentPreferences{}})
	if !reflect.DeepEqual(absent, empty) {
		t.Fatalf("absent sections=%+v, empty sections=%+v", absent, empty)
	}
}

func TestValidateProfileIffSectionsValid(t *testing.T) {
	v := New(nil)
	full := &learner.Profile{
		UserID: 1,
		BasicInfo: &learner.BasicInfo{
			LearningGoals:    []string{"web_dev"},
			ExperienceLevel:  learner.ExperienceAdvanced,
			PreferredPace:    learner.PaceFast,
			TimeAvailability: learner.TimeFivePlusHours,
			LearningStyle:    []learner.LearningStyle{learner.StyleHandsOn},
			CareerStage:      learner.CareerProfessional,
			TargetTimeline:   learner.TimelineFlexible,
		},
		ContentPreferences: &learner.ContentPreferences{LanguagePreference: []string{"en", "es"}},
	}
	variants := map[string]func(p *learner.Profile){
		"complete":       func(p *learner.Profile) {},
		"no_basic":       func(p *learner.Profile) { p.BasicInfo = nil },
		"no_content":     func(p *learner.Profile) { p.ContentPreferences = nil },
		"bad_rating":     func(p *learner.Profile) { p.ContentPreferences.InstructorRatingsMin = floatp(9) },
		"too_many_langs": func(p *learner.Profile) { p.ContentPreferences.LanguagePreference = []string{"a", "b", "c", "d", "e", "f"} },
		"blank_goal":     func(p *learner.Profile) { p.BasicInfo.LearningGoals = nil },
	}
	for name, mutate := range variants {
		t.Run(name, func(t *testing.T) {
			p := *full
			basic := *full.BasicInfo
			content := *full.ContentPreferences
			p.BasicInfo, p.ContentPreferences = &basic, &content
			mutate(&p)

			whole := v.ValidateProfile(&p)
			b := v.ValidateSection(learner.SectionBasicInfo, p.SectionValues(learner.SectionBasicInfo))
			c := v.ValidateSection(learner.SectionContentPreferences, p.SectionValues(learner.SectionContentPreferences))
			if whole.IsValid != (b.IsValid && c.IsValid) {
				t.Fatalf("profile valid=%v, basic=%v content=%v", whole.IsValid, b.IsValid, c.IsValid)
			}
		})
	}
}

func TestParseRuleSet(t *testing.T) {
	if _, err := ParseRuleSet([]byte("version: 1\nsections:\n  - name: s\n    fields:\n      - name: f\n        rules:\n          - kind: regex\n")); err == nil {
		t.Fatalf("expected unknown rule kind error")
	}
	if _, err := ParseRuleSet([]byte("sections: []\n")); err == nil {
		t.Fatalf("expected missing version error")
	}
	rs := DefaultRules()
	if rs.Version != 1 || len(rs.Sections) != 2 {
		t.Fatalf("default rules version=%d sections=%d", rs.Version, len(rs.Sections))
	}
	for _, s := range rs.Sections {
		if s.Name != learner.SectionBasicInfo {
			continue
		}
		for _, f := range s.Fields {
			if !f.IsRequired() {
				t.Fatalf("basic_info.%s should be required", f.Name)
			}
		}
	}
}
