// Package scoring computes profile completion. It never consults validation: a field counts once
// it is populated, whether or not it would pass the rules.
package scoring

import (
	"math"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/validation"
)

// CompletionSchemaVersion identifies the tracked field list below. Adding a tracked field is a
// schema change: bump the version and TrackedFieldCount together.
const (
	CompletionSchemaVersion = 1
	TrackedFieldCount       = 12
)

type trackedField struct {
	Section string
	Field   string
}

var trackedFields = [TrackedFieldCount]trackedField{
	{learner.SectionBasicInfo, learner.FieldLearningGoals},
	{learner.SectionBasicInfo, learner.FieldExperienceLevel},
	{learner.SectionBasicInfo, learner.FieldPreferredPace},
	{learner.SectionBasicInfo, learner.FieldTimeAvailability},
	{learner.SectionBasicInfo, learner.FieldLearningStyle},
	{learner.SectionBasicInfo, learner.FieldCareerStage},
	{learner.SectionBasicInfo, learner.FieldTargetTimeline},
	{learner.SectionContentPreferences, learner.FieldPreferredPlatforms},
	{learner.SectionContentPreferences, learner.FieldContentTypes},
	{learner.SectionContentPreferences, learner.FieldDifficultyPreference},
	{learner.SectionContentPreferences, learner.FieldDurationPreference},
	{learner.SectionContentPreferences, learner.FieldLanguagePreference},
}

// Completion returns round(100 * populated / TrackedFieldCount).
func Completion(p *learner.Profile) int {
	return percent(PopulatedFields(p), TrackedFieldCount)
}

// PopulatedFields counts tracked fields holding a non-empty value.
func PopulatedFields(p *learner.Profile) int {
	sections := map[string]map[string]any{
		learner.SectionBasicInfo:          p.SectionValues(learner.SectionBasicInfo),
		learner.SectionContentPreferences: p.SectionValues(learner.SectionContentPreferences),
	}
	n := 0
	for _, tf := range trackedFields {
		if !validation.IsEmpty(sections[tf.Section][tf.Field]) {
			n++
		}
	}
	return n
}

// MissingFields lists tracked fields still empty, as "section.field", in tracking order.
func MissingFields(p *learner.Profile) []string {
	out := []string{}
	for _, tf := range trackedFields {
		if validation.IsEmpty(p.SectionValues(tf.Section)[tf.Field]) {
			out = append(out, tf.Section+"."+tf.Field)
		}
	}
	return out
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(total)))
}
