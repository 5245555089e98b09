package scoring

import (
	"math"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/validation"
)

// Onboarding section names. Section weights are integer percents summing to 100.
const (
	OnboardingLearningGoals       = "learning_goals"
	OnboardingExperienceLevel     = "experience_level"
	OnboardingLearningPreferences = "learning_preferences"
	OnboardingAvailability        = "availability"
)

type onboardingSection struct {
	Name       string
	WeightPct  int
	Components []trackedField
}

var onboardingSections = []onboardingSection{
	{
		Name:      OnboardingLearningGoals,
		WeightPct: 25,
		Components: []trackedField{
			{learner.SectionBasicInfo, learner.FieldLearningGoals},
			{learner.SectionBasicInfo, learner.FieldCareerStage},
		},
	},
	{
		Name:      OnboardingExperienceLevel,
		WeightPct: 20,
		Components: []trackedField{
			{learner.SectionBasicInfo, learner.FieldExperienceLevel},
		},
	},
	{
		Name:      OnboardingLearningPreferences,
		WeightPct: 25,
		Components: []trackedField{
			{learner.SectionBasicInfo, learner.FieldLearningStyle},
			{learner.SectionContentPreferences, learner.FieldContentTypes},
			{learner.SectionContentPreferences, learner.FieldPreferredPlatforms},
		},
	},
	{
		Name:      OnboardingAvailability,
		WeightPct: 30,
		Components: []trackedField{
			{learner.SectionBasicInfo, learner.FieldTimeAvailability},
			{learner.SectionBasicInfo, learner.FieldPreferredPace},
			{learner.SectionBasicInfo, learner.FieldTargetTimeline},
		},
	},
}

type OnboardingResult struct {
	// Score is the weighted total in [0,100].
	Score int `json:"score"`
	// Sections holds each section's averaged sub-component completion in [0,1].
	Sections map[string]float64 `json:"sections"`
}

// OnboardingScore averages each section's sub-components, scales by the section weight, and sums.
func OnboardingScore(p *learner.Profile) OnboardingResult {
	values := map[string]map[string]any{
		learner.SectionBasicInfo:          p.SectionValues(learner.SectionBasicInfo),
		learner.SectionContentPreferences: p.SectionValues(learner.SectionContentPreferences),
	}
	out := OnboardingResult{Sections: make(map[string]float64, len(onboardingSections))}
	// Accumulating in percent points keeps half-point sums like 12.5+10 exact.
	total := 0.0
	for _, s := range onboardingSections {
		filled := 0
		for _, c := range s.Components {
			if !validation.IsEmpty(values[c.Section][c.Field]) {
				filled++
			}
		}
		n := len(s.Components)
		out.Sections[s.Name] = float64(filled) / float64(n)
		total += float64(filled*s.WeightPct) / float64(n)
	}
	out.Score = int(math.Round(total))
	return out
}
