package testutil

import (
	"time"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
)

// CompleteProfile returns a profile document that satisfies every validation rule.
func CompleteProfile(userID int64) *learner.Profile {
	rating := 4.0
	return &learner.Profile{
		UserID: userID,
		BasicInfo: &learner.BasicInfo{
			LearningGoals:    []string{"web_dev"},
			ExperienceLevel:  learner.ExperienceCompleteBeginner,
			PreferredPace:    learner.PaceMedium,
			TimeAvailability: learner.TimeOneToTwoHours,
			LearningStyle:    []learner.LearningStyle{learner.StyleVisual},
			CareerStage:      learner.CareerChange,
			TargetTimeline:   learner.TimelineSixMonths,
		},
		ContentPreferences: &learner.ContentPreferences{
			PreferredPlatforms:   []learner.Platform{learner.PlatformFreeCodeCamp},
			ContentTypes:         []learner.ContentType{learner.ContentVideo, learner.ContentProject},
			DifficultyPreference: learner.DifficultyBeginner,
			DurationPreference:   learner.DurationShort,
			LanguagePreference:   []string{"en"},
			InstructorRatingsMin: &rating,
		},
	}
}

func PtrTime(v time.Time) *time.Time { return &v }
