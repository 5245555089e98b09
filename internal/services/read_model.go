package services

import (
	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/draft"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/scoring"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/suggest"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/validation"
)

// ReadModel is what the UI consumes for a committed profile or a draft.
type ReadModel struct {
	CompletionPercentage int                            `json:"completion_percentage"`
	OnboardingScore      scoring.OnboardingResult       `json:"onboarding_score"`
	MissingFields        []string                       `json:"missing_fields"`
	IsValid              bool                           `json:"is_valid"`
	Errors               map[string]map[string][]string `json:"errors"`
	Suggestions          suggest.Suggestions            `json:"suggestions"`
}

type ProfileView struct {
	Profile *learner.Profile `json:"profile"`
	ReadModel
	// Drafts holds any in-progress drafts so the client can offer to resume.
	Drafts map[draft.FlowType]*draft.Draft `json:"drafts,omitempty"`
}

type DraftView struct {
	Draft *draft.Draft `json:"draft"`
	ReadModel
}

func buildReadModel(v *validation.Validator, p *learner.Profile) ReadModel {
	res := v.ValidateProfile(p)
	return ReadModel{
		CompletionPercentage: scoring.Completion(p),
		OnboardingScore:      scoring.OnboardingScore(p),
		MissingFields:        scoring.MissingFields(p),
		IsValid:              res.IsValid,
		Errors:               res.Errors,
		Suggestions:          suggest.Suggest(p),
	}
}
