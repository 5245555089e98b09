package reccache

import (
	"context"
	"fmt"
	"math"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/suggest"
)

// Generator produces a fresh recommendation set for a learner.
type Generator interface {
	Version() string
	Generate(ctx context.Context, p *learner.Profile) ([]learner.ScoredCourse, error)
}

const SuggestionGeneratorVersion = "suggest-v1"

// SuggestionGenerator ranks suggested learning paths first, then platform picks.
// Output depends only on the profile.
type SuggestionGenerator struct{}

func (SuggestionGenerator) Version() string { return SuggestionGeneratorVersion }

func (SuggestionGenerator) Generate(ctx context.Context, p *learner.Profile) ([]learner.ScoredCourse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := suggest.Suggest(p)
	out := make([]learner.ScoredCourse, 0, len(s.LearningPaths)+len(s.RecommendedPlatforms))
	for i, path := range s.LearningPaths {
		out = append(out, learner.ScoredCourse{
			CourseID: fmt.Sprintf("path:%s:%s", path.Goal, path.Difficulty),
			Title:    path.Title,
			Score:    decay(0.95, 0.1, i),
			Reason:   fmt.Sprintf("Matches your goal %q at %s level", path.Goal, path.Difficulty),
			Metadata: map[string]string{
				"kind":               "learning_path",
				"difficulty":         string(path.Difficulty),
				"estimated_duration": path.EstimatedDuration,
			},
		})
	}
	for i, pl := range s.RecommendedPlatforms {
		out = append(out, learner.ScoredCourse{
			CourseID: "platform:" + string(pl),
			Title:    string(pl),
			Score:    decay(0.6, 0.05, i),
			Reason:   "Fits your learning style",
			Metadata: map[string]string{"kind": "platform"},
		})
	}
	return out, nil
}

// decay returns start - step*i, floored at 0.05 and rounded to 2 places.
func decay(start, step float64, i int) float64 {
	v := start - step*float64(i)
	if v < 0.05 {
		v = 0.05
	}
	return math.Round(v*100) / 100
}
