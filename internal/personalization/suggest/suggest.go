// Package suggest derives learning-path, platform, content and pacing suggestions from a profile.
// Everything here is a pure function of its input.
package suggest

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
)

type LearningPath struct {
	Goal              string             `json:"goal"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Difficulty        learner.Difficulty `json:"difficulty"`
	EstimatedDuration string             `json:"estimated_duration"`
	Skills            []string           `json:"skills"`
}

type TimeStrategy struct {
	Strategy        string `json:"strategy"`
	Description     string `json:"description"`
	SessionMinutes  int    `json:"session_minutes"`
	SessionsPerWeek int    `json:"sessions_per_week"`
}

type DifficultyProgression struct {
	Start  learner.Difficulty   `json:"start"`
	Stages []learner.Difficulty `json:"stages"`
	Advice string               `json:"advice"`
}

type Suggestions struct {
	LearningPaths         []LearningPath        `json:"learning_paths"`
	RecommendedPlatforms  []learner.Platform    `json:"recommended_platforms"`
	ContentTypes          []learner.ContentType `json:"content_types"`
	TimeManagement        *TimeStrategy         `json:"time_management,omitempty"`
	DifficultyProgression DifficultyProgression `json:"difficulty_progression"`
}

// Suggest never returns nil slices, so encoded output is stable.
func Suggest(p *learner.Profile) Suggestions {
	var basic *learner.BasicInfo
	var content *learner.ContentPreferences
	if p != nil {
		basic, content = p.BasicInfo, p.ContentPreferences
	}
	level := learner.ExperienceLevel("")
	if basic != nil {
		level = basic.ExperienceLevel
	}
	return Suggestions{
		LearningPaths:         learningPaths(basic, level),
		RecommendedPlatforms:  platforms(basic, content),
		ContentTypes:          contentTypes(basic, content),
		TimeManagement:        timeStrategy(basic),
		DifficultyProgression: progression(level),
	}
}

// DifficultyFor maps experience to the difficulty a new path should start at.
func DifficultyFor(level learner.ExperienceLevel) learner.Difficulty {
	switch level {
	case learner.ExperienceIntermediate:
		return learner.DifficultyIntermediate
	case learner.ExperienceAdvanced:
		return learner.DifficultyAdvanced
	default:
		return learner.DifficultyBeginner
	}
}

func learningPaths(basic *learner.BasicInfo, level learner.ExperienceLevel) []LearningPath {
	out := []LearningPath{}
	if basic == nil {
		return out
	}
	diff := DifficultyFor(level)
	seen := map[string]bool{}
	for _, raw := range basic.LearningGoals {
		goal := normalizeGoal(raw)
		if goal == "" || seen[goal] {
			continue
		}
		seen[goal] = true
		tpl, ok := pathCatalog[goal]
		if !ok {
			tpl = genericPath(goal)
		}
		out = append(out, LearningPath{
			Goal:              goal,
			Title:             tpl.Title,
			Description:       tpl.Description,
			Difficulty:        diff,
			EstimatedDuration: estimatedDuration(basic.TimeAvailability, diff),
			Skills:            append([]string(nil), tpl.Skills...),
		})
	}
	return out
}

func normalizeGoal(g string) string {
	g = strings.ToLower(strings.TrimSpace(g))
	g = strings.NewReplacer(" ", "_", "-", "_").Replace(g)
	if canon, ok := goalAliases[g]; ok {
		return canon
	}
	return g
}

func genericPath(goal string) pathTemplate {
	words := strings.Fields(strings.ReplaceAll(goal, "_", " "))
	for i, w := range words {
		words[i] = capitalize(w)
	}
	name := strings.Join(words, " ")
	return pathTemplate{
		Title:       name + " Foundations",
		Description: "A structured introduction to " + strings.ToLower(name) + ", building toward independent projects.",
		Skills:      []string{},
	}
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

func estimatedDuration(t learner.TimeAvailability, d learner.Difficulty) string {
	// Weeks at each availability for a beginner path; harder starts skip material.
	weeks := map[learner.TimeAvailability]int{
		learner.TimeOneToTwoHours:    24,
		learner.TimeThreeToFiveHours: 16,
		learner.TimeFivePlusHours:    10,
	}[t]
	if weeks == 0 {
		return "self-paced"
	}
	switch d {
	case learner.DifficultyIntermediate:
		weeks = weeks * 3 / 4
	case learner.DifficultyAdvanced:
		weeks = weeks / 2
	}
	return strconv.Itoa(weeks) + " weeks"
}

func platforms(basic *learner.BasicInfo, content *learner.ContentPreferences) []learner.Platform {
	var acc orderedSet[learner.Platform]
	if content != nil {
		acc.add(content.PreferredPlatforms...)
	}
	if basic != nil {
		for _, s := range basic.LearningStyle {
			acc.add(stylePlatforms[s]...)
		}
	}
	if acc.len() == 0 {
		acc.add(defaultPlatforms...)
	}
	return acc.items()
}

func contentTypes(basic *learner.BasicInfo, content *learner.ContentPreferences) []learner.ContentType {
	var acc orderedSet[learner.ContentType]
	if content != nil {
		acc.add(content.ContentTypes...)
	}
	if basic != nil {
		for _, s := range basic.LearningStyle {
			acc.add(styleContent[s]...)
		}
	}
	if acc.len() == 0 {
		acc.add(defaultContent...)
	}
	return acc.items()
}

func timeStrategy(basic *learner.BasicInfo) *TimeStrategy {
	if basic == nil {
		return nil
	}
	s, ok := timeStrategies[basic.TimeAvailability]
	if !ok {
		return nil
	}
	return &s
}

func progression(level learner.ExperienceLevel) DifficultyProgression {
	start := DifficultyFor(level)
	all := []learner.Difficulty{learner.DifficultyBeginner, learner.DifficultyIntermediate, learner.DifficultyAdvanced}
	stages := []learner.Difficulty{}
	for i, d := range all {
		if d == start {
			stages = append(stages, all[i:]...)
			break
		}
	}
	return DifficultyProgression{Start: start, Stages: stages, Advice: progressionAdvice[level]}
}

type orderedSet[T comparable] struct {
	seen  map[T]bool
	order []T
}

func (s *orderedSet[T]) add(vs ...T) {
	if s.seen == nil {
		s.seen = map[T]bool{}
	}
	for _, v := range vs {
		if !s.seen[v] {
			s.seen[v] = true
			s.order = append(s.order, v)
		}
	}
}

func (s *orderedSet[T]) len() int { return len(s.order) }

func (s *orderedSet[T]) items() []T {
	out := make([]T, len(s.order))
	copy(out, s.order)
	return out
}
