package learner

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile is a learner's preference document. The Schema Store is its system of record.
type Profile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID int64     `gorm:"column:user_id;not null;uniqueIndex" json:"user_id" validate:"gt=0"`

	BasicInfo          *BasicInfo          `gorm:"column:basic_info;type:jsonb;serializer:json" json:"basic_info,omitempty" validate:"omitempty"`
	ContentPreferences *ContentPreferences `gorm:"column:content_preferences;type:jsonb;serializer:json" json:"content_preferences,omitempty" validate:"omitempty"`

	// Interactions only ever grows; repos append and never rewrite existing items.
	Interactions []Interaction `gorm:"column:interactions;type:jsonb;serializer:json" json:"interactions" validate:"dive"`

	// AIInsights is derived and replaced wholesale on recompute.
	AIInsights datatypes.JSON `gorm:"column:ai_insights;type:jsonb" json:"ai_insights,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false" json:"created_at" validate:"required"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;index;autoUpdateTime:false" json:"updated_at" validate:"required"`
}

func (Profile) TableName() string { return "preference_profiles" }

type BasicInfo struct {
	LearningGoals    []string         `json:"learning_goals,omitempty" validate:"omitempty,max=20,unique,dive,required,max=120"`
	ExperienceLevel  ExperienceLevel  `json:"experience_level,omitempty" validate:"omitempty,oneof=complete_beginner some_basics intermediate advanced"`
	PreferredPace    Pace             `json:"preferred_pace,omitempty" validate:"omitempty,oneof=slow medium fast"`
	TimeAvailability TimeAvailability `json:"time_availability,omitempty" validate:"omitempty,oneof=1-2hrs 3-5hrs 5+hrs"`
	LearningStyle    []LearningStyle  `json:"learning_style,omitempty" validate:"omitempty,unique,dive,oneof=visual hands_on reading videos interactive"`
	CareerStage      CareerStage      `json:"career_stage,omitempty" validate:"omitempty,oneof=student career_change skill_upgrade professional"`
	TargetTimeline   TargetTimeline   `json:"target_timeline,omitempty" validate:"omitempty,oneof=3months 6months 1year flexible"`
}

type ContentPreferences struct {
	PreferredPlatforms   []Platform         `json:"preferred_platforms,omitempty" validate:"omitempty,unique,dive,oneof=coursera udemy edx youtube freecodecamp pluralsight linkedin_learning codecademy khan_academy udacity"`
	ContentTypes         []ContentType      `json:"content_types,omitempty" validate:"omitempty,unique,dive,oneof=video article interactive quiz project book"`
	DifficultyPreference Difficulty         `json:"difficulty_preference,omitempty" validate:"omitempty,oneof=mixed beginner intermediate advanced"`
	DurationPreference   DurationPreference `json:"duration_preference,omitempty" validate:"omitempty,oneof=short medium long mixed"`
	LanguagePreference   []string           `json:"language_preference,omitempty" validate:"required,min=1,dive,required"`
	InstructorRatingsMin *float64           `json:"instructor_ratings_min,omitempty" validate:"omitempty,gte=0,lte=5"`
}

type Interaction struct {
	Type      InteractionType `json:"type" validate:"required,oneof=page_view course_view course_click course_enroll search rating preference_update"`
	Data      map[string]any  `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp" validate:"required"`
	Context   map[string]any  `json:"context,omitempty"`
}

// Values flattens the section into field name -> value, omitting unset fields.
func (b *BasicInfo) Values() map[string]any {
	out := map[string]any{}
	if b == nil {
		return out
	}
	if b.LearningGoals != nil {
		out[FieldLearningGoals] = b.LearningGoals
	}
	putString(out, FieldExperienceLevel, string(b.ExperienceLevel))
	putString(out, FieldPreferredPace, string(b.PreferredPace))
	putString(out, FieldTimeAvailability, string(b.TimeAvailability))
	if b.LearningStyle != nil {
		out[FieldLearningStyle] = b.LearningStyle
	}
	putString(out, FieldCareerStage, string(b.CareerStage))
	putString(out, FieldTargetTimeline, string(b.TargetTimeline))
	return out
}

func (c *ContentPreferences) Values() map[string]any {
	out := map[string]any{}
	if c == nil {
		return out
	}
	if c.PreferredPlatforms != nil {
		out[FieldPreferredPlatforms] = c.PreferredPlatforms
	}
	if c.ContentTypes != nil {
		out[FieldContentTypes] = c.ContentTypes
	}
	putString(out, FieldDifficultyPreference, string(c.DifficultyPreference))
	putString(out, FieldDurationPreference, string(c.DurationPreference))
	if c.LanguagePreference != nil {
		out[FieldLanguagePreference] = c.LanguagePreference
	}
	if c.InstructorRatingsMin != nil {
		out[FieldInstructorRatingsMin] = *c.InstructorRatingsMin
	}
	return out
}

// SectionValues returns the flattened values of the named section; unknown or absent sections are empty.
func (p *Profile) SectionValues(section string) map[string]any {
	if p == nil {
		return map[string]any{}
	}
	switch section {
	case SectionBasicInfo:
		return p.BasicInfo.Values()
	case SectionContentPreferences:
		return p.ContentPreferences.Values()
	default:
		return map[string]any{}
	}
}

// HasGoal reports whether the learner listed goal, ignoring case and surrounding space.
func (b *BasicInfo) HasGoal(goal string) bool {
	if b == nil {
		return false
	}
	goal = strings.ToLower(strings.TrimSpace(goal))
	for _, g := range b.LearningGoals {
		if strings.ToLower(strings.TrimSpace(g)) == goal {
			return true
		}
	}
	return false
}

func (b *BasicInfo) HasStyle(style LearningStyle) bool {
	if b == nil {
		return false
	}
	for _, s := range b.LearningStyle {
		if s == style {
			return true
		}
	}
	return false
}

// ProfileFromDocument decodes a partial-profile-shaped map (as held by drafts or request bodies).
func ProfileFromDocument(userID int64, doc map[string]any) (*Profile, error) {
	p := &Profile{UserID: userID}
	if len(doc) == 0 {
		return p, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode profile document: %w", err)
	}
	var sections struct {
		BasicInfo          *BasicInfo          `json:"basic_info"`
		ContentPreferences *ContentPreferences `json:"content_preferences"`
	}
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, fmt.Errorf("decode profile document: %w", err)
	}
	p.BasicInfo = sections.BasicInfo
	p.ContentPreferences = sections.ContentPreferences
	return p, nil
}

// Document is the inverse of ProfileFromDocument.
func (p *Profile) Document() map[string]any {
	doc := map[string]any{}
	if p == nil {
		return doc
	}
	if p.BasicInfo != nil {
		doc[SectionBasicInfo] = p.BasicInfo.Values()
	}
	if p.ContentPreferences != nil {
		doc[SectionContentPreferences] = p.ContentPreferences.Values()
	}
	return doc
}

func putString(out map[string]any, key, v string) {
	if v != "" {
		out[key] = v
	}
}
