package learner

// Section names as they appear in profile documents and drafts.
const (
	SectionBasicInfo          = "basic_info"
	SectionContentPreferences = "content_preferences"
)

// Basic-info field names.
const (
	FieldLearningGoals    = "learning_goals"
	FieldExperienceLevel  = "experience_level"
	FieldPreferredPace    = "preferred_pace"
	FieldTimeAvailability = "time_availability"
	FieldLearningStyle    = "learning_style"
	FieldCareerStage      = "career_stage"
	FieldTargetTimeline   = "target_timeline"
)

// Content-preference field names.
const (
	FieldPreferredPlatforms   = "preferred_platforms"
	FieldContentTypes         = "content_types"
	FieldDifficultyPreference = "difficulty_preference"
	FieldDurationPreference   = "duration_preference"
	FieldLanguagePreference   = "language_preference"
	FieldInstructorRatingsMin = "instructor_ratings_min"
)

type ExperienceLevel string

const (
	ExperienceCompleteBeginner ExperienceLevel = "complete_beginner"
	ExperienceSomeBasics       ExperienceLevel = "some_basics"
	ExperienceIntermediate     ExperienceLevel = "intermediate"
	ExperienceAdvanced         ExperienceLevel = "advanced"
)

type Pace string

const (
	PaceSlow   Pace = "slow"
	PaceMedium Pace = "medium"
	PaceFast   Pace = "fast"
)

type TimeAvailability string

const (
	TimeOneToTwoHours    TimeAvailability = "1-2hrs"
	TimeThreeToFiveHours TimeAvailability = "3-5hrs"
	TimeFivePlusHours    TimeAvailability = "5+hrs"
)

type LearningStyle string

const (
	StyleVisual      LearningStyle = "visual"
	StyleHandsOn     LearningStyle = "hands_on"
	StyleReading     LearningStyle = "reading"
	StyleVideos      LearningStyle = "videos"
	StyleInteractive LearningStyle = "interactive"
)

type CareerStage string

const (
	CareerStudent      CareerStage = "student"
	CareerChange       CareerStage = "career_change"
	CareerSkillUpgrade CareerStage = "skill_upgrade"
	CareerProfessional CareerStage = "professional"
)

type TargetTimeline string

const (
	TimelineThreeMonths TargetTimeline = "3months"
	TimelineSixMonths   TargetTimeline = "6months"
	TimelineOneYear     TargetTimeline = "1year"
	TimelineFlexible    TargetTimeline = "flexible"
)

type Platform string

const (
	PlatformCoursera         Platform = "coursera"
	PlatformUdemy            Platform = "udemy"
	PlatformEdX              Platform = "edx"
	PlatformYouTube          Platform = "youtube"
	PlatformFreeCodeCamp     Platform = "freecodecamp"
	PlatformPluralsight      Platform = "pluralsight"
	PlatformLinkedInLearning Platform = "linkedin_learning"
	PlatformCodecademy       Platform = "codecademy"
	PlatformKhanAcademy      Platform = "khan_academy"
	PlatformUdacity          Platform = "udacity"
)

type ContentType string

const (
	ContentVideo       ContentType = "video"
	ContentArticle     ContentType = "article"
	ContentInteractive ContentType = "interactive"
	ContentQuiz        ContentType = "quiz"
	ContentProject     ContentType = "project"
	ContentBook        ContentType = "book"
)

type Difficulty string

const (
	DifficultyMixed        Difficulty = "mixed"
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

type DurationPreference string

const (
	DurationShort  DurationPreference = "short"
	DurationMedium DurationPreference = "medium"
	DurationLong   DurationPreference = "long"
	DurationMixed  DurationPreference = "mixed"
)

type InteractionType string

const (
	InteractionPageView         InteractionType = "page_view"
	InteractionCourseView       InteractionType = "course_view"
	InteractionCourseClick      InteractionType = "course_click"
	InteractionCourseEnroll     InteractionType = "course_enroll"
	InteractionSearch           InteractionType = "search"
	InteractionRating           InteractionType = "rating"
	InteractionPreferenceUpdate InteractionType = "preference_update"
)

type EventType string

const (
	EventProfileCreated        EventType = "profile_created"
	EventProfileUpdated        EventType = "profile_updated"
	EventOnboardingCompleted   EventType = "onboarding_completed"
	EventInteractionRecorded   EventType = "interaction_recorded"
	EventRecommendationServed  EventType = "recommendation_served"
	EventRecommendationClicked EventType = "recommendation_clicked"
	EventFeedbackGiven         EventType = "feedback_given"
)
