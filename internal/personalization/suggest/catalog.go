package suggest

import "github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"

type pathTemplate struct {
	Title       string
	Description string
	Skills      []string
}

var pathCatalog = map[string]pathTemplate{
	"web_dev": {
		Title:       "Full-Stack Web Development",
		Description: "HTML, CSS and JavaScript through to a backend API and a deployed application.",
		Skills:      []string{"html", "css", "javascript", "react", "node.js", "sql"},
	},
	"mobile_dev": {
		Title:       "Mobile App Development",
		Description: "Build and ship cross-platform mobile apps.",
		Skills:      []string{"ui design", "react native", "flutter", "app store release"},
	},
	"data_science": {
		Title:       "Data Science and Analytics",
		Description: "Python, statistics and visualization applied to real datasets.",
		Skills:      []string{"python", "pandas", "statistics", "visualization", "sql"},
	},
	"ai_ml": {
		Title:       "Machine Learning and AI",
		Description: "From linear models to neural networks, with hands-on training and evaluation.",
		Skills:      []string{"python", "linear algebra", "scikit-learn", "pytorch"},
	},
	"devops": {
		Title:       "DevOps and Cloud Infrastructure",
		Description: "Automate builds, deployments and operations on cloud platforms.",
		Skills:      []string{"linux", "docker", "kubernetes", "ci/cd", "terraform"},
	},
	"cybersecurity": {
		Title:       "Cybersecurity Fundamentals",
		Description: "Networks, threat models and defensive practice.",
		Skills:      []string{"networking", "linux", "cryptography", "incident response"},
	},
	"game_dev": {
		Title:       "Game Development",
		Description: "Game loops, physics and publishing with a modern engine.",
		Skills:      []string{"c#", "unity", "game design", "3d math"},
	},
	"programming_basics": {
		Title:       "Programming Fundamentals",
		Description: "Core programming concepts in a beginner-friendly language.",
		Skills:      []string{"variables", "control flow", "functions", "data structures"},
	},
}

var goalAliases = map[string]string{
	"web_development":          "web_dev",
	"full_stack":               "web_dev",
	"mobile_development":       "mobile_dev",
	"machine_learning":         "ai_ml",
	"ml":                       "ai_ml",
	"ai":                       "ai_ml",
	"data_analysis":            "data_science",
	"cloud":                    "devops",
	"security":                 "cybersecurity",
	"game_development":         "game_dev",
	"programming_fundamentals": "programming_basics",
}

var stylePlatforms = map[learner.LearningStyle][]learner.Platform{
	learner.StyleVisual:      {learner.PlatformYouTube, learner.PlatformCoursera},
	learner.StyleHandsOn:     {learner.PlatformFreeCodeCamp, learner.PlatformCodecademy},
	learner.StyleReading:     {learner.PlatformEdX, learner.PlatformCoursera},
	learner.StyleVideos:      {learner.PlatformYouTube, learner.PlatformUdemy, learner.PlatformPluralsight},
	learner.StyleInteractive: {learner.PlatformCodecademy, learner.PlatformKhanAcademy},
}

var defaultPlatforms = []learner.Platform{learner.PlatformCoursera, learner.PlatformUdemy, learner.PlatformYouTube}

var styleContent = map[learner.LearningStyle][]learner.ContentType{
	learner.StyleVisual:      {learner.ContentVideo, learner.ContentInteractive},
	learner.StyleHandsOn:     {learner.ContentProject, learner.ContentInteractive},
	learner.StyleReading:     {learner.ContentArticle, learner.ContentBook},
	learner.StyleVideos:      {learner.ContentVideo},
	learner.StyleInteractive: {learner.ContentInteractive, learner.ContentQuiz},
}

var defaultContent = []learner.ContentType{learner.ContentVideo, learner.ContentArticle}

// 3-5hrs gets an explicit balanced plan between the two extremes.
var timeStrategies = map[learner.TimeAvailability]TimeStrategy{
	learner.TimeOneToTwoHours: {
		Strategy:        "Micro-learning",
		Description:     "Short focused sessions on one concept at a time, with quick reviews.",
		SessionMinutes:  20,
		SessionsPerWeek: 5,
	},
	learner.TimeThreeToFiveHours: {
		Strategy:        "Balanced Learning",
		Description:     "Regular sessions mixing new material with a weekly hands-on exercise.",
		SessionMinutes:  45,
		SessionsPerWeek: 5,
	},
	learner.TimeFivePlusHours: {
		Strategy:        "Intensive Learning",
		Description:     "Long deep-work blocks with projects that combine several topics.",
		SessionMinutes:  90,
		SessionsPerWeek: 5,
	},
}

var progressionAdvice = map[learner.ExperienceLevel]string{
	learner.ExperienceCompleteBeginner: "Start with fundamentals and finish a small project before moving up a level.",
	learner.ExperienceSomeBasics:       "Review the basics quickly, then push into intermediate projects.",
	learner.ExperienceIntermediate:     "Focus on intermediate depth and add one advanced topic at a time.",
	learner.ExperienceAdvanced:         "Go straight to advanced material and specialise.",
	"":                                 "Start with fundamentals and adjust once your level is clear.",
}
