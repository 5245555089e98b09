package app

import (
	"gorm.io/gorm"

	repos "github.com/Syedsafwan24/Gradvy-sub002/internal/data/repos/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

type Repos struct {
	Profile             repos.ProfileRepo
	LearningSession     repos.LearningSessionRepo
	RecommendationCache repos.RecommendationCacheRepo
	TrainingEvent       repos.TrainingEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Profile:             repos.NewProfileRepo(db, log),
		LearningSession:     repos.NewLearningSessionRepo(db, log),
		RecommendationCache: repos.NewRecommendationCacheRepo(db, log),
		TrainingEvent:       repos.NewTrainingEventRepo(db, log),
	}
}
