package app

import (
	"gorm.io/gorm"

	repos "github.com/yungbote/university-backend/internal/data/repos/school"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type Repos = repos.Repos

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return repos.New(db, log)
}
