package app

import (
	"context"

	"gorm.io/gorm"

	httpH "github.com/yungbote/university-backend/internal/http/handlers"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Student    *httpH.StudentHandler
	Course     *httpH.CourseHandler
	Department *httpH.DepartmentHandler
	Instructor *httpH.InstructorHandler
	About      *httpH.AboutHandler
	Lookup     *httpH.LookupHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	d := services.Dispatcher
	return Handlers{
		Health:     httpH.NewHealthHandler(pinger(db)),
		Student:    httpH.NewStudentHandler(log, d),
		Course:     httpH.NewCourseHandler(log, d),
		Department: httpH.NewDepartmentHandler(log, d),
		Instructor: httpH.NewInstructorHandler(log, d),
		About:      httpH.NewAboutHandler(log, d),
		Lookup:     httpH.NewLookupHandler(log, d),
	}
}

func pinger(db *gorm.DB) func(ctx context.Context) error {
	if db == nil {
		return nil
	}
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
