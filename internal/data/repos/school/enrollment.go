package school

import (
	"gorm.io/gorm"

	"github.com/yungbote/university-backend/internal/data/uow"
	types "github.com/yungbote/university-backend/internal/domain/school"
	"github.com/yungbote/university-backend/internal/platform/dbctx"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type EnrollmentRepo interface {
	Create(dbc dbctx.Context, enrollments []*types.Enrollment) error
	ListByCourse(dbc dbctx.Context, courseID int) ([]*types.Enrollment, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	repoLog := baseLog.With("repo", "EnrollmentRepo")
	return &enrollmentRepo{db: db, log: repoLog}
}

func (er *enrollmentRepo) Create(dbc dbctx.Context, enrollments []*types.Enrollment) error {
	if len(enrollments) == 0 {
		return nil
	}
	return dbc.Write(er.db, "EnrollmentRepo.Create", func(tx *gorm.DB) error {
		return tx.Omit("Course", "Student").Create(&enrollments).Error
	})
}

func (er *enrollmentRepo) ListByCourse(dbc dbctx.Context, courseID int) ([]*types.Enrollment, error) {
	results := []*types.Enrollment{}
	if err := dbc.DB(er.db).
		Preload("Student").
		Where("course_id = ?", courseID).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, uow.MapError("EnrollmentRepo.ListByCourse", err)
	}
	return results, nil
}
