package school

import (
	"gorm.io/gorm"

	"github.com/yungbote/university-backend/internal/data/uow"
	types "github.com/yungbote/university-backend/internal/domain/school"
	"github.com/yungbote/university-backend/internal/platform/dbctx"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type CourseRepo interface {
	Create(dbc dbctx.Context, course *types.Course) error
	GetByID(dbc dbctx.Context, id int) (*types.Course, error)
	List(dbc dbctx.Context) ([]*types.Course, error)
	ListByInstructor(dbc dbctx.Context, instructorID int) ([]*types.Course, error)
	Update(dbc dbctx.Context, course *types.Course) error
	Delete(dbc dbctx.Context, id int) error
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	repoLog := baseLog.With("repo", "CourseRepo")
	return &courseRepo{db: db, log: repoLog}
}

func (cr *courseRepo) Create(dbc dbctx.Context, course *types.Course) error {
	if course == nil {
		return nil
	}
	return dbc.Write(cr.db, "CourseRepo.Create", func(tx *gorm.DB) error {
		return tx.Omit("Department", "Enrollments").Create(course).Error
	})
}

func (cr *courseRepo) GetByID(dbc dbctx.Context, id int) (*types.Course, error) {
	var results []*types.Course
	if err := dbc.DB(cr.db).
		Preload("Department").
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, uow.MapError("CourseRepo.GetByID", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// List returns every course with its department, ordered by catalog number.
func (cr *courseRepo) List(dbc dbctx.Context) ([]*types.Course, error) {
	results := []*types.Course{}
	if err := dbc.DB(cr.db).
		Preload("Department").
		Order("id").
		Find(&results).Error; err != nil {
		return nil, uow.MapError("CourseRepo.List", err)
	}
	return results, nil
}

func (cr *courseRepo) ListByInstructor(dbc dbctx.Context, instructorID int) ([]*types.Course, error) {
	results := []*types.Course{}
	if err := dbc.DB(cr.db).
		Preload("Department").
		Joins("JOIN course_instructor ON course_instructor.course_id = course.id").
		Where("course_instructor.instructor_id = ?", instructorID).
		Order("course.id").
		Find(&results).Error; err != nil {
		return nil, uow.MapError("CourseRepo.ListByInstructor", err)
	}
	return results, nil
}

func (cr *courseRepo) Update(dbc dbctx.Context, course *types.Course) error {
	if course == nil {
		return nil
	}
	return dbc.Write(cr.db, "CourseRepo.Update", func(tx *gorm.DB) error {
		return tx.Model(&types.Course{ID: course.ID}).Updates(map[string]interface{}{
			"title":         course.Title,
			"credits":       course.Credits,
			"department_id": course.DepartmentID,
		}).Error
	})
}

// Delete removes the course with its enrollments and instructor links.
func (cr *courseRepo) Delete(dbc dbctx.Context, id int) error {
	return dbc.Write(cr.db, "CourseRepo.Delete", func(tx *gorm.DB) error {
		return deleteCourses(tx, []int{id})
	})
}

func deleteCourses(tx *gorm.DB, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("course_id IN ?", ids).Delete(&types.Enrollment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("course_id IN ?", ids).Delete(&types.CourseAssignment{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&types.Course{}).Error
}
