package school

import (
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/university-backend/internal/data/uow"
	types "github.com/yungbote/university-backend/internal/domain/school"
	"github.com/yungbote/university-backend/internal/platform/dbctx"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

const (
	SortNameDesc = "name_desc"
	SortDate     = "Date"
	SortDateDesc = "date_desc"
)

type StudentFilter struct {
	Search string
	Sort   string
	Offset int
	Limit  int
}

type StudentSummary struct {
	ID               int            `json:"id"`
	FirstMidName     string         `json:"first_mid_name"`
	LastName         string         `json:"last_name"`
	EnrollmentDate   datatypes.Date `json:"enrollment_date"`
	EnrollmentsCount int            `json:"enrollments_count"`
}

type EnrollmentDateGroup struct {
	EnrollmentDate datatypes.Date `json:"enrollment_date"`
	StudentCount   int            `json:"student_count"`
}

type StudentRepo interface {
	Create(dbc dbctx.Context, student *types.Student) error
	GetByID(dbc dbctx.Context, id int) (*types.Student, error)
	GetWithEnrollments(dbc dbctx.Context, id int) (*types.Student, error)
	Search(dbc dbctx.Context, filter StudentFilter) ([]StudentSummary, int64, error)
	EnrollmentDateGroups(dbc dbctx.Context) ([]EnrollmentDateGroup, error)
	Update(dbc dbctx.Context, student *types.Student) error
	Delete(dbc dbctx.Context, id int) error
}

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	repoLog := baseLog.With("repo", "StudentRepo")
	return &studentRepo{db: db, log: repoLog}
}

func (sr *studentRepo) Create(dbc dbctx.Context, student *types.Student) error {
	if student == nil {
		return nil
	}
	return dbc.Write(sr.db, "StudentRepo.Create", func(tx *gorm.DB) error {
		return tx.Omit("Enrollments").Create(student).Error
	})
}

func (sr *studentRepo) GetByID(dbc dbctx.Context, id int) (*types.Student, error) {
	var results []*types.Student
	if err := dbc.DB(sr.db).
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, uow.MapError("StudentRepo.GetByID", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (sr *studentRepo) GetWithEnrollments(dbc dbctx.Context, id int) (*types.Student, error) {
	var results []*types.Student
	if err := dbc.DB(sr.db).
		Preload("Enrollments", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Enrollments.Course").
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, uow.MapError("StudentRepo.GetWithEnrollments", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (sr *studentRepo) Search(dbc dbctx.Context, filter StudentFilter) ([]StudentSummary, int64, error) {
	base := func() *gorm.DB {
		q := dbc.DB(sr.db).Model(&types.Student{})
		if s := strings.ToLower(strings.TrimSpace(filter.Search)); s != "" {
			like := "%" + s + "%"
			q = q.Where("LOWER(last_name) LIKE ? OR LOWER(first_name) LIKE ?", like, like)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, uow.MapError("StudentRepo.Search", err)
	}

	results := []StudentSummary{}
	q := base().
		Select(`student.id, student.first_name AS first_mid_name, student.last_name, student.enrollment_date,
			(SELECT COUNT(*) FROM enrollment WHERE enrollment.student_id = student.id) AS enrollments_count`).
		Order(studentOrder(filter.Sort))
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Scan(&results).Error; err != nil {
		return nil, 0, uow.MapError("StudentRepo.Search", err)
	}
	return results, total, nil
}

func studentOrder(sort string) string {
	switch sort {
	case SortNameDesc:
		return "student.last_name DESC, student.id"
	case SortDate:
		return "student.enrollment_date, student.id"
	case SortDateDesc:
		return "student.enrollment_date DESC, student.id"
	default:
		return "student.last_name, student.id"
	}
}

func (sr *studentRepo) EnrollmentDateGroups(dbc dbctx.Context) ([]EnrollmentDateGroup, error) {
	results := []EnrollmentDateGroup{}
	if err := dbc.DB(sr.db).
		Model(&types.Student{}).
		Select("enrollment_date, COUNT(*) AS student_count").
		Group("enrollment_date").
		Order("enrollment_date").
		Scan(&results).Error; err != nil {
		return nil, uow.MapError("StudentRepo.EnrollmentDateGroups", err)
	}
	return results, nil
}

func (sr *studentRepo) Update(dbc dbctx.Context, student *types.Student) error {
	if student == nil {
		return nil
	}
	return dbc.Write(sr.db, "StudentRepo.Update", func(tx *gorm.DB) error {
		return tx.Model(&types.Student{ID: student.ID}).Updates(map[string]interface{}{
			"last_name":       student.LastName,
			"first_name":      student.FirstMidName,
			"enrollment_date": student.EnrollmentDate,
		}).Error
	})
}

func (sr *studentRepo) Delete(dbc dbctx.Context, id int) error {
	return dbc.Write(sr.db, "StudentRepo.Delete", func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&types.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&types.Student{}, id).Error
	})
}
