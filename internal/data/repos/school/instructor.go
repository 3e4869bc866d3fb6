package school

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/university-backend/internal/association"
	"github.com/yungbote/university-backend/internal/data/uow"
	types "github.com/yungbote/university-backend/internal/domain/school"
	"github.com/yungbote/university-backend/internal/platform/dbctx"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type InstructorRepo interface {
	Create(dbc dbctx.Context, instructor *types.Instructor) error
	GetByID(dbc dbctx.Context, id int) (*types.Instructor, error)
	List(dbc dbctx.Context) ([]*types.Instructor, error)
	Update(dbc dbctx.Context, instructor *types.Instructor) error
	SaveOffice(dbc dbctx.Context, instructorID int, office *types.OfficeAssignment) error
	ApplyCourseDelta(dbc dbctx.Context, instructorID int, delta association.Delta[*types.Course]) error
	Delete(dbc dbctx.Context, id int) error
}

type instructorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInstructorRepo(db *gorm.DB, baseLog *logger.Logger) InstructorRepo {
	repoLog := baseLog.With("repo", "InstructorRepo")
	return &instructorRepo{db: db, log: repoLog}
}

// Create inserts the instructor row only. Office and course links are written
// through SaveOffice and ApplyCourseDelta once the id is known.
func (ir *instructorRepo) Create(dbc dbctx.Context, instructor *types.Instructor) error {
	if instructor == nil {
		return nil
	}
	return dbc.Write(ir.db, "InstructorRepo.Create", func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(instructor).Error
	})
}

func (ir *instructorRepo) GetByID(dbc dbctx.Context, id int) (*types.Instructor, error) {
	var results []*types.Instructor
	if err := dbc.DB(ir.db).
		Preload("OfficeAssignment").
		Preload("Courses", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, uow.MapError("InstructorRepo.GetByID", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (ir *instructorRepo) List(dbc dbctx.Context) ([]*types.Instructor, error) {
	results := []*types.Instructor{}
	if err := dbc.DB(ir.db).
		Preload("OfficeAssignment").
		Preload("Courses", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("last_name").
		Order("id").
		Find(&results).Error; err != nil {
		return nil, uow.MapError("InstructorRepo.List", err)
	}
	return results, nil
}

func (ir *instructorRepo) Update(dbc dbctx.Context, instructor *types.Instructor) error {
	if instructor == nil {
		return nil
	}
	return dbc.Write(ir.db, "InstructorRepo.Update", func(tx *gorm.DB) error {
		return tx.Model(&types.Instructor{ID: instructor.ID}).Updates(map[string]interface{}{
			"last_name":  instructor.LastName,
			"first_name": instructor.FirstMidName,
			"hire_date":  instructor.HireDate,
		}).Error
	})
}

// SaveOffice upserts the office assignment, or deletes it when office is nil.
func (ir *instructorRepo) SaveOffice(dbc dbctx.Context, instructorID int, office *types.OfficeAssignment) error {
	return dbc.Write(ir.db, "InstructorRepo.SaveOffice", func(tx *gorm.DB) error {
		if office == nil {
			return tx.Where("instructor_id = ?", instructorID).Delete(&types.OfficeAssignment{}).Error
		}
		row := &types.OfficeAssignment{InstructorID: instructorID, Location: office.Location}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "instructor_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"location"}),
		}).Create(row).Error
	})
}

// ApplyCourseDelta turns a reconciled membership change into link rows.
func (ir *instructorRepo) ApplyCourseDelta(dbc dbctx.Context, instructorID int, delta association.Delta[*types.Course]) error {
	if delta.Empty() {
		return nil
	}
	added := make([]types.CourseAssignment, 0, len(delta.Added))
	for _, c := range delta.Added {
		added = append(added, types.CourseAssignment{InstructorID: instructorID, CourseID: c.ID})
	}
	removed := make([]int, 0, len(delta.Removed))
	for _, c := range delta.Removed {
		removed = append(removed, c.ID)
	}
	return dbc.Write(ir.db, "InstructorRepo.ApplyCourseDelta", func(tx *gorm.DB) error {
		if len(removed) > 0 {
			if err := tx.Where("instructor_id = ? AND course_id IN ?", instructorID, removed).
				Delete(&types.CourseAssignment{}).Error; err != nil {
				return err
			}
		}
		if len(added) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&added).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the instructor, its office and its course links.
func (ir *instructorRepo) Delete(dbc dbctx.Context, id int) error {
	return dbc.Write(ir.db, "InstructorRepo.Delete", func(tx *gorm.DB) error {
		if err := tx.Where("instructor_id = ?", id).Delete(&types.OfficeAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("instructor_id = ?", id).Delete(&types.CourseAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&types.Instructor{}, id).Error
	})
}
