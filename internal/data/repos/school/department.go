package school

import (
	"gorm.io/gorm"

	"github.com/yungbote/university-backend/internal/data/uow"
	types "github.com/yungbote/university-backend/internal/domain/school"
	"github.com/yungbote/university-backend/internal/platform/dbctx"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type DepartmentRepo interface {
	Create(dbc dbctx.Context, department *types.Department) error
	GetByID(dbc dbctx.Context, id int) (*types.Department, error)
	List(dbc dbctx.Context) ([]*types.Department, error)
	Update(dbc dbctx.Context, department *types.Department) error
	Delete(dbc dbctx.Context, id int) error
	ClearAdministrator(dbc dbctx.Context, instructorID int) error
}

type departmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDepartmentRepo(db *gorm.DB, baseLog *logger.Logger) DepartmentRepo {
	repoLog := baseLog.With("repo", "DepartmentRepo")
	return &departmentRepo{db: db, log: repoLog}
}

func (dr *departmentRepo) Create(dbc dbctx.Context, department *types.Department) error {
	if department == nil {
		return nil
	}
	return dbc.Write(dr.db, "DepartmentRepo.Create", func(tx *gorm.DB) error {
		return tx.Omit("Administrator", "Courses").Create(department).Error
	})
}

func (dr *departmentRepo) GetByID(dbc dbctx.Context, id int) (*types.Department, error) {
	var results []*types.Department
	if err := dbc.DB(dr.db).
		Preload("Administrator").
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, uow.MapError("DepartmentRepo.GetByID", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (dr *departmentRepo) List(dbc dbctx.Context) ([]*types.Department, error) {
	results := []*types.Department{}
	if err := dbc.DB(dr.db).
		Preload("Administrator").
		Order("name").
		Find(&results).Error; err != nil {
		return nil, uow.MapError("DepartmentRepo.List", err)
	}
	return results, nil
}

func (dr *departmentRepo) Update(dbc dbctx.Context, department *types.Department) error {
	if department == nil {
		return nil
	}
	return dbc.Write(dr.db, "DepartmentRepo.Update", func(tx *gorm.DB) error {
		return tx.Model(&types.Department{ID: department.ID}).Updates(map[string]interface{}{
			"name":          department.Name,
			"budget":        department.Budget,
			"start_date":    department.StartDate,
			"instructor_id": department.InstructorID,
		}).Error
	})
}

// Delete removes the department and every course it owns.
func (dr *departmentRepo) Delete(dbc dbctx.Context, id int) error {
	return dbc.Write(dr.db, "DepartmentRepo.Delete", func(tx *gorm.DB) error {
		var courseIDs []int
		if err := tx.Model(&types.Course{}).Where("department_id = ?", id).Pluck("id", &courseIDs).Error; err != nil {
			return err
		}
		if err := deleteCourses(tx, courseIDs); err != nil {
			return err
		}
		return tx.Delete(&types.Department{}, id).Error
	})
}

// ClearAdministrator detaches instructorID from every department it administers.
func (dr *departmentRepo) ClearAdministrator(dbc dbctx.Context, instructorID int) error {
	return dbc.Write(dr.db, "DepartmentRepo.ClearAdministrator", func(tx *gorm.DB) error {
		return tx.Model(&types.Department{}).
			Where("instructor_id = ?", instructorID).
			Update("instructor_id", nil).Error
	})
}
