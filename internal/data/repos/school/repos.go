package school

import (
	"gorm.io/gorm"

	"github.com/yungbote/university-backend/internal/platform/logger"
)

// Repos bundles every school repository over one database handle.
type Repos struct {
	Students    StudentRepo
	Courses     CourseRepo
	Departments DepartmentRepo
	Instructors InstructorRepo
	Enrollments EnrollmentRepo
}

func New(db *gorm.DB, baseLog *logger.Logger) Repos {
	return Repos{
		Students:    NewStudentRepo(db, baseLog),
		Courses:     NewCourseRepo(db, baseLog),
		Departments: NewDepartmentRepo(db, baseLog),
		Instructors: NewInstructorRepo(db, baseLog),
		Enrollments: NewEnrollmentRepo(db, baseLog),
	}
}
