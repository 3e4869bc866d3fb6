package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/university-backend/internal/domain/school"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

func date(s string) datatypes.Date {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return datatypes.Date(t)
}

func grade(g types.Grade) *types.Grade { return &g }

// Seed loads the sample school when the student table is empty. It runs in one
// transaction so a partial seed never survives.
func Seed(ctx context.Context, db *gorm.DB, log *logger.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&types.Student{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed: count students: %w", err)
	}
	if count > 0 {
		log.Debug("seed skipped, database not empty", "students", count)
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		students := []*types.Student{
			{FirstMidName: "Carson", LastName: "Alexander", EnrollmentDate: date("2010-09-01")},
			{FirstMidName: "Meredith", LastName: "Alonso", EnrollmentDate: date("2012-09-01")},
			{FirstMidName: "Arturo", LastName: "Anand", EnrollmentDate: date("2013-09-01")},
			{FirstMidName: "Gytis", LastName: "Barzdukas", EnrollmentDate: date("2012-09-01")},
			{FirstMidName: "Yan", LastName: "Li", EnrollmentDate: date("2012-09-01")},
			{FirstMidName: "Peggy", LastName: "Justice", EnrollmentDate: date("2011-09-01")},
			{FirstMidName: "Laura", LastName: "Norman", EnrollmentDate: date("2013-09-01")},
			{FirstMidName: "Nino", LastName: "Olivetto", EnrollmentDate: date("2005-09-01")},
		}
		if err := tx.Create(&students).Error; err != nil {
			return fmt.Errorf("seed students: %w", err)
		}
		studentID := byName(students, func(s *types.Student) (string, int) { return s.LastName, s.ID })

		instructors := []*types.Instructor{
			{FirstMidName: "Kim", LastName: "Abercrombie", HireDate: date("1995-03-11")},
			{FirstMidName: "Fadi", LastName: "Fakhouri", HireDate: date("2002-07-06")},
			{FirstMidName: "Roger", LastName: "Harui", HireDate: date("1998-07-01")},
			{FirstMidName: "Candace", LastName: "Kapoor", HireDate: date("2001-01-15")},
			{FirstMidName: "Roger", LastName: "Zheng", HireDate: date("2004-02-12")},
		}
		if err := tx.Create(&instructors).Error; err != nil {
			return fmt.Errorf("seed instructors: %w", err)
		}
		instructorID := byName(instructors, func(i *types.Instructor) (string, int) { return i.LastName, i.ID })
		ptr := func(id int) *int { return &id }

		departments := []*types.Department{
			{Name: "English", Budget: 350000, StartDate: date("2007-09-01"), InstructorID: ptr(instructorID["Abercrombie"])},
			{Name: "Mathematics", Budget: 100000, StartDate: date("2007-09-01"), InstructorID: ptr(instructorID["Fakhouri"])},
			{Name: "Engineering", Budget: 350000, StartDate: date("2007-09-01"), InstructorID: ptr(instructorID["Harui"])},
			{Name: "Economics", Budget: 100000, StartDate: date("2007-09-01"), InstructorID: ptr(instructorID["Kapoor"])},
		}
		if err := tx.Create(&departments).Error; err != nil {
			return fmt.Errorf("seed departments: %w", err)
		}
		departmentID := byName(departments, func(d *types.Department) (string, int) { return d.Name, d.ID })

		courses := []*types.Course{
			{ID: 1050, Title: "Chemistry", Credits: 3, DepartmentID: departmentID["Engineering"]},
			{ID: 4022, Title: "Microeconomics", Credits: 3, DepartmentID: departmentID["Economics"]},
			{ID: 4041, Title: "Macroeconomics", Credits: 3, DepartmentID: departmentID["Economics"]},
			{ID: 1045, Title: "Calculus", Credits: 4, DepartmentID: departmentID["Mathematics"]},
			{ID: 3141, Title: "Trigonometry", Credits: 4, DepartmentID: departmentID["Mathematics"]},
			{ID: 2021, Title: "Composition", Credits: 3, DepartmentID: departmentID["English"]},
			{ID: 2042, Title: "Literature", Credits: 4, DepartmentID: departmentID["English"]},
		}
		if err := tx.Create(&courses).Error; err != nil {
			return fmt.Errorf("seed courses: %w", err)
		}
		courseID := byName(courses, func(c *types.Course) (string, int) { return c.Title, c.ID })

		offices := []*types.OfficeAssignment{
			{InstructorID: instructorID["Fakhouri"], Location: "Smith 17"},
			{InstructorID: instructorID["Harui"], Location: "Gowan 27"},
			{InstructorID: instructorID["Kapoor"], Location: "Thompson 304"},
		}
		if err := tx.Create(&offices).Error; err != nil {
			return fmt.Errorf("seed offices: %w", err)
		}

		assignments := []types.CourseAssignment{
			{CourseID: courseID["Chemistry"], InstructorID: instructorID["Kapoor"]},
			{CourseID: courseID["Chemistry"], InstructorID: instructorID["Harui"]},
			{CourseID: courseID["Microeconomics"], InstructorID: instructorID["Zheng"]},
			{CourseID: courseID["Calculus"], InstructorID: instructorID["Fakhouri"]},
			{CourseID: courseID["Trigonometry"], InstructorID: instructorID["Harui"]},
			{CourseID: courseID["Composition"], InstructorID: instructorID["Abercrombie"]},
			{CourseID: courseID["Literature"], InstructorID: instructorID["Abercrombie"]},
		}
		if err := tx.Create(&assignments).Error; err != nil {
			return fmt.Errorf("seed course assignments: %w", err)
		}

		enrollments := []*types.Enrollment{
			{StudentID: studentID["Alexander"], CourseID: courseID["Chemistry"], Grade: grade(types.GradeA)},
			{StudentID: studentID["Alexander"], CourseID: courseID["Microeconomics"], Grade: grade(types.GradeC)},
			{StudentID: studentID["Alexander"], CourseID: courseID["Macroeconomics"], Grade: grade(types.GradeB)},
			{StudentID: studentID["Alonso"], CourseID: courseID["Calculus"], Grade: grade(types.GradeB)},
			{StudentID: studentID["Alonso"], CourseID: courseID["Trigonometry"], Grade: grade(types.GradeB)},
			{StudentID: studentID["Alonso"], CourseID: courseID["Composition"], Grade: grade(types.GradeB)},
			{StudentID: studentID["Anand"], CourseID: courseID["Chemistry"]},
			{StudentID: studentID["Anand"], CourseID: courseID["Microeconomics"], Grade: grade(types.GradeB)},
			{StudentID: studentID["Barzdukas"], CourseID: courseID["Chemistry"], Grade: grade(types.GradeB)},
			{StudentID: studentID["Li"], CourseID: courseID["Composition"], Grade: grade(types.GradeB)},
			{StudentID: studentID["Justice"], CourseID: courseID["Literature"], Grade: grade(types.GradeB)},
		}
		if err := tx.Create(&enrollments).Error; err != nil {
			return fmt.Errorf("seed enrollments: %w", err)
		}

		log.Info("seeded sample school",
			"students", len(students),
			"instructors", len(instructors),
			"departments", len(departments),
			"courses", len(courses),
			"enrollments", len(enrollments),
		)
		return nil
	})
}

func byName[T any](items []T, key func(T) (string, int)) map[string]int {
	out := make(map[string]int, len(items))
	for _, it := range items {
		name, id := key(it)
		out[name] = id
	}
	return out
}
