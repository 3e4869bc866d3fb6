package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/university-backend/internal/domain/school"
)

func Date(tb testing.TB, s string) datatypes.Date {
	tb.Helper()
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		tb.Fatalf("parse date %q: %v", s, err)
	}
	return datatypes.Date(t)
}

func SeedStudent(tb testing.TB, ctx context.Context, tx *gorm.DB, last, first, enrolled string) *types.Student {
	tb.Helper()
	s := &types.Student{LastName: last, FirstMidName: first, EnrollmentDate: Date(tb, enrolled)}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed student: %v", err)
	}
	return s
}

func SeedInstructor(tb testing.TB, ctx context.Context, tx *gorm.DB, last, first string) *types.Instructor {
	tb.Helper()
	i := &types.Instructor{LastName: last, FirstMidName: first, HireDate: Date(tb, "2001-01-15")}
	if err := tx.WithContext(ctx).Create(i).Error; err != nil {
		tb.Fatalf("seed instructor: %v", err)
	}
	return i
}

func SeedOffice(tb testing.TB, ctx context.Context, tx *gorm.DB, instructorID int, location string) *types.OfficeAssignment {
	tb.Helper()
	o := &types.OfficeAssignment{InstructorID: instructorID, Location: location}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed office: %v", err)
	}
	return o
}

func SeedDepartment(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, administratorID *int) *types.Department {
	tb.Helper()
	d := &types.Department{Name: name, Budget: 100000, StartDate: Date(tb, "2007-09-01"), InstructorID: administratorID}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed department: %v", err)
	}
	return d
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, id int, title string, departmentID int) *types.Course {
	tb.Helper()
	c := &types.Course{ID: id, Title: title, Credits: 3, DepartmentID: departmentID}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedAssignment(tb testing.TB, ctx context.Context, tx *gorm.DB, instructorID, courseID int) {
	tb.Helper()
	a := &types.CourseAssignment{InstructorID: instructorID, CourseID: courseID}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed course assignment: %v", err)
	}
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, studentID, courseID int, grade types.Grade) *types.Enrollment {
	tb.Helper()
	e := &types.Enrollment{StudentID: studentID, CourseID: courseID}
	if grade != "" {
		e.Grade = &grade
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}
