package school

import (
	"fmt"
	"strings"
)

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

func ParseGrade(s string) (Grade, error) {
	switch g := Grade(strings.ToUpper(strings.TrimSpace(s))); g {
	case GradeA, GradeB, GradeC, GradeD, GradeF:
		return g, nil
	}
	return "", fmt.Errorf("unknown grade %q", s)
}

type Enrollment struct {
	ID        int    `gorm:"primaryKey;column:id" json:"id"`
	CourseID  int    `gorm:"not null;index;column:course_id" json:"course_id"`
	StudentID int    `gorm:"not null;index;column:student_id" json:"student_id"`
	Grade     *Grade `gorm:"size:1;column:grade" json:"grade,omitempty"`

	Course  *Course  `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (Enrollment) TableName() string { return "enrollment" }
