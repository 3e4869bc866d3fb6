package school

import (
	"gorm.io/datatypes"
)

type Student struct {
	ID             int            `gorm:"primaryKey;column:id" json:"id"`
	LastName       string         `gorm:"size:50;not null;column:last_name" json:"last_name"`
	FirstMidName   string         `gorm:"size:50;not null;column:first_name" json:"first_mid_name"`
	EnrollmentDate datatypes.Date `gorm:"not null;index;column:enrollment_date" json:"enrollment_date"`

	Enrollments []Enrollment `gorm:"foreignKey:StudentID" json:"enrollments,omitempty"`
}

func (Student) TableName() string { return "student" }

func (s Student) FullName() string { return FullName(s.LastName, s.FirstMidName) }

// FullName renders "Last, First" the way rosters list people.
func FullName(lastName, firstMidName string) string {
	return lastName + ", " + firstMidName
}
