package school

import (
	"strings"

	"gorm.io/datatypes"

	"github.com/yungbote/university-backend/internal/association"
)

type Instructor struct {
	ID           int            `gorm:"primaryKey;column:id" json:"id"`
	LastName     string         `gorm:"size:50;not null;column:last_name" json:"last_name"`
	FirstMidName string         `gorm:"size:50;not null;column:first_name" json:"first_mid_name"`
	HireDate     datatypes.Date `gorm:"not null;column:hire_date" json:"hire_date"`

	Courses          []*Course         `gorm:"many2many:course_instructor;joinForeignKey:InstructorID;joinReferences:CourseID" json:"courses,omitempty"`
	OfficeAssignment *OfficeAssignment `gorm:"foreignKey:InstructorID" json:"office_assignment,omitempty"`
}

func (Instructor) TableName() string { return "instructor" }

func (i Instructor) FullName() string { return FullName(i.LastName, i.FirstMidName) }

// OfficeLocation is empty when the instructor has no office.
func (i Instructor) OfficeLocation() string {
	if i.OfficeAssignment == nil {
		return ""
	}
	return i.OfficeAssignment.Location
}

type OfficeAssignment struct {
	InstructorID int    `gorm:"primaryKey;autoIncrement:false;column:instructor_id" json:"instructor_id"`
	Location     string `gorm:"size:50;column:location" json:"location"`
}

func (OfficeAssignment) TableName() string { return "office_assignment" }

// UpdateDetails copies the editable fields. A blank location drops the office,
// a missing office is created, an existing one is moved.
func (i *Instructor) UpdateDetails(lastName, firstMidName string, hireDate datatypes.Date, location string) {
	i.LastName = lastName
	i.FirstMidName = firstMidName
	i.HireDate = hireDate

	location = strings.TrimSpace(location)
	switch {
	case location == "":
		i.OfficeAssignment = nil
	case i.OfficeAssignment == nil:
		i.OfficeAssignment = &OfficeAssignment{InstructorID: i.ID, Location: location}
	default:
		i.OfficeAssignment.Location = location
	}
}

// UpdateCourses reconciles the taught courses against selected. A nil selection
// leaves the collection untouched.
func (i *Instructor) UpdateCourses(selected association.Set[int], all []*Course) association.Delta[*Course] {
	if selected == nil {
		return association.Delta[*Course]{}
	}
	return association.Reconcile(selected, &i.Courses, all, CourseID)
}

func CourseID(c *Course) int { return c.ID }
