package school

import (
	"gorm.io/datatypes"
)

type Department struct {
	ID           int            `gorm:"primaryKey;column:id" json:"id"`
	Name         string         `gorm:"size:50;not null;column:name" json:"name"`
	Budget       float64        `gorm:"type:numeric(19,4);not null;column:budget" json:"budget"`
	StartDate    datatypes.Date `gorm:"not null;column:start_date" json:"start_date"`
	InstructorID *int           `gorm:"index;column:instructor_id" json:"instructor_id,omitempty"`

	Administrator *Instructor `gorm:"foreignKey:InstructorID" json:"administrator,omitempty"`
	Courses       []Course    `gorm:"foreignKey:DepartmentID" json:"courses,omitempty"`
}

func (Department) TableName() string { return "department" }

// AdministratorName is empty when the department has no administrator loaded.
func (d Department) AdministratorName() string {
	if d.Administrator == nil {
		return ""
	}
	return d.Administrator.FullName()
}
