package school

type Course struct {
	// ID is the catalog number chosen by the registrar, not generated.
	ID           int    `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Title        string `gorm:"size:50;not null;column:title" json:"title"`
	Credits      int    `gorm:"not null;column:credits" json:"credits"`
	DepartmentID int    `gorm:"not null;index;column:department_id" json:"department_id"`

	Department  *Department  `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Enrollments []Enrollment `gorm:"foreignKey:CourseID" json:"enrollments,omitempty"`
}

func (Course) TableName() string { return "course" }

const (
	MinCredits = 0
	MaxCredits = 5
)

// CourseAssignment is the join row behind Instructor.Courses.
type CourseAssignment struct {
	InstructorID int `gorm:"primaryKey;autoIncrement:false;column:instructor_id" json:"instructor_id"`
	CourseID     int `gorm:"primaryKey;autoIncrement:false;index;column:course_id" json:"course_id"`
}

func (CourseAssignment) TableName() string { return "course_instructor" }
