package instructors

import (
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/shared"
)

type IndexQuery struct {
	mediator.QueryOf[IndexResult]
	// ID selects an instructor whose courses are listed.
	ID *int
	// CourseID selects a course whose enrollments are listed.
	CourseID *int
}

type IndexResult struct {
	InstructorID *int              `json:"instructor_id,omitempty"`
	CourseID     *int              `json:"course_id,omitempty"`
	Instructors  []InstructorEntry `json:"instructors"`
	Courses      []CourseEntry     `json:"courses"`
	Enrollments  []EnrollmentEntry `json:"enrollments"`
}

type InstructorEntry struct {
	ID                       int               `json:"id"`
	LastName                 string            `json:"last_name"`
	FirstMidName             string            `json:"first_mid_name"`
	HireDate                 string            `json:"hire_date"`
	OfficeAssignmentLocation string            `json:"office_assignment_location"`
	Courses                  []CourseReference `json:"courses"`
}

type CourseReference struct {
	CourseID    int    `json:"course_id"`
	CourseTitle string `json:"course_title"`
}

type CourseEntry struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	DepartmentName string `json:"department_name"`
}

type EnrollmentEntry struct {
	Grade           *string `json:"grade"`
	StudentFullName string  `json:"student_full_name"`
}

type DetailsQuery struct {
	mediator.QueryOf[Details]
	ID *int
}

func (q DetailsQuery) Validate() error { return requireID(q.ID) }

type Details struct {
	ID                       int    `json:"id"`
	LastName                 string `json:"last_name"`
	FirstMidName             string `json:"first_mid_name"`
	HireDate                 string `json:"hire_date"`
	OfficeAssignmentLocation string `json:"office_assignment_location"`
}

// CreateEditQuery loads the form for a new instructor (nil ID) or an existing one.
type CreateEditQuery struct {
	mediator.QueryOf[CreateEditCommand]
	ID *int
}

// CreateEditCommand creates an instructor when ID is nil, otherwise updates it.
// SelectedCourses replaces the taught courses; nil leaves them untouched.
type CreateEditCommand struct {
	mediator.CommandOf[int]
	ID                       *int             `json:"id"`
	LastName                 string           `json:"last_name"`
	FirstMidName             string           `json:"first_mid_name"`
	HireDate                 string           `json:"hire_date"`
	OfficeAssignmentLocation string           `json:"office_assignment_location"`
	SelectedCourses          []string         `json:"selected_courses"`
	AssignedCourses          []AssignedCourse `json:"assigned_courses,omitempty"`
}

type AssignedCourse struct {
	CourseID int    `json:"course_id"`
	Title    string `json:"title"`
	Assigned bool   `json:"assigned"`
}

func (c CreateEditCommand) Validate() error {
	v := mediator.Violations{}
	shared.Required(v, "last_name", c.LastName)
	shared.Length(v, "last_name", c.LastName, 0, 50)
	shared.Required(v, "first_mid_name", c.FirstMidName)
	shared.Length(v, "first_mid_name", c.FirstMidName, 0, 50)
	shared.Date(v, "hire_date", c.HireDate)
	shared.Length(v, "office_assignment_location", c.OfficeAssignmentLocation, 0, 50)
	return v.Err()
}

type DeleteQuery struct {
	mediator.QueryOf[DeleteCommand]
	ID *int
}

func (q DeleteQuery) Validate() error { return requireID(q.ID) }

type DeleteCommand struct {
	mediator.Command
	ID                       *int   `json:"id"`
	LastName                 string `json:"last_name"`
	FirstMidName             string `json:"first_mid_name"`
	HireDate                 string `json:"hire_date"`
	OfficeAssignmentLocation string `json:"office_assignment_location"`
}

func (c DeleteCommand) Validate() error { return requireID(c.ID) }

func requireID(id *int) error {
	v := mediator.Violations{}
	shared.RequiredID(v, "id", id)
	return v.Err()
}

func Requests() []mediator.Request {
	return []mediator.Request{
		IndexQuery{},
		DetailsQuery{},
		CreateEditQuery{},
		CreateEditCommand{},
		DeleteQuery{},
		DeleteCommand{},
	}
}
