package students

import (
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/shared"
	"github.com/yungbote/university-backend/internal/platform/pagination"
)

// PageSize is the number of students listed per index page.
const PageSize = 3

type IndexQuery struct {
	mediator.QueryOf[IndexResult]
	SortOrder     string
	CurrentFilter string
	// SearchString is nil when the user did not submit a new search; the
	// current filter is kept and paging continues.
	SearchString *string
	Page         *int
}

type IndexResult struct {
	CurrentSort   string                   `json:"current_sort"`
	NameSortParm  string                   `json:"name_sort_parm"`
	DateSortParm  string                   `json:"date_sort_parm"`
	CurrentFilter string                   `json:"current_filter"`
	SearchString  string                   `json:"search_string"`
	Results       pagination.Page[Summary] `json:"results"`
}

type Summary struct {
	ID               int    `json:"id"`
	FirstMidName     string `json:"first_mid_name"`
	LastName         string `json:"last_name"`
	EnrollmentDate   string `json:"enrollment_date"`
	EnrollmentsCount int    `json:"enrollments_count"`
}

type DetailsQuery struct {
	mediator.QueryOf[Details]
	ID int
}

type Details struct {
	ID             int               `json:"id"`
	FirstMidName   string            `json:"first_mid_name"`
	LastName       string            `json:"last_name"`
	EnrollmentDate string            `json:"enrollment_date"`
	Enrollments    []EnrollmentEntry `json:"enrollments"`
}

type EnrollmentEntry struct {
	CourseTitle string  `json:"course_title"`
	Grade       *string `json:"grade"`
}

type CreateCommand struct {
	mediator.CommandOf[int]
	LastName       string `json:"last_name"`
	FirstMidName   string `json:"first_mid_name"`
	EnrollmentDate string `json:"enrollment_date"`
}

func (c CreateCommand) Validate() error {
	v := mediator.Violations{}
	validateStudent(v, c.LastName, c.FirstMidName, c.EnrollmentDate)
	return v.Err()
}

type EditQuery struct {
	mediator.QueryOf[EditCommand]
	ID *int
}

func (q EditQuery) Validate() error {
	v := mediator.Violations{}
	shared.RequiredID(v, "id", q.ID)
	return v.Err()
}

type EditCommand struct {
	mediator.Command
	ID             int    `json:"id"`
	LastName       string `json:"last_name"`
	FirstMidName   string `json:"first_mid_name"`
	EnrollmentDate string `json:"enrollment_date"`
}

func (c EditCommand) Validate() error {
	v := mediator.Violations{}
	validateStudent(v, c.LastName, c.FirstMidName, c.EnrollmentDate)
	return v.Err()
}

type DeleteQuery struct {
	mediator.QueryOf[DeleteCommand]
	ID int
}

type DeleteCommand struct {
	mediator.Command
	ID             int    `json:"id"`
	FirstMidName   string `json:"first_mid_name"`
	LastName       string `json:"last_name"`
	EnrollmentDate string `json:"enrollment_date"`
}

func validateStudent(v mediator.Violations, lastName, firstMidName, enrollmentDate string) {
	shared.Length(v, "last_name", lastName, 1, 50)
	shared.Length(v, "first_mid_name", firstMidName, 1, 50)
	shared.Date(v, "enrollment_date", enrollmentDate)
}

// Requests lists one value of every request type the module handles.
func Requests() []mediator.Request {
	return []mediator.Request{
		IndexQuery{},
		DetailsQuery{},
		CreateCommand{},
		EditQuery{},
		EditCommand{},
		DeleteQuery{},
		DeleteCommand{},
	}
}
