package departments

import (
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/shared"
)

type IndexQuery struct {
	mediator.QueryOf[[]Summary]
}

// Summary is the read model of the index, details and delete views.
type Summary struct {
	ID                    int     `json:"id"`
	Name                  string  `json:"name"`
	Budget                float64 `json:"budget"`
	StartDate             string  `json:"start_date"`
	AdministratorFullName string  `json:"administrator_full_name"`
}

type DetailsQuery struct {
	mediator.QueryOf[Summary]
	ID int
}

type CreateCommand struct {
	mediator.CommandOf[int]
	Name         string   `json:"name"`
	Budget       *float64 `json:"budget"`
	StartDate    string   `json:"start_date"`
	InstructorID *int     `json:"instructor_id"`
}

func (c CreateCommand) Validate() error {
	v := mediator.Violations{}
	validateDepartment(v, c.Name, c.Budget, c.StartDate, c.InstructorID)
	return v.Err()
}

type EditQuery struct {
	mediator.QueryOf[EditCommand]
	ID int
}

type EditCommand struct {
	mediator.Command
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Budget       *float64 `json:"budget"`
	StartDate    string   `json:"start_date"`
	InstructorID *int     `json:"instructor_id"`
}

func (c EditCommand) Validate() error {
	v := mediator.Violations{}
	validateDepartment(v, c.Name, c.Budget, c.StartDate, c.InstructorID)
	return v.Err()
}

type DeleteQuery struct {
	mediator.QueryOf[DeleteCommand]
	ID int
}

type DeleteCommand struct {
	mediator.Command
	ID                    int     `json:"id"`
	Name                  string  `json:"name"`
	Budget                float64 `json:"budget"`
	StartDate             string  `json:"start_date"`
	AdministratorFullName string  `json:"administrator_full_name"`
}

func validateDepartment(v mediator.Violations, name string, budget *float64, startDate string, instructorID *int) {
	shared.Length(v, "name", name, 3, 50)
	if budget == nil {
		v.Add("budget", "is required")
	} else {
		v.Check(*budget >= 0, "budget", "must not be negative")
	}
	shared.Date(v, "start_date", startDate)
	shared.RequiredID(v, "instructor_id", instructorID)
}

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
