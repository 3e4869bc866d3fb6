package courses

import (
	"github.com/yungbote/university-backend/internal/domain/school"
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/shared"
)

type IndexQuery struct {
	mediator.QueryOf[IndexResult]
}

type IndexResult struct {
	Courses []Summary `json:"courses"`
}

// Summary is the read model shared by the index, details and delete views.
type Summary struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Credits        int    `json:"credits"`
	DepartmentName string `json:"department_name"`
}

type DetailsQuery struct {
	mediator.QueryOf[Summary]
	ID *int
}

func (q DetailsQuery) Validate() error { return requireID(q.ID) }

type CreateCommand struct {
	mediator.CommandOf[int]
	Number       int    `json:"number"`
	Title        string `json:"title"`
	Credits      int    `json:"credits"`
	DepartmentID int    `json:"department_id"`
}

func (c CreateCommand) Validate() error {
	v := mediator.Violations{}
	v.Check(c.Number > 0, "number", "must be a positive course number")
	shared.Length(v, "title", c.Title, 3, 50)
	checkCredits(v, &c.Credits)
	v.Check(c.DepartmentID > 0, "department_id", "is required")
	return v.Err()
}

type EditQuery struct {
	mediator.QueryOf[EditCommand]
	ID *int
}

func (q EditQuery) Validate() error { return requireID(q.ID) }

type EditCommand struct {
	mediator.Command
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Credits      *int   `json:"credits"`
	DepartmentID int    `json:"department_id"`
}

func (c EditCommand) Validate() error {
	v := mediator.Violations{}
	shared.Length(v, "title", c.Title, 3, 50)
	checkCredits(v, c.Credits)
	v.Check(c.DepartmentID > 0, "department_id", "is required")
	return v.Err()
}

type DeleteQuery struct {
	mediator.QueryOf[DeleteCommand]
	ID *int
}

func (q DeleteQuery) Validate() error { return requireID(q.ID) }

type DeleteCommand struct {
	mediator.Command
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Credits        int    `json:"credits"`
	DepartmentName string `json:"department_name"`
}

func checkCredits(v mediator.Violations, credits *int) {
	if credits == nil {
		v.Add("credits", "is required")
		return
	}
	v.Check(*credits >= school.MinCredits && *credits <= school.MaxCredits, "credits", "must be between 0 and 5")
}

func requireID(id *int) error {
	v := mediator.Violations{}
	shared.RequiredID(v, "id", id)
	return v.Err()
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
