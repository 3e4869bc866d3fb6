// Package lookups serves the option lists used by edit forms.
package lookups

import (
	"errors"

	repos "github.com/yungbote/university-backend/internal/data/repos/school"
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/platform/dbctx"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type Option struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type DepartmentsQuery struct {
	mediator.QueryOf[[]Option]
}

// InstructorsQuery lists instructors by full name, "Last, First".
type InstructorsQuery struct {
	mediator.QueryOf[[]Option]
}

type Deps struct {
	Log         *logger.Logger
	Departments repos.DepartmentRepo
	Instructors repos.InstructorRepo
}

type Module struct {
	log         *logger.Logger
	departments repos.DepartmentRepo
	instructors repos.InstructorRepo
}

func New(deps Deps) *Module {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Module{
		log:         log.With("module", "lookups"),
		departments: deps.Departments,
		instructors: deps.Instructors,
	}
}

func (m *Module) Register(reg *mediator.Registry) error {
	return errors.Join(
		mediator.Register(reg, m.Departments),
		mediator.Register(reg, m.Instructors),
	)
}

func Requests() []mediator.Request {
	return []mediator.Request{DepartmentsQuery{}, InstructorsQuery{}}
}

func (m *Module) Departments(dbc dbctx.Context, _ DepartmentsQuery) ([]Option, error) {
	list, err := m.departments.List(dbc)
	if err != nil {
		return nil, err
	}
	out := make([]Option, 0, len(list))
	for _, d := range list {
		out = append(out, Option{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

func (m *Module) Instructors(dbc dbctx.Context, _ InstructorsQuery) ([]Option, error) {
	list, err := m.instructors.List(dbc)
	if err != nil {
		return nil, err
	}
	out := make([]Option, 0, len(list))
	for _, i := range list {
		out = append(out, Option{ID: i.ID, Name: i.FullName()})
	}
	return out, nil
}
