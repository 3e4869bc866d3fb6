package departments

import (
	"errors"

	repos "github.com/yungbote/university-backend/internal/data/repos/school"
	types "github.com/yungbote/university-backend/internal/domain/school"
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/shared"
	"github.com/yungbote/university-backend/internal/platform/dbctx"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

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
		log:         log.With("module", "departments"),
		departments: deps.Departments,
		instructors: deps.Instructors,
	}
}

func (m *Module) Register(reg *mediator.Registry) error {
	return errors.Join(
		mediator.Register(reg, m.Index),
		mediator.Register(reg, m.Details),
		mediator.Register(reg, m.Create),
		mediator.Register(reg, m.EditForm),
		mediator.Register(reg, m.Edit),
		mediator.Register(reg, m.DeleteForm),
		mediator.Register(reg, m.Delete),
	)
}

func summarize(d *types.Department) Summary {
	return Summary{
		ID:                    d.ID,
		Name:                  d.Name,
		Budget:                d.Budget,
		StartDate:             types.FormatDate(d.StartDate),
		AdministratorFullName: d.AdministratorName(),
	}
}

func (m *Module) Index(dbc dbctx.Context, _ IndexQuery) ([]Summary, error) {
	list, err := m.departments.List(dbc)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(list))
	for _, d := range list {
		out = append(out, summarize(d))
	}
	return out, nil
}

func (m *Module) load(dbc dbctx.Context, id int) (*types.Department, error) {
	d, err := m.departments.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, shared.NotFound("department", id)
	}
	return d, nil
}

func (m *Module) Details(dbc dbctx.Context, q DetailsQuery) (Summary, error) {
	d, err := m.load(dbc, q.ID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(d), nil
}

func (m *Module) checkInstructor(dbc dbctx.Context, id int) error {
	i, err := m.instructors.GetByID(dbc, id)
	if err != nil {
		return err
	}
	if i == nil {
		v := mediator.Violations{}
		v.Add("instructor_id", "unknown instructor")
		return v.Err()
	}
	return nil
}

func (m *Module) Create(dbc dbctx.Context, c CreateCommand) (int, error) {
	if c.InstructorID == nil || c.Budget == nil {
		return 0, c.Validate()
	}
	if err := m.checkInstructor(dbc, *c.InstructorID); err != nil {
		return 0, err
	}
	start, err := types.ParseDate(c.StartDate)
	if err != nil {
		return 0, err
	}
	d := &types.Department{
		Name:         c.Name,
		Budget:       *c.Budget,
		StartDate:    start,
		InstructorID: c.InstructorID,
	}
	if err := m.departments.Create(dbc, d); err != nil {
		return 0, err
	}
	if err := dbc.Flush(); err != nil {
		return 0, err
	}
	return d.ID, nil
}

func (m *Module) EditForm(dbc dbctx.Context, q EditQuery) (EditCommand, error) {
	d, err := m.load(dbc, q.ID)
	if err != nil {
		return EditCommand{}, err
	}
	budget := d.Budget
	return EditCommand{
		ID:           d.ID,
		Name:         d.Name,
		Budget:       &budget,
		StartDate:    types.FormatDate(d.StartDate),
		InstructorID: d.InstructorID,
	}, nil
}

func (m *Module) Edit(dbc dbctx.Context, c EditCommand) (mediator.Unit, error) {
	if c.InstructorID == nil || c.Budget == nil {
		return mediator.Unit{}, c.Validate()
	}
	d, err := m.load(dbc, c.ID)
	if err != nil {
		return mediator.Unit{}, err
	}
	if err := m.checkInstructor(dbc, *c.InstructorID); err != nil {
		return mediator.Unit{}, err
	}
	start, err := types.ParseDate(c.StartDate)
	if err != nil {
		return mediator.Unit{}, err
	}
	d.Name = c.Name
	d.Budget = *c.Budget
	d.StartDate = start
	d.InstructorID = c.InstructorID
	return mediator.Unit{}, m.departments.Update(dbc, d)
}

func (m *Module) DeleteForm(dbc dbctx.Context, q DeleteQuery) (DeleteCommand, error) {
	d, err := m.load(dbc, q.ID)
	if err != nil {
		return DeleteCommand{}, err
	}
	s := summarize(d)
	return DeleteCommand{
		ID:                    s.ID,
		Name:                  s.Name,
		Budget:                s.Budget,
		StartDate:             s.StartDate,
		AdministratorFullName: s.AdministratorFullName,
	}, nil
}

// Delete removes the department, and the courses it offers, when it still exists.
func (m *Module) Delete(dbc dbctx.Context, c DeleteCommand) (mediator.Unit, error) {
	d, err := m.departments.GetByID(dbc, c.ID)
	if err != nil {
		return mediator.Unit{}, err
	}
	if d == nil {
		m.log.Debug("department already gone", "department_id", c.ID)
		return mediator.Unit{}, nil
	}
	return mediator.Unit{}, m.departments.Delete(dbc, d.ID)
}
