package courses

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
	Courses     repos.CourseRepo
	Departments repos.DepartmentRepo
}

type Module struct {
	log         *logger.Logger
	courses     repos.CourseRepo
	departments repos.DepartmentRepo
}

func New(deps Deps) *Module {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Module{
		log:         log.With("module", "courses"),
		courses:     deps.Courses,
		departments: deps.Departments,
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

func summarize(c *types.Course) Summary {
	out := Summary{ID: c.ID, Title: c.Title, Credits: c.Credits}
	if c.Department != nil {
		out.DepartmentName = c.Department.Name
	}
	return out
}

func (m *Module) Index(dbc dbctx.Context, _ IndexQuery) (IndexResult, error) {
	list, err := m.courses.List(dbc)
	if err != nil {
		return IndexResult{}, err
	}
	out := IndexResult{Courses: make([]Summary, 0, len(list))}
	for _, c := range list {
		out.Courses = append(out.Courses, summarize(c))
	}
	return out, nil
}

func (m *Module) load(dbc dbctx.Context, id *int) (*types.Course, error) {
	if id == nil {
		return nil, requireID(id)
	}
	c, err := m.courses.GetByID(dbc, *id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, shared.NotFound("course", *id)
	}
	return c, nil
}

func (m *Module) Details(dbc dbctx.Context, q DetailsQuery) (Summary, error) {
	c, err := m.load(dbc, q.ID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(c), nil
}

// checkDepartment reports an unknown department as a field violation.
func (m *Module) checkDepartment(dbc dbctx.Context, id int) error {
	d, err := m.departments.GetByID(dbc, id)
	if err != nil {
		return err
	}
	if d == nil {
		v := mediator.Violations{}
		v.Add("department_id", "unknown department")
		return v.Err()
	}
	return nil
}

func (m *Module) Create(dbc dbctx.Context, c CreateCommand) (int, error) {
	existing, err := m.courses.GetByID(dbc, c.Number)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		v := mediator.Violations{}
		v.Add("number", "is already in use")
		return 0, v.Err()
	}
	if err := m.checkDepartment(dbc, c.DepartmentID); err != nil {
		return 0, err
	}
	course := &types.Course{
		ID:           c.Number,
		Title:        c.Title,
		Credits:      c.Credits,
		DepartmentID: c.DepartmentID,
	}
	if err := m.courses.Create(dbc, course); err != nil {
		return 0, err
	}
	if err := dbc.Flush(); err != nil {
		return 0, err
	}
	return course.ID, nil
}

func (m *Module) EditForm(dbc dbctx.Context, q EditQuery) (EditCommand, error) {
	c, err := m.load(dbc, q.ID)
	if err != nil {
		return EditCommand{}, err
	}
	credits := c.Credits
	return EditCommand{ID: c.ID, Title: c.Title, Credits: &credits, DepartmentID: c.DepartmentID}, nil
}

func (m *Module) Edit(dbc dbctx.Context, c EditCommand) (mediator.Unit, error) {
	course, err := m.load(dbc, &c.ID)
	if err != nil {
		return mediator.Unit{}, err
	}
	if err := m.checkDepartment(dbc, c.DepartmentID); err != nil {
		return mediator.Unit{}, err
	}
	course.Title = c.Title
	if c.Credits != nil {
		course.Credits = *c.Credits
	}
	course.DepartmentID = c.DepartmentID
	return mediator.Unit{}, m.courses.Update(dbc, course)
}

func (m *Module) DeleteForm(dbc dbctx.Context, q DeleteQuery) (DeleteCommand, error) {
	c, err := m.load(dbc, q.ID)
	if err != nil {
		return DeleteCommand{}, err
	}
	s := summarize(c)
	return DeleteCommand{ID: s.ID, Title: s.Title, Credits: s.Credits, DepartmentName: s.DepartmentName}, nil
}

// Delete removes the course when it still exists.
func (m *Module) Delete(dbc dbctx.Context, c DeleteCommand) (mediator.Unit, error) {
	course, err := m.courses.GetByID(dbc, c.ID)
	if err != nil {
		return mediator.Unit{}, err
	}
	if course == nil {
		m.log.Debug("course already gone", "course_id", c.ID)
		return mediator.Unit{}, nil
	}
	return mediator.Unit{}, m.courses.Delete(dbc, course.ID)
}
