package students

import (
	"errors"

	repos "github.com/yungbote/university-backend/internal/data/repos/school"
	types "github.com/yungbote/university-backend/internal/domain/school"
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/shared"
	"github.com/yungbote/university-backend/internal/platform/dbctx"
	"github.com/yungbote/university-backend/internal/platform/logger"
	"github.com/yungbote/university-backend/internal/platform/pagination"
)

type Deps struct {
	Log      *logger.Logger
	Students repos.StudentRepo
}

type Module struct {
	log      *logger.Logger
	students repos.StudentRepo
}

func New(deps Deps) *Module {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Module{log: log.With("module", "students"), students: deps.Students}
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

func (m *Module) Index(dbc dbctx.Context, q IndexQuery) (IndexResult, error) {
	search := q.CurrentFilter
	page := 1
	if q.SearchString != nil {
		search = *q.SearchString
	} else if q.Page != nil {
		page = *q.Page
	}
	page, _ = pagination.Normalize(page, PageSize)

	rows, total, err := m.students.Search(dbc, repos.StudentFilter{
		Search: search,
		Sort:   q.SortOrder,
		Offset: pagination.Offset(page, PageSize),
		Limit:  PageSize,
	})
	if err != nil {
		return IndexResult{}, err
	}
	items := make([]Summary, 0, len(rows))
	for _, r := range rows {
		items = append(items, Summary{
			ID:               r.ID,
			FirstMidName:     r.FirstMidName,
			LastName:         r.LastName,
			EnrollmentDate:   types.FormatDate(r.EnrollmentDate),
			EnrollmentsCount: r.EnrollmentsCount,
		})
	}

	nameSort := ""
	if q.SortOrder == "" {
		nameSort = repos.SortNameDesc
	}
	dateSort := repos.SortDate
	if q.SortOrder == repos.SortDate {
		dateSort = repos.SortDateDesc
	}
	return IndexResult{
		CurrentSort:   q.SortOrder,
		NameSortParm:  nameSort,
		DateSortParm:  dateSort,
		CurrentFilter: search,
		SearchString:  search,
		Results:       pagination.New(items, total, page, PageSize),
	}, nil
}

func (m *Module) Details(dbc dbctx.Context, q DetailsQuery) (Details, error) {
	s, err := m.students.GetWithEnrollments(dbc, q.ID)
	if err != nil {
		return Details{}, err
	}
	if s == nil {
		return Details{}, shared.NotFound("student", q.ID)
	}
	out := Details{
		ID:             s.ID,
		FirstMidName:   s.FirstMidName,
		LastName:       s.LastName,
		EnrollmentDate: types.FormatDate(s.EnrollmentDate),
		Enrollments:    make([]EnrollmentEntry, 0, len(s.Enrollments)),
	}
	for _, e := range s.Enrollments {
		entry := EnrollmentEntry{}
		if e.Course != nil {
			entry.CourseTitle = e.Course.Title
		}
		if e.Grade != nil {
			g := string(*e.Grade)
			entry.Grade = &g
		}
		out.Enrollments = append(out.Enrollments, entry)
	}
	return out, nil
}

func (m *Module) Create(dbc dbctx.Context, c CreateCommand) (int, error) {
	enrolled, err := types.ParseDate(c.EnrollmentDate)
	if err != nil {
		return 0, err
	}
	s := &types.Student{
		LastName:       c.LastName,
		FirstMidName:   c.FirstMidName,
		EnrollmentDate: enrolled,
	}
	if err := m.students.Create(dbc, s); err != nil {
		return 0, err
	}
	if err := dbc.Flush(); err != nil {
		return 0, err
	}
	m.log.Debug("student created", "student_id", s.ID)
	return s.ID, nil
}

func (m *Module) EditForm(dbc dbctx.Context, q EditQuery) (EditCommand, error) {
	if q.ID == nil {
		return EditCommand{}, q.Validate()
	}
	s, err := m.students.GetByID(dbc, *q.ID)
	if err != nil {
		return EditCommand{}, err
	}
	if s == nil {
		return EditCommand{}, shared.NotFound("student", *q.ID)
	}
	return EditCommand{
		ID:             s.ID,
		LastName:       s.LastName,
		FirstMidName:   s.FirstMidName,
		EnrollmentDate: types.FormatDate(s.EnrollmentDate),
	}, nil
}

func (m *Module) Edit(dbc dbctx.Context, c EditCommand) (mediator.Unit, error) {
	s, err := m.students.GetByID(dbc, c.ID)
	if err != nil {
		return mediator.Unit{}, err
	}
	if s == nil {
		return mediator.Unit{}, shared.NotFound("student", c.ID)
	}
	enrolled, err := types.ParseDate(c.EnrollmentDate)
	if err != nil {
		return mediator.Unit{}, err
	}
	s.LastName = c.LastName
	s.FirstMidName = c.FirstMidName
	s.EnrollmentDate = enrolled
	return mediator.Unit{}, m.students.Update(dbc, s)
}

func (m *Module) DeleteForm(dbc dbctx.Context, q DeleteQuery) (DeleteCommand, error) {
	s, err := m.students.GetByID(dbc, q.ID)
	if err != nil {
		return DeleteCommand{}, err
	}
	if s == nil {
		return DeleteCommand{}, shared.NotFound("student", q.ID)
	}
	return DeleteCommand{
		ID:             s.ID,
		FirstMidName:   s.FirstMidName,
		LastName:       s.LastName,
		EnrollmentDate: types.FormatDate(s.EnrollmentDate),
	}, nil
}

func (m *Module) Delete(dbc dbctx.Context, c DeleteCommand) (mediator.Unit, error) {
	s, err := m.students.GetByID(dbc, c.ID)
	if err != nil {
		return mediator.Unit{}, err
	}
	if s == nil {
		return mediator.Unit{}, shared.NotFound("student", c.ID)
	}
	return mediator.Unit{}, m.students.Delete(dbc, s.ID)
}
