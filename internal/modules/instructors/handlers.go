package instructors

import (
	"errors"
	"strconv"

	"github.com/yungbote/university-backend/internal/association"
	repos "github.com/yungbote/university-backend/internal/data/repos/school"
	types "github.com/yungbote/university-backend/internal/domain/school"
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/shared"
	"github.com/yungbote/university-backend/internal/platform/dbctx"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type Deps struct {
	Log         *logger.Logger
	Instructors repos.InstructorRepo
	Courses     repos.CourseRepo
	Departments repos.DepartmentRepo
	Enrollments repos.EnrollmentRepo
}

type Module struct {
	log         *logger.Logger
	instructors repos.InstructorRepo
	courses     repos.CourseRepo
	departments repos.DepartmentRepo
	enrollments repos.EnrollmentRepo
}

func New(deps Deps) *Module {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Module{
		log:         log.With("module", "instructors"),
		instructors: deps.Instructors,
		courses:     deps.Courses,
		departments: deps.Departments,
		enrollments: deps.Enrollments,
	}
}

func (m *Module) Register(reg *mediator.Registry) error {
	return errors.Join(
		mediator.Register(reg, m.Index),
		mediator.Register(reg, m.Details),
		mediator.Register(reg, m.Form),
		mediator.Register(reg, m.Save),
		mediator.Register(reg, m.DeleteForm),
		mediator.Register(reg, m.Delete),
	)
}

func (m *Module) Index(dbc dbctx.Context, q IndexQuery) (IndexResult, error) {
	list, err := m.instructors.List(dbc)
	if err != nil {
		return IndexResult{}, err
	}
	out := IndexResult{
		InstructorID: q.ID,
		CourseID:     q.CourseID,
		Instructors:  make([]InstructorEntry, 0, len(list)),
		Courses:      []CourseEntry{},
		Enrollments:  []EnrollmentEntry{},
	}
	for _, i := range list {
		entry := InstructorEntry{
			ID:                       i.ID,
			LastName:                 i.LastName,
			FirstMidName:             i.FirstMidName,
			HireDate:                 types.FormatDate(i.HireDate),
			OfficeAssignmentLocation: i.OfficeLocation(),
			Courses:                  make([]CourseReference, 0, len(i.Courses)),
		}
		for _, c := range i.Courses {
			entry.Courses = append(entry.Courses, CourseReference{CourseID: c.ID, CourseTitle: c.Title})
		}
		out.Instructors = append(out.Instructors, entry)
	}

	if q.ID != nil {
		taught, err := m.courses.ListByInstructor(dbc, *q.ID)
		if err != nil {
			return IndexResult{}, err
		}
		for _, c := range taught {
			entry := CourseEntry{ID: c.ID, Title: c.Title}
			if c.Department != nil {
				entry.DepartmentName = c.Department.Name
			}
			out.Courses = append(out.Courses, entry)
		}
	}

	if q.CourseID != nil {
		enrolled, err := m.enrollments.ListByCourse(dbc, *q.CourseID)
		if err != nil {
			return IndexResult{}, err
		}
		for _, e := range enrolled {
			entry := EnrollmentEntry{}
			if e.Grade != nil {
				g := string(*e.Grade)
				entry.Grade = &g
			}
			if e.Student != nil {
				entry.StudentFullName = e.Student.FullName()
			}
			out.Enrollments = append(out.Enrollments, entry)
		}
	}
	return out, nil
}

func (m *Module) load(dbc dbctx.Context, id *int) (*types.Instructor, error) {
	if id == nil {
		return nil, requireID(id)
	}
	i, err := m.instructors.GetByID(dbc, *id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, shared.NotFound("instructor", *id)
	}
	return i, nil
}

func (m *Module) Details(dbc dbctx.Context, q DetailsQuery) (Details, error) {
	i, err := m.load(dbc, q.ID)
	if err != nil {
		return Details{}, err
	}
	return Details{
		ID:                       i.ID,
		LastName:                 i.LastName,
		FirstMidName:             i.FirstMidName,
		HireDate:                 types.FormatDate(i.HireDate),
		OfficeAssignmentLocation: i.OfficeLocation(),
	}, nil
}

// Form returns the create/edit form with a checklist of every course.
func (m *Module) Form(dbc dbctx.Context, q CreateEditQuery) (CreateEditCommand, error) {
	out := CreateEditCommand{}
	taught := association.Set[int]{}
	if q.ID != nil {
		i, err := m.load(dbc, q.ID)
		if err != nil {
			return CreateEditCommand{}, err
		}
		id := i.ID
		out = CreateEditCommand{
			ID:                       &id,
			LastName:                 i.LastName,
			FirstMidName:             i.FirstMidName,
			HireDate:                 types.FormatDate(i.HireDate),
			OfficeAssignmentLocation: i.OfficeLocation(),
		}
		taught = association.IDs(i.Courses, types.CourseID)
	}

	all, err := m.courses.List(dbc)
	if err != nil {
		return CreateEditCommand{}, err
	}
	out.AssignedCourses = make([]AssignedCourse, 0, len(all))
	out.SelectedCourses = []string{}
	for _, c := range all {
		assigned := taught.Has(c.ID)
		out.AssignedCourses = append(out.AssignedCourses, AssignedCourse{CourseID: c.ID, Title: c.Title, Assigned: assigned})
		if assigned {
			out.SelectedCourses = append(out.SelectedCourses, strconv.Itoa(c.ID))
		}
	}
	return out, nil
}

// Save creates or updates an instructor together with its office and the
// courses it teaches.
func (m *Module) Save(dbc dbctx.Context, c CreateEditCommand) (int, error) {
	selected, err := association.ParseSelection(c.SelectedCourses)
	if err != nil {
		v := mediator.Violations{}
		v.Add("selected_courses", err.Error())
		return 0, v.Err()
	}
	hired, err := types.ParseDate(c.HireDate)
	if err != nil {
		return 0, err
	}

	var instructor *types.Instructor
	hadOffice := false
	if c.ID == nil {
		instructor = &types.Instructor{LastName: c.LastName, FirstMidName: c.FirstMidName, HireDate: hired}
		if err := m.instructors.Create(dbc, instructor); err != nil {
			return 0, err
		}
		if err := dbc.Flush(); err != nil {
			return 0, err
		}
	} else {
		instructor, err = m.load(dbc, c.ID)
		if err != nil {
			return 0, err
		}
		hadOffice = instructor.OfficeAssignment != nil
	}

	all, err := m.courses.List(dbc)
	if err != nil {
		return 0, err
	}

	instructor.UpdateDetails(c.LastName, c.FirstMidName, hired, c.OfficeAssignmentLocation)
	delta := instructor.UpdateCourses(selected, all)

	if c.ID != nil {
		if err := m.instructors.Update(dbc, instructor); err != nil {
			return 0, err
		}
	}
	if instructor.OfficeAssignment != nil || hadOffice {
		if err := m.instructors.SaveOffice(dbc, instructor.ID, instructor.OfficeAssignment); err != nil {
			return 0, err
		}
	}
	if err := m.instructors.ApplyCourseDelta(dbc, instructor.ID, delta); err != nil {
		return 0, err
	}
	m.log.Debug("instructor saved",
		"instructor_id", instructor.ID,
		"courses_added", len(delta.Added),
		"courses_removed", len(delta.Removed),
	)
	return instructor.ID, nil
}

func (m *Module) DeleteForm(dbc dbctx.Context, q DeleteQuery) (DeleteCommand, error) {
	i, err := m.load(dbc, q.ID)
	if err != nil {
		return DeleteCommand{}, err
	}
	id := i.ID
	return DeleteCommand{
		ID:                       &id,
		LastName:                 i.LastName,
		FirstMidName:             i.FirstMidName,
		HireDate:                 types.FormatDate(i.HireDate),
		OfficeAssignmentLocation: i.OfficeLocation(),
	}, nil
}

// Delete removes the instructor and its office, and leaves any department it
// administered without an administrator.
func (m *Module) Delete(dbc dbctx.Context, c DeleteCommand) (mediator.Unit, error) {
	i, err := m.load(dbc, c.ID)
	if err != nil {
		return mediator.Unit{}, err
	}
	if err := m.departments.ClearAdministrator(dbc, i.ID); err != nil {
		return mediator.Unit{}, err
	}
	return mediator.Unit{}, m.instructors.Delete(dbc, i.ID)
}
