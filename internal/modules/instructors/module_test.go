package instructors

import (
	"context"
	"errors"
	"testing"

	dbpkg "github.com/yungbote/university-backend/internal/data/db"
	repos "github.com/yungbote/university-backend/internal/data/repos/school"
	"github.com/yungbote/university-backend/internal/data/repos/testutil"
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/shared"
)

func newDispatcher(t *testing.T) *mediator.Dispatcher {
	t.Helper()
	db := testutil.SQLite(t)
	log := testutil.Logger(t)
	if err := dbpkg.Seed(context.Background(), db, log); err != nil {
		t.Fatalf("seed: %v", err)
	}
	rs := repos.New(db, log)
	reg := mediator.NewRegistry()
	m := New(Deps{
		Log:         log,
		Instructors: rs.Instructors,
		Courses:     rs.Courses,
		Departments: rs.Departments,
		Enrollments: rs.Enrollments,
	})
	if err := m.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	reg.Expect(Requests()...)
	if err := reg.Seal(); err != nil {
		t.Fatalf("seal: %v", err)
	}
	d, err := mediator.NewDispatcher(mediator.DispatcherDeps{
		Registry:  reg,
		Behaviors: []mediator.Behavior{mediator.ValidationBehavior()},
	})
	if err != nil {
		t.Fatalf("dispatcher: %v", err)
	}
	return d
}

func instructorID(t *testing.T, d *mediator.Dispatcher, lastName string) int {
	t.Helper()
	res, err := mediator.Send[IndexResult](context.Background(), d, IndexQuery{})
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	for _, i := range res.Instructors {
		if i.LastName == lastName {
			return i.ID
		}
	}
	t.Fatalf("instructor %s missing", lastName)
	return 0
}

func courseIDs(refs []CourseReference) []int {
	out := make([]int, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.CourseID)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestIndex_OrderedWithSelections(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()
	harui := instructorID(t, d, "Harui")
	chemistry := 1050

	res, err := mediator.Send[IndexResult](ctx, d, IndexQuery{ID: &harui, CourseID: &chemistry})
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	names := []string{}
	for _, i := range res.Instructors {
		names = append(names, i.LastName)
	}
	want := []string{"Abercrombie", "Fakhouri", "Harui", "Kapoor", "Zheng"}
	if len(names) != len(want) {
		t.Fatalf("instructors: want=%v got=%v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("instructors: want=%v got=%v", want, names)
		}
	}
	if res.Instructors[2].OfficeAssignmentLocation != "Gowan 27" {
		t.Fatalf("Harui office: got=%q", res.Instructors[2].OfficeAssignmentLocation)
	}
	if res.Instructors[0].OfficeAssignmentLocation != "" {
		t.Fatalf("Abercrombie has no office, got=%q", res.Instructors[0].OfficeAssignmentLocation)
	}
	if res.InstructorID == nil || *res.InstructorID != harui || res.CourseID == nil || *res.CourseID != chemistry {
		t.Fatalf("selection not echoed: got=%v/%v", res.InstructorID, res.CourseID)
	}
	if len(res.Courses) != 2 || res.Courses[0].ID != 1050 || res.Courses[0].DepartmentName != "Engineering" || res.Courses[1].ID != 3141 {
		t.Fatalf("Harui courses: got=%+v", res.Courses)
	}
	if len(res.Enrollments) != 3 {
		t.Fatalf("Chemistry enrollments: want=3 got=%d", len(res.Enrollments))
	}
	first := res.Enrollments[0]
	if first.StudentFullName != "Alexander, Carson" || first.Grade == nil || *first.Grade != "A" {
		t.Fatalf("first enrollment: got=%+v", first)
	}
	if res.Enrollments[1].Grade != nil {
		t.Fatalf("ungraded enrollment must have nil grade, got=%v", *res.Enrollments[1].Grade)
	}
}

func TestIndex_NoSelection(t *testing.T) {
	d := newDispatcher(t)
	res, err := mediator.Send[IndexResult](context.Background(), d, IndexQuery{})
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if res.Courses == nil || len(res.Courses) != 0 || res.Enrollments == nil || len(res.Enrollments) != 0 {
		t.Fatalf("want empty courses and enrollments, got=%+v/%+v", res.Courses, res.Enrollments)
	}
}

func TestForm_MarksAssignedCourses(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	blank, err := mediator.Send[CreateEditCommand](ctx, d, CreateEditQuery{})
	if err != nil {
		t.Fatalf("blank form: %v", err)
	}
	if blank.ID != nil || len(blank.AssignedCourses) != 7 {
		t.Fatalf("blank form: got id=%v courses=%d", blank.ID, len(blank.AssignedCourses))
	}
	for _, c := range blank.AssignedCourses {
		if c.Assigned {
			t.Fatalf("blank form must assign nothing, got=%+v", c)
		}
	}

	harui := instructorID(t, d, "Harui")
	form, err := mediator.Send[CreateEditCommand](ctx, d, CreateEditQuery{ID: &harui})
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	assigned := []int{}
	for _, c := range form.AssignedCourses {
		if c.Assigned {
			assigned = append(assigned, c.CourseID)
		}
	}
	if !equalInts(assigned, []int{1050, 3141}) {
		t.Fatalf("assigned: want=[1050 3141] got=%v", assigned)
	}
	if form.OfficeAssignmentLocation != "Gowan 27" || form.HireDate != "1998-07-01" {
		t.Fatalf("form details: got=%+v", form)
	}
}

// Chemistry stays, Trigonometry goes, Microeconomics is added.
func TestSave_ReconcilesCourses(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()
	harui := instructorID(t, d, "Harui")

	id, err := mediator.Send[int](ctx, d, CreateEditCommand{
		ID:                       &harui,
		LastName:                 "Harui",
		FirstMidName:             "Roger",
		HireDate:                 "1998-07-01",
		OfficeAssignmentLocation: "Gowan 27",
		SelectedCourses:          []string{"1050", "4022"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id != harui {
		t.Fatalf("id: want=%d got=%d", harui, id)
	}
	res, err := mediator.Send[IndexResult](ctx, d, IndexQuery{ID: &harui})
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	got := []int{}
	for _, c := range res.Courses {
		got = append(got, c.ID)
	}
	if !equalInts(got, []int{1050, 4022}) {
		t.Fatalf("courses: want=[1050 4022] got=%v", got)
	}
	for _, i := range res.Instructors {
		if i.LastName == "Kapoor" && !equalInts(courseIDs(i.Courses), []int{1050}) {
			t.Fatalf("other instructors untouched, Kapoor got=%v", courseIDs(i.Courses))
		}
	}
}

func TestSave_NilSelectionKeepsCourses(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()
	harui := instructorID(t, d, "Harui")

	if _, err := mediator.Send[int](ctx, d, CreateEditCommand{
		ID:           &harui,
		LastName:     "Harui",
		FirstMidName: "Roger",
		HireDate:     "1998-07-01",
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	details, err := mediator.Send[Details](ctx, d, DetailsQuery{ID: &harui})
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details.OfficeAssignmentLocation != "" {
		t.Fatalf("blank location drops the office, got=%q", details.OfficeAssignmentLocation)
	}
	res, err := mediator.Send[IndexResult](ctx, d, IndexQuery{ID: &harui})
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if len(res.Courses) != 2 {
		t.Fatalf("nil selection keeps courses: want=2 got=%d", len(res.Courses))
	}
}

func TestSave_CreatesWithOfficeAndCourses(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	id, err := mediator.Send[int](ctx, d, CreateEditCommand{
		LastName:                 "Hopper",
		FirstMidName:             "Grace",
		HireDate:                 "2020-01-06",
		OfficeAssignmentLocation: "Babbage 1",
		SelectedCourses:          []string{"1045", " 3141 "},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatalf("create must return the generated id")
	}
	details, err := mediator.Send[Details](ctx, d, DetailsQuery{ID: &id})
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details.LastName != "Hopper" || details.OfficeAssignmentLocation != "Babbage 1" || details.HireDate != "2020-01-06" {
		t.Fatalf("details: got=%+v", details)
	}
	res, err := mediator.Send[IndexResult](ctx, d, IndexQuery{ID: &id})
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	got := []int{}
	for _, c := range res.Courses {
		got = append(got, c.ID)
	}
	if !equalInts(got, []int{1045, 3141}) {
		t.Fatalf("courses: want=[1045 3141] got=%v", got)
	}
}

func TestSave_Validation(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	_, err := mediator.Send[int](ctx, d, CreateEditCommand{FirstMidName: "Grace"})
	var vf *mediator.ValidationFault
	if !errors.As(err, &vf) {
		t.Fatalf("want validation fault, got %v", err)
	}
	if _, ok := vf.Fields["last_name"]; !ok {
		t.Fatalf("last_name: got=%v", vf.Fields)
	}
	if _, ok := vf.Fields["hire_date"]; !ok {
		t.Fatalf("hire_date: got=%v", vf.Fields)
	}

	_, err = mediator.Send[int](ctx, d, CreateEditCommand{
		LastName:        "Hopper",
		FirstMidName:    "Grace",
		HireDate:        "2020-01-06",
		SelectedCourses: []string{"chemistry"},
	})
	if !errors.As(err, &vf) {
		t.Fatalf("want validation fault, got %v", err)
	}
	if _, ok := vf.Fields["selected_courses"]; !ok {
		t.Fatalf("selected_courses: got=%v", vf.Fields)
	}

	missing := 9999
	_, err = mediator.Send[int](ctx, d, CreateEditCommand{
		ID:           &missing,
		LastName:     "Hopper",
		FirstMidName: "Grace",
		HireDate:     "2020-01-06",
	})
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("want=%v got=%v", shared.ErrNotFound, err)
	}
}

func TestDelete_ClearsAdministrator(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()
	kapoor := instructorID(t, d, "Kapoor")

	form, err := mediator.Send[DeleteCommand](ctx, d, DeleteQuery{ID: &kapoor})
	if err != nil {
		t.Fatalf("delete form: %v", err)
	}
	if form.OfficeAssignmentLocation != "Thompson 304" {
		t.Fatalf("delete form: got=%+v", form)
	}
	if _, err := mediator.Send[mediator.Unit](ctx, d, form); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := mediator.Send[Details](ctx, d, DetailsQuery{ID: &kapoor}); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("want=%v got=%v", shared.ErrNotFound, err)
	}
	res, err := mediator.Send[IndexResult](ctx, d, IndexQuery{})
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if len(res.Instructors) != 4 {
		t.Fatalf("instructors: want=4 got=%d", len(res.Instructors))
	}
	if _, err := mediator.Send[mediator.Unit](ctx, d, DeleteCommand{ID: &kapoor}); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("second delete: want=%v got=%v", shared.ErrNotFound, err)
	}
}
