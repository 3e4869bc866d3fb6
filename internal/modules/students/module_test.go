package students

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
	reg := mediator.NewRegistry()
	if err := New(Deps{Log: log, Students: repos.NewStudentRepo(db, log)}).Register(reg); err != nil {
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

func ptr[T any](v T) *T { return &v }

func lastNames(rows []Summary) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.LastName)
	}
	return out
}

func TestIndex_DefaultSortAndPaging(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	res, err := mediator.Send[IndexResult](ctx, d, IndexQuery{})
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if res.NameSortParm != "name_desc" || res.DateSortParm != "Date" {
		t.Fatalf("sort parms: want=name_desc/Date got=%q/%q", res.NameSortParm, res.DateSortParm)
	}
	if res.Results.TotalPages != 3 || res.Results.PageIndex != 1 || res.Results.HasPreviousPage || !res.Results.HasNextPage {
		t.Fatalf("paging: got=%+v", res.Results)
	}
	got := lastNames(res.Results.Items)
	if len(got) != 3 || got[0] != "Alexander" || got[1] != "Alonso" || got[2] != "Anand" {
		t.Fatalf("first page: got=%v", got)
	}
	if res.Results.Items[0].EnrollmentsCount != 3 || res.Results.Items[0].EnrollmentDate != "2010-09-01" {
		t.Fatalf("Alexander row: got=%+v", res.Results.Items[0])
	}

	res, err = mediator.Send[IndexResult](ctx, d, IndexQuery{SortOrder: "Date", Page: ptr(3)})
	if err != nil {
		t.Fatalf("index date: %v", err)
	}
	if res.NameSortParm != "" || res.DateSortParm != "date_desc" || res.CurrentSort != "Date" {
		t.Fatalf("sort parms: got=%q/%q/%q", res.NameSortParm, res.DateSortParm, res.CurrentSort)
	}
	if res.Results.PageIndex != 3 || len(res.Results.Items) != 2 || res.Results.HasNextPage {
		t.Fatalf("last page: got=%+v", res.Results)
	}
}

func TestIndex_NewSearchResetsPage(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	res, err := mediator.Send[IndexResult](ctx, d, IndexQuery{SearchString: ptr("ar"), Page: ptr(2)})
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if res.Results.PageIndex != 1 || res.CurrentFilter != "ar" || res.SearchString != "ar" {
		t.Fatalf("search: got page=%d filter=%q", res.Results.PageIndex, res.CurrentFilter)
	}
	got := lastNames(res.Results.Items)
	if res.Results.TotalCount != 3 || len(got) != 3 || got[0] != "Alexander" || got[1] != "Anand" || got[2] != "Barzdukas" {
		t.Fatalf("matches: total=%d got=%v", res.Results.TotalCount, got)
	}

	res, err = mediator.Send[IndexResult](ctx, d, IndexQuery{CurrentFilter: "o", Page: ptr(2)})
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if res.Results.PageIndex != 2 || res.CurrentFilter != "o" {
		t.Fatalf("kept filter: got page=%d filter=%q", res.Results.PageIndex, res.CurrentFilter)
	}
}

func TestCreateDetailsEditDelete(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	id, err := mediator.Send[int](ctx, d, CreateCommand{LastName: "Lovelace", FirstMidName: "Ada", EnrollmentDate: "2020-09-01"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatalf("create must return the generated id")
	}

	form, err := mediator.Send[EditCommand](ctx, d, EditQuery{ID: &id})
	if err != nil {
		t.Fatalf("edit form: %v", err)
	}
	if form.LastName != "Lovelace" || form.EnrollmentDate != "2020-09-01" {
		t.Fatalf("edit form: got=%+v", form)
	}
	form.FirstMidName = "Augusta Ada"
	if _, err := mediator.Send[mediator.Unit](ctx, d, form); err != nil {
		t.Fatalf("edit: %v", err)
	}

	details, err := mediator.Send[Details](ctx, d, DetailsQuery{ID: id})
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details.FirstMidName != "Augusta Ada" || len(details.Enrollments) != 0 {
		t.Fatalf("details: got=%+v", details)
	}

	del, err := mediator.Send[DeleteCommand](ctx, d, DeleteQuery{ID: id})
	if err != nil {
		t.Fatalf("delete form: %v", err)
	}
	if _, err := mediator.Send[mediator.Unit](ctx, d, del); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := mediator.Send[Details](ctx, d, DetailsQuery{ID: id}); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("details after delete: want not found got %v", err)
	}
}

func TestDetails_ListsEnrollments(t *testing.T) {
	d := newDispatcher(t)
	res, err := mediator.Send[IndexResult](context.Background(), d, IndexQuery{SearchString: ptr("Anand")})
	if err != nil || len(res.Results.Items) != 1 {
		t.Fatalf("find Anand: got=%+v err=%v", res.Results.Items, err)
	}
	details, err := mediator.Send[Details](context.Background(), d, DetailsQuery{ID: res.Results.Items[0].ID})
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if len(details.Enrollments) != 2 {
		t.Fatalf("enrollments: want=2 got=%d", len(details.Enrollments))
	}
	if details.Enrollments[0].CourseTitle != "Chemistry" || details.Enrollments[0].Grade != nil {
		t.Fatalf("ungraded chemistry: got=%+v", details.Enrollments[0])
	}
	if details.Enrollments[1].Grade == nil || *details.Enrollments[1].Grade != "B" {
		t.Fatalf("graded microeconomics: got=%+v", details.Enrollments[1])
	}
}

func TestValidation(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	_, err := mediator.Send[int](ctx, d, CreateCommand{FirstMidName: "Ada", EnrollmentDate: "not-a-date"})
	var vf *mediator.ValidationFault
	if !errors.As(err, &vf) {
		t.Fatalf("want validation fault, got %v", err)
	}
	if _, ok := vf.Fields["last_name"]; !ok {
		t.Fatalf("last_name violation missing: %v", vf.Fields)
	}
	if _, ok := vf.Fields["enrollment_date"]; !ok {
		t.Fatalf("enrollment_date violation missing: %v", vf.Fields)
	}
	if _, ok := vf.Fields["first_mid_name"]; ok {
		t.Fatalf("first_mid_name is valid: %v", vf.Fields)
	}

	if _, err := mediator.Send[EditCommand](ctx, d, EditQuery{}); !errors.Is(err, mediator.ErrValidation) {
		t.Fatalf("edit form without id: want validation fault got %v", err)
	}
	if _, err := mediator.Send[mediator.Unit](ctx, d, EditCommand{ID: 999, LastName: "X", FirstMidName: "Y", EnrollmentDate: "2020-01-01"}); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("edit missing: want not found got %v", err)
	}
}
