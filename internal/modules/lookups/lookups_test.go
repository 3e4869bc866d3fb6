package lookups

import (
	"context"
	"testing"

	dbpkg "github.com/yungbote/university-backend/internal/data/db"
	repos "github.com/yungbote/university-backend/internal/data/repos/school"
	"github.com/yungbote/university-backend/internal/data/repos/testutil"
	"github.com/yungbote/university-backend/internal/mediator"
)

func TestLookups(t *testing.T) {
	db := testutil.SQLite(t)
	log := testutil.Logger(t)
	ctx := context.Background()
	if err := dbpkg.Seed(ctx, db, log); err != nil {
		t.Fatalf("seed: %v", err)
	}
	rs := repos.New(db, log)
	reg := mediator.NewRegistry()
	if err := New(Deps{Log: log, Departments: rs.Departments, Instructors: rs.Instructors}).Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	reg.Expect(Requests()...)
	if err := reg.Seal(); err != nil {
		t.Fatalf("seal: %v", err)
	}
	d, err := mediator.NewDispatcher(mediator.DispatcherDeps{Registry: reg})
	if err != nil {
		t.Fatalf("dispatcher: %v", err)
	}

	departments, err := mediator.Send[[]Option](ctx, d, DepartmentsQuery{})
	if err != nil {
		t.Fatalf("departments: %v", err)
	}
	names := []string{}
	for _, o := range departments {
		names = append(names, o.Name)
	}
	want := []string{"Economics", "Engineering", "English", "Mathematics"}
	if len(names) != len(want) {
		t.Fatalf("departments: want=%v got=%v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("departments: want=%v got=%v", want, names)
		}
	}

	instructors, err := mediator.Send[[]Option](ctx, d, InstructorsQuery{})
	if err != nil {
		t.Fatalf("instructors: %v", err)
	}
	if len(instructors) != 5 || instructors[0].Name != "Abercrombie, Kim" || instructors[4].Name != "Zheng, Roger" {
		t.Fatalf("instructors: got=%+v", instructors)
	}
}
