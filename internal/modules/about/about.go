// Package about reports enrollment statistics.
package about

import (
	repos "github.com/yungbote/university-backend/internal/data/repos/school"
	types "github.com/yungbote/university-backend/internal/domain/school"
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/platform/dbctx"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type StatisticsQuery struct {
	mediator.QueryOf[[]EnrollmentDateGroup]
}

type EnrollmentDateGroup struct {
	EnrollmentDate string `json:"enrollment_date"`
	StudentCount   int    `json:"student_count"`
}

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
	return &Module{log: log.With("module", "about"), students: deps.Students}
}

func (m *Module) Register(reg *mediator.Registry) error {
	return mediator.Register(reg, m.Statistics)
}

func Requests() []mediator.Request { return []mediator.Request{StatisticsQuery{}} }

// Statistics counts students per enrollment date, oldest first.
func (m *Module) Statistics(dbc dbctx.Context, _ StatisticsQuery) ([]EnrollmentDateGroup, error) {
	groups, err := m.students.EnrollmentDateGroups(dbc)
	if err != nil {
		return nil, err
	}
	out := make([]EnrollmentDateGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, EnrollmentDateGroup{EnrollmentDate: types.FormatDate(g.EnrollmentDate), StudentCount: g.StudentCount})
	}
	return out, nil
}
