package app

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/university-backend/internal/data/uow"
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/about"
	"github.com/yungbote/university-backend/internal/modules/courses"
	"github.com/yungbote/university-backend/internal/modules/departments"
	"github.com/yungbote/university-backend/internal/modules/instructors"
	"github.com/yungbote/university-backend/internal/modules/lookups"
	"github.com/yungbote/university-backend/internal/modules/students"
	"github.com/yungbote/university-backend/internal/observability"
	"github.com/yungbote/university-backend/internal/platform/logger"
	"github.com/yungbote/university-backend/internal/transaction"
)

// Services is the application layer: the sealed handler registry, the
// dispatcher in front of it and the per-request transaction boundary.
type Services struct {
	Registry   *mediator.Registry
	Dispatcher *mediator.Dispatcher
	Boundary   *transaction.Boundary
}

type module interface {
	Register(reg *mediator.Registry) error
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg TxConfig, isolation uow.IsolationLevel, rs Repos, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	reg := mediator.NewRegistry()
	modules := []module{
		students.New(students.Deps{Log: log, Students: rs.Students}),
		courses.New(courses.Deps{Log: log, Courses: rs.Courses, Departments: rs.Departments}),
		departments.New(departments.Deps{Log: log, Departments: rs.Departments, Instructors: rs.Instructors}),
		instructors.New(instructors.Deps{
			Log:         log,
			Instructors: rs.Instructors,
			Courses:     rs.Courses,
			Departments: rs.Departments,
			Enrollments: rs.Enrollments,
		}),
		about.New(about.Deps{Log: log, Students: rs.Students}),
		lookups.New(lookups.Deps{Log: log, Departments: rs.Departments, Instructors: rs.Instructors}),
	}
	var errs []error
	for _, m := range modules {
		errs = append(errs, m.Register(reg))
	}
	if err := errors.Join(errs...); err != nil {
		return Services{}, fmt.Errorf("register handlers: %w", err)
	}
	reg.Expect(students.Requests()...)
	reg.Expect(courses.Requests()...)
	reg.Expect(departments.Requests()...)
	reg.Expect(instructors.Requests()...)
	reg.Expect(about.Requests()...)
	reg.Expect(lookups.Requests()...)
	if err := reg.Seal(); err != nil {
		return Services{}, fmt.Errorf("seal registry: %w", err)
	}
	log.Info("Handler registry sealed", "requests", len(reg.Names()))

	dispatcher, err := mediator.NewDispatcher(mediator.DispatcherDeps{
		Registry: reg,
		Log:      log,
		Hooks:    mediator.NewObservabilityHooks(metrics),
		Sessions: transaction.SessionFrom,
		Behaviors: []mediator.Behavior{
			mediator.LoggingBehavior(log),
			mediator.ValidationBehavior(),
			mediator.FlushBehavior(),
		},
	})
	if err != nil {
		return Services{}, err
	}

	boundary, err := transaction.NewBoundary(transaction.BoundaryDeps{
		Factory:        uow.NewGormFactory(db, log),
		Isolation:      isolation,
		Log:            log,
		Hooks:          transaction.NewObservabilityHooks(metrics),
		CleanupTimeout: cfg.CleanupTimeout,
	})
	if err != nil {
		return Services{}, err
	}
	return Services{Registry: reg, Dispatcher: dispatcher, Boundary: boundary}, nil
}
