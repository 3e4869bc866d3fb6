package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/university-backend/internal/http/handlers"
	httpMW "github.com/yungbote/university-backend/internal/http/middleware"
	"github.com/yungbote/university-backend/internal/observability"
	"github.com/yungbote/university-backend/internal/platform/logger"
	"github.com/yungbote/university-backend/internal/transaction"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Timeout     time.Duration
	Metrics     *observability.Metrics
	Boundary    *transaction.Boundary

	StudentHandler    *httpH.StudentHandler
	CourseHandler     *httpH.CourseHandler
	DepartmentHandler *httpH.DepartmentHandler
	InstructorHandler *httpH.InstructorHandler
	AboutHandler      *httpH.AboutHandler
	LookupHandler     *httpH.LookupHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	api.Use(httpMW.RequestTimeout(cfg.Timeout))
	if cfg.Boundary != nil {
		api.Use(httpMW.Transaction(cfg.Boundary, cfg.Log))
	}
	{
		// Students
		if h := cfg.StudentHandler; h != nil {
			api.GET("/students", h.Index)
			api.POST("/students", h.Create)
			api.GET("/students/:id", h.Details)
			api.GET("/students/:id/edit", h.EditForm)
			api.PUT("/students/:id", h.Edit)
			api.GET("/students/:id/delete", h.DeleteForm)
			api.DELETE("/students/:id", h.Delete)
		}

		// Courses
		if h := cfg.CourseHandler; h != nil {
			api.GET("/courses", h.Index)
			api.POST("/courses", h.Create)
			api.GET("/courses/:id", h.Details)
			api.GET("/courses/:id/edit", h.EditForm)
			api.PUT("/courses/:id", h.Edit)
			api.GET("/courses/:id/delete", h.DeleteForm)
			api.DELETE("/courses/:id", h.Delete)
		}

		// Departments
		if h := cfg.DepartmentHandler; h != nil {
			api.GET("/departments", h.Index)
			api.POST("/departments", h.Create)
			api.GET("/departments/:id", h.Details)
			api.GET("/departments/:id/edit", h.EditForm)
			api.PUT("/departments/:id", h.Edit)
			api.GET("/departments/:id/delete", h.DeleteForm)
			api.DELETE("/departments/:id", h.Delete)
		}

		// Instructors
		if h := cfg.InstructorHandler; h != nil {
			api.GET("/instructors", h.Index)
			api.GET("/instructors/new", h.NewForm)
			api.POST("/instructors", h.Create)
			api.GET("/instructors/:id", h.Details)
			api.GET("/instructors/:id/edit", h.EditForm)
			api.PUT("/instructors/:id", h.Edit)
			api.GET("/instructors/:id/delete", h.DeleteForm)
			api.DELETE("/instructors/:id", h.Delete)
		}

		if h := cfg.AboutHandler; h != nil {
			api.GET("/about", h.Statistics)
		}
		if h := cfg.LookupHandler; h != nil {
			api.GET("/lookups/departments", h.Departments)
			api.GET("/lookups/instructors", h.Instructors)
		}
	}

	return r
}
