package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/university-backend/internal/http"
	"github.com/yungbote/university-backend/internal/observability"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

func routerConfig(cfg Config, log *logger.Logger, handlers Handlers, services Services, metrics *observability.Metrics) http.RouterConfig {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.RouterConfig{
		Log:               log,
		ServiceName:       serviceName,
		CORSOrigins:       cfg.CORSOrigins,
		Timeout:           cfg.Tx.Timeout,
		Metrics:           metrics,
		Boundary:          services.Boundary,
		HealthHandler:     handlers.Health,
		StudentHandler:    handlers.Student,
		CourseHandler:     handlers.Course,
		DepartmentHandler: handlers.Department,
		InstructorHandler: handlers.Instructor,
		AboutHandler:      handlers.About,
		LookupHandler:     handlers.Lookup,
	}
}

func wireRouter(cfg Config, log *logger.Logger, handlers Handlers, services Services, metrics *observability.Metrics) *gin.Engine {
	return http.NewRouter(routerConfig(cfg, log, handlers, services, metrics))
}
