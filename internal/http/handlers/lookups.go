package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/university-backend/internal/http/response"
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/lookups"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type LookupHandler struct {
	log        *logger.Logger
	dispatcher *mediator.Dispatcher
}

func NewLookupHandler(log *logger.Logger, dispatcher *mediator.Dispatcher) *LookupHandler {
	return &LookupHandler{log: log.With("handler", "LookupHandler"), dispatcher: dispatcher}
}

func (h *LookupHandler) Departments(c *gin.Context) {
	res, err := mediator.Send[[]lookups.Option](c.Request.Context(), h.dispatcher, lookups.DepartmentsQuery{})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, gin.H{"departments": res})
}

func (h *LookupHandler) Instructors(c *gin.Context) {
	res, err := mediator.Send[[]lookups.Option](c.Request.Context(), h.dispatcher, lookups.InstructorsQuery{})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, gin.H{"instructors": res})
}
