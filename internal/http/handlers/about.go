package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/university-backend/internal/http/response"
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/about"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type AboutHandler struct {
	log        *logger.Logger
	dispatcher *mediator.Dispatcher
}

func NewAboutHandler(log *logger.Logger, dispatcher *mediator.Dispatcher) *AboutHandler {
	return &AboutHandler{log: log.With("handler", "AboutHandler"), dispatcher: dispatcher}
}

func (h *AboutHandler) Statistics(c *gin.Context) {
	res, err := mediator.Send[[]about.EnrollmentDateGroup](c.Request.Context(), h.dispatcher, about.StatisticsQuery{})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, gin.H{"enrollment_date_groups": res})
}
