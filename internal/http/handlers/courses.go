package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/university-backend/internal/http/response"
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/courses"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type CourseHandler struct {
	log        *logger.Logger
	dispatcher *mediator.Dispatcher
}

func NewCourseHandler(log *logger.Logger, dispatcher *mediator.Dispatcher) *CourseHandler {
	return &CourseHandler{
		log:        log.With("handler", "CourseHandler"),
		dispatcher: dispatcher,
	}
}

func (h *CourseHandler) Index(c *gin.Context) {
	res, err := mediator.Send[courses.IndexResult](c.Request.Context(), h.dispatcher, courses.IndexQuery{})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *CourseHandler) Details(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := mediator.Send[courses.Summary](c.Request.Context(), h.dispatcher, courses.DetailsQuery{ID: &id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *CourseHandler) Create(c *gin.Context) {
	var cmd courses.CreateCommand
	if !bindJSON(c, &cmd) {
		return
	}
	ctx := c.Request.Context()
	id, err := mediator.Send[int](ctx, h.dispatcher, cmd)
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	res, err := mediator.Send[courses.Summary](ctx, h.dispatcher, courses.DetailsQuery{ID: &id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondCreated(c, res)
}

func (h *CourseHandler) EditForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := mediator.Send[courses.EditCommand](c.Request.Context(), h.dispatcher, courses.EditQuery{ID: &id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *CourseHandler) Edit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var cmd courses.EditCommand
	if !bindJSON(c, &cmd) {
		return
	}
	cmd.ID = id
	if _, err := mediator.Send[mediator.Unit](c.Request.Context(), h.dispatcher, cmd); err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (h *CourseHandler) DeleteForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := mediator.Send[courses.DeleteCommand](c.Request.Context(), h.dispatcher, courses.DeleteQuery{ID: &id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := mediator.Send[mediator.Unit](c.Request.Context(), h.dispatcher, courses.DeleteCommand{ID: id}); err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondNoContent(c)
}
