package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/university-backend/internal/http/response"
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/departments"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type DepartmentHandler struct {
	log        *logger.Logger
	dispatcher *mediator.Dispatcher
}

func NewDepartmentHandler(log *logger.Logger, dispatcher *mediator.Dispatcher) *DepartmentHandler {
	return &DepartmentHandler{
		log:        log.With("handler", "DepartmentHandler"),
		dispatcher: dispatcher,
	}
}

func (h *DepartmentHandler) Index(c *gin.Context) {
	res, err := mediator.Send[[]departments.Summary](c.Request.Context(), h.dispatcher, departments.IndexQuery{})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, gin.H{"departments": res})
}

func (h *DepartmentHandler) Details(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := mediator.Send[departments.Summary](c.Request.Context(), h.dispatcher, departments.DetailsQuery{ID: id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *DepartmentHandler) Create(c *gin.Context) {
	var cmd departments.CreateCommand
	if !bindJSON(c, &cmd) {
		return
	}
	ctx := c.Request.Context()
	id, err := mediator.Send[int](ctx, h.dispatcher, cmd)
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	res, err := mediator.Send[departments.Summary](ctx, h.dispatcher, departments.DetailsQuery{ID: id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondCreated(c, res)
}

func (h *DepartmentHandler) EditForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := mediator.Send[departments.EditCommand](c.Request.Context(), h.dispatcher, departments.EditQuery{ID: id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *DepartmentHandler) Edit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var cmd departments.EditCommand
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

func (h *DepartmentHandler) DeleteForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := mediator.Send[departments.DeleteCommand](c.Request.Context(), h.dispatcher, departments.DeleteQuery{ID: id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := mediator.Send[mediator.Unit](c.Request.Context(), h.dispatcher, departments.DeleteCommand{ID: id}); err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondNoContent(c)
}
