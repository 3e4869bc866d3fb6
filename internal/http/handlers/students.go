package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/university-backend/internal/http/response"
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/students"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type StudentHandler struct {
	log        *logger.Logger
	dispatcher *mediator.Dispatcher
}

func NewStudentHandler(log *logger.Logger, dispatcher *mediator.Dispatcher) *StudentHandler {
	return &StudentHandler{
		log:        log.With("handler", "StudentHandler"),
		dispatcher: dispatcher,
	}
}

// GET /students?sort_order=&current_filter=&search_string=&page=
func (h *StudentHandler) Index(c *gin.Context) {
	q := students.IndexQuery{
		SortOrder:     c.Query("sort_order"),
		CurrentFilter: c.Query("current_filter"),
	}
	if s, ok := c.GetQuery("search_string"); ok {
		q.SearchString = &s
	}
	page, ok := queryInt(c, "page")
	if !ok {
		return
	}
	q.Page = page
	res, err := mediator.Send[students.IndexResult](c.Request.Context(), h.dispatcher, q)
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *StudentHandler) Details(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := mediator.Send[students.Details](c.Request.Context(), h.dispatcher, students.DetailsQuery{ID: id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

// Create answers with the stored student, read back in the same transaction.
func (h *StudentHandler) Create(c *gin.Context) {
	var cmd students.CreateCommand
	if !bindJSON(c, &cmd) {
		return
	}
	ctx := c.Request.Context()
	id, err := mediator.Send[int](ctx, h.dispatcher, cmd)
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	res, err := mediator.Send[students.Details](ctx, h.dispatcher, students.DetailsQuery{ID: id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondCreated(c, res)
}

func (h *StudentHandler) EditForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := mediator.Send[students.EditCommand](c.Request.Context(), h.dispatcher, students.EditQuery{ID: &id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *StudentHandler) Edit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var cmd students.EditCommand
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

func (h *StudentHandler) DeleteForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := mediator.Send[students.DeleteCommand](c.Request.Context(), h.dispatcher, students.DeleteQuery{ID: id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := mediator.Send[mediator.Unit](c.Request.Context(), h.dispatcher, students.DeleteCommand{ID: id}); err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondNoContent(c)
}
