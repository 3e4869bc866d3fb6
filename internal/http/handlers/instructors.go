package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/university-backend/internal/http/response"
	"github.com/yungbote/university-backend/internal/mediator"
	"github.com/yungbote/university-backend/internal/modules/instructors"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type InstructorHandler struct {
	log        *logger.Logger
	dispatcher *mediator.Dispatcher
}

func NewInstructorHandler(log *logger.Logger, dispatcher *mediator.Dispatcher) *InstructorHandler {
	return &InstructorHandler{
		log:        log.With("handler", "InstructorHandler"),
		dispatcher: dispatcher,
	}
}

// GET /instructors?id=&course_id=
func (h *InstructorHandler) Index(c *gin.Context) {
	id, ok := queryInt(c, "id")
	if !ok {
		return
	}
	courseID, ok := queryInt(c, "course_id")
	if !ok {
		return
	}
	res, err := mediator.Send[instructors.IndexResult](c.Request.Context(), h.dispatcher, instructors.IndexQuery{ID: id, CourseID: courseID})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *InstructorHandler) Details(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := mediator.Send[instructors.Details](c.Request.Context(), h.dispatcher, instructors.DetailsQuery{ID: &id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

// NewForm returns a blank instructor with the course checklist.
func (h *InstructorHandler) NewForm(c *gin.Context) {
	res, err := mediator.Send[instructors.CreateEditCommand](c.Request.Context(), h.dispatcher, instructors.CreateEditQuery{})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *InstructorHandler) EditForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := mediator.Send[instructors.CreateEditCommand](c.Request.Context(), h.dispatcher, instructors.CreateEditQuery{ID: &id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *InstructorHandler) Create(c *gin.Context) {
	var cmd instructors.CreateEditCommand
	if !bindJSON(c, &cmd) {
		return
	}
	cmd.ID = nil
	h.save(c, cmd, true)
}

func (h *InstructorHandler) Edit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var cmd instructors.CreateEditCommand
	if !bindJSON(c, &cmd) {
		return
	}
	cmd.ID = &id
	h.save(c, cmd, false)
}

// save runs the command and reads the instructor back in the same transaction.
func (h *InstructorHandler) save(c *gin.Context, cmd instructors.CreateEditCommand, created bool) {
	ctx := c.Request.Context()
	cmd.AssignedCourses = nil
	id, err := mediator.Send[int](ctx, h.dispatcher, cmd)
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	res, err := mediator.Send[instructors.Details](ctx, h.dispatcher, instructors.DetailsQuery{ID: &id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	if created {
		response.RespondCreated(c, res)
		return
	}
	response.RespondOK(c, res)
}

func (h *InstructorHandler) DeleteForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := mediator.Send[instructors.DeleteCommand](c.Request.Context(), h.dispatcher, instructors.DeleteQuery{ID: &id})
	if err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (h *InstructorHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := mediator.Send[mediator.Unit](c.Request.Context(), h.dispatcher, instructors.DeleteCommand{ID: &id}); err != nil {
		response.RespondFault(c, err)
		return
	}
	response.RespondNoContent(c)
}
