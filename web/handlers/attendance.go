package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"attendlog.com/attendlog/core"
	"attendlog.com/attendlog/web/common"
)

type AttendanceEndpoint struct {
	machine *core.Machine
}

func RegisterAttendance(r *gin.RouterGroup, machine *core.Machine) {
	endpoint := &AttendanceEndpoint{machine: machine}
	r.POST("/attendance/actions", endpoint.Submit)
	r.POST("/attendance/actions/resume", endpoint.Resume)
}

type SubmitParams struct {
	EmployeeID int    `json:"employeeId" binding:"required"`
	Group      string `json:"group"`
	Action     string `json:"action" binding:"required"`
}

func (ep *AttendanceEndpoint) Submit(c *gin.Context) {
	var params SubmitParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	result, err := ep.machine.Submit(c.Request.Context(), params.EmployeeID, params.Group, params.Action)
	if err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result))
}

type ResumeParams struct {
	Token string `json:"token" binding:"required"`
}

func (ep *AttendanceEndpoint) Resume(c *gin.Context) {
	var params ResumeParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	event, err := ep.machine.Resume(c.Request.Context(), params.Token)
	if err != nil {
		c.JSON(statusFor(err), common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(event))
}

func statusFor(err error) int {
	switch core.KindOf(err) {
	case core.ErrValidation:
		return http.StatusBadRequest
	case core.ErrSequence:
		return http.StatusConflict
	case core.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
