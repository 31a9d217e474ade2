package timelog

import (
	"go-worklog/internal/shared/apperror"
	"go-worklog/internal/shared/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("timelog.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timelog.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("timelog request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CheckIn(c *gin.Context)    { h.requestAction(c, ActionCheckIn) }
func (h *Handler) BreakStart(c *gin.Context) { h.requestAction(c, ActionBreakStart) }
func (h *Handler) BreakEnd(c *gin.Context)   { h.requestAction(c, ActionBreakEnd) }
func (h *Handler) CheckOut(c *gin.Context)   { h.requestAction(c, ActionCheckOut) }

func (h *Handler) requestAction(c *gin.Context, action Action) {
	employeeID := c.GetString("employee_id")

	resp, err := h.service.RequestAction(c.Request.Context(), employeeID, action)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetStatus(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	resp, err := h.service.CurrentStatus(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetToday(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	resp, err := h.service.TodayLogs(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// GetDayDetail is the manager drill-down: the full event sequence plus
// aggregated hours for one employee-day.
func (h *Handler) GetDayDetail(c *gin.Context) {
	employeeID := c.Param("employee_id")
	date := c.Param("date")

	resp, err := h.service.DayDetail(c.Request.Context(), employeeID, date)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
