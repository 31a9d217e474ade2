package logsheet

import (
	"encoding/json"
	"net/http"
	"time"

	"go-worklog/internal/shared/apperror"
	"go-worklog/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("logsheet.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("logsheet.handler")
	}
	return &Handler{service: service, logger: l}
}

// NewHandlerWithRedis wires the redis client used to settle idempotency
// keys after a successful decision.
func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("logsheet request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Submit(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	var req SubmitLogsheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.settleIdempotency(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	requesterID := c.GetString("employee_id")
	isManager := c.GetBool("is_manager")
	logsheetID := c.Param("id")

	resp, err := h.service.Detail(c.Request.Context(), requesterID, logsheetID, isManager)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetSubmissionStatus(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	resp, err := h.service.SubmissionStatus(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListPending(c *gin.Context) {
	resp, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(int64(len(resp)), 1, len(resp))
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) Decide(c *gin.Context) {
	managerID := c.GetString("employee_id")
	logsheetID := c.Param("id")

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), managerID, logsheetID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.settleIdempotency(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

// settleIdempotency caches the successful decision under the request's
// idempotency key and releases the in-flight lock.
func (h *Handler) settleIdempotency(c *gin.Context, resp LogsheetResponse) {
	if h.rdb == nil {
		return
	}
	cacheKey := c.GetString("idempotency_cache_key")
	lockKey := c.GetString("idempotency_lock_key")
	if cacheKey == "" {
		return
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		h.logger.Warn("idempotency cache marshal failed", zap.Error(err))
		return
	}
	if err := h.rdb.Set(c.Request.Context(), cacheKey, payload, 24*time.Hour).Err(); err != nil {
		h.logger.Warn("idempotency cache write failed", zap.Error(err))
	}
	if lockKey != "" {
		if err := h.rdb.Del(c.Request.Context(), lockKey).Err(); err != nil {
			h.logger.Warn("idempotency lock release failed", zap.Error(err))
		}
	}
}
