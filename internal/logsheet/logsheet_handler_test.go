package logsheet_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-worklog/internal/logsheet"
	logsheeterrors "go-worklog/internal/logsheet/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLogsheetService struct {
	submitFn           func(ctx context.Context, employeeID string, req logsheet.SubmitLogsheetRequest) (logsheet.LogsheetResponse, error)
	submissionStatusFn func(ctx context.Context, employeeID string) (logsheet.SubmissionStatusResponse, error)
	listPendingFn      func(ctx context.Context) ([]logsheet.LogsheetResponse, error)
	detailFn           func(ctx context.Context, requesterID, logsheetID string, isManager bool) (logsheet.LogsheetResponse, error)
	decideFn           func(ctx context.Context, managerID, logsheetID string, req logsheet.DecisionRequest) (logsheet.LogsheetResponse, error)
}

func (f *fakeLogsheetService) Submit(ctx context.Context, employeeID string, req logsheet.SubmitLogsheetRequest) (logsheet.LogsheetResponse, error) {
	return f.submitFn(ctx, employeeID, req)
}
func (f *fakeLogsheetService) SubmissionStatus(ctx context.Context, employeeID string) (logsheet.SubmissionStatusResponse, error) {
	return f.submissionStatusFn(ctx, employeeID)
}
func (f *fakeLogsheetService) ListPending(ctx context.Context) ([]logsheet.LogsheetResponse, error) {
	return f.listPendingFn(ctx)
}
func (f *fakeLogsheetService) Detail(ctx context.Context, requesterID, logsheetID string, isManager bool) (logsheet.LogsheetResponse, error) {
	return f.detailFn(ctx, requesterID, logsheetID, isManager)
}
func (f *fakeLogsheetService) Decide(ctx context.Context, managerID, logsheetID string, req logsheet.DecisionRequest) (logsheet.LogsheetResponse, error) {
	return f.decideFn(ctx, managerID, logsheetID, req)
}

func TestLogsheetHandler_Submit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLogsheetService{
			submitFn: func(ctx context.Context, eid string, req logsheet.SubmitLogsheetRequest) (logsheet.LogsheetResponse, error) {
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, "PROJ-42", req.JiraKey)
				return logsheet.LogsheetResponse{
					ID:          uuid.New().String(),
					EmployeeID:  eid,
					JiraKey:     req.JiraKey,
					HoursWorked: 7.5,
					Status:      logsheet.StatusPending,
				}, nil
			},
		}
		h := logsheet.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("employee_id", employeeID)
		c.Request = httptest.NewRequest(http.MethodPost, "/logsheets", strings.NewReader(`{"jira_key":"PROJ-42"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), logsheet.StatusPending)
	})

	t.Run("missing jira key fails validation", func(t *testing.T) {
		svc := &fakeLogsheetService{
			submitFn: func(ctx context.Context, eid string, req logsheet.SubmitLogsheetRequest) (logsheet.LogsheetResponse, error) {
				t.Fatal("service must not be called on binding failure")
				return logsheet.LogsheetResponse{}, nil
			},
		}
		h := logsheet.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("employee_id", employeeID)
		c.Request = httptest.NewRequest(http.MethodPost, "/logsheets", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("day not closed maps to invalid state", func(t *testing.T) {
		svc := &fakeLogsheetService{
			submitFn: func(ctx context.Context, eid string, req logsheet.SubmitLogsheetRequest) (logsheet.LogsheetResponse, error) {
				return logsheet.LogsheetResponse{}, logsheeterrors.ErrDayNotClosed
			},
		}
		h := logsheet.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("employee_id", employeeID)
		c.Request = httptest.NewRequest(http.MethodPost, "/logsheets", strings.NewReader(`{"jira_key":"PROJ-42"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
	})
}

func TestLogsheetHandler_ListPending(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeLogsheetService{
		listPendingFn: func(ctx context.Context) ([]logsheet.LogsheetResponse, error) {
			return []logsheet.LogsheetResponse{
				{ID: uuid.New().String(), Status: logsheet.StatusPending},
				{ID: uuid.New().String(), Status: logsheet.StatusPending},
			}, nil
		},
	}
	h := logsheet.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/logsheets/pending", nil)
	h.ListPending(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"meta\"")
}

func TestLogsheetHandler_Decide(t *testing.T) {
	gin.SetMode(gin.TestMode)
	managerID := uuid.New().String()
	logsheetID := uuid.New().String()

	t.Run("approve", func(t *testing.T) {
		svc := &fakeLogsheetService{
			decideFn: func(ctx context.Context, mid, lid string, req logsheet.DecisionRequest) (logsheet.LogsheetResponse, error) {
				assert.Equal(t, managerID, mid)
				assert.Equal(t, logsheetID, lid)
				assert.Equal(t, "approve", req.Action)
				assert.NotNil(t, req.WorkDayCredit)
				assert.Equal(t, 0.5, *req.WorkDayCredit)
				return logsheet.LogsheetResponse{
					ID:            lid,
					Status:        logsheet.StatusApproved,
					WorkDayCredit: 0.5,
				}, nil
			},
		}
		h := logsheet.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("employee_id", managerID)
		c.Params = gin.Params{{Key: "id", Value: logsheetID}}
		c.Request = httptest.NewRequest(http.MethodPost, "/logsheets/"+logsheetID+"/decision",
			strings.NewReader(`{"action":"approve","work_day_credit":0.5}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), logsheet.StatusApproved)
	})

	t.Run("unknown action fails validation", func(t *testing.T) {
		svc := &fakeLogsheetService{
			decideFn: func(ctx context.Context, mid, lid string, req logsheet.DecisionRequest) (logsheet.LogsheetResponse, error) {
				t.Fatal("service must not be called on binding failure")
				return logsheet.LogsheetResponse{}, nil
			},
		}
		h := logsheet.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("employee_id", managerID)
		c.Params = gin.Params{{Key: "id", Value: logsheetID}}
		c.Request = httptest.NewRequest(http.MethodPost, "/logsheets/"+logsheetID+"/decision",
			strings.NewReader(`{"action":"defer"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already decided maps to conflict", func(t *testing.T) {
		svc := &fakeLogsheetService{
			decideFn: func(ctx context.Context, mid, lid string, req logsheet.DecisionRequest) (logsheet.LogsheetResponse, error) {
				return logsheet.LogsheetResponse{}, logsheeterrors.ErrAlreadyDecided
			},
		}
		h := logsheet.NewHandler(svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("employee_id", managerID)
		c.Params = gin.Params{{Key: "id", Value: logsheetID}}
		c.Request = httptest.NewRequest(http.MethodPost, "/logsheets/"+logsheetID+"/decision",
			strings.NewReader(`{"action":"reject"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		h.Decide(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})
}
