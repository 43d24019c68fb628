package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []validation.FieldError `json:"details"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeLeaveService struct {
	leave.Service
	createFn func(ctx context.Context, req leave.CreateLeaveRequestDto) (leave.LeaveRequestResponse, error)
	listFn   func(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequestResponse, error)
	reviewFn func(ctx context.Context, actorID, id string, req leave.ReviewLeaveRequestDto) (leave.LeaveRequestResponse, error)
}

func (f *fakeLeaveService) CreateRequest(ctx context.Context, req leave.CreateLeaveRequestDto) (leave.LeaveRequestResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeLeaveService) ListRequests(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequestResponse, error) {
	return f.listFn(ctx, filter)
}

func (f *fakeLeaveService) ReviewRequest(ctx context.Context, actorID, id string, req leave.ReviewLeaveRequestDto) (leave.LeaveRequestResponse, error) {
	return f.reviewFn(ctx, actorID, id, req)
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestLeaveHandler_CreateRequest(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, req leave.CreateLeaveRequestDto) (leave.LeaveRequestResponse, error) {
				assert.Equal(t, employeeID, req.EmployeeID)
				assert.Equal(t, leave.TypeSick, req.LeaveType)
				assert.Nil(t, req.AttachmentID)
				return leave.LeaveRequestResponse{ID: "65f1c2a9e4b0a1b2c3d4e600", EmployeeID: req.EmployeeID, Status: leave.StatusPending}, nil
			},
		}

		c, w := newContext(http.MethodPost, "/leaves/requests",
			`{"employeeId":"`+employeeID+`","leaveType":"sick","fromDate":"2026-03-10","toDate":"2026-03-11","extra":true}`)
		leave.NewHandler(svc, validation.UnknownFieldsIgnore).CreateRequest(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.NotContains(t, string(env.Data), "reviewerId")
	})

	t.Run("validation errors are aggregated", func(t *testing.T) {
		svc := &fakeLeaveService{}
		c, w := newContext(http.MethodPost, "/leaves/requests", `{"employeeId":"x","leaveType":"vacation"}`)
		leave.NewHandler(svc, validation.UnknownFieldsIgnore).CreateRequest(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Len(t, env.Error.Details, 4)
		assert.Equal(t, validation.KindInvalidEnumValue, env.Error.Details[1].Kind)
	})

	t.Run("strict policy rejects unknown fields", func(t *testing.T) {
		svc := &fakeLeaveService{}
		c, w := newContext(http.MethodPost, "/leaves/requests",
			`{"employeeId":"`+employeeID+`","leaveType":"sick","fromDate":"2026-03-10","toDate":"2026-03-11","extra":true}`)
		leave.NewHandler(svc, validation.UnknownFieldsReject).CreateRequest(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "extra", env.Error.Details[0].Field)
		assert.Equal(t, validation.KindUnknownField, env.Error.Details[0].Kind)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, req leave.CreateLeaveRequestDto) (leave.LeaveRequestResponse, error) {
				return leave.LeaveRequestResponse{}, leaveerrors.ErrLeaveOverlap
			},
		}
		c, w := newContext(http.MethodPost, "/leaves/requests",
			`{"employeeId":"`+employeeID+`","leaveType":"sick","fromDate":"2026-03-10","toDate":"2026-03-11"}`)
		leave.NewHandler(svc, validation.UnknownFieldsIgnore).CreateRequest(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}

func TestLeaveHandler_ListRequests(t *testing.T) {
	t.Run("filters and paginates", func(t *testing.T) {
		svc := &fakeLeaveService{
			listFn: func(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequestResponse, error) {
				assert.Equal(t, leave.StatusPending, filter.Status)
				return []leave.LeaveRequestResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
			},
		}
		c, w := newContext(http.MethodGet, "/leaves/requests?status=pending&page=2&page_size=2", "")
		leave.NewHandler(svc, validation.UnknownFieldsIgnore).ListRequests(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var got []leave.LeaveRequestResponse
		assert.NoError(t, json.Unmarshal(decodeEnvelope(t, w.Body.Bytes()).Data, &got))
		assert.Len(t, got, 1)
		assert.Equal(t, "c", got[0].ID)
	})

	t.Run("unknown status", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/leaves/requests?status=Pending", "")
		leave.NewHandler(&fakeLeaveService{}, validation.UnknownFieldsIgnore).ListRequests(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("malformed employee id", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/leaves/requests?employeeId=42", "")
		leave.NewHandler(&fakeLeaveService{}, validation.UnknownFieldsIgnore).ListRequests(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_ReviewRequest(t *testing.T) {
	const requestID = "65f1c2a9e4b0a1b2c3d4e600"

	t.Run("passes actor and path id", func(t *testing.T) {
		svc := &fakeLeaveService{
			reviewFn: func(ctx context.Context, actorID, id string, req leave.ReviewLeaveRequestDto) (leave.LeaveRequestResponse, error) {
				assert.Equal(t, hrUserID, actorID)
				assert.Equal(t, requestID, id)
				assert.Equal(t, "approve", req.Decision)
				return leave.LeaveRequestResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}
		c, w := newContext(http.MethodPost, "/leaves/requests/"+requestID+"/review", `{"decision":"approve"}`)
		c.Params = gin.Params{{Key: "id", Value: requestID}}
		c.Set("employee_id", hrUserID)
		leave.NewHandler(svc, validation.UnknownFieldsIgnore).ReviewRequest(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("uppercase path id is lowercased", func(t *testing.T) {
		svc := &fakeLeaveService{
			reviewFn: func(ctx context.Context, actorID, id string, req leave.ReviewLeaveRequestDto) (leave.LeaveRequestResponse, error) {
				assert.Equal(t, requestID, id)
				return leave.LeaveRequestResponse{ID: id, Status: leave.StatusRejected}, nil
			},
		}
		c, w := newContext(http.MethodPost, "/leaves/requests/x/review", `{"decision":"reject"}`)
		c.Params = gin.Params{{Key: "id", Value: strings.ToUpper(requestID)}}
		c.Set("employee_id", hrUserID)
		leave.NewHandler(svc, validation.UnknownFieldsIgnore).ReviewRequest(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad path id", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/leaves/requests/nope/review", `{"decision":"approve"}`)
		c.Params = gin.Params{{Key: "id", Value: "nope"}}
		leave.NewHandler(&fakeLeaveService{}, validation.UnknownFieldsIgnore).ReviewRequest(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "id is invalid", decodeEnvelope(t, w.Body.Bytes()).Error.Message)
	})
}
