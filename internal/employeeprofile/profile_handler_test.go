package employeeprofile_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/employeeprofile"
	profileerrors "go-hrms/internal/employeeprofile/errors"
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

type fakeProfileService struct {
	employeeprofile.Service
	createProfileFn        func(ctx context.Context, req employeeprofile.CreateEmployeeProfileDto) (employeeprofile.EmployeeProfileResponse, error)
	listProfilesFn         func(ctx context.Context, filter employeeprofile.ProfileFilter) ([]employeeprofile.EmployeeProfileResponse, error)
	getProfileFn           func(ctx context.Context, id string) (employeeprofile.EmployeeProfileResponse, error)
	processChangeRequestFn func(ctx context.Context, actorID, id string, req employeeprofile.ProcessChangeRequestDto) (employeeprofile.ChangeRequestResponse, error)
}

func (f *fakeProfileService) CreateProfile(ctx context.Context, req employeeprofile.CreateEmployeeProfileDto) (employeeprofile.EmployeeProfileResponse, error) {
	return f.createProfileFn(ctx, req)
}

func (f *fakeProfileService) ListProfiles(ctx context.Context, filter employeeprofile.ProfileFilter) ([]employeeprofile.EmployeeProfileResponse, error) {
	return f.listProfilesFn(ctx, filter)
}

func (f *fakeProfileService) GetProfile(ctx context.Context, id string) (employeeprofile.EmployeeProfileResponse, error) {
	return f.getProfileFn(ctx, id)
}

func (f *fakeProfileService) ProcessChangeRequest(ctx context.Context, actorID, id string, req employeeprofile.ProcessChangeRequestDto) (employeeprofile.ChangeRequestResponse, error) {
	return f.processChangeRequestFn(ctx, actorID, id, req)
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestEmployeeProfileHandler_CreateProfile(t *testing.T) {
	body := `{"firstName":"Amina","lastName":"Hassan","nationalId":"29801011234567","workEmail":"amina.hassan@example.com","dateOfHire":"2026-01-05"}`

	t.Run("created", func(t *testing.T) {
		svc := &fakeProfileService{
			createProfileFn: func(ctx context.Context, req employeeprofile.CreateEmployeeProfileDto) (employeeprofile.EmployeeProfileResponse, error) {
				assert.Equal(t, "Amina", req.FirstName)
				return employeeprofile.EmployeeProfileResponse{ID: employeeID, EmployeeNumber: "EMP-0001"}, nil
			},
		}
		c, w := newContext(http.MethodPost, "/employee-profiles", body)
		employeeprofile.NewHandler(svc, validation.UnknownFieldsIgnore).CreateProfile(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)

		var resp employeeprofile.EmployeeProfileResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, "EMP-0001", resp.EmployeeNumber)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := &fakeProfileService{
			createProfileFn: func(ctx context.Context, req employeeprofile.CreateEmployeeProfileDto) (employeeprofile.EmployeeProfileResponse, error) {
				return employeeprofile.EmployeeProfileResponse{}, profileerrors.ErrWorkEmailExists
			},
		}
		c, w := newContext(http.MethodPost, "/employee-profiles", body)
		employeeprofile.NewHandler(svc, validation.UnknownFieldsIgnore).CreateProfile(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("strict policy rejects unknown fields", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/employee-profiles", strings.TrimSuffix(body, "}")+`,"salary":100}`)
		employeeprofile.NewHandler(&fakeProfileService{}, validation.UnknownFieldsReject).CreateProfile(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Equal(t, "salary", env.Error.Details[0].Field)
		assert.Equal(t, validation.KindUnknownField, env.Error.Details[0].Kind)
	})
}

func TestEmployeeProfileHandler_ListProfiles(t *testing.T) {
	t.Run("status filter", func(t *testing.T) {
		svc := &fakeProfileService{
			listProfilesFn: func(ctx context.Context, filter employeeprofile.ProfileFilter) ([]employeeprofile.EmployeeProfileResponse, error) {
				assert.Equal(t, employeeprofile.StatusOnLeave, filter.Status)
				return []employeeprofile.EmployeeProfileResponse{{ID: employeeID}}, nil
			},
		}
		c, w := newContext(http.MethodGet, "/employee-profiles?status=on_leave", "")
		employeeprofile.NewHandler(svc, validation.UnknownFieldsIgnore).ListProfiles(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/employee-profiles?status=gone", "")
		employeeprofile.NewHandler(&fakeProfileService{}, validation.UnknownFieldsIgnore).ListProfiles(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}

func TestEmployeeProfileHandler_GetProfile(t *testing.T) {
	t.Run("malformed id", func(t *testing.T) {
		c, w := newContext(http.MethodGet, "/employee-profiles/abc", "")
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		employeeprofile.NewHandler(&fakeProfileService{}, validation.UnknownFieldsIgnore).GetProfile(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeProfileService{
			getProfileFn: func(ctx context.Context, id string) (employeeprofile.EmployeeProfileResponse, error) {
				return employeeprofile.EmployeeProfileResponse{}, profileerrors.ErrProfileNotFound
			},
		}
		c, w := newContext(http.MethodGet, "/employee-profiles/"+missingID, "")
		c.Params = gin.Params{{Key: "id", Value: missingID}}
		employeeprofile.NewHandler(svc, validation.UnknownFieldsIgnore).GetProfile(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}

func TestEmployeeProfileHandler_ProcessChangeRequest(t *testing.T) {
	t.Run("passes the actor", func(t *testing.T) {
		svc := &fakeProfileService{
			processChangeRequestFn: func(ctx context.Context, actorID, id string, req employeeprofile.ProcessChangeRequestDto) (employeeprofile.ChangeRequestResponse, error) {
				assert.Equal(t, reviewerID, actorID)
				assert.Equal(t, requestID, id)
				assert.Equal(t, employeeprofile.DecisionApprove, req.Decision)
				return employeeprofile.ChangeRequestResponse{ID: id, Status: employeeprofile.ChangeApproved}, nil
			},
		}
		c, w := newContext(http.MethodPost, "/profile-change-requests/"+requestID+"/process", `{"decision":"approve"}`)
		c.Params = gin.Params{{Key: "id", Value: requestID}}
		c.Set("user_id", reviewerID)
		employeeprofile.NewHandler(svc, validation.UnknownFieldsIgnore).ProcessChangeRequest(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not pending", func(t *testing.T) {
		svc := &fakeProfileService{
			processChangeRequestFn: func(ctx context.Context, actorID, id string, req employeeprofile.ProcessChangeRequestDto) (employeeprofile.ChangeRequestResponse, error) {
				return employeeprofile.ChangeRequestResponse{}, profileerrors.ErrChangeRequestNotPending
			},
		}
		c, w := newContext(http.MethodPost, "/profile-change-requests/"+requestID+"/process", `{"decision":"reject"}`)
		c.Params = gin.Params{{Key: "id", Value: requestID}}
		employeeprofile.NewHandler(svc, validation.UnknownFieldsIgnore).ProcessChangeRequest(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_STATE", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("invalid decision", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/profile-change-requests/"+requestID+"/process", `{"decision":"maybe"}`)
		c.Params = gin.Params{{Key: "id", Value: requestID}}
		employeeprofile.NewHandler(&fakeProfileService{}, validation.UnknownFieldsIgnore).ProcessChangeRequest(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, validation.KindInvalidLiteralChoice, env.Error.Details[0].Kind)
	})
}
