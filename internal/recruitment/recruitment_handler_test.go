package recruitment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/recruitment"
	recruitmenterrors "go-hrms/internal/recruitment/errors"
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

type fakeRecruitmentService struct {
	recruitment.Service
	createApplicationFn func(ctx context.Context, actorID string, req recruitment.CreateApplicationDto) (recruitment.ApplicationResponse, error)
	updateTaskFn        func(ctx context.Context, onboardingID, taskID string, req recruitment.UpdateOnboardingTaskDto) (recruitment.OnboardingResponse, error)
}

func (f *fakeRecruitmentService) CreateApplication(ctx context.Context, actorID string, req recruitment.CreateApplicationDto) (recruitment.ApplicationResponse, error) {
	return f.createApplicationFn(ctx, actorID, req)
}

func (f *fakeRecruitmentService) UpdateTask(ctx context.Context, onboardingID, taskID string, req recruitment.UpdateOnboardingTaskDto) (recruitment.OnboardingResponse, error) {
	return f.updateTaskFn(ctx, onboardingID, taskID, req)
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestRecruitmentHandler_CreateApplication(t *testing.T) {
	body := `{"candidateId":"` + candidateID + `","requisitionId":"` + requisitionID + `"}`

	t.Run("duplicate maps to conflict", func(t *testing.T) {
		svc := &fakeRecruitmentService{
			createApplicationFn: func(ctx context.Context, actorID string, req recruitment.CreateApplicationDto) (recruitment.ApplicationResponse, error) {
				assert.Equal(t, recruiterID, actorID)
				return recruitment.ApplicationResponse{}, recruitmenterrors.ErrApplicationExists
			},
		}
		c, w := newContext(http.MethodPost, "/recruitment/applications", body)
		c.Set("user_id", recruiterID)
		recruitment.NewHandler(svc, validation.UnknownFieldsIgnore).CreateApplication(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("non object body", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/recruitment/applications", `[1,2]`)
		recruitment.NewHandler(&fakeRecruitmentService{}, validation.UnknownFieldsIgnore).CreateApplication(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		assert.Equal(t, "body", env.Error.Details[0].Field)
	})
}

func TestRecruitmentHandler_UpdateTask(t *testing.T) {
	t.Run("passes both path ids", func(t *testing.T) {
		svc := &fakeRecruitmentService{
			updateTaskFn: func(ctx context.Context, onboardingID, taskID string, req recruitment.UpdateOnboardingTaskDto) (recruitment.OnboardingResponse, error) {
				assert.Equal(t, requisitionID, onboardingID)
				assert.Equal(t, candidateID, taskID)
				assert.Equal(t, recruitment.TaskInProgress, req.Status)
				return recruitment.OnboardingResponse{ID: onboardingID, Tasks: []recruitment.OnboardingTaskResponse{}}, nil
			},
		}
		c, w := newContext(http.MethodPatch, "/recruitment/onboardings/x/tasks/y", `{"status":"in_progress"}`)
		c.Params = gin.Params{{Key: "id", Value: requisitionID}, {Key: "taskId", Value: candidateID}}
		recruitment.NewHandler(svc, validation.UnknownFieldsIgnore).UpdateTask(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown task status", func(t *testing.T) {
		c, w := newContext(http.MethodPatch, "/recruitment/onboardings/x/tasks/y", `{"status":"done"}`)
		c.Params = gin.Params{{Key: "id", Value: requisitionID}, {Key: "taskId", Value: candidateID}}
		recruitment.NewHandler(&fakeRecruitmentService{}, validation.UnknownFieldsIgnore).UpdateTask(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, validation.KindInvalidEnumValue, env.Error.Details[0].Kind)
	})

	t.Run("malformed task id", func(t *testing.T) {
		c, w := newContext(http.MethodPatch, "/recruitment/onboardings/x/tasks/y", `{"status":"completed"}`)
		c.Params = gin.Params{{Key: "id", Value: requisitionID}, {Key: "taskId", Value: "y"}}
		recruitment.NewHandler(&fakeRecruitmentService{}, validation.UnknownFieldsIgnore).UpdateTask(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
