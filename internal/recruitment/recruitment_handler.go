package recruitment

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/objectid"
	"go-hrms/internal/shared/response"
	"go-hrms/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	policy  validation.UnknownFieldPolicy
	logger  *zap.Logger
}

func NewHandler(service Service, policy validation.UnknownFieldPolicy, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("recruitment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recruitment.handler")
	}
	return &Handler{service: service, policy: policy, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("recruitment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bind(c *gin.Context, schema validation.Schema, dst any) bool {
	if err := validation.BindJSON(c.Request.Body, schema, dst, validation.WithPolicy(h.policy)); err != nil {
		h.writeServiceError(c, err)
		return false
	}
	return true
}

func (h *Handler) pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if !objectid.IsValid(id) {
		h.writeServiceError(c, apperror.InvalidField(name))
		return "", false
	}
	return objectid.Normalize(id), true
}

func (h *Handler) CreateApplication(c *gin.Context) {
	var req CreateApplicationDto
	if !h.bind(c, CreateApplicationSchema, &req) {
		return
	}

	resp, err := h.service.CreateApplication(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListApplications(c *gin.Context) {
	var q ListApplicationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	filter := ApplicationFilter{CandidateID: objectid.Normalize(q.CandidateID), RequisitionID: objectid.Normalize(q.RequisitionID)}
	if q.Status != "" {
		status, ok := ApplicationStatuses.Parse(q.Status)
		if !ok {
			h.writeServiceError(c, apperror.InvalidField("status"))
			return
		}
		filter.Status = status
	}

	resp, err := h.service.ListApplications(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetApplication(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetApplication(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateApplicationStatus(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateApplicationStatusDto
	if !h.bind(c, UpdateApplicationStatusSchema, &req) {
		return
	}

	resp, err := h.service.UpdateApplicationStatus(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateOnboarding(c *gin.Context) {
	var req CreateOnboardingDto
	if !h.bind(c, CreateOnboardingSchema, &req) {
		return
	}

	resp, err := h.service.CreateOnboarding(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetOnboarding(c *gin.Context) {
	employeeID, ok := h.pathID(c, "employeeId")
	if !ok {
		return
	}

	resp, err := h.service.GetOnboarding(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	onboardingID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	taskID, ok := h.pathID(c, "taskId")
	if !ok {
		return
	}

	var req UpdateOnboardingTaskDto
	if !h.bind(c, UpdateOnboardingTaskSchema, &req) {
		return
	}

	resp, err := h.service.UpdateTask(c.Request.Context(), onboardingID, taskID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
