package employeeprofile

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
	l := zap.L().Named("employeeprofile.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeeprofile.handler")
	}
	return &Handler{service: service, policy: policy, logger: l}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id")
	}
	return actorID
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee profile request failed",
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

func (h *Handler) pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !objectid.IsValid(id) {
		h.writeServiceError(c, apperror.InvalidField("id"))
		return "", false
	}
	return objectid.Normalize(id), true
}

func (h *Handler) CreateProfile(c *gin.Context) {
	var req CreateEmployeeProfileDto
	if !h.bind(c, CreateEmployeeProfileSchema, &req) {
		return
	}

	resp, err := h.service.CreateProfile(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListProfiles(c *gin.Context) {
	var q ListProfilesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	var filter ProfileFilter
	if q.Status != "" {
		status, ok := EmployeeStatuses.Parse(q.Status)
		if !ok {
			h.writeServiceError(c, apperror.InvalidField("status"))
			return
		}
		filter.Status = status
	}

	resp, err := h.service.ListProfiles(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateContactInfo(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req UpdateContactInfoDto
	if !h.bind(c, UpdateContactInfoSchema, &req) {
		return
	}

	resp, err := h.service.UpdateContactInfo(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req UpdateEmployeeStatusDto
	if !h.bind(c, UpdateEmployeeStatusSchema, &req) {
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SubmitChangeRequest(c *gin.Context) {
	var req CreateProfileChangeRequestDto
	if !h.bind(c, CreateProfileChangeRequestSchema, &req) {
		return
	}

	resp, err := h.service.SubmitChangeRequest(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListChangeRequests(c *gin.Context) {
	var q ListChangeRequestsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	filter := ChangeRequestFilter{EmployeeProfileID: objectid.Normalize(q.EmployeeProfileID)}
	if q.Status != "" {
		status, ok := ProfileChangeStatuses.Parse(q.Status)
		if !ok {
			h.writeServiceError(c, apperror.InvalidField("status"))
			return
		}
		filter.Status = status
	}

	resp, err := h.service.ListChangeRequests(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) ProcessChangeRequest(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req ProcessChangeRequestDto
	if !h.bind(c, ProcessChangeRequestSchema, &req) {
		return
	}

	resp, err := h.service.ProcessChangeRequest(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CancelChangeRequest(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.CancelChangeRequest(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
