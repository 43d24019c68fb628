package leave

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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
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
	h.logger.Warn("leave request failed",
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

func (h *Handler) CreateRequest(c *gin.Context) {
	var req CreateLeaveRequestDto
	if !h.bind(c, CreateLeaveRequestSchema, &req) {
		return
	}

	resp, err := h.service.CreateRequest(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListRequests(c *gin.Context) {
	var q ListLeaveRequestsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	filter := ListFilter{EmployeeID: objectid.Normalize(q.EmployeeID)}
	if q.Status != "" {
		status, ok := LeaveStatuses.Parse(q.Status)
		if !ok {
			h.writeServiceError(c, apperror.InvalidField("status"))
			return
		}
		filter.Status = status
	}

	resp, err := h.service.ListRequests(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetRequest(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetRequest(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ReviewRequest(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req ReviewLeaveRequestDto
	if !h.bind(c, ReviewLeaveRequestSchema, &req) {
		return
	}

	resp, err := h.service.ReviewRequest(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CancelRequest(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.CancelRequest(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpsertEntitlement(c *gin.Context) {
	var req CreateLeaveEntitlementDto
	if !h.bind(c, CreateLeaveEntitlementSchema, &req) {
		return
	}

	resp, err := h.service.UpsertEntitlement(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateAdjustment(c *gin.Context) {
	var req CreateLeaveAdjustmentDto
	if !h.bind(c, CreateLeaveAdjustmentSchema, &req) {
		return
	}

	resp, err := h.service.CreateAdjustment(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetBalances(c *gin.Context) {
	employeeID, ok := h.pathID(c, "employeeId")
	if !ok {
		return
	}

	resp, err := h.service.GetBalances(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
