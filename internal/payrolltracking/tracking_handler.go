package payrolltracking

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
	l := zap.L().Named("payrolltracking.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrolltracking.handler")
	}
	return &Handler{service: service, policy: policy, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll tracking request failed",
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

func (h *Handler) listQuery(c *gin.Context) (ListQuery, bool) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return q, false
	}
	q.EmployeeID = objectid.Normalize(q.EmployeeID)
	return q, true
}

func paginate[T any](c *gin.Context, items []T) {
	page, pageSize := response.PageParams(c)
	data, meta := response.Paginate(items, page, pageSize)
	response.Success(c, http.StatusOK, data, &meta)
}

func (h *Handler) CreateClaim(c *gin.Context) {
	var req CreateClaimDto
	if !h.bind(c, CreateClaimSchema, &req) {
		return
	}

	resp, err := h.service.CreateClaim(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListClaims(c *gin.Context) {
	q, ok := h.listQuery(c)
	if !ok {
		return
	}

	filter := ListFilter{EmployeeID: q.EmployeeID}
	if q.Status != "" {
		status, ok := ClaimStatuses.Parse(q.Status)
		if !ok {
			h.writeServiceError(c, apperror.InvalidField("status"))
			return
		}
		filter.Status = string(status)
	}

	resp, err := h.service.ListClaims(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	paginate(c, resp)
}

func (h *Handler) GetClaim(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetClaim(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ReviewClaim(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req SpecialistReviewDto
	if !h.bind(c, SpecialistReviewSchema, &req) {
		return
	}

	resp, err := h.service.ReviewClaim(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ConfirmClaim(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req ManagerConfirmationDto
	if !h.bind(c, ManagerConfirmationSchema, &req) {
		return
	}

	resp, err := h.service.ConfirmClaim(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateDispute(c *gin.Context) {
	var req CreateDisputeDto
	if !h.bind(c, CreateDisputeSchema, &req) {
		return
	}

	resp, err := h.service.CreateDispute(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListDisputes(c *gin.Context) {
	q, ok := h.listQuery(c)
	if !ok {
		return
	}

	filter := ListFilter{EmployeeID: q.EmployeeID}
	if q.Status != "" {
		status, ok := DisputeStatuses.Parse(q.Status)
		if !ok {
			h.writeServiceError(c, apperror.InvalidField("status"))
			return
		}
		filter.Status = string(status)
	}

	resp, err := h.service.ListDisputes(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	paginate(c, resp)
}

func (h *Handler) GetDispute(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetDispute(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ReviewDispute(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req SpecialistReviewDto
	if !h.bind(c, SpecialistReviewSchema, &req) {
		return
	}

	resp, err := h.service.ReviewDispute(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ConfirmDispute(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req ManagerConfirmationDto
	if !h.bind(c, ManagerConfirmationSchema, &req) {
		return
	}

	resp, err := h.service.ConfirmDispute(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateClaimRefund(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req CreateRefundDto
	if !h.bind(c, CreateRefundSchema, &req) {
		return
	}

	resp, err := h.service.CreateRefundForClaim(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CreateDisputeRefund(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req CreateRefundDto
	if !h.bind(c, CreateRefundSchema, &req) {
		return
	}

	resp, err := h.service.CreateRefundForDispute(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListRefunds(c *gin.Context) {
	q, ok := h.listQuery(c)
	if !ok {
		return
	}

	filter := RefundFilter{EmployeeID: q.EmployeeID}
	if q.Status != "" {
		status, ok := RefundStatuses.Parse(q.Status)
		if !ok {
			h.writeServiceError(c, apperror.InvalidField("status"))
			return
		}
		filter.Status = status
	}

	resp, err := h.service.ListRefunds(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	paginate(c, resp)
}

func (h *Handler) MarkRefundPaid(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.MarkRefundPaid(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
