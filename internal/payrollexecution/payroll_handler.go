package payrollexecution

import (
	"net/http"
	"strconv"

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
	l := zap.L().Named("payrollexecution.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollexecution.handler")
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
	h.logger.Warn("payroll request failed",
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

func (h *Handler) CreateRun(c *gin.Context) {
	var req CreatePayrollRunDto
	if !h.bind(c, CreatePayrollRunSchema, &req) {
		return
	}

	resp, err := h.service.CreateRun(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListRuns(c *gin.Context) {
	var q ListPayrollRunsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	filter := RunFilter{Entity: q.Entity}
	if q.Status != "" {
		status, ok := PayrollRunStatuses.Parse(q.Status)
		if !ok {
			h.writeServiceError(c, apperror.InvalidField("status"))
			return
		}
		filter.Status = status
	}

	resp, err := h.service.ListRuns(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetRun(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetRun(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListEntries(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.ListEntries(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SubmitForReview(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.SubmitForReview(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ManagerDecision(c *gin.Context) {
	var req ManagerDecisionDto
	if !h.bind(c, ManagerDecisionSchema, &req) {
		return
	}

	resp, err := h.service.ManagerDecision(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) FinanceDecision(c *gin.Context) {
	var req FinanceDecisionDto
	if !h.bind(c, FinanceDecisionSchema, &req) {
		return
	}

	resp, err := h.service.FinanceDecision(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Lock(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.Lock(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Unlock(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req UnlockPayrollRunDto
	if !h.bind(c, UnlockPayrollRunSchema, &req) {
		return
	}

	resp, err := h.service.Unlock(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CalculateSalary(c *gin.Context) {
	var req SalaryCalculationInputDto
	if !h.bind(c, SalaryCalculationInputSchema, &req) {
		return
	}

	resp, err := h.service.CalculateSalary(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ApplyHrChecks(c *gin.Context) {
	var req HrChecksDto
	if !h.bind(c, HrChecksSchema, &req) {
		return
	}

	resp, err := h.service.ApplyHrChecks(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GeneratePayslips(c *gin.Context) {
	var req GeneratePayslipsDto
	if !h.bind(c, GeneratePayslipsSchema, &req) {
		return
	}

	resp, err := h.service.GeneratePayslips(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListPayslips(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.ListPayslips(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetPayslip(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetPayslip(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RenderPayslip(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.RenderPayslip(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DownloadPayslip(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	doc, err := h.service.DownloadPayslip(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(doc.Filename))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}

func (h *Handler) MarkPayslipPaid(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.service.MarkPayslipPaid(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
