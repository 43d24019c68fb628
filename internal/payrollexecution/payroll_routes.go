package payrollexecution

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb ...redis.Cmdable,
) {
	idempotent := func(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
		if len(rdb) > 0 && rdb[0] != nil {
			return append([]gin.HandlerFunc{middleware.Idempotency(rdb[0])}, handlers...)
		}
		return handlers
	}

	payroll := r.Group("/payroll")
	{
		runs := payroll.Group("/runs")
		runs.POST("", idempotent(middleware.RBACAuthorize(rbacService, "payroll_run", "create"), handler.CreateRun)...)
		runs.GET("", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.ListRuns)
		runs.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.GetRun)
		runs.GET("/:id/entries", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.ListEntries)
		runs.GET("/:id/payslips", middleware.RBACAuthorize(rbacService, "payroll_run", "read"), handler.ListPayslips)
		runs.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "payroll_run", "submit"), handler.SubmitForReview)
		runs.POST("/:id/lock", middleware.RBACAuthorize(rbacService, "payroll_run", "lock"), handler.Lock)
		runs.POST("/:id/unlock", middleware.RBACAuthorize(rbacService, "payroll_run", "lock"), handler.Unlock)

		payroll.POST("/manager-decision", middleware.RBACAuthorize(rbacService, "payroll_run", "manager_decide"), handler.ManagerDecision)
		payroll.POST("/finance-decision", middleware.RBACAuthorize(rbacService, "payroll_run", "finance_decide"), handler.FinanceDecision)
		payroll.POST("/salary-calculations", middleware.RBACAuthorize(rbacService, "payroll_run", "calculate"), handler.CalculateSalary)
		payroll.POST("/hr-checks", middleware.RBACAuthorize(rbacService, "payroll_run", "calculate"), handler.ApplyHrChecks)

		payslips := payroll.Group("/payslips")
		payslips.POST("/generate", idempotent(middleware.RBACAuthorize(rbacService, "payslip", "generate"), handler.GeneratePayslips)...)
		payslips.GET("/:id", middleware.RBACAuthorize(rbacService, "payslip", "read"), handler.GetPayslip)
		payslips.GET("/:id/download", middleware.RBACAuthorize(rbacService, "payslip", "read"), handler.DownloadPayslip)
		payslips.POST("/:id/render", middleware.RBACAuthorize(rbacService, "payslip", "generate"), handler.RenderPayslip)
		payslips.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, "payslip", "pay"), handler.MarkPayslipPaid)
	}
}
