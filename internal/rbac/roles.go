package rbac

import "go-hrms/internal/shared/enum"

type Role string

const (
	RoleDepartmentEmployee Role = "department_employee"
	RoleDepartmentHead     Role = "department_head"
	RoleHREmployee         Role = "hr_employee"
	RoleHRManager          Role = "hr_manager"
	RoleHRAdmin            Role = "hr_admin"
	RoleRecruiter          Role = "recruiter"
	RolePayrollSpecialist  Role = "payroll_specialist"
	RolePayrollManager     Role = "payroll_manager"
	RoleFinanceStaff       Role = "finance_staff"
	RoleSystemAdmin        Role = "system_admin"
)

var Roles = enum.New("Role",
	RoleDepartmentEmployee,
	RoleDepartmentHead,
	RoleHREmployee,
	RoleHRManager,
	RoleHRAdmin,
	RoleRecruiter,
	RolePayrollSpecialist,
	RolePayrollManager,
	RoleFinanceStaff,
	RoleSystemAdmin,
)

// Permission grants action on resource; "*" matches anything.
type Permission struct {
	Role     Role
	Resource string
	Action   string
}

// roleInheritance lists which roles a role includes, so staff roles keep the
// self-service rights of a regular employee.
var roleInheritance = [][2]Role{
	{RoleDepartmentHead, RoleDepartmentEmployee},
	{RoleHREmployee, RoleDepartmentEmployee},
	{RoleHRManager, RoleHREmployee},
	{RoleHRAdmin, RoleHRManager},
	{RoleRecruiter, RoleDepartmentEmployee},
	{RolePayrollSpecialist, RoleDepartmentEmployee},
	{RolePayrollManager, RolePayrollSpecialist},
	{RoleFinanceStaff, RoleDepartmentEmployee},
}

var defaultPermissions = []Permission{
	{RoleDepartmentEmployee, "leave", "create"},
	{RoleDepartmentEmployee, "leave", "read"},
	{RoleDepartmentEmployee, "leave", "cancel"},
	{RoleDepartmentHead, "leave", "review"},
	{RoleHRManager, "leave", "review"},
	{RoleHRManager, "leave", "adjust"},

	{RolePayrollSpecialist, "payroll_run", "create"},
	{RolePayrollSpecialist, "payroll_run", "read"},
	{RolePayrollSpecialist, "payroll_run", "calculate"},
	{RolePayrollSpecialist, "payroll_run", "submit"},
	{RolePayrollManager, "payroll_run", "manager_decide"},
	{RolePayrollManager, "payroll_run", "lock"},
	{RoleFinanceStaff, "payroll_run", "read"},
	{RoleFinanceStaff, "payroll_run", "finance_decide"},
	{RolePayrollSpecialist, "payslip", "generate"},
	{RoleDepartmentEmployee, "payslip", "read"},
	{RoleFinanceStaff, "payslip", "pay"},

	{RoleDepartmentEmployee, "claim", "create"},
	{RoleDepartmentEmployee, "claim", "read"},
	{RolePayrollSpecialist, "claim", "review"},
	{RolePayrollManager, "claim", "confirm"},
	{RoleDepartmentEmployee, "dispute", "create"},
	{RoleDepartmentEmployee, "dispute", "read"},
	{RolePayrollSpecialist, "dispute", "review"},
	{RolePayrollManager, "dispute", "confirm"},
	{RoleFinanceStaff, "refund", "*"},

	{RoleRecruiter, "application", "*"},
	{RoleHRManager, "application", "*"},
	{RoleHREmployee, "onboarding", "*"},
	{RoleRecruiter, "onboarding", "*"},
	{RoleDepartmentEmployee, "onboarding", "read"},
	{RoleDepartmentEmployee, "onboarding", "update"},

	{RoleDepartmentEmployee, "employee_profile", "read"},
	{RoleDepartmentEmployee, "employee_profile", "update_contact"},
	{RoleHRAdmin, "employee_profile", "create"},
	{RoleHRManager, "employee_profile", "update_status"},
	{RoleDepartmentEmployee, "change_request", "create"},
	{RoleDepartmentEmployee, "change_request", "cancel"},
	{RoleHREmployee, "change_request", "read"},
	{RoleHRManager, "change_request", "process"},

	{RoleSystemAdmin, "*", "*"},
}
