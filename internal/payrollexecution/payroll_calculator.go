package payrollexecution

import "github.com/shopspring/decimal"

type SalaryInput struct {
	BaseSalary    decimal.Decimal
	Allowances    decimal.Decimal
	OvertimeHours decimal.Decimal
	OvertimeRate  decimal.Decimal
	Deductions    decimal.Decimal
	Penalties     decimal.Decimal
	TaxRate       decimal.Decimal
}

type SalaryBreakdown struct {
	OvertimePay     decimal.Decimal
	Gross           decimal.Decimal
	Tax             decimal.Decimal
	TotalDeductions decimal.Decimal
	Net             decimal.Decimal
	// NegativeNetClamped is set when deductions exceeded gross and net was floored at zero.
	NegativeNetClamped bool
}

// CalculateSalary derives gross, tax and net pay. Money values are rounded
// to two decimal places, half away from zero.
func CalculateSalary(in SalaryInput) SalaryBreakdown {
	overtime := in.OvertimeHours.Mul(in.OvertimeRate).Round(2)
	gross := in.BaseSalary.Add(in.Allowances).Add(overtime).Round(2)
	tax := gross.Mul(in.TaxRate).Round(2)
	totalDeductions := in.Deductions.Add(in.Penalties).Add(tax).Round(2)

	out := SalaryBreakdown{
		OvertimePay:     overtime,
		Gross:           gross,
		Tax:             tax,
		TotalDeductions: totalDeductions,
		Net:             gross.Sub(totalDeductions),
	}
	if out.Net.IsNegative() {
		out.Net = decimal.Zero
		out.NegativeNetClamped = true
	}
	return out
}

func decimalOrZero(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

func salaryInputFromDto(req SalaryCalculationInputDto) SalaryInput {
	return SalaryInput{
		BaseSalary:    decimal.NewFromFloat(req.BaseSalary),
		Allowances:    decimalOrZero(req.Allowances),
		OvertimeHours: decimalOrZero(req.OvertimeHours),
		OvertimeRate:  decimalOrZero(req.OvertimeRate),
		Deductions:    decimalOrZero(req.Deductions),
		Penalties:     decimalOrZero(req.Penalties),
		TaxRate:       decimalOrZero(req.TaxRate),
	}
}
