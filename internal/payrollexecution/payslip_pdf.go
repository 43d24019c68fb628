package payrollexecution

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

var (
	colorHeader = &props.Color{Red: 31, Green: 78, Blue: 121}
	colorMuted  = &props.Color{Red: 110, Green: 110, Blue: 110}
)

type payslipLine struct {
	label  string
	amount decimal.Decimal
}

// renderPayslipPDF lays out one payslip on a single A4 page.
func renderPayslipPDF(run PayrollRun, entry PayrollEntry, slip Payslip) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Payslip "+slip.ID, true).
		WithAuthor(run.Entity, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(run, slip))
	m.AddRows(line.NewRow(2, props.Line{Color: colorHeader, Thickness: 0.5}))
	m.AddRows(sectionRow("Earnings"))
	m.AddRows(amountRows([]payslipLine{
		{"Base salary", entry.BaseSalary},
		{"Allowances", entry.Allowances},
		{fmt.Sprintf("Overtime (%s h x %s)", entry.OvertimeHours.String(), entry.OvertimeRate.StringFixed(2)), entry.OvertimePay},
		{"Gross salary", entry.GrossSalary},
	})...)
	m.AddRows(sectionRow("Deductions"))
	m.AddRows(amountRows([]payslipLine{
		{"Deductions", entry.Deductions},
		{"Penalties", entry.Penalties},
		{fmt.Sprintf("Tax (%s%%)", entry.TaxRate.Mul(decimal.NewFromInt(100)).String()), entry.Tax},
		{"Total deductions", slip.TotalDeductions},
	})...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorHeader, Thickness: 0.3}))
	m.AddRows(totalRow(slip.NetSalary))
	if entry.NegativeNetClamped {
		m.AddRows(text.NewRow(8, "Deductions exceeded gross pay; net pay was set to zero.", props.Text{
			Size: 8, Color: colorMuted, Top: 2,
		}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("payslip pdf: generate %s: %w", slip.ID, err)
	}
	return doc.GetBytes(), nil
}

func headerRow(run PayrollRun, slip Payslip) core.Row {
	return row.New(22).Add(
		col.New(7).Add(
			text.New(run.Entity, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorHeader}),
			text.New("Payroll period "+run.PayrollPeriod.Format(dateLayout), props.Text{Size: 9, Top: 8, Color: colorMuted}),
		),
		col.New(5).Add(
			text.New("PAYSLIP", props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right}),
			text.New("Payslip "+slip.ID, props.Text{Size: 8, Top: 7, Align: align.Right, Color: colorMuted}),
			text.New("Employee "+slip.EmployeeID, props.Text{Size: 8, Top: 12, Align: align.Right, Color: colorMuted}),
		),
	)
}

func sectionRow(title string) core.Row {
	return text.NewRow(9, title, props.Text{Style: fontstyle.Bold, Size: 10, Top: 3, Color: colorHeader})
}

func amountRows(lines []payslipLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(l.label, props.Text{Size: 9})),
			col.New(4).Add(text.New(l.amount.StringFixed(2), props.Text{Size: 9, Align: align.Right})),
		))
	}
	return rows
}

func totalRow(net decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New("Net pay", props.Text{Style: fontstyle.Bold, Size: 11, Top: 2})),
		col.New(4).Add(text.New(net.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 11, Top: 2, Align: align.Right})),
	)
}
