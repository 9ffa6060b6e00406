package report

import (
	"context"
)

// Service computes monthly attendance statistics and renders CSV exports.
type Service interface {
	// StatsForEmployees computes month statistics for a set of employees.
	StatsForEmployees(ctx context.Context, employeeNumbers []string, month, year int) ([]EmployeeMonthStats, error)

	// StatsUnderPI computes month statistics for every employee under a PI.
	StatsUnderPI(ctx context.Context, piUsername string, month, year int) (MonthReport, error)

	// RenderCSV writes a report as CSV, prefixing partial-submission notes
	// as # comment lines.
	RenderCSV(report MonthReport) ([]byte, error)
}
