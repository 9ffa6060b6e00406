package report

// EmployeeMonthStats is one employee's computed month. HalfDays carries the
// 0.5 weighting already applied; open records count only in NotCheckedOut.
type EmployeeMonthStats struct {
	Username       string  `json:"username"`
	EmployeeNumber string  `json:"employee_number"`
	FullDays       int     `json:"full_days"`
	HalfDays       float64 `json:"half_days"`
	NotCheckedOut  int     `json:"not_checked_out"`
	AddedDays      int     `json:"added_days"`
	RemovedDays    int     `json:"removed_days"`
	TotalDays      float64 `json:"total_days"`
	WorkingDays    int     `json:"working_days"`
	AbsentDays     float64 `json:"absent_days"`
}

// MonthReport is the tabulated report for a set of employees plus the notes
// emitted when a contributing PI submitted only part of their staff.
type MonthReport struct {
	Month        int                  `json:"month"`
	Year         int                  `json:"year"`
	Rows         []EmployeeMonthStats `json:"rows"`
	PartialNotes []string             `json:"partial_notes,omitempty"`
}
