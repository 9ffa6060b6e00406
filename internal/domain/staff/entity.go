package staff

// Project is one project assignment of a staff member.
type Project struct {
	Code       string  `json:"code"`
	Department *string `json:"department"`
}

// Staff is a directory row merged from the upstream staff databases.
// Pointer fields are null when the source rows omit them.
type Staff struct {
	Username       string    `json:"username"`
	EmployeeNumber string    `json:"employee_number"`
	FullName       *string   `json:"full_name"`
	Email          *string   `json:"email"`
	EmpClass       *string   `json:"emp_class"`
	Projects       []Project `json:"projects"`
	PIUsername     *string   `json:"pi_username"`
	PIFullName     *string   `json:"pi_full_name"`
	PIEmployeeID   *string   `json:"pi_employee_id"`
}

// PI is a project investigator summary for HR listings.
type PI struct {
	Username       string  `json:"username"`
	FullName       *string `json:"full_name"`
	EmployeeNumber *string `json:"employee_number"`
	StaffCount     int     `json:"staff_count"`
}

// NullFieldCount counts unset optional fields; the merge tie-break keeps
// the row with the fewest.
func (s Staff) NullFieldCount() int {
	n := 0
	if s.FullName == nil {
		n++
	}
	if s.Email == nil {
		n++
	}
	if s.EmpClass == nil {
		n++
	}
	if len(s.Projects) == 0 {
		n++
	}
	if s.PIUsername == nil {
		n++
	}
	if s.PIFullName == nil {
		n++
	}
	if s.PIEmployeeID == nil {
		n++
	}
	return n
}
