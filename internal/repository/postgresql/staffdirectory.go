package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sumitRND/PresenceBackend/internal/domain/staff"
	"github.com/sumitRND/PresenceBackend/internal/pkg/database"
)

// staffSourceRepository reads one upstream staff database. Two instances,
// one per upstream, are merged by the staffdir service.
type staffSourceRepository struct {
	db *database.DB
}

func NewStaffSourceRepository(db *database.DB) staff.Directory {
	return &staffSourceRepository{db: db}
}

const staffColumns = `
	username, employee_number, full_name, email, emp_class,
	pi_username, pi_full_name, pi_employee_id`

func scanStaff(row pgx.Row) (staff.Staff, error) {
	var s staff.Staff
	err := row.Scan(
		&s.Username, &s.EmployeeNumber, &s.FullName, &s.Email, &s.EmpClass,
		&s.PIUsername, &s.PIFullName, &s.PIEmployeeID,
	)
	return s, err
}

func (r *staffSourceRepository) loadProjects(ctx context.Context, employeeNumber string) ([]staff.Project, error) {
	query := `
		SELECT project_code, department
		FROM staff_projects
		WHERE employee_number = $1
		ORDER BY project_code ASC
	`

	rows, err := r.db.Query(ctx, query, employeeNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	defer rows.Close()

	var projects []staff.Project
	for rows.Next() {
		var p staff.Project
		if err := rows.Scan(&p.Code, &p.Department); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

func (r *staffSourceRepository) getStaff(ctx context.Context, query string, arg string) (*staff.Staff, error) {
	s, err := scanStaff(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}

	projects, err := r.loadProjects(ctx, s.EmployeeNumber)
	if err != nil {
		return nil, err
	}
	s.Projects = projects

	return &s, nil
}

// LookupByUsername implements staff.Directory.
func (r *staffSourceRepository) LookupByUsername(ctx context.Context, username string) (*staff.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE username = $1`
	return r.getStaff(ctx, query, username)
}

// LookupByEmployeeID implements staff.Directory.
func (r *staffSourceRepository) LookupByEmployeeID(ctx context.Context, employeeNumber string) (*staff.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE employee_number = $1`
	return r.getStaff(ctx, query, employeeNumber)
}

// ListUnderPI implements staff.Directory.
func (r *staffSourceRepository) ListUnderPI(ctx context.Context, piUsername string) ([]staff.Staff, error) {
	query := `
		SELECT ` + staffColumns + `
		FROM staff_members
		WHERE pi_username = $1
		ORDER BY username ASC
	`

	rows, err := r.db.Query(ctx, query, piUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff under PI: %w", err)
	}
	defer rows.Close()

	var result []staff.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate staff: %w", err)
	}

	for i := range result {
		projects, err := r.loadProjects(ctx, result[i].EmployeeNumber)
		if err != nil {
			return nil, err
		}
		result[i].Projects = projects
	}

	return result, nil
}

// ListPIs implements staff.Directory.
func (r *staffSourceRepository) ListPIs(ctx context.Context) ([]staff.PI, error) {
	query := `
		SELECT pi_username, MAX(pi_full_name), MAX(pi_employee_id), COUNT(*)
		FROM staff_members
		WHERE pi_username IS NOT NULL
		GROUP BY pi_username
		ORDER BY pi_username ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list PIs: %w", err)
	}
	defer rows.Close()

	var result []staff.PI
	for rows.Next() {
		var pi staff.PI
		if err := rows.Scan(&pi.Username, &pi.FullName, &pi.EmployeeNumber, &pi.StaffCount); err != nil {
			return nil, fmt.Errorf("failed to scan PI: %w", err)
		}
		result = append(result, pi)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate PIs: %w", err)
	}

	return result, nil
}

// LookupPI implements staff.Directory.
func (r *staffSourceRepository) LookupPI(ctx context.Context, piUsername string) (*staff.PI, error) {
	query := `
		SELECT pi_username, MAX(pi_full_name), MAX(pi_employee_id), COUNT(*)
		FROM staff_members
		WHERE pi_username = $1
		GROUP BY pi_username
	`

	var pi staff.PI
	err := r.db.QueryRow(ctx, query, piUsername).Scan(&pi.Username, &pi.FullName, &pi.EmployeeNumber, &pi.StaffCount)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get PI: %w", err)
	}

	return &pi, nil
}
