package employee

// Directory is an in-memory index over the employee list, keyed by employee
// id. Filtering and summaries resolve departments and display names through
// it; userId -> employee resolution goes through EmployeeRepository instead.
type Directory map[string]Employee

func NewDirectory(list []Employee) Directory {
	dir := make(Directory, len(list))
	for _, emp := range list {
		dir[emp.ID] = emp
	}
	return dir
}

// DisplayName returns the employee's full name, or ok=false when the id is
// not in the directory.
func (d Directory) DisplayName(employeeID string) (string, bool) {
	emp, ok := d[employeeID]
	if !ok {
		return "", false
	}
	return emp.FullName, true
}
