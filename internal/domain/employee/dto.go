package employee

// EmployeeResponse is the directory entry exposed to filter dropdowns and
// claim listings.
type EmployeeResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	Status     string `json:"status"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		FullName:   e.FullName,
		Department: e.Department,
		Position:   e.Position,
		Status:     string(e.Status),
	}
}
