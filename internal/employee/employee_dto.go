package employee

type CreateEmployeeRequest struct {
	FullName    string  `json:"full_name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Department  string  `json:"department" binding:"required"`
	Position    string  `json:"position"`
	BasicSalary float64 `json:"basic_salary" binding:"required,gt=0"`
}

type UpdateEmployeeRequest struct {
	FullName         string  `json:"full_name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	Department       string  `json:"department" binding:"required"`
	Position         string  `json:"position"`
	BasicSalary      float64 `json:"basic_salary" binding:"required,gt=0"`
	EmploymentStatus string  `json:"employment_status" binding:"required,oneof=ACTIVE INACTIVE"`
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	Department       string  `json:"department"`
	Position         string  `json:"position,omitempty"`
	BasicSalary      float64 `json:"basic_salary"`
	EmploymentStatus string  `json:"employment_status"`
}
