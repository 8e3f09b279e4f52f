package dto

type LoginRequest struct {
	EmployeeId string `json:"employee_id" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token      string `json:"token"`
	EmployeeId string `json:"employee_id"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Role       string `json:"role"`
}

type RegisterUserRequest struct {
	EmployeeId string `json:"employee_id" validate:"required,max=50"`
	Name       string `json:"name" validate:"required"`
	Surname    string `json:"surname" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       string `json:"role" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
