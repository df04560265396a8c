package directory

import "time"

// ===== Requests =====

type CreateEmployeeRequest struct {
	EmployeeNumber string `json:"employee_number" binding:"required"`
	Name           string `json:"name" binding:"required"`
}

type UpdateEmployeeRequest struct {
	Name string `json:"name" binding:"required"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// ===== Responses =====

// password_hash は外に出さない
type EmployeeResponse struct {
	ID             string     `json:"id"`
	EmployeeNumber string     `json:"employee_number"`
	Name           string     `json:"name"`
	HasCredential  bool       `json:"has_credential"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (e *Employee) toDTO() EmployeeResponse {
	res := EmployeeResponse{
		ID:             e.ID,
		EmployeeNumber: e.EmployeeNumber,
		Name:           e.Name,
		HasCredential:  e.PasswordHash.Valid,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	if e.LastLogin.Valid {
		t := e.LastLogin.Time
		res.LastLogin = &t
	}
	return res
}
