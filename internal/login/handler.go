package login

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"florina-backend/internal/directory"
)

type Authenticator interface {
	Authenticate(ctx context.Context, employeeNumber, password string) (*directory.Employee, error)
}

type Handler struct{ svc Authenticator }

func RegisterRoutes(r gin.IRoutes, svc Authenticator) {
	h := &Handler{svc: svc}
	r.POST("/employee/login", h.Login)
}

type LoginRequest struct {
	EmployeeNumber string `json:"employee_number" binding:"required"`
	Password       string `json:"password" binding:"required"`
}

type LoginResponse struct {
	ID             string     `json:"id"`
	EmployeeNumber string     `json:"employee_number"`
	Name           string     `json:"name"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
}

// POST /employee/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	emp, err := h.svc.Authenticate(c.Request.Context(), req.EmployeeNumber, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmployeeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "employee number not found"})
		case errors.Is(err, ErrInvalidCredential):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "login temporarily unavailable"})
		}
		return
	}

	res := LoginResponse{
		ID:             emp.ID,
		EmployeeNumber: emp.EmployeeNumber,
		Name:           emp.Name,
	}
	if emp.LastLogin.Valid {
		t := emp.LastLogin.Time
		res.LastLogin = &t
	}
	c.JSON(http.StatusOK, res)
}
