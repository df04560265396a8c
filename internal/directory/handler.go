package directory

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"florina-backend/internal/credential"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// 管理画面用CRUD（RequireAdminの内側でマウントすること）
	r.GET("/employees", h.ListEmployees)
	r.GET("/employees/:id", h.GetEmployee)
	r.POST("/employees", h.CreateEmployee)
	r.PUT("/employees/:id", h.UpdateEmployee)
	r.POST("/employees/:id/password", h.ResetPassword)
	r.DELETE("/employees/:id", h.DeleteEmployee)
}

// ---------- handlers ----------

// GET /employees
func (h *Handler) ListEmployees(c *gin.Context) {
	employees, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}

	out := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, employees[i].toDTO())
	}
	c.JSON(http.StatusOK, gin.H{"employees": out})
}

// GET /employees/:id
func (h *Handler) GetEmployee(c *gin.Context) {
	emp, err := h.svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, emp.toDTO())
}

// POST /employees
// 管理者追加は既定パスワードをハッシュ化して持たせる
func (h *Handler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(ErrCodeInvalidArgument, "invalid json or missing required fields"))
		return
	}

	hash, err := credential.Hash(credential.DefaultPassword)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}

	emp, err := h.svc.Create(c.Request.Context(), CreateInput{
		EmployeeNumber: req.EmployeeNumber,
		Name:           req.Name,
		PasswordHash:   hash,
	})
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusCreated, emp.toDTO())
}

// PUT /employees/:id
func (h *Handler) UpdateEmployee(c *gin.Context) {
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(ErrCodeInvalidArgument, "invalid json or missing required fields"))
		return
	}

	if err := h.svc.UpdateName(c.Request.Context(), c.Param("id"), req.Name); err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// POST /employees/:id/password
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(ErrCodeInvalidArgument, "invalid json or missing required fields"))
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), c.Param("id"), req.Password); err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password reset"})
}

// DELETE /employees/:id
func (h *Handler) DeleteEmployee(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// ---------- error mapping ----------

func errorBody(code, msg string) gin.H {
	return gin.H{"code": code, "message": msg}
}

func errorFromErr(err error) gin.H {
	var de *DomainError
	if errors.As(err, &de) {
		return errorBody(de.Code, de.Message)
	}
	// 未分類のエラーはストア障害として一律に報告する（握りつぶさない）
	return errorBody(ErrCodeUnavailable, "store unavailable")
}

func toHTTPStatus(err error) int {
	var de *DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case ErrCodeInvalidArgument:
			return http.StatusBadRequest
		case ErrCodeNotFound:
			return http.StatusNotFound
		case ErrCodeConflict:
			return http.StatusConflict
		default:
			return http.StatusServiceUnavailable
		}
	}
	return http.StatusServiceUnavailable
}
