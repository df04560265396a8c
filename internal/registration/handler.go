package registration

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"florina-backend/internal/directory"
)

type Handler struct{ dir Directory }

func RegisterRoutes(r gin.IRoutes, dir Directory) {
	h := &Handler{dir: dir}

	// 自己登録（認証不要）
	r.POST("/employee/register/precheck", h.Precheck)
	r.POST("/employee/register", h.Register)
}

type PrecheckRequest struct {
	EmployeeNumber string `json:"employee_number" binding:"required"`
	Name           string `json:"name" binding:"required"`
}

type RegisterRequest struct {
	EmployeeNumber  string `json:"employee_number" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type RegisterResponse struct {
	EmployeeNumber string `json:"employee_number"`
	Strength       int    `json:"strength"`
}

// POST /employee/register/precheck
// ステップ1のUXフィードバック用。ここが通ってもSubmitは失敗しうる。
func (h *Handler) Precheck(c *gin.Context) {
	var req PrecheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	w := NewWorkflow(h.dir)
	if err := w.Start(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	if err := w.Step1(c.Request.Context(), req.EmployeeNumber, req.Name); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": string(w.State())})
}

// POST /employee/register
// ワークフローを最初から最後まで1リクエストで進める
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	w := NewWorkflow(h.dir)
	if err := w.Start(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	if err := w.Step1(c.Request.Context(), req.EmployeeNumber, req.Name); err != nil {
		writeError(c, err)
		return
	}
	strength, err := w.Step2(req.Password, req.ConfirmPassword)
	if err != nil {
		writeError(c, err)
		return
	}
	number, err := w.Submit(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{EmployeeNumber: number, Strength: strength})
}

func writeError(c *gin.Context, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, directory.ErrDuplicateNumber):
		c.JSON(http.StatusConflict, gin.H{"error": "employee number already exists"})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "registration temporarily unavailable"})
	}
}
