package attendance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// POST /attendance （当日分のupsert）
	r.POST("/attendance", h.SubmitAttendance)
	// GET /attendance/today?employee_id=
	r.GET("/attendance/today", h.GetToday)
	// GET /attendance/recent?employee_id=&limit=
	r.GET("/attendance/recent", h.GetRecent)
}

// ---------- handlers ----------

// POST /attendance
func (h *Handler) SubmitAttendance(c *gin.Context) {
	var req SubmitAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}

	res, created, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}

	statusCode := http.StatusOK
	if created {
		statusCode = http.StatusCreated
	}
	c.JSON(statusCode, res)
}

// GET /attendance/today
func (h *Handler) GetToday(c *gin.Context) {
	res, err := h.svc.Today(c.Request.Context(), c.Query("employee_id"))
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	if res == nil {
		c.JSON(http.StatusNotFound, errorBody(CodeNotFound, "no attendance recorded today"))
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /attendance/recent
func (h *Handler) GetRecent(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	res, err := h.svc.Recent(c.Request.Context(), c.Query("employee_id"), limit)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": res})
}

// ---------- error mapping ----------

func errorBody(code Code, msg string) gin.H {
	return gin.H{"code": code, "message": msg}
}

func errorFromErr(err error) gin.H {
	var api *APIError
	if errors.As(err, &api) {
		return errorBody(api.Code, api.Message)
	}
	return errorBody(CodeUnavailable, "store unavailable")
}
