package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"florina-backend/internal/directory"
)

type stubAuthenticator struct {
	emp *directory.Employee
	err error
}

func (s stubAuthenticator) Authenticate(_ context.Context, _, _ string) (*directory.Employee, error) {
	return s.emp, s.err
}

func setupRouter(svc Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, svc)
	return r
}

func postLogin(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/employee/login", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginHandler_Success(t *testing.T) {
	emp := &directory.Employee{ID: "emp-1", EmployeeNumber: "001", Name: "Ahmed"}
	r := setupRouter(stubAuthenticator{emp: emp})

	w := postLogin(t, r, LoginRequest{EmployeeNumber: "001", Password: "123456"})
	require.Equal(t, http.StatusOK, w.Code)

	var res LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "001", res.EmployeeNumber)
	assert.Equal(t, "Ahmed", res.Name)
	// レスポンスに資格情報が混ざらないこと
	assert.NotContains(t, w.Body.String(), "password")
}

func TestLoginHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown number", ErrEmployeeNotFound, http.StatusNotFound},
		{"wrong password", ErrInvalidCredential, http.StatusUnauthorized},
		{"store failure", errors.New("dial tcp: timeout"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(stubAuthenticator{err: tt.err})
			w := postLogin(t, r, LoginRequest{EmployeeNumber: "001", Password: "x"})
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestLoginHandler_BadRequest(t *testing.T) {
	r := setupRouter(stubAuthenticator{})

	w := postLogin(t, r, map[string]string{"employee_number": "001"}) // password欠落
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/employee/login", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
