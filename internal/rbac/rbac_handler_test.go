package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	lastReq EnforceRequest
}

func (m *mockService) Enforce(req EnforceRequest) (bool, error) {
	m.lastReq = req
	return req.Role == RoleAdmin, nil
}

func (m *mockService) Permissions(role string) ([]PermissionResponse, error) {
	return []PermissionResponse{{Resource: ResourceRecord, Action: ActionRead}}, nil
}

func withRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("role", role)
		c.Next()
	}
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := &mockService{}
	handler := NewHandler(service)

	router := gin.New()
	router.POST("/rbac/enforce", withRole(RoleAdmin), handler.Enforce)

	// A role in the body is ignored; the caller's token decides.
	body, _ := json.Marshal(map[string]string{"role": "employee", "resource": "record", "action": "delete"})
	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, RoleAdmin, service.lastReq.Role)

	var resp struct {
		Ok   bool            `json:"ok"`
		Data EnforceResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Ok)
	assert.True(t, resp.Data.Allowed)
}

func TestHandler_Enforce_MissingAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/rbac/enforce", withRole(RoleAdmin), NewHandler(&mockService{}).Enforce)

	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"resource":"record"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/rbac/me", withRole(RoleEmployee), NewHandler(&mockService{}).Me)

	req, _ := http.NewRequest(http.MethodGet, "/rbac/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data RolePermissionsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, RoleEmployee, resp.Data.Role)
	assert.Len(t, resp.Data.Permissions, 1)
}
