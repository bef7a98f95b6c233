package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, handler gin.HandlerFunc) *Response {
	t.Helper()
	router := gin.New()
	router.GET("/test", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp
}

func TestSuccess(t *testing.T) {
	resp := perform(t, func(c *gin.Context) {
		Success(c, gin.H{"id": 1})
	})
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Equal(t, "success", resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestSuccessPage(t *testing.T) {
	resp := perform(t, func(c *gin.Context) {
		SuccessPage(c, 42, 2, 10, []string{"a", "b"})
	})
	assert.Equal(t, CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(42), data["total"])
	assert.Equal(t, float64(2), data["page"])
	assert.Equal(t, float64(10), data["page_size"])
}

func TestErrorDefaultMessage(t *testing.T) {
	resp := perform(t, func(c *gin.Context) {
		Error(c, CodeResourceNotFound, "")
	})
	assert.Equal(t, CodeResourceNotFound, resp.Code)
	assert.Equal(t, "resource not found", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		name    string
		handler gin.HandlerFunc
		code    int
	}{
		{"param", func(c *gin.Context) { ParamError(c, "bad input") }, CodeParamError},
		{"auth", func(c *gin.Context) { AuthError(c, "no token") }, CodeAuthFailed},
		{"permission", func(c *gin.Context) { PermissionError(c, "admins only") }, CodePermissionDenied},
		{"not found", func(c *gin.Context) { NotFoundError(c, "plan not found") }, CodeResourceNotFound},
		{"conflict", func(c *gin.Context) { ConflictError(c, "email taken") }, CodeConflict},
		{"upstream", func(c *gin.Context) { UpstreamError(c, "gateway down") }, CodeUpstreamError},
		{"server", func(c *gin.Context) { ServerError(c, "boom") }, CodeServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := perform(t, tc.handler)
			assert.Equal(t, tc.code, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}
