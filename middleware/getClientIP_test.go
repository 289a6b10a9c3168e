package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func requestContext(t *testing.T, remoteAddr string, headers map[string]string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	return c
}

func TestGetClientIPPrecedence(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"forwarded chain wins", "10.0.0.1:443", map[string]string{
			"X-Forwarded-For": " 203.0.113.7 , 10.0.0.2",
			"X-Real-IP":       "198.51.100.9",
		}, "203.0.113.7"},
		{"real ip when no forwarded", "10.0.0.1:443", map[string]string{
			"X-Real-IP": "198.51.100.9",
		}, "198.51.100.9"},
		{"socket peer stripped of port", "192.0.2.4:51234", nil, "192.0.2.4"},
		{"bare remote addr passes through", "192.0.2.4", nil, "192.0.2.4"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := requestContext(t, tc.remoteAddr, tc.headers)
			if got := getClientIP(c); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
