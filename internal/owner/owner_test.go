package owner

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashFor(t *testing.T, token string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestTokenResolver(t *testing.T) {
	res := NewTokenResolver(hashFor(t, "s3cret"))

	tests := []struct {
		name   string
		header string
		value  string
		want   bool
	}{
		{"owner header", HeaderToken, "s3cret", true},
		{"bearer", "Authorization", "Bearer s3cret", true},
		{"bearer lowercase", "Authorization", "bearer s3cret", true},
		{"wrong token", HeaderToken, "guess", false},
		{"basic auth", "Authorization", "Basic s3cret", false},
		{"missing", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
			if tt.header != "" {
				r.Header.Set(tt.header, tt.value)
			}
			require.Equal(t, tt.want, res.IsOwner(r))
		})
	}
}

func TestTokenResolver_EmptyHashAdmitsNobody(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderToken, "")
	require.False(t, NewTokenResolver("").IsOwner(r))
	r.Header.Set(HeaderToken, "anything")
	require.False(t, NewTokenResolver("").IsOwner(r))
}

func TestHashToken_RoundTrip(t *testing.T) {
	h, err := HashToken("owner-pass")
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderToken, "owner-pass")
	require.True(t, NewTokenResolver(h).IsOwner(r))
}

func TestRequire(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, allowed := range []bool{true, false} {
		r := gin.New()
		r.GET("/admin", Require(Static(allowed)), func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		if allowed {
			require.Equal(t, http.StatusOK, w.Code)
		} else {
			require.Equal(t, http.StatusForbidden, w.Code)
			require.JSONEq(t, `{"error":"access_denied"}`, w.Body.String())
		}
	}
}
