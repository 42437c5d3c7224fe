package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/noble-it/hub/internal/auth"
	"github.com/noble-it/hub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(issuer *auth.Issuer) *gin.Engine {
	r := gin.New()
	r.GET("/secret", AuthMiddleware(issuer), func(ctx *gin.Context) {
		admin, _ := ctx.Get(types.ContextAdminKey)
		ctx.JSON(http.StatusOK, gin.H{"admin": admin})
	})
	return r
}

func TestAuthMiddlewareOpenWithoutIssuer(t *testing.T) {
	w := httptest.NewRecorder()
	protectedRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secret", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	issuer, err := auth.NewIssuer("secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.GenerateJWT("admin@noble.example")
	require.NoError(t, err)

	cases := map[string]struct {
		header string
		cookie string
		want   int
	}{
		"missing":    {want: http.StatusUnauthorized},
		"malformed":  {header: "Token abc", want: http.StatusUnauthorized},
		"invalid":    {header: "Bearer abc", want: http.StatusUnauthorized},
		"bearer":     {header: "Bearer " + token, want: http.StatusOK},
		"cookie":     {cookie: token, want: http.StatusOK},
		"bad cookie": {cookie: "abc", want: http.StatusUnauthorized},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secret", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: types.TokenCookieName, Value: tc.cookie})
			}

			w := httptest.NewRecorder()
			protectedRouter(issuer).ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusOK {
				assert.Contains(t, w.Body.String(), "admin@noble.example")
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, ctx.GetString(types.ContextRequestIDKey))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(types.RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(types.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(types.RequestIDHeader))
}

func TestRequireDatabase(t *testing.T) {
	r := gin.New()
	r.GET("/data", RequireDatabase(false), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"Database unavailable"}`, w.Body.String())
}
