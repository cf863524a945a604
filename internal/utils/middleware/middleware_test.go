package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/provely/server/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	t.Run("generates new request ID when not provided", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			requestID := GetRequestID(c)
			c.String(http.StatusOK, requestID)
		})

		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		// Check response header
		headerID := w.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, headerID)
		// Check body matches header
		assert.Equal(t, headerID, w.Body.String())
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			requestID := GetRequestID(c)
			c.String(http.StatusOK, requestID)
		})

		existingID := "existing-request-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, existingID, w.Header().Get(RequestIDHeader))
		assert.Equal(t, existingID, w.Body.String())
	})
}

func TestGetRequestID(t *testing.T) {
	t.Run("returns empty string when not set", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		id := GetRequestID(c)
		assert.Empty(t, id)
	})

	t.Run("returns request ID when set", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(RequestIDKey, "test-id")
		id := GetRequestID(c)
		assert.Equal(t, "test-id", id)
	})
}

func TestLogging(t *testing.T) {
	t.Run("logs successful requests", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(&logger.Config{
			Level:  "info",
			Format: "json",
			Output: buf,
		})

		router := gin.New()
		router.Use(RequestID())
		router.Use(Logging(log))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		logOutput := buf.String()
		assert.Contains(t, logOutput, "HTTP Request")
		assert.Contains(t, logOutput, "GET")
		assert.Contains(t, logOutput, "/test")
		assert.Contains(t, logOutput, "200")
	})

	t.Run("logs 4xx requests as warnings", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(&logger.Config{
			Level:  "warn",
			Format: "json",
			Output: buf,
		})

		router := gin.New()
		router.Use(Logging(log))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusNotFound, "not found")
		})

		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		logOutput := buf.String()
		assert.Contains(t, logOutput, "WARN")
		assert.Contains(t, logOutput, "404")
	})

	t.Run("logs 5xx requests as errors", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(&logger.Config{
			Level:  "error",
			Format: "json",
			Output: buf,
		})

		router := gin.New()
		router.Use(Logging(log))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusInternalServerError, "error")
		})

		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		logOutput := buf.String()
		assert.Contains(t, logOutput, "ERROR")
		assert.Contains(t, logOutput, "500")
	})

	t.Run("includes query parameters", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(&logger.Config{
			Level:  "info",
			Format: "json",
			Output: buf,
		})

		router := gin.New()
		router.Use(Logging(log))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		req := httptest.NewRequest("GET", "/test?foo=bar", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Contains(t, buf.String(), "foo=bar")
	})

	t.Run("includes user agent", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(&logger.Config{
			Level:  "info",
			Format: "json",
			Output: buf,
		})

		router := gin.New()
		router.Use(Logging(log))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("User-Agent", "TestAgent/1.0")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Contains(t, buf.String(), "TestAgent/1.0")
	})
}

func TestRecovery(t *testing.T) {
	t.Run("recovers from panic", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(&logger.Config{
			Level:  "error",
			Format: "json",
			Output: buf,
		})

		router := gin.New()
		router.Use(Recovery(log))
		router.GET("/panic", func(c *gin.Context) {
			panic("test panic")
		})

		req := httptest.NewRequest("GET", "/panic", nil)
		w := httptest.NewRecorder()

		// Should not panic
		require.NotPanics(t, func() {
			router.ServeHTTP(w, req)
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")

		// Check logging
		logOutput := buf.String()
		assert.Contains(t, logOutput, "Panic recovered")
		assert.Contains(t, logOutput, "test panic")
	})

	t.Run("uses default logger when nil", func(t *testing.T) {
		router := gin.New()
		router.Use(Recovery(nil))
		router.GET("/panic", func(c *gin.Context) {
			panic("test panic")
		})

		req := httptest.NewRequest("GET", "/panic", nil)
		w := httptest.NewRecorder()

		require.NotPanics(t, func() {
			router.ServeHTTP(w, req)
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

type staticValidator struct {
	claims *AuthClaims
	err    error
}

func (v *staticValidator) ValidateToken(string) (*AuthClaims, error) {
	return v.claims, v.err
}

func TestAuth(t *testing.T) {
	userID := uuid.New()

	newRouter := func(validator JWTValidator, optional bool) *gin.Engine {
		router := gin.New()
		router.Use(Auth(validator, optional))
		router.GET("/test", func(c *gin.Context) {
			id, ok := GetUserID(c)
			if !ok {
				c.String(http.StatusOK, "anonymous")
				return
			}
			c.String(http.StatusOK, id.String())
		})
		return router
	}

	t.Run("valid token sets identity", func(t *testing.T) {
		router := newRouter(&staticValidator{claims: &AuthClaims{UserID: userID, Email: "a@b.c"}}, false)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(AuthorizationHeader, BearerPrefix+"token")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID.String(), w.Body.String())
	})

	t.Run("missing token rejected", func(t *testing.T) {
		router := newRouter(&staticValidator{}, false)

		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		router := newRouter(&staticValidator{err: assert.AnError}, false)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(AuthorizationHeader, BearerPrefix+"bad")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("optional mode passes through without token", func(t *testing.T) {
		router := newRouter(&staticValidator{}, true)

		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("non-bearer header treated as missing", func(t *testing.T) {
		router := newRouter(&staticValidator{claims: &AuthClaims{UserID: userID}}, false)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(AuthorizationHeader, "Basic abc")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCORS(t *testing.T) {
	t.Run("creates cors middleware without error", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		middleware := CORS(cfg)
		assert.NotNil(t, middleware)
	})

	t.Run("custom config creates middleware", func(t *testing.T) {
		cfg := CORSConfig{
			AllowOrigins: []string{"http://allowed.com"},
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Content-Type"},
		}
		middleware := CORS(cfg)
		assert.NotNil(t, middleware)
	})
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Contains(t, cfg.AllowMethods, "GET")
	assert.Contains(t, cfg.AllowMethods, "POST")
	assert.Contains(t, cfg.AllowMethods, "PUT")
	assert.Contains(t, cfg.AllowMethods, "DELETE")
	assert.Contains(t, cfg.AllowHeaders, "Authorization")
	assert.Contains(t, cfg.AllowHeaders, "Content-Type")
	assert.False(t, cfg.AllowCredentials)
}

func TestAdminAuthorizer_IsAdmin(t *testing.T) {
	adminID := uuid.New()
	authorizer := NewAdminAuthorizer(
		[]string{" Admin@Example.com ", ""},
		[]string{adminID.String(), "not-a-uuid"},
	)

	t.Run("matches configured email case-insensitively", func(t *testing.T) {
		assert.True(t, authorizer.IsAdmin(uuid.New(), "admin@example.com"))
		assert.True(t, authorizer.IsAdmin(uuid.Nil, "ADMIN@EXAMPLE.COM"))
	})

	t.Run("matches configured user id", func(t *testing.T) {
		assert.True(t, authorizer.IsAdmin(adminID, "someone@example.com"))
	})

	t.Run("rejects everyone else", func(t *testing.T) {
		assert.False(t, authorizer.IsAdmin(uuid.New(), "user@example.com"))
		assert.False(t, authorizer.IsAdmin(uuid.Nil, ""))
	})
}

func TestRequireAdmin(t *testing.T) {
	adminID := uuid.New()
	authorizer := NewAdminAuthorizer([]string{"admin@example.com"}, nil)

	newRouter := func(claims *AuthClaims, authorizer *AdminAuthorizer) *gin.Engine {
		router := gin.New()
		router.Use(Auth(&staticValidator{claims: claims}, false))
		router.Use(RequireAdmin(authorizer))
		router.PUT("/admin/settings", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	send := func(router *gin.Engine, withToken bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest("PUT", "/admin/settings", nil)
		if withToken {
			req.Header.Set(AuthorizationHeader, BearerPrefix+"token")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("configured admin passes", func(t *testing.T) {
		router := newRouter(&AuthClaims{UserID: adminID, Email: "admin@example.com"}, authorizer)

		w := send(router, true)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("regular account is forbidden", func(t *testing.T) {
		router := newRouter(&AuthClaims{UserID: uuid.New(), Email: "user@example.com"}, authorizer)

		w := send(router, true)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		router := newRouter(&AuthClaims{}, authorizer)

		w := send(router, false)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("nil authorizer forbids everyone", func(t *testing.T) {
		router := newRouter(&AuthClaims{UserID: adminID, Email: "admin@example.com"}, nil)

		w := send(router, true)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
