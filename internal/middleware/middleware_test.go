package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id")+"|"+c.GetString("employee_id")+"|"+c.GetString("role"))
	})

	do := func(header string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"user_id":     "u-1",
			"employee_id": "65f1c2a9e4b0a1b2c3d4e5f6",
			"role":        "hr_manager",
			"exp":         time.Now().Add(time.Hour).Unix(),
		})
		w := do("Bearer " + token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u-1|65f1c2a9e4b0a1b2c3d4e5f6|hr_manager", w.Body.String())
	})

	t.Run("missing token", func(t *testing.T) {
		w := do("")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"UNAUTHORIZED"`)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"user_id": "u-1",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})
		w := do("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"TOKEN_EXPIRED"`)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u-1"}).SignedString([]byte("other"))
		require.NoError(t, err)
		w := do("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"INVALID_TOKEN"`)
	})

	t.Run("token without user id", func(t *testing.T) {
		w := do("Bearer " + signToken(t, jwt.MapClaims{"role": "hr_admin"}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

type fakeEnforcer struct {
	allowed bool
	err     error
	got     rbac.EnforceRequest
}

func (f *fakeEnforcer) Enforce(req rbac.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func TestRBACAuthorize(t *testing.T) {
	newRouter := func(svc RBACService, role string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
		})
		r.POST("/runs", RBACAuthorize(svc, "payroll_run", "create"), func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})
		return r
	}

	tests := []struct {
		name     string
		role     string
		svc      *fakeEnforcer
		wantCode int
	}{
		{"allowed", "payroll_specialist", &fakeEnforcer{allowed: true}, http.StatusCreated},
		{"denied", "department_employee", &fakeEnforcer{}, http.StatusForbidden},
		{"no role", "", &fakeEnforcer{allowed: true}, http.StatusUnauthorized},
		{"enforcer failure", "hr_admin", &fakeEnforcer{err: errors.New("boom")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newRouter(tt.svc, tt.role).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/runs", nil))
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.role != "" {
				assert.Equal(t, rbac.EnforceRequest{Role: tt.role, Resource: "payroll_run", Action: "create"}, tt.svc.got)
			}
		})
	}
}

func TestIdempotency(t *testing.T) {
	const (
		cacheKey = "idemp:/claims:u-1:key-1"
		lockKey  = cacheKey + ":lock"
	)

	newRouter := func(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
		db, mock := redismock.NewClientMock()
		calls := 0
		r := gin.New()
		r.Use(func(c *gin.Context) { c.Set("user_id", "u-1") })
		r.POST("/claims", Idempotency(db), func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"id": "c-1"})
		})
		return r, mock, &calls
	}

	post := func(r *gin.Engine, key string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/claims", nil)
		if key != "" {
			req.Header.Set(IdempotencyHeader, key)
		}
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("first request stores the response", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(true)
		mock.ExpectSet(cacheKey, "201\n"+`{"id":"c-1"}`, idempotencyResultTTL).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := post(r, "key-1")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat is replayed without running the handler", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).SetVal("201\n" + `{"id":"c-1"}`)

		w := post(r, "key-1")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":"c-1"}`, w.Body.String())
		assert.Equal(t, "true", w.Header().Get(IdempotencyReplayHeader))
		assert.Equal(t, 0, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(false)

		w := post(r, "key-1")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no key bypasses redis", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		w := post(r, "")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDecodeStoredResponse(t *testing.T) {
	status, body, ok := decodeStoredResponse("409\n{\"ok\":false}")
	assert.True(t, ok)
	assert.Equal(t, 409, status)
	assert.Equal(t, `{"ok":false}`, string(body))

	_, _, ok = decodeStoredResponse("garbage")
	assert.False(t, ok)
}

func TestRateLimitByIP(t *testing.T) {
	r := gin.New()
	r.GET("/ping", RateLimitByIP(rate.Limit(1), 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitByUser_SkipsAnonymous(t *testing.T) {
	r := gin.New()
	r.GET("/ping", RateLimitByUser(rate.Limit(1), 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
