package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-minter/internal/api/middleware"
	"github.com/feral-file/ff-minter/internal/logger"
)

const callerHex = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testKeys struct {
	private   *rsa.PrivateKey
	publicPEM string
}

func newTestKeys(t *testing.T) *testKeys {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	return &testKeys{
		private:   key,
		publicPEM: string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})),
	}
}

func (k *testKeys) sign(t *testing.T, claims jwt.RegisteredClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(k.private)
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	keys := newTestKeys(t)
	otherKeys := newTestKeys(t)
	cfg := middleware.AuthConfig{JWTPublicKey: keys.publicPEM}

	valid := keys.sign(t, jwt.RegisteredClaims{
		Subject:   callerHex,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	tests := []struct {
		name          string
		header        string
		cfg           middleware.AuthConfig
		expectedError string
	}{
		{
			name:   "valid token",
			header: "Bearer " + valid,
			cfg:    cfg,
		},
		{
			name:   "scheme is case insensitive",
			header: "bearer " + valid,
			cfg:    cfg,
		},
		{
			name:          "missing header",
			header:        "",
			cfg:           cfg,
			expectedError: "missing Authorization header",
		},
		{
			name:          "malformed header",
			header:        "Bearer",
			cfg:           cfg,
			expectedError: "invalid Authorization header format",
		},
		{
			name:          "api key scheme",
			header:        "ApiKey secret",
			cfg:           cfg,
			expectedError: "unsupported authorization type: apikey",
		},
		{
			name:          "key not configured",
			header:        "Bearer " + valid,
			cfg:           middleware.AuthConfig{},
			expectedError: "JWT public key not configured",
		},
		{
			name:          "signed by another key",
			header:        "Bearer " + otherKeys.sign(t, jwt.RegisteredClaims{Subject: callerHex}),
			cfg:           cfg,
			expectedError: "failed to parse token",
		},
		{
			name: "expired",
			header: "Bearer " + keys.sign(t, jwt.RegisteredClaims{
				Subject:   callerHex,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			}),
			cfg:           cfg,
			expectedError: "failed to parse token",
		},
		{
			name:          "subject is not an address",
			header:        "Bearer " + keys.sign(t, jwt.RegisteredClaims{Subject: "alice"}),
			cfg:           cfg,
			expectedError: "token subject is not a valid address",
		},
		{
			name:          "zero address subject",
			header:        "Bearer " + keys.sign(t, jwt.RegisteredClaims{Subject: "0x0000000000000000000000000000000000000000"}),
			cfg:           cfg,
			expectedError: "token subject is not a valid address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := middleware.Authenticate(tt.header, tt.cfg)
			if tt.expectedError != "" {
				assert.False(t, result.Success)
				require.Error(t, result.Error)
				assert.Contains(t, result.Error.Error(), tt.expectedError)
				return
			}

			require.NoError(t, result.Error)
			assert.True(t, result.Success)
			assert.Equal(t, callerHex, result.Caller.Hex())
			assert.Equal(t, callerHex, result.Claims.Subject)
		})
	}
}

func TestAuth_Middleware(t *testing.T) {
	keys := newTestKeys(t)

	router := gin.New()
	router.Use(middleware.Auth(middleware.AuthConfig{JWTPublicKey: keys.publicPEM}))
	router.GET("/whoami", func(c *gin.Context) {
		caller, ok := middleware.CallerFromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, caller.Hex())
	})

	t.Run("authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+keys.sign(t, jwt.RegisteredClaims{Subject: callerHex}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, callerHex, w.Body.String())
	})

	t.Run("rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
	})
}

func TestCallerFromContext_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := middleware.CallerFromContext(c)
	assert.False(t, ok)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(w.Header().Get(middleware.REQUEST_ID_HEADER))
		assert.NoError(t, err)
	})

	t.Run("propagated", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.REQUEST_ID_HEADER, id)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, id, w.Header().Get(middleware.REQUEST_ID_HEADER))
	})

	t.Run("invalid replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.REQUEST_ID_HEADER, "not-a-uuid")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.NotEqual(t, "not-a-uuid", w.Header().Get(middleware.REQUEST_ID_HEADER))
	})
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"code":"internal_error","message":"Internal server error"}}`, w.Body.String())
}
