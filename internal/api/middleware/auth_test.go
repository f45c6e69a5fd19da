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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-rights-ledger/internal/api/middleware"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func generateKey(t *testing.T) (*rsa.PrivateKey, string) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	return key, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

const testCreator = "0x457ee5f723C7606c12a7264b52e285906F91eEA6"

func TestAuthenticate_CreatorJWT(t *testing.T) {
	key, publicPEM := generateKey(t)
	authenticator := middleware.NewAuthenticator(middleware.AuthConfig{JWTPublicKey: publicPEM})

	token := signToken(t, key, jwt.RegisteredClaims{
		Subject:   "0x457ee5f723c7606c12a7264b52e285906f91eea6",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	principal, err := authenticator.Authenticate("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, middleware.ROLE_CREATOR, principal.Role)
	assert.Equal(t, testCreator, principal.Wallet)
	require.NotNil(t, principal.Claims)
}

func TestAuthenticate_RejectedJWTs(t *testing.T) {
	key, publicPEM := generateKey(t)
	otherKey, _ := generateKey(t)
	authenticator := middleware.NewAuthenticator(middleware.AuthConfig{JWTPublicKey: publicPEM})
	inAnHour := jwt.NewNumericDate(time.Now().Add(time.Hour))

	hmacToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   testCreator,
		ExpiresAt: inAnHour,
	}).SignedString([]byte(publicPEM))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", signToken(t, key, jwt.RegisteredClaims{
			Subject:   testCreator,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})},
		{"not yet valid", signToken(t, key, jwt.RegisteredClaims{
			Subject:   testCreator,
			ExpiresAt: inAnHour,
			NotBefore: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
		})},
		{"no expiry", signToken(t, key, jwt.RegisteredClaims{Subject: testCreator})},
		{"wrong key", signToken(t, otherKey, jwt.RegisteredClaims{Subject: testCreator, ExpiresAt: inAnHour})},
		{"subject is not a wallet", signToken(t, key, jwt.RegisteredClaims{Subject: "curator-1", ExpiresAt: inAnHour})},
		{"zero address subject", signToken(t, key, jwt.RegisteredClaims{
			Subject:   "0x0000000000000000000000000000000000000000",
			ExpiresAt: inAnHour,
		})},
		{"hmac signed", hmacToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authenticator.Authenticate("Bearer " + tt.token)
			assert.Error(t, err)
		})
	}
}

func TestAuthenticate_Failures(t *testing.T) {
	authenticator := middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{"key-1"}})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", "key-1"},
		{"empty credentials", "ApiKey "},
		{"unsupported scheme", "Basic key-1"},
		{"unknown api key", "ApiKey key-2"},
		{"api key prefix", "ApiKey key-"},
		{"jwt without public key", "Bearer token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authenticator.Authenticate(tt.header)
			assert.Error(t, err)
		})
	}
}

func TestAuthenticate_OperatorAPIKey(t *testing.T) {
	authenticator := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey: "not a pem",
		APIKeys:      []string{"", "key-1"},
	})

	principal, err := authenticator.Authenticate("ApiKey key-1")
	require.NoError(t, err)
	assert.Equal(t, middleware.ROLE_OPERATOR, principal.Role)
	assert.Empty(t, principal.Wallet)

	_, err = authenticator.Authenticate("Bearer token")
	assert.ErrorContains(t, err, "failed to parse RSA public key")

	_, err = middleware.NewAuthenticator(middleware.AuthConfig{}).Authenticate("ApiKey key-1")
	assert.ErrorContains(t, err, "no API keys configured")
}

func TestPrincipal_CanActFor(t *testing.T) {
	operator := middleware.Principal{Role: middleware.ROLE_OPERATOR}
	creator := middleware.Principal{Role: middleware.ROLE_CREATOR, Wallet: testCreator}

	assert.True(t, operator.CanActFor(testCreator))
	assert.True(t, operator.CanActFor("0x99fc8AD516FBCC9bA3123D56e63A35d05AA9EFB8"))
	assert.True(t, creator.CanActFor(testCreator))
	assert.True(t, creator.CanActFor("457ee5f723c7606c12a7264b52e285906f91eea6"))
	assert.False(t, creator.CanActFor("0x99fc8AD516FBCC9bA3123D56e63A35d05AA9EFB8"))
	assert.False(t, middleware.Principal{Role: middleware.ROLE_CREATOR}.CanActFor(""))
	assert.False(t, middleware.Principal{}.CanActFor(testCreator))
}

func TestAuth_Middleware(t *testing.T) {
	key, publicPEM := generateKey(t)
	authenticator := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey: publicPEM,
		APIKeys:      []string{"key-1"},
	})

	router := gin.New()
	router.Use(middleware.RequestID())
	router.POST("/tokenize", middleware.Auth(authenticator), func(c *gin.Context) {
		principal, ok := middleware.PrincipalFrom(c)
		assert.True(t, ok)
		c.String(http.StatusOK, string(principal.Role)+":"+principal.Wallet)
	})
	router.POST("/recover", middleware.Auth(authenticator), middleware.RequireRole(middleware.ROLE_OPERATOR), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	post := func(path, authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		req.Header.Set(middleware.REQUEST_ID_HEADER, "req-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := post("/tokenize", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
	assert.Equal(t, "req-1", w.Header().Get(middleware.REQUEST_ID_HEADER))

	token := signToken(t, key, jwt.RegisteredClaims{
		Subject:   testCreator,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	w = post("/tokenize", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "creator:"+testCreator, w.Body.String())

	w = post("/tokenize", "ApiKey key-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "operator:", w.Body.String())

	w = post("/recover", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"forbidden"`)

	w = post("/recover", "ApiKey key-1")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"internal_error"`)
}
