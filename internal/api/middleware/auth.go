package middleware

import (
	"crypto/rsa"
	"crypto/subtle"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-rights-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-rights-ledger/internal/domain"
	"github.com/feral-file/ff-rights-ledger/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const PRINCIPAL_KEY contextKey = "principal"

// JWT_LEEWAY absorbs clock skew between the token issuer and this service
const JWT_LEEWAY = 30 * time.Second

// Role is what an authenticated caller may do on the ledger
type Role string

const (
	// ROLE_OPERATOR holds a platform API key and may act for any creator
	ROLE_OPERATOR Role = "operator"
	// ROLE_CREATOR holds a session token whose subject is the creator's wallet
	ROLE_CREATOR Role = "creator"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	APIKeys      []string
}

// Principal is the authenticated caller of a ledger write
type Principal struct {
	Role   Role
	Wallet string // checksummed creator wallet, empty for operators
	Claims *jwt.RegisteredClaims
}

// CanActFor reports whether the caller may tokenize on behalf of creator
func (p Principal) CanActFor(creator string) bool {
	if p.Role == ROLE_OPERATOR {
		return true
	}
	return p.Role == ROLE_CREATOR && p.Wallet != "" && p.Wallet == domain.NormalizeAddress(creator)
}

// Authenticator verifies the Authorization header of ledger writes
type Authenticator struct {
	publicKey    *rsa.PublicKey
	publicKeyErr error
	apiKeys      [][]byte
}

// NewAuthenticator parses the configured credentials once. A malformed public key
// only fails bearer requests, API keys keep working.
func NewAuthenticator(cfg AuthConfig) *Authenticator {
	a := &Authenticator{}

	if cfg.JWTPublicKey == "" {
		a.publicKeyErr = errors.New("JWT public key not configured")
	} else if key, err := parseRSAPublicKey(cfg.JWTPublicKey); err != nil {
		a.publicKeyErr = fmt.Errorf("failed to parse RSA public key: %w", err)
	} else {
		a.publicKey = key
	}

	for _, key := range cfg.APIKeys {
		if key != "" {
			a.apiKeys = append(a.apiKeys, []byte(key))
		}
	}

	return a
}

// Authenticate resolves the caller behind an Authorization header.
// "Bearer <jwt>" yields a creator, "ApiKey <key>" yields an operator.
func (a *Authenticator) Authenticate(authHeader string) (Principal, error) {
	if authHeader == "" {
		return Principal{}, errors.New("missing Authorization header")
	}

	scheme, credentials, ok := strings.Cut(authHeader, " ")
	if !ok || credentials == "" {
		return Principal{}, errors.New("invalid Authorization header format")
	}

	switch strings.ToLower(scheme) {
	case "bearer":
		claims, err := a.validateJWT(credentials)
		if err != nil {
			return Principal{}, err
		}
		if !domain.ValidAddress(claims.Subject) {
			return Principal{}, fmt.Errorf("token subject is not a wallet address: %q", claims.Subject)
		}
		return Principal{
			Role:   ROLE_CREATOR,
			Wallet: domain.NormalizeAddress(claims.Subject),
			Claims: claims,
		}, nil

	case "apikey":
		if err := a.validateAPIKey(credentials); err != nil {
			return Principal{}, err
		}
		return Principal{Role: ROLE_OPERATOR}, nil

	default:
		return Principal{}, fmt.Errorf("unsupported authorization type: %s", scheme)
	}
}

// Auth returns a gin middleware that stores the caller's Principal in the context
func Auth(authenticator *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := authenticator.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.ErrorResponse{
				Error: apierrors.NewUnauthorizedError("Authentication failed", err.Error()),
			})
			return
		}

		fields := []zap.Field{zap.String("auth_role", string(principal.Role))}
		if principal.Wallet != "" {
			fields = append(fields, zap.String("auth_wallet", principal.Wallet))
		}
		c.Request = c.Request.WithContext(logger.WithFields(c.Request.Context(), fields...))
		c.Set(PRINCIPAL_KEY, principal)

		logger.DebugCtx(c.Request.Context(), "Authenticated ledger write",
			zap.String("path", c.Request.URL.Path))

		c.Next()
	}
}

// RequireRole rejects authenticated callers without the given role
func RequireRole(role Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok || principal.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, apierrors.ErrorResponse{
				Error: apierrors.NewForbiddenError(fmt.Sprintf("The %s role is required", role)),
			})
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the authenticated caller of the request, if any
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(PRINCIPAL_KEY)
	if !ok {
		return Principal{}, false
	}
	principal, ok := v.(Principal)
	return principal, ok
}

func (a *Authenticator) validateJWT(tokenString string) (*jwt.RegisteredClaims, error) {
	if a.publicKey == nil {
		return nil, a.publicKeyErr
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return a.publicKey, nil },
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(JWT_LEEWAY),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	return claims, nil
}

func (a *Authenticator) validateAPIKey(apiKey string) error {
	if len(a.apiKeys) == 0 {
		return errors.New("no API keys configured")
	}

	candidate := []byte(apiKey)
	for _, key := range a.apiKeys {
		if subtle.ConstantTimeCompare(candidate, key) == 1 {
			return nil
		}
	}

	return errors.New("invalid API key")
}

// parseRSAPublicKey parses an RSA public key in PKIX or PKCS1 PEM form
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}
