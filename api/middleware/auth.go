package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/customeros/webmail/interfaces"
	internal_errors "github.com/customeros/webmail/internal/errors"
	"github.com/customeros/webmail/internal/utils"
	"github.com/customeros/webmail/services/gmailclient"
)

const GoogleUserIdHeader = "X-Google-User-Id"

type AuthConfig struct {
	// SessionJWTSecret switches the bearer token from a raw Google access token to a signed session token.
	SessionJWTSecret string
}

// SessionClaims is the payload of a session token issued by the login flow.
type SessionClaims struct {
	AccessToken string `json:"access_token"`
	GoogleID    string `json:"google_id,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware resolves the caller's Gmail credential and stores it in the gin context.
func AuthMiddleware(config AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c, internal_errors.NewAuthError("missing bearer token"))
			return
		}

		var cred interfaces.Credential
		if config.SessionJWTSecret != "" {
			var err error
			cred, err = parseSessionToken(token, config.SessionJWTSecret)
			if err != nil {
				abortUnauthorized(c, internal_errors.NewAuthError(err.Error()))
				return
			}
		} else {
			cred = interfaces.Credential{
				AccessToken: token,
				UserID:      strings.TrimSpace(c.GetHeader(GoogleUserIdHeader)),
			}
		}
		if cred.UserID == "" {
			cred.UserID = gmailclient.DefaultUserID
		}

		c.Set(utils.GinKeyCredential, cred)
		c.Set(utils.GinKeyUserId, cred.UserID)
		c.Next()
	}
}

// CredentialFromContext returns the credential stored by AuthMiddleware.
func CredentialFromContext(c *gin.Context) (interfaces.Credential, error) {
	value, ok := c.Get(utils.GinKeyCredential)
	if !ok {
		return interfaces.Credential{}, internal_errors.ErrCredentialMissing
	}
	cred, ok := value.(interfaces.Credential)
	if !ok || cred.AccessToken == "" {
		return interfaces.Credential{}, internal_errors.ErrCredentialMissing
	}
	return cred, nil
}

func parseSessionToken(tokenStr, secret string) (interfaces.Credential, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return interfaces.Credential{}, errors.Wrap(err, "invalid session token")
	}
	if !token.Valid {
		return interfaces.Credential{}, jwt.ErrTokenInvalidClaims
	}
	if claims.AccessToken == "" {
		return interfaces.Credential{}, errors.New("session token carries no access token")
	}

	userID := claims.GoogleID
	if userID == "" {
		userID = claims.Subject
	}
	return interfaces.Credential{AccessToken: claims.AccessToken, UserID: userID}, nil
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func abortUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "Unauthorized",
		"details": err.Error(),
	})
}
