package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/webmail/interfaces"
	"github.com/customeros/webmail/internal/utils"
)

const testSecret = "session-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(config AuthConfig) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(config), CustomContextMiddleware("webmail"))
	r.GET("/whoami", func(c *gin.Context) {
		cred, err := CredentialFromContext(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token":     cred.AccessToken,
			"userId":    cred.UserID,
			"ctxUserId": utils.GetUserIdFromContext(c.Request.Context()),
		})
	})
	return r
}

func signSession(t *testing.T, claims SessionClaims, method jwt.SigningMethod, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func doRequest(r *gin.Engine, headers map[string]string) (*httptest.ResponseRecorder, map[string]string) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body := map[string]string{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestAuthMiddleware_DirectMode(t *testing.T) {
	r := newAuthRouter(AuthConfig{})

	w, body := doRequest(r, map[string]string{
		"Authorization":    "Bearer ya29.token",
		GoogleUserIdHeader: "1234567890",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ya29.token", body["token"])
	assert.Equal(t, "1234567890", body["userId"])
	assert.Equal(t, "1234567890", body["ctxUserId"])
}

func TestAuthMiddleware_DirectModeDefaultsUser(t *testing.T) {
	r := newAuthRouter(AuthConfig{})

	w, body := doRequest(r, map[string]string{"Authorization": "bearer ya29.token"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "me", body["userId"])
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	r := newAuthRouter(AuthConfig{})

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		w, body := doRequest(r, map[string]string{"Authorization": header})
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Equal(t, "Unauthorized", body["error"])
		assert.NotEmpty(t, body["details"])
	}
}

func TestAuthMiddleware_SessionToken(t *testing.T) {
	r := newAuthRouter(AuthConfig{SessionJWTSecret: testSecret})
	token := signSession(t, SessionClaims{
		AccessToken: "ya29.session",
		GoogleID:    "42",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ignored",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, jwt.SigningMethodHS256, testSecret)

	w, body := doRequest(r, map[string]string{"Authorization": "Bearer " + token})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ya29.session", body["token"])
	assert.Equal(t, "42", body["userId"])
}

func TestAuthMiddleware_SessionTokenSubjectFallback(t *testing.T) {
	r := newAuthRouter(AuthConfig{SessionJWTSecret: testSecret})
	token := signSession(t, SessionClaims{
		AccessToken: "ya29.session",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "sub-7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, jwt.SigningMethodHS256, testSecret)

	_, body := doRequest(r, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, "sub-7", body["userId"])
}

func TestAuthMiddleware_RejectsBadSessionTokens(t *testing.T) {
	r := newAuthRouter(AuthConfig{SessionJWTSecret: testSecret})
	valid := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}

	tests := map[string]string{
		"wrong secret": signSession(t, SessionClaims{AccessToken: "a", RegisteredClaims: valid}, jwt.SigningMethodHS256, "other"),
		"wrong method": signSession(t, SessionClaims{AccessToken: "a", RegisteredClaims: valid}, jwt.SigningMethodHS512, testSecret),
		"expired": signSession(t, SessionClaims{AccessToken: "a", RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		}}, jwt.SigningMethodHS256, testSecret),
		"no expiry":       signSession(t, SessionClaims{AccessToken: "a"}, jwt.SigningMethodHS256, testSecret),
		"no access token": signSession(t, SessionClaims{RegisteredClaims: valid}, jwt.SigningMethodHS256, testSecret),
		"not a jwt":       "ya29.plain-google-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			w, _ := doRequest(r, map[string]string{"Authorization": "Bearer " + token})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestCredentialFromContext_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := CredentialFromContext(c)
	assert.Error(t, err)

	c.Set(utils.GinKeyCredential, interfaces.Credential{AccessToken: "t", UserID: "me"})
	cred, err := CredentialFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, "t", cred.AccessToken)
}

func TestAPIKeyMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(APIKeyMiddleware(APIKeyConfig{HeaderName: APIKeyHeader, ValidAPIKey: "k1"}))
	r.GET("/whoami", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w, _ := doRequest(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := doRequest(r, map[string]string{APIKeyHeader: "k2"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid API key", body["error"])

	w, _ = doRequest(r, map[string]string{APIKeyHeader: "k1"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestIdMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIdMiddleware(), CustomContextMiddleware("webmail"))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"requestId": utils.GetRequestIdFromContext(c.Request.Context())})
	})

	w, body := doRequest(r, map[string]string{RequestIdHeader: "req-1"})
	assert.Equal(t, "req-1", w.Header().Get(RequestIdHeader))
	assert.Equal(t, "req-1", body["requestId"])

	w, body = doRequest(r, nil)
	generated := w.Header().Get(RequestIdHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, body["requestId"])
}
