package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/webmail/api/middleware"
	"github.com/customeros/webmail/config"
	"github.com/customeros/webmail/internal/logger"
	"github.com/customeros/webmail/services"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// fakeGmail serves a two message mailbox where m2 is newer than m1.
func fakeGmail(t *testing.T) *httptest.Server {
	html := base64.URLEncoding.EncodeToString([]byte("<p>Quarterly numbers</p>"))
	messages := map[string]map[string]any{
		"m1": {
			"id": "m1", "threadId": "t1", "labelIds": []string{"INBOX", "CATEGORY_SOCIAL", "UNREAD"},
			"payload": map[string]any{
				"mimeType": "text/html",
				"headers": []map[string]string{
					{"name": "From", "value": `"Jane Doe" <jane@example.com>`},
					{"name": "Subject", "value": "Older"},
					{"name": "Date", "value": "Mon, 02 Jan 2006 15:04:05 +0000"},
				},
				"body": map[string]any{"data": html, "size": 24},
			},
		},
		"m2": {
			"id": "m2", "threadId": "t2", "labelIds": []string{"INBOX", "CATEGORY_SOCIAL"},
			"payload": map[string]any{
				"headers": []map[string]string{
					{"name": "From", "value": "bob@example.com"},
					{"name": "Date", "value": "Tue, 03 Jan 2006 15:04:05 +0000"},
				},
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer ya29.token" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": map[string]any{"code": 401, "message": "bad token"}})
			return
		}
		path := strings.TrimPrefix(r.URL.Path, "/gmail/v1/users/me/")
		switch {
		case path == "messages":
			writeJSON(w, http.StatusOK, map[string]any{
				"messages":           []map[string]string{{"id": "m1"}, {"id": "m2"}},
				"resultSizeEstimate": 2,
			})
		case path == "labels":
			writeJSON(w, http.StatusOK, map[string]any{
				"labels": []map[string]string{{"id": "INBOX", "name": "INBOX", "type": "system"}},
			})
		case path == "messages/send":
			writeJSON(w, http.StatusOK, map[string]any{"id": "sent-1"})
		case path == "messages/missing":
			writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]any{"code": 404, "message": "Requested entity was not found."}})
		case strings.HasPrefix(path, "messages/"):
			msg, ok := messages[strings.TrimPrefix(path, "messages/")]
			if !ok {
				writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]any{"code": 404, "message": "not found"}})
				return
			}
			writeJSON(w, http.StatusOK, msg)
		default:
			t.Errorf("unexpected upstream path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T, appCfg *config.AppConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	srv := fakeGmail(t)

	appLogger := logger.NewAppLogger(&logger.Config{DevMode: true})
	appLogger.InitLogger()

	cfg := config.NewConfig()
	cfg.AppConfig = appCfg
	cfg.GmailConfig = &config.GmailConfig{
		BaseURL:           srv.URL + "/",
		DefaultPageSize:   20,
		MaxPageSize:       500,
		MaxAttachmentSize: 1024,
		MaxBatchIDs:       100,
	}

	svcs, err := services.InitServices(cfg, appLogger)
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r, svcs, cfg.AppConfig, appLogger)
	return r
}

func serve(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var bearer = map[string]string{"Authorization": "Bearer ya29.token"}

func TestRoutes_ListInbox(t *testing.T) {
	r := newTestRouter(t, &config.AppConfig{DisplayTimezone: "UTC"})

	w := serve(r, http.MethodGet, "/api/mails/inbox?category=social", "", bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIdHeader))

	var resp struct {
		Messages []struct {
			ID        string `json:"id"`
			Subject   string `json:"subject"`
			FromName  string `json:"from_name"`
			FromEmail string `json:"from_email"`
			Category  string `json:"category"`
			IsUnread  bool   `json:"isUnread"`
			IsInInbox bool   `json:"isInInbox"`
		} `json:"messages"`
		Type     string `json:"type"`
		Category string `json:"category"`
		HasMore  bool   `json:"hasMore"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "m2", resp.Messages[0].ID)
	assert.Equal(t, "(No subject)", resp.Messages[0].Subject)
	assert.Equal(t, "bob@example.com", resp.Messages[0].FromEmail)
	assert.Equal(t, "Jane Doe", resp.Messages[1].FromName)
	assert.True(t, resp.Messages[1].IsUnread)
	assert.Equal(t, "social", resp.Messages[1].Category)
	assert.True(t, resp.Messages[1].IsInInbox)
	assert.Equal(t, "inbox", resp.Type)
	assert.False(t, resp.HasMore)
}

func TestRoutes_Detail(t *testing.T) {
	r := newTestRouter(t, &config.AppConfig{DisplayTimezone: "UTC"})

	w := serve(r, http.MethodGet, "/api/mails/m1", "", bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Message struct {
			ID   string `json:"id"`
			Body struct {
				HTML string `json:"html"`
			} `json:"body"`
		} `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "m1", resp.Message.ID)
	assert.Equal(t, "<p>Quarterly numbers</p>", resp.Message.Body.HTML)
}

func TestRoutes_DetailNotFound(t *testing.T) {
	r := newTestRouter(t, &config.AppConfig{DisplayTimezone: "UTC"})

	w := serve(r, http.MethodGet, "/api/mails/missing", "", bearer)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "gmail api error: 404")
}

func TestRoutes_Send(t *testing.T) {
	r := newTestRouter(t, &config.AppConfig{DisplayTimezone: "UTC"})

	w := serve(r, http.MethodPost, "/api/mails/send", `{"to":["jane@example.com"],"subject":"Hi","body":"Hello"}`, bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true,"messageId":"sent-1","message":"Email sent successfully"}`, w.Body.String())

	w = serve(r, http.MethodPost, "/api/mails/send", `{"to":[],"subject":"Hi","body":"Hello"}`, bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoutes_Labels(t *testing.T) {
	r := newTestRouter(t, &config.AppConfig{DisplayTimezone: "UTC"})

	w := serve(r, http.MethodGet, "/api/labels", "", bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Labels []struct {
				ID string `json:"id"`
			} `json:"labels"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Labels, 1)
	assert.Equal(t, "INBOX", resp.Data.Labels[0].ID)
}

func TestRoutes_RequiresCredential(t *testing.T) {
	r := newTestRouter(t, &config.AppConfig{DisplayTimezone: "UTC"})

	w := serve(r, http.MethodGet, "/api/labels", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_APIKey(t *testing.T) {
	r := newTestRouter(t, &config.AppConfig{DisplayTimezone: "UTC", APIKey: "service-key"})

	w := serve(r, http.MethodGet, "/api/mails/inbox", "", bearer)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	headers := map[string]string{"Authorization": "Bearer ya29.token", middleware.APIKeyHeader: "service-key"}
	w = serve(r, http.MethodGet, "/api/mails/inbox", "", headers)
	assert.Equal(t, http.StatusOK, w.Code)
}
