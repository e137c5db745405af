package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chatwidgetai/widget-relay/internal/llm"
	"github.com/chatwidgetai/widget-relay/internal/middleware"
	"github.com/chatwidgetai/widget-relay/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.Zlog = zap.NewNop()
}

func newTestRouter(provider llm.Provider) *gin.Engine {
	router := gin.New()
	router.Use(middleware.CORS())
	ctrl := NewController(NewService(nil, provider))
	router.POST("/chat", ctrl.Respond)
	return router
}

func postChat(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatInvalidMessagesFormat(t *testing.T) {
	router := newTestRouter(&llm.StaticProvider{Text: "ok"})

	cases := []string{
		`{"messages": "not an array"}`,
		`{"messages": 42}`,
		`{"messages": {}}`,
		`{}`,
		`not json at all`,
		`{"messages": []}`,
	}
	for _, body := range cases {
		w := postChat(router, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body %s", body)
		assert.Equal(t, "Invalid messages format. Expected an array.", resp["error"])
	}
}

func TestChatMissingCredential(t *testing.T) {
	router := newTestRouter(nil)

	w := postChat(router, `{"messages": [{"role": "user", "content": "hi"}]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Missing Gemini API key. Please check your environment variables.", resp["error"])
}

func TestChatHappyPath(t *testing.T) {
	router := newTestRouter(&llm.StaticProvider{
		Text: "  We are open 9-5 on weekdays.  Come visit us!  ",
	})

	w := postChat(router, `{
		"messages": [{"role": "user", "content": "What are your hours?"}],
		"settings": {"businessName": "Acme", "businessInfo": "Open 9-5", "salesRepName": "Dana"}
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Response)

	// Sanitized output: no control characters, bounded word count.
	for _, r := range resp.Response {
		if r == '\n' {
			continue
		}
		assert.True(t, r >= 0x20 && r <= 0x7E, "unexpected rune %q", r)
	}
	assert.LessOrEqual(t, len(strings.Fields(resp.Response)), 150)
}

func TestChatUnwrapsProviderJSON(t *testing.T) {
	router := newTestRouter(&llm.StaticProvider{Text: `{"response": "hi"}`})

	w := postChat(router, `{"messages": [{"role": "user", "content": "hello"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hi", resp.Response)
}

func TestChatProviderFailure(t *testing.T) {
	router := newTestRouter(&llm.StaticProvider{Err: errors.New("quota exceeded")})

	w := postChat(router, `{"messages": [{"role": "user", "content": "hi"}]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Error communicating with Gemini API. Please check your API key and try again.", resp["error"])
	assert.Contains(t, resp["details"], "quota exceeded")
}

func TestChatPreflight(t *testing.T) {
	router := newTestRouter(&llm.StaticProvider{Text: "ok"})

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://customer-site.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
