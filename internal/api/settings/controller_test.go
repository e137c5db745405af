package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chatwidgetai/widget-relay/internal/loaders"
	"github.com/chatwidgetai/widget-relay/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.Zlog = zap.NewNop()
}

type fakeStore struct {
	rec   *loaders.WidgetSettingsRecord
	err   error
	saved *loaders.WidgetSettingsRecord
}

func (f *fakeStore) GetWidgetSettings(ctx context.Context, uid string) (*loaders.WidgetSettingsRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rec, nil
}

func (f *fakeStore) UpsertWidgetSettings(ctx context.Context, rec *loaders.WidgetSettingsRecord) error {
	f.saved = rec
	return f.err
}

func newTestRouter(store Store) *gin.Engine {
	router := gin.New()
	ctrl := NewController(NewService(store))
	router.GET("/settings", ctrl.Resolve)
	router.POST("/settings", ctrl.Save)
	return router
}

func getSettings(router *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSettingsMissingUID(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	w := getSettings(router, "/settings")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Missing uid parameter", resp["error"])
}

func TestSettingsFound(t *testing.T) {
	router := newTestRouter(&fakeStore{rec: &loaders.WidgetSettingsRecord{
		UserID:       "tenant-1",
		PrimaryColor: "#ff0000",
		BusinessName: "Acme Plumbing",
		BusinessInfo: "Open 9-5",
		SalesRepName: "Dana",
	}})

	w := getSettings(router, "/settings?uid=tenant-1")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "#ff0000", resp["primary_color"])
	assert.Equal(t, "Acme Plumbing", resp["business_name"])
	assert.Equal(t, "Open 9-5", resp["business_info"])
	assert.Equal(t, "Dana", resp["sales_rep_name"])
}

func TestSettingsNotFound(t *testing.T) {
	router := newTestRouter(&fakeStore{err: loaders.ErrSettingsNotFound})

	w := getSettings(router, "/settings?uid=unknown")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Settings not found", resp["error"])
}

func TestSettingsStoreError(t *testing.T) {
	router := newTestRouter(&fakeStore{err: errors.New("connection refused")})

	w := getSettings(router, "/settings?uid=tenant-1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Database error", resp["error"])
	assert.Contains(t, resp["details"], "connection refused")
}

func TestSettingsSave(t *testing.T) {
	store := &fakeStore{}
	router := newTestRouter(store)

	body := `{"uid": "tenant-1", "primary_color": "#00ff00", "business_name": "Acme"}`
	req := httptest.NewRequest(http.MethodPost, "/settings", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, store.saved)
	assert.Equal(t, "tenant-1", store.saved.UserID)
	assert.Equal(t, "#00ff00", store.saved.PrimaryColor)
}
