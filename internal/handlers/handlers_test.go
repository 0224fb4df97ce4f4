package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/insyd-labs/notification-service/internal/router"
	"github.com/insyd-labs/notification-service/pkg/config"
	"github.com/insyd-labs/notification-service/validators"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	e := echo.New()
	e.Validator = validators.NewValidator()
	cfg := &config.Config{StoreTimeout: 5 * time.Second, WSSendBuffer: 16}
	router.SetupRoutes(e, cfg, db, nil)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &payload)
	}
	return rec, payload
}

func registerUser(t *testing.T, e *echo.Echo, username string) uint {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":"%s@insyd.com"}`, username, username)
	rec, payload := doJSON(t, e, http.MethodPost, "/api/v1/users", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	data := payload["data"].(map[string]any)
	return uint(data["id"].(float64))
}

func TestCreateUser(t *testing.T) {
	e := newTestServer(t)

	t.Run("registers and returns the user", func(t *testing.T) {
		rec, payload := doJSON(t, e, http.MethodPost, "/api/v1/users", `{"username":"alex_architect","email":"alex@insyd.com"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		data := payload["data"].(map[string]any)
		assert.Equal(t, "alex_architect", data["username"])
		assert.Equal(t, true, data["notifications_enabled"])
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/users", `{"username":"alex_architect","email":"alex@insyd.com"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/users", `{"username":"x","email":"not-an-email"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetUser(t *testing.T) {
	e := newTestServer(t)
	id := registerUser(t, e, "maya_designer")

	rec, payload := doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", id), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "maya_designer", payload["data"].(map[string]any)["username"])

	rec, _ = doJSON(t, e, http.MethodGet, "/api/v1/users/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitEvent(t *testing.T) {
	e := newTestServer(t)
	alex := registerUser(t, e, "alex_architect")
	maya := registerUser(t, e, "maya_designer")

	t.Run("valid like creates one notification", func(t *testing.T) {
		body := fmt.Sprintf(`{"type":"like","actor_id":%d,"target_id":%d}`, maya, alex)
		rec, payload := doJSON(t, e, http.MethodPost, "/api/v1/events", body)
		require.Equal(t, http.StatusAccepted, rec.Code)
		created := payload["data"].(map[string]any)["created_ids"].([]any)
		assert.Len(t, created, 1)
	})

	t.Run("missing comment text maps to 400", func(t *testing.T) {
		body := fmt.Sprintf(`{"type":"comment","actor_id":%d,"target_id":%d}`, maya, alex)
		rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/events", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unrecognized type maps to 400", func(t *testing.T) {
		body := fmt.Sprintf(`{"type":"wave","actor_id":%d,"target_id":%d}`, maya, alex)
		rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/events", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown actor maps to 404", func(t *testing.T) {
		body := fmt.Sprintf(`{"type":"follow","actor_id":404,"target_id":%d}`, alex)
		rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/events", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown target is a reported per-recipient failure", func(t *testing.T) {
		body := fmt.Sprintf(`{"type":"follow","actor_id":%d,"target_id":888}`, alex)
		rec, payload := doJSON(t, e, http.MethodPost, "/api/v1/events", body)
		require.Equal(t, http.StatusAccepted, rec.Code)
		data := payload["data"].(map[string]any)
		assert.Empty(t, data["created_ids"])
		failures := data["failures"].([]any)
		require.Len(t, failures, 1)
		assert.Equal(t, "unknown recipient", failures[0].(map[string]any)["reason"])
	})
}

func TestNotificationLifecycle(t *testing.T) {
	e := newTestServer(t)
	alex := registerUser(t, e, "alex_architect")
	maya := registerUser(t, e, "maya_designer")
	david := registerUser(t, e, "david_planner")

	// Alex posts; maya and david each get a notification.
	body := fmt.Sprintf(`{"type":"post","actor_id":%d,"title":"Hello World"}`, alex)
	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/events", body)
	require.Equal(t, http.StatusAccepted, rec.Code)

	// Maya likes back.
	body = fmt.Sprintf(`{"type":"like","actor_id":%d,"target_id":%d}`, maya, alex)
	rec, payload := doJSON(t, e, http.MethodPost, "/api/v1/events", body)
	require.Equal(t, http.StatusAccepted, rec.Code)
	likeID := uint(payload["data"].(map[string]any)["created_ids"].([]any)[0].(float64))

	listPath := fmt.Sprintf("/api/v1/users/%d/notifications", alex)
	rec, payload = doJSON(t, e, http.MethodGet, listPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	notifications := payload["data"].(map[string]any)["notifications"].([]any)
	require.Len(t, notifications, 1)
	assert.Equal(t, "maya_designer liked your post", notifications[0].(map[string]any)["content"])
	assert.Equal(t, "unread", notifications[0].(map[string]any)["status"])

	for _, id := range []uint{maya, david} {
		rec, payload = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/notifications", id), "")
		require.Equal(t, http.StatusOK, rec.Code)
		ns := payload["data"].(map[string]any)["notifications"].([]any)
		require.Len(t, ns, 1)
		assert.Equal(t, `alex_architect posted: "Hello World"`, ns[0].(map[string]any)["content"])
	}

	// Mark the like read: changed once, idempotent after.
	readPath := fmt.Sprintf("/api/v1/notifications/%d/read", likeID)
	rec, payload = doJSON(t, e, http.MethodPut, readPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["data"].(map[string]any)["changed"])

	rec, payload = doJSON(t, e, http.MethodPut, readPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, payload["data"].(map[string]any)["changed"])

	rec, payload = doJSON(t, e, http.MethodGet, listPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	notifications = payload["data"].(map[string]any)["notifications"].([]any)
	assert.Equal(t, "read", notifications[0].(map[string]any)["status"])
	assert.Equal(t, "maya_designer liked your post", notifications[0].(map[string]any)["content"])

	rec, _ = doJSON(t, e, http.MethodPut, "/api/v1/notifications/9999/read", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnreadCountAndReadAll(t *testing.T) {
	e := newTestServer(t)
	alex := registerUser(t, e, "alex_architect")
	maya := registerUser(t, e, "maya_designer")

	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{"type":"follow","actor_id":%d,"target_id":%d}`, maya, alex)
		rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/events", body)
		require.Equal(t, http.StatusAccepted, rec.Code)
	}

	countPath := fmt.Sprintf("/api/v1/users/%d/notifications/unread-count", alex)
	rec, payload := doJSON(t, e, http.MethodGet, countPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, payload["data"].(map[string]any)["count"])

	rec, payload = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/v1/users/%d/notifications/read-all", alex), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, payload["data"].(map[string]any)["changed"])

	rec, payload = doJSON(t, e, http.MethodGet, countPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, payload["data"].(map[string]any)["count"])
}

func TestListNotificationsUnknownUserIsEmpty(t *testing.T) {
	e := newTestServer(t)

	rec, payload := doJSON(t, e, http.MethodGet, "/api/v1/users/123/notifications", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, payload["data"].(map[string]any)["notifications"])
}
