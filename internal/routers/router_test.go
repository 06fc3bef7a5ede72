package routers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/haierkeys/fast-note-service/internal/app"
	"github.com/haierkeys/fast-note-service/internal/dao"
	"github.com/haierkeys/fast-note-service/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	app    *app.App
	router *gin.Engine
}

func newTestServer(t *testing.T, yaml string) *testServer {
	t.Helper()
	t.Setenv(app.EnvJWTKey, "")
	t.Setenv(app.EnvDatabaseURL, "")

	cfg, err := app.ParseConfig([]byte("security:\n  auth-token-key: router-test-key\nserver:\n  run-mode: test\n" + yaml))
	require.NoError(t, err)

	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{Type: "sqlite", Path: ":memory:", AutoMigrate: true}, zap.NewNop())
	require.NoError(t, err)

	a, err := app.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	uni, err := validator.InstallGin()
	require.NoError(t, err)

	return &testServer{t: t, app: a, router: NewRouter(a, uni)}
}

type result struct {
	status int
	body   map[string]any
	cookie *http.Cookie
}

func (s *testServer) do(method, path, body string, cookie *http.Cookie) result {
	s.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	out := result{status: w.Code}
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &out.body), w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "NoteApp" {
			out.cookie = c
		}
	}
	return out
}

func (s *testServer) register(email string) *http.Cookie {
	s.t.Helper()
	res := s.do(http.MethodPost, "/api/user", `{"email":"`+email+`","password":"secret123"}`, nil)
	require.Equal(s.t, http.StatusOK, res.status, res.body)
	require.NotNil(s.t, res.cookie)
	return res.cookie
}

func noteID(t *testing.T, res result) string {
	t.Helper()
	note, ok := res.body["note"].(map[string]any)
	require.True(t, ok, res.body)
	return strconv.FormatInt(int64(note["id"].(float64)), 10)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, "")

	res := s.do(http.MethodPost, "/api/user", `{"email":" ada@example.com ","password":"secret123"}`, nil)
	require.Equal(t, http.StatusOK, res.status, res.body)
	assert.Equal(t, true, res.body["success"])
	assert.Equal(t, "Registration successful", res.body["message"])
	user := res.body["user"].(map[string]any)
	assert.Equal(t, "ada@example.com", user["email"])
	require.NotNil(t, res.cookie)
	assert.True(t, res.cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, res.cookie.SameSite)
	assert.Equal(t, 7*24*3600, res.cookie.MaxAge)
	_, hasToken := res.body["token"]
	assert.False(t, hasToken)

	res = s.do(http.MethodPost, "/api/user", `{"email":"ada@example.com","password":"secret123"}`, nil)
	assert.Equal(t, http.StatusConflict, res.status)

	res = s.do(http.MethodPost, "/api/user", `{"email":"not-an-email","password":"secret123"}`, nil)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, float64(3007), res.body["code"])

	res = s.do(http.MethodPost, "/api/user", `{"email":"bob@example.com","password":"123456"}`, nil)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, float64(3008), res.body["code"])

	res = s.do(http.MethodPost, "/api/user", `{"email":"bob@example.com"}`, nil)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, []any{"Email and password are required."}, res.body["details"])

	res = s.do(http.MethodPost, "/api/login", `{"email":"ada@example.com","password":"wrong-pass"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)

	res = s.do(http.MethodPost, "/api/login", `{"email":"nobody@example.com","password":"secret123"}`, nil)
	assert.Equal(t, http.StatusNotFound, res.status)

	res = s.do(http.MethodPost, "/api/login", `{"email":"ada@example.com","password":"secret123"}`, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "Login successful", res.body["message"])
	require.NotNil(t, res.cookie)

	res = s.do(http.MethodPost, "/api/verify-token", "", res.cookie)
	assert.Equal(t, map[string]any{"valid": true}, res.body)
}

func TestRegisterDisabled(t *testing.T) {
	s := newTestServer(t, "user:\n  register-is-enable: false\n")

	res := s.do(http.MethodPost, "/api/user", `{"email":"ada@example.com","password":"secret123"}`, nil)
	assert.Equal(t, http.StatusForbidden, res.status)
	assert.Equal(t, false, res.body["success"])
}

func TestVerifyTokenAndLogout(t *testing.T) {
	s := newTestServer(t, "")

	res := s.do(http.MethodPost, "/api/verify-token", "", nil)
	assert.Equal(t, map[string]any{"valid": false}, res.body)

	res = s.do(http.MethodPost, "/api/verify-token", "", &http.Cookie{Name: "NoteApp", Value: "garbage"})
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, map[string]any{"valid": false}, res.body)

	res = s.do(http.MethodPost, "/api/logout", "", nil)
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "Logged out successfully", res.body["message"])
	require.NotNil(t, res.cookie)
	assert.Equal(t, "", res.cookie.Value)
	assert.True(t, res.cookie.MaxAge < 0)
}

func TestNotesRequireSession(t *testing.T) {
	s := newTestServer(t, "")

	res := s.do(http.MethodGet, "/api/notes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)

	res = s.do(http.MethodPost, "/api/notes/create", "", &http.Cookie{Name: "NoteApp", Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, res.status)
}

func TestNoteLifecycle(t *testing.T) {
	s := newTestServer(t, "")
	ada := s.register("ada@example.com")

	res := s.do(http.MethodPost, "/api/notes/create", "", ada)
	require.Equal(t, http.StatusOK, res.status, res.body)
	note := res.body["note"].(map[string]any)
	assert.Equal(t, "Untitled Note", note["title"])
	assert.Equal(t, "# Untitled Note\n\nStart typing your ideas here...", note["content"])
	id := noteID(t, res)

	res = s.do(http.MethodPut, "/api/notes/"+id, `{"title":"My Title","content":"Hello"}`, ada)
	require.Equal(t, http.StatusOK, res.status, res.body)

	res = s.do(http.MethodGet, "/api/notes/"+id+"/history", "", ada)
	require.Equal(t, http.StatusOK, res.status)
	history := res.body["history"].([]any)
	require.Len(t, history, 1)
	assert.Equal(t, "current", history[0].(map[string]any)["id"])

	res = s.do(http.MethodPut, "/api/notes/"+id, `{"title":"My Title","content":"Hello World"}`, ada)
	require.Equal(t, http.StatusOK, res.status)

	res = s.do(http.MethodGet, "/api/notes/"+id+"/history", "", ada)
	history = res.body["history"].([]any)
	require.Len(t, history, 2)
	first := history[0].(map[string]any)
	assert.Equal(t, "Hello", first["content"])
	assert.Equal(t, false, first["isLatest"])
	assert.Equal(t, float64(1), first["versionNum"])
	last := history[1].(map[string]any)
	assert.Equal(t, true, last["isLatest"])
	assert.Equal(t, "Hello World", last["content"])

	// empty content is allowed, identical edits add no history
	res = s.do(http.MethodPut, "/api/notes/"+id, `{"title":"My Title","content":"Hello World"}`, ada)
	require.Equal(t, http.StatusOK, res.status)
	res = s.do(http.MethodGet, "/api/notes/"+id+"/history", "", ada)
	assert.Len(t, res.body["history"], 2)

	versionID := strconv.FormatInt(int64(first["id"].(float64)), 10)
	res = s.do(http.MethodGet, "/api/notes/history/"+versionID, "", ada)
	require.Equal(t, http.StatusOK, res.status, res.body)
	assert.Equal(t, true, res.body["success"])
	assert.Equal(t, "Hello", res.body["content"])
	assert.Equal(t, "My Title", res.body["title"])
	assert.Contains(t, res.body, "savedAt")
	assert.NotContains(t, res.body, "noteId")

	res = s.do(http.MethodGet, "/api/notes/history/"+versionID+"/diff", "", ada)
	require.Equal(t, http.StatusOK, res.status, res.body)
	assert.NotEmpty(t, res.body["patch"])
	assert.NotEmpty(t, res.body["diffs"])

	res = s.do(http.MethodGet, "/api/notes/history/current", "", ada)
	assert.Equal(t, http.StatusBadRequest, res.status)
	res = s.do(http.MethodGet, "/api/notes/history/abc", "", ada)
	assert.Equal(t, http.StatusBadRequest, res.status)
	res = s.do(http.MethodGet, "/api/notes/history/999999", "", ada)
	assert.Equal(t, http.StatusNotFound, res.status)

	res = s.do(http.MethodGet, "/api/notes", "", ada)
	require.Equal(t, http.StatusOK, res.status)
	notes := res.body["notes"].([]any)
	require.Len(t, notes, 1)
	assert.NotContains(t, notes[0].(map[string]any), "content")

	res = s.do(http.MethodPut, "/api/notes/"+id, `{"title":"","content":"x"}`, ada)
	assert.Equal(t, http.StatusBadRequest, res.status)
	res = s.do(http.MethodPut, "/api/notes/"+id, `{"title":"x"}`, ada)
	assert.Equal(t, http.StatusBadRequest, res.status)
	res = s.do(http.MethodPut, "/api/notes/"+id, `{"title":"Emptied","content":""}`, ada)
	assert.Equal(t, http.StatusOK, res.status)
	res = s.do(http.MethodGet, "/api/notes/abc", "", ada)
	assert.Equal(t, http.StatusBadRequest, res.status)

	res = s.do(http.MethodDelete, "/api/notes/"+id, "", ada)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "Note deleted successfully", res.body["message"])

	res = s.do(http.MethodGet, "/api/notes/"+id, "", ada)
	assert.Equal(t, http.StatusNotFound, res.status)
	res = s.do(http.MethodDelete, "/api/notes/"+id, "", ada)
	assert.Equal(t, http.StatusNotFound, res.status)
}

func TestNoteOwnership(t *testing.T) {
	s := newTestServer(t, "")
	ada := s.register("ada@example.com")
	bob := s.register("bob@example.com")

	id := noteID(t, s.do(http.MethodPost, "/api/notes/create", "", ada))
	s.do(http.MethodPut, "/api/notes/"+id, `{"title":"A","content":"1"}`, ada)
	s.do(http.MethodPut, "/api/notes/"+id, `{"title":"A","content":"2"}`, ada)

	res := s.do(http.MethodGet, "/api/notes/"+id+"/history", "", ada)
	history := res.body["history"].([]any)
	require.Len(t, history, 2)
	versionID := strconv.FormatInt(int64(history[0].(map[string]any)["id"].(float64)), 10)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/notes/"+id, "", bob).status)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPut, "/api/notes/"+id, `{"title":"B","content":"x"}`, bob).status)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/notes/"+id, "", bob).status)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/notes/"+id+"/history", "", bob).status)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/notes/history/"+versionID, "", bob).status)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/notes/history/"+versionID+"/diff", "", bob).status)

	res = s.do(http.MethodGet, "/api/notes", "", bob)
	assert.Equal(t, []any{}, res.body["notes"])
}

func TestHealthAndNoRoute(t *testing.T) {
	s := newTestServer(t, "")

	res := s.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "healthy", res.body["status"])
	assert.Equal(t, "connected", res.body["database"])

	res = s.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, res.status)

	require.NoError(t, s.app.Close())
	res = s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, res.status)
	assert.Equal(t, false, res.body["success"])
}

func TestPrivateRouterMetrics(t *testing.T) {
	s := newTestServer(t, "")
	s.do(http.MethodGet, "/api/health", "", nil)

	private := NewPrivateRouterWithLogger(gin.TestMode, zap.NewNop(), s.app.Registry)
	w := httptest.NewRecorder()
	private.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `fast_note_http_requests_total{method="GET",route="/api/health",status="200"} 1`)

	w = httptest.NewRecorder()
	private.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/vars", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "memstats")
}
