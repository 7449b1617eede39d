package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogward/auth"
	"blogward/database"
	"blogward/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServer struct {
	router http.Handler
	db     database.Database
	tokens *auth.Tokens
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := database.New(gormDB)
	require.NoError(t, db.Migrate())

	// Registration assigns the default role, so it has to exist.
	require.NoError(t, db.RoleRepo().Insert(&models.Role{Name: "user"}))

	tokens, err := auth.NewTokens(auth.Config{Secret: "api-test-secret"})
	require.NoError(t, err)

	return testServer{
		router: newRouter(db, tokens),
		db:     db,
		tokens: tokens,
	}
}

func (s testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s testServer) registerUser(t *testing.T, username string) (models.User, string) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/auth/register", map[string]string{
		"username":   username,
		"email":      username + "@example.com",
		"password":   "hunter22",
		"first_name": "Test",
		"last_name":  "User",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	user, err := s.db.UserRepo().FindByUsername(username)
	require.NoError(t, err)
	require.NotNil(t, user)

	token, err := s.tokens.Issue(map[string]any{"sub": user.ID})
	require.NoError(t, err)
	return *user, token
}

func TestRegisterLoginMe(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/auth/register", map[string]string{
		"username":   "alice",
		"email":      "alice@example.com",
		"password":   "hunter22",
		"first_name": "Alice",
		"last_name":  "Smith",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/auth/login", map[string]string{
		"username": "alice",
		"password": "hunter22",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	require.True(t, sessionCookie.HttpOnly)

	// The cookie alone authenticates /auth/me.
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(sessionCookie)
	meRec := httptest.NewRecorder()
	s.router.ServeHTTP(meRec, req)
	require.Equal(t, http.StatusOK, meRec.Code)
	me := decodeBody(t, meRec)
	require.Equal(t, "alice", me["username"])
	require.NotContains(t, me, "password_hash")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := newTestServer(t)
	s.registerUser(t, "bob")

	rec := s.do(t, http.MethodPost, "/auth/register", map[string]string{
		"username":   "bob",
		"email":      "bob2@example.com",
		"password":   "hunter22",
		"first_name": "Bob",
		"last_name":  "Jones",
	}, "")
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "error", decodeBody(t, rec)["status"])
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/auth/register", map[string]string{
		"username":   "carol",
		"email":      "carol@example.com",
		"password":   "1234",
		"first_name": "Carol",
		"last_name":  "King",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "password", decodeBody(t, rec)["field"])
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestServer(t)
	s.registerUser(t, "dave")

	rec := s.do(t, http.MethodPost, "/auth/login", map[string]string{
		"username": "dave",
		"password": "not-the-password",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown users get the same response as a bad password.
	rec = s.do(t, http.MethodPost, "/auth/login", map[string]string{
		"username": "nobody",
		"password": "whatever",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddPostRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/add_post", map[string]any{
		"title":             "t",
		"content":           "c",
		"short_description": "s",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddPostAndGetBlog(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerUser(t, "erin")

	rec := s.do(t, http.MethodPost, "/api/add_post", map[string]any{
		"title":             "Hello",
		"content":           "Body text",
		"short_description": "Intro",
		"tags":              []string{"Go", "web"},
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody(t, rec)
	blogID := uint(created["blog_id"].(float64))
	require.NotZero(t, blogID)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/get_blog/%d", blogID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	blog := decodeBody(t, rec)
	require.Equal(t, "Hello", blog["title"])
	tags, _ := blog["tags"].([]any)
	require.Len(t, tags, 2)
}

func TestGetBlogHidesDrafts(t *testing.T) {
	s := newTestServer(t)
	_, authorToken := s.registerUser(t, "frank")
	_, otherToken := s.registerUser(t, "grace")

	rec := s.do(t, http.MethodPost, "/api/add_post", map[string]any{
		"title":             "Secret",
		"content":           "wip",
		"short_description": "wip",
		"status":            models.StatusDraft,
	}, authorToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	blogID := uint(decodeBody(t, rec)["blog_id"].(float64))

	path := fmt.Sprintf("/api/get_blog/%d", blogID)

	rec = s.do(t, http.MethodGet, path, nil, authorToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, path, nil, otherToken)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChangeBlogStatusEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerUser(t, "heidi")

	rec := s.do(t, http.MethodPost, "/api/add_post", map[string]any{
		"title":             "Post",
		"content":           "c",
		"short_description": "s",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	blogID := uint(decodeBody(t, rec)["blog_id"].(float64))

	rec = s.do(t, http.MethodPatch,
		fmt.Sprintf("/api/change_blog_status/%d?new_status=draft", blogID), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "success", decodeBody(t, rec)["status"])

	// Asking for the current status again is an info no-op.
	rec = s.do(t, http.MethodPatch,
		fmt.Sprintf("/api/change_blog_status/%d?new_status=draft", blogID), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "info", decodeBody(t, rec)["status"])

	rec = s.do(t, http.MethodPatch,
		fmt.Sprintf("/api/change_blog_status/%d?new_status=archived", blogID), nil, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteBlogEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, authorToken := s.registerUser(t, "ivan")
	_, otherToken := s.registerUser(t, "judy")

	rec := s.do(t, http.MethodPost, "/api/add_post", map[string]any{
		"title":             "Doomed",
		"content":           "c",
		"short_description": "s",
	}, authorToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	blogID := uint(decodeBody(t, rec)["blog_id"].(float64))

	path := fmt.Sprintf("/api/delete_blog/%d", blogID)

	rec = s.do(t, http.MethodDelete, path, nil, otherToken)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, path, nil, authorToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/get_blog/%d", blogID), nil, authorToken)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListBlogsEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerUser(t, "kate")

	for i := 0; i < 3; i++ {
		rec := s.do(t, http.MethodPost, "/api/add_post", map[string]any{
			"title":             fmt.Sprintf("Post %d", i),
			"content":           "c",
			"short_description": "s",
			"tags":              []string{"go"},
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := s.do(t, http.MethodGet, "/api/blogs?tag=go&page=1&page_size=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, float64(3), body["total_count"])
	require.Equal(t, float64(2), body["total_pages"])
	blogs, _ := body["blogs"].([]any)
	require.Len(t, blogs, 2)

	rec = s.do(t, http.MethodGet, "/api/blogs?tag=rust", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	require.Equal(t, float64(0), body["total_pages"])
}
