package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penmark/penmark/internal/config"
	"github.com/penmark/penmark/internal/database/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Listen:     "127.0.0.1:0",
		Database:   &config.DatabaseConfig{Path: ":memory:"},
		Session:    &config.SessionConfig{Key: "test-secret", MaxAge: 3600},
		Pagination: &config.PaginationConfig{HomeSize: 5, PageSize: 10},
		Gravatar:   &config.GravatarConfig{Enabled: false},
	}
}

func newTestServer(t *testing.T) (*Server, *mock.MockDB) {
	t.Helper()
	db := mock.NewMockDB()
	return New(testConfig(), db, false), db
}

func do(s *Server, method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

// signupAndLogin registers a user and returns the session cookies of a
// logged-in request.
func signupAndLogin(t *testing.T, s *Server, username, email string) []*http.Cookie {
	t.Helper()

	w := do(s, http.MethodPost, "/signup", url.Values{
		"username":         {username},
		"email":            {email},
		"password":         {"hunter22"},
		"password_confirm": {"hunter22"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	w = do(s, http.MethodPost, "/login", url.Values{
		"email":    {email},
		"password": {"hunter22"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/list", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func validArticle() url.Values {
	return url.Values{
		"title":    {"On Testing"},
		"summary":  {"A short summary"},
		"content":  {"The full content."},
		"category": {"all"},
	}
}

// createArticle posts a valid article and returns its detail path.
func createArticle(t *testing.T, s *Server, cookies []*http.Cookie) string {
	t.Helper()
	w := do(s, http.MethodPost, "/add-article", validArticle(), cookies)
	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/article/"))
	return location
}

func TestGuestIsRejectedOnProtectedRoutes(t *testing.T) {
	s, _ := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/add-article"},
		{http.MethodPost, "/add-article"},
		{http.MethodGet, "/article/1/edit"},
		{http.MethodPost, "/article/1/edit"},
		{http.MethodPost, "/article/1/delete"},
	} {
		w := do(s, route.method, route.path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestArticleLifecycle(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signupAndLogin(t, s, "alice", "alice@example.com")

	location := createArticle(t, s, cookies)

	w := do(s, http.MethodGet, location, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		Article struct {
			Title  string `json:"title"`
			Author string `json:"author"`
		} `json:"article"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "On Testing", detail.Article.Title)
	assert.Equal(t, "alice", detail.Article.Author)

	// edit
	form := validArticle()
	form.Set("title", "On Testing, Revised")
	w = do(s, http.MethodPost, location+"/edit", form, cookies)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, location, w.Header().Get("Location"))

	// delete
	w = do(s, http.MethodPost, location+"/delete", nil, cookies)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/articles", w.Header().Get("Location"))

	w = do(s, http.MethodGet, location, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNonOwnerIsForbidden(t *testing.T) {
	s, _ := newTestServer(t)

	aliceCookies := signupAndLogin(t, s, "alice", "alice@example.com")
	location := createArticle(t, s, aliceCookies)

	bobCookies := signupAndLogin(t, s, "bob", "bob@example.com")

	w := do(s, http.MethodGet, location+"/edit", nil, bobCookies)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(s, http.MethodPost, location+"/edit", validArticle(), bobCookies)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(s, http.MethodPost, location+"/delete", nil, bobCookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMissingArticle(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signupAndLogin(t, s, "alice", "alice@example.com")

	w := do(s, http.MethodGet, "/article/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(s, http.MethodGet, "/article/not-a-number", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(s, http.MethodPost, "/article/999/edit", validArticle(), cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(s, http.MethodPost, "/article/999/delete", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidationProblemsAreAccumulated(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signupAndLogin(t, s, "alice", "alice@example.com")

	form := url.Values{"category": {"other"}}
	w := do(s, http.MethodPost, "/add-article", form, cookies)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{
		"title is required",
		"summary is required",
		"content is required",
		`category must be "all" or "limited"`,
	}, body.Errors)
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	s, _ := newTestServer(t)
	signupAndLogin(t, s, "alice", "alice@example.com")

	wrongPassword := do(s, http.MethodPost, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong"},
	}, nil)
	unknownEmail := do(s, http.MethodPost, "/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"hunter22"},
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// identical bodies so the endpoint can't be used to enumerate accounts
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestDuplicateSignup(t *testing.T) {
	s, _ := newTestServer(t)
	signupAndLogin(t, s, "alice", "alice@example.com")

	w := do(s, http.MethodPost, "/signup", url.Values{
		"username":         {"alice2"},
		"email":            {"alice@example.com"},
		"password":         {"hunter22"},
		"password_confirm": {"hunter22"},
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogout(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signupAndLogin(t, s, "alice", "alice@example.com")

	w := do(s, http.MethodGet, "/logout", nil, cookies)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/articles", w.Header().Get("Location"))

	// the replacement cookie carries no identity
	w = do(s, http.MethodPost, "/add-article", validArticle(), w.Result().Cookies())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListPagination(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signupAndLogin(t, s, "alice", "alice@example.com")
	for i := 0; i < 25; i++ {
		createArticle(t, s, cookies)
	}

	w := do(s, http.MethodGet, "/list?page=1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Articles   []json.RawMessage `json:"articles"`
		Current    int               `json:"current"`
		TotalPages int               `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Articles, 10)
	assert.Equal(t, 3, page.TotalPages)

	w = do(s, http.MethodGet, "/list?page=4", nil, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Empty(t, page.Articles)
}

func TestHomeShowsLatestFive(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signupAndLogin(t, s, "alice", "alice@example.com")
	for i := 0; i < 7; i++ {
		createArticle(t, s, cookies)
	}

	w := do(s, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Articles []json.RawMessage `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Articles, 5)
}

func TestUsersListHidesEmails(t *testing.T) {
	s, _ := newTestServer(t)
	signupAndLogin(t, s, "alice", "alice@example.com")

	w := do(s, http.MethodGet, "/users", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
	assert.NotContains(t, w.Body.String(), "alice@example.com")
	assert.NotContains(t, w.Body.String(), "email")
}

func TestSearch(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := signupAndLogin(t, s, "alice", "alice@example.com")
	createArticle(t, s, cookies)

	var body struct {
		Articles []json.RawMessage `json:"articles"`
	}

	w := do(s, http.MethodGet, "/search?query=testing", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Articles, 1)

	w = do(s, http.MethodGet, "/search?query=nonexistent-token-xyz", nil, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Articles)

	// empty query returns everything
	w = do(s, http.MethodGet, "/search?query=", nil, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Articles, 1)
}

func TestStoreFailuresReturnGenericError(t *testing.T) {
	s, db := newTestServer(t)
	cookies := signupAndLogin(t, s, "alice", "alice@example.com")

	db.ListArticlesError = errors.New("disk I/O error")
	w := do(s, http.MethodGet, "/list", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "internal server error"}`, w.Body.String())
	db.ListArticlesError = nil

	db.CreateArticleError = errors.New("disk I/O error")
	w = do(s, http.MethodPost, "/add-article", validArticle(), cookies)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// the store failure never leaks into the response body
	assert.JSONEq(t, `{"error": "internal server error"}`, w.Body.String())
}
