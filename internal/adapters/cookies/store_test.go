package cookies_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/hbnb-web/internal/adapters/cookies"
)

func responseCookies(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, c := range rec.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestGet_MissingHeaderOrPair(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	store := cookies.New(httptest.NewRecorder(), req, cookies.DefaultOptions())

	_, ok := store.Get(cookies.TokenCookie)
	assert.False(t, ok)

	req.Header.Set("Cookie", "other=1")
	_, ok = store.Get(cookies.TokenCookie)
	assert.False(t, ok)

	nilStore := cookies.New(nil, nil, cookies.Options{})
	_, ok = nilStore.Get(cookies.UserCookie)
	assert.False(t, ok)
}

func TestGet_ParsesMalformedHeaderWithoutFailing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", `;;=; jwt_token=abc.def.ghi; user_id="42"; broken`)
	store := cookies.New(httptest.NewRecorder(), req, cookies.DefaultOptions())

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	user, ok := store.Get(cookies.UserCookie)
	require.True(t, ok)
	assert.Equal(t, "42", user)
}

func TestSet_WritesScopedSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	store := cookies.New(rec, httptest.NewRequest(http.MethodGet, "/", nil), cookies.DefaultOptions())

	store.Set(cookies.TokenCookie, "t")

	c := responseCookies(rec)[cookies.TokenCookie]
	require.NotNil(t, c)
	assert.Equal(t, "t", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Zero(t, c.MaxAge)
	assert.True(t, c.Expires.IsZero())

	got, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "t", got)
}

func TestSet_EscapesValues(t *testing.T) {
	rec := httptest.NewRecorder()
	store := cookies.New(rec, httptest.NewRequest(http.MethodGet, "/", nil), cookies.DefaultOptions())

	store.Set(cookies.UserCookie, "a b;c")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(responseCookies(rec)[cookies.UserCookie])
	value, ok := cookies.New(nil, req, cookies.DefaultOptions()).Get(cookies.UserCookie)
	require.True(t, ok)
	assert.Equal(t, "a b;c", value)
}

func TestClear_ExpiresCookieAndHidesRequestValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookies.TokenCookie, Value: "t"})
	rec := httptest.NewRecorder()
	store := cookies.New(rec, req, cookies.DefaultOptions())

	store.Clear(cookies.TokenCookie)

	c := responseCookies(rec)[cookies.TokenCookie]
	require.NotNil(t, c)
	assert.Equal(t, "", c.Value)
	assert.Equal(t, -1, c.MaxAge)

	_, ok := store.Token()
	assert.False(t, ok)
}
