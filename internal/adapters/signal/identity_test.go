package signal

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newResolverEngine(set func(sessions.Session)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("sid", cookie.NewStore([]byte("k"))))
	r.GET("/login", func(c *gin.Context) {
		s := sessions.Default(c)
		set(s)
		_ = s.Save()
	})
	r.GET("/who", func(c *gin.Context) {
		c.String(http.StatusOK, string(SessionResolver{Key: "user_id"}.Resolve(c)))
	})
	return r
}

func whoAmI(t *testing.T, set func(sessions.Session), withCookie bool) string {
	t.Helper()
	r := newResolverEngine(set)

	login := httptest.NewRecorder()
	r.ServeHTTP(login, httptest.NewRequest(http.MethodGet, "/login", nil))

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	if withCookie {
		for _, c := range login.Result().Cookies() {
			req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Body.String()
}

func TestSessionResolver(t *testing.T) {
	cases := []struct {
		name string
		set  func(sessions.Session)
		want string
	}{
		{"string id", func(s sessions.Session) { s.Set("user_id", "alice") }, "alice"},
		{"int id", func(s sessions.Session) { s.Set("user_id", 42) }, "42"},
		{"int64 id", func(s sessions.Session) { s.Set("user_id", int64(7)) }, "7"},
		{"uint id", func(s sessions.Session) { s.Set("user_id", uint(9)) }, "9"},
		{"other key only", func(s sessions.Session) { s.Set("theme", "dark") }, ""},
		{"blank id", func(s sessions.Session) { s.Set("user_id", "  ") }, ""},
		{"too long", func(s sessions.Session) { s.Set("user_id", strings.Repeat("x", 100)) }, ""},
		{"unsupported type", func(s sessions.Session) { s.Set("user_id", 1.5) }, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, whoAmI(t, tc.set, true))
		})
	}
}

func TestSessionResolver_NoCookieIsAnonymous(t *testing.T) {
	got := whoAmI(t, func(s sessions.Session) { s.Set("user_id", "alice") }, false)
	require.Empty(t, got)
}
