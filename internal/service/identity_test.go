package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinewish/internal/model"
	"golang.org/x/oauth2"
)

type fakeVerifier struct {
	claims *IDClaims
	err    error
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, raw string) (*IDClaims, error) {
	if raw != "raw-id-token" {
		return nil, errors.New("unexpected token")
	}
	return f.claims, f.err
}

func newIdentityRouter(t *testing.T, verifier IDTokenVerifier) (*gin.Engine, *IdentityService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.Form.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "at",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"id_token":     "raw-id-token",
		})
	}))
	t.Cleanup(tokenSrv.Close)

	oauthCfg := &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/auth/callback",
		Endpoint:     oauth2.Endpoint{AuthURL: "https://tenant.example.com/authorize", TokenURL: tokenSrv.URL},
		Scopes:       []string{"openid", "profile"},
	}
	svc := NewIdentityServiceWith(oauthCfg, verifier, "https://tenant.example.com", "https://api.example.com", "http://localhost")

	r := gin.New()
	r.Use(sessions.Sessions("cinewish", cookie.NewStore([]byte("test-secret"))))
	r.GET("/login", func(c *gin.Context) {
		u, err := svc.LoginURL(c)
		require.NoError(t, err)
		c.Redirect(http.StatusFound, u)
	})
	r.GET("/callback", func(c *gin.Context) {
		if _, err := svc.Callback(c); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		c.Redirect(http.StatusFound, "/")
	})
	r.GET("/me", func(c *gin.Context) {
		user, err := svc.GetSession(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, user)
	})
	r.GET("/logout", func(c *gin.Context) {
		u, err := svc.Logout(c)
		require.NoError(t, err)
		c.Redirect(http.StatusFound, u)
	})
	return r, svc
}

func do(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdentityService_LoginCallbackFlow(t *testing.T) {
	r, _ := newIdentityRouter(t, &fakeVerifier{claims: &IDClaims{
		Subject: "auth0|42",
		Name:    "Ada",
		Email:   "ada@example.com",
		Expiry:  time.Now().Add(time.Hour),
	}})

	w := do(r, "/login", nil)
	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", loc.Query().Get("audience"))
	assert.Equal(t, "openid profile", loc.Query().Get("scope"))
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)

	cookies := w.Result().Cookies()
	w = do(r, "/callback?state="+state+"&code=the-code", cookies)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())

	w = do(r, "/me", w.Result().Cookies())
	require.Equal(t, http.StatusOK, w.Code)
	var got model.SessionUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "auth0|42", got.Sub)
	assert.Equal(t, "ada@example.com", got.Email)
}

func TestIdentityService_CallbackStateMismatch(t *testing.T) {
	r, _ := newIdentityRouter(t, &fakeVerifier{})

	w := do(r, "/login", nil)
	w = do(r, "/callback?state=forged&code=the-code", w.Result().Cookies())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrStateMismatch.Error())
}

func TestIdentityService_CallbackFailureConsumesState(t *testing.T) {
	r, _ := newIdentityRouter(t, &fakeVerifier{err: errors.New("bad signature")})

	w := do(r, "/login", nil)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")

	w = do(r, "/callback?state="+state+"&code=the-code", w.Result().Cookies())
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "verify id token")

	// 失败后 state 已从 cookie 中移除，重放同一个 state 被拒绝
	cleared := w.Result().Cookies()
	require.NotEmpty(t, cleared)
	w = do(r, "/callback?state="+state+"&code=the-code", cleared)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrStateMismatch.Error())
}

func TestIdentityService_NoSession(t *testing.T) {
	r, _ := newIdentityRouter(t, &fakeVerifier{})

	w := do(r, "/me", nil)
	assert.Equal(t, "null", w.Body.String())
}

func TestIdentityService_Logout(t *testing.T) {
	r, _ := newIdentityRouter(t, &fakeVerifier{})

	w := do(r, "/logout", nil)
	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/v2/logout", loc.Path)
	assert.Equal(t, "client", loc.Query().Get("client_id"))
	assert.Equal(t, "http://localhost", loc.Query().Get("returnTo"))
}
