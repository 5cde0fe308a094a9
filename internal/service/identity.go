package service

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/user/cinewish/internal/config"
	"github.com/user/cinewish/internal/model"
	"golang.org/x/oauth2"
)

const (
	sessionUserKey  = "userinfo"
	sessionStateKey = "oauth_state"
)

var (
	// ErrAuthDisabled 未配置身份提供方
	ErrAuthDisabled = errors.New("identity provider is not configured")
	// ErrStateMismatch 回调 state 与会话中的不一致
	ErrStateMismatch = errors.New("oauth state mismatch")
	// ErrMissingIDToken token 响应中没有 id_token
	ErrMissingIDToken = errors.New("no id_token in token response")
)

func init() {
	// cookie session 使用 gob 编码
	gob.Register(model.SessionUser{})
}

// SessionProvider 读取当前请求的登录会话
//
// 没有会话或会话已过期时返回 (nil, nil)；只有会话数据损坏等异常才返回 error。
type SessionProvider interface {
	GetSession(c *gin.Context) (*model.SessionUser, error)
}

// IDClaims ID Token 中用到的声明
type IDClaims struct {
	Subject string    `json:"sub"`
	OrgID   string    `json:"org_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Picture string    `json:"picture"`
	Expiry  time.Time `json:"-"`
}

// IDTokenVerifier 校验 ID Token 并解析声明
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, rawIDToken string) (*IDClaims, error)
}

type oidcVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func (v *oidcVerifier) VerifyIDToken(ctx context.Context, rawIDToken string) (*IDClaims, error) {
	token, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}
	var claims IDClaims
	if err := token.Claims(&claims); err != nil {
		return nil, fmt.Errorf("decode id token claims: %w", err)
	}
	claims.Subject = token.Subject
	claims.Expiry = token.Expiry
	return &claims, nil
}

// IdentityService Auth0 授权码流程与 cookie 会话
type IdentityService struct {
	oauth    *oauth2.Config
	verifier IDTokenVerifier
	issuer   string
	audience string
	returnTo string
	enabled  bool
}

// NewIdentityService 未配置 Auth0 时返回禁用状态的服务，会话读取仍然可用
func NewIdentityService(ctx context.Context, cfg *config.Config) (*IdentityService, error) {
	if !cfg.Auth0.Enabled() {
		return &IdentityService{returnTo: cfg.SiteUrl}, nil
	}

	// Auth0 的 issuer 带结尾斜杠
	provider, err := oidc.NewProvider(ctx, cfg.Auth0.IssuerBaseURL+"/")
	if err != nil {
		return nil, fmt.Errorf("init oidc provider: %w", err)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.Auth0.ClientID,
		ClientSecret: cfg.Auth0.ClientSecret,
		RedirectURL:  cfg.CallbackURL(),
		Endpoint:     provider.Endpoint(),
		Scopes:       cfg.Auth0.Scopes(),
	}
	verifier := &oidcVerifier{verifier: provider.Verifier(&oidc.Config{ClientID: cfg.Auth0.ClientID})}

	return NewIdentityServiceWith(oauthCfg, verifier, cfg.Auth0.IssuerBaseURL, cfg.Auth0.Audience, cfg.SiteUrl), nil
}

// NewIdentityServiceWith 使用给定的 OAuth 配置和校验器构造
func NewIdentityServiceWith(oauthCfg *oauth2.Config, verifier IDTokenVerifier, issuer, audience, returnTo string) *IdentityService {
	return &IdentityService{
		oauth:    oauthCfg,
		verifier: verifier,
		issuer:   issuer,
		audience: audience,
		returnTo: returnTo,
		enabled:  true,
	}
}

// Enabled 是否配置了身份提供方
func (s *IdentityService) Enabled() bool {
	return s.enabled
}

// GetSession 读取会话中的用户，过期的会话会被清除
func (s *IdentityService) GetSession(c *gin.Context) (*model.SessionUser, error) {
	session := sessions.Default(c)
	raw := session.Get(sessionUserKey)
	if raw == nil {
		return nil, nil
	}

	user, ok := raw.(model.SessionUser)
	if !ok {
		return nil, fmt.Errorf("unexpected session payload %T", raw)
	}

	if user.Expired(time.Now()) {
		session.Delete(sessionUserKey)
		if err := session.Save(); err != nil {
			return nil, fmt.Errorf("clear expired session: %w", err)
		}
		return nil, nil
	}
	return &user, nil
}

// LoginURL 生成随机 state 写入会话，返回授权地址
func (s *IdentityService) LoginURL(c *gin.Context) (string, error) {
	if !s.enabled {
		return "", ErrAuthDisabled
	}

	state := uuid.NewString()
	session := sessions.Default(c)
	session.Set(sessionStateKey, state)
	if err := session.Save(); err != nil {
		return "", fmt.Errorf("save oauth state: %w", err)
	}

	var opts []oauth2.AuthCodeOption
	if s.audience != "" {
		opts = append(opts, oauth2.SetAuthURLParam("audience", s.audience))
	}
	return s.oauth.AuthCodeURL(state, opts...), nil
}

// Callback 校验 state，换取并验证 ID Token，写入会话
func (s *IdentityService) Callback(c *gin.Context) (*model.SessionUser, error) {
	if !s.enabled {
		return nil, ErrAuthDisabled
	}

	session := sessions.Default(c)
	expected, _ := session.Get(sessionStateKey).(string)
	session.Delete(sessionStateKey)
	if err := session.Save(); err != nil {
		return nil, fmt.Errorf("clear oauth state: %w", err)
	}
	if expected == "" || c.Query("state") != expected {
		return nil, ErrStateMismatch
	}

	token, err := s.oauth.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, ErrMissingIDToken
	}

	claims, err := s.verifier.VerifyIDToken(c.Request.Context(), rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	user := model.SessionUser{
		Sub:       claims.Subject,
		ID:        claims.Subject,
		OrgID:     claims.OrgID,
		Name:      claims.Name,
		Email:     claims.Email,
		Picture:   claims.Picture,
		ExpiresAt: claims.Expiry,
	}
	session.Set(sessionUserKey, user)
	if err := session.Save(); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &user, nil
}

// Logout 清除会话，返回身份提供方的登出地址
func (s *IdentityService) Logout(c *gin.Context) (string, error) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		return "", fmt.Errorf("clear session: %w", err)
	}

	if !s.enabled {
		return "/", nil
	}

	params := url.Values{}
	params.Set("client_id", s.oauth.ClientID)
	params.Set("returnTo", s.returnTo)
	return s.issuer + "/v2/logout?" + params.Encode(), nil
}
