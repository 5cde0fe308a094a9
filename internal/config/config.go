package config

import (
	"fmt"
	"strings"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// 固定的认证路由
const (
	LoginPath    = "/auth/login"
	CallbackPath = "/auth/callback"
	LogoutPath   = "/auth/logout"
)

// ImageDomains 允许渲染的外部图片域名
var ImageDomains = []string{
	"image.tmdb.org",
	"s.gravatar.com",
	"lh3.googleusercontent.com",
}

// Config 应用配置
type Config struct {
	Env       string
	AppSecret string
	Port      string
	SiteName  string
	SiteUrl   string
	LogLevel  string
	LogFile   string

	StoreDriver   string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string

	TMDBToken       string
	TMDBBaseURL     string
	CatalogTTL      time.Duration
	SearchRateRPS   float64
	SearchRateBurst int

	Auth0 Auth0Config

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
}

// Auth0Config 身份提供方配置
type Auth0Config struct {
	IssuerBaseURL string
	ClientID      string
	ClientSecret  string
	Audience      string
	Scope         string
}

// Enabled 是否配置了身份提供方
func (c Auth0Config) Enabled() bool {
	return c.IssuerBaseURL != "" && c.ClientID != ""
}

// Scopes 拆分 scope 字符串
func (c Auth0Config) Scopes() []string {
	return strings.Fields(c.Scope)
}

const defaultSecret = "your-secret-key-change-in-production"

// Load 加载配置
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_SECRET", defaultSecret)
	v.SetDefault("PORT", "5005")
	v.SetDefault("SITE_NAME", "CineWish")
	v.SetDefault("SITE_URL", "http://localhost:5005")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", "postgres")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "cinewish")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("MONGODB_DATABASE", "cinewish")
	v.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	v.SetDefault("CATALOG_CACHE_TTL", "10m")
	v.SetDefault("SEARCH_RATE_LIMIT_RPS", 5.0)
	v.SetDefault("SEARCH_RATE_LIMIT_BURST", 10)
	v.SetDefault("AUTH0_SCOPE", "openid profile email")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		v.GetString("DB_USER"), v.GetString("DB_PASSWORD"), v.GetString("DB_HOST"),
		v.GetString("DB_PORT"), v.GetString("DB_NAME"), v.GetString("DB_SSLMODE"))

	appSecret := v.GetString("APP_SECRET")
	if v.GetString("APP_ENV") == "production" && appSecret == defaultSecret {
		log.Warn("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	ttl := v.GetDuration("CATALOG_CACHE_TTL")
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &Config{
		Env:       v.GetString("APP_ENV"),
		AppSecret: appSecret,
		Port:      v.GetString("PORT"),
		SiteName:  v.GetString("SITE_NAME"),
		SiteUrl:   strings.TrimRight(v.GetString("SITE_URL"), "/"),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFile:   v.GetString("LOG_FILE"),

		StoreDriver:   strings.ToLower(v.GetString("STORE_DRIVER")),
		DatabaseURL:   dbURL,
		MongoURI:      v.GetString("MONGODB_URI"),
		MongoDatabase: v.GetString("MONGODB_DATABASE"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),

		TMDBToken:       v.GetString("TMDB_TOKEN"),
		TMDBBaseURL:     strings.TrimRight(v.GetString("TMDB_BASE_URL"), "/"),
		CatalogTTL:      ttl,
		SearchRateRPS:   v.GetFloat64("SEARCH_RATE_LIMIT_RPS"),
		SearchRateBurst: v.GetInt("SEARCH_RATE_LIMIT_BURST"),

		Auth0: Auth0Config{
			IssuerBaseURL: strings.TrimRight(v.GetString("AUTH0_ISSUER_BASE_URL"), "/"),
			ClientID:      v.GetString("AUTH0_CLIENT_ID"),
			ClientSecret:  v.GetString("AUTH0_CLIENT_SECRET"),
			Audience:      v.GetString("AUTH0_AUDIENCE"),
			Scope:         v.GetString("AUTH0_SCOPE"),
		},

		GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
		GeminiModel:   v.GetString("GEMINI_MODEL"),
		GeminiBaseURL: strings.TrimRight(v.GetString("GEMINI_BASE_URL"), "/"),
	}
}

// CallbackURL OIDC 回调地址
func (c *Config) CallbackURL() string {
	return c.SiteUrl + CallbackPath
}
