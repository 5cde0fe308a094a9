package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	log "github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/user/cinewish/internal/config"
	"github.com/user/cinewish/internal/handler"
	"github.com/user/cinewish/internal/metrics"
	"github.com/user/cinewish/internal/middleware"
	"github.com/user/cinewish/internal/repository"
	"github.com/user/cinewish/internal/router"
	"github.com/user/cinewish/internal/service"
	"github.com/user/cinewish/internal/utils"
)

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Info("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel, cfg.LogFile)

	ctx := context.Background()

	// 初始化资料存储
	profiles, closeStore, err := openProfileStore(ctx, cfg)
	if err != nil {
		log.Fatalf("存储初始化失败: %v", err)
	}
	defer closeStore()

	// 初始化目录缓存（配置了 Redis 时多实例共享）
	var catalogCache utils.Cache = utils.NewMemoryCache()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warnf("[Redis] 连接失败，改用进程内缓存: %v", err)
		} else {
			catalogCache = utils.NewRedisCache(rdb, "")
			defer rdb.Close()
		}
	}

	// 初始化服务
	identity, err := service.NewIdentityService(ctx, cfg)
	if err != nil {
		log.Fatalf("身份提供方初始化失败: %v", err)
	}
	if !identity.Enabled() {
		log.Warn("[Auth] 未配置 AUTH0_ISSUER_BASE_URL / AUTH0_CLIENT_ID，登录已禁用")
	}
	catalog := service.NewCatalogService(cfg, catalogCache)
	recommender := service.NewGeminiRecommender(utils.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL), 3)

	// 指标
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterCollectors(registry)

	// 初始化 Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 设置 Session 中间件
	store := cookie.NewStore([]byte(cfg.AppSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 天，实际有效期以 ID Token 过期时间为准
		HttpOnly: true,
		Secure:   cfg.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("cinewish_session", store))

	// 中间件
	r.Use(middleware.Logger())
	r.Use(middleware.PagePathLogger())
	r.Use(middleware.SecurityHeaders(config.ImageDomains))

	// 初始化 Handler 并注册路由
	h := handler.NewHandler(cfg, identity, catalog, profiles, recommender)
	router.RegisterRoutes(r, h, router.Options{
		SearchLimiter: middleware.NewRateLimiter(cfg.SearchRateRPS, cfg.SearchRateBurst),
		Gatherer:      registry,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   40 * time.Second, // 首页包含 Gemini 推荐请求
		MaxHeaderBytes: 1 << 20,
	}

	// 在 goroutine 中启动服务器，这样我们就可以监听信号
	go func() {
		log.Infof("服务器启动于 http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("正在关闭服务器...")

	// 5 秒超时上下文用于关闭过程
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("服务器强制关闭", "err", err)
	}

	log.Info("服务器已退出")
}

// openProfileStore 按 STORE_DRIVER 选择 PostgreSQL 或 MongoDB
func openProfileStore(ctx context.Context, cfg *config.Config) (repository.ProfileStore, func(), error) {
	switch cfg.StoreDriver {
	case "mongo", "mongodb":
		if cfg.MongoURI == "" {
			return nil, nil, errors.New("MONGODB_URI is required when STORE_DRIVER=mongo")
		}
		client, err := repository.ConnectMongo(ctx, cfg.MongoURI, 10*time.Second)
		if err != nil {
			return nil, nil, err
		}
		col := client.Database(cfg.MongoDatabase).Collection(repository.ProfileCollection)
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}
		log.Infof("[Store] 使用 MongoDB (%s)", cfg.MongoDatabase)
		return repository.NewMongoProfileRepository(col), closeFn, nil

	case "postgres", "postgresql", "":
		db, err := repository.InitDB(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		log.Info("[Store] 使用 PostgreSQL")
		return repository.NewProfileRepository(db), func() { _ = sqlDB.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
