package server

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "pantry-backend/docs"
	"pantry-backend/internal/dashboard"
	"pantry-backend/internal/inventory"
	"pantry-backend/internal/platform/auth"
	"pantry-backend/internal/platform/config"
	"pantry-backend/internal/platform/logging"
	"pantry-backend/internal/shelves"
	"pantry-backend/internal/suggestions"
	"pantry-backend/internal/volunteers"
	"pantry-backend/internal/web"
)

const shutdownTimeout = 10 * time.Second

type Services struct {
	Auth        *auth.Service
	Inventory   *inventory.Service
	Shelves     *shelves.Service
	Volunteers  *volunteers.Service
	Suggestions *suggestions.Service
	Dashboard   *dashboard.Service
	Stream      *dashboard.Streamer
	SPA         *web.SPA
}

func NewServices(conn *sql.DB, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	spa, err := web.New()
	if err != nil {
		return nil, err
	}

	authSvc := auth.NewService(conn, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	inv := inventory.NewService(conn, logger)
	dash := dashboard.NewService(conn, logger)

	return &Services{
		Auth:        authSvc,
		Inventory:   inv,
		Shelves:     shelves.NewService(conn, inv, logger),
		Volunteers:  volunteers.NewService(conn, logger),
		Suggestions: suggestions.NewService(conn, logger),
		Dashboard:   dash,
		Stream:      dashboard.NewStreamer(dash, authSvc, cfg.Dashboard.RefreshInterval, cfg.CORS.AllowOrigins, logger),
		SPA:         spa,
	}, nil
}

// NewRouter: スタッフ向けは全部 RequireAuth のグループにぶら下げる
func NewRouter(cfg *config.Config, logger *zap.Logger, svc *Services) *gin.Engine {
	if cfg.Mode == config.ModeRelease {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logging.Middleware(logger), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == config.ModeDev {
		// CORS（開発中のみ必要）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "Location"},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// /api/v1
	api := r.Group("/api/v1")
	suggestions.RegisterPublicRoutes(api, svc.Suggestions)

	staff := api.Group("", auth.RequireAuth(svc.Auth))
	auth.RegisterRoutes(api, staff, svc.Auth)
	inventory.RegisterRoutes(staff, svc.Inventory)
	shelves.RegisterRoutes(staff, svc.Shelves)
	volunteers.RegisterRoutes(staff, svc.Volunteers)
	suggestions.RegisterRoutes(staff, svc.Suggestions)
	dashboard.RegisterRoutes(staff, svc.Dashboard, svc.Stream)

	svc.SPA.RegisterRoutes(r)
	return r
}

// Run は ctx が終わるまで待ち受け、その後 graceful shutdown する
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, h http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if cert, key, ok := cfg.TLSFiles(); ok {
			logger.Info("listening", zap.String("addr", "https://"+cfg.Server.Addr))
			err = srv.ListenAndServeTLS(cert, key)
		} else {
			if cfg.Mode == config.ModeRelease {
				logger.Warn("no certificate configured; serving plain HTTP")
			}
			logger.Info("listening", zap.String("addr", "http://"+cfg.Server.Addr))
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
