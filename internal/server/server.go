package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldcheck/internal/api"
	"fieldcheck/internal/config"
	"fieldcheck/internal/inspection"
	"fieldcheck/internal/model"
	"fieldcheck/internal/report"
	"fieldcheck/internal/store"
)

// devFrontendURL 开发模式下前端开发服务器地址
const devFrontendURL = "http://localhost:5173"

// Server HTTP 服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	svc    *inspection.Service
	logger *zap.Logger
	http   *http.Server
}

// NewService 按配置打开数据库并创建业务服务（HTTP 服务与命令行共用）
func NewService(cfg *config.AppConfig, logger *zap.Logger) (*inspection.Service, *store.Store, error) {
	if _, err := config.EnsureDataDir(cfg); err != nil {
		return nil, nil, fmt.Errorf("创建数据目录失败: %w", err)
	}
	st, err := store.New(config.DBPath(cfg))
	if err != nil {
		return nil, nil, err
	}

	loc, err := cfg.Report.Location()
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	renderer, err := report.NewRenderer(report.Options{
		Layout:   cfg.Report.Layout,
		Labels:   model.LabelsFor(cfg.Report.Locale),
		Logger:   logger.Named("report"),
		FontPath: cfg.Report.FontPath,
		Location: loc,
	})
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	svc, err := inspection.NewService(inspection.Options{
		Persister: store.NewRepository(st, cfg.Data.StorageKey),
		ImportLog: st,
		Renderer:  renderer,
		Logger:    logger.Named("inspection"),
		Location:  loc,
		BackupDir: config.BackupDir(cfg),
	})
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	if err := svc.Load(); err != nil {
		st.Close()
		return nil, nil, err
	}
	return svc, st, nil
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, logger *zap.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	svc, st, err := NewService(cfg, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router: gin.New(),
		store:  st,
		svc:    svc,
		logger: logger,
	}
	s.router.MaxMultipartMemory = api.MaxMultipartMemory
	s.setupRoutes(cfg.Server.DevMode)
	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	s.router.Use(gin.Recovery(), api.RequestLogger(s.logger.Named("http")))

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	apiGroup.GET("/status", func(c *gin.Context) {
		snap := s.svc.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"projects":  len(snap.Projects),
			"issues":    len(snap.Issues),
			"templates": len(snap.Templates),
		})
	})
	api.NewHandler(s.svc, s.logger.Named("api")).RegisterRoutes(apiGroup)

	if devMode {
		// 开发模式：跳转到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, devFrontendURL+c.Request.URL.Path)
		})
	} else {
		s.router.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		})
	}
}

// Handler 路由（测试用）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，Shutdown 后返回 nil
func (s *Server) Run(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 停止接收请求并关闭数据库
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	if cerr := s.store.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
