package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fieldcheck/internal/server"
	"fieldcheck/internal/util"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动本地服务并打开浏览器（默认命令）",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
}

func runServe(opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	srv, err := server.NewServer(cfg, log)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	url := util.LocalURL(cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		log.Info("服务启动", zap.String("addr", addr))
		errCh <- srv.Run(addr)
	}()

	if cfg.Server.DevMode {
		log.Info("开发模式", zap.String("url", url))
	} else if cfg.Server.OpenBrowser {
		if err := util.OpenBrowser(url); err != nil {
			log.Warn("无法自动打开浏览器，请手动访问", zap.String("url", url), zap.Error(err))
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("服务启动失败: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info("正在关闭服务")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
